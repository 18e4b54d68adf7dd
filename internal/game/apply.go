// internal/game/apply.go
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Apply is the single transition function: pure, total, synchronous. Unknown
// messages return the state unchanged; effects are inert descriptors for the
// store's handlers, never I/O performed here.
func Apply(s GameState, msg Message) (GameState, []Effect) {
	switch m := msg.(type) {
	// Connection lifecycle.
	case ConnectionOpened:
		return s.applyConnectionOpened(), nil
	case ConnectionClosed:
		return s.applyConnectionClosed(m), nil
	case PeerJoined:
		return s.applyPeerJoined(m), nil
	case PeerLeft:
		return s.applyPeerLeft(m), nil
	case PlayerDeparted:
		return s.applyPlayerDeparted(m), nil

	// Snapshots and game end.
	case RoomSnapshot:
		return s.applyRoomSnapshot(m), nil
	case PlayerSnapshot:
		return s.applyPlayerSnapshot(m), nil
	case GameEnded:
		return s.applyGameEnded(m), nil
	case GameCancelled:
		return s.applyGameCancelled(m), nil

	// Counter-play protocol.
	case IntentRecorded:
		return s.applyIntentRecorded(m), nil
	case ActionConfirmed:
		return s.applyActionConfirmed(m), nil
	case CounterOpened:
		return s.applyCounterOpened(m), nil
	case CounterTick:
		return s.applyCounterTick(m), nil
	case CounterChained:
		return s.applyCounterChained(m), nil
	case CounterResolved:
		return s.applyCounterResolved(m)

	// Detective protocol.
	case BeginSetSelection:
		return s.applyBeginSetSelection(m), nil
	case ChooseTarget:
		return s.applyChooseTarget(m), nil
	case ChooseSecret:
		return s.applyChooseSecret(m), nil
	case ProvideSecret:
		return s.applyProvideSecret(m), nil
	case SetDetectivePickers:
		return s.applySetDetectivePickers(m), nil
	case ResetDetective:
		return s.applyResetDetective(), nil
	case DetectiveStarted:
		return s.applyDetectiveStarted(m), nil
	case DetectiveTargetChosen:
		return s.applyDetectiveTargetChosen(m), nil
	case DetectiveSecretRequested:
		return s.applyDetectiveSecretRequested(m), nil
	case DetectiveCompleted:
		return s.applyDetectiveCompleted(m), nil

	// Event-card protocol.
	case EventStarted:
		return s.applyEventStarted(m), nil
	case EventStepAdvanced:
		return s.applyEventStepAdvanced(m), nil
	case EventCompleted:
		return s.applyEventCompleted(m), nil
	case CardTradeOffer:
		return s.applyCardTradeOffer(m), nil
	case FollyAdvanced:
		return s.applyFollyAdvanced(m), nil
	case EventChooseCard:
		return s.applyEventChooseCard(m), nil
	case EventChooseSecret:
		return s.applyEventChooseSecret(m), nil
	case EventChooseQuantity:
		return s.applyEventChooseQuantity(m), nil
	case EventChooseDirection:
		return s.applyEventChooseDirection(m), nil
	case EventChoosePlayer:
		return s.applyEventChoosePlayer(m), nil
	case EventChooseSet:
		return s.applyEventChooseSet(m), nil
	case EventChooseOwnCard:
		return s.applyEventChooseOwnCard(m), nil

	// Draw/discard tracking.
	case MustDraw:
		return s.applyMustDraw(m), nil
	case CardDrawn:
		return s.applyCardDrawn(m), nil
	case MarkDiscarded:
		return s.applyMarkDiscarded(m), nil
	case GrantSkipDiscard:
		return s.applyGrantSkipDiscard(), nil
	case TurnFinished:
		return s.applyTurnFinished(m), nil
	case DisgraceChanged:
		return s.applyDisgraceChanged(m), nil

	case ActionFailed:
		return s.applyActionFailed(m), nil
	}
	// Unknown message kinds are a no-op.
	return s, nil
}

// ---------------------------------------------------------------------------
// Connection lifecycle
// ---------------------------------------------------------------------------

func (s GameState) applyConnectionOpened() GameState {
	s.Connection = ConnConnected
	s.Log = s.Log.append(LogConnection, s.LocalPlayerID, "connected to the room")
	return s
}

func (s GameState) applyConnectionClosed(m ConnectionClosed) GameState {
	s.Connection = ConnDisconnected
	msg := "connection lost"
	if m.Reason != "" {
		msg = fmt.Sprintf("connection lost: %s", m.Reason)
	}
	s.Log = s.Log.append(LogConnection, s.LocalPlayerID, msg)
	return s
}

func (s GameState) applyPeerJoined(m PeerJoined) GameState {
	players := append([]PlayerInfo(nil), s.Players...)
	found := false
	for i := range players {
		if players[i].ID == m.Player.ID {
			players[i] = m.Player
			players[i].Connected = true
			found = true
			break
		}
	}
	if !found {
		players = append(players, m.Player)
	}
	s.Players = players
	s.Log = s.Log.append(LogConnection, m.Player.ID,
		fmt.Sprintf("%s joined the table", m.Player.Name))
	return s
}

func (s GameState) applyPeerLeft(m PeerLeft) GameState {
	players := append([]PlayerInfo(nil), s.Players...)
	for i := range players {
		if players[i].ID == m.PlayerID {
			players[i].Connected = false
		}
	}
	s.Players = players
	s.Log = s.Log.append(LogConnection, m.PlayerID,
		fmt.Sprintf("%s lost connection", s.nameOf(m.PlayerID)))
	return s
}

func (s GameState) applyPlayerDeparted(m PlayerDeparted) GameState {
	players := make([]PlayerInfo, 0, len(s.Players))
	for _, p := range s.Players {
		if p.ID != m.PlayerID {
			players = append(players, p)
		}
	}
	name := s.nameOf(m.PlayerID)
	s.Players = players
	s.Log = s.Log.append(LogConnection, m.PlayerID,
		fmt.Sprintf("%s left the game", name))
	return s
}

// ---------------------------------------------------------------------------
// Snapshots and game end
// ---------------------------------------------------------------------------

// applyRoomSnapshot merges a partial public snapshot. Fields the payload did
// not supply stay untouched, and empty collections never clobber previously
// known good values; partial snapshots can arrive in any interleaving.
func (s GameState) applyRoomSnapshot(m RoomSnapshot) GameState {
	if m.GameID != nil {
		s.GameID = *m.GameID
	}
	if len(m.Players) > 0 {
		s.Players = append([]PlayerInfo(nil), m.Players...)
	}
	if m.CurrentTurnPlayerID != nil {
		s.CurrentTurnPlayerID = *m.CurrentTurnPlayerID
	}
	if m.DeckCount != nil {
		s.DeckCount = *m.DeckCount
	}
	if m.DiscardCount != nil {
		s.DiscardCount = *m.DiscardCount
	}
	if len(m.Sets) > 0 {
		s.Sets = append([]DetectiveSet(nil), m.Sets...)
	}
	if len(m.Disgraced) > 0 {
		s.Disgraced = append([]uuid.UUID(nil), m.Disgraced...)
	}
	return s
}

func (s GameState) applyPlayerSnapshot(m PlayerSnapshot) GameState {
	if len(m.Hand) > 0 {
		s.Hand = append([]CardRef(nil), m.Hand...)
	}
	if len(m.Secrets) > 0 {
		s.Secrets = append([]Secret(nil), m.Secrets...)
	}
	if m.CardsToDrawRemaining != nil {
		s.Draw.CardsToDrawRemaining = *m.CardsToDrawRemaining
	}
	return s
}

func (s GameState) applyGameEnded(m GameEnded) GameState {
	s.Outcome = Outcome{Finished: true, WinnerID: m.WinnerID, Reason: m.Reason}
	msg := "the game is over"
	if m.WinnerID != uuid.Nil {
		msg = fmt.Sprintf("%s wins: %s", s.nameOf(m.WinnerID), m.Reason)
	}
	s.Log = s.Log.append(LogGame, m.WinnerID, msg)
	return s
}

func (s GameState) applyGameCancelled(m GameCancelled) GameState {
	s.Outcome = Outcome{Finished: true, Reason: m.Reason}
	s.Log = s.Log.append(LogGame, uuid.Nil,
		fmt.Sprintf("game cancelled: %s", m.Reason))
	return s
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

// applyActionFailed surfaces a transient failure. Optimistic local flow state
// is cleared; everything the server has already confirmed stays put.
func (s GameState) applyActionFailed(m ActionFailed) GameState {
	switch s.Detective.Current.Stage {
	case DetStageSelectTarget, DetStageSelectSecret, DetStageWaitingTarget:
		if s.Detective.Incoming == nil {
			s.Detective = idleDetectiveAction()
		}
	}
	s.Log = s.Log.append(LogError, s.LocalPlayerID,
		fmt.Sprintf("%s failed: %s", m.Context, m.Err))
	return s
}

// nameOf resolves a player id to a display name for narration.
func (s GameState) nameOf(playerID uuid.UUID) string {
	if playerID == uuid.Nil {
		return "the table"
	}
	if playerID == s.LocalPlayerID {
		return "you"
	}
	if p, ok := s.PlayerByID(playerID); ok && p.Name != "" {
		return p.Name
	}
	return "someone"
}
