// internal/game/draw.go
//
// Turn/draw-discard tracker. A normal turn requires discard-or-skip before a
// draw is legal; a disgraced player gets exactly one discard and one draw;
// all flags reset only on the turn-finish transition.
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// CanDiscard reports whether a local discard is currently legal.
func (s GameState) CanDiscard() bool {
	if s.CurrentTurnPlayerID != s.LocalPlayerID {
		return false
	}
	if s.IsDisgraced(s.LocalPlayerID) {
		return !s.Draw.HasDiscarded
	}
	return !s.Draw.HasDiscarded && !s.Draw.HasDrawn
}

// CanDraw reports whether a local draw is currently legal.
func (s GameState) CanDraw() bool {
	if s.CurrentTurnPlayerID != s.LocalPlayerID {
		return false
	}
	if len(s.Hand) >= MaxHandSize {
		return false
	}
	if s.IsDisgraced(s.LocalPlayerID) {
		return s.Draw.HasDiscarded && !s.Draw.HasDrawn
	}
	if !s.Draw.HasDiscarded && !s.Draw.SkipDiscard {
		return false
	}
	return s.Draw.CardsToDrawRemaining > 0 || !s.Draw.HasDrawn
}

func (s GameState) applyMustDraw(m MustDraw) GameState {
	if m.PlayerID == s.LocalPlayerID {
		s.Draw.CardsToDrawRemaining = m.Count
	} else {
		s.Draw.OtherPlayerDrawing = m.PlayerID
	}
	s.Log = s.Log.append(LogDraw, m.PlayerID,
		fmt.Sprintf("%s must draw %d", s.nameOf(m.PlayerID), m.Count))
	return s
}

func (s GameState) applyCardDrawn(m CardDrawn) GameState {
	if m.PlayerID == s.LocalPlayerID {
		s.Draw.HasDrawn = true
		if s.Draw.CardsToDrawRemaining > 0 {
			s.Draw.CardsToDrawRemaining--
		}
		if m.Card != nil && len(s.Hand) < MaxHandSize {
			hand := make([]CardRef, 0, len(s.Hand)+1)
			hand = append(hand, s.Hand...)
			hand = append(hand, *m.Card)
			s.Hand = hand
		}
		if s.DeckCount > 0 {
			s.DeckCount--
		}
	} else {
		if s.Draw.OtherPlayerDrawing == m.PlayerID {
			s.Draw.OtherPlayerDrawing = uuid.Nil
		}
		s.Players = adjustHandSize(s.Players, m.PlayerID, +1)
		if s.DeckCount > 0 {
			s.DeckCount--
		}
	}
	s.Log = s.Log.append(LogDraw, m.PlayerID,
		fmt.Sprintf("%s draws a card", s.nameOf(m.PlayerID)))
	return s
}

func (s GameState) applyMarkDiscarded(m MarkDiscarded) GameState {
	for i, c := range s.Hand {
		if c.ID == m.CardID {
			hand := make([]CardRef, 0, len(s.Hand)-1)
			hand = append(hand, s.Hand[:i]...)
			hand = append(hand, s.Hand[i+1:]...)
			s.Hand = hand
			break
		}
	}
	s.Draw.HasDiscarded = true
	s.DiscardCount++
	s.Log = s.Log.append(LogDraw, s.LocalPlayerID, "you discard a card")
	return s
}

func (s GameState) applyGrantSkipDiscard() GameState {
	s.Draw.SkipDiscard = true
	return s
}

func (s GameState) applyTurnFinished(m TurnFinished) GameState {
	// The one place the tracker resets.
	s.Draw = idleDrawAction()
	s.CurrentTurnPlayerID = m.NextPlayerID
	s.Log = s.Log.append(LogTurn, m.NextPlayerID,
		fmt.Sprintf("it is now %s's turn", s.nameOf(m.NextPlayerID)))
	return s
}

func (s GameState) applyDisgraceChanged(m DisgraceChanged) GameState {
	s.Disgraced = append([]uuid.UUID(nil), m.PlayerIDs...)
	s.Log = s.Log.append(LogGame, uuid.Nil, "the social-disgrace list changed")
	return s
}

// adjustHandSize returns a roster copy with one player's hand size bumped.
func adjustHandSize(players []PlayerInfo, playerID uuid.UUID, delta int) []PlayerInfo {
	out := append([]PlayerInfo(nil), players...)
	for i := range out {
		if out[i].ID == playerID {
			out[i].HandSize += delta
			if out[i].HandSize < 0 {
				out[i].HandSize = 0
			}
		}
	}
	return out
}
