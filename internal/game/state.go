// internal/game/state.go
package game

import (
	"time"

	"github.com/google/uuid"
)

// ConnStatus describes the push-channel connection state.
type ConnStatus string

const (
	ConnDisconnected ConnStatus = "disconnected"
	ConnConnecting   ConnStatus = "connecting"
	ConnConnected    ConnStatus = "connected"
)

// CardKind classifies a card in hand.
type CardKind string

const (
	CardDetective CardKind = "detective"
	CardEvent     CardKind = "event"
	CardInstant   CardKind = "instant" // "Not so fast!" interrupt card
	CardWildcard  CardKind = "wildcard"
)

// DetectiveSetType identifies which detective a set belongs to.
type DetectiveSetType string

const (
	SetPoirot        DetectiveSetType = "poirot"
	SetMarple        DetectiveSetType = "marple"
	SetSatterthwaite DetectiveSetType = "satterthwaite"
	SetPyne          DetectiveSetType = "pyne"
	SetBeresford     DetectiveSetType = "beresford"
)

// MinCardsForSet returns how many detective cards a set of the given type
// needs before it may be proposed. Poirot and Marple are the six-player
// investigative leads and need three; every other detective needs two.
func MinCardsForSet(t DetectiveSetType) int {
	switch t {
	case SetPoirot, SetMarple:
		return 3
	default:
		return 2
	}
}

// TargetResolves reports whether the set type's effect is completed by the
// target's client (the target picks which of their own secrets to give up)
// rather than by the initiator.
func TargetResolves(t DetectiveSetType) bool {
	return t == SetPoirot || t == SetMarple
}

// ActionType identifies a cancellable action submitted for validation.
type ActionType string

const (
	ActionCreateSet ActionType = "CREATE_SET"
	ActionAddToSet  ActionType = "ADD_TO_SET"
	ActionPlayEvent ActionType = "PLAY_EVENT"
)

// CardRef is the client's view of one card. Detail fields are populated
// according to the card kind.
type CardRef struct {
	ID       uuid.UUID        `json:"id"`
	Kind     CardKind         `json:"kind"`
	SetType  DetectiveSetType `json:"setType,omitempty"` // detective cards only
	Family   EventFamily      `json:"family,omitempty"`  // event cards only
	Label    string           `json:"label,omitempty"`
}

// Secret is one face-down (or revealed) secret slot.
type Secret struct {
	ID       uuid.UUID `json:"id"`
	OwnerID  uuid.UUID `json:"ownerId"`
	Revealed bool      `json:"revealed"`
	Label    string    `json:"label,omitempty"` // only known when revealed or own
}

// PlayerInfo is the roster entry for one player in the room.
type PlayerInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	HandSize    int       `json:"handSize"`
	SecretCount int       `json:"secretCount"`
	Connected   bool      `json:"connected"`
}

// DetectiveSet is a played set on the table.
type DetectiveSet struct {
	OwnerID      uuid.UUID        `json:"ownerId"`
	Type         DetectiveSetType `json:"type"`
	Cards        []CardRef        `json:"cards"`
	Position     int              `json:"position"`
	UsedWildcard bool             `json:"usedWildcard"`
}

// Outcome records how the game ended, if it has.
type Outcome struct {
	Finished bool      `json:"finished"`
	WinnerID uuid.UUID `json:"winnerId,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// ---------------------------------------------------------------------------
// Counter-play sub-state
// ---------------------------------------------------------------------------

// CounterResolution is the final outcome of a counter window.
type CounterResolution string

const (
	ResolutionNone      CounterResolution = ""
	ResolutionContinue  CounterResolution = "continue"
	ResolutionCancelled CounterResolution = "cancelled"
)

// InterruptPlay is one "Not so fast!" card played into an open window.
type InterruptPlay struct {
	PlayerID  uuid.UUID `json:"playerId"`
	Timestamp time.Time `json:"timestamp"`
}

// RemoteCallIntent describes a deferred server call: the endpoint and the
// exact payload to re-issue if the action is allowed to proceed.
type RemoteCallIntent struct {
	Endpoint string `json:"endpoint"`
	Payload  []byte `json:"payload"`
}

// ActionIntent records what to do if a deferred action resolves as
// "continue": either a remote call or a purely local transition. The
// target/position fields carry the undo context a cancellation needs
// (ADD_TO_SET must name the set being undone).
type ActionIntent struct {
	Call  *RemoteCallIntent
	Local Message

	TargetPlayerID uuid.UUID
	SetPosition    int
}

// CounterWindow holds the interrupt/cancel sub-protocol state. At most one
// window exists system-wide; Chain only grows while Active and the whole
// record is cleared in the same transition that records the resolution.
type CounterWindow struct {
	Active          bool
	ActionID        uuid.UUID
	InitiatorID     uuid.UUID
	ActionType      ActionType
	TimeRemaining   int
	Chain           []InterruptPlay
	FinalResolution CounterResolution

	// Intent is populated on this client only when it initiated the action
	// (single-resumer rule). It may be set before Active while the server's
	// window-open broadcast is still in flight.
	Intent *ActionIntent
}

func idleCounterWindow() CounterWindow { return CounterWindow{} }

// ---------------------------------------------------------------------------
// Detective-action sub-state
// ---------------------------------------------------------------------------

// DetectiveStage is the step pointer of an in-flight detective action.
type DetectiveStage string

const (
	DetStageIdle           DetectiveStage = ""
	DetStageSelectTarget   DetectiveStage = "select_target"
	DetStageSelectSecret   DetectiveStage = "select_secret"
	DetStageWaitingTarget  DetectiveStage = "waiting_target_confirmation"
	DetStageTargetConfirms DetectiveStage = "target_must_confirm"
	DetStageCompleted      DetectiveStage = "completed"
)

// DetectiveCurrent describes the set being built or resolved.
type DetectiveCurrent struct {
	SetType      DetectiveSetType
	Stage        DetectiveStage
	Cards        []CardRef
	UsedWildcard bool
}

// DetectiveRequest arrives on the target's client when it must supply one of
// its own secrets to complete another player's action.
type DetectiveRequest struct {
	ActionID     uuid.UUID
	FromPlayerID uuid.UUID
	SetType      DetectiveSetType
	Message      string
}

// ActionProgress narrates a multi-round action for all clients.
type ActionProgress struct {
	ActorID uuid.UUID
	Step    string
	Message string
}

// DetectiveAction is the coordinator state for investigative set effects.
// At most one detective action is active at a time; the whole struct returns
// to its idle shape on completion.
type DetectiveAction struct {
	Current          DetectiveCurrent
	AllowedPlayers   []uuid.UUID
	SecretsPool      []Secret
	TargetPlayerID   uuid.UUID
	ChosenSecretID   uuid.UUID
	ShowTargetPicker bool
	ShowSecretPicker bool
	Incoming         *DetectiveRequest
	InProgress       ActionProgress
}

func idleDetectiveAction() DetectiveAction { return DetectiveAction{} }

// ---------------------------------------------------------------------------
// Draw/discard tracker
// ---------------------------------------------------------------------------

// DrawAction tracks per-turn draw/discard legality plus the turn-scoped
// once-per-turn latches. Reset exactly at the turn-finish transition and at
// game (re)initialization.
type DrawAction struct {
	CardsToDrawRemaining int
	HasDiscarded         bool
	HasDrawn             bool
	SkipDiscard          bool
	HasPlayedSet         bool
	HasPlayedEvent       bool

	// OtherPlayerDrawing is set while narrating a different player's draw.
	OtherPlayerDrawing uuid.UUID
}

func idleDrawAction() DrawAction { return DrawAction{} }

// ---------------------------------------------------------------------------
// Root aggregate
// ---------------------------------------------------------------------------

// MaxHandSize caps the local player's hand.
const MaxHandSize = 6

// GameState is the root aggregate for one game session. It is a value: the
// store holds the only live copy and replaces it wholesale on every
// transition (and on reconnect, via snapshot messages).
type GameState struct {
	RoomID        string
	GameID        uuid.UUID
	LocalPlayerID uuid.UUID
	Connection    ConnStatus

	Players             []PlayerInfo
	CurrentTurnPlayerID uuid.UUID
	DeckCount           int
	DiscardCount        int
	Hand                []CardRef
	Sets                []DetectiveSet
	Secrets             []Secret
	Disgraced           []uuid.UUID
	Outcome             Outcome

	Counter   CounterWindow
	Detective DetectiveAction
	Event     EventAction
	Draw      DrawAction
	Log       EventLog
}

// NewGameState returns the initial aggregate for a room before any snapshot
// has arrived.
func NewGameState(roomID string, localPlayer uuid.UUID) GameState {
	return GameState{
		RoomID:        roomID,
		LocalPlayerID: localPlayer,
		Connection:    ConnDisconnected,
	}
}

// IsDisgraced reports whether the given player is under the social-disgrace
// rule (exactly one discard and one draw, overriding normal turn flow).
func (s GameState) IsDisgraced(playerID uuid.UUID) bool {
	for _, id := range s.Disgraced {
		if id == playerID {
			return true
		}
	}
	return false
}

// PlayerByID returns the roster entry for a player, if known.
func (s GameState) PlayerByID(playerID uuid.UUID) (PlayerInfo, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return PlayerInfo{}, false
}
