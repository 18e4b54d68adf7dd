// internal/game/message.go
//
// Every local intent and every inbound push event is a variant of the closed
// Message union below. The transition function matches on the concrete type,
// so adding a message kind is a compile-time-checked change rather than a
// string comparison.
package game

import (
	"time"

	"github.com/google/uuid"
)

// Message is a transition request fed to the store. Implementations are the
// only way to mutate the aggregate.
type Message interface {
	isMessage()
}

// ---------------------------------------------------------------------------
// Connection lifecycle (inbound)
// ---------------------------------------------------------------------------

// ConnectionOpened reports that the push channel is established.
type ConnectionOpened struct{}

// ConnectionClosed reports that the push channel dropped.
type ConnectionClosed struct {
	Reason string
}

// PeerJoined adds or refreshes a roster entry.
type PeerJoined struct {
	Player PlayerInfo
}

// PeerLeft marks a roster entry disconnected without removing it.
type PeerLeft struct {
	PlayerID uuid.UUID
}

// PlayerDeparted removes a player from the roster for good.
type PlayerDeparted struct {
	PlayerID uuid.UUID
}

// ---------------------------------------------------------------------------
// Snapshots (inbound, partial: absent or empty fields never clobber
// previously known good values)
// ---------------------------------------------------------------------------

// RoomSnapshot is the public room-wide state slice.
type RoomSnapshot struct {
	GameID              *uuid.UUID
	Players             []PlayerInfo
	CurrentTurnPlayerID *uuid.UUID
	DeckCount           *int
	DiscardCount        *int
	Sets                []DetectiveSet
	Disgraced           []uuid.UUID
}

// PlayerSnapshot is the private per-player state slice.
type PlayerSnapshot struct {
	Hand                 []CardRef
	Secrets              []Secret
	CardsToDrawRemaining *int
}

// GameEnded carries the final outcome.
type GameEnded struct {
	WinnerID uuid.UUID
	Reason   string
}

// GameCancelled reports the room was torn down before a winner emerged.
type GameCancelled struct {
	Reason string
}

// ---------------------------------------------------------------------------
// Counter-play protocol (inbound)
// ---------------------------------------------------------------------------

// ActionConfirmed is the room-wide notice that a proposed action passed
// validation. The initiator learns cancellability from its call response;
// for everyone else this is narration only.
type ActionConfirmed struct {
	ActionID    uuid.UUID
	InitiatorID uuid.UUID
	ActionType  ActionType
	Cancellable bool
}

// CounterOpened opens the interrupt window.
type CounterOpened struct {
	ActionID      uuid.UUID
	InitiatorID   uuid.UUID
	ActionType    ActionType
	TimeRemaining int
}

// CounterTick updates the displayed countdown. Display only: the real
// deadline is server-enforced and arrives as a CounterResolved.
type CounterTick struct {
	TimeRemaining int
}

// CounterChained appends one interrupt play to the chain.
type CounterChained struct {
	PlayerID  uuid.UUID
	Timestamp time.Time
}

// CounterResolved closes the window with a final result.
type CounterResolved struct {
	FinalResult CounterResolution
}

// ---------------------------------------------------------------------------
// Detective protocol (inbound)
// ---------------------------------------------------------------------------

// DetectiveStarted announces an investigative action to the room.
type DetectiveStarted struct {
	ActorID        uuid.UUID
	SetType        DetectiveSetType
	AllowedPlayers []uuid.UUID
}

// DetectiveTargetChosen announces the chosen target.
type DetectiveTargetChosen struct {
	ActorID        uuid.UUID
	TargetPlayerID uuid.UUID
}

// DetectiveSecretRequested arrives on the target's client only: it must
// supply one of its own secrets.
type DetectiveSecretRequested struct {
	ActionID     uuid.UUID
	FromPlayerID uuid.UUID
	SetType      DetectiveSetType
	Pool         []Secret
	Message      string
}

// DetectiveCompleted closes the detective action everywhere.
type DetectiveCompleted struct {
	ActorID uuid.UUID
	SetType DetectiveSetType
}

// ---------------------------------------------------------------------------
// Event-card protocol (inbound)
// ---------------------------------------------------------------------------

// EventStarted announces an event-card action.
type EventStarted struct {
	ActorID uuid.UUID
	Family  EventFamily
}

// EventStepAdvanced moves one family's step sequence forward. Only the
// fields relevant to the family/step are populated.
type EventStepAdvanced struct {
	ActorID         uuid.UUID
	Family          EventFamily
	Step            EventStep
	Candidates      []CardRef
	TargetPlayerID  uuid.UUID
	Quantity        int
	Direction       FollyDirection
	SetPosition     int
	CurrentPlayerID uuid.UUID
}

// EventCompleted resets the family's record to its idle shape.
type EventCompleted struct {
	ActorID uuid.UUID
	Family  EventFamily
}

// CardTradeOffer is card-trade-specific: the target learns which card the
// initiator offers and must pick one to give back.
type CardTradeOffer struct {
	FromPlayerID uuid.UUID
	CardID       uuid.UUID
}

// FollyAdvanced is dead-card-folly-specific: the select_card step repeats
// for each remaining player in direction order.
type FollyAdvanced struct {
	CurrentPlayerID uuid.UUID
}

// ---------------------------------------------------------------------------
// Draw/discard notices (inbound)
// ---------------------------------------------------------------------------

// MustDraw tells a player how many cards they still have to draw.
type MustDraw struct {
	PlayerID uuid.UUID
	Count    int
}

// CardDrawn reports a completed draw. Card details are present only when the
// drawing player is the local one.
type CardDrawn struct {
	PlayerID uuid.UUID
	Card     *CardRef
}

// TurnFinished resets the per-turn tracker and moves the turn pointer.
type TurnFinished struct {
	NextPlayerID uuid.UUID
}

// DisgraceChanged replaces the social-disgrace roster.
type DisgraceChanged struct {
	PlayerIDs []uuid.UUID
}

// ---------------------------------------------------------------------------
// Local intents
// ---------------------------------------------------------------------------

// IntentRecorded stores the resume descriptor for a validated, cancellable
// action while the server's window-open broadcast is in flight.
type IntentRecorded struct {
	ActionID    uuid.UUID
	InitiatorID uuid.UUID
	ActionType  ActionType
	Intent      ActionIntent
}

// ActionFailed surfaces a transient validation or transport failure. It
// clears any optimistic in-progress flags and otherwise leaves state as it
// was before the attempt.
type ActionFailed struct {
	Context string
	Err     string
}

// BeginSetSelection starts the local detective flow with the chosen cards.
type BeginSetSelection struct {
	SetType      DetectiveSetType
	Cards        []CardRef
	UsedWildcard bool
}

// ChooseTarget records the initiator's target choice.
type ChooseTarget struct {
	TargetPlayerID uuid.UUID
}

// ChooseSecret records the initiator's secret choice (self-resolving sets).
type ChooseSecret struct {
	SecretID uuid.UUID
}

// ProvideSecret answers an incoming DetectiveSecretRequested on the target's
// client.
type ProvideSecret struct {
	SecretID uuid.UUID
}

// SetDetectivePickers toggles the coordinator's UI-visibility flags.
type SetDetectivePickers struct {
	TargetPicker bool
	SecretPicker bool
}

// ResetDetective abandons the local detective flow.
type ResetDetective struct{}

// Local event-card step choices. Each updates only its own family record.
type EventChooseCard struct{ CardID uuid.UUID }
type EventChooseSecret struct{ SecretID uuid.UUID }
type EventChooseQuantity struct{ Quantity int }
type EventChooseDirection struct{ Direction FollyDirection }
type EventChoosePlayer struct{ PlayerID uuid.UUID }
type EventChooseSet struct{ Position int }
type EventChooseOwnCard struct{ CardID uuid.UUID }

// MarkDiscarded records a successful discard of a local card.
type MarkDiscarded struct {
	CardID uuid.UUID
}

// GrantSkipDiscard flags that a compound action replaced the primary action
// this turn, so a draw is legal without a prior discard.
type GrantSkipDiscard struct{}

func (ConnectionOpened) isMessage()         {}
func (ConnectionClosed) isMessage()         {}
func (PeerJoined) isMessage()               {}
func (PeerLeft) isMessage()                 {}
func (PlayerDeparted) isMessage()           {}
func (RoomSnapshot) isMessage()             {}
func (PlayerSnapshot) isMessage()           {}
func (GameEnded) isMessage()                {}
func (GameCancelled) isMessage()            {}
func (ActionConfirmed) isMessage()          {}
func (CounterOpened) isMessage()            {}
func (CounterTick) isMessage()              {}
func (CounterChained) isMessage()           {}
func (CounterResolved) isMessage()          {}
func (DetectiveStarted) isMessage()         {}
func (DetectiveTargetChosen) isMessage()    {}
func (DetectiveSecretRequested) isMessage() {}
func (DetectiveCompleted) isMessage()       {}
func (EventStarted) isMessage()             {}
func (EventStepAdvanced) isMessage()        {}
func (EventCompleted) isMessage()           {}
func (CardTradeOffer) isMessage()           {}
func (FollyAdvanced) isMessage()            {}
func (MustDraw) isMessage()                 {}
func (CardDrawn) isMessage()                {}
func (TurnFinished) isMessage()             {}
func (DisgraceChanged) isMessage()          {}
func (IntentRecorded) isMessage()           {}
func (ActionFailed) isMessage()             {}
func (BeginSetSelection) isMessage()        {}
func (ChooseTarget) isMessage()             {}
func (ChooseSecret) isMessage()             {}
func (ProvideSecret) isMessage()            {}
func (SetDetectivePickers) isMessage()      {}
func (ResetDetective) isMessage()           {}
func (EventChooseCard) isMessage()          {}
func (EventChooseSecret) isMessage()        {}
func (EventChooseQuantity) isMessage()      {}
func (EventChooseDirection) isMessage()     {}
func (EventChoosePlayer) isMessage()        {}
func (EventChooseSet) isMessage()           {}
func (EventChooseOwnCard) isMessage()       {}
func (MarkDiscarded) isMessage()            {}
func (GrantSkipDiscard) isMessage()         {}
