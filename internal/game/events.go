// internal/game/events.go
//
// Event-card coordinator: one generic progress envelope plus one specialized
// record per card family. Each family implements EventVariant with its own
// step sequence; the generic envelope never re-derives per-family shapes.
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// EventFamily identifies an event card's effect family.
type EventFamily string

const (
	EventLookAshes     EventFamily = "look_into_ashes"
	EventOneMore       EventFamily = "one_more"
	EventDelayEscape   EventFamily = "delay_escape"
	EventCardsOffTable EventFamily = "cards_off_table"
	EventAnotherVictim EventFamily = "another_victim"
	EventDeadCardFolly EventFamily = "dead_card_folly"
	EventCardTrade     EventFamily = "card_trade"
)

// EventStep labels one step of a family's sequence.
type EventStep string

const (
	StepStarted          EventStep = "started"
	StepSelectCard       EventStep = "select_card"
	StepSelectSecret     EventStep = "select_secret"
	StepSelectPlayer     EventStep = "select_player"
	StepSelectQuantity   EventStep = "select_quantity"
	StepSelectSet        EventStep = "select_set"
	StepSelectDirection  EventStep = "select_direction"
	StepSelectOwnCard    EventStep = "select_own_card"
	StepTargetSelectCard EventStep = "target_select_card"
	StepCompleted        EventStep = "completed"
)

// FollyDirection is the pass direction for Dead Card Folly.
type FollyDirection string

const (
	FollyLeft  FollyDirection = "left"
	FollyRight FollyDirection = "right"
)

// EventVariant is implemented by every family record. Steps returns the
// family's full sequence in order; the terminal step is always StepCompleted.
type EventVariant interface {
	Family() EventFamily
	Steps() []EventStep
}

// LookAshesState: look at cards buried in the discard ("the ashes") and
// recover one.
type LookAshesState struct {
	Active       bool
	Candidates   []CardRef
	ChosenCardID uuid.UUID
}

func (LookAshesState) Family() EventFamily { return EventLookAshes }
func (LookAshesState) Steps() []EventStep {
	return []EventStep{StepStarted, StepSelectCard, StepCompleted}
}

// OneMoreState: "And Then There Was One More": move a secret to a player.
type OneMoreState struct {
	Active         bool
	SecretID       uuid.UUID
	TargetPlayerID uuid.UUID
}

func (OneMoreState) Family() EventFamily { return EventOneMore }
func (OneMoreState) Steps() []EventStep {
	return []EventStep{StepSelectSecret, StepSelectPlayer, StepCompleted}
}

// DelayEscapeState: "Delay the Murderer's Escape": return deck cards.
type DelayEscapeState struct {
	Active   bool
	Quantity int
}

func (DelayEscapeState) Family() EventFamily { return EventDelayEscape }
func (DelayEscapeState) Steps() []EventStep {
	return []EventStep{StepSelectQuantity, StepCompleted}
}

// CardsOffTableState: force a player to discard their instant cards.
type CardsOffTableState struct {
	Active         bool
	TargetPlayerID uuid.UUID
}

func (CardsOffTableState) Family() EventFamily { return EventCardsOffTable }
func (CardsOffTableState) Steps() []EventStep {
	return []EventStep{StepSelectPlayer, StepCompleted}
}

// AnotherVictimState: steal a played detective set.
type AnotherVictimState struct {
	Active         bool
	TargetPlayerID uuid.UUID
	SetPosition    int
}

func (AnotherVictimState) Family() EventFamily { return EventAnotherVictim }
func (AnotherVictimState) Steps() []EventStep {
	return []EventStep{StepSelectPlayer, StepSelectSet, StepCompleted}
}

// DeadCardFollyState: every player passes a card in a chosen direction; the
// select_card step repeats once per remaining player.
type DeadCardFollyState struct {
	Active           bool
	Direction        FollyDirection
	RemainingPlayers []uuid.UUID
	CurrentPlayerID  uuid.UUID
	ChosenCardID     uuid.UUID
}

func (DeadCardFollyState) Family() EventFamily { return EventDeadCardFolly }
func (DeadCardFollyState) Steps() []EventStep {
	return []EventStep{StepSelectDirection, StepSelectCard, StepCompleted}
}

// CardTradeState: trade one card with a chosen player; the target picks the
// card they give back.
type CardTradeState struct {
	Active         bool
	TargetPlayerID uuid.UUID
	OwnCardID      uuid.UUID
	IncomingCardID uuid.UUID
	FromPlayerID   uuid.UUID
}

func (CardTradeState) Family() EventFamily { return EventCardTrade }
func (CardTradeState) Steps() []EventStep {
	return []EventStep{StepSelectPlayer, StepSelectOwnCard, StepTargetSelectCard, StepCompleted}
}

// EventProgress is the generic narration envelope shared by all families.
type EventProgress struct {
	ActorID uuid.UUID
	Family  EventFamily
	Step    EventStep
	Message string
}

// Active reports whether any event action is in flight.
func (p EventProgress) Active() bool { return p.Family != "" }

// EventAction nests the envelope and every family record. Each record resets
// to its idle shape independently when its own family completes.
type EventAction struct {
	InProgress EventProgress

	LookAshes     LookAshesState
	OneMore       OneMoreState
	DelayEscape   DelayEscapeState
	CardsOffTable CardsOffTableState
	AnotherVictim AnotherVictimState
	DeadCardFolly DeadCardFollyState
	CardTrade     CardTradeState
}

// variant returns the family record as its EventVariant view.
func (e EventAction) variant(f EventFamily) (EventVariant, bool) {
	switch f {
	case EventLookAshes:
		return e.LookAshes, true
	case EventOneMore:
		return e.OneMore, true
	case EventDelayEscape:
		return e.DelayEscape, true
	case EventCardsOffTable:
		return e.CardsOffTable, true
	case EventAnotherVictim:
		return e.AnotherVictim, true
	case EventDeadCardFolly:
		return e.DeadCardFolly, true
	case EventCardTrade:
		return e.CardTrade, true
	}
	return nil, false
}

// InitialStep returns the first step of a family's sequence.
func InitialStep(f EventFamily) (EventStep, bool) {
	var probe EventAction
	v, ok := probe.variant(f)
	if !ok {
		return "", false
	}
	return v.Steps()[0], true
}

// NextStep returns the step following cur in the family's sequence.
// StepCompleted is terminal. Dead Card Folly's select_card step repeats, so
// advancing it is driven by FollyAdvanced messages rather than this table.
func NextStep(f EventFamily, cur EventStep) (EventStep, bool) {
	var probe EventAction
	v, ok := probe.variant(f)
	if !ok {
		return "", false
	}
	steps := v.Steps()
	for i, s := range steps {
		if s == cur && i+1 < len(steps) {
			return steps[i+1], true
		}
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

func (s GameState) applyEventStarted(m EventStarted) GameState {
	// One event action at a time. An ignored start is narrated nowhere; the
	// authoritative snapshot will correct whichever client is behind.
	if s.Event.InProgress.Active() {
		return s
	}
	first, ok := InitialStep(m.Family)
	if !ok {
		return s
	}

	s.Event.InProgress = EventProgress{
		ActorID: m.ActorID,
		Family:  m.Family,
		Step:    first,
		Message: fmt.Sprintf("%s plays %s", s.nameOf(m.ActorID), m.Family),
	}
	switch m.Family {
	case EventLookAshes:
		s.Event.LookAshes = LookAshesState{Active: true}
	case EventOneMore:
		s.Event.OneMore = OneMoreState{Active: true}
	case EventDelayEscape:
		s.Event.DelayEscape = DelayEscapeState{Active: true}
	case EventCardsOffTable:
		s.Event.CardsOffTable = CardsOffTableState{Active: true}
	case EventAnotherVictim:
		s.Event.AnotherVictim = AnotherVictimState{Active: true}
	case EventDeadCardFolly:
		s.Event.DeadCardFolly = DeadCardFollyState{Active: true}
	case EventCardTrade:
		s.Event.CardTrade = CardTradeState{Active: true}
	}

	if m.ActorID == s.LocalPlayerID {
		s.Draw.HasPlayedEvent = true
	}
	s.Log = s.Log.append(LogEvent, m.ActorID, s.Event.InProgress.Message)
	return s
}

func (s GameState) applyEventStepAdvanced(m EventStepAdvanced) GameState {
	if !s.Event.InProgress.Active() || s.Event.InProgress.Family != m.Family {
		return s
	}
	s.Event.InProgress.Step = m.Step
	s.Event.InProgress.Message = fmt.Sprintf("%s: %s", m.Family, m.Step)

	switch m.Family {
	case EventLookAshes:
		if len(m.Candidates) > 0 {
			s.Event.LookAshes.Candidates = append([]CardRef(nil), m.Candidates...)
		}
	case EventOneMore:
		if m.TargetPlayerID != uuid.Nil {
			s.Event.OneMore.TargetPlayerID = m.TargetPlayerID
		}
	case EventDelayEscape:
		if m.Quantity > 0 {
			s.Event.DelayEscape.Quantity = m.Quantity
		}
	case EventCardsOffTable:
		if m.TargetPlayerID != uuid.Nil {
			s.Event.CardsOffTable.TargetPlayerID = m.TargetPlayerID
		}
	case EventAnotherVictim:
		if m.TargetPlayerID != uuid.Nil {
			s.Event.AnotherVictim.TargetPlayerID = m.TargetPlayerID
		}
		if m.Step == StepSelectSet {
			s.Event.AnotherVictim.SetPosition = m.SetPosition
		}
	case EventDeadCardFolly:
		if m.Direction != "" {
			s.Event.DeadCardFolly.Direction = m.Direction
		}
		if m.CurrentPlayerID != uuid.Nil {
			s.Event.DeadCardFolly.CurrentPlayerID = m.CurrentPlayerID
		}
	case EventCardTrade:
		if m.TargetPlayerID != uuid.Nil {
			s.Event.CardTrade.TargetPlayerID = m.TargetPlayerID
		}
	}

	s.Log = s.Log.append(LogEvent, m.ActorID, s.Event.InProgress.Message)
	return s
}

func (s GameState) applyEventCompleted(m EventCompleted) GameState {
	switch m.Family {
	case EventLookAshes:
		s.Event.LookAshes = LookAshesState{}
	case EventOneMore:
		s.Event.OneMore = OneMoreState{}
	case EventDelayEscape:
		s.Event.DelayEscape = DelayEscapeState{}
	case EventCardsOffTable:
		s.Event.CardsOffTable = CardsOffTableState{}
	case EventAnotherVictim:
		s.Event.AnotherVictim = AnotherVictimState{}
	case EventDeadCardFolly:
		s.Event.DeadCardFolly = DeadCardFollyState{}
	case EventCardTrade:
		s.Event.CardTrade = CardTradeState{}
	default:
		return s
	}
	if s.Event.InProgress.Family == m.Family {
		s.Event.InProgress = EventProgress{}
	}
	s.Log = s.Log.append(LogEvent, m.ActorID, fmt.Sprintf("%s resolved", m.Family))
	return s
}

func (s GameState) applyCardTradeOffer(m CardTradeOffer) GameState {
	if !s.Event.CardTrade.Active {
		return s
	}
	s.Event.CardTrade.FromPlayerID = m.FromPlayerID
	s.Event.CardTrade.IncomingCardID = m.CardID
	s.Event.InProgress.Step = StepTargetSelectCard
	s.Log = s.Log.append(LogEvent, m.FromPlayerID,
		fmt.Sprintf("%s offers a card in trade", s.nameOf(m.FromPlayerID)))
	return s
}

func (s GameState) applyFollyAdvanced(m FollyAdvanced) GameState {
	if !s.Event.DeadCardFolly.Active {
		return s
	}
	s.Event.DeadCardFolly.CurrentPlayerID = m.CurrentPlayerID
	s.Event.DeadCardFolly.ChosenCardID = uuid.Nil
	remaining := s.Event.DeadCardFolly.RemainingPlayers
	for i, id := range remaining {
		if id == m.CurrentPlayerID {
			trimmed := make([]uuid.UUID, 0, len(remaining)-1)
			trimmed = append(trimmed, remaining[:i]...)
			trimmed = append(trimmed, remaining[i+1:]...)
			s.Event.DeadCardFolly.RemainingPlayers = trimmed
			break
		}
	}
	s.Event.InProgress.Step = StepSelectCard
	s.Log = s.Log.append(LogEvent, m.CurrentPlayerID,
		fmt.Sprintf("%s must pass a card", s.nameOf(m.CurrentPlayerID)))
	return s
}

// Local step choices route on the active family so a stray intent for an
// inactive family is a no-op.

func (s GameState) applyEventChooseCard(m EventChooseCard) GameState {
	switch s.Event.InProgress.Family {
	case EventLookAshes:
		s.Event.LookAshes.ChosenCardID = m.CardID
	case EventDeadCardFolly:
		s.Event.DeadCardFolly.ChosenCardID = m.CardID
	default:
		return s
	}
	return s
}

func (s GameState) applyEventChooseSecret(m EventChooseSecret) GameState {
	if s.Event.InProgress.Family != EventOneMore {
		return s
	}
	s.Event.OneMore.SecretID = m.SecretID
	return s
}

func (s GameState) applyEventChooseQuantity(m EventChooseQuantity) GameState {
	if s.Event.InProgress.Family != EventDelayEscape || m.Quantity <= 0 {
		return s
	}
	s.Event.DelayEscape.Quantity = m.Quantity
	return s
}

func (s GameState) applyEventChooseDirection(m EventChooseDirection) GameState {
	if s.Event.InProgress.Family != EventDeadCardFolly {
		return s
	}
	if m.Direction != FollyLeft && m.Direction != FollyRight {
		return s
	}
	s.Event.DeadCardFolly.Direction = m.Direction
	return s
}

func (s GameState) applyEventChoosePlayer(m EventChoosePlayer) GameState {
	switch s.Event.InProgress.Family {
	case EventOneMore:
		s.Event.OneMore.TargetPlayerID = m.PlayerID
	case EventCardsOffTable:
		s.Event.CardsOffTable.TargetPlayerID = m.PlayerID
	case EventAnotherVictim:
		s.Event.AnotherVictim.TargetPlayerID = m.PlayerID
	case EventCardTrade:
		s.Event.CardTrade.TargetPlayerID = m.PlayerID
	default:
		return s
	}
	return s
}

func (s GameState) applyEventChooseSet(m EventChooseSet) GameState {
	if s.Event.InProgress.Family != EventAnotherVictim || m.Position < 0 {
		return s
	}
	s.Event.AnotherVictim.SetPosition = m.Position
	return s
}

func (s GameState) applyEventChooseOwnCard(m EventChooseOwnCard) GameState {
	if s.Event.InProgress.Family != EventCardTrade {
		return s
	}
	s.Event.CardTrade.OwnCardID = m.CardID
	return s
}
