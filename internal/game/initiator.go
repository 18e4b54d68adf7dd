// internal/game/initiator.go
//
// Action Initiator: one proposed action's lifecycle. Validate, then either
// execute the resume descriptor immediately (non-cancellable) or record it
// and wait for the counter window's resolution. Resumption and cancellation
// run here, exactly once, only on the initiating client.
package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/metrics"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

// Caller performs one outbound request/response call. Implementations must
// return a *protocol.CallError for both transport and validation failures.
type Caller interface {
	Do(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// ActionDescriptor describes a proposed action and what to do if it is
// allowed to proceed.
type ActionDescriptor struct {
	Type           ActionType
	Cards          []CardRef
	SetType        DetectiveSetType
	SetPosition    int
	TargetPlayerID uuid.UUID
	Intent         ActionIntent
}

// Initiator orchestrates proposals against the store and the caller.
type Initiator struct {
	store   *Store
	caller  Caller
	log     *logrus.Entry
	metrics *metrics.Metrics
}

// NewInitiator wires an initiator and registers it as the store's effect
// handler.
func NewInitiator(store *Store, caller Caller, log *logrus.Logger, m *metrics.Metrics) *Initiator {
	if log == nil {
		log = logrus.New()
	}
	in := &Initiator{
		store:   store,
		caller:  caller,
		log:     log.WithField("component", "initiator"),
		metrics: m,
	}
	store.RegisterEffectHandler(in)
	return in
}

// Propose runs the validate step and either executes or defers the intent.
// Local precondition failures return before any network call; validation and
// transport failures surface as a transient message and leave state exactly
// as it was.
func (in *Initiator) Propose(ctx context.Context, desc ActionDescriptor) error {
	snap := in.store.Snapshot()
	if err := in.checkPreconditions(snap.State, desc); err != nil {
		return err
	}

	req := protocol.ValidateActionRequest{
		RoomID:         snap.State.RoomID,
		PlayerID:       snap.State.LocalPlayerID,
		ActionType:     string(desc.Type),
		CardIDs:        cardIDs(desc.Cards),
		SetType:        string(desc.SetType),
		SetPosition:    desc.SetPosition,
		TargetPlayerID: desc.TargetPlayerID,
	}
	raw, err := in.caller.Do(ctx, protocol.ValidateActionPath(snap.State.RoomID), req)
	if err != nil {
		in.metrics.IncCallsFailed()
		in.store.Dispatch(ActionFailed{Context: string(desc.Type), Err: err.Error()})
		return fmt.Errorf("validate %s: %w", desc.Type, err)
	}

	var verdict protocol.ValidateActionResponse
	if err := json.Unmarshal(raw, &verdict); err != nil {
		in.store.Dispatch(ActionFailed{Context: string(desc.Type), Err: "malformed validation response"})
		return fmt.Errorf("decode validation response: %w", err)
	}

	if !verdict.Cancellable {
		// The window never opens; the resume descriptor runs immediately,
		// exactly once.
		return in.executeIntent(ctx, desc.Intent, string(desc.Type))
	}

	in.store.Dispatch(IntentRecorded{
		ActionID:    verdict.ActionID,
		InitiatorID: snap.State.LocalPlayerID,
		ActionType:  desc.Type,
		Intent:      desc.Intent,
	})
	return nil
}

// checkPreconditions rejects locally before any network call is made.
func (in *Initiator) checkPreconditions(s GameState, desc ActionDescriptor) error {
	switch desc.Type {
	case ActionCreateSet:
		if s.Draw.HasPlayedSet {
			return fmt.Errorf("a detective set was already played this turn")
		}
		if got, min := countSetCards(desc.Cards, desc.SetType), MinCardsForSet(desc.SetType); got < min {
			return fmt.Errorf("%s set needs %d cards, have %d", desc.SetType, min, got)
		}
	case ActionAddToSet:
		if len(desc.Cards) == 0 {
			return fmt.Errorf("no card selected to add to the set")
		}
	case ActionPlayEvent:
		if s.Draw.HasPlayedEvent {
			return fmt.Errorf("an event card was already played this turn")
		}
	}
	return nil
}

// HandleEffect executes resume/cancel descriptors emitted by the transition
// function. The latest snapshot is always re-read through the store: other
// transitions may have interleaved while the window was open.
func (in *Initiator) HandleEffect(eff Effect, _ Snapshot) {
	switch e := eff.(type) {
	case ExecuteIntent:
		if err := in.executeIntent(context.Background(), e.Intent, "resume"); err != nil {
			// No retry policy: the action is lost until the next
			// authoritative snapshot corrects us.
			in.log.WithError(err).WithField("action_id", e.ActionID).Warn("resume failed")
		}
	case CancelAction:
		snap := in.store.Snapshot()
		req := protocol.CounterCancelRequest{
			RoomID:         snap.State.RoomID,
			PlayerID:       snap.State.LocalPlayerID,
			ActionID:       e.ActionID,
			ActionType:     string(e.ActionType),
			TargetPlayerID: e.TargetPlayerID,
			SetPosition:    e.SetPosition,
		}
		if _, err := in.caller.Do(context.Background(), protocol.CounterCancelPath(snap.State.RoomID), req); err != nil {
			in.metrics.IncCallsFailed()
			in.store.Dispatch(ActionFailed{Context: "cancel " + string(e.ActionType), Err: err.Error()})
		}
	}
}

// executeIntent performs the recorded resume: the remote call if the intent
// needed one, otherwise the recorded local transition.
func (in *Initiator) executeIntent(ctx context.Context, intent ActionIntent, label string) error {
	if intent.Call != nil {
		if _, err := in.caller.Do(ctx, intent.Call.Endpoint, json.RawMessage(intent.Call.Payload)); err != nil {
			in.metrics.IncCallsFailed()
			in.store.Dispatch(ActionFailed{Context: label, Err: err.Error()})
			return fmt.Errorf("execute intent %s: %w", intent.Call.Endpoint, err)
		}
		return nil
	}
	if intent.Local != nil {
		in.store.Dispatch(intent.Local)
	}
	return nil
}

// countSetCards counts detective cards of the given type; a single wildcard
// may stand in for one of them.
func countSetCards(cards []CardRef, setType DetectiveSetType) int {
	count := 0
	wilds := 0
	for _, c := range cards {
		switch {
		case c.Kind == CardDetective && c.SetType == setType:
			count++
		case c.Kind == CardWildcard:
			wilds++
		}
	}
	if wilds > 0 {
		count++ // at most one wildcard per set
	}
	return count
}

func cardIDs(cards []CardRef) []uuid.UUID {
	if len(cards) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
