// internal/game/effects.go
package game

import "github.com/google/uuid"

// Effect is an inert side-effect descriptor emitted by a transition. The
// store hands effects to registered handlers only after the new state has
// settled; nothing inside the transition function performs I/O.
type Effect interface {
	isEffect()
}

// ExecuteIntent asks the initiator to perform the recorded resume exactly
// once: re-issue the remote call, or replay the local transition. Emitted
// only on the client matching the window's InitiatorID.
type ExecuteIntent struct {
	ActionID uuid.UUID
	Intent   ActionIntent
}

// CancelAction asks the initiator to invoke the compensating cancellation
// for a cancelled action, carrying the action-type-specific undo context.
type CancelAction struct {
	ActionID       uuid.UUID
	ActionType     ActionType
	TargetPlayerID uuid.UUID
	SetPosition    int
}

func (ExecuteIntent) isEffect() {}
func (CancelAction) isEffect()  {}
