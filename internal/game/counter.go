// internal/game/counter.go
//
// Counter-play protocol: Idle → PendingValidation → WindowOpen → Resolved →
// Idle. The window opens only on the server's broadcast, the countdown is
// display-only, and resolution effects are emitted solely on the initiating
// client (single-resumer rule).
package game

import (
	"fmt"

	"github.com/google/uuid"
)

func (s GameState) applyIntentRecorded(m IntentRecorded) GameState {
	// At most one window system-wide. A second proposal while one is pending
	// is a protocol violation the server would have rejected; drop it here.
	if s.Counter.Active || s.Counter.Intent != nil {
		return s
	}
	intent := m.Intent
	s.Counter = CounterWindow{
		ActionID:    m.ActionID,
		InitiatorID: m.InitiatorID,
		ActionType:  m.ActionType,
		Intent:      &intent,
	}
	return s
}

func (s GameState) applyActionConfirmed(m ActionConfirmed) GameState {
	if !m.Cancellable {
		// Bypasses the protocol entirely; narration only.
		s.Log = s.Log.append(LogCounter, m.InitiatorID,
			fmt.Sprintf("%s plays %s", s.nameOf(m.InitiatorID), m.ActionType))
		return s
	}
	s.Log = s.Log.append(LogCounter, m.InitiatorID,
		fmt.Sprintf("%s proposes %s, it can still be countered", s.nameOf(m.InitiatorID), m.ActionType))
	return s
}

func (s GameState) applyCounterOpened(m CounterOpened) GameState {
	if s.Counter.Active {
		return s
	}
	// Preserve the recorded intent when this client initiated the action.
	var intent *ActionIntent
	if s.Counter.Intent != nil && s.Counter.ActionID == m.ActionID {
		intent = s.Counter.Intent
	}
	s.Counter = CounterWindow{
		Active:        true,
		ActionID:      m.ActionID,
		InitiatorID:   m.InitiatorID,
		ActionType:    m.ActionType,
		TimeRemaining: m.TimeRemaining,
		Intent:        intent,
	}
	s.Log = s.Log.append(LogCounter, m.InitiatorID,
		fmt.Sprintf("counter window open on %s (%ds)", m.ActionType, m.TimeRemaining))
	return s
}

func (s GameState) applyCounterTick(m CounterTick) GameState {
	if !s.Counter.Active {
		return s
	}
	// Display only. The authoritative deadline is the server's; the client
	// never expires the window locally.
	s.Counter.TimeRemaining = m.TimeRemaining
	return s
}

func (s GameState) applyCounterChained(m CounterChained) GameState {
	if !s.Counter.Active {
		return s
	}
	chain := make([]InterruptPlay, 0, len(s.Counter.Chain)+1)
	chain = append(chain, s.Counter.Chain...)
	chain = append(chain, InterruptPlay{PlayerID: m.PlayerID, Timestamp: m.Timestamp})
	s.Counter.Chain = chain
	s.Log = s.Log.append(LogCounter, m.PlayerID,
		fmt.Sprintf("%s plays Not so fast!", s.nameOf(m.PlayerID)))
	return s
}

func (s GameState) applyCounterResolved(m CounterResolved) (GameState, []Effect) {
	if !s.Counter.Active && s.Counter.Intent == nil {
		return s, nil
	}
	window := s.Counter

	var effects []Effect
	isInitiator := window.InitiatorID == s.LocalPlayerID && window.InitiatorID != uuid.Nil
	switch m.FinalResult {
	case ResolutionContinue:
		if isInitiator && window.Intent != nil {
			effects = append(effects, ExecuteIntent{ActionID: window.ActionID, Intent: *window.Intent})
		}
		s.Log = s.Log.append(LogCounter, window.InitiatorID,
			fmt.Sprintf("%s stands, the action goes through", window.ActionType))
	case ResolutionCancelled:
		if isInitiator {
			cancel := CancelAction{ActionID: window.ActionID, ActionType: window.ActionType}
			if window.Intent != nil {
				cancel.TargetPlayerID = window.Intent.TargetPlayerID
				cancel.SetPosition = window.Intent.SetPosition
			}
			effects = append(effects, cancel)
		}
		s.Log = s.Log.append(LogCounter, window.InitiatorID,
			fmt.Sprintf("%s is countered and cancelled", window.ActionType))
	default:
		return s, nil
	}

	// Window record and chain are cleared in the same transition that
	// records the outcome.
	s.Counter = idleCounterWindow()
	return s, effects
}
