// internal/game/detective.go
//
// Detective-action coordinator. Two shapes, selected by set type:
//
//	self-resolving:   idle → select_target → select_secret → completed
//	target-resolving: idle → select_target → waiting_target_confirmation
//	                  → target_must_confirm (on the target's client) → completed
package game

import (
	"fmt"

	"github.com/google/uuid"
)

func (s GameState) applyBeginSetSelection(m BeginSetSelection) GameState {
	if s.Detective.Current.Stage != DetStageIdle {
		return s
	}
	s.Detective = idleDetectiveAction()
	s.Detective.Current = DetectiveCurrent{
		SetType:      m.SetType,
		Stage:        DetStageSelectTarget,
		Cards:        append([]CardRef(nil), m.Cards...),
		UsedWildcard: m.UsedWildcard,
	}
	s.Detective.ShowTargetPicker = true
	return s
}

func (s GameState) applyChooseTarget(m ChooseTarget) GameState {
	if s.Detective.Current.Stage != DetStageSelectTarget {
		return s
	}
	if len(s.Detective.AllowedPlayers) > 0 && !containsID(s.Detective.AllowedPlayers, m.TargetPlayerID) {
		return s
	}
	s.Detective.TargetPlayerID = m.TargetPlayerID
	s.Detective.ShowTargetPicker = false
	if TargetResolves(s.Detective.Current.SetType) {
		s.Detective.Current.Stage = DetStageWaitingTarget
	} else {
		s.Detective.Current.Stage = DetStageSelectSecret
		s.Detective.ShowSecretPicker = true
	}
	return s
}

func (s GameState) applyChooseSecret(m ChooseSecret) GameState {
	if s.Detective.Current.Stage != DetStageSelectSecret {
		return s
	}
	s.Detective.ChosenSecretID = m.SecretID
	s.Detective.ShowSecretPicker = false
	return s
}

func (s GameState) applyProvideSecret(m ProvideSecret) GameState {
	if s.Detective.Incoming == nil {
		return s
	}
	s.Detective.ChosenSecretID = m.SecretID
	s.Detective.ShowSecretPicker = false
	return s
}

func (s GameState) applySetDetectivePickers(m SetDetectivePickers) GameState {
	s.Detective.ShowTargetPicker = m.TargetPicker
	s.Detective.ShowSecretPicker = m.SecretPicker
	return s
}

func (s GameState) applyResetDetective() GameState {
	s.Detective = idleDetectiveAction()
	return s
}

// ---------------------------------------------------------------------------
// Inbound detective-protocol messages
// ---------------------------------------------------------------------------

func (s GameState) applyDetectiveStarted(m DetectiveStarted) GameState {
	s.Detective.AllowedPlayers = append([]uuid.UUID(nil), m.AllowedPlayers...)
	s.Detective.InProgress = ActionProgress{
		ActorID: m.ActorID,
		Step:    "started",
		Message: fmt.Sprintf("%s opens a %s investigation", s.nameOf(m.ActorID), m.SetType),
	}
	if m.ActorID == s.LocalPlayerID {
		s.Draw.HasPlayedSet = true
	}
	s.Log = s.Log.append(LogDetective, m.ActorID, s.Detective.InProgress.Message)
	return s
}

func (s GameState) applyDetectiveTargetChosen(m DetectiveTargetChosen) GameState {
	s.Detective.TargetPlayerID = m.TargetPlayerID
	s.Detective.InProgress = ActionProgress{
		ActorID: m.ActorID,
		Step:    "target_selected",
		Message: fmt.Sprintf("%s points at %s", s.nameOf(m.ActorID), s.nameOf(m.TargetPlayerID)),
	}
	s.Log = s.Log.append(LogDetective, m.ActorID, s.Detective.InProgress.Message)
	return s
}

func (s GameState) applyDetectiveSecretRequested(m DetectiveSecretRequested) GameState {
	// This client is the target: it must supply one of its own secrets.
	req := DetectiveRequest{
		ActionID:     m.ActionID,
		FromPlayerID: m.FromPlayerID,
		SetType:      m.SetType,
		Message:      m.Message,
	}
	s.Detective.Incoming = &req
	s.Detective.SecretsPool = append([]Secret(nil), m.Pool...)
	s.Detective.Current.SetType = m.SetType
	s.Detective.Current.Stage = DetStageTargetConfirms
	s.Detective.ShowSecretPicker = true
	s.Detective.InProgress = ActionProgress{
		ActorID: m.FromPlayerID,
		Step:    string(DetStageTargetConfirms),
		Message: fmt.Sprintf("%s demands one of your secrets", s.nameOf(m.FromPlayerID)),
	}
	s.Log = s.Log.append(LogDetective, m.FromPlayerID, s.Detective.InProgress.Message)
	return s
}

func (s GameState) applyDetectiveCompleted(m DetectiveCompleted) GameState {
	// The entire sub-state returns to its idle shape: no leftover target,
	// pool, or in-progress descriptor.
	s.Detective = idleDetectiveAction()
	s.Log = s.Log.append(LogDetective, m.ActorID,
		fmt.Sprintf("%s investigation concluded", m.SetType))
	return s
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
