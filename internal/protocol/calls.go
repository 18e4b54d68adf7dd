// internal/protocol/calls.go
//
// Outbound request/response contracts. Every request carries the acting
// player's identity and the target room; every response is a success payload
// or a structured error (errors.go).
package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// Room lifecycle.
func RoomCreatePath() string            { return "/rooms" }
func RoomJoinPath(roomID string) string { return fmt.Sprintf("/rooms/%s/join", roomID) }
func RoomLeavePath(roomID string) string {
	return fmt.Sprintf("/rooms/%s/leave", roomID)
}
func RoomStartPath(roomID string) string { return fmt.Sprintf("/rooms/%s/start", roomID) }

// Turn actions.
func DiscardPath(roomID string) string    { return fmt.Sprintf("/rooms/%s/discard", roomID) }
func DrawDeckPath(roomID string) string   { return fmt.Sprintf("/rooms/%s/draw", roomID) }
func DraftPickPath(roomID string) string  { return fmt.Sprintf("/rooms/%s/draft", roomID) }
func FinishTurnPath(roomID string) string { return fmt.Sprintf("/rooms/%s/finish-turn", roomID) }

// Counter-play protocol.
func ValidateActionPath(roomID string) string {
	return fmt.Sprintf("/rooms/%s/actions/validate", roomID)
}
func CounterPlayPath(roomID string) string {
	return fmt.Sprintf("/rooms/%s/counter/play", roomID)
}
func CounterCancelPath(roomID string) string {
	return fmt.Sprintf("/rooms/%s/counter/cancel", roomID)
}

// Detective actions.
func DetectiveSubmitPath(roomID string) string {
	return fmt.Sprintf("/rooms/%s/detective/submit", roomID)
}
func SetCreatePath(roomID string) string { return fmt.Sprintf("/rooms/%s/sets", roomID) }
func SetAddPath(roomID string) string    { return fmt.Sprintf("/rooms/%s/sets/add", roomID) }

// EventStepPath advances one event-card family's step sequence.
func EventStepPath(roomID, family string) string {
	return fmt.Sprintf("/rooms/%s/events/%s/step", roomID, family)
}

// RoomCreateRequest opens a new room.
type RoomCreateRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name,omitempty"`
}

// RoomJoinRequest joins (or rejoins) a room.
type RoomJoinRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
}

// RoomStartRequest begins the game.
type RoomStartRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
}

// DiscardRequest discards one hand card.
type DiscardRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
	CardID   uuid.UUID `json:"cardId"`
}

// DrawRequest draws from the deck.
type DrawRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
}

// DraftPickRequest picks one of the face-up draft cards.
type DraftPickRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
	CardID   uuid.UUID `json:"cardId"`
}

// FinishTurnRequest ends the current turn.
type FinishTurnRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
}

// ValidateActionRequest submits a proposed action for validation. The
// response says whether the action is cancellable and, therefore, whether a
// counter window will open before it takes effect.
type ValidateActionRequest struct {
	RoomID         string      `json:"roomId"`
	PlayerID       uuid.UUID   `json:"playerId"`
	ActionType     string      `json:"actionType"`
	CardIDs        []uuid.UUID `json:"cardIds,omitempty"`
	SetType        string      `json:"setType,omitempty"`
	SetPosition    int         `json:"setPosition,omitempty"`
	TargetPlayerID uuid.UUID   `json:"targetPlayerId,omitempty"`
}

// ValidateActionResponse is the validation verdict.
type ValidateActionResponse struct {
	ActionID    uuid.UUID `json:"actionId"`
	Cancellable bool      `json:"cancellable"`
}

// CounterPlayRequest plays an interrupt card into the open window.
type CounterPlayRequest struct {
	RoomID   string    `json:"roomId"`
	PlayerID uuid.UUID `json:"playerId"`
	CardID   uuid.UUID `json:"cardId"`
}

// CounterCancelRequest invokes the compensating cancellation after a window
// resolves as cancelled. Target and position carry the ADD_TO_SET undo
// context.
type CounterCancelRequest struct {
	RoomID         string    `json:"roomId"`
	PlayerID       uuid.UUID `json:"playerId"`
	ActionID       uuid.UUID `json:"actionId"`
	ActionType     string    `json:"actionType"`
	TargetPlayerID uuid.UUID `json:"targetPlayerId,omitempty"`
	SetPosition    int       `json:"setPosition,omitempty"`
}

// DetectiveSubmitRequest completes a detective action with the chosen
// target and secret.
type DetectiveSubmitRequest struct {
	RoomID         string    `json:"roomId"`
	PlayerID       uuid.UUID `json:"playerId"`
	ActionID       uuid.UUID `json:"actionId,omitempty"`
	SetType        string    `json:"setType"`
	TargetPlayerID uuid.UUID `json:"targetPlayerId,omitempty"`
	SecretID       uuid.UUID `json:"secretId,omitempty"`
}

// SetCreateRequest lays a new detective set on the table.
type SetCreateRequest struct {
	RoomID   string      `json:"roomId"`
	PlayerID uuid.UUID   `json:"playerId"`
	SetType  string      `json:"setType"`
	CardIDs  []uuid.UUID `json:"cardIds"`
}

// SetAddRequest adds a card to an existing set.
type SetAddRequest struct {
	RoomID         string    `json:"roomId"`
	PlayerID       uuid.UUID `json:"playerId"`
	TargetPlayerID uuid.UUID `json:"targetPlayerId"`
	SetPosition    int       `json:"setPosition"`
	CardID         uuid.UUID `json:"cardId"`
}

// EventStepRequest advances an event-card family. Only the fields the
// family's current step needs are populated.
type EventStepRequest struct {
	RoomID         string    `json:"roomId"`
	PlayerID       uuid.UUID `json:"playerId"`
	Step           string    `json:"step"`
	CardID         uuid.UUID `json:"cardId,omitempty"`
	SecretID       uuid.UUID `json:"secretId,omitempty"`
	TargetPlayerID uuid.UUID `json:"targetPlayerId,omitempty"`
	Quantity       int       `json:"quantity,omitempty"`
	Direction      string    `json:"direction,omitempty"`
	SetPosition    int       `json:"setPosition,omitempty"`
}
