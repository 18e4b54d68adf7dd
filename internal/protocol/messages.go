package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the push-channel frame: a kind tag plus a kind-specific
// payload. Unknown kinds are valid frames; the consumer decides whether to
// ignore them.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Push-channel message kinds, grouped by sub-protocol.
const (
	KindPlayerJoined   = "player_joined"
	KindPlayerLeft     = "player_left"
	KindPlayerDeparted = "player_departed"

	KindRoomSnapshot   = "room_snapshot"
	KindPlayerSnapshot = "player_snapshot"
	KindGameEnded      = "game_ended"
	KindGameCancelled  = "game_cancelled"

	KindActionConfirmed = "action_confirmed"
	KindCounterOpened   = "counter_window_opened"
	KindCounterTick     = "counter_window_tick"
	KindCounterChained  = "counter_chained"
	KindCounterResolved = "counter_resolved"

	KindDetectiveStarted   = "detective_started"
	KindDetectiveTarget    = "detective_target_chosen"
	KindDetectiveSecretReq = "detective_secret_requested"
	KindDetectiveCompleted = "detective_completed"

	KindEventStarted   = "event_started"
	KindEventStep      = "event_step"
	KindEventCompleted = "event_completed"
	KindCardTradeOffer = "card_trade_offer"
	KindFollyAdvanced  = "folly_advanced"

	KindMustDraw        = "must_draw"
	KindCardDrawn       = "card_drawn"
	KindTurnFinished    = "turn_finished"
	KindDisgraceChanged = "disgrace_changed"
)

// ParseEnvelope decodes one raw frame.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed push frame: %w", err)
	}
	if env.Kind == "" {
		return Envelope{}, fmt.Errorf("push frame without kind")
	}
	return env, nil
}
