// internal/transport/translate_test.go
package transport

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/game"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

func envelope(kind, payload string) protocol.Envelope {
	return protocol.Envelope{Kind: kind, Payload: json.RawMessage(payload)}
}

func TestTranslateCounterMessages(t *testing.T) {
	actionID := uuid.New()
	initiator := uuid.New()

	msg, err := Translate(envelope(protocol.KindCounterOpened, fmt.Sprintf(
		`{"actionId":%q,"initiatorId":%q,"actionType":"CREATE_SET","timeRemaining":15}`,
		actionID, initiator)))
	require.NoError(t, err)
	opened, ok := msg.(game.CounterOpened)
	require.True(t, ok)
	assert.Equal(t, actionID, opened.ActionID)
	assert.Equal(t, initiator, opened.InitiatorID)
	assert.Equal(t, game.ActionCreateSet, opened.ActionType)
	assert.Equal(t, 15, opened.TimeRemaining)

	msg, err = Translate(envelope(protocol.KindCounterResolved, `{"finalResult":"cancelled"}`))
	require.NoError(t, err)
	resolved, ok := msg.(game.CounterResolved)
	require.True(t, ok)
	assert.Equal(t, game.ResolutionCancelled, resolved.FinalResult)
}

func TestTranslateRoomSnapshotKeepsAbsentFieldsNil(t *testing.T) {
	msg, err := Translate(envelope(protocol.KindRoomSnapshot, `{"deckCount":12}`))
	require.NoError(t, err)
	snap, ok := msg.(game.RoomSnapshot)
	require.True(t, ok)

	require.NotNil(t, snap.DeckCount)
	assert.Equal(t, 12, *snap.DeckCount)
	assert.Nil(t, snap.DiscardCount, "unsupplied fields must stay nil so the merge skips them")
	assert.Nil(t, snap.CurrentTurnPlayerID)
	assert.Empty(t, snap.Players)
}

func TestTranslateEventStep(t *testing.T) {
	actor := uuid.New()
	msg, err := Translate(envelope(protocol.KindEventStep, fmt.Sprintf(
		`{"actorId":%q,"family":"dead_card_folly","step":"select_card","direction":"left"}`, actor)))
	require.NoError(t, err)

	step, ok := msg.(game.EventStepAdvanced)
	require.True(t, ok)
	assert.Equal(t, game.EventDeadCardFolly, step.Family)
	assert.Equal(t, game.StepSelectCard, step.Step)
	assert.Equal(t, game.FollyLeft, step.Direction)
}

func TestTranslateDetectiveSecretRequest(t *testing.T) {
	from := uuid.New()
	secret := uuid.New()
	msg, err := Translate(envelope(protocol.KindDetectiveSecretReq, fmt.Sprintf(
		`{"actionId":%q,"fromPlayerId":%q,"setType":"marple","pool":[{"id":%q,"ownerId":%q}]}`,
		uuid.New(), from, secret, uuid.New())))
	require.NoError(t, err)

	req, ok := msg.(game.DetectiveSecretRequested)
	require.True(t, ok)
	assert.Equal(t, from, req.FromPlayerID)
	assert.Equal(t, game.SetMarple, req.SetType)
	require.Len(t, req.Pool, 1)
	assert.Equal(t, secret, req.Pool[0].ID)
}

func TestTranslateCardDrawnWithoutDetails(t *testing.T) {
	player := uuid.New()
	msg, err := Translate(envelope(protocol.KindCardDrawn, fmt.Sprintf(`{"playerId":%q}`, player)))
	require.NoError(t, err)

	drawn, ok := msg.(game.CardDrawn)
	require.True(t, ok)
	assert.Equal(t, player, drawn.PlayerID)
	assert.Nil(t, drawn.Card, "peer draws carry no card details")
}

func TestTranslateUnknownKindIsNil(t *testing.T) {
	msg, err := Translate(envelope("spectator_waved", `{}`))
	require.NoError(t, err)
	assert.Nil(t, msg, "unknown kinds are ignored, not errors")
}

func TestTranslateMalformedPayload(t *testing.T) {
	_, err := Translate(envelope(protocol.KindCounterTick, `{"timeRemaining":"soon"}`))
	require.Error(t, err)
}
