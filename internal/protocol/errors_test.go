// internal/protocol/errors_test.go
package protocol

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatusTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusBadRequest, KindInvalidSelection},
		{http.StatusForbidden, KindOutOfTurn},
		{http.StatusNotFound, KindRoomNotFound},
		{http.StatusConflict, KindRuleViolation},
		{http.StatusUnprocessableEntity, KindRuleViolation},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}
	for _, tc := range cases {
		err := ClassifyStatus(tc.status, "nope")
		assert.Equal(t, tc.kind, err.Kind, "status %d", tc.status)
		assert.Equal(t, tc.status, err.Status)
	}
}

func TestCallErrorMessageFormats(t *testing.T) {
	withMessage := ClassifyStatus(http.StatusForbidden, "not your turn")
	assert.Equal(t, "out_of_turn: not your turn", withMessage.Error())

	bare := &CallError{Kind: KindServer}
	assert.Equal(t, "server", bare.Error())
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := TransportError(cause)

	assert.Equal(t, KindTransport, err.Kind)
	require.ErrorIs(t, err, cause, "the original failure stays reachable through Unwrap")
	var ce *CallError
	assert.True(t, errors.As(error(err), &ce))
}

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"kind":"counter_window_tick","payload":{"timeRemaining":9}}`))
	require.NoError(t, err)
	assert.Equal(t, KindCounterTick, env.Kind)
	assert.JSONEq(t, `{"timeRemaining":9}`, string(env.Payload))

	_, err = ParseEnvelope([]byte(`{"payload":{}}`))
	require.Error(t, err, "frames without a kind are rejected")

	_, err = ParseEnvelope([]byte(`{{`))
	require.Error(t, err)
}
