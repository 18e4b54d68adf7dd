// internal/transport/caller_test.go
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

func TestHTTPCallerSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ping", body["probe"])

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewHTTPCaller(srv.URL, "tok", nil)
	raw, err := c.Do(context.Background(), "/rooms/r/draw", map[string]string{"probe": "ping"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
}

func TestHTTPCallerClassifiesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"not your turn"}`))
	}))
	defer srv.Close()

	c := NewHTTPCaller(srv.URL, "", nil)
	_, err := c.Do(context.Background(), "/rooms/r/draw", nil)
	require.Error(t, err)

	var ce *protocol.CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, protocol.KindOutOfTurn, ce.Kind)
	assert.Equal(t, http.StatusForbidden, ce.Status)
	assert.Equal(t, "not your turn", ce.Message)
}

func TestHTTPCallerTransportFailure(t *testing.T) {
	c := NewHTTPCaller("http://127.0.0.1:1", "", nil)
	_, err := c.Do(context.Background(), "/rooms/r/draw", nil)
	require.Error(t, err)

	var ce *protocol.CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, protocol.KindTransport, ce.Kind)
}
