package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

const callTimeout = 10 * time.Second

// HTTPCaller performs request/response calls against the game server. Every
// failure comes back as a *protocol.CallError so callers can branch on Kind
// without inspecting transport details.
type HTTPCaller struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Entry
}

// NewHTTPCaller builds a caller for one server and session token.
func NewHTTPCaller(baseURL, token string, log *logrus.Logger) *HTTPCaller {
	if log == nil {
		log = logrus.New()
	}
	return &HTTPCaller{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: callTimeout},
		log:     log.WithField("component", "caller"),
	}
}

// Do POSTs the payload as JSON and returns the raw response body on 2xx.
func (c *HTTPCaller) Do(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, protocol.TransportError(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, protocol.TransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", endpoint).Warn("call failed")
		return nil, protocol.TransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, protocol.TransportError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, protocol.ClassifyStatus(resp.StatusCode, serverMessage(raw))
	}
	return raw, nil
}

// serverMessage extracts the server-supplied error text when the body is the
// conventional {"error": "..."} shape, otherwise returns the body as is.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return string(raw)
}
