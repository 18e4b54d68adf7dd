package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/game"
	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/protocol"
)

// PushClient owns the websocket push channel for one room. At most one
// connection exists at a time: Connect tears down any prior connection before
// dialing, so a reconnect can never leave two readers racing on the same
// store.
type PushClient struct {
	url   string
	token string
	store *game.Store
	log   *logrus.Entry

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPushClient builds a push client bound to the store. url is the full
// websocket endpoint for the room.
func NewPushClient(url, token string, store *game.Store, log *logrus.Logger) *PushClient {
	if log == nil {
		log = logrus.New()
	}
	return &PushClient{
		url:   url,
		token: token,
		store: store,
		log:   log.WithField("component", "push"),
	}
}

// Connect dials the push channel and starts the read loop. Any existing
// connection is closed first and its read loop drained before the new dial.
func (p *PushClient) Connect(ctx context.Context) error {
	p.Close()

	header := http.Header{}
	if p.token != "" {
		header.Set("Authorization", "Bearer "+p.token)
	}
	conn, _, err := websocket.Dial(ctx, p.url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return fmt.Errorf("dial push channel: %w", err)
	}
	// Snapshots can exceed the 32KiB default.
	conn.SetReadLimit(1 << 20)

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.conn = conn
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	p.store.Dispatch(game.ConnectionOpened{})
	go p.readLoop(loopCtx, conn, done)
	return nil
}

// Close tears down the current connection, if any, and waits for its read
// loop to exit.
func (p *PushClient) Close() {
	p.mu.Lock()
	conn, cancel, done := p.conn, p.cancel, p.done
	p.conn, p.cancel, p.done = nil, nil, nil
	p.mu.Unlock()

	if conn == nil {
		return
	}
	cancel()
	conn.Close(websocket.StatusNormalClosure, "client closing")
	<-done
}

// readLoop consumes frames strictly in arrival order. Each frame's transition
// is fully applied, observers included, before the next read.
func (p *PushClient) readLoop(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			reason := err.Error()
			if ctx.Err() != nil {
				reason = "closed by client"
			}
			p.log.WithField("reason", reason).Info("push channel closed")
			p.store.Dispatch(game.ConnectionClosed{Reason: reason})
			return
		}

		env, err := protocol.ParseEnvelope(data)
		if err != nil {
			p.log.WithError(err).Warn("dropping malformed frame")
			continue
		}
		msg, err := Translate(env)
		if err != nil {
			p.log.WithError(err).WithField("kind", env.Kind).Warn("dropping undecodable frame")
			continue
		}
		if msg == nil {
			p.log.WithField("kind", env.Kind).Debug("ignoring unknown message kind")
			continue
		}
		p.store.Dispatch(msg)
	}
}
