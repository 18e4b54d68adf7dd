// internal/game/store.go
package game

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LucasSabino912/DeathOnTheCards-sub000/internal/metrics"
)

// Snapshot is an immutable view of the aggregate at one version.
type Snapshot struct {
	State   GameState
	Version uint64
}

// EffectHandler receives effect descriptors after the state has settled.
// The snapshot is the one produced by the transition that emitted the
// effect; handlers that need even fresher state re-read via Store.Snapshot.
type EffectHandler interface {
	HandleEffect(eff Effect, snap Snapshot)
}

// Observer is notified after every transition.
type Observer func(snap Snapshot)

// Store owns the single mutable GameState. All mutation funnels through
// Dispatch; the state is replaced wholesale, never edited in place, and the
// version increases monotonically with every transition.
type Store struct {
	mu      sync.Mutex
	state   GameState
	version uint64

	handlers  []EffectHandler
	observers []Observer

	log     *logrus.Entry
	metrics *metrics.Metrics
}

// NewStore builds a store around the initial aggregate.
func NewStore(initial GameState, log *logrus.Logger, m *metrics.Metrics) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		state:   initial,
		log:     log.WithField("component", "store"),
		metrics: m,
	}
}

// RegisterEffectHandler adds a handler for emitted effects. Call during
// wiring, before messages flow.
func (st *Store) RegisterEffectHandler(h EffectHandler) {
	st.handlers = append(st.handlers, h)
}

// SubscribeFn adds an observer notified after every transition.
func (st *Store) SubscribeFn(o Observer) {
	st.observers = append(st.observers, o)
}

// Snapshot returns the latest state and version. Collaborators must always
// re-read through here instead of capturing state at subscription time.
func (st *Store) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return Snapshot{State: st.state, Version: st.version}
}

// Dispatch applies one message. The transition runs under the store lock;
// effects and observer notifications run after the new state has settled.
func (st *Store) Dispatch(msg Message) Snapshot {
	st.mu.Lock()
	next, effects := Apply(st.state, msg)
	st.state = next
	st.version++
	snap := Snapshot{State: next, Version: st.version}
	st.mu.Unlock()

	st.metrics.IncTransitions()
	st.record(msg, snap)

	for _, o := range st.observers {
		o(snap)
	}
	for _, eff := range effects {
		st.metrics.IncEffects()
		for _, h := range st.handlers {
			h.HandleEffect(eff, snap)
		}
	}
	return snap
}

// record emits transition traces and keeps the protocol counters honest.
func (st *Store) record(msg Message, snap Snapshot) {
	switch msg.(type) {
	case CounterOpened:
		st.metrics.IncWindowsOpened()
	case CounterResolved:
		st.metrics.IncWindowsResolved(string(msg.(CounterResolved).FinalResult))
	case ConnectionOpened:
		st.metrics.SetConnected(true)
	case ConnectionClosed:
		st.metrics.SetConnected(false)
	}
	st.log.WithFields(logrus.Fields{
		"version": snap.Version,
		"message": messageName(msg),
	}).Debug("transition applied")
}

func messageName(msg Message) string {
	switch msg.(type) {
	case ConnectionOpened:
		return "connection_opened"
	case ConnectionClosed:
		return "connection_closed"
	case PeerJoined:
		return "peer_joined"
	case PeerLeft:
		return "peer_left"
	case PlayerDeparted:
		return "player_departed"
	case RoomSnapshot:
		return "room_snapshot"
	case PlayerSnapshot:
		return "player_snapshot"
	case GameEnded:
		return "game_ended"
	case GameCancelled:
		return "game_cancelled"
	case IntentRecorded:
		return "intent_recorded"
	case ActionConfirmed:
		return "action_confirmed"
	case CounterOpened:
		return "counter_opened"
	case CounterTick:
		return "counter_tick"
	case CounterChained:
		return "counter_chained"
	case CounterResolved:
		return "counter_resolved"
	case DetectiveStarted:
		return "detective_started"
	case DetectiveTargetChosen:
		return "detective_target_chosen"
	case DetectiveSecretRequested:
		return "detective_secret_requested"
	case DetectiveCompleted:
		return "detective_completed"
	case EventStarted:
		return "event_started"
	case EventStepAdvanced:
		return "event_step_advanced"
	case EventCompleted:
		return "event_completed"
	case CardTradeOffer:
		return "card_trade_offer"
	case FollyAdvanced:
		return "folly_advanced"
	case MustDraw:
		return "must_draw"
	case CardDrawn:
		return "card_drawn"
	case TurnFinished:
		return "turn_finished"
	case DisgraceChanged:
		return "disgrace_changed"
	case ActionFailed:
		return "action_failed"
	default:
		return "local_intent"
	}
}
