// internal/game/store_test.go
package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	effects   []Effect
	snapshots []Snapshot
}

func (h *recordingHandler) HandleEffect(eff Effect, snap Snapshot) {
	h.effects = append(h.effects, eff)
	h.snapshots = append(h.snapshots, snap)
}

func newTestStore(t *testing.T) (*Store, uuid.UUID, uuid.UUID) {
	t.Helper()
	s, local, peer := testRoster()
	return NewStore(s, nil, nil), local, peer
}

func TestStoreVersionIncreasesMonotonically(t *testing.T) {
	st, _, peer := newTestStore(t)
	require.Equal(t, uint64(0), st.Snapshot().Version)

	snap := st.Dispatch(ConnectionOpened{})
	assert.Equal(t, uint64(1), snap.Version)

	snap = st.Dispatch(PeerLeft{PlayerID: peer})
	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, uint64(2), st.Snapshot().Version)
}

func TestStoreObserverSeesSettledState(t *testing.T) {
	st, _, _ := newTestStore(t)
	var seen []Snapshot
	st.SubscribeFn(func(snap Snapshot) { seen = append(seen, snap) })

	st.Dispatch(ConnectionOpened{})
	require.Len(t, seen, 1)
	assert.Equal(t, ConnConnected, seen[0].State.Connection,
		"observers run after the transition, never on the prior state")
}

func TestStoreDeliversEffectsAfterStateSettles(t *testing.T) {
	st, local, _ := newTestStore(t)
	h := &recordingHandler{}
	st.RegisterEffectHandler(h)

	actionID := uuid.New()
	st.Dispatch(IntentRecorded{
		ActionID:    actionID,
		InitiatorID: local,
		ActionType:  ActionCreateSet,
		Intent:      ActionIntent{Call: &RemoteCallIntent{Endpoint: "/x", Payload: []byte(`{}`)}},
	})
	st.Dispatch(CounterOpened{ActionID: actionID, InitiatorID: local, ActionType: ActionCreateSet, TimeRemaining: 15})
	require.Empty(t, h.effects, "no effect may run before a resolution arrives")

	st.Dispatch(CounterResolved{FinalResult: ResolutionContinue})
	require.Len(t, h.effects, 1)
	assert.IsType(t, ExecuteIntent{}, h.effects[0])
	assert.False(t, h.snapshots[0].State.Counter.Active,
		"the handler observes the post-resolution state, with the window already cleared")
}

func TestStoreUnknownMessageStillBumpsVersion(t *testing.T) {
	st, _, _ := newTestStore(t)
	before := st.Snapshot()
	after := st.Dispatch(bogusMessage{})
	assert.Equal(t, before.Version+1, after.Version)
	assert.Equal(t, before.State, after.State)
}

func TestStoreSnapshotIsStableAcrossLaterDispatches(t *testing.T) {
	st, _, peer := newTestStore(t)
	st.Dispatch(CounterOpened{ActionID: uuid.New(), InitiatorID: peer, ActionType: ActionCreateSet, TimeRemaining: 15})
	old := st.Snapshot()

	st.Dispatch(CounterChained{PlayerID: peer, Timestamp: time.Now()})
	assert.Empty(t, old.State.Counter.Chain, "an earlier snapshot never sees later chain entries")
	assert.Len(t, st.Snapshot().State.Counter.Chain, 1)
}
