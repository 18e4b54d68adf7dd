// internal/game/apply_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusMessage struct{}

func (bogusMessage) isMessage() {}

func TestUnknownMessageIsNoOp(t *testing.T) {
	s, _, _ := testRoster()
	after, effects := Apply(s, bogusMessage{})
	assert.Empty(t, effects)
	assert.Equal(t, s, after, "unrecognized messages must leave the state untouched")
}

func TestEmptyRosterNeverClobbersKnownPlayers(t *testing.T) {
	s, _, _ := testRoster()
	require.Len(t, s.Players, 2)

	after, _ := Apply(s, RoomSnapshot{Players: []PlayerInfo{}})
	assert.Len(t, after.Players, 2, "an empty roster update is ignored in favor of the last non-empty one")
}

func TestRoomSnapshotMergesOnlySuppliedFields(t *testing.T) {
	s, _, _ := testRoster()
	s.DeckCount = 30
	s.DiscardCount = 4

	deck := 25
	after, _ := Apply(s, RoomSnapshot{DeckCount: &deck})
	assert.Equal(t, 25, after.DeckCount)
	assert.Equal(t, 4, after.DiscardCount, "absent fields stay at their previous values")
	assert.Len(t, after.Players, 2)
}

func TestPlayerSnapshotMergesHandAndSecrets(t *testing.T) {
	s, local, _ := testRoster()
	s.Hand = []CardRef{card(CardDetective)}

	after, _ := Apply(s, PlayerSnapshot{Hand: nil, Secrets: []Secret{{ID: uuid.New(), OwnerID: local}}})
	assert.Len(t, after.Hand, 1, "a snapshot without a hand keeps the known hand")
	assert.Len(t, after.Secrets, 1)

	remaining := 2
	after, _ = Apply(after, PlayerSnapshot{CardsToDrawRemaining: &remaining})
	assert.Equal(t, 2, after.Draw.CardsToDrawRemaining)
}

func TestPeerJoinRefreshesExistingEntry(t *testing.T) {
	s, _, peer := testRoster()
	s, _ = Apply(s, PeerLeft{PlayerID: peer})
	info, _ := s.PlayerByID(peer)
	require.False(t, info.Connected)

	s, _ = Apply(s, PeerJoined{Player: PlayerInfo{ID: peer, Name: "Japp", HandSize: 3}})
	info, ok := s.PlayerByID(peer)
	require.True(t, ok)
	assert.True(t, info.Connected, "a rejoin flips the entry back to connected")
	assert.Equal(t, 3, info.HandSize)
	assert.Len(t, s.Players, 2, "rejoining must not duplicate the roster entry")
}

func TestPlayerDepartedRemovesEntry(t *testing.T) {
	s, _, peer := testRoster()
	s, _ = Apply(s, PlayerDeparted{PlayerID: peer})
	_, ok := s.PlayerByID(peer)
	assert.False(t, ok)
	assert.Len(t, s.Players, 1)
}

func TestConnectionLifecycle(t *testing.T) {
	s, _, _ := testRoster()
	s, _ = Apply(s, ConnectionOpened{})
	assert.Equal(t, ConnConnected, s.Connection)

	s, _ = Apply(s, ConnectionClosed{Reason: "server gone"})
	assert.Equal(t, ConnDisconnected, s.Connection)
	latest, _ := s.Log.Latest()
	assert.Contains(t, latest.Message, "server gone")
}

func TestGameEndedRecordsOutcome(t *testing.T) {
	s, _, peer := testRoster()
	s, _ = Apply(s, GameEnded{WinnerID: peer, Reason: "all secrets revealed"})
	assert.True(t, s.Outcome.Finished)
	assert.Equal(t, peer, s.Outcome.WinnerID)
}

func TestActionFailedClearsOptimisticDetectiveFlow(t *testing.T) {
	s, _, peer := testRoster()
	s, _ = Apply(s, BeginSetSelection{SetType: SetPyne, Cards: []CardRef{card(CardDetective), card(CardDetective)}})
	s, _ = Apply(s, ChooseTarget{TargetPlayerID: peer})

	s, _ = Apply(s, ActionFailed{Context: "CREATE_SET", Err: "rule violation"})
	assert.Equal(t, DetectiveAction{}, s.Detective, "a failed proposal abandons the local flow")

	latest, ok := s.Log.Latest()
	require.True(t, ok)
	assert.Equal(t, LogError, latest.Category)
}

func TestActionFailedKeepsIncomingRequest(t *testing.T) {
	s, _, peer := testRoster()
	s, _ = Apply(s, DetectiveSecretRequested{ActionID: uuid.New(), FromPlayerID: peer, SetType: SetMarple})

	s, _ = Apply(s, ActionFailed{Context: "PLAY_EVENT", Err: "out of turn"})
	require.NotNil(t, s.Detective.Incoming,
		"a local failure must not discard another player's pending request")
}
