// internal/game/draw_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(kind CardKind) CardRef {
	return CardRef{ID: uuid.New(), Kind: kind}
}

func TestDrawRequiresDiscardFirst(t *testing.T) {
	s, local, _ := testRoster()
	s.CurrentTurnPlayerID = local
	s.Hand = []CardRef{card(CardDetective), card(CardEvent)}

	assert.False(t, s.CanDraw(), "drawing before discarding is illegal")
	assert.True(t, s.CanDiscard())

	s, _ = Apply(s, MarkDiscarded{CardID: s.Hand[0].ID})
	assert.True(t, s.Draw.HasDiscarded)
	assert.True(t, s.CanDraw(), "a discard unlocks the draw")
	assert.False(t, s.CanDiscard(), "only one discard per normal turn")
}

func TestSkipDiscardUnlocksDraw(t *testing.T) {
	s, local, _ := testRoster()
	s.CurrentTurnPlayerID = local

	require.False(t, s.CanDraw())
	s, _ = Apply(s, GrantSkipDiscard{})
	assert.True(t, s.CanDraw(), "a compound action stands in for the discard")
}

func TestDisgracedPlayerExactlyOneDiscardOneDraw(t *testing.T) {
	s, local, _ := testRoster()
	s.CurrentTurnPlayerID = local
	s.Disgraced = []uuid.UUID{local}
	s.Hand = []CardRef{card(CardDetective)}

	assert.True(t, s.CanDiscard())
	assert.False(t, s.CanDraw(), "disgraced players must discard before drawing")

	s, _ = Apply(s, MarkDiscarded{CardID: s.Hand[0].ID})
	assert.False(t, s.CanDiscard())
	assert.True(t, s.CanDraw())

	drawn := card(CardDetective)
	s, _ = Apply(s, CardDrawn{PlayerID: local, Card: &drawn})
	assert.False(t, s.CanDraw(), "disgraced players get exactly one draw")
}

func TestHandCapBlocksDraw(t *testing.T) {
	s, local, _ := testRoster()
	s.CurrentTurnPlayerID = local
	s.Draw.SkipDiscard = true
	for i := 0; i < MaxHandSize; i++ {
		s.Hand = append(s.Hand, card(CardDetective))
	}
	assert.False(t, s.CanDraw(), "a full hand blocks further draws")
}

func TestTurnFinishIsTheOnlyTrackerReset(t *testing.T) {
	s, local, peer := testRoster()
	s.CurrentTurnPlayerID = local
	s.Draw = DrawAction{
		CardsToDrawRemaining: 2,
		HasDiscarded:         true,
		HasDrawn:             true,
		SkipDiscard:          true,
		HasPlayedSet:         true,
		HasPlayedEvent:       true,
	}

	// Unrelated messages leave the tracker alone.
	s, _ = Apply(s, PeerLeft{PlayerID: peer})
	assert.True(t, s.Draw.HasPlayedSet)
	assert.True(t, s.Draw.HasPlayedEvent)

	s, _ = Apply(s, TurnFinished{NextPlayerID: peer})
	assert.Equal(t, DrawAction{}, s.Draw, "turn finish resets every per-turn flag")
	assert.Equal(t, peer, s.CurrentTurnPlayerID)
}

func TestCardDrawnLocalUpdatesHandAndDeck(t *testing.T) {
	s, local, _ := testRoster()
	s.CurrentTurnPlayerID = local
	s.DeckCount = 10
	s.Draw.CardsToDrawRemaining = 2

	drawn := card(CardEvent)
	s, _ = Apply(s, CardDrawn{PlayerID: local, Card: &drawn})

	require.Len(t, s.Hand, 1)
	assert.Equal(t, drawn.ID, s.Hand[0].ID)
	assert.Equal(t, 9, s.DeckCount)
	assert.Equal(t, 1, s.Draw.CardsToDrawRemaining)
	assert.True(t, s.Draw.HasDrawn)
}

func TestCardDrawnByPeerBumpsRosterHandSize(t *testing.T) {
	s, _, peer := testRoster()
	s.DeckCount = 10
	s, _ = Apply(s, MustDraw{PlayerID: peer, Count: 1})
	assert.Equal(t, peer, s.Draw.OtherPlayerDrawing)

	s, _ = Apply(s, CardDrawn{PlayerID: peer, Card: nil})
	info, ok := s.PlayerByID(peer)
	require.True(t, ok)
	assert.Equal(t, 1, info.HandSize)
	assert.Equal(t, uuid.Nil, s.Draw.OtherPlayerDrawing, "the narration flag clears once the peer draws")
	assert.Empty(t, s.Hand, "peer draws never touch the local hand")
}

func TestOutOfTurnDrawAndDiscardIllegal(t *testing.T) {
	s, _, peer := testRoster()
	s.CurrentTurnPlayerID = peer
	s.Draw.SkipDiscard = true

	assert.False(t, s.CanDraw())
	assert.False(t, s.CanDiscard())
}
