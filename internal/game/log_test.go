// internal/game/log_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEvictsOldestAtCapacity(t *testing.T) {
	var l EventLog
	for i := 0; i < LogCapacity+10; i++ {
		l = l.append(LogGame, uuid.Nil, fmt.Sprintf("entry %d", i))
	}

	require.Equal(t, LogCapacity, l.Len(), "the log never exceeds its capacity")
	assert.Equal(t, "entry 10", l.Entries[0].Message, "the oldest entries are evicted first")

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("entry %d", LogCapacity+9), latest.Message)
}

func TestLogIDsAreMonotonic(t *testing.T) {
	var l EventLog
	for i := 0; i < LogCapacity+5; i++ {
		l = l.append(LogDraw, uuid.Nil, "x")
	}
	for i := 1; i < l.Len(); i++ {
		assert.Equal(t, l.Entries[i-1].ID+1, l.Entries[i].ID, "ids keep counting across evictions")
	}
	assert.Equal(t, uint64(LogCapacity+5), l.NextID)
}

func TestLogAppendDoesNotMutatePriorValue(t *testing.T) {
	var l EventLog
	l = l.append(LogGame, uuid.Nil, "first")
	before := l

	_ = l.append(LogGame, uuid.Nil, "second")
	assert.Equal(t, 1, before.Len(), "an earlier snapshot keeps its own entries")
}

func TestLatestOnEmptyLog(t *testing.T) {
	var l EventLog
	_, ok := l.Latest()
	assert.False(t, ok)
}

func TestLogCarriesCategoryAndActor(t *testing.T) {
	actor := uuid.New()
	var l EventLog
	l = l.append(LogDetective, actor, "investigation opened")

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, LogDetective, latest.Category)
	assert.Equal(t, actor, latest.ActorID)
	assert.False(t, latest.Timestamp.IsZero())
}
