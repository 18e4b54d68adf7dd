// internal/game/log.go
package game

import (
	"time"

	"github.com/google/uuid"
)

// LogCapacity bounds the narration log; the oldest entry is evicted first.
const LogCapacity = 50

// LogCategory classifies a narration entry.
type LogCategory string

const (
	LogConnection LogCategory = "connection"
	LogTurn       LogCategory = "turn"
	LogCounter    LogCategory = "counter"
	LogDetective  LogCategory = "detective"
	LogEvent      LogCategory = "event"
	LogDraw       LogCategory = "draw"
	LogGame       LogCategory = "game"
	LogError      LogCategory = "error"
)

// LogEntry is one human-readable game event.
type LogEntry struct {
	ID        uint64      `json:"id"`
	Message   string      `json:"message"`
	Category  LogCategory `json:"category"`
	Timestamp time.Time   `json:"timestamp"`
	ActorID   uuid.UUID   `json:"actorId,omitempty"`
}

// EventLog is a fixed-capacity ring of narration entries. It is a value type:
// append returns a new log and never mutates storage shared with a previous
// snapshot.
type EventLog struct {
	Entries []LogEntry
	NextID  uint64
}

// append adds one entry, evicting the oldest once LogCapacity is exceeded.
func (l EventLog) append(category LogCategory, actorID uuid.UUID, message string) EventLog {
	entry := LogEntry{
		ID:        l.NextID + 1,
		Message:   message,
		Category:  category,
		Timestamp: time.Now(),
		ActorID:   actorID,
	}

	start := 0
	if len(l.Entries)+1 > LogCapacity {
		start = len(l.Entries) + 1 - LogCapacity
	}
	entries := make([]LogEntry, 0, LogCapacity)
	entries = append(entries, l.Entries[start:]...)
	entries = append(entries, entry)

	return EventLog{Entries: entries, NextID: entry.ID}
}

// Len returns the number of retained entries.
func (l EventLog) Len() int { return len(l.Entries) }

// Latest returns the most recent entry, if any.
func (l EventLog) Latest() (LogEntry, bool) {
	if len(l.Entries) == 0 {
		return LogEntry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}
