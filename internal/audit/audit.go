package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxEntries = 50

// Event is one audit trail entry, newest first.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	EntityID  string    `json:"entity_id,omitempty"`
}

// Log is an in-memory, capped audit trail. Only the most recent entries are
// retained; nothing is persisted.
type Log struct {
	mu      sync.Mutex
	user    string
	entries []Event
}

// NewLog creates an audit log attributing entries to the given user label.
func NewLog(user string) *Log {
	if user == "" {
		user = "system"
	}
	return &Log{user: user}
}

// Record appends one entry, evicting the oldest past the cap.
func (l *Log) Record(action, details, entityID string) Event {
	event := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
		User:      l.user,
		EntityID:  entityID,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Event{event}, l.entries...)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[:maxEntries]
	}
	return event
}

// Entries returns a copy of the audit trail, newest first.
func (l *Log) Entries() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.entries...)
}

// Clear drops all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
