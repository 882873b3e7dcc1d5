package store

import (
	"sync"

	"github.com/revopsstack/revleak/internal/models"
)

// RecordStore holds the in-memory working set of funnel records. Fix
// application replaces the set atomically; readers always get copies.
type RecordStore struct {
	mu      sync.RWMutex
	records []models.FunnelRecord
}

// New creates an empty RecordStore.
func New() *RecordStore {
	return &RecordStore{}
}

// Replace swaps the entire record set. Records without an explicit status
// normalize to active.
func (s *RecordStore) Replace(records []models.FunnelRecord) {
	copied := make([]models.FunnelRecord, len(records))
	for i, r := range records {
		if r.Status == "" {
			r.Status = models.RecordStatusActive
		}
		copied[i] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
}

// Snapshot returns a copy of the current record set.
func (s *RecordStore) Snapshot() []models.FunnelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FunnelRecord(nil), s.records...)
}

// Get looks up one record by id.
func (s *RecordStore) Get(id string) (models.FunnelRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.FunnelRecord{}, false
}

// Count returns the number of records held.
func (s *RecordStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
