package models

import "time"

// RecordType distinguishes pre-qualification leads from pipeline opportunities.
type RecordType string

const (
	RecordTypeLead RecordType = "lead"
	RecordTypeOpp  RecordType = "opp"
)

// RecordStatus marks whether a record still participates in scanning.
// Merged duplicates are archived, never deleted.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusArchived RecordStatus = "archived"
)

// StageArchived is the CRM-facing stage sentinel written when a duplicate is merged.
const StageArchived = "Archived"

// FunnelRecord is a single lead or opportunity in the sales funnel.
// Owner, stage, region, next step and notes use "" for absent values;
// LastTouchAt is nil until the record has been touched.
type FunnelRecord struct {
	ID          string       `json:"id"`
	Type        RecordType   `json:"type"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Domain      string       `json:"domain"`
	Company     string       `json:"company"`
	Source      string       `json:"source"`
	Region      string       `json:"region"`
	Owner       string       `json:"owner,omitempty"`
	Stage       string       `json:"stage,omitempty"`
	Status      RecordStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	LastTouchAt *time.Time   `json:"last_touch_at,omitempty"`
	NextStep    string       `json:"next_step,omitempty"`
	ValueUSD    int64        `json:"value_usd"`
	Notes       string       `json:"notes,omitempty"`
}

// Active reports whether the record should be considered by leak rules.
func (r FunnelRecord) Active() bool {
	return r.Status != RecordStatusArchived
}

// LastActivity returns the most recent touch, falling back to creation time.
func (r FunnelRecord) LastActivity() time.Time {
	if r.LastTouchAt != nil {
		return *r.LastTouchAt
	}
	return r.CreatedAt
}
