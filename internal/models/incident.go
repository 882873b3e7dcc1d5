package models

import "time"

// IncidentStatus tracks the incident lifecycle.
type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
)

// Incident aggregates the currently open issue set into a single entity.
// Severity runs 1 (worst) to 5 (no issues).
type Incident struct {
	IncidentID       string          `json:"incident_id"`
	CreatedAt        time.Time       `json:"created_at"`
	Status           IncidentStatus  `json:"status"`
	Severity         int             `json:"severity"`
	TotalAtRiskUSD   int64           `json:"total_at_risk_usd"`
	BurnRate         float64         `json:"burn_rate"`
	ErrorBudgetUSD   int64           `json:"error_budget_usd"`
	TopCauses        []CauseSummary  `json:"top_causes"`
	AffectedSegments []SegmentImpact `json:"affected_segments"`
}

// CauseSummary totals one issue type's contribution to the incident.
type CauseSummary struct {
	IssueType IssueType `json:"issue_type"`
	Count     int       `json:"count"`
	AtRiskUSD int64     `json:"at_risk_usd"`
}

// SegmentImpact totals at-risk dollars for one segment, e.g. Owner: Alice.
type SegmentImpact struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	AtRiskUSD int64  `json:"at_risk_usd"`
}

// TimelineEventType enumerates incident timeline entries.
type TimelineEventType string

const (
	EventDetected         TimelineEventType = "DETECTED"
	EventFixPackGenerated TimelineEventType = "FIXPACK_GENERATED"
	EventFixApplied       TimelineEventType = "FIX_APPLIED"
	EventResolved         TimelineEventType = "RESOLVED"
	EventManualNote       TimelineEventType = "MANUAL_NOTE"
)

// TimelineEvent is one append-only entry in the incident timeline.
type TimelineEvent struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"ts"`
	Type      TimelineEventType `json:"type"`
	Message   string            `json:"message"`
	Data      map[string]any    `json:"data,omitempty"`
}
