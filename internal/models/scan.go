package models

import "time"

// ScanResult bundles the output of one scan -> price -> aggregate loop.
type ScanResult struct {
	Issues      []LeakIssue        `json:"issues"`
	Incident    Incident           `json:"incident"`
	Reliability ReliabilityMetrics `json:"reliability"`
	SLOs        []SLO              `json:"slos"`
	RecordCount int                `json:"record_count"`
	ScannedAt   time.Time          `json:"scanned_at"`
	Duration    time.Duration      `json:"-"`
}

// FixResult summarises one fix application against the record set.
type FixResult struct {
	UpdatedRecords       []FunnelRecord `json:"updated_records"`
	AppliedActionSummary string         `json:"applied_action_summary"`
	AffectedCount        int            `json:"affected_count"`
}
