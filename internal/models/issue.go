package models

// IssueType enumerates the leak classes the scanner can emit.
type IssueType string

const (
	IssueSLABreachUntouched IssueType = "SLA_BREACH_UNTOUCHED"
	IssueUnassignedOwner    IssueType = "UNASSIGNED_OWNER"
	IssueNoNextStep         IssueType = "NO_NEXT_STEP"
	IssueStaleOpp           IssueType = "STALE_OPP"
	IssueDuplicateSuspect   IssueType = "DUPLICATE_SUSPECT"
	IssueRoutingMismatch    IssueType = "ROUTING_MISMATCH"
)

// SeverityLabel groups the 1-10 severity scale into display buckets.
type SeverityLabel string

const (
	SeverityLabelHigh   SeverityLabel = "high"
	SeverityLabelMedium SeverityLabel = "medium"
	SeverityLabelLow    SeverityLabel = "low"
)

// LeakIssue is a single leak finding against one funnel record. Issues are
// recomputed on every scan; IssueID is stable for the same record+type pair.
// EstimatedLossUSD is zero until the impact model prices the issue.
type LeakIssue struct {
	IssueID           string        `json:"issue_id"`
	RecordID          string        `json:"record_id"`
	IssueType         IssueType     `json:"issue_type"`
	Severity          int           `json:"severity"`
	SeverityLabel     SeverityLabel `json:"severity_label"`
	Explanation       string        `json:"explanation"`
	SuggestedFixID    string        `json:"suggested_fix_id"`
	EstimatedLossUSD  int64         `json:"estimated_loss_usd"`
	Confidence        float64       `json:"confidence"`
	RootCauseGuess    string        `json:"root_cause_guess,omitempty"`
	BlastRadius       []string      `json:"blast_radius,omitempty"`
	AssociatedSLO     string        `json:"associated_slo,omitempty"`
	ErrorBudgetImpact int           `json:"error_budget_impact"`
}
