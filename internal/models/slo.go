package models

// PagingState is the escalation signal derived from error-budget burn.
type PagingState string

const (
	PagingOK   PagingState = "OK"
	PagingWarn PagingState = "WARN"
	PagingPage PagingState = "PAGE"
)

// SLO is one configured objective plus its latest computed compliance ratio.
type SLO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Target              float64 `json:"target"`
	Current             float64 `json:"current"`
	ErrorBudgetTotalUSD int64   `json:"error_budget_total_usd"`
	Description         string  `json:"description"`
}

// SLO registry ids referenced by scanner findings.
const (
	SLOLeadResponse    = "SLO_LEAD_RESPONSE"
	SLOUnownedRecords  = "SLO_UNOWNED_RECORDS"
	SLONextStepHygiene = "SLO_NEXT_STEP_HYGIENE"
	SLODealVelocity    = "SLO_DEAL_VELOCITY"
	SLODuplication     = "SLO_DUPLICATION"
	SLODataQuality     = "SLO_DATA_QUALITY"
)

// BreachSummary names one record breaching an SLO, with its dollar exposure.
type BreachSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Reason       string `json:"reason"`
	DollarImpact int64  `json:"dollar_impact"`
}

// ReliabilityMetrics is the funnel-wide compliance and error-budget snapshot.
type ReliabilityMetrics struct {
	LeadSLOBreachCount         int             `json:"lead_slo_breach_count"`
	LeadSLOComplianceRate      float64         `json:"lead_slo_compliance_rate"`
	OppFreshnessBreachCount    int             `json:"opp_freshness_breach_count"`
	OppFreshnessComplianceRate float64         `json:"opp_freshness_compliance_rate"`
	RevenueAtRiskStaleUSD      int64           `json:"revenue_at_risk_stale"`
	ErrorBudgetRemaining       float64         `json:"error_budget_remaining"`
	BurnRate                   float64         `json:"burn_rate"`
	PagingState                PagingState     `json:"paging_state"`
	TopBreaches                []BreachSummary `json:"top_breaches"`
}
