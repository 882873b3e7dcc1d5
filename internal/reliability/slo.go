package reliability

import (
	"fmt"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

// SLOManager computes per-category SLO compliance against a static registry.
// This is the multi-gauge view; Calculate covers the single burn-rate signal.
type SLOManager struct {
	pol policy.Policy
}

// NewSLOManager constructs an SLOManager from the active policy.
func NewSLOManager(pol policy.Policy) *SLOManager {
	return &SLOManager{pol: pol}
}

// Registry returns the defined SLOs at full compliance. Budget splits are
// fixed shares of the total monthly error budget.
func (m *SLOManager) Registry() []models.SLO {
	budget := m.pol.ErrorBudgetUSD
	return []models.SLO{
		{
			ID:                  models.SLOLeadResponse,
			Name:                "Lead Response Time",
			Target:              0.95,
			Current:             1.0,
			ErrorBudgetTotalUSD: budget * 30 / 100,
			Description:         fmt.Sprintf("95%% of leads contacted within %d minutes", m.pol.SLAMinutes),
		},
		{
			ID:                  models.SLODealVelocity,
			Name:                "Deal Velocity",
			Target:              0.90,
			Current:             1.0,
			ErrorBudgetTotalUSD: budget * 40 / 100,
			Description:         fmt.Sprintf("No deals in stage > %d days without activity", m.pol.StaleDays),
		},
		{
			ID:                  models.SLODataQuality,
			Name:                "Data Hygiene",
			Target:              0.99,
			Current:             1.0,
			ErrorBudgetTotalUSD: budget * 10 / 100,
			Description:         "Records must have valid Region, Owner, and Next Step",
		},
	}
}

// CalculateSLOStatus recomputes the current ratio of each registry SLO as
// 1 - breaches/population. Empty populations stay at full compliance.
func (m *SLOManager) CalculateSLOStatus(records []models.FunnelRecord, issues []models.LeakIssue) []models.SLO {
	slos := m.Registry()

	var leads, opps int
	for _, record := range records {
		switch record.Type {
		case models.RecordTypeLead:
			leads++
		case models.RecordTypeOpp:
			opps++
		}
	}

	var responseBreaches, velocityBreaches, hygieneBreaches int
	for _, issue := range issues {
		switch issue.AssociatedSLO {
		case models.SLOLeadResponse:
			responseBreaches++
		case models.SLODealVelocity:
			velocityBreaches++
		case models.SLODataQuality, models.SLOUnownedRecords, models.SLONextStepHygiene:
			hygieneBreaches++
		}
	}

	if leads > 0 {
		slos[0].Current = 1 - float64(responseBreaches)/float64(leads)
	}
	if opps > 0 {
		slos[1].Current = 1 - float64(velocityBreaches)/float64(opps)
	}
	if len(records) > 0 {
		slos[2].Current = 1 - float64(hygieneBreaches)/float64(len(records))
	}

	return slos
}

// OverallBudgetBurn sums estimated losses against the given budget.
func OverallBudgetBurn(issues []models.LeakIssue, totalBudgetUSD int64) float64 {
	if totalBudgetUSD <= 0 {
		return 0
	}
	var totalRisk int64
	for _, issue := range issues {
		totalRisk += issue.EstimatedLossUSD
	}
	return float64(totalRisk) / float64(totalBudgetUSD)
}
