package reliability

import (
	"fmt"
	"sort"
	"time"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

// Calculate computes the funnel-wide compliance snapshot plus the
// error-budget/paging signal for the given at-risk total. Empty populations
// default to full compliance; a zero budget contributes zero burn.
func Calculate(records []models.FunnelRecord, totalAtRiskUSD, budgetUSD int64, pol policy.Policy, now time.Time) models.ReliabilityMetrics {
	slaWindow := time.Duration(pol.SLAMinutes) * time.Minute
	staleWindow := time.Duration(pol.StaleDays) * 24 * time.Hour

	var leadTotal, leadBreaches int
	var oppTotal, oppBreaches int
	var staleRevenue int64
	breaches := make([]models.BreachSummary, 0)

	for _, record := range records {
		if !record.Active() {
			continue
		}

		if record.Type == models.RecordTypeLead {
			leadTotal++
			if !leadCompliant(record, slaWindow, now) {
				leadBreaches++
				breaches = append(breaches, models.BreachSummary{
					ID:           record.ID,
					Name:         record.Name,
					Reason:       fmt.Sprintf("Lead untouched > %dm", pol.SLAMinutes),
					DollarImpact: record.ValueUSD,
				})
			}
		}

		if record.Type == models.RecordTypeOpp && !closedStage(record.Stage) {
			oppTotal++
			if now.Sub(record.LastActivity()) > staleWindow {
				oppBreaches++
				staleRevenue += record.ValueUSD
				breaches = append(breaches, models.BreachSummary{
					ID:           record.ID,
					Name:         record.Name,
					Reason:       fmt.Sprintf("Opp stale > %dd", pol.StaleDays),
					DollarImpact: record.ValueUSD,
				})
			}
		}
	}

	leadCompliance := 1.0
	if leadTotal > 0 {
		leadCompliance = 1 - float64(leadBreaches)/float64(leadTotal)
	}
	oppCompliance := 1.0
	if oppTotal > 0 {
		oppCompliance = 1 - float64(oppBreaches)/float64(oppTotal)
	}

	burnRate := 0.0
	if budgetUSD > 0 {
		burnRate = float64(totalAtRiskUSD) / float64(budgetUSD)
	}
	remaining := 1 - burnRate
	if remaining < 0 {
		remaining = 0
	}

	sort.SliceStable(breaches, func(i, j int) bool {
		return breaches[i].DollarImpact > breaches[j].DollarImpact
	})
	if len(breaches) > 5 {
		breaches = breaches[:5]
	}

	return models.ReliabilityMetrics{
		LeadSLOBreachCount:         leadBreaches,
		LeadSLOComplianceRate:      leadCompliance,
		OppFreshnessBreachCount:    oppBreaches,
		OppFreshnessComplianceRate: oppCompliance,
		RevenueAtRiskStaleUSD:      staleRevenue,
		ErrorBudgetRemaining:       remaining,
		BurnRate:                   burnRate,
		PagingState:                pagingState(burnRate, pol),
		TopBreaches:                breaches,
	}
}

// A touched lead is compliant when first touch landed inside the SLA window;
// an untouched lead is compliant only while its age is still inside it.
func leadCompliant(record models.FunnelRecord, slaWindow time.Duration, now time.Time) bool {
	if record.LastTouchAt != nil {
		return record.LastTouchAt.Sub(record.CreatedAt) <= slaWindow
	}
	return now.Sub(record.CreatedAt) <= slaWindow
}

func pagingState(burnRate float64, pol policy.Policy) models.PagingState {
	switch {
	case burnRate > pol.PageThreshold:
		return models.PagingPage
	case burnRate > pol.WarnThreshold:
		return models.PagingWarn
	default:
		return models.PagingOK
	}
}

func closedStage(stage string) bool {
	switch stage {
	case "Closed Won", "Closed Lost", models.StageArchived:
		return true
	}
	return false
}
