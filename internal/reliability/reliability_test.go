package reliability

import (
	"testing"
	"time"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

func TestCalculatePagingLadder(t *testing.T) {
	pol := policy.Default()
	now := time.Now().UTC()

	cases := []struct {
		atRisk    int64
		burn      float64
		remaining float64
		state     models.PagingState
	}{
		{0, 0, 1, models.PagingOK},
		{10000, 0.2, 0.8, models.PagingOK},
		{15000, 0.3, 0.7, models.PagingWarn},
		{30000, 0.6, 0.4, models.PagingPage},
		{75000, 1.5, 0, models.PagingPage},
	}

	for _, tc := range cases {
		metrics := Calculate(nil, tc.atRisk, 50000, pol, now)
		if metrics.BurnRate != tc.burn {
			t.Fatalf("at risk %d: expected burn %f, got %f", tc.atRisk, tc.burn, metrics.BurnRate)
		}
		if metrics.ErrorBudgetRemaining != tc.remaining {
			t.Fatalf("at risk %d: expected remaining %f, got %f", tc.atRisk, tc.remaining, metrics.ErrorBudgetRemaining)
		}
		if metrics.PagingState != tc.state {
			t.Fatalf("at risk %d: expected %s, got %s", tc.atRisk, tc.state, metrics.PagingState)
		}
	}
}

func TestCalculateZeroBudgetNoBurn(t *testing.T) {
	metrics := Calculate(nil, 100000, 0, policy.Default(), time.Now().UTC())
	if metrics.BurnRate != 0 {
		t.Fatalf("zero budget must contribute zero burn, got %f", metrics.BurnRate)
	}
	if metrics.PagingState != models.PagingOK {
		t.Fatalf("expected OK, got %s", metrics.PagingState)
	}
}

func TestCalculateLeadCompliance(t *testing.T) {
	pol := policy.Default()
	now := time.Now().UTC()
	lateTouch := now.Add(-time.Minute)
	quickTouch := now.Add(-90 * time.Minute)

	records := []models.FunnelRecord{
		// Touched inside the window: compliant regardless of age.
		{ID: "a", Type: models.RecordTypeLead, CreatedAt: now.Add(-2 * time.Hour), LastTouchAt: &quickTouch},
		// First touch landed an hour late: breach.
		{ID: "b", Type: models.RecordTypeLead, Name: "Late", ValueUSD: 5000, CreatedAt: now.Add(-2 * time.Hour), LastTouchAt: &lateTouch},
		// Untouched but still young: compliant for now.
		{ID: "c", Type: models.RecordTypeLead, CreatedAt: now.Add(-10 * time.Minute)},
		// Untouched and over the window: breach.
		{ID: "d", Type: models.RecordTypeLead, Name: "Old", ValueUSD: 1000, CreatedAt: now.Add(-2 * time.Hour)},
	}

	metrics := Calculate(records, 0, 50000, pol, now)
	if metrics.LeadSLOBreachCount != 2 {
		t.Fatalf("expected 2 breaches, got %d", metrics.LeadSLOBreachCount)
	}
	if metrics.LeadSLOComplianceRate != 0.5 {
		t.Fatalf("expected compliance 0.5, got %f", metrics.LeadSLOComplianceRate)
	}
	if len(metrics.TopBreaches) != 2 {
		t.Fatalf("expected 2 breach summaries, got %d", len(metrics.TopBreaches))
	}
	if metrics.TopBreaches[0].ID != "b" {
		t.Fatalf("breaches must sort by dollar impact, got %s first", metrics.TopBreaches[0].ID)
	}
}

func TestCalculateOppFreshness(t *testing.T) {
	pol := policy.Default()
	now := time.Now().UTC()
	fresh := now.Add(-24 * time.Hour)
	stale := now.Add(-10 * 24 * time.Hour)

	records := []models.FunnelRecord{
		{ID: "a", Type: models.RecordTypeOpp, Stage: "Proposal", CreatedAt: now.Add(-30 * 24 * time.Hour), LastTouchAt: &fresh},
		{ID: "b", Type: models.RecordTypeOpp, Stage: "Proposal", ValueUSD: 20000, CreatedAt: now.Add(-30 * 24 * time.Hour), LastTouchAt: &stale},
		// Closed deals never count toward freshness.
		{ID: "c", Type: models.RecordTypeOpp, Stage: "Closed Won", CreatedAt: now.Add(-60 * 24 * time.Hour), LastTouchAt: &stale},
	}

	metrics := Calculate(records, 0, 50000, pol, now)
	if metrics.OppFreshnessBreachCount != 1 {
		t.Fatalf("expected 1 stale opp, got %d", metrics.OppFreshnessBreachCount)
	}
	if metrics.OppFreshnessComplianceRate != 0.5 {
		t.Fatalf("expected compliance 0.5, got %f", metrics.OppFreshnessComplianceRate)
	}
	if metrics.RevenueAtRiskStaleUSD != 20000 {
		t.Fatalf("expected 20000 stale revenue, got %d", metrics.RevenueAtRiskStaleUSD)
	}
}

func TestCalculateArchivedRecordsIgnored(t *testing.T) {
	now := time.Now().UTC()
	records := []models.FunnelRecord{
		{ID: "a", Type: models.RecordTypeLead, Status: models.RecordStatusArchived, CreatedAt: now.Add(-2 * time.Hour)},
	}

	metrics := Calculate(records, 0, 50000, policy.Default(), now)
	if metrics.LeadSLOBreachCount != 0 {
		t.Fatalf("archived records must not breach")
	}
	if metrics.LeadSLOComplianceRate != 1.0 {
		t.Fatalf("empty population defaults to full compliance, got %f", metrics.LeadSLOComplianceRate)
	}
}
