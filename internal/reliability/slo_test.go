package reliability

import (
	"testing"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

func TestRegistryDefinitions(t *testing.T) {
	manager := NewSLOManager(policy.Default())
	slos := manager.Registry()
	if len(slos) != 3 {
		t.Fatalf("expected 3 SLOs, got %d", len(slos))
	}

	byID := map[string]models.SLO{}
	var budgetSum int64
	for _, slo := range slos {
		byID[slo.ID] = slo
		budgetSum += slo.ErrorBudgetTotalUSD
		if slo.Current != 1.0 {
			t.Fatalf("%s: registry starts at full compliance, got %f", slo.ID, slo.Current)
		}
	}
	if byID[models.SLOLeadResponse].Target != 0.95 {
		t.Fatalf("lead response target: %f", byID[models.SLOLeadResponse].Target)
	}
	if byID[models.SLODealVelocity].Target != 0.90 {
		t.Fatalf("deal velocity target: %f", byID[models.SLODealVelocity].Target)
	}
	if byID[models.SLODataQuality].Target != 0.99 {
		t.Fatalf("data quality target: %f", byID[models.SLODataQuality].Target)
	}
	if budgetSum != 40000 {
		t.Fatalf("budget shares should sum to 80%% of 50000, got %d", budgetSum)
	}
}

func TestCalculateSLOStatus(t *testing.T) {
	manager := NewSLOManager(policy.Default())
	records := []models.FunnelRecord{
		{ID: "l1", Type: models.RecordTypeLead},
		{ID: "l2", Type: models.RecordTypeLead},
		{ID: "l3", Type: models.RecordTypeLead},
		{ID: "l4", Type: models.RecordTypeLead},
		{ID: "o1", Type: models.RecordTypeOpp},
		{ID: "o2", Type: models.RecordTypeOpp},
	}
	issues := []models.LeakIssue{
		{RecordID: "l1", IssueType: models.IssueSLABreachUntouched, AssociatedSLO: models.SLOLeadResponse},
		{RecordID: "o1", IssueType: models.IssueStaleOpp, AssociatedSLO: models.SLODealVelocity},
		{RecordID: "l2", IssueType: models.IssueUnassignedOwner, AssociatedSLO: models.SLOUnownedRecords},
		{RecordID: "l2", IssueType: models.IssueRoutingMismatch, AssociatedSLO: models.SLODataQuality},
		{RecordID: "o2", IssueType: models.IssueNoNextStep, AssociatedSLO: models.SLONextStepHygiene},
	}

	slos := manager.CalculateSLOStatus(records, issues)
	if slos[0].Current != 0.75 {
		t.Fatalf("lead response: expected 0.75, got %f", slos[0].Current)
	}
	if slos[1].Current != 0.5 {
		t.Fatalf("deal velocity: expected 0.5, got %f", slos[1].Current)
	}
	if slos[2].Current != 0.5 {
		t.Fatalf("data hygiene: expected 0.5 with 3 breaches over 6 records, got %f", slos[2].Current)
	}
}

func TestCalculateSLOStatusEmptyPopulations(t *testing.T) {
	manager := NewSLOManager(policy.Default())
	slos := manager.CalculateSLOStatus(nil, nil)
	for _, slo := range slos {
		if slo.Current != 1.0 {
			t.Fatalf("%s: empty population must stay compliant, got %f", slo.ID, slo.Current)
		}
	}
}

func TestOverallBudgetBurn(t *testing.T) {
	issues := []models.LeakIssue{
		{EstimatedLossUSD: 20000},
		{EstimatedLossUSD: 5000},
	}
	if burn := OverallBudgetBurn(issues, 50000); burn != 0.5 {
		t.Fatalf("expected 0.5, got %f", burn)
	}
	if burn := OverallBudgetBurn(issues, 0); burn != 0 {
		t.Fatalf("zero budget must burn zero, got %f", burn)
	}
}
