package fixes

import (
	"strings"
	"testing"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

func TestGenerateSLABreachPack(t *testing.T) {
	gen := NewGenerator(policy.Default())
	issue := models.LeakIssue{
		IssueID:   "r1_SLA_BREACH_UNTOUCHED",
		RecordID:  "r1",
		IssueType: models.IssueSLABreachUntouched,
	}
	record := models.FunnelRecord{ID: "r1", Name: "John Doe", Company: "Acme Corp"}

	pack := gen.Generate(issue, record)
	if pack.FixID != "fix_r1_SLA_BREACH_UNTOUCHED" {
		t.Fatalf("unexpected fix id %q", pack.FixID)
	}
	if pack.Title != "SLA Breach Rapid Response" {
		t.Fatalf("unexpected title %q", pack.Title)
	}
	if pack.EmailDraft == nil || !strings.Contains(pack.EmailDraft.Body, "Hi John,") {
		t.Fatalf("email draft must greet by first name: %+v", pack.EmailDraft)
	}
	if !strings.Contains(pack.SlackMessage, "Acme Corp") {
		t.Fatalf("slack message must name the company: %q", pack.SlackMessage)
	}
	payload := pack.AutomationPayload
	if payload == nil || payload.ActionType != models.ActionSLABreachFix || payload.RecordID != "r1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.SLABreach == nil || payload.SLABreach.FallbackOwner != AutoRoutedOwner {
		t.Fatalf("unexpected SLA params %+v", payload.SLABreach)
	}
}

func TestGenerateMergePack(t *testing.T) {
	gen := NewGenerator(policy.Default())
	issue := models.LeakIssue{
		IssueID:   "r2_DUPLICATE_SUSPECT",
		RecordID:  "r2",
		IssueType: models.IssueDuplicateSuspect,
	}
	record := models.FunnelRecord{ID: "r2", Name: "J. Doe", Domain: "acme.com"}

	pack := gen.Generate(issue, record)
	if pack.Title != "Duplicate Resolution" {
		t.Fatalf("unexpected title %q", pack.Title)
	}
	payload := pack.AutomationPayload
	if payload == nil || payload.ActionType != models.ActionMergeDuplicate {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Merge.TargetDomain != "acme.com" || payload.Merge.Strategy != MergeStrategyNewer {
		t.Fatalf("unexpected merge params %+v", payload.Merge)
	}
}

func TestGenerateRoutingMismatchHasNoPayload(t *testing.T) {
	gen := NewGenerator(policy.Default())
	issue := models.LeakIssue{
		IssueID:   "r3_ROUTING_MISMATCH",
		RecordID:  "r3",
		IssueType: models.IssueRoutingMismatch,
	}

	pack := gen.Generate(issue, models.FunnelRecord{ID: "r3", Name: "No Region"})
	if pack.Title != "Territory Routing Review" {
		t.Fatalf("unexpected title %q", pack.Title)
	}
	if pack.AutomationPayload != nil {
		t.Fatalf("routing review is manual, no payload expected")
	}
	if len(pack.WorkflowSteps) == 0 {
		t.Fatalf("workflow steps must still be generated")
	}
}

func TestGenerateUnknownTypeFallback(t *testing.T) {
	gen := NewGenerator(policy.Default())
	issue := models.LeakIssue{IssueID: "r4_X", RecordID: "r4", IssueType: models.IssueType("X")}

	pack := gen.Generate(issue, models.FunnelRecord{ID: "r4"})
	if pack.Title != "General Data Fix" {
		t.Fatalf("unexpected fallback title %q", pack.Title)
	}
	if pack.AutomationPayload != nil {
		t.Fatalf("fallback pack must not automate")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen := NewGenerator(policy.Default())
	issue := models.LeakIssue{
		IssueID:   "r1_STALE_OPP",
		RecordID:  "r1",
		IssueType: models.IssueStaleOpp,
	}
	record := models.FunnelRecord{ID: "r1", Name: "Big Deal", Company: "Globex", ValueUSD: 50000}

	first := gen.Generate(issue, record)
	second := gen.Generate(issue, record)
	if first.FixID != second.FixID || first.SlackMessage != second.SlackMessage {
		t.Fatalf("generation must be deterministic")
	}
}

func TestFirstNameFallback(t *testing.T) {
	if got := firstName(models.FunnelRecord{}); got != "there" {
		t.Fatalf("expected fallback greeting, got %q", got)
	}
	if got := companyOrFallback(models.FunnelRecord{}); got != "our site" {
		t.Fatalf("expected company fallback, got %q", got)
	}
}
