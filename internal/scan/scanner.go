package scan

import (
	"fmt"
	"time"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
	"github.com/revopsstack/revleak/internal/utils"
)

// Scanner applies the leak rule battery to a record set. Scans never mutate
// their input and leave EstimatedLossUSD at zero; pricing is a separate pass.
type Scanner struct {
	pol policy.Policy
}

// NewScanner constructs a Scanner from the active policy.
func NewScanner(pol policy.Policy) *Scanner {
	return &Scanner{pol: pol}
}

// ruleMeta carries the fixed per-rule categorization attached to findings.
type ruleMeta struct {
	severity    int
	label       models.SeverityLabel
	fixID       string
	slo         string
	rootCause   string
	blastRadius []string
}

var ruleTable = map[models.IssueType]ruleMeta{
	models.IssueSLABreachUntouched: {8, models.SeverityLabelHigh, "fix_sla_breach", models.SLOLeadResponse, "Capacity Bottleneck", []string{"SDR_Team", "Marketing"}},
	models.IssueUnassignedOwner:    {9, models.SeverityLabelHigh, "fix_assign_owner", models.SLOUnownedRecords, "Routing Rule Failure", []string{"RevOps", "Sales_Mgmt"}},
	models.IssueStaleOpp:           {8, models.SeverityLabelHigh, "fix_stale_opp", models.SLODealVelocity, "Stalled Deal / Ghosting", []string{"Sales_Team", "Sales_Mgmt"}},
	models.IssueDuplicateSuspect:   {5, models.SeverityLabelMedium, "fix_merge_dupes", models.SLODuplication, "Integration Error", []string{"RevOps"}},
	models.IssueRoutingMismatch:    {5, models.SeverityLabelMedium, "fix_routing", models.SLODataQuality, "Enrichment Failure", []string{"RevOps", "Data_Team"}},
}

// NO_NEXT_STEP categorizes differently for leads and opportunities.
var (
	noNextStepLead = ruleMeta{6, models.SeverityLabelMedium, "fix_next_step", models.SLONextStepHygiene, "Rep Process Gap", []string{"SDR_Team"}}
	noNextStepOpp  = ruleMeta{7, models.SeverityLabelHigh, "fix_next_step", models.SLONextStepHygiene, "AE Process Gap", []string{"Sales_Team"}}
)

// Scan evaluates every rule against every active record and returns the
// findings. Archived records are excluded from all rules, including
// duplicate grouping.
func (s *Scanner) Scan(records []models.FunnelRecord, now time.Time) []models.LeakIssue {
	issues := make([]models.LeakIssue, 0)

	domainCounts := make(map[string]int)
	for _, record := range records {
		if !record.Active() || record.Domain == "" {
			continue
		}
		domainCounts[record.Domain]++
	}

	for _, record := range records {
		if !record.Active() {
			continue
		}

		if record.Type == models.RecordTypeLead && record.LastTouchAt == nil {
			minutes := utils.MinutesBetween(record.CreatedAt, now)
			if minutes > s.pol.SLAMinutes {
				issues = append(issues, newIssue(record, models.IssueSLABreachUntouched,
					fmt.Sprintf("Lead untouched for %d minutes (SLA: %dm)", minutes, s.pol.SLAMinutes),
					ruleTable[models.IssueSLABreachUntouched]))
			}
		}

		if record.Owner == "" {
			issues = append(issues, newIssue(record, models.IssueUnassignedOwner,
				"Record has no owner assigned", ruleTable[models.IssueUnassignedOwner]))
		}

		if record.NextStep == "" {
			switch {
			case record.Type == models.RecordTypeLead && now.Sub(record.CreatedAt) > 24*time.Hour:
				issues = append(issues, newIssue(record, models.IssueNoNextStep,
					"Old lead with no next step detected", noNextStepLead))
			case record.Type == models.RecordTypeOpp && !stageClosed(record.Stage):
				issues = append(issues, newIssue(record, models.IssueNoNextStep,
					"Open opportunity missing next step", noNextStepOpp))
			}
		}

		if record.Type == models.RecordTypeOpp && !stageClosed(record.Stage) && record.LastTouchAt != nil {
			days := utils.WholeDaysBetween(*record.LastTouchAt, now)
			if days > s.pol.StaleDays {
				issues = append(issues, newIssue(record, models.IssueStaleOpp,
					fmt.Sprintf("Opportunity untouched for %d days", days),
					ruleTable[models.IssueStaleOpp]))
			}
		}

		if record.Domain != "" && domainCounts[record.Domain] > 1 {
			issues = append(issues, newIssue(record, models.IssueDuplicateSuspect,
				fmt.Sprintf("Duplicate domain detected: %s", record.Domain),
				ruleTable[models.IssueDuplicateSuspect]))
		}

		if record.Region == "" {
			issues = append(issues, newIssue(record, models.IssueRoutingMismatch,
				"Missing region", ruleTable[models.IssueRoutingMismatch]))
		}
	}

	return issues
}

func stageClosed(stage string) bool {
	switch stage {
	case "Closed Won", "Closed Lost", models.StageArchived:
		return true
	}
	return false
}

func newIssue(record models.FunnelRecord, issueType models.IssueType, explanation string, meta ruleMeta) models.LeakIssue {
	return models.LeakIssue{
		IssueID:           fmt.Sprintf("%s_%s", record.ID, issueType),
		RecordID:          record.ID,
		IssueType:         issueType,
		Severity:          meta.severity,
		SeverityLabel:     meta.label,
		Explanation:       explanation,
		SuggestedFixID:    meta.fixID,
		Confidence:        0.9,
		RootCauseGuess:    meta.rootCause,
		BlastRadius:       meta.blastRadius,
		AssociatedSLO:     meta.slo,
		ErrorBudgetImpact: meta.severity * 100,
	}
}
