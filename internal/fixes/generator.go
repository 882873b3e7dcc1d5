package fixes

import (
	"fmt"
	"strings"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
)

// Mutation constants shared between generated payloads and the applicator.
const (
	AutoRoutedOwner    = "Auto-Routed (SRE)"
	FollowUpNextStep   = "Follow up scheduled"
	RescueNextStep     = "Rescue sequence initiated"
	RescueNoteMarker   = " [Rescued by SRE]"
	MergedNoteMarker   = " [MERGED]"
	DiscoveryNextStep  = "Discovery Call"
	MergeStrategyNewer = "newest_wins"
)

// Generator builds remediation templates for leak issues. Generation is a
// pure function of the (issue, record) pair; the same issue always yields
// the same FixID.
type Generator struct {
	pol policy.Policy
}

// NewGenerator constructs a Generator from the active policy.
func NewGenerator(pol policy.Policy) *Generator {
	return &Generator{pol: pol}
}

// Generate returns the fix pack for one issue. Unrecognized issue types fall
// back to a generic manual-review template with no automation payload.
func (g *Generator) Generate(issue models.LeakIssue, record models.FunnelRecord) models.FixPack {
	pack := models.FixPack{
		FixID: "fix_" + issue.IssueID,
	}

	switch issue.IssueType {
	case models.IssueSLABreachUntouched:
		pack.Title = "SLA Breach Rapid Response"
		pack.Steps = []string{
			"Assign yourself as owner immediately.",
			"Call the lead using the number in CRM.",
			"If no answer, send the \"Quick Connect\" email template.",
			"Log activity to reset the timer.",
		}
		pack.VerificationCheck = "Check if \"last_touch_at\" is updated within 10 mins."
		pack.EmailDraft = &models.EmailDraft{
			Subject: fmt.Sprintf("Re: Your inquiry at %s", companyOrFallback(record)),
			Body: fmt.Sprintf("Hi %s,\n\nI just saw your inquiry come in and wanted to reach out personally. "+
				"I have a few minutes to chat if you're free?\n\nBest,\n[Your Name]", firstName(record)),
		}
		pack.SlackMessage = fmt.Sprintf("🚨 SLA BREACH: %s from %s is untouched! >%dm overdue.",
			record.Name, record.Company, g.pol.SLAMinutes)
		pack.AutomationPayload = &models.AutomationPayload{
			RecordID:   record.ID,
			ActionType: models.ActionSLABreachFix,
			SLABreach:  &models.SLABreachFixParams{FallbackOwner: AutoRoutedOwner, NextStep: FollowUpNextStep},
		}

	case models.IssueStaleOpp:
		pack.Title = "Opportunity Rescue Operation"
		pack.Steps = []string{
			"Review last notes.",
			"Check LinkedIn for job changes.",
			"Send \"breakup\" value email.",
			"Schedule internal blocker review if value > $10k.",
		}
		pack.VerificationCheck = "Check if Stage moves or Activity logged."
		pack.EmailDraft = &models.EmailDraft{
			Subject: fmt.Sprintf("Thinking of you / %s", record.Company),
			Body: fmt.Sprintf("Hi %s,\n\nI haven't heard back in a week. Should we assume this project is "+
				"paused for now?\n\nChecking in,\n[Your Name]", firstName(record)),
		}
		pack.SlackMessage = fmt.Sprintf("⚠️ STALE OPP: %s (%s) - $%d at risk. Action required.",
			record.Name, record.Company, record.ValueUSD)
		pack.AutomationPayload = &models.AutomationPayload{
			RecordID:   record.ID,
			ActionType: models.ActionRescueStale,
			Rescue:     &models.RescueStaleParams{NoteMarker: RescueNoteMarker, NextStep: RescueNextStep},
		}

	case models.IssueDuplicateSuspect:
		pack.Title = "Duplicate Resolution"
		pack.Steps = []string{
			fmt.Sprintf("Compare with existing records for domain %s.", record.Domain),
			"Identify primary record (most recent activity or filled fields).",
			"Merge notes and history.",
			"Archive this record.",
		}
		pack.VerificationCheck = "Check if domain has only 1 active record."
		pack.AutomationPayload = &models.AutomationPayload{
			RecordID:   record.ID,
			ActionType: models.ActionMergeDuplicate,
			Merge: &models.MergeDuplicateParams{
				TargetDomain: record.Domain,
				Strategy:     MergeStrategyNewer,
				NoteMarker:   MergedNoteMarker,
			},
		}

	case models.IssueUnassignedOwner:
		pack.Title = "Round Robin Assignment"
		pack.Steps = []string{"Check territory map.", "Assign to AE.", "Notify AE via Slack."}
		pack.VerificationCheck = "Owner field is not null."
		pack.AutomationPayload = &models.AutomationPayload{
			RecordID:   record.ID,
			ActionType: models.ActionAssignOwner,
			Assign:     &models.AssignOwnerParams{Owner: AutoRoutedOwner},
		}

	case models.IssueNoNextStep:
		pack.Title = "Next Step Recovery"
		pack.Steps = []string{
			"Review the last conversation notes.",
			"Book the follow-up meeting before leaving the record.",
			"Set the next step field.",
		}
		pack.VerificationCheck = "Next step field is not null."
		pack.AutomationPayload = &models.AutomationPayload{
			RecordID:   record.ID,
			ActionType: models.ActionAddNextStep,
			NextStep:   &models.AddNextStepParams{NextStep: DiscoveryNextStep},
		}

	case models.IssueRoutingMismatch:
		pack.Title = "Territory Routing Review"
		pack.Steps = []string{
			"Look up the account region from the company domain.",
			"Set the region field.",
			"Re-run territory assignment rules.",
		}
		pack.VerificationCheck = "Region field is populated."

	default:
		pack.Title = "General Data Fix"
		pack.Steps = []string{"Review record manually.", "Update missing fields."}
		pack.VerificationCheck = "Manual review."
	}

	pack.WorkflowSteps = workflowSteps(issue, record)
	return pack
}

func firstName(record models.FunnelRecord) string {
	fields := strings.Fields(record.Name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

func companyOrFallback(record models.FunnelRecord) string {
	if record.Company == "" {
		return "our site"
	}
	return record.Company
}
