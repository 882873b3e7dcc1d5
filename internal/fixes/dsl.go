package fixes

import (
	"fmt"

	"github.com/revopsstack/revleak/internal/models"
)

// workflowSteps builds the structured automation workflow for a fix pack.
// Every workflow opens by identifying its target record.
func workflowSteps(issue models.LeakIssue, record models.FunnelRecord) []models.WorkflowStep {
	steps := []models.WorkflowStep{{
		Action:      models.DSLIdentifyRecords,
		Params:      map[string]string{"id": record.ID},
		Description: fmt.Sprintf("Target record %s", record.Name),
	}}

	switch issue.IssueType {
	case models.IssueSLABreachUntouched:
		steps = append(steps,
			models.WorkflowStep{
				Action:      models.DSLNotifySlack,
				Params:      map[string]string{"channel": "#rev-leak-alerts", "message": fmt.Sprintf("SLA Breach detected on %s. Immediate action required.", record.Name)},
				Description: "Alert urgency to #rev-leak-alerts",
			},
			models.WorkflowStep{
				Action:      models.DSLWriteBackTask,
				Params:      map[string]string{"subject": "SLA Breach Recovery Call", "due_date": "TODAY"},
				Description: "Create high-priority CRM task",
			},
			models.WorkflowStep{
				Action:      models.DSLSetSLATimer,
				Params:      map[string]string{"id": record.ID},
				Description: "Reset the response-time timer",
			})

	case models.IssueUnassignedOwner:
		steps = append(steps,
			models.WorkflowStep{
				Action:      models.DSLReassignOwner,
				Params:      map[string]string{"owner": AutoRoutedOwner},
				Description: "Assign to Round Robin queue",
			},
			models.WorkflowStep{
				Action:      models.DSLNotifySlack,
				Params:      map[string]string{"channel": "#sales-ops", "message": fmt.Sprintf("Record %s was unowned. Assigned to RR Bot.", record.Name)},
				Description: "Notify Ops of assignment",
			})

	case models.IssueNoNextStep:
		steps = append(steps, models.WorkflowStep{
			Action:      models.DSLAddNextStep,
			Params:      map[string]string{"value": DiscoveryNextStep},
			Description: "Set default next step",
		})

	default:
		steps = append(steps, models.WorkflowStep{
			Action:      models.DSLDraftEmail,
			Params:      map[string]string{"subject": "Action Required", "recipient": recipientFor(record)},
			Description: "Draft nudge email to owner",
		})
	}

	return steps
}

func recipientFor(record models.FunnelRecord) string {
	if record.Owner == "" {
		return "Manager"
	}
	return record.Owner
}

// SideEffects collects the external outputs a workflow would produce.
// Nothing here touches the network; the notifier decides what to send.
type SideEffects struct {
	SlackMessages []SlackPost `json:"slack_messages"`
	Emails        []models.EmailDraft `json:"emails"`
	Tasks         []CRMTask   `json:"tasks"`
}

// SlackPost is one queued channel message.
type SlackPost struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// CRMTask is one queued write-back task.
type CRMTask struct {
	Subject string `json:"subject"`
	DueDate string `json:"due_date"`
}

// ExecutionContext carries state through a workflow run.
type ExecutionContext struct {
	Records     []models.FunnelRecord
	Logs        []string
	SideEffects SideEffects
	DryRun      bool
}

// ExecuteWorkflow interprets workflow steps against the context records.
// Dry runs log what would happen without mutating records or queueing
// side effects. Unknown actions are skipped, never fatal.
func ExecuteWorkflow(steps []models.WorkflowStep, ctx *ExecutionContext) []models.FunnelRecord {
	current := append([]models.FunnelRecord(nil), ctx.Records...)

	for _, step := range steps {
		mode := "EXEC"
		if ctx.DryRun {
			mode = "DRY-RUN"
		}
		ctx.Logs = append(ctx.Logs, fmt.Sprintf("[%s] Action: %s - %s", mode, step.Action, step.Description))

		switch step.Action {
		case models.DSLIdentifyRecords:
			// Context records are assumed pre-filtered to the target set.

		case models.DSLAddNextStep:
			if !ctx.DryRun {
				value := step.Params["value"]
				if value == "" {
					value = "Follow-up required (Automated)"
				}
				for i := range current {
					current[i].NextStep = value
				}
			}

		case models.DSLReassignOwner:
			if !ctx.DryRun {
				owner := step.Params["owner"]
				if owner == "" {
					owner = "Unassigned_Queue"
				}
				for i := range current {
					current[i].Owner = owner
				}
			}

		case models.DSLWriteBackTask:
			if ctx.DryRun {
				ctx.Logs = append(ctx.Logs, fmt.Sprintf("  -> Would create CRM task: %q", step.Params["subject"]))
			} else {
				ctx.SideEffects.Tasks = append(ctx.SideEffects.Tasks, CRMTask{
					Subject: step.Params["subject"],
					DueDate: step.Params["due_date"],
				})
			}

		case models.DSLNotifySlack:
			if ctx.DryRun {
				ctx.Logs = append(ctx.Logs, fmt.Sprintf("  -> Would post to Slack channel %s", step.Params["channel"]))
			} else {
				ctx.SideEffects.SlackMessages = append(ctx.SideEffects.SlackMessages, SlackPost{
					Channel: step.Params["channel"],
					Text:    step.Params["message"],
				})
			}

		case models.DSLDraftEmail:
			if ctx.DryRun {
				ctx.Logs = append(ctx.Logs, fmt.Sprintf("  -> Would draft email %q to %s", step.Params["subject"], step.Params["recipient"]))
			} else {
				ctx.SideEffects.Emails = append(ctx.SideEffects.Emails, models.EmailDraft{
					Subject: step.Params["subject"],
					Body:    step.Params["body"],
				})
			}

		case models.DSLSetSLATimer:
			ctx.Logs = append(ctx.Logs, fmt.Sprintf("  -> SLA Timer reset/updated for %d records", len(current)))

		default:
			ctx.Logs = append(ctx.Logs, fmt.Sprintf("  -> Unknown action %s, skipping.", step.Action))
		}
	}

	return current
}
