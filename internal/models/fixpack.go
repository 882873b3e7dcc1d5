package models

// ActionType enumerates the automated mutations the applicator understands.
type ActionType string

const (
	ActionSLABreachFix   ActionType = "SLA_BREACH_FIX"
	ActionAssignOwner    ActionType = "ASSIGN_OWNER"
	ActionRescueStale    ActionType = "RESCUE_STALE"
	ActionMergeDuplicate ActionType = "MERGE_DUPLICATE"
	ActionAddNextStep    ActionType = "ADD_NEXT_STEP"
)

// AutomationPayload targets exactly one record with one action. The per-action
// parameter structs form a tagged union keyed by ActionType so applicator
// dispatch stays exhaustive; at most one variant pointer is non-nil.
type AutomationPayload struct {
	RecordID   string                `json:"record_id"`
	ActionType ActionType            `json:"action_type"`
	SLABreach  *SLABreachFixParams   `json:"sla_breach,omitempty"`
	Assign     *AssignOwnerParams    `json:"assign,omitempty"`
	Rescue     *RescueStaleParams    `json:"rescue,omitempty"`
	Merge      *MergeDuplicateParams `json:"merge,omitempty"`
	NextStep   *AddNextStepParams    `json:"next_step,omitempty"`
}

// SLABreachFixParams controls the rapid-response mutation.
type SLABreachFixParams struct {
	FallbackOwner string `json:"fallback_owner"`
	NextStep      string `json:"next_step"`
}

// AssignOwnerParams names the owner to route the record to.
type AssignOwnerParams struct {
	Owner string `json:"owner"`
}

// RescueStaleParams controls the stale-opportunity rescue mutation.
type RescueStaleParams struct {
	NoteMarker string `json:"note_marker"`
	NextStep   string `json:"next_step"`
}

// MergeDuplicateParams controls duplicate archival.
type MergeDuplicateParams struct {
	TargetDomain string `json:"target_domain"`
	Strategy     string `json:"strategy"`
	NoteMarker   string `json:"note_marker"`
}

// AddNextStepParams carries the next step to write onto the record.
type AddNextStepParams struct {
	NextStep string `json:"next_step"`
}

// DSLAction enumerates workflow-step verbs in generated fix packs.
type DSLAction string

const (
	DSLIdentifyRecords DSLAction = "identify_records"
	DSLWriteBackTask   DSLAction = "write_back_task"
	DSLNotifySlack     DSLAction = "notify_slack"
	DSLDraftEmail      DSLAction = "draft_email"
	DSLReassignOwner   DSLAction = "reassign_owner"
	DSLAddNextStep     DSLAction = "add_next_step"
	DSLSetSLATimer     DSLAction = "set_sla_timer"
)

// WorkflowStep is one structured step of a fix pack's automation workflow.
type WorkflowStep struct {
	Action      DSLAction         `json:"action"`
	Params      map[string]string `json:"params,omitempty"`
	Description string            `json:"description"`
}

// EmailDraft is a ready-to-send outreach draft attached to some fix packs.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// FixPack is a generated remediation bundle for one issue. Packs are
// ephemeral; regenerating for the same issue yields the same FixID.
type FixPack struct {
	FixID             string             `json:"fix_id"`
	Title             string             `json:"title"`
	Steps             []string           `json:"steps"`
	WorkflowSteps     []WorkflowStep     `json:"workflow_steps,omitempty"`
	AutomationPayload *AutomationPayload `json:"automation_payload,omitempty"`
	VerificationCheck string             `json:"verification_check,omitempty"`
	EmailDraft        *EmailDraft        `json:"email_draft,omitempty"`
	SlackMessage      string             `json:"slack_message,omitempty"`
}
