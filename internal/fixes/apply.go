package fixes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/revopsstack/revleak/internal/engine"
	"github.com/revopsstack/revleak/internal/models"
)

// Applicator interprets a fix pack's automation payload against the record
// set. Application never removes records; a merge archives its target.
type Applicator struct {
	logger     *slog.Logger
	aggregator *engine.Aggregator
}

// NewApplicator constructs an Applicator bound to the incident aggregator.
func NewApplicator(logger *slog.Logger, aggregator *engine.Aggregator) *Applicator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applicator{logger: logger, aggregator: aggregator}
}

// Apply mutates the record targeted by the payload and logs one FIX_APPLIED
// timeline event. A pack without a target record id is a recoverable failure:
// the input records come back unchanged with a failure summary, and nothing
// is logged to the timeline.
func (a *Applicator) Apply(records []models.FunnelRecord, pack models.FixPack) models.FixResult {
	if pack.AutomationPayload == nil || pack.AutomationPayload.RecordID == "" {
		a.logger.Warn("fix pack missing target record id", slog.String("fix_id", pack.FixID))
		return models.FixResult{
			UpdatedRecords:       append([]models.FunnelRecord(nil), records...),
			AppliedActionSummary: "Failed: No target record",
			AffectedCount:        0,
		}
	}

	payload := pack.AutomationPayload
	now := time.Now().UTC()
	affected := 0

	updated := make([]models.FunnelRecord, len(records))
	for i, record := range records {
		if record.ID != payload.RecordID {
			updated[i] = record
			continue
		}
		affected++
		updated[i] = a.mutate(record, payload, now)
	}

	if a.aggregator != nil {
		a.aggregator.AddEvent(models.EventFixApplied,
			fmt.Sprintf("Applied %s to record %s", payload.ActionType, payload.RecordID), nil)
	}
	a.logger.Info("fix applied",
		slog.String("action", string(payload.ActionType)),
		slog.String("record_id", payload.RecordID),
		slog.Int("affected", affected))

	return models.FixResult{
		UpdatedRecords:       updated,
		AppliedActionSummary: fmt.Sprintf("Applied %s to %d record.", payload.ActionType, affected),
		AffectedCount:        affected,
	}
}

func (a *Applicator) mutate(record models.FunnelRecord, payload *models.AutomationPayload, now time.Time) models.FunnelRecord {
	switch payload.ActionType {
	case models.ActionSLABreachFix:
		record.LastTouchAt = &now
		fallbackOwner := AutoRoutedOwner
		nextStep := FollowUpNextStep
		if payload.SLABreach != nil {
			fallbackOwner = paramOr(payload.SLABreach.FallbackOwner, fallbackOwner)
			nextStep = paramOr(payload.SLABreach.NextStep, nextStep)
		}
		if record.Owner == "" {
			record.Owner = fallbackOwner
		}
		record.NextStep = nextStep

	case models.ActionAssignOwner:
		owner := AutoRoutedOwner
		if payload.Assign != nil && payload.Assign.Owner != "" {
			owner = payload.Assign.Owner
		}
		record.Owner = owner

	case models.ActionRescueStale:
		record.LastTouchAt = &now
		marker := RescueNoteMarker
		nextStep := RescueNextStep
		if payload.Rescue != nil {
			marker = paramOr(payload.Rescue.NoteMarker, marker)
			nextStep = paramOr(payload.Rescue.NextStep, nextStep)
		}
		record.Notes += marker
		record.NextStep = nextStep

	case models.ActionMergeDuplicate:
		marker := MergedNoteMarker
		if payload.Merge != nil {
			marker = paramOr(payload.Merge.NoteMarker, marker)
		}
		record.Notes += marker
		record.Status = models.RecordStatusArchived
		record.Stage = models.StageArchived

	case models.ActionAddNextStep:
		nextStep := DiscoveryNextStep
		if payload.NextStep != nil {
			nextStep = paramOr(payload.NextStep.NextStep, nextStep)
		}
		record.NextStep = nextStep

	default:
		// Unknown actions leave the record untouched rather than failing.
		a.logger.Warn("unrecognized action type", slog.String("action", string(payload.ActionType)))
	}

	return record
}

func paramOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
