package impact

import (
	"math"
	"time"

	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
	"github.com/revopsstack/revleak/internal/utils"
)

// Model converts a record and an issue type into an estimated dollar loss.
// All calculations are pure given the supplied clock value.
type Model struct {
	pol policy.Policy
}

// NewModel constructs an impact model from the active policy.
func NewModel(pol policy.Policy) Model {
	return Model{pol: pol}
}

// Calculate returns the non-negative estimated USD loss for one issue type
// against one record. Unknown issue types price at zero.
func (m Model) Calculate(record models.FunnelRecord, issueType models.IssueType, now time.Time) int64 {
	value := record.ValueUSD

	switch issueType {
	case models.IssueStaleOpp:
		// Expected-value erosion: the stage win probability decays toward
		// zero with a configurable half-life; the loss is the delta.
		baseProb := m.pol.WinProb(record.Stage)
		daysInactive := float64(utils.WholeDaysBetween(record.LastActivity(), now))
		if record.LastActivity().After(now) {
			daysInactive = 0
		}
		currentProb := baseProb * m.decayFactor(daysInactive)
		return roundUSD(float64(value) * (baseProb - currentProb))

	case models.IssueSLABreachUntouched:
		// 50% chance of losing the lead entirely once the SLA is breached.
		return roundUSD(float64(value) * 0.5)

	case models.IssueUnassignedOwner:
		// Unassigned records have zero velocity: 100% at risk.
		return value

	case models.IssueDuplicateSuspect:
		// Operational waste plus double-calling confusion risk.
		return roundUSD(float64(value) * 0.2)

	case models.IssueNoNextStep:
		// Flat process risk.
		return roundUSD(float64(value) * 0.25)

	default:
		return 0
	}
}

// PriceAll returns a copy of issues with EstimatedLossUSD populated. Issues
// whose record no longer resolves are passed through unpriced.
func (m Model) PriceAll(issues []models.LeakIssue, records []models.FunnelRecord, now time.Time) []models.LeakIssue {
	byID := make(map[string]models.FunnelRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	priced := make([]models.LeakIssue, len(issues))
	for i, issue := range issues {
		priced[i] = issue
		record, ok := byID[issue.RecordID]
		if !ok {
			continue
		}
		priced[i].EstimatedLossUSD = m.Calculate(record, issue.IssueType, now)
	}
	return priced
}

func (m Model) decayFactor(daysInactive float64) float64 {
	if daysInactive <= 0 {
		return 1.0
	}
	k := math.Ln2 / m.pol.DecayHalflifeDays
	return math.Exp(-k * daysInactive)
}

func roundUSD(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Round(v))
}
