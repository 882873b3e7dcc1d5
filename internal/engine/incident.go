package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revopsstack/revleak/internal/models"
)

// Aggregator owns the incident lifecycle state: the active incident id, its
// open timestamp, and the append-only timeline (newest first). One Aggregator
// is constructed per session and passed explicitly through the call chain.
type Aggregator struct {
	mu       sync.Mutex
	logger   *slog.Logger
	timeline []models.TimelineEvent
	activeID string
	openedAt time.Time
	resetAt  time.Time
}

// NewAggregator constructs an empty incident aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger, resetAt: time.Now().UTC()}
}

// AddEvent appends a timeline entry and returns it. Entries are stored
// newest first.
func (a *Aggregator) AddEvent(eventType models.TimelineEventType, message string, data map[string]any) models.TimelineEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addEventLocked(eventType, message, data)
}

func (a *Aggregator) addEventLocked(eventType models.TimelineEventType, message string, data map[string]any) models.TimelineEvent {
	event := models.TimelineEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Message:   message,
		Data:      data,
	}
	a.timeline = append([]models.TimelineEvent{event}, a.timeline...)
	return event
}

// Timeline returns a copy of the current timeline, newest first.
func (a *Aggregator) Timeline() []models.TimelineEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.TimelineEvent(nil), a.timeline...)
}

// Reset clears the timeline and active incident so a demo sequence can
// restart deterministically.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeline = nil
	a.activeID = ""
	a.openedAt = time.Time{}
	a.resetAt = time.Now().UTC()
}

// Compute reduces the priced issue list into the incident aggregate and
// advances the open/resolved state machine. A DETECTED event is emitted once
// per open period; RESOLVED fires when the issue count returns to zero.
func (a *Aggregator) Compute(issues []models.LeakIssue, records []models.FunnelRecord, errorBudgetUSD int64) models.Incident {
	a.mu.Lock()
	defer a.mu.Unlock()

	var totalAtRisk int64
	highCount := 0
	for _, issue := range issues {
		totalAtRisk += issue.EstimatedLossUSD
		if issue.SeverityLabel == models.SeverityLabelHigh {
			highCount++
		}
	}

	burnRate := 0.0
	if errorBudgetUSD > 0 {
		burnRate = float64(totalAtRisk) / float64(errorBudgetUSD)
	}

	severity := 5
	status := models.IncidentResolved

	if len(issues) > 0 {
		status = models.IncidentOpen
		switch {
		case burnRate > 2.0 || highCount > 50:
			severity = 1
		case burnRate > 1.0:
			severity = 2
		case burnRate > 0.5:
			severity = 3
		default:
			severity = 4
		}

		if a.activeID == "" {
			a.activeID = newIncidentID()
			a.openedAt = time.Now().UTC()
			a.addEventLocked(models.EventDetected,
				fmt.Sprintf("Incident %s detected. %d leaks found.", a.activeID, len(issues)),
				map[string]any{"total_at_risk_usd": totalAtRisk})
			a.logger.Info("incident opened",
				slog.String("incident_id", a.activeID),
				slog.Int("issues", len(issues)),
				slog.Int64("at_risk_usd", totalAtRisk))
		}
	} else if a.activeID != "" {
		a.addEventLocked(models.EventResolved,
			fmt.Sprintf("Incident %s resolved. All leaks fixed.", a.activeID), nil)
		a.logger.Info("incident resolved", slog.String("incident_id", a.activeID))
		a.activeID = ""
	}

	createdAt := a.openedAt
	if createdAt.IsZero() {
		createdAt = a.resetAt
	}

	return models.Incident{
		IncidentID:       a.activeID,
		CreatedAt:        createdAt,
		Status:           status,
		Severity:         severity,
		TotalAtRiskUSD:   totalAtRisk,
		BurnRate:         burnRate,
		ErrorBudgetUSD:   errorBudgetUSD,
		TopCauses:        topCauses(issues),
		AffectedSegments: affectedSegments(issues, records),
	}
}

func newIncidentID() string {
	return "INC-" + strings.ToUpper(uuid.NewString()[:6])
}

func topCauses(issues []models.LeakIssue) []models.CauseSummary {
	byType := make(map[models.IssueType]*models.CauseSummary)
	order := make([]models.IssueType, 0)
	for _, issue := range issues {
		summary, ok := byType[issue.IssueType]
		if !ok {
			summary = &models.CauseSummary{IssueType: issue.IssueType}
			byType[issue.IssueType] = summary
			order = append(order, issue.IssueType)
		}
		summary.Count++
		summary.AtRiskUSD += issue.EstimatedLossUSD
	}

	causes := make([]models.CauseSummary, 0, len(order))
	for _, issueType := range order {
		causes = append(causes, *byType[issueType])
	}
	sort.SliceStable(causes, func(i, j int) bool {
		return causes[i].AtRiskUSD > causes[j].AtRiskUSD
	})
	if len(causes) > 5 {
		causes = causes[:5]
	}
	return causes
}

// affectedSegments groups dollar impact by record owner. Issues whose record
// no longer resolves, and ownerless records, land in the Unassigned bucket.
func affectedSegments(issues []models.LeakIssue, records []models.FunnelRecord) []models.SegmentImpact {
	byID := make(map[string]models.FunnelRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, issue := range issues {
		owner := "Unassigned"
		if record, ok := byID[issue.RecordID]; ok && record.Owner != "" {
			owner = record.Owner
		}
		if _, seen := totals[owner]; !seen {
			order = append(order, owner)
		}
		totals[owner] += issue.EstimatedLossUSD
	}

	segments := make([]models.SegmentImpact, 0, len(order))
	for _, owner := range order {
		segments = append(segments, models.SegmentImpact{Key: "Owner", Value: owner, AtRiskUSD: totals[owner]})
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].AtRiskUSD > segments[j].AtRiskUSD
	})
	if len(segments) > 5 {
		segments = segments[:5]
	}
	return segments
}
