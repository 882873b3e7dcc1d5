package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/revopsstack/revleak/internal/audit"
	"github.com/revopsstack/revleak/internal/engine"
	"github.com/revopsstack/revleak/internal/fixes"
	"github.com/revopsstack/revleak/internal/ingest"
	"github.com/revopsstack/revleak/internal/metrics"
	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/notify"
	"github.com/revopsstack/revleak/internal/policy"
	"github.com/revopsstack/revleak/internal/store"
	"github.com/revopsstack/revleak/internal/utils"
)

// LeakService is the facade over the analytical loop: it owns the record
// store, the incident aggregator, and the latest scan snapshot, and wires
// fixes back into the record set.
type LeakService struct {
	logger    *slog.Logger
	loader    *policy.Loader
	records   *store.RecordStore
	pipeline  *engine.Pipeline
	notifier  *notify.SlackNotifier
	auditLog  *audit.Log
	latencies *utils.LatencyTracker

	mu         sync.RWMutex
	lastResult *models.ScanResult
}

// NewLeakService constructs the service facade. The notifier may be nil;
// fix application then skips alerting with no other behavior change.
func NewLeakService(logger *slog.Logger, loader *policy.Loader, records *store.RecordStore, pipeline *engine.Pipeline, notifier *notify.SlackNotifier, auditLog *audit.Log) *LeakService {
	if logger == nil {
		logger = slog.Default()
	}
	if records == nil {
		records = store.New()
	}
	if pipeline == nil {
		pipeline = engine.NewPipeline(logger, nil)
	}
	if auditLog == nil {
		auditLog = audit.NewLog("revleak-engine")
	}
	return &LeakService{
		logger:    logger,
		loader:    loader,
		records:   records,
		pipeline:  pipeline,
		notifier:  notifier,
		auditLog:  auditLog,
		latencies: utils.NewLatencyTracker(1024),
	}
}

// Policy returns the currently active scan policy.
func (s *LeakService) Policy() policy.Policy {
	if s.loader == nil {
		return policy.Default()
	}
	return s.loader.Policy()
}

// LoadRecords replaces the working record set.
func (s *LeakService) LoadRecords(records []models.FunnelRecord) {
	s.records.Replace(records)
	s.logger.Info("records loaded", slog.Int("count", len(records)))
}

// LoadSampleData seeds the store with the demo record set.
func (s *LeakService) LoadSampleData() int {
	records := ingest.GenerateSampleData(time.Now().UTC())
	s.records.Replace(records)
	s.logger.Info("sample data loaded", slog.Int("count", len(records)))
	return len(records)
}

// Records returns a copy of the working record set.
func (s *LeakService) Records() []models.FunnelRecord {
	return s.records.Snapshot()
}

// Scan runs one full loop over the current records and caches the result.
func (s *LeakService) Scan() models.ScanResult {
	result := s.pipeline.Run(s.records.Snapshot(), s.Policy(), time.Now().UTC())

	s.mu.Lock()
	s.lastResult = &result
	s.mu.Unlock()

	s.latencies.Observe(result.Duration)
	metrics.ObserveScan(result.Duration, metrics.OutcomeSuccess)
	counts := make(map[string]int, len(result.Issues))
	for _, issue := range result.Issues {
		counts[string(issue.IssueType)]++
	}
	metrics.SetScanGauges(counts, result.Incident.TotalAtRiskUSD, result.Incident.BurnRate)

	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("scan latency",
			slog.Duration("p95", s.latencies.Percentile(95)),
			slog.Int("samples", count))
	}

	return result
}

// LastResult returns the most recent scan snapshot, if any.
func (s *LeakService) LastResult() (models.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResult == nil {
		return models.ScanResult{}, false
	}
	return *s.lastResult, true
}

// findIssue resolves an issue id against the latest scan.
func (s *LeakService) findIssue(issueID string) (models.LeakIssue, error) {
	result, ok := s.LastResult()
	if !ok {
		return models.LeakIssue{}, utils.NewAppError("fix", "no scan has been run yet", nil)
	}
	for _, issue := range result.Issues {
		if issue.IssueID == issueID {
			return issue, nil
		}
	}
	return models.LeakIssue{}, utils.NewAppError("fix", fmt.Sprintf("issue %s not found in latest scan", issueID), nil)
}

// GenerateFix builds the fix pack for one issue from the latest scan and
// logs a FIXPACK_GENERATED timeline event. An issue whose record no longer
// resolves generates against a placeholder so the caller still gets steps.
func (s *LeakService) GenerateFix(issueID string) (models.FixPack, error) {
	issue, err := s.findIssue(issueID)
	if err != nil {
		return models.FixPack{}, err
	}

	record, ok := s.records.Get(issue.RecordID)
	if !ok {
		s.logger.Warn("issue references missing record",
			slog.String("issue_id", issue.IssueID),
			slog.String("record_id", issue.RecordID))
		record = models.FunnelRecord{ID: issue.RecordID, Name: "Unknown Record"}
	}

	pack := fixes.NewGenerator(s.Policy()).Generate(issue, record)
	s.pipeline.Aggregator().AddEvent(models.EventFixPackGenerated,
		fmt.Sprintf("Fix pack %s generated for %s", pack.FixID, issue.IssueType), nil)
	return pack, nil
}

// PreviewFix dry-runs the fix pack's workflow and returns the step log.
func (s *LeakService) PreviewFix(issueID string) (models.FixPack, []string, error) {
	issue, err := s.findIssue(issueID)
	if err != nil {
		return models.FixPack{}, nil, err
	}
	record, _ := s.records.Get(issue.RecordID)

	pack := fixes.NewGenerator(s.Policy()).Generate(issue, record)
	ctx := &fixes.ExecutionContext{Records: []models.FunnelRecord{record}, DryRun: true}
	fixes.ExecuteWorkflow(pack.WorkflowSteps, ctx)
	return pack, ctx.Logs, nil
}

// ApplyFix generates the pack for an issue, applies it to the record set,
// notifies and audits, then closes the loop with a fresh scan.
func (s *LeakService) ApplyFix(ctx context.Context, issueID string) (models.FixResult, models.ScanResult, error) {
	issue, err := s.findIssue(issueID)
	if err != nil {
		return models.FixResult{}, models.ScanResult{}, err
	}
	record, ok := s.records.Get(issue.RecordID)
	if !ok {
		record = models.FunnelRecord{ID: issue.RecordID, Name: "Unknown Record"}
	}

	pack := fixes.NewGenerator(s.Policy()).Generate(issue, record)
	applicator := fixes.NewApplicator(s.logger, s.pipeline.Aggregator())
	result := applicator.Apply(s.records.Snapshot(), pack)

	if result.AffectedCount > 0 {
		s.records.Replace(result.UpdatedRecords)
		metrics.ObserveFixApplied(string(pack.AutomationPayload.ActionType))
		s.auditLog.Record("FIX_APPLIED", result.AppliedActionSummary, issue.RecordID)

		if s.notifier != nil && pack.SlackMessage != "" {
			// Best effort only; a missing or failing webhook never blocks the fix.
			_ = s.notifier.Post(ctx, pack.SlackMessage)
		}
	}

	return result, s.Scan(), nil
}

// Timeline returns the incident timeline, newest first.
func (s *LeakService) Timeline() []models.TimelineEvent {
	return s.pipeline.Aggregator().Timeline()
}

// AddNote appends a manual note to the incident timeline.
func (s *LeakService) AddNote(message string) models.TimelineEvent {
	return s.pipeline.Aggregator().AddEvent(models.EventManualNote, message, nil)
}

// AuditTrail returns the audit log, newest first.
func (s *LeakService) AuditTrail() []audit.Event {
	return s.auditLog.Entries()
}

// Reset clears incident state, the audit trail, and the cached scan so a
// demo sequence can restart deterministically. Records are not touched.
func (s *LeakService) Reset() {
	s.pipeline.Aggregator().Reset()
	s.auditLog.Clear()
	s.mu.Lock()
	s.lastResult = nil
	s.mu.Unlock()
	s.logger.Info("incident state reset")
}

// LatencyP95 returns the current p95 scan latency.
func (s *LeakService) LatencyP95() time.Duration {
	return s.latencies.Percentile(95)
}
