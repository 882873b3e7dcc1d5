package engine

import (
	"log/slog"
	"time"

	"github.com/revopsstack/revleak/internal/impact"
	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/policy"
	"github.com/revopsstack/revleak/internal/reliability"
	"github.com/revopsstack/revleak/internal/scan"
)

// Pipeline runs the closed analytical loop over one record snapshot:
// scan -> price -> incident + reliability + SLO aggregation.
type Pipeline struct {
	logger     *slog.Logger
	aggregator *Aggregator
}

// NewPipeline constructs a pipeline bound to one incident aggregator.
func NewPipeline(logger *slog.Logger, aggregator *Aggregator) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if aggregator == nil {
		aggregator = NewAggregator(logger)
	}
	return &Pipeline{logger: logger, aggregator: aggregator}
}

// Aggregator exposes the incident state handle shared with fix application.
func (p *Pipeline) Aggregator() *Aggregator {
	return p.aggregator
}

// Run scans the records under the given policy, prices every finding, and
// reduces the results into the incident, reliability, and SLO views. The
// records slice is never mutated.
func (p *Pipeline) Run(records []models.FunnelRecord, pol policy.Policy, now time.Time) models.ScanResult {
	start := time.Now()

	scanner := scan.NewScanner(pol)
	issues := scanner.Scan(records, now)
	priced := impact.NewModel(pol).PriceAll(issues, records, now)

	incident := p.aggregator.Compute(priced, records, pol.ErrorBudgetUSD)
	metrics := reliability.Calculate(records, incident.TotalAtRiskUSD, pol.ErrorBudgetUSD, pol, now)
	slos := reliability.NewSLOManager(pol).CalculateSLOStatus(records, priced)

	p.logger.Debug("scan complete",
		slog.Int("records", len(records)),
		slog.Int("issues", len(priced)),
		slog.Int64("at_risk_usd", incident.TotalAtRiskUSD),
		slog.String("paging_state", string(metrics.PagingState)))

	return models.ScanResult{
		Issues:      priced,
		Incident:    incident,
		Reliability: metrics,
		SLOs:        slos,
		RecordCount: len(records),
		ScannedAt:   now,
		Duration:    time.Since(start),
	}
}
