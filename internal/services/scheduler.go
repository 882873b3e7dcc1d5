package services

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler drives periodic rescans from a 5-field cron expression.
type Scheduler struct {
	logger *slog.Logger
	cron   *cron.Cron
}

// NewScheduler builds a scheduler bound to the service. An empty schedule is
// rejected by AddFunc, so callers should gate on the config field first.
func NewScheduler(logger *slog.Logger, svc *LeakService, schedule string) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser))

	_, err := c.AddFunc(schedule, func() {
		result := svc.Scan()
		logger.Info("scheduled scan complete",
			slog.Int("issues", len(result.Issues)),
			slog.Int64("at_risk_usd", result.Incident.TotalAtRiskUSD),
			slog.String("paging_state", string(result.Reliability.PagingState)))
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{logger: logger, cron: c}, nil
}

// Start begins firing scheduled scans in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("rescan scheduler started")
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("rescan scheduler stopped")
}
