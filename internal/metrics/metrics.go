package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels scans that completed.
	OutcomeSuccess = "success"
	// OutcomeError labels scans that failed before aggregation.
	OutcomeError = "error"
)

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "revleak",
			Name:      "scans_total",
			Help:      "Total number of leak scans handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	scanDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "revleak",
			Name:      "scan_seconds",
			Help:      "Scan pipeline latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
	)

	issuesDetected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "revleak",
			Name:      "issues_detected",
			Help:      "Issues found by the most recent scan, partitioned by issue type.",
		},
		[]string{"issue_type"},
	)

	dollarsAtRisk = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "revleak",
			Name:      "dollars_at_risk_usd",
			Help:      "Total estimated revenue at risk from the most recent scan.",
		},
	)

	burnRate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "revleak",
			Name:      "error_budget_burn_rate",
			Help:      "Ratio of at-risk dollars to the configured error budget.",
		},
	)

	fixesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "revleak",
			Name:      "fixes_applied_total",
			Help:      "Total fix applications, partitioned by action type.",
		},
		[]string{"action_type"},
	)
)

// Register attaches revleak collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		scansTotal,
		scanDurationSeconds,
		issuesDetected,
		dollarsAtRisk,
		burnRate,
		fixesApplied,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveScan records one scan's duration and outcome label.
func ObserveScan(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	scansTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	scanDurationSeconds.Observe(duration.Seconds())
}

// SetScanGauges publishes the latest scan's issue counts and budget burn.
func SetScanGauges(issueCounts map[string]int, atRiskUSD int64, burn float64) {
	issuesDetected.Reset()
	for issueType, count := range issueCounts {
		issuesDetected.WithLabelValues(issueType).Set(float64(count))
	}
	dollarsAtRisk.Set(float64(atRiskUSD))
	burnRate.Set(burn)
}

// ObserveFixApplied counts one fix application by action type.
func ObserveFixApplied(actionType string) {
	fixesApplied.WithLabelValues(actionType).Inc()
}
