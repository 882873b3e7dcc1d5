package policy

// Policy holds the tunable heuristics of the leak pipeline: SLA thresholds,
// decay parameters, the error budget, and the stage win-probability table.
type Policy struct {
	SLAMinutes         int                `yaml:"slaMinutes"`
	StaleDays          int                `yaml:"staleDays"`
	DecayHalflifeDays  float64            `yaml:"decayHalflifeDays"`
	ErrorBudgetUSD     int64              `yaml:"errorBudgetUSD"`
	AverageDealSizeUSD int64              `yaml:"averageDealSizeUSD"`
	WinProbability     map[string]float64 `yaml:"winProbability"`
	WarnThreshold      float64            `yaml:"warnThreshold"`
	PageThreshold      float64            `yaml:"pageThreshold"`
}

// DefaultWinProbability is the stage probability applied to stages missing
// from the table.
const DefaultWinProbability = 0.10

// Default returns the built-in policy used when no policy file is configured.
func Default() Policy {
	return Policy{
		SLAMinutes:         30,
		StaleDays:          7,
		DecayHalflifeDays:  14,
		ErrorBudgetUSD:     50000,
		AverageDealSizeUSD: 15000,
		WinProbability: map[string]float64{
			"New":         0.10,
			"Qualified":   0.25,
			"Proposal":    0.45,
			"Negotiation": 0.65,
			"Closed_Won":  1.0,
			"Closed_Lost": 0.0,
		},
		WarnThreshold: 0.25,
		PageThreshold: 0.50,
	}
}

// WinProb looks up the win probability for a stage, defaulting for unknown
// or empty stages.
func (p Policy) WinProb(stage string) float64 {
	if stage == "" {
		return DefaultWinProbability
	}
	if prob, ok := p.WinProbability[stage]; ok {
		return prob
	}
	return DefaultWinProbability
}

func (p *Policy) applyDefaults() {
	def := Default()
	if p.SLAMinutes <= 0 {
		p.SLAMinutes = def.SLAMinutes
	}
	if p.StaleDays <= 0 {
		p.StaleDays = def.StaleDays
	}
	if p.DecayHalflifeDays <= 0 {
		p.DecayHalflifeDays = def.DecayHalflifeDays
	}
	if p.ErrorBudgetUSD <= 0 {
		p.ErrorBudgetUSD = def.ErrorBudgetUSD
	}
	if p.AverageDealSizeUSD <= 0 {
		p.AverageDealSizeUSD = def.AverageDealSizeUSD
	}
	if len(p.WinProbability) == 0 {
		p.WinProbability = def.WinProbability
	}
	if p.WarnThreshold <= 0 {
		p.WarnThreshold = def.WarnThreshold
	}
	if p.PageThreshold <= 0 {
		p.PageThreshold = def.PageThreshold
	}
}
