// Package kpi classifies process rates against targets for quick visual status.
package kpi

import "circular_platform/pkg/core/calc"

// Status is a traffic-light classification.
type Status string

const (
	Green  Status = "GREEN"
	Yellow Status = "YELLOW"
	Red    Status = "RED"
)

// DefaultWarnBand is how far below target a value may sit and still be Yellow.
const DefaultWarnBand = 0.05

// Classify returns Green if value >= target, Yellow if value >= target-band, Red otherwise.
func Classify(value, target, band float64) Status {
	if value >= target {
		return Green
	}
	if value >= target-band {
		return Yellow
	}
	return Red
}

// Symbol returns the emoji used by the dashboard for s.
func (s Status) Symbol() string {
	switch s {
	case Green:
		return "🟢"
	case Yellow:
		return "🟡"
	default:
		return "🔴"
	}
}

// Targets are the process-health goals. Downtime and scrap are ceilings;
// they are classified on their complement so "higher is better" holds everywhere.
type Targets struct {
	Recovery    float64 `json:"recovery" yaml:"recovery"`
	Yield       float64 `json:"yield" yaml:"yield"`
	DowntimeMax float64 `json:"downtime_max" yaml:"downtime_max"`
	ScrapMax    float64 `json:"scrap_max" yaml:"scrap_max"`
	WarnBand    float64 `json:"warn_band" yaml:"warn_band"`
}

// DefaultTargets returns the program's standard process targets.
func DefaultTargets() Targets {
	return Targets{
		Recovery:    0.90,
		Yield:       0.92,
		DowntimeMax: 0.08,
		ScrapMax:    0.07,
		WarnBand:    DefaultWarnBand,
	}
}

// Indicator is one classified process metric.
type Indicator struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`  // the rate as entered (e.g. downtime 0.08)
	Target float64 `json:"target"` // the goal in the same terms as Value
	Status Status  `json:"status"`
}

// ProcessHealth classifies recovery, yield, downtime and scrap.
func ProcessHealth(r calc.Rates, t Targets) []Indicator {
	return []Indicator{
		{Name: "Recovery", Value: r.Recovery, Target: t.Recovery, Status: Classify(r.Recovery, t.Recovery, t.WarnBand)},
		{Name: "Yield", Value: r.Yield, Target: t.Yield, Status: Classify(r.Yield, t.Yield, t.WarnBand)},
		{Name: "Downtime", Value: r.Downtime, Target: t.DowntimeMax, Status: Classify(1-r.Downtime, 1-t.DowntimeMax, t.WarnBand)},
		{Name: "Scrap", Value: r.Scrap, Target: t.ScrapMax, Status: Classify(1-r.Scrap, 1-t.ScrapMax, t.WarnBand)},
	}
}
