// Package report turns engine results into stakeholder-facing narrative.
package report

import "circular_platform/pkg/core/calc"

// ImpactSummary is the public transparency view: diversion and workforce outcomes only.
// Contract pricing and margins never appear here.
type ImpactSummary struct {
	ProcessedLbsMonth float64 `json:"processed_lbs_month"`
	RecoveredLbsMonth float64 `json:"recovered_lbs_month"`
	JobsPlacedPerYear float64 `json:"jobs_placed_per_year"`
	CarbonValueMonth  float64 `json:"carbon_value_month"`
	TraineesPerYear   float64 `json:"trainees_per_year"`
	DiversionRate     float64 `json:"diversion_rate"`
}

// Impact extracts the public metrics from a snapshot.
func Impact(m calc.MonthlySnapshot) ImpactSummary {
	return ImpactSummary{
		ProcessedLbsMonth: m.IncomingLbs,
		RecoveredLbsMonth: m.RecoveredLbs,
		JobsPlacedPerYear: m.JobsPlacedPerYear,
		CarbonValueMonth:  m.CarbonValue,
		TraineesPerYear:   m.TraineesPerYear,
		DiversionRate:     m.Rates.Recovery,
	}
}
