// Package calc provides the deterministic monthly model for the circular plastics program.
// This file defines the snapshot produced by Compute.
package calc

import "encoding/json"

// =============================================================================
// MONTHLY SNAPSHOT
// Material flow: incoming -> recovered -> usable -> finished -> {sold, internal}
// =============================================================================

// MaterialFlow is the monthly pound chain. Each stage is the previous stage times a rate,
// so finished <= usable <= recovered <= incoming whenever rates are in [0,1].
type MaterialFlow struct {
	IncomingLbs  float64 `json:"incoming_lbs"`  // lbsPerSiteMonth * sites
	RecoveredLbs float64 `json:"recovered_lbs"` // incoming * recovery
	UsableLbs    float64 `json:"usable_lbs"`    // recovered * (1 - scrap)
	FinishedLbs  float64 `json:"finished_lbs"`  // usable * yield * (1 - downtime)
	SoldLbs      float64 `json:"sold_lbs"`      // finished * sellShare
	InternalLbs  float64 `json:"internal_lbs"`  // finished * (1 - sellShare)
}

// Financials holds monthly dollar outcomes.
type Financials struct {
	SellRevenue     float64 `json:"sell_revenue"`
	InternalValue   float64 `json:"internal_value"`
	DisposalAvoided float64 `json:"disposal_avoided"` // on recovered lbs
	CarbonValue     float64 `json:"carbon_value"`     // on recovered lbs
	GrossValue      float64 `json:"gross_value"`
	OpCost          float64 `json:"op_cost"`
	NetProfit       float64 `json:"net_profit"`
	CapexTotal      float64 `json:"capex_total"`

	// PaybackMonths is +Inf when NetProfit <= 0. Use PaybackDefined before display.
	PaybackMonths float64 `json:"-"`
}

// Workforce holds annualized training outcomes.
type Workforce struct {
	TraineesPerYear   float64 `json:"trainees_per_year"`
	JobsPlacedPerYear float64 `json:"jobs_placed_per_year"`
}

// Rates are the clamped fractions actually used by the model.
type Rates struct {
	Recovery  float64 `json:"recovery"`
	Yield     float64 `json:"yield"`
	Downtime  float64 `json:"downtime"`
	Scrap     float64 `json:"scrap"`
	SellShare float64 `json:"sell_share"`
	Placement float64 `json:"placement"`
}

// MonthlySnapshot is recomputed on every call; it has no identity beyond the call.
type MonthlySnapshot struct {
	Sites float64 `json:"sites"`
	Rates Rates   `json:"rates"`

	MaterialFlow
	Financials
	Workforce

	// ValuePerRecoveredLb = GrossValue / RecoveredLbs, 0 when nothing is recovered.
	// Seeds the multi-year projection.
	ValuePerRecoveredLb float64 `json:"value_per_recovered_lb"`
}

// MarshalJSON writes payback_months as null when the payback is undefined,
// since JSON has no infinity token.
func (m MonthlySnapshot) MarshalJSON() ([]byte, error) {
	type alias MonthlySnapshot
	var payback *float64
	if v, ok := m.Payback(); ok {
		payback = &v
	}
	return json.Marshal(struct {
		alias
		PaybackMonths *float64 `json:"payback_months"`
	}{alias(m), payback})
}
