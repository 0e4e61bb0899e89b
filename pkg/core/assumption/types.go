// Package assumption holds the operating assumptions consumed by the calculation engine.
// Syncs with the sidebar inputs of the program dashboard: every field carries the
// documented min/max/step so the configuration layer and the engine agree on bounds.
package assumption

// =============================================================================
// ASSUMPTION SET (Baseline Operating Inputs)
// =============================================================================

// AssumptionSet is one immutable snapshot of program inputs.
// Rate-like fields are fractions in [0,1]; the engine clamps them before use.
type AssumptionSet struct {
	// Throughput
	Sites           float64 `json:"sites" yaml:"sites" validate:"gte=1,lte=5000"`
	LbsPerSiteMonth float64 `json:"lbs_per_site_month" yaml:"lbs_per_site_month" validate:"gte=0,lte=50000000"`

	// Process efficiency (fractions)
	RecoveryRate float64 `json:"recovery_rate" yaml:"recovery_rate" validate:"gte=0,lte=1"`
	YieldRate    float64 `json:"yield_rate" yaml:"yield_rate" validate:"gte=0,lte=1"`
	DowntimeRate float64 `json:"downtime_rate" yaml:"downtime_rate" validate:"gte=0,lte=1"`
	ScrapRate    float64 `json:"scrap_rate" yaml:"scrap_rate" validate:"gte=0,lte=1"`

	// Output split
	SellShare float64 `json:"sell_share" yaml:"sell_share" validate:"gte=0,lte=1"`

	// Per-pound values ($/lb)
	SellPricePerLb     float64 `json:"sell_price_per_lb" yaml:"sell_price_per_lb" validate:"gte=0,lte=1000"`
	InternalValuePerLb float64 `json:"internal_value_per_lb" yaml:"internal_value_per_lb" validate:"gte=0,lte=1000"`
	DisposalAvoidPerLb float64 `json:"disposal_avoid_per_lb" yaml:"disposal_avoid_per_lb" validate:"gte=0,lte=100"` // $/lb recovered
	CarbonValuePerLb   float64 `json:"carbon_value_per_lb" yaml:"carbon_value_per_lb" validate:"gte=0,lte=100"`     // $/lb recovered

	// Costs
	OpCostPerSiteMonth float64 `json:"op_cost_per_site_month" yaml:"op_cost_per_site_month" validate:"gte=0,lte=10000000"`
	CapexPerSite       float64 `json:"capex_per_site" yaml:"capex_per_site" validate:"gte=0,lte=500000000"` // one-time

	// Workforce
	TraineesPerSiteYear  float64 `json:"trainees_per_site_year" yaml:"trainees_per_site_year" validate:"gte=0,lte=5000"`
	PlacementRate        float64 `json:"placement_rate" yaml:"placement_rate" validate:"gte=0,lte=1"`
	AvgWageUpliftPerHour float64 `json:"avg_wage_uplift_per_hour" yaml:"avg_wage_uplift_per_hour" validate:"gte=0,lte=50"` // narrative only
}

// Clamped returns a copy with every rate-like field forced into [0,1].
// Scalar quantities are passed through untouched.
func (a AssumptionSet) Clamped() AssumptionSet {
	c := a
	c.RecoveryRate = Clamp01(a.RecoveryRate)
	c.YieldRate = Clamp01(a.YieldRate)
	c.DowntimeRate = Clamp01(a.DowntimeRate)
	c.ScrapRate = Clamp01(a.ScrapRate)
	c.SellShare = Clamp01(a.SellShare)
	c.PlacementRate = Clamp01(a.PlacementRate)
	return c
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}

// Clamp01 bounds x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// =============================================================================
// GROWTH ASSUMPTIONS (Pro Forma Drivers)
// =============================================================================

// GrowthAssumptions drives the multi-year projection. All rates are fractions
// (0.25 = 25% per year). Value-per-lb and op-cost growth may be negative.
type GrowthAssumptions struct {
	Years            int     `json:"years" yaml:"years" validate:"gte=3,lte=5"`
	GrowthSites      float64 `json:"growth_sites" yaml:"growth_sites" validate:"gte=0,lte=3"`
	GrowthThroughput float64 `json:"growth_throughput" yaml:"growth_throughput" validate:"gte=0,lte=1"`
	GrowthValuePerLb float64 `json:"growth_value_per_lb" yaml:"growth_value_per_lb" validate:"gte=-0.5,lte=1"`
	GrowthOpCost     float64 `json:"growth_op_cost" yaml:"growth_op_cost" validate:"gte=-0.5,lte=1"`
	ReinvestRate     float64 `json:"reinvest_rate" yaml:"reinvest_rate" validate:"gte=0,lte=1"`
}

// ClampYears forces the projection horizon into the supported [3,5] window.
func ClampYears(years int) int {
	return min(max(years, MinYears), MaxYears)
}

const (
	MinYears = 3
	MaxYears = 5
)
