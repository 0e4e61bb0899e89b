package assumption

// FieldSpec describes one numeric input as the configuration layer presents it.
type FieldSpec struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
	Unit    string  `json:"unit,omitempty"`
}

// Defaults returns the baseline program scenario (one site, 80,000 lbs/month).
func Defaults() AssumptionSet {
	return AssumptionSet{
		Sites:                1,
		LbsPerSiteMonth:      80_000,
		RecoveryRate:         0.90,
		YieldRate:            0.92,
		DowntimeRate:         0.08,
		ScrapRate:            0.06,
		SellShare:            0.50,
		SellPricePerLb:       10.0,
		InternalValuePerLb:   12.0,
		DisposalAvoidPerLb:   0.15,
		CarbonValuePerLb:     0.06,
		OpCostPerSiteMonth:   18_000,
		CapexPerSite:         120_000,
		TraineesPerSiteYear:  80,
		PlacementRate:        0.70,
		AvgWageUpliftPerHour: 8.0,
	}
}

// DefaultGrowth returns the default five-year pro forma drivers.
func DefaultGrowth() GrowthAssumptions {
	return GrowthAssumptions{
		Years:            5,
		GrowthSites:      0.25,
		GrowthThroughput: 0.05,
		GrowthValuePerLb: 0.02,
		GrowthOpCost:     0.03,
		ReinvestRate:     0.30,
	}
}

// Fields lists the baseline inputs in display order.
func Fields() []FieldSpec {
	d := Defaults()
	return []FieldSpec{
		{Key: "sites", Label: "Sites participating", Min: 1, Max: 5000, Step: 1, Default: d.Sites},
		{Key: "lbs_per_site_month", Label: "Plastic processed per site (lbs/month)", Min: 0, Max: 50_000_000, Step: 1000, Default: d.LbsPerSiteMonth, Unit: "lbs"},
		{Key: "recovery_rate", Label: "Recovery rate (0-1)", Min: 0, Max: 1, Step: 0.01, Default: d.RecoveryRate},
		{Key: "yield_rate", Label: "Processing yield (0-1)", Min: 0, Max: 1, Step: 0.01, Default: d.YieldRate},
		{Key: "downtime_rate", Label: "Downtime rate (0-1)", Min: 0, Max: 1, Step: 0.01, Default: d.DowntimeRate},
		{Key: "scrap_rate", Label: "Contamination scrap (0-1)", Min: 0, Max: 1, Step: 0.01, Default: d.ScrapRate},
		{Key: "sell_share", Label: "Sell share of output (0-1)", Min: 0, Max: 1, Step: 0.05, Default: d.SellShare},
		{Key: "sell_price_per_lb", Label: "Sell price ($/lb)", Min: 0, Max: 1000, Step: 0.5, Default: d.SellPricePerLb, Unit: "$"},
		{Key: "internal_value_per_lb", Label: "Internal reuse value ($/lb)", Min: 0, Max: 1000, Step: 0.5, Default: d.InternalValuePerLb, Unit: "$"},
		{Key: "disposal_avoid_per_lb", Label: "Disposal avoided ($/lb recovered)", Min: 0, Max: 100, Step: 0.05, Default: d.DisposalAvoidPerLb, Unit: "$"},
		{Key: "carbon_value_per_lb", Label: "Carbon/ESG value ($/lb recovered)", Min: 0, Max: 100, Step: 0.02, Default: d.CarbonValuePerLb, Unit: "$"},
		{Key: "op_cost_per_site_month", Label: "Operating cost per site ($/month)", Min: 0, Max: 10_000_000, Step: 500, Default: d.OpCostPerSiteMonth, Unit: "$"},
		{Key: "capex_per_site", Label: "CapEx per site (one-time $)", Min: 0, Max: 500_000_000, Step: 1000, Default: d.CapexPerSite, Unit: "$"},
		{Key: "trainees_per_site_year", Label: "Trainees per site per year", Min: 0, Max: 5000, Step: 5, Default: d.TraineesPerSiteYear},
		{Key: "placement_rate", Label: "Placement rate (0-1)", Min: 0, Max: 1, Step: 0.05, Default: d.PlacementRate},
		{Key: "avg_wage_uplift_per_hour", Label: "Avg wage uplift ($/hr)", Min: 0, Max: 50, Step: 1, Default: d.AvgWageUpliftPerHour, Unit: "$"},
	}
}

// GrowthFields lists the pro forma inputs. Percent fields are shown in percent;
// the engine receives them divided by 100.
func GrowthFields() []FieldSpec {
	d := DefaultGrowth()
	return []FieldSpec{
		{Key: "years", Label: "Years", Min: MinYears, Max: MaxYears, Step: 1, Default: float64(d.Years)},
		{Key: "growth_sites", Label: "Site growth per year (%)", Min: 0, Max: 300, Step: 5, Default: d.GrowthSites * 100, Unit: "%"},
		{Key: "growth_throughput", Label: "Throughput efficiency gain per year (%)", Min: 0, Max: 100, Step: 1, Default: d.GrowthThroughput * 100, Unit: "%"},
		{Key: "growth_value_per_lb", Label: "Value per lb improvement per year (%)", Min: -50, Max: 100, Step: 1, Default: d.GrowthValuePerLb * 100, Unit: "%"},
		{Key: "growth_op_cost", Label: "Op cost inflation per year (%)", Min: -50, Max: 100, Step: 1, Default: d.GrowthOpCost * 100, Unit: "%"},
		{Key: "reinvest_rate", Label: "Net proceeds reinvested into workforce (%)", Min: 0, Max: 100, Step: 5, Default: d.ReinvestRate * 100, Unit: "%"},
	}
}
