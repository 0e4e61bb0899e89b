package projection

// ProjectionRow holds one projected year of the pro forma.
type ProjectionRow struct {
	Year               int     `json:"year"` // 1..N
	Sites              float64 `json:"sites"`
	IncomingLbsAnnual  float64 `json:"incoming_lbs_annual"`
	RecoveredLbsAnnual float64 `json:"recovered_lbs_annual"`
	GrossValue         float64 `json:"gross_value"`
	OpCost             float64 `json:"op_cost"`
	NetProceeds        float64 `json:"net_proceeds"`
	CapexNewSites      float64 `json:"capex_new_sites"`
	WorkforceReinvest  float64 `json:"workforce_reinvest"`

	// Running sums over rows 1..Year
	CumulativeNetProceeds       float64 `json:"cumulative_net_proceeds"`
	CumulativeWorkforceReinvest float64 `json:"cumulative_workforce_reinvest"`
}

// Readout summarizes the final projected year.
type Readout struct {
	Years                       int     `json:"years"`
	Sites                       float64 `json:"sites"`
	RecoveredLbsAnnual          float64 `json:"recovered_lbs_annual"`
	CumulativeNetProceeds       float64 `json:"cumulative_net_proceeds"`
	CumulativeWorkforceReinvest float64 `json:"cumulative_workforce_reinvest"`
}
