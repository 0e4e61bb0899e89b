package projection

import (
	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"

	"gonum.org/v1/gonum/floats"
)

const monthsPerYear = 12.0

// state is the compounded running state carried from one projected year to the next.
// It is replaced, never mutated, on each step.
type state struct {
	sites         float64
	lbsPerSite    float64 // monthly lbs per site
	valuePerLb    float64 // $ per recovered lb
	opCostPerSite float64 // annual $ per site
}

// seed builds the year-1 state from the baseline inputs and the monthly snapshot.
func seed(a assumption.AssumptionSet, baseline calc.MonthlySnapshot) state {
	return state{
		sites:         a.Sites,
		lbsPerSite:    a.LbsPerSiteMonth,
		valuePerLb:    calc.ValuePerRecoveredLb(baseline.GrossValue, baseline.RecoveredLbs),
		opCostPerSite: a.OpCostPerSiteMonth * monthsPerYear,
	}
}

// advance compounds every state variable by one year of growth.
func (s state) advance(g assumption.GrowthAssumptions) state {
	return state{
		sites:         s.sites * (1.0 + g.GrowthSites),
		lbsPerSite:    s.lbsPerSite * (1.0 + g.GrowthThroughput),
		valuePerLb:    s.valuePerLb * (1.0 + g.GrowthValuePerLb),
		opCostPerSite: s.opCostPerSite * (1.0 + g.GrowthOpCost),
	}
}

// Project produces the year-by-year pro forma.
//
// Year 1 uses the unmodified baseline state; every later year is compounded before its
// row is computed. Recovery is held at the (clamped) baseline rate for all years.
// Capex is charged on every site in year 1 and only on sites added during the year after that.
// Years <= 0 yields no rows; the [3,5] horizon is the caller's concern.
func Project(a assumption.AssumptionSet, baseline calc.MonthlySnapshot, g assumption.GrowthAssumptions) []ProjectionRow {
	if g.Years <= 0 {
		return []ProjectionRow{}
	}

	recovery := a.Clamped().RecoveryRate
	rows := make([]ProjectionRow, 0, g.Years)

	cur := seed(a, baseline)
	prev := cur
	for y := 1; y <= g.Years; y++ {
		if y > 1 {
			prev = cur
			cur = cur.advance(g)
		}

		incoming := cur.sites * cur.lbsPerSite * monthsPerYear
		recovered := incoming * recovery
		gross := recovered * cur.valuePerLb
		opCost := cur.sites * cur.opCostPerSite
		net := gross - opCost

		var capex float64
		if y == 1 {
			capex = cur.sites * a.CapexPerSite
		} else {
			capex = (cur.sites - prev.sites) * a.CapexPerSite
		}
		capex = max(capex, 0.0)

		rows = append(rows, ProjectionRow{
			Year:               y,
			Sites:              cur.sites,
			IncomingLbsAnnual:  incoming,
			RecoveredLbsAnnual: recovered,
			GrossValue:         gross,
			OpCost:             opCost,
			NetProceeds:        net,
			CapexNewSites:      capex,
			WorkforceReinvest:  max(net, 0.0) * g.ReinvestRate,
		})
	}

	fillCumulative(rows)
	return rows
}

// fillCumulative sets the running-sum columns in row order.
func fillCumulative(rows []ProjectionRow) {
	net := make([]float64, len(rows))
	reinvest := make([]float64, len(rows))
	for i, r := range rows {
		net[i] = r.NetProceeds
		reinvest[i] = r.WorkforceReinvest
	}

	cumNet := floats.CumSum(make([]float64, len(net)), net)
	cumReinvest := floats.CumSum(make([]float64, len(reinvest)), reinvest)

	for i := range rows {
		rows[i].CumulativeNetProceeds = cumNet[i]
		rows[i].CumulativeWorkforceReinvest = cumReinvest[i]
	}
}

// Summarize returns the final-year readout; the zero Readout for no rows.
func Summarize(rows []ProjectionRow) Readout {
	if len(rows) == 0 {
		return Readout{}
	}
	last := rows[len(rows)-1]
	return Readout{
		Years:                       last.Year,
		Sites:                       last.Sites,
		RecoveredLbsAnnual:          last.RecoveredLbsAnnual,
		CumulativeNetProceeds:       last.CumulativeNetProceeds,
		CumulativeWorkforceReinvest: last.CumulativeWorkforceReinvest,
	}
}
