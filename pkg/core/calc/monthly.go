package calc

import (
	"math"

	"circular_platform/pkg/core/assumption"
)

// Compute derives the monthly snapshot from one assumption set.
// Total function: rates are clamped to [0,1], nothing else is validated, and
// a non-positive net profit yields an infinite payback instead of an error.
func Compute(in assumption.AssumptionSet) MonthlySnapshot {
	a := in.Clamped()

	// 1. Material flow
	incoming := a.LbsPerSiteMonth * a.Sites
	recovered := incoming * a.RecoveryRate
	usable := recovered * (1.0 - a.ScrapRate)
	finished := usable * a.YieldRate * (1.0 - a.DowntimeRate)

	sold := finished * a.SellShare
	internal := finished * (1.0 - a.SellShare)

	// 2. Value streams
	sellRevenue := sold * a.SellPricePerLb
	internalValue := internal * a.InternalValuePerLb
	disposalAvoided := recovered * a.DisposalAvoidPerLb
	carbonValue := recovered * a.CarbonValuePerLb

	gross := sellRevenue + internalValue + disposalAvoided + carbonValue
	opCost := a.OpCostPerSiteMonth * a.Sites
	net := gross - opCost

	// 3. Capital
	capex := a.CapexPerSite * a.Sites
	payback := math.Inf(1)
	if net > 0 {
		payback = capex / net
	}

	// 4. Workforce (annualized)
	trainees := a.TraineesPerSiteYear * a.Sites
	placed := trainees * a.PlacementRate

	return MonthlySnapshot{
		Sites: a.Sites,
		Rates: Rates{
			Recovery:  a.RecoveryRate,
			Yield:     a.YieldRate,
			Downtime:  a.DowntimeRate,
			Scrap:     a.ScrapRate,
			SellShare: a.SellShare,
			Placement: a.PlacementRate,
		},
		MaterialFlow: MaterialFlow{
			IncomingLbs:  incoming,
			RecoveredLbs: recovered,
			UsableLbs:    usable,
			FinishedLbs:  finished,
			SoldLbs:      sold,
			InternalLbs:  internal,
		},
		Financials: Financials{
			SellRevenue:     sellRevenue,
			InternalValue:   internalValue,
			DisposalAvoided: disposalAvoided,
			CarbonValue:     carbonValue,
			GrossValue:      gross,
			OpCost:          opCost,
			NetProfit:       net,
			CapexTotal:      capex,
			PaybackMonths:   payback,
		},
		Workforce: Workforce{
			TraineesPerYear:   trainees,
			JobsPlacedPerYear: placed,
		},
		ValuePerRecoveredLb: ValuePerRecoveredLb(gross, recovered),
	}
}

// ValuePerRecoveredLb returns gross/recovered, or 0 when recovered <= 0.
func ValuePerRecoveredLb(gross, recovered float64) float64 {
	if recovered <= 0 {
		return 0
	}
	return gross / recovered
}

// PaybackDefined reports whether the snapshot has a finite payback period.
func (m MonthlySnapshot) PaybackDefined() bool {
	return !math.IsInf(m.PaybackMonths, 0) && !math.IsNaN(m.PaybackMonths)
}

// Payback returns the payback months and whether they are defined.
func (m MonthlySnapshot) Payback() (float64, bool) {
	return m.PaybackMonths, m.PaybackDefined()
}
