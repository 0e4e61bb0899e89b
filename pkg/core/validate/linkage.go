// Package validate ties out engine results: every derived quantity must agree
// with the quantities it was derived from. Used by the calc-engine check mode
// and by tests.
package validate

import (
	"fmt"
	"math"

	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
)

// DefaultTolerance is relative; differences are compared against max(1, |expected|).
const DefaultTolerance = 1e-9

// =============================================================================
// MATERIAL FLOW LINKAGE
// =============================================================================

// FlowLinkage validates one monthly snapshot. ChainOrdered covers
// incoming >= recovered >= usable >= finished >= 0; SplitDiff is
// sold + internal - finished; GrossDiff is the sum of value streams - gross.
type FlowLinkage struct {
	ChainOrdered bool     `json:"chain_ordered"`
	SplitDiff    float64  `json:"split_diff"`
	SplitLinked  bool     `json:"split_linked"`
	GrossDiff    float64  `json:"gross_diff"`
	GrossLinked  bool     `json:"gross_linked"`
	JobsBounded  bool     `json:"jobs_bounded"`
	PaybackSound bool     `json:"payback_sound"` // +Inf iff net <= 0, never NaN
	AllPassed    bool     `json:"all_passed"`
	FailedChecks []string `json:"failed_checks,omitempty"`
}

// ValidateFlow checks the structural invariants of a snapshot.
func ValidateFlow(m calc.MonthlySnapshot, tolerance float64) *FlowLinkage {
	r := &FlowLinkage{AllPassed: true}

	chain := []struct {
		name string
		v    float64
	}{
		{"incoming", m.IncomingLbs},
		{"recovered", m.RecoveredLbs},
		{"usable", m.UsableLbs},
		{"finished", m.FinishedLbs},
	}
	r.ChainOrdered = m.FinishedLbs >= 0
	if !r.ChainOrdered {
		r.fail(fmt.Sprintf("finished is negative (%f)", m.FinishedLbs))
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].v > chain[i-1].v {
			r.ChainOrdered = false
			r.fail(fmt.Sprintf("%s (%f) exceeds %s (%f)", chain[i].name, chain[i].v, chain[i-1].name, chain[i-1].v))
		}
	}

	r.SplitDiff = m.SoldLbs + m.InternalLbs - m.FinishedLbs
	r.SplitLinked = within(r.SplitDiff, m.FinishedLbs, tolerance)
	if !r.SplitLinked {
		r.fail(fmt.Sprintf("sold + internal differs from finished (diff: %f)", r.SplitDiff))
	}

	r.GrossDiff = m.SellRevenue + m.InternalValue + m.DisposalAvoided + m.CarbonValue - m.GrossValue
	r.GrossLinked = within(r.GrossDiff, m.GrossValue, tolerance)
	if !r.GrossLinked {
		r.fail(fmt.Sprintf("value streams differ from gross (diff: %f)", r.GrossDiff))
	}

	r.JobsBounded = m.JobsPlacedPerYear <= m.TraineesPerYear
	if !r.JobsBounded {
		r.fail(fmt.Sprintf("jobs placed (%f) exceed trainees (%f)", m.JobsPlacedPerYear, m.TraineesPerYear))
	}

	undefined := math.IsInf(m.PaybackMonths, 1)
	r.PaybackSound = !math.IsNaN(m.PaybackMonths) && undefined == (m.NetProfit <= 0)
	if !r.PaybackSound {
		r.fail(fmt.Sprintf("payback %v inconsistent with net profit %f", m.PaybackMonths, m.NetProfit))
	}

	return r
}

func (r *FlowLinkage) fail(msg string) {
	r.AllPassed = false
	r.FailedChecks = append(r.FailedChecks, msg)
}

// =============================================================================
// PRO FORMA LINKAGE
// =============================================================================

// ProjectionLinkage validates a pro forma table.
type ProjectionLinkage struct {
	Years            int      `json:"years"`
	YearsSequential  bool     `json:"years_sequential"`  // 1..N without gaps
	NetLinked        bool     `json:"net_linked"`        // net = gross - op cost, every year
	CumulativeLinked bool     `json:"cumulative_linked"` // cumulative columns are running sums
	ReinvestBounded  bool     `json:"reinvest_bounded"`  // 0 <= reinvest <= max(net, 0)
	AllPassed        bool     `json:"all_passed"`
	FailedChecks     []string `json:"failed_checks,omitempty"`
}

// ValidateProjection checks every row and the running sums across rows.
func ValidateProjection(rows []projection.ProjectionRow, tolerance float64) *ProjectionLinkage {
	r := &ProjectionLinkage{
		Years:            len(rows),
		YearsSequential:  true,
		NetLinked:        true,
		CumulativeLinked: true,
		ReinvestBounded:  true,
		AllPassed:        true,
	}

	var cumNet, cumReinvest float64
	for i, row := range rows {
		if row.Year != i+1 {
			r.YearsSequential = false
			r.fail(fmt.Sprintf("row %d has year %d", i, row.Year))
		}

		if d := row.GrossValue - row.OpCost - row.NetProceeds; !within(d, row.NetProceeds, tolerance) {
			r.NetLinked = false
			r.fail(fmt.Sprintf("year %d: net differs from gross - op cost (diff: %f)", row.Year, d))
		}

		if row.WorkforceReinvest < 0 || row.WorkforceReinvest > math.Max(row.NetProceeds, 0)*(1+tolerance) {
			r.ReinvestBounded = false
			r.fail(fmt.Sprintf("year %d: reinvest %f outside [0, max(net, 0)]", row.Year, row.WorkforceReinvest))
		}

		cumNet += row.NetProceeds
		cumReinvest += row.WorkforceReinvest
		if !within(row.CumulativeNetProceeds-cumNet, cumNet, tolerance) ||
			!within(row.CumulativeWorkforceReinvest-cumReinvest, cumReinvest, tolerance) {
			r.CumulativeLinked = false
			r.fail(fmt.Sprintf("year %d: cumulative columns are not running sums", row.Year))
		}
	}

	return r
}

func (r *ProjectionLinkage) fail(msg string) {
	r.AllPassed = false
	r.FailedChecks = append(r.FailedChecks, msg)
}

func within(diff, expected, tolerance float64) bool {
	return math.Abs(diff) <= tolerance*math.Max(1, math.Abs(expected))
}
