package validate

import (
	"math"
	"testing"

	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
)

func TestValidateFlow_EngineOutput(t *testing.T) {
	scenarios := map[string]func(*assumption.AssumptionSet){
		"defaults":       func(a *assumption.AssumptionSet) {},
		"many sites":     func(a *assumption.AssumptionSet) { a.Sites = 40 },
		"loss making":    func(a *assumption.AssumptionSet) { a.OpCostPerSiteMonth = 5_000_000 },
		"nothing in":     func(a *assumption.AssumptionSet) { a.LbsPerSiteMonth = 0 },
		"wild rates":     func(a *assumption.AssumptionSet) { a.RecoveryRate, a.ScrapRate = 3, -2 },
		"all sold":       func(a *assumption.AssumptionSet) { a.SellShare = 1 },
		"zero capex":     func(a *assumption.AssumptionSet) { a.CapexPerSite = 0 },
		"full placement": func(a *assumption.AssumptionSet) { a.PlacementRate = 1 },
	}
	for name, mut := range scenarios {
		t.Run(name, func(t *testing.T) {
			a := assumption.Defaults()
			mut(&a)
			r := ValidateFlow(calc.Compute(a), DefaultTolerance)
			if !r.AllPassed {
				t.Errorf("expected all checks to pass, failed: %v", r.FailedChecks)
			}
		})
	}
}

func TestValidateFlow_DetectsBrokenSnapshot(t *testing.T) {
	m := calc.MonthlySnapshot{}
	m.IncomingLbs = 100
	m.RecoveredLbs = 120
	m.UsableLbs = 50
	m.FinishedLbs = 10
	m.SoldLbs = 5
	m.PaybackMonths = math.Inf(1)

	r := ValidateFlow(m, DefaultTolerance)
	if r.AllPassed {
		t.Fatal("expected failures")
	}
	if r.ChainOrdered {
		t.Error("recovered > incoming should break the chain")
	}
	if r.SplitLinked {
		t.Error("sold + internal != finished should be flagged")
	}
	if !r.GrossLinked || !r.JobsBounded || !r.PaybackSound {
		t.Errorf("unrelated checks should pass: %+v", r)
	}
	if len(r.FailedChecks) != 2 {
		t.Errorf("expected 2 failed checks, got %v", r.FailedChecks)
	}
}

func TestValidateFlow_NaNPayback(t *testing.T) {
	m := calc.Compute(assumption.Defaults())
	m.PaybackMonths = math.NaN()
	if r := ValidateFlow(m, DefaultTolerance); r.PaybackSound {
		t.Error("NaN payback must be flagged")
	}
}

func TestValidateProjection_EngineOutput(t *testing.T) {
	a := assumption.Defaults()
	a.OpCostPerSiteMonth = 700_000 // net goes negative as costs inflate
	g := assumption.DefaultGrowth()
	g.GrowthValuePerLb = -0.2

	rows := projection.Project(a, calc.Compute(a), g)
	r := ValidateProjection(rows, DefaultTolerance)
	if !r.AllPassed {
		t.Errorf("expected all checks to pass, failed: %v", r.FailedChecks)
	}
	if r.Years != g.Years {
		t.Errorf("expected %d years, got %d", g.Years, r.Years)
	}
}

func TestValidateProjection_DetectsTampering(t *testing.T) {
	a := assumption.Defaults()
	rows := projection.Project(a, calc.Compute(a), assumption.DefaultGrowth())

	rows[2].CumulativeNetProceeds += 1000
	rows[3].Year = 7

	r := ValidateProjection(rows, DefaultTolerance)
	if r.AllPassed || r.CumulativeLinked || r.YearsSequential {
		t.Errorf("tampering not detected: %+v", r)
	}
	if !r.NetLinked || !r.ReinvestBounded {
		t.Errorf("untouched checks should pass: %+v", r)
	}
}

func TestValidateProjection_Empty(t *testing.T) {
	r := ValidateProjection(nil, DefaultTolerance)
	if !r.AllPassed || r.Years != 0 {
		t.Errorf("empty table should trivially pass: %+v", r)
	}
}
