package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/kpi"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/utils"
)

// Audience selects which sections a report exposes.
type Audience string

const (
	Public       Audience = "public"
	Organization Audience = "organization"
)

// Input is everything a report needs. Rows may be empty when no pro forma was requested.
type Input struct {
	Organization string
	Audience     Audience
	GeneratedAt  time.Time
	Assumptions  assumption.AssumptionSet
	Snapshot     calc.MonthlySnapshot
	Rows         []projection.ProjectionRow
	Targets      kpi.Targets
}

// Markdown builds the report document.
func Markdown(in Input) string {
	var b strings.Builder

	title := "Circular Plastics → Workforce Platform"
	if in.Organization != "" {
		title += ": " + in.Organization
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if !in.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", in.GeneratedAt.Format("2006-01-02"))
	}

	writeOverview(&b, in.Audience)
	writeImpact(&b, in.Snapshot)
	writeHealth(&b, in.Snapshot, in.Targets)

	if in.Audience != Organization {
		b.WriteString("## What we publish\n\n")
		b.WriteString("Public: pounds diverted, trainees served, placement outcomes, and high-level ESG impact. ")
		b.WriteString("Private: contract pricing, margins, partner splits, and internal controls.\n")
		return b.String()
	}

	writeFinance(&b, in.Snapshot)
	writeFlow(&b, in.Snapshot)
	writeWorkforce(&b, in.Assumptions, in.Snapshot)
	if len(in.Rows) > 0 {
		writeProForma(&b, in.Rows)
	}
	return b.String()
}

// HTML renders the report as a standalone HTML page.
func HTML(in Input) (string, error) {
	body, err := utils.MarkdownToHTML(Markdown(in))
	if err != nil {
		return "", err
	}
	return Page("Program Report", body), nil
}

// Page wraps an HTML fragment in a minimal document.
func Page(title, body string) string {
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" +
		html.EscapeString(title) + "</title></head>\n<body>\n" + body + "</body></html>\n"
}

func writeOverview(b *strings.Builder, aud Audience) {
	b.WriteString("## Overview\n\n")
	if aud == Organization {
		b.WriteString("An internal decision dashboard: throughput, quality, value and workforce outcomes. ")
		b.WriteString("Designed for partner governance and audit-ready reporting.\n\n")
	}
	b.WriteString("We quantify plastics processing and reinvest net proceeds into training cohorts that lead to ")
	b.WriteString("reliable job placement, tracked as measurable outcomes.\n\n")
}

func writeImpact(b *strings.Builder, m calc.MonthlySnapshot) {
	imp := Impact(m)
	b.WriteString("## Impact\n\n")
	b.WriteString("Waste diversion → processing → value creation → workforce training → job placement → community stability.\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Plastic processed (lbs/mo) | %s |\n", utils.Count(imp.ProcessedLbsMonth))
	fmt.Fprintf(b, "| Recovered (lbs/mo) | %s |\n", utils.Count(imp.RecoveredLbsMonth))
	fmt.Fprintf(b, "| Jobs placed (est / year) | %s |\n", utils.Count(imp.JobsPlacedPerYear))
	fmt.Fprintf(b, "| CO₂/ESG value (proxy / mo) | %s |\n\n", utils.Money(imp.CarbonValueMonth))
}

func writeHealth(b *strings.Builder, m calc.MonthlySnapshot, t kpi.Targets) {
	b.WriteString("## Process health\n\n")
	b.WriteString("| Status | Metric | Rate | Target |\n|---|---|---|---|\n")
	for _, ind := range kpi.ProcessHealth(m.Rates, t) {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", ind.Status.Symbol(), ind.Name, utils.Pct(ind.Value), utils.Pct(ind.Target))
	}
	b.WriteString("\n")
}

func writeFinance(b *strings.Builder, m calc.MonthlySnapshot) {
	b.WriteString("## Finance (monthly)\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Gross value ($/mo) | %s |\n", utils.Money(m.GrossValue))
	fmt.Fprintf(b, "| Net profit ($/mo) | %s |\n", utils.Money(m.NetProfit))
	fmt.Fprintf(b, "| CapEx total | %s |\n", utils.Money(m.CapexTotal))
	fmt.Fprintf(b, "| Payback | %s |\n\n", utils.Months(m.PaybackMonths))
}

func writeFlow(b *strings.Builder, m calc.MonthlySnapshot) {
	b.WriteString("## Material flow (lbs/month)\n\n")
	b.WriteString("| Stage | Lbs/month |\n|---|---|\n")
	for _, s := range FlowStages(m) {
		fmt.Fprintf(b, "| %s | %s |\n", s.Name, utils.Count(s.Lbs))
	}
	b.WriteString("\n")
}

func writeWorkforce(b *strings.Builder, a assumption.AssumptionSet, m calc.MonthlySnapshot) {
	b.WriteString("## Workforce pipeline (annualized)\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Trainees / year | %s |\n", utils.Count(m.TraineesPerYear))
	fmt.Fprintf(b, "| Placement rate | %s |\n", utils.Pct(m.Rates.Placement))
	fmt.Fprintf(b, "| Jobs placed / year | %s |\n\n", utils.Count(m.JobsPlacedPerYear))
	fmt.Fprintf(b, "Average wage uplift assumption: **%s/hour** per placement.\n\n", utils.Money2(a.AvgWageUpliftPerHour))
}

func writeProForma(b *strings.Builder, rows []projection.ProjectionRow) {
	b.WriteString("## Pro forma\n\n")
	b.WriteString("| Year | Sites | Recovered lbs | Gross value | Operating cost | Net proceeds | CapEx (new sites) | Workforce reinvest |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %d | %.1f | %s | %s | %s | %s | %s | %s |\n",
			r.Year, r.Sites, utils.Count(r.RecoveredLbsAnnual), utils.Money(r.GrossValue), utils.Money(r.OpCost),
			utils.Money(r.NetProceeds), utils.Money(r.CapexNewSites), utils.Money(r.WorkforceReinvest))
	}
	b.WriteString("\n")

	sum := projection.Summarize(rows)
	fmt.Fprintf(b, "By Year %d: Sites ≈ %.1f • Annual recovered ≈ %s lbs • Cumulative net proceeds ≈ %s • Cumulative workforce reinvest ≈ %s\n\n",
		sum.Years, sum.Sites, utils.Count(sum.RecoveredLbsAnnual), utils.Money(sum.CumulativeNetProceeds), utils.Money(sum.CumulativeWorkforceReinvest))

	b.WriteString("### Definitions\n\n")
	b.WriteString("Value per recovered lb is derived from current inputs (sell revenue + internal value + disposal avoided + ESG value) ")
	b.WriteString("divided by recovered lbs. The pro forma applies growth assumptions to sites, throughput, value per lb, and costs.\n")
}

// Stage is one bar of the material-flow chart.
type Stage struct {
	Name string  `json:"name"`
	Lbs  float64 `json:"lbs"`
}

// FlowStages lists the material-flow chain in order.
func FlowStages(m calc.MonthlySnapshot) []Stage {
	return []Stage{
		{"Incoming lbs", m.IncomingLbs},
		{"Recovered lbs", m.RecoveredLbs},
		{"Usable lbs", m.UsableLbs},
		{"Finished lbs", m.FinishedLbs},
		{"Sold lbs", m.SoldLbs},
		{"Internal lbs", m.InternalLbs},
	}
}
