// Package chart draws the material-flow and pro forma visuals.
// HTML charts use go-echarts; static PNGs use gonum/plot.
package chart

import (
	"fmt"
	"io"
	"strconv"

	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/report"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// MaterialFlowBar charts the monthly pound chain, one bar per stage.
func MaterialFlowBar(m calc.MonthlySnapshot) *charts.Bar {
	stages := report.FlowStages(m)
	x := make([]string, 0, len(stages))
	y := make([]opts.BarData, 0, len(stages))
	for _, s := range stages {
		x = append(x, s.Name)
		y = append(y, opts.BarData{Value: s.Lbs})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Material Flow", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Monthly material flow", Subtitle: "lbs / month"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("lbs/month", y)
	return bar
}

// ProjectionLines charts net proceeds and workforce reinvestment by year.
func ProjectionLines(rows []projection.ProjectionRow) []*charts.Line {
	years := make([]string, 0, len(rows))
	net := make([]opts.LineData, 0, len(rows))
	reinvest := make([]opts.LineData, 0, len(rows))
	for _, r := range rows {
		years = append(years, strconv.Itoa(r.Year))
		net = append(net, opts.LineData{Value: r.NetProceeds})
		reinvest = append(reinvest, opts.LineData{Value: r.WorkforceReinvest})
	}

	return []*charts.Line{
		yearLine("Net proceeds", "$/year", years, net),
		yearLine("Workforce reinvest", "$/year", years, reinvest),
	}
}

func yearLine(title, unit string, years []string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: unit}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
	)
	line.SetXAxis(years).AddSeries(title, data)
	return line
}

// RenderFlowPage writes an HTML page with the material-flow chart.
func RenderFlowPage(w io.Writer, m calc.MonthlySnapshot) error {
	page := components.NewPage()
	page.AddCharts(MaterialFlowBar(m))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render flow chart: %w", err)
	}
	return nil
}

// RenderProjectionPage writes an HTML page with the pro forma charts.
func RenderProjectionPage(w io.Writer, rows []projection.ProjectionRow) error {
	page := components.NewPage()
	for _, l := range ProjectionLines(rows) {
		page.AddCharts(l)
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render pro forma charts: %w", err)
	}
	return nil
}
