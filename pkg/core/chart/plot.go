package chart

import (
	"fmt"
	"io"

	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/report"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	pngWidth  = 8 * vg.Inch
	pngHeight = 5 * vg.Inch
)

// MaterialFlowPNG writes a static bar chart of the monthly pound chain.
func MaterialFlowPNG(w io.Writer, m calc.MonthlySnapshot) error {
	stages := report.FlowStages(m)
	names := make([]string, 0, len(stages))
	vals := make(plotter.Values, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
		vals = append(vals, s.Lbs)
	}

	p := plot.New()
	p.Title.Text = "Monthly material flow"
	p.Y.Label.Text = "lbs / month"

	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	return save(w, p)
}

// ProjectionPNG writes a static line chart of one pro forma column by year.
// Column is "net" (net proceeds) or "reinvest" (workforce reinvestment).
func ProjectionPNG(w io.Writer, rows []projection.ProjectionRow, column string) error {
	var label string
	pick := func(r projection.ProjectionRow) float64 { return r.NetProceeds }
	switch column {
	case "net", "":
		label = "Net proceeds ($/year)"
	case "reinvest":
		label = "Workforce reinvest ($/year)"
		pick = func(r projection.ProjectionRow) float64 { return r.WorkforceReinvest }
	default:
		return fmt.Errorf("unknown pro forma column %q", column)
	}

	pts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		pts[i].X = float64(r.Year)
		pts[i].Y = pick(r)
	}

	p := plot.New()
	p.X.Label.Text = "Year"
	p.Y.Label.Text = label

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build line chart: %w", err)
	}
	p.Add(line, points)

	return save(w, p)
}

func save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
