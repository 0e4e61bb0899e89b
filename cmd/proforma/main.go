package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/chart"
	"circular_platform/pkg/core/export"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/report"
	"circular_platform/pkg/core/settings"
	"circular_platform/pkg/core/utils"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

type options struct {
	Scenario string
	Years    int
	OutDir   string
	PNG      bool
	Public   bool
	Now      time.Time
}

func main() {
	opts := options{Now: time.Now()}
	flag.StringVar(&opts.Scenario, "scenario", "", "Scenario file (.yaml, .json or .hjson); defaults when empty")
	flag.IntVar(&opts.Years, "years", 0, "Pro forma horizon (3-5); overrides the scenario")
	flag.StringVar(&opts.OutDir, "out", "out", "Output directory")
	flag.BoolVar(&opts.PNG, "png", false, "Also write PNG charts")
	flag.BoolVar(&opts.Public, "public", false, "Write the public report (no finance sections)")
	flag.Parse()

	cfg, err := settings.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	settings.SetupLogger(cfg.Server.LogLevel)

	written, err := run(opts, cfg)
	if err != nil {
		log.Error().Err(err).Msg("pro forma run failed")
		os.Exit(1)
	}
	for _, p := range written {
		fmt.Println(p)
	}
}

// run builds every artefact for one scenario and returns the paths written.
func run(opts options, cfg settings.App) ([]string, error) {
	runID := uuid.New().String()

	// 1. Scenario
	sc := assumption.DefaultScenario()
	if opts.Scenario != "" {
		loaded, err := assumption.LoadScenario(opts.Scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}
	if opts.Years != 0 {
		sc.Growth.Years = opts.Years
	}
	sc.Growth.Years = assumption.ClampYears(sc.Growth.Years)

	if err := assumption.Validate(sc.Assumptions); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if err := assumption.ValidateGrowth(sc.Growth); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	// 2. Model
	m := calc.Compute(sc.Assumptions)
	rows := projection.Project(sc.Assumptions, m, sc.Growth)
	sum := projection.Summarize(rows)

	log.Info().Str("run_id", runID).Str("scenario", sc.Name).
		Str("gross", utils.Money(m.GrossValue)).
		Str("net", utils.Money(m.NetProfit)).
		Str("payback", utils.Months(m.PaybackMonths)).
		Int("years", sum.Years).
		Str("cumulative_net", utils.Money(sum.CumulativeNetProceeds)).
		Msg("model computed")

	// 3. Artefacts
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", opts.OutDir, err)
	}

	audience := report.Organization
	if opts.Public {
		audience = report.Public
	}
	in := report.Input{
		Organization: cfg.Organization,
		Audience:     audience,
		GeneratedAt:  opts.Now,
		Assumptions:  sc.Assumptions,
		Snapshot:     m,
		Rows:         rows,
		Targets:      cfg.Targets,
	}

	type artefact struct {
		name   string
		render func(*bytes.Buffer) error
	}
	artefacts := []artefact{
		{export.SnapshotFileName, func(b *bytes.Buffer) error { return export.WriteSnapshotCSV(b, m, opts.Now) }},
		{export.ProjectionFileName, func(b *bytes.Buffer) error { return export.WriteProjectionCSV(b, rows) }},
		{"report.html", func(b *bytes.Buffer) error {
			page, err := report.HTML(in)
			if err != nil {
				return err
			}
			b.WriteString(page)
			return nil
		}},
		{"material_flow.html", func(b *bytes.Buffer) error { return chart.RenderFlowPage(b, m) }},
		{"pro_forma.html", func(b *bytes.Buffer) error { return chart.RenderProjectionPage(b, rows) }},
	}
	if opts.PNG {
		artefacts = append(artefacts,
			artefact{"material_flow.png", func(b *bytes.Buffer) error { return chart.MaterialFlowPNG(b, m) }},
			artefact{"net_proceeds.png", func(b *bytes.Buffer) error { return chart.ProjectionPNG(b, rows, "net") }},
			artefact{"workforce_reinvest.png", func(b *bytes.Buffer) error { return chart.ProjectionPNG(b, rows, "reinvest") }},
		)
	}

	written := make([]string, 0, len(artefacts))
	for _, a := range artefacts {
		var buf bytes.Buffer
		if err := a.render(&buf); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", a.name, err)
		}
		path := filepath.Join(opts.OutDir, a.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug().Str("run_id", runID).Str("path", path).Int("bytes", buf.Len()).Msg("artefact written")
		written = append(written, path)
	}
	return written, nil
}
