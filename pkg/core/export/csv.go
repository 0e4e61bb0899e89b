// Package export serializes engine results as delimited text for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
)

// File names offered to the browser.
const (
	SnapshotFileName   = "snapshot_current.csv"
	ProjectionFileName = "pro_forma_5yr.csv"
)

var snapshotHeader = []string{
	"date",
	"sites",
	"incoming_lbs_month",
	"recovered_lbs_month",
	"finished_lbs_month",
	"gross_value_month",
	"op_cost_month",
	"net_profit_month",
	"capex_total",
	"payback_months",
	"trainees_per_year",
	"placement_rate",
	"jobs_placed_per_year",
}

var projectionHeader = []string{
	"Year",
	"Sites",
	"Annual incoming lbs",
	"Annual recovered lbs",
	"Gross value",
	"Operating cost",
	"Net proceeds",
	"CapEx (new sites)",
	"Workforce reinvest",
	"Cumulative net proceeds",
	"Cumulative workforce reinvest",
}

// WriteSnapshotCSV writes the snapshot as a header plus a single row.
// An undefined payback is written as an empty cell.
func WriteSnapshotCSV(w io.Writer, m calc.MonthlySnapshot, date time.Time) error {
	payback := ""
	if v, ok := m.Payback(); ok {
		payback = num(v)
	}

	row := []string{
		date.Format("2006-01-02"),
		num(m.Sites),
		num(m.IncomingLbs),
		num(m.RecoveredLbs),
		num(m.FinishedLbs),
		num(m.GrossValue),
		num(m.OpCost),
		num(m.NetProfit),
		num(m.CapexTotal),
		payback,
		num(m.TraineesPerYear),
		num(m.Rates.Placement),
		num(m.JobsPlacedPerYear),
	}
	return writeAll(w, [][]string{snapshotHeader, row})
}

// WriteProjectionCSV writes one row per projected year.
func WriteProjectionCSV(w io.Writer, rows []projection.ProjectionRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, projectionHeader)
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Year),
			num(r.Sites),
			num(r.IncomingLbsAnnual),
			num(r.RecoveredLbsAnnual),
			num(r.GrossValue),
			num(r.OpCost),
			num(r.NetProceeds),
			num(r.CapexNewSites),
			num(r.WorkforceReinvest),
			num(r.CumulativeNetProceeds),
			num(r.CumulativeWorkforceReinvest),
		})
	}
	return writeAll(w, records)
}

func writeAll(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// num uses the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
