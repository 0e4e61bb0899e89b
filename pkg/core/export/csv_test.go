package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
)

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

func TestWriteSnapshotCSV(t *testing.T) {
	m := calc.Compute(assumption.Defaults())
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteSnapshotCSV(&buf, m, date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := readCSV(t, &buf)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	header, row := records[0], records[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}

	cols := map[string]string{}
	for i, h := range header {
		cols[h] = row[i]
	}
	if cols["date"] != "2026-10-19" {
		t.Errorf("expected date 2026-10-19, got %s", cols["date"])
	}
	if cols["recovered_lbs_month"] != "72000" {
		t.Errorf("expected recovered 72000, got %s", cols["recovered_lbs_month"])
	}
	if _, err := strconv.ParseFloat(cols["payback_months"], 64); err != nil {
		t.Errorf("expected numeric payback, got %q", cols["payback_months"])
	}
}

func TestWriteSnapshotCSV_InfinitePayback(t *testing.T) {
	a := assumption.Defaults()
	a.OpCostPerSiteMonth = 5_000_000
	m := calc.Compute(a)

	var buf bytes.Buffer
	if err := WriteSnapshotCSV(&buf, m, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := readCSV(t, &buf)
	for i, h := range records[0] {
		if h == "payback_months" && records[1][i] != "" {
			t.Errorf("expected empty payback cell, got %q", records[1][i])
		}
	}
	if bytes.Contains(buf.Bytes(), []byte("Inf")) {
		t.Error("csv must not contain an infinity token")
	}
}

func TestWriteProjectionCSV(t *testing.T) {
	a := assumption.Defaults()
	rows := projection.Project(a, calc.Compute(a), assumption.DefaultGrowth())

	var buf bytes.Buffer
	if err := WriteProjectionCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := readCSV(t, &buf)
	if len(records) != len(rows)+1 {
		t.Fatalf("expected %d records, got %d", len(rows)+1, len(records))
	}
	if records[0][0] != "Year" || records[0][len(records[0])-1] != "Cumulative workforce reinvest" {
		t.Errorf("unexpected header: %v", records[0])
	}
	for i, rec := range records[1:] {
		if rec[0] != strconv.Itoa(i+1) {
			t.Errorf("row %d: expected year %d, got %s", i, i+1, rec[0])
		}
		got, err := strconv.ParseFloat(rec[9], 64)
		if err != nil || got != rows[i].CumulativeNetProceeds {
			t.Errorf("row %d: cumulative net %q does not round-trip %v", i, rec[9], rows[i].CumulativeNetProceeds)
		}
	}
}

func TestWriteProjectionCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProjectionCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records := readCSV(t, &buf); len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}
