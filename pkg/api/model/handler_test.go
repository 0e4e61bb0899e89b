package model

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"circular_platform/pkg/core/kpi"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *http.ServeMux {
	t.Helper()
	h := NewHandler(kpi.DefaultTargets())
	h.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSnapshot_EmptyBodyUsesDefaults(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/model/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := uuid.Parse(rec.Header().Get("X-Run-ID"))
	assert.NoError(t, err, "X-Run-ID should be a uuid")

	var resp struct {
		RunID    string                 `json:"run_id"`
		Snapshot map[string]interface{} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rec.Header().Get("X-Run-ID"), resp.RunID)
	assert.InDelta(t, 72000, resp.Snapshot["recovered_lbs"], 1e-6)
	assert.InDelta(t, 645247.872, resp.Snapshot["gross_value"], 1e-6)
}

func TestSnapshot_PartialOverride(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/model/snapshot", `{"assumptions":{"sites":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Snapshot map[string]interface{} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 160000, resp.Snapshot["incoming_lbs"], 1e-6)
	assert.InDelta(t, 240000, resp.Snapshot["capex_total"], 1e-6)
}

func TestSnapshot_UndefinedPaybackIsNull(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/model/snapshot",
		`{"assumptions":{"op_cost_per_site_month":10000000}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payback_months":null`)
}

func TestModel_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"assumptions":`},
		{"unknown field", `{"assumptions":{"sitez":3}}`},
		{"sites below minimum", `{"assumptions":{"sites":0}}`},
		{"rate above one", `{"assumptions":{"recovery_rate":1.5}}`},
		{"growth out of range", `{"growth":{"growth_sites":9}}`},
		{"unknown audience", `{"audience":"investors"}`},
		{"trailing object", `{"assumptions":{"sites":2}} {"assumptions":{"sites":0}}`},
		{"trailing garbage", `{} x`},
		{"extra closing brace", `{}}`},
	}
	mux := newServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPost, "/api/model/snapshot", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))
		})
	}
}

func TestModel_MethodAndPreflight(t *testing.T) {
	mux := newServer(t)

	rec := do(t, mux, http.MethodGet, "/api/model/snapshot", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, mux, http.MethodOptions, "/api/model/snapshot", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestProjection_YearsClamped(t *testing.T) {
	tests := []struct {
		years int
		want  int
	}{
		{0, 3},
		{4, 4},
		{9, 5},
	}
	mux := newServer(t)
	for _, tt := range tests {
		body := `{"growth":{"years":` + jsonInt(tt.years) + `}}`
		rec := do(t, mux, http.MethodPost, "/api/model/projection", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp ProjectionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Rows, tt.want)
		assert.Equal(t, tt.want, resp.Readout.Years)
		assert.InDelta(t, resp.Rows[len(resp.Rows)-1].CumulativeNetProceeds, resp.Readout.CumulativeNetProceeds, 1e-6)
	}
}

func TestKPI_Defaults(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/model/kpi", "{}")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Indicators []kpi.Indicator `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Indicators, 4)
	for _, ind := range resp.Indicators {
		assert.Equal(t, kpi.Green, ind.Status, ind.Name)
	}
}

func TestImpact(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/model/impact", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Impact map[string]float64 `json:"impact"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 80000, resp.Impact["processed_lbs_month"], 1e-6)
	assert.InDelta(t, 56, resp.Impact["jobs_placed_per_year"], 1e-6)
}

func TestExport_SnapshotCSV(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/export/snapshot.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "snapshot_current.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-03-01", records[1][0])
}

func TestExport_ProjectionCSV(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/export/proforma.csv", `{"growth":{"years":3}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pro_forma_5yr.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestCharts(t *testing.T) {
	mux := newServer(t)
	for _, path := range []string{"/api/charts/flow", "/api/charts/proforma"} {
		rec := do(t, mux, http.MethodPost, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"), path)
		assert.Contains(t, rec.Body.String(), "echarts", path)
	}
}

func TestReport_Audiences(t *testing.T) {
	mux := newServer(t)

	rec := do(t, mux, http.MethodPost, "/api/report", `{"organization":"Eastside Makers"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("h1").Text(), "Eastside Makers")
	assert.Contains(t, doc.Find("h2").Text(), "Finance (monthly)")
	assert.Contains(t, doc.Find("h2").Text(), "Pro forma")

	rec = do(t, mux, http.MethodPost, "/api/report", `{"audience":"public"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err = goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	headings := doc.Find("h2").Text()
	assert.Contains(t, headings, "Impact")
	assert.NotContains(t, headings, "Finance")
	assert.NotContains(t, headings, "Pro forma")
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
