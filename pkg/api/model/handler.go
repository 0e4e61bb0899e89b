package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"circular_platform/pkg/api/respond"
	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/chart"
	"circular_platform/pkg/core/export"
	"circular_platform/pkg/core/kpi"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/report"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

// maxBodyBytes caps request bodies; a scenario is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Request is the body accepted by every model endpoint.
// Omitted fields keep their default values.
type Request struct {
	Assumptions  assumption.AssumptionSet     `json:"assumptions"`
	Growth       assumption.GrowthAssumptions `json:"growth"`
	Audience     report.Audience              `json:"audience,omitempty"`
	Organization string                       `json:"organization,omitempty"`
}

// ProjectionResponse is returned by the projection endpoint.
type ProjectionResponse struct {
	RunID   string                       `json:"run_id"`
	Growth  assumption.GrowthAssumptions `json:"growth"`
	Rows    []projection.ProjectionRow   `json:"rows"`
	Readout projection.Readout           `json:"readout"`
}

// SnapshotResponse is returned by the snapshot endpoint.
type SnapshotResponse struct {
	RunID    string               `json:"run_id"`
	Snapshot calc.MonthlySnapshot `json:"snapshot"`
}

// Handler exposes the calculation engine over HTTP.
type Handler struct {
	Targets kpi.Targets
	Now     func() time.Time
}

// NewHandler creates a handler with the given KPI targets.
func NewHandler(targets kpi.Targets) *Handler {
	return &Handler{Targets: targets, Now: time.Now}
}

// Register mounts all model, export, chart and report endpoints.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/model/snapshot", h.post(h.HandleSnapshot))
	mux.HandleFunc("/api/model/projection", h.post(h.HandleProjection))
	mux.HandleFunc("/api/model/kpi", h.post(h.HandleKPI))
	mux.HandleFunc("/api/model/impact", h.post(h.HandleImpact))
	mux.HandleFunc("/api/export/snapshot.csv", h.post(h.HandleExportSnapshot))
	mux.HandleFunc("/api/export/proforma.csv", h.post(h.HandleExportProjection))
	mux.HandleFunc("/api/charts/flow", h.post(h.HandleFlowChart))
	mux.HandleFunc("/api/charts/proforma", h.post(h.HandleProjectionChart))
	mux.HandleFunc("/api/report", h.post(h.HandleReport))
}

type modelFunc func(w http.ResponseWriter, r *http.Request, req Request, runID string)

// post wraps a model endpoint with CORS, method check, decoding, validation and a run id.
func (h *Handler) post(fn modelFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if respond.CORS(w, r, http.MethodPost) {
			return
		}
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w)
			return
		}

		runID := uuid.New().String()
		w.Header().Set("X-Run-ID", runID)

		req, err := decodeRequest(r)
		if err != nil {
			log.Warn().Str("run_id", runID).Str("path", r.URL.Path).Err(err).Msg("rejected model request")
			respond.BadRequest(w, err.Error())
			return
		}

		start := time.Now()
		fn(w, r, req, runID)
		log.Info().Str("run_id", runID).Str("path", r.URL.Path).
			Float64("sites", req.Assumptions.Sites).
			Int("years", req.Growth.Years).
			Dur("elapsed", time.Since(start)).
			Msg("model request")
	}
}

func decodeRequest(r *http.Request) (Request, error) {
	req := Request{
		Assumptions: assumption.Defaults(),
		Growth:      assumption.DefaultGrowth(),
		Audience:    report.Organization,
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Request{}, errors.New("invalid request body: unexpected data after JSON value")
	}

	if req.Audience == "" {
		req.Audience = report.Organization
	}
	// The horizon is clamped, not rejected, so the years bound never fails here.
	req.Growth.Years = assumption.ClampYears(req.Growth.Years)
	if err := assumption.Validate(req.Assumptions); err != nil {
		return Request{}, err
	}
	if err := assumption.ValidateGrowth(req.Growth); err != nil {
		return Request{}, err
	}
	if req.Audience != report.Public && req.Audience != report.Organization {
		return Request{}, fmt.Errorf("unknown audience %q", req.Audience)
	}
	return req, nil
}

// HandleSnapshot returns the monthly snapshot.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	respond.WriteJSON(w, http.StatusOK, SnapshotResponse{
		RunID:    runID,
		Snapshot: calc.Compute(req.Assumptions),
	})
}

// HandleProjection returns the pro forma rows and the final-year readout.
func (h *Handler) HandleProjection(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	rows := h.project(req)
	respond.WriteJSON(w, http.StatusOK, ProjectionResponse{
		RunID:   runID,
		Growth:  req.Growth,
		Rows:    rows,
		Readout: projection.Summarize(rows),
	})
}

// HandleKPI returns the traffic-light process indicators.
func (h *Handler) HandleKPI(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	m := calc.Compute(req.Assumptions)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":     runID,
		"indicators": kpi.ProcessHealth(m.Rates, h.Targets),
	})
}

// HandleImpact returns the public transparency metrics.
func (h *Handler) HandleImpact(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": runID,
		"impact": report.Impact(calc.Compute(req.Assumptions)),
	})
}

// HandleExportSnapshot downloads the snapshot as CSV.
func (h *Handler) HandleExportSnapshot(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	var buf bytes.Buffer
	if err := export.WriteSnapshotCSV(&buf, calc.Compute(req.Assumptions), h.Now()); err != nil {
		respond.InternalServerError(w, err.Error())
		return
	}
	writeDownload(w, buf.Bytes(), export.SnapshotFileName, "text/csv")
}

// HandleExportProjection downloads the pro forma as CSV.
func (h *Handler) HandleExportProjection(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	var buf bytes.Buffer
	if err := export.WriteProjectionCSV(&buf, h.project(req)); err != nil {
		respond.InternalServerError(w, err.Error())
		return
	}
	writeDownload(w, buf.Bytes(), export.ProjectionFileName, "text/csv")
}

// HandleFlowChart renders the material-flow bar chart.
func (h *Handler) HandleFlowChart(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	var buf bytes.Buffer
	if err := chart.RenderFlowPage(&buf, calc.Compute(req.Assumptions)); err != nil {
		respond.InternalServerError(w, err.Error())
		return
	}
	writeHTML(w, buf.Bytes())
}

// HandleProjectionChart renders the pro forma line charts.
func (h *Handler) HandleProjectionChart(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	var buf bytes.Buffer
	if err := chart.RenderProjectionPage(&buf, h.project(req)); err != nil {
		respond.InternalServerError(w, err.Error())
		return
	}
	writeHTML(w, buf.Bytes())
}

// HandleReport renders the stakeholder report. The public audience never sees finance sections.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request, req Request, runID string) {
	m := calc.Compute(req.Assumptions)
	in := report.Input{
		Organization: req.Organization,
		Audience:     req.Audience,
		GeneratedAt:  h.Now(),
		Assumptions:  req.Assumptions,
		Snapshot:     m,
		Targets:      h.Targets,
	}
	if req.Audience == report.Organization {
		in.Rows = projection.Project(req.Assumptions, m, req.Growth)
	}

	page, err := report.HTML(in)
	if err != nil {
		respond.InternalServerError(w, err.Error())
		return
	}
	writeHTML(w, []byte(page))
}

func (h *Handler) project(req Request) []projection.ProjectionRow {
	return projection.Project(req.Assumptions, calc.Compute(req.Assumptions), req.Growth)
}

func writeDownload(w http.ResponseWriter, data []byte, name, mime string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
