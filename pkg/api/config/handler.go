package config

import (
	"net/http"

	"circular_platform/pkg/api/respond"
	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/kpi"
)

// Response describes the input form: field bounds, defaults and KPI targets.
type Response struct {
	Organization   string                       `json:"organization,omitempty"`
	Fields         []assumption.FieldSpec       `json:"fields"`
	GrowthFields   []assumption.FieldSpec       `json:"growth_fields"`
	Defaults       assumption.AssumptionSet     `json:"defaults"`
	GrowthDefaults assumption.GrowthAssumptions `json:"growth_defaults"`
	Targets        kpi.Targets                  `json:"targets"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Organization string
	Targets      kpi.Targets
}

// NewHandler creates a new config handler
func NewHandler(organization string, targets kpi.Targets) *Handler {
	return &Handler{
		Organization: organization,
		Targets:      targets,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if respond.CORS(w, r, http.MethodGet) {
		return
	}
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w)
		return
	}

	respond.WriteJSON(w, http.StatusOK, Response{
		Organization:   h.Organization,
		Fields:         assumption.Fields(),
		GrowthFields:   assumption.GrowthFields(),
		Defaults:       assumption.Defaults(),
		GrowthDefaults: assumption.DefaultGrowth(),
		Targets:        h.Targets,
	})
}
