package config

import (
	"encoding/json"
	"net/http"

	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/scenario"
)

// Response is the public part of the site configuration. Server and log
// settings stay private.
type Response struct {
	Title           string           `json:"title"`
	DefaultScenario int              `json:"defaultScenario"`
	Scenarios       []int            `json:"scenarios"`
	Map             config.MapConfig `json:"map"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Config config.Config
	Table  *scenario.Table
}

// NewHandler creates a new config handler
func NewHandler(cfg config.Config, table *scenario.Table) *Handler {
	return &Handler{Config: cfg, Table: table}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	resp := Response{
		Title:           h.Config.Site.Title,
		DefaultScenario: h.Config.Site.DefaultScenario,
		Scenarios:       []int{},
		Map:             h.Config.Map,
	}
	if h.Table != nil {
		for _, k := range h.Table.Keys() {
			resp.Scenarios = append(resp.Scenarios, int(k))
		}
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
