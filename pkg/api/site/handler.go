// Package site serves a built prospectus page over HTTP.
package site

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apiconfig "energy_prospectus/pkg/api/config"
	"energy_prospectus/pkg/core/logging"
	"energy_prospectus/pkg/core/page"
	"energy_prospectus/pkg/core/scenario"
)

// Handler holds the built site and serves its files.
type Handler struct {
	Site   *page.Site
	Table  *scenario.Table
	Config *apiconfig.Handler
	Logger *zap.Logger
}

// NewHandler creates a new site handler. cfg may be nil, in which case
// /api/config is not served.
func NewHandler(site *page.Site, table *scenario.Table, cfg *apiconfig.Handler, logger *zap.Logger) *Handler {
	logger = logging.OrNop(logger)
	return &Handler{Site: site, Table: table, Config: cfg, Logger: logger}
}

// Router wires every site route into a chi router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/", h.HandleIndex)
	r.Get("/index.html", h.HandleIndex)
	r.Get("/assets/*", h.HandleAsset)
	r.Get("/charts/roadmap.svg", h.HandleRoadmapChart)
	r.Get("/charts/{file}", h.HandleFinancialChart)
	r.Get("/healthz", h.HandleHealth)
	if h.Config != nil {
		r.Get("/api/config", h.Config.HandleConfig)
	}
	return r
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	write(w, "text/html; charset=utf-8", h.Site.Index)
}

func (h *Handler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("assets/" + chi.URLParam(r, "*"))
	data, ok := h.Site.Assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	write(w, contentType(name), data)
}

func (h *Handler) HandleRoadmapChart(w http.ResponseWriter, r *http.Request) {
	data, ok := h.Site.Charts[page.RoadmapChartFile]
	if !ok {
		http.NotFound(w, r)
		return
	}
	write(w, "image/svg+xml", data)
}

// HandleFinancialChart serves charts/financial-{key}.svg; unknown keys are 404.
func (h *Handler) HandleFinancialChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	raw, ok := strings.CutPrefix(file, "financial-")
	if !ok {
		http.NotFound(w, r)
		return
	}
	raw, ok = strings.CutSuffix(raw, ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}
	key, ok := h.Table.ParseKey(raw)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, ok := h.Site.Charts[page.FinancialChartFile(key)]
	if !ok {
		http.NotFound(w, r)
		return
	}
	write(w, "image/svg+xml", data)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	write(w, "text/plain; charset=utf-8", []byte("ok"))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.Logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()))
	})
}

func write(w http.ResponseWriter, ctype string, data []byte) {
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
