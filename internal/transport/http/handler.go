package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apierrors "soclens/internal/errors"
	"soclens/pkg/contracts"
)

// Handler serves the view API.
type Handler struct {
	service  *ViewService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler creates the API handler.
func NewHandler(service *ViewService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger, validate: validator.New()}
}

// Router builds the chi router with the standard middleware stack.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/views", h.listViews)
		r.Get("/views/{name}", h.evaluateView)
		r.Post("/snapshot/reload", h.reloadSnapshot)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "ok",
		"version": contracts.Version,
	})
}

func (h *Handler) listViews(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"views":    h.service.Names(),
		"defaults": h.service.Defaults(),
	})
}

func (h *Handler) evaluateView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	params := h.service.Defaults()
	if v := r.URL.Query().Get("state"); v != "" {
		params.State = v
	}
	if v := r.URL.Query().Get("scale_id"); v != "" {
		params.ScaleID = v
	}
	if err := h.validate.Struct(params); err != nil {
		h.renderError(w, r, apierrors.ErrInvalidParameter.WithDetails(err.Error()))
		return
	}

	found := false
	for _, n := range h.service.Names() {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		h.renderError(w, r, apierrors.ErrViewNotFound.WithDetails(name))
		return
	}

	rs, err := h.service.Evaluate(r.Context(), name, params)
	if err != nil {
		h.logger.Error("View evaluation failed",
			slog.String("view", name),
			slog.String("error", err.Error()))
		h.renderError(w, r, apierrors.ErrSnapshotReload)
		return
	}
	render.JSON(w, r, rs)
}

func (h *Handler) reloadSnapshot(w http.ResponseWriter, r *http.Request) {
	occupations, skills, err := h.service.Reload(r.Context())
	if err != nil {
		h.logger.Error("Snapshot reload failed", slog.String("error", err.Error()))
		h.renderError(w, r, apierrors.ErrSnapshotReload)
		return
	}
	render.JSON(w, r, map[string]int{
		"occupations": occupations,
		"skills":      skills,
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apiErr); err != nil {
		h.logger.Error("Failed to render error response", slog.String("error", err.Error()))
	}
}
