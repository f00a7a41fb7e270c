package reportshandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/reports"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.handleDashboard)
		r.Get("/export.pdf", h.handleExportPDF)
	})
}

func filterFromQuery(r *http.Request) reports.Filter {
	filter := reports.Filter{Department: r.URL.Query().Get("department")}
	if raw := r.URL.Query().Get("timeRange"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			filter.Days = days
		}
	}
	return filter
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Warn("dashboard aggregation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportPDF(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Warn("dashboard export failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_export_failed", "failed to export dashboard", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio-rh.pdf"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("write dashboard pdf failed", "err", err)
	}
}
