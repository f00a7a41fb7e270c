package bulkimporthandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/bulkimport"
	"ascend/internal/platform/metrics"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
)

type Handler struct {
	Reconciler *bulkimport.Reconciler
	Metrics    *metrics.Collector
}

func NewHandler(reconciler *bulkimport.Reconciler, collector *metrics.Collector) *Handler {
	return &Handler{Reconciler: reconciler, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bulk-import", func(r chi.Router) {
		r.Post("/{kind}", h.handleImport)
		r.Get("/template/{kind}", h.handleTemplate)
	})
}

// payloadKeys maps a kind to the JSON keys accepted for its row array. The
// kebab-case route name and the camelCase body key both work.
func payloadKeys(kind bulkimport.Kind) []string {
	switch kind {
	case bulkimport.KindEmployees:
		return []string{"employees"}
	case bulkimport.KindMedicalLeaves:
		return []string{"medicalLeaves", "medical-leaves"}
	case bulkimport.KindTrainings:
		return []string{"trainings"}
	case bulkimport.KindCareer:
		return []string{"career"}
	}
	return nil
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	kind, ok := bulkimport.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "unknown_import_kind", "unknown import kind", middleware.GetRequestID(r.Context()))
		return
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var raw json.RawMessage
	for _, key := range payloadKeys(kind) {
		if value, ok := payload[key]; ok {
			raw = value
			break
		}
	}
	if raw == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", fmt.Sprintf("missing %q array", payloadKeys(kind)[0]), middleware.GetRequestID(r.Context()))
		return
	}

	var rows []bulkimport.Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", fmt.Sprintf("%q must be an array of records", payloadKeys(kind)[0]), middleware.GetRequestID(r.Context()))
		return
	}
	if len(rows) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "no records to import", middleware.GetRequestID(r.Context()))
		return
	}

	summary := h.Reconciler.Run(r.Context(), kind, rows)
	if h.Metrics != nil {
		h.Metrics.RecordImport(len(summary.Successful), len(summary.Failed))
	}
	slog.Info("bulk import finished",
		"kind", string(kind),
		"rows", len(rows),
		"succeeded", len(summary.Successful),
		"failed", len(summary.Failed),
	)
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	kind, ok := bulkimport.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "unknown_import_kind", "unknown import kind", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("modelo-%s.csv", kind)))
	if _, err := w.Write(bulkimport.Template(kind)); err != nil {
		slog.Warn("write import template failed", "err", err)
	}
}
