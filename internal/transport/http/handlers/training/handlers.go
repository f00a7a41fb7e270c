package traininghandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/training"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
	"ascend/internal/transport/http/shared"
)

type Handler struct {
	Service        *training.Service
	MaxUploadBytes int64
}

func NewHandler(service *training.Service, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trainings", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{trainingID}", h.handleGet)
		r.Put("/{trainingID}", h.handleUpdate)
		r.Delete("/{trainingID}", h.handleDelete)
		r.Post("/{trainingID}/participants", h.handleAddParticipant)
		r.Delete("/{trainingID}/participants/{participantID}", h.handleRemoveParticipant)
		r.Post("/{trainingID}/materials", h.handleUploadMaterial)
		r.Delete("/{trainingID}/materials/{materialID}", h.handleDeleteMaterial)
	})
}

type trainingPayload struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
	Instructor  string  `json:"instructor"`
	Institution string  `json:"institution"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Hours       float64 `json:"hours"`
	Status      string  `json:"status"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("list trainings failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "trainings_list_failed", "failed to list trainings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, trainings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload trainingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.Hours < 0 {
		v.Add("hours", "hours must not be negative")
	}
	if payload.Source != "" {
		v.Enum("source", payload.Source, []string{training.SourceInternal, training.SourceExternal}, "source must be INTERNAL or EXTERNAL")
	}
	input := training.NewTraining{
		Name:        payload.Name,
		Category:    payload.Category,
		Source:      payload.Source,
		Instructor:  payload.Instructor,
		Institution: payload.Institution,
		Hours:       payload.Hours,
		Status:      payload.Status,
	}
	if payload.StartDate != "" {
		if startDate, ok := v.Date("startDate", payload.StartDate); ok {
			input.StartDate = &startDate
		}
	}
	if payload.EndDate != "" {
		if endDate, ok := v.Date("endDate", payload.EndDate); ok {
			input.EndDate = &endDate
		}
	}
	if input.StartDate != nil && input.EndDate != nil {
		v.DateOrder("startDate", *input.StartDate, "endDate", *input.EndDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	if err != nil {
		slog.Warn("create training failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "training_create_failed", "failed to create training", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.Service.Get(r.Context(), chi.URLParam(r, "trainingID"))
	if err != nil {
		if errors.Is(err, training.ErrTrainingNotFound) {
			api.Fail(w, http.StatusNotFound, "training_not_found", "training not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get training failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "training_get_failed", "failed to load training", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trainingID")
	existing, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, training.ErrTrainingNotFound) {
			api.Fail(w, http.StatusNotFound, "training_not_found", "training not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get training failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "training_get_failed", "failed to load training", middleware.GetRequestID(r.Context()))
		return
	}

	var payload trainingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.Hours < 0 {
		v.Add("hours", "hours must not be negative")
	}
	existing.Name = payload.Name
	existing.Category = payload.Category
	existing.Instructor = payload.Instructor
	existing.Institution = payload.Institution
	existing.Hours = payload.Hours
	if payload.Source != "" {
		v.Enum("source", payload.Source, []string{training.SourceInternal, training.SourceExternal}, "source must be INTERNAL or EXTERNAL")
		existing.Source = payload.Source
	}
	if payload.Status != "" {
		existing.Status = payload.Status
	}
	existing.StartDate = nil
	existing.EndDate = nil
	if payload.StartDate != "" {
		if startDate, ok := v.Date("startDate", payload.StartDate); ok {
			existing.StartDate = &startDate
		}
	}
	if payload.EndDate != "" {
		if endDate, ok := v.Date("endDate", payload.EndDate); ok {
			existing.EndDate = &endDate
		}
	}
	if existing.StartDate != nil && existing.EndDate != nil {
		v.DateOrder("startDate", *existing.StartDate, "endDate", *existing.EndDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.Update(r.Context(), existing)
	if err != nil {
		slog.Warn("update training failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "training_update_failed", "failed to update training", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "trainingID")); err != nil {
		if errors.Is(err, training.ErrTrainingNotFound) {
			api.Fail(w, http.StatusNotFound, "training_not_found", "training not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete training failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "training_delete_failed", "failed to delete training", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.AddParticipant(r.Context(), chi.URLParam(r, "trainingID"), payload.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, training.ErrTrainingNotFound):
			api.Fail(w, http.StatusNotFound, "training_not_found", "training not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, training.ErrAlreadyParticipant):
			api.Fail(w, http.StatusConflict, "already_participant", "employee is already a participant", middleware.GetRequestID(r.Context()))
		default:
			slog.Warn("add participant failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "participant_add_failed", "failed to add participant", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.Service.RemoveParticipant(r.Context(), chi.URLParam(r, "trainingID"), chi.URLParam(r, "participantID"))
	if err != nil {
		if errors.Is(err, training.ErrParticipantNotFound) {
			api.Fail(w, http.StatusNotFound, "participant_not_found", "participant not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("remove participant failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "participant_remove_failed", "failed to remove participant", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadMaterial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "failed to read file", middleware.GetRequestID(r.Context()))
		return
	}
	if int64(len(data)) > h.MaxUploadBytes {
		api.Fail(w, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", middleware.GetRequestID(r.Context()))
		return
	}

	material, err := h.Service.AttachMaterial(r.Context(), chi.URLParam(r, "trainingID"), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, training.ErrTrainingNotFound) {
			api.Fail(w, http.StatusNotFound, "training_not_found", "training not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("attach training material failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "material_upload_failed", "failed to store material", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, material, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DetachMaterial(r.Context(), chi.URLParam(r, "trainingID"), chi.URLParam(r, "materialID"))
	if err != nil {
		if errors.Is(err, training.ErrMaterialNotFound) {
			api.Fail(w, http.StatusNotFound, "material_not_found", "material not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("detach training material failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "material_delete_failed", "failed to delete material", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
