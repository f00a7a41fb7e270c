package medicalleavehandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/medicalleave"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
	"ascend/internal/transport/http/shared"
)

type Handler struct {
	Service        *medicalleave.Service
	MaxUploadBytes int64
}

func NewHandler(service *medicalleave.Service, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave-categories", func(r chi.Router) {
		r.Get("/", h.handleListCategories)
		r.Post("/", h.handleCreateCategory)
	})
	r.Route("/medical-leaves", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{leaveID}", h.handleGet)
		r.Put("/{leaveID}", h.handleUpdate)
		r.Delete("/{leaveID}", h.handleDelete)
		r.Post("/{leaveID}/files", h.handleUploadFile)
		r.Delete("/{leaveID}/files/{fileID}", h.handleDeleteFile)
	})
}

type leavePayload struct {
	EmployeeID string `json:"employeeId"`
	CategoryID string `json:"categoryId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	CID        string `json:"cid"`
	Doctor     string `json:"doctor"`
	Hospital   string `json:"hospital"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		slog.Warn("list leave categories failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "leave_categories_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateCategory(r.Context(), payload.Name)
	if err != nil {
		slog.Warn("create leave category failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "leave_category_create_failed", "failed to create category", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Service.List(r.Context(), r.URL.Query().Get("employee"))
	if err != nil {
		slog.Warn("list medical leaves failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leaves_list_failed", "failed to list medical leaves", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, leaves, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload leavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("categoryId", payload.CategoryID, "categoryId is required")
	v.Required("startDate", payload.StartDate, "startDate is required")
	v.Required("endDate", payload.EndDate, "endDate is required")
	startDate, startOK := v.Date("startDate", payload.StartDate)
	endDate, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), medicalleave.NewMedicalLeave{
		EmployeeID: payload.EmployeeID,
		CategoryID: payload.CategoryID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     payload.Reason,
		CID:        payload.CID,
		Doctor:     payload.Doctor,
		Hospital:   payload.Hospital,
		Notes:      payload.Notes,
		Status:     payload.Status,
	})
	if err != nil {
		slog.Warn("create medical leave failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leave_create_failed", "failed to create medical leave", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	leave, err := h.Service.Get(r.Context(), chi.URLParam(r, "leaveID"))
	if err != nil {
		if errors.Is(err, medicalleave.ErrLeaveNotFound) {
			api.Fail(w, http.StatusNotFound, "medical_leave_not_found", "medical leave not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get medical leave failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leave_get_failed", "failed to load medical leave", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, leave, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leaveID")
	existing, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, medicalleave.ErrLeaveNotFound) {
			api.Fail(w, http.StatusNotFound, "medical_leave_not_found", "medical leave not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get medical leave failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leave_get_failed", "failed to load medical leave", middleware.GetRequestID(r.Context()))
		return
	}

	var payload leavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("startDate", payload.StartDate, "startDate is required")
	v.Required("endDate", payload.EndDate, "endDate is required")
	startDate, startOK := v.Date("startDate", payload.StartDate)
	endDate, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	existing.StartDate = startDate
	existing.EndDate = endDate
	existing.Reason = payload.Reason
	existing.CID = payload.CID
	existing.Doctor = payload.Doctor
	existing.Hospital = payload.Hospital
	existing.Notes = payload.Notes
	if payload.Status != "" {
		existing.Status = payload.Status
	}
	if payload.CategoryID != "" {
		existing.CategoryID = payload.CategoryID
	}

	updated, err := h.Service.Update(r.Context(), existing)
	if err != nil {
		slog.Warn("update medical leave failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leave_update_failed", "failed to update medical leave", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "leaveID")); err != nil {
		if errors.Is(err, medicalleave.ErrLeaveNotFound) {
			api.Fail(w, http.StatusNotFound, "medical_leave_not_found", "medical leave not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete medical leave failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "medical_leave_delete_failed", "failed to delete medical leave", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadFile(w http.ResponseWriter, r *http.Request) {
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

	attached, err := h.Service.AttachFile(r.Context(), chi.URLParam(r, "leaveID"), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, medicalleave.ErrLeaveNotFound) {
			api.Fail(w, http.StatusNotFound, "medical_leave_not_found", "medical leave not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("attach leave file failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "leave_file_upload_failed", "failed to store file", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, attached, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DetachFile(r.Context(), chi.URLParam(r, "leaveID"), chi.URLParam(r, "fileID"))
	if err != nil {
		if errors.Is(err, medicalleave.ErrFileNotFound) {
			api.Fail(w, http.StatusNotFound, "leave_file_not_found", "file not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("detach leave file failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "leave_file_delete_failed", "failed to delete file", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
