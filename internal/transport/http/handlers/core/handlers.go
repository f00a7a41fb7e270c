package corehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/core"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
	"ascend/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Put("/{employeeID}", h.handleUpdateEmployee)
		r.Delete("/{employeeID}", h.handleDeleteEmployee)
		r.Get("/{employeeID}/history", h.handleEmployeeHistory)
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Put("/{departmentID}", h.handleUpdateDepartment)
		r.Delete("/{departmentID}", h.handleDeleteDepartment)
	})
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.handleListPositions)
		r.Post("/", h.handleCreatePosition)
		r.Put("/{positionID}", h.handleUpdatePosition)
		r.Delete("/{positionID}", h.handleDeletePosition)
	})
	r.Route("/position-levels", func(r chi.Router) {
		r.Get("/", h.handleListPositionLevels)
		r.Post("/", h.handleCreatePositionLevel)
		r.Put("/{levelID}", h.handleUpdatePositionLevel)
		r.Delete("/{levelID}", h.handleDeletePositionLevel)
	})
	r.Route("/shifts", func(r chi.Router) {
		r.Get("/", h.handleListShifts)
		r.Post("/", h.handleCreateShift)
		r.Put("/{shiftID}", h.handleUpdateShift)
		r.Delete("/{shiftID}", h.handleDeleteShift)
	})
}

type employeePayload struct {
	Name            string `json:"name"`
	CPF             string `json:"cpf"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	BirthDate       string `json:"birthDate"`
	HireDate        string `json:"hireDate"`
	DepartmentID    string `json:"departmentId"`
	PositionID      string `json:"positionId"`
	PositionLevelID string `json:"positionLevelId"`
	ShiftID         string `json:"shiftId"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 50, 200)
	filter := core.EmployeeFilter{
		DepartmentID: r.URL.Query().Get("department"),
		Search:       r.URL.Query().Get("search"),
		Limit:        pagination.Limit,
		Offset:       pagination.Offset,
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Warn("list employees failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("cpf", payload.CPF, "cpf is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("departmentId", payload.DepartmentID, "departmentId is required")
	v.Required("positionId", payload.PositionID, "positionId is required")
	v.Required("positionLevelId", payload.PositionLevelID, "positionLevelId is required")
	v.Required("shiftId", payload.ShiftID, "shiftId is required")
	birthDate := optionalDate(v, "birthDate", payload.BirthDate)
	hireDate := optionalDate(v, "hireDate", payload.HireDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employee, err := h.Service.CreateEmployee(r.Context(), core.NewEmployee{
		Name:            payload.Name,
		CPF:             payload.CPF,
		Email:           payload.Email,
		Phone:           payload.Phone,
		Address:         payload.Address,
		BirthDate:       birthDate,
		HireDate:        hireDate,
		DepartmentID:    payload.DepartmentID,
		PositionID:      payload.PositionID,
		PositionLevelID: payload.PositionLevelID,
		ShiftID:         payload.ShiftID,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateCPF):
			api.Fail(w, http.StatusConflict, "duplicate_cpf", "cpf already registered", middleware.GetRequestID(r.Context()))
		case errors.Is(err, core.ErrDuplicateEmail):
			api.Fail(w, http.StatusConflict, "duplicate_email", "email already registered", middleware.GetRequestID(r.Context()))
		default:
			slog.Warn("create employee failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get employee failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")
	existing, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get employee failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		employeePayload
		TerminationDate string `json:"terminationDate"`
		Active          *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("departmentId", payload.DepartmentID, "departmentId is required")
	v.Required("positionId", payload.PositionID, "positionId is required")
	v.Required("positionLevelId", payload.PositionLevelID, "positionLevelId is required")
	v.Required("shiftId", payload.ShiftID, "shiftId is required")
	birthDate := optionalDate(v, "birthDate", payload.BirthDate)
	hireDate := optionalDate(v, "hireDate", payload.HireDate)
	terminationDate := optionalDate(v, "terminationDate", payload.TerminationDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	existing.Name = payload.Name
	existing.Phone = payload.Phone
	existing.Address = payload.Address
	existing.BirthDate = birthDate
	existing.HireDate = hireDate
	existing.TerminationDate = terminationDate
	existing.DepartmentID = payload.DepartmentID
	existing.PositionID = payload.PositionID
	existing.PositionLevelID = payload.PositionLevelID
	existing.ShiftID = payload.ShiftID
	if payload.Active != nil {
		existing.Active = *payload.Active
	}

	updated, err := h.Service.UpdateEmployee(r.Context(), existing)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, core.ErrDuplicateEmail):
			api.Fail(w, http.StatusConflict, "duplicate_email", "email already registered", middleware.GetRequestID(r.Context()))
		default:
			slog.Warn("update employee failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete employee failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.ListEmployeeHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("employee history failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_history_failed", "failed to load history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.Store.ListDepartments(r.Context())
	if err != nil {
		slog.Warn("list departments failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "departments_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
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

	id, err := h.Service.Store.CreateDepartment(r.Context(), payload.Name)
	if err != nil {
		slog.Warn("create department failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.Store.UpdateDepartment(r.Context(), chi.URLParam(r, "departmentID"), payload.Name); err != nil {
		if errors.Is(err, core.ErrDepartmentNotFound) {
			api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("update department failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "department_update_failed", "failed to update department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Store.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentID")); err != nil {
		if errors.Is(err, core.ErrDepartmentNotFound) {
			api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete department failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "department_delete_failed", "failed to delete department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Service.Store.ListPositions(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		slog.Warn("list positions failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "positions_list_failed", "failed to list positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DepartmentID string `json:"departmentId"`
		Title        string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("departmentId", payload.DepartmentID, "departmentId is required")
	v.Required("title", payload.Title, "title is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Store.CreatePosition(r.Context(), payload.DepartmentID, payload.Title)
	if err != nil {
		slog.Warn("create position failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_create_failed", "failed to create position", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Service.Store.UpdatePosition(r.Context(), chi.URLParam(r, "positionID"), payload.Title); err != nil {
		if errors.Is(err, core.ErrPositionNotFound) {
			api.Fail(w, http.StatusNotFound, "position_not_found", "position not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("update position failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_update_failed", "failed to update position", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Store.DeletePosition(r.Context(), chi.URLParam(r, "positionID")); err != nil {
		if errors.Is(err, core.ErrPositionNotFound) {
			api.Fail(w, http.StatusNotFound, "position_not_found", "position not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete position failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_delete_failed", "failed to delete position", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositionLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.Service.Store.ListPositionLevels(r.Context(), r.URL.Query().Get("position"))
	if err != nil {
		slog.Warn("list position levels failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_levels_list_failed", "failed to list position levels", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, levels, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePositionLevel(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PositionID string `json:"positionId"`
		Name       string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("positionId", payload.PositionID, "positionId is required")
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Store.CreatePositionLevel(r.Context(), payload.PositionID, payload.Name)
	if err != nil {
		slog.Warn("create position level failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_level_create_failed", "failed to create position level", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePositionLevel(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.Store.UpdatePositionLevel(r.Context(), chi.URLParam(r, "levelID"), payload.Name); err != nil {
		if errors.Is(err, core.ErrPositionLevelNotFound) {
			api.Fail(w, http.StatusNotFound, "position_level_not_found", "position level not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("update position level failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_level_update_failed", "failed to update position level", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeletePositionLevel(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Store.DeletePositionLevel(r.Context(), chi.URLParam(r, "levelID")); err != nil {
		if errors.Is(err, core.ErrPositionLevelNotFound) {
			api.Fail(w, http.StatusNotFound, "position_level_not_found", "position level not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete position level failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "position_level_delete_failed", "failed to delete position level", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Service.Store.ListShifts(r.Context())
	if err != nil {
		slog.Warn("list shifts failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "shifts_list_failed", "failed to list shifts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, shifts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateShift(w http.ResponseWriter, r *http.Request) {
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

	id, err := h.Service.Store.CreateShift(r.Context(), payload.Name)
	if err != nil {
		slog.Warn("create shift failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "shift_create_failed", "failed to create shift", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateShift(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.Store.UpdateShift(r.Context(), chi.URLParam(r, "shiftID"), payload.Name); err != nil {
		if errors.Is(err, core.ErrShiftNotFound) {
			api.Fail(w, http.StatusNotFound, "shift_not_found", "shift not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("update shift failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "shift_update_failed", "failed to update shift", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Store.DeleteShift(r.Context(), chi.URLParam(r, "shiftID")); err != nil {
		if errors.Is(err, core.ErrShiftNotFound) {
			api.Fail(w, http.StatusNotFound, "shift_not_found", "shift not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete shift failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "shift_delete_failed", "failed to delete shift", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func optionalDate(v *shared.Validator, field, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, ok := v.Date(field, raw)
	if !ok {
		return nil
	}
	return &parsed
}
