package evaluationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/evaluation"
	"ascend/internal/transport/http/api"
	"ascend/internal/transport/http/middleware"
	"ascend/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
}

func NewHandler(service *evaluation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluation-templates", func(r chi.Router) {
		r.Get("/", h.handleListTemplates)
		r.Post("/", h.handleCreateTemplate)
		r.Get("/{templateID}", h.handleGetTemplate)
		r.Delete("/{templateID}", h.handleDeleteTemplate)
	})
	r.Route("/evaluations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{evaluationID}", h.handleGet)
		r.Put("/{evaluationID}", h.handleUpdate)
		r.Delete("/{evaluationID}", h.handleDelete)
	})
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		slog.Warn("list evaluation templates failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "templates_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		Questions []struct {
			Category string `json:"category"`
			Text     string `json:"text"`
		} `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if len(payload.Questions) == 0 {
		v.Add("questions", "at least one question is required")
	}
	for _, question := range payload.Questions {
		v.Required("questions.category", question.Category, "question category is required")
		v.Required("questions.text", question.Text, "question text is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	questions := make([]evaluation.Question, 0, len(payload.Questions))
	for i, question := range payload.Questions {
		questions = append(questions, evaluation.Question{Category: question.Category, Text: question.Text, Position: i})
	}
	template, err := h.Service.CreateTemplate(r.Context(), payload.Name, questions)
	if err != nil {
		slog.Warn("create evaluation template failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "template_create_failed", "failed to create template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, template, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.Service.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		if errors.Is(err, evaluation.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get evaluation template failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "template_get_failed", "failed to load template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, template, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTemplate(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		if errors.Is(err, evaluation.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete evaluation template failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "template_delete_failed", "failed to delete template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.Service.List(r.Context(), r.URL.Query().Get("employee"))
	if err != nil {
		slog.Warn("list evaluations failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "evaluations_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, evaluations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID  string `json:"employeeId"`
		EvaluatorID string `json:"evaluatorId"`
		TemplateID  string `json:"templateId"`
		Date        string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("templateId", payload.TemplateID, "templateId is required")
	v.Required("date", payload.Date, "date is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), evaluation.NewEvaluation{
		EmployeeID:  payload.EmployeeID,
		EvaluatorID: payload.EvaluatorID,
		TemplateID:  payload.TemplateID,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, evaluation.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("create evaluation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "evaluation_create_failed", "failed to create evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.Service.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		if errors.Is(err, evaluation.ErrEvaluationNotFound) {
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("get evaluation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "evaluation_get_failed", "failed to load evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Date                string                    `json:"date"`
		SelfStrengths       string                    `json:"selfStrengths"`
		SelfImprovements    string                    `json:"selfImprovements"`
		SelfGoals           string                    `json:"selfGoals"`
		ManagerStrengths    string                    `json:"managerStrengths"`
		ManagerImprovements string                    `json:"managerImprovements"`
		ManagerGoals        string                    `json:"managerGoals"`
		Answers             []evaluation.AnswerUpdate `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	var date *time.Time
	if payload.Date != "" {
		if parsed, ok := v.Date("date", payload.Date); ok {
			date = &parsed
		}
	}
	for _, answer := range payload.Answers {
		v.Required("answers.id", answer.ID, "answer id is required")
		v.Score("answers.selfScore", answer.SelfScore)
		v.Score("answers.managerScore", answer.ManagerScore)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "evaluationID"), evaluation.UpdateInput{
		Date:                date,
		SelfStrengths:       payload.SelfStrengths,
		SelfImprovements:    payload.SelfImprovements,
		SelfGoals:           payload.SelfGoals,
		ManagerStrengths:    payload.ManagerStrengths,
		ManagerImprovements: payload.ManagerImprovements,
		ManagerGoals:        payload.ManagerGoals,
		Answers:             payload.Answers,
	})
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrEvaluationNotFound):
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, evaluation.ErrAnswerNotOwned):
			api.Fail(w, http.StatusBadRequest, "answer_not_owned", "answer does not belong to this evaluation", middleware.GetRequestID(r.Context()))
		default:
			slog.Warn("update evaluation failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "evaluation_update_failed", "failed to update evaluation", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "evaluationID")); err != nil {
		if errors.Is(err, evaluation.ErrEvaluationNotFound) {
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("delete evaluation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "evaluation_delete_failed", "failed to delete evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
