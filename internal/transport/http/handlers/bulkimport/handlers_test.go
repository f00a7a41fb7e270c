package bulkimporthandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/bulkimport"
	"ascend/internal/domain/core"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/training"
	"ascend/internal/platform/metrics"
)

// rejectingStore fails every call; payload validation must reject requests
// before the store is ever reached.
type rejectingStore struct{ t *testing.T }

func (s rejectingStore) fail() {
	s.t.Helper()
	s.t.Error("store must not be called for an invalid payload")
}

func (s rejectingStore) DepartmentIDByName(context.Context, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) PositionIDByTitle(context.Context, string, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) PositionLevelIDByName(context.Context, string, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) ShiftIDByName(context.Context, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) LeaveCategoryIDByName(context.Context, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) EmployeeIDByCPF(context.Context, string) (string, error) {
	s.fail()
	return "", nil
}
func (s rejectingStore) EmployeeCPFExists(context.Context, string) (bool, error) {
	s.fail()
	return false, nil
}
func (s rejectingStore) EmployeeEmailExists(context.Context, string) (bool, error) {
	s.fail()
	return false, nil
}
func (s rejectingStore) CreateEmployee(context.Context, core.NewEmployee) error {
	s.fail()
	return nil
}
func (s rejectingStore) CreateMedicalLeave(context.Context, medicalleave.NewMedicalLeave) error {
	s.fail()
	return nil
}
func (s rejectingStore) CreateTraining(context.Context, training.NewTraining, []string) error {
	s.fail()
	return nil
}
func (s rejectingStore) RecordCareerEvent(context.Context, bulkimport.CareerEvent) error {
	s.fail()
	return nil
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	router := chi.NewRouter()
	handler := NewHandler(bulkimport.NewReconciler(rejectingStore{t: t}, 1), metrics.New())
	handler.RegisterRoutes(router)
	return router
}

func TestImportRejectsNonArrayPayload(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bulk-import/employees", strings.NewReader(`{"employees": {"Nome": "Ana"}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid_payload") {
		t.Fatalf("expected invalid_payload code, got %s", rec.Body.String())
	}
}

func TestImportRejectsMissingRowsKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bulk-import/employees", strings.NewReader(`{"records": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestImportRejectsUnknownKind(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bulk-import/managers", strings.NewReader(`{"managers": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTemplateDownload(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bulk-import/template/employees", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("expected text/csv, got %s", got)
	}
	if !strings.Contains(rec.Body.String(), "Nome;CPF") {
		t.Fatalf("template must carry the labelled header, got %s", rec.Body.String())
	}
}
