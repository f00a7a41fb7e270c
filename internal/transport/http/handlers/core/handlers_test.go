package corehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"ascend/internal/domain/core"
)

// The nil pool makes any store access panic, so these tests also prove the
// validation path short-circuits before the database.
func newTestRouter() http.Handler {
	router := chi.NewRouter()
	NewHandler(core.NewService(core.NewStore(nil))).RegisterRoutes(router)
	return router
}

func TestReferenceUpdateValidatesBeforeStore(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		path string
		body string
	}{
		{"/departments/d1", `{"name":""}`},
		{"/positions/p1", `{"title":"   "}`},
		{"/position-levels/l1", `{"name":""}`},
		{"/shifts/s1", `{}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("PUT %s: status %d, want 400", tc.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "validation_error") {
			t.Errorf("PUT %s: body %s", tc.path, rec.Body.String())
		}
	}
}

func TestReferenceUpdateRejectsMalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPut, "/departments/d1", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_payload") {
		t.Fatalf("body %s", rec.Body.String())
	}
}
