package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ascend/internal/app/server"
	"ascend/internal/platform/config"
	"ascend/internal/platform/db"
	"ascend/internal/platform/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:               ":0",
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		Environment:        "test",
		UploadsDir:         "storage/uploads",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     1048576,
		RateLimitPerMinute: 1000,
		ImportWorkers:      4,
		SelfWeight:         0.4,
		ManagerWeight:      0.6,
		TokenTTL:           time.Hour,
	}
}

func TestEmployeeImportAndDashboardJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	cfg := testConfig(dbURL)

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, "../../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := server.New(cfg, pool, storage.NoopStore{})
	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	departmentID := createNamed(t, client, ts.URL, token, "/api/v1/departments", map[string]string{"name": fmt.Sprintf("TI-%d", time.Now().UnixNano())})
	positions := postJSON(t, client, ts.URL+"/api/v1/positions", token, map[string]string{"departmentId": departmentID, "title": "Analista"})
	positionID := idFrom(t, positions)
	postJSON(t, client, ts.URL+"/api/v1/position-levels", token, map[string]string{"positionId": positionID, "name": "Pleno"})

	// Import one employee through the reconciler endpoint.
	department := departmentName(t, client, ts.URL, token, departmentID)
	cpf := fmt.Sprintf("%011d", time.Now().UnixNano()%100000000000)
	importPayload := map[string]any{
		"employees": []map[string]string{{
			"Nome":               "Ana Silva",
			"CPF":                cpf,
			"Email":              fmt.Sprintf("ana-%s@test.local", cpf),
			"Departamento":       department,
			"Cargo":              "Analista",
			"Faixa do Cargo":     "Pleno",
			"Turno":              "Turno A",
			"Data de Nascimento": "01/01/1990",
			"Data de Admissao":   "01/01/2024",
		}},
	}
	body := postJSON(t, client, ts.URL+"/api/v1/bulk-import/employees", token, importPayload)
	var summary struct {
		Successful []struct {
			Name string `json:"name"`
		} `json:"successful"`
		Failed []struct {
			Reason string `json:"reason"`
		} `json:"failed"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("import failed: %+v", summary.Failed)
	}
	if len(summary.Successful) != 1 || summary.Successful[0].Name != "Ana Silva" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// The imported employee must exist with a matricula and one history entry.
	employees := getJSON(t, client, ts.URL+"/api/v1/employees?search=Ana+Silva", token)
	var list []struct {
		ID        string `json:"id"`
		Matricula string `json:"matricula"`
		CPF       string `json:"cpf"`
	}
	if err := json.Unmarshal(employees, &list); err != nil {
		t.Fatalf("decode employees: %v", err)
	}
	var employeeID string
	for _, emp := range list {
		if emp.CPF == cpf {
			employeeID = emp.ID
			if emp.Matricula == "" {
				t.Fatal("imported employee must have a matricula")
			}
		}
	}
	if employeeID == "" {
		t.Fatalf("imported employee not found in %s", employees)
	}

	history := getJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/history", token)
	var entries []map[string]any
	if err := json.Unmarshal(history, &entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(entries))
	}

	// Dashboard aggregates without error even with sparse data.
	dashboard := getJSON(t, client, ts.URL+"/api/v1/dashboard?timeRange=30", token)
	var dash struct {
		Totals struct {
			Employees int `json:"employees"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(dashboard, &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Totals.Employees < 1 {
		t.Fatalf("dashboard must count the imported employee, got %d", dash.Totals.Employees)
	}

	// Renaming a reference entity flows through to the listing.
	renamed := department + " e Dados"
	putJSON(t, client, ts.URL+"/api/v1/departments/"+departmentID, token, map[string]string{"name": renamed})
	if got := departmentName(t, client, ts.URL, token, departmentID); got != renamed {
		t.Fatalf("department rename not applied, got %q", got)
	}

	// Evaluation lifecycle: foreign answer ids are rejected whole, a date
	// change persists, and the weighted score lands.
	templateID := createNamed(t, client, ts.URL, token, "/api/v1/evaluation-templates", map[string]any{
		"name":      fmt.Sprintf("Ciclo %d", time.Now().UnixNano()),
		"questions": []map[string]string{{"category": "Entrega", "text": "Cumpre os prazos acordados?"}},
	})

	first := decodeEvaluation(t, postJSON(t, client, ts.URL+"/api/v1/evaluations", token, map[string]string{
		"employeeId": employeeID, "templateId": templateID, "date": "2024-06-01",
	}))
	second := decodeEvaluation(t, postJSON(t, client, ts.URL+"/api/v1/evaluations", token, map[string]string{
		"employeeId": employeeID, "templateId": templateID, "date": "2024-06-02",
	}))
	if len(first.Answers) != 1 || len(second.Answers) != 1 {
		t.Fatalf("expected one blank answer per evaluation, got %d and %d", len(first.Answers), len(second.Answers))
	}

	status, code := requestExpectingError(t, client, http.MethodPut, ts.URL+"/api/v1/evaluations/"+first.ID, token, map[string]any{
		"answers": []map[string]any{{"id": second.Answers[0].ID, "selfScore": 5}},
	})
	if status != http.StatusBadRequest || code != "answer_not_owned" {
		t.Fatalf("foreign answer id: status %d code %q", status, code)
	}

	updated := decodeEvaluation(t, putJSON(t, client, ts.URL+"/api/v1/evaluations/"+first.ID, token, map[string]any{
		"date":    "2024-07-15",
		"answers": []map[string]any{{"id": first.Answers[0].ID, "selfScore": 8, "managerScore": 9}},
	}))
	if !strings.HasPrefix(updated.Date, "2024-07-15") {
		t.Fatalf("evaluation date not applied: %s", updated.Date)
	}
	if updated.FinalScore == nil || *updated.FinalScore != 8.6 {
		t.Fatalf("expected final score 8.6, got %v", updated.FinalScore)
	}
}

type evaluationBody struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	FinalScore *float64 `json:"finalScore"`
	Answers    []struct {
		ID string `json:"id"`
	} `json:"answers"`
}

func decodeEvaluation(t *testing.T, data json.RawMessage) evaluationBody {
	t.Helper()
	var body evaluationBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode evaluation: %v", err)
	}
	if body.ID == "" {
		t.Fatalf("expected an evaluation id in %s", data)
	}
	return body
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	body := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	return result.Token
}

func createNamed(t *testing.T, client *http.Client, baseURL, token, path string, payload any) string {
	t.Helper()
	return idFrom(t, postJSON(t, client, baseURL+path, token, payload))
}

func idFrom(t *testing.T, data json.RawMessage) string {
	t.Helper()
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected an id in %s", data)
	}
	return result.ID
}

func departmentName(t *testing.T, client *http.Client, baseURL, token, departmentID string) string {
	t.Helper()
	body := getJSON(t, client, baseURL+"/api/v1/departments", token)
	var departments []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &departments); err != nil {
		t.Fatalf("decode departments: %v", err)
	}
	for _, dept := range departments {
		if dept.ID == departmentID {
			return dept.Name
		}
	}
	t.Fatalf("department %s not listed", departmentID)
	return ""
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any) json.RawMessage {
	t.Helper()
	return doRequest(t, client, jsonRequest(t, http.MethodPost, url, token, payload))
}

func putJSON(t *testing.T, client *http.Client, url, token string, payload any) json.RawMessage {
	t.Helper()
	return doRequest(t, client, jsonRequest(t, http.MethodPut, url, token, payload))
}

func jsonRequest(t *testing.T, method, url, token string, payload any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// requestExpectingError sends the payload and returns the HTTP status and the
// envelope error code for assertions on failure paths.
func requestExpectingError(t *testing.T, client *http.Client, method, url, token string, payload any) (int, string) {
	t.Helper()
	resp, err := client.Do(jsonRequest(t, method, url, token, payload))
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, url, err)
	}
	if env.Success {
		t.Fatalf("%s %s: expected a failure envelope", method, url)
	}
	return resp.StatusCode, env.Error.Code
}

func getJSON(t *testing.T, client *http.Client, url, token string) json.RawMessage {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return doRequest(t, client, req)
}

func doRequest(t *testing.T, client *http.Client, req *http.Request) json.RawMessage {
	t.Helper()
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		t.Fatalf("%s %s: status %d, error %v", req.Method, req.URL.Path, resp.StatusCode, env.Error)
	}
	return env.Data
}
