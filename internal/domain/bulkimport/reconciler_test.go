package bulkimport

import (
	"context"
	"strings"
	"sync"
	"testing"

	"ascend/internal/domain/core"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/training"
)

// fakeStore resolves names from in-memory maps and records created entities.
type fakeStore struct {
	mu sync.Mutex

	departments map[string]string            // name -> id
	positions   map[string]map[string]string // departmentID -> title -> id
	levels      map[string]map[string]string // positionID -> name -> id
	shifts      map[string]string
	categories  map[string]string
	employees   map[string]string // cpf -> id
	emails      map[string]bool

	createdEmployees []core.NewEmployee
	createdLeaves    []medicalleave.NewMedicalLeave
	createdTrainings []training.NewTraining
	enrollments      [][]string
	careerEvents     []CareerEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		departments: map[string]string{"TI": "dept-ti"},
		positions:   map[string]map[string]string{"dept-ti": {"Analista": "pos-analista"}},
		levels:      map[string]map[string]string{"pos-analista": {"Pleno": "level-pleno"}},
		shifts:      map[string]string{"Turno A": "shift-a"},
		categories:  map[string]string{"Doença": "cat-doenca"},
		employees:   map[string]string{},
		emails:      map[string]bool{},
	}
}

func (f *fakeStore) DepartmentIDByName(ctx context.Context, name string) (string, error) {
	if id, ok := f.departments[name]; ok {
		return id, nil
	}
	return "", core.ErrDepartmentNotFound
}

func (f *fakeStore) PositionIDByTitle(ctx context.Context, departmentID, title string) (string, error) {
	if id, ok := f.positions[departmentID][title]; ok {
		return id, nil
	}
	return "", core.ErrPositionNotFound
}

func (f *fakeStore) PositionLevelIDByName(ctx context.Context, positionID, name string) (string, error) {
	if id, ok := f.levels[positionID][name]; ok {
		return id, nil
	}
	return "", core.ErrPositionLevelNotFound
}

func (f *fakeStore) ShiftIDByName(ctx context.Context, name string) (string, error) {
	if id, ok := f.shifts[name]; ok {
		return id, nil
	}
	return "", core.ErrShiftNotFound
}

func (f *fakeStore) LeaveCategoryIDByName(ctx context.Context, name string) (string, error) {
	if id, ok := f.categories[name]; ok {
		return id, nil
	}
	return "", medicalleave.ErrCategoryNotFound
}

func (f *fakeStore) EmployeeIDByCPF(ctx context.Context, cpf string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.employees[cpf]; ok {
		return id, nil
	}
	return "", core.ErrEmployeeNotFound
}

func (f *fakeStore) EmployeeCPFExists(ctx context.Context, cpf string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.employees[cpf]
	return ok, nil
}

func (f *fakeStore) EmployeeEmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emails[email], nil
}

// CreateEmployee enforces uniqueness at write time the way the database
// constraint does, so in-batch races surface as duplicate errors.
func (f *fakeStore) CreateEmployee(ctx context.Context, input core.NewEmployee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[input.CPF]; ok {
		return core.ErrDuplicateCPF
	}
	if f.emails[input.Email] {
		return core.ErrDuplicateEmail
	}
	f.employees[input.CPF] = "emp-" + input.CPF
	f.emails[input.Email] = true
	f.createdEmployees = append(f.createdEmployees, input)
	return nil
}

func (f *fakeStore) CreateMedicalLeave(ctx context.Context, input medicalleave.NewMedicalLeave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdLeaves = append(f.createdLeaves, input)
	return nil
}

func (f *fakeStore) CreateTraining(ctx context.Context, input training.NewTraining, participantIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdTrainings = append(f.createdTrainings, input)
	f.enrollments = append(f.enrollments, participantIDs)
	return nil
}

func (f *fakeStore) RecordCareerEvent(ctx context.Context, event CareerEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.careerEvents = append(f.careerEvents, event)
	return nil
}

func validEmployeeRow() Row {
	return Row{
		"Nome":               "Ana Silva",
		"CPF":                "11111111111",
		"Email":              "ana@x.com",
		"Departamento":       "TI",
		"Cargo":              "Analista",
		"Faixa do Cargo":     "Pleno",
		"Turno":              "Turno A",
		"Data de Nascimento": "01/01/1990",
		"Data de Admissao":   "01/01/2024",
	}
}

func TestImportEmployeeRowSucceeds(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 2)

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{validEmployeeRow()})
	if len(summary.Successful) != 1 || len(summary.Failed) != 0 {
		t.Fatalf("expected 1 success, got %+v", summary)
	}
	if summary.Successful[0].Name != "Ana Silva" {
		t.Fatalf("expected created name Ana Silva, got %s", summary.Successful[0].Name)
	}
	if len(store.createdEmployees) != 1 {
		t.Fatalf("expected 1 created employee, got %d", len(store.createdEmployees))
	}

	created := store.createdEmployees[0]
	if created.DepartmentID != "dept-ti" || created.PositionID != "pos-analista" || created.PositionLevelID != "level-pleno" || created.ShiftID != "shift-a" {
		t.Fatalf("references not resolved: %+v", created)
	}
	if created.HireDate == nil || created.HireDate.Format("02/01/2006") != "01/01/2024" {
		t.Fatalf("hire date not parsed: %v", created.HireDate)
	}
}

func TestImportUnknownDepartmentFailsRow(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 2)

	row := validEmployeeRow()
	row["Departamento"] = "Inexistente"

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{row})
	if len(summary.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %+v", summary)
	}
	if !strings.Contains(summary.Failed[0].Reason, "Departamento não encontrado: Inexistente") {
		t.Fatalf("unexpected reason: %s", summary.Failed[0].Reason)
	}
	if len(store.createdEmployees) != 0 {
		t.Fatal("failed row must not create an employee")
	}
}

func TestImportMissingFieldNamesTheField(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 1)

	row := validEmployeeRow()
	delete(row, "CPF")

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{row})
	if len(summary.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %+v", summary)
	}
	if !strings.Contains(summary.Failed[0].Reason, "CPF") {
		t.Fatalf("failure must name the missing field, got: %s", summary.Failed[0].Reason)
	}
	if len(store.createdEmployees) != 0 {
		t.Fatal("no entity may be created for a structurally invalid row")
	}
}

func TestImportMalformedDateFailsRow(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 1)

	row := validEmployeeRow()
	row["Data de Admissao"] = "31/02/2024"

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{row})
	if len(summary.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %+v", summary)
	}
	if !strings.Contains(summary.Failed[0].Reason, "31/02/2024") {
		t.Fatalf("failure must name the bad date, got: %s", summary.Failed[0].Reason)
	}
}

func TestImportDuplicateCPFInStoreFailsRow(t *testing.T) {
	store := newFakeStore()
	store.employees["11111111111"] = "emp-existing"
	reconciler := NewReconciler(store, 1)

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{validEmployeeRow()})
	if len(summary.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %+v", summary)
	}
	if !strings.Contains(summary.Failed[0].Reason, "CPF já cadastrado") {
		t.Fatalf("unexpected reason: %s", summary.Failed[0].Reason)
	}
}

func TestImportCountsSumToBatchSize(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 4)

	rows := make([]Row, 0, 20)
	for i := 0; i < 20; i++ {
		row := validEmployeeRow()
		row["CPF"] = cpfFor(i)
		row["Email"] = cpfFor(i) + "@x.com"
		if i%3 == 0 {
			row["Departamento"] = "Inexistente"
		}
		rows = append(rows, row)
	}

	summary := reconciler.Run(context.Background(), KindEmployees, rows)
	if len(summary.Successful)+len(summary.Failed) != 20 {
		t.Fatalf("successful+failed must equal batch size, got %d+%d", len(summary.Successful), len(summary.Failed))
	}
	if len(summary.Failed) != 7 {
		t.Fatalf("expected 7 failures, got %d", len(summary.Failed))
	}
}

func TestImportDuplicateCPFWithinBatchFailsOneRow(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 4)

	first := validEmployeeRow()
	second := validEmployeeRow()
	second["Email"] = "outra@x.com"

	summary := reconciler.Run(context.Background(), KindEmployees, []Row{first, second})
	if len(summary.Successful) != 1 || len(summary.Failed) != 1 {
		t.Fatalf("expected exactly one winner, got %+v", summary)
	}
	if len(store.createdEmployees) != 1 {
		t.Fatalf("expected 1 created employee, got %d", len(store.createdEmployees))
	}
}

func TestImportMedicalLeaveResolvesEmployeeAndCategory(t *testing.T) {
	store := newFakeStore()
	store.employees["22222222222"] = "emp-22"
	reconciler := NewReconciler(store, 1)

	row := Row{
		"CPF":            "22222222222",
		"Categoria":      "Doença",
		"Data de Início": "01/03/2024",
		"Data de Fim":    "05/03/2024",
		"Motivo":         "Gripe",
	}
	summary := reconciler.Run(context.Background(), KindMedicalLeaves, []Row{row})
	if len(summary.Successful) != 1 {
		t.Fatalf("expected success, got %+v", summary)
	}
	if len(store.createdLeaves) != 1 {
		t.Fatalf("expected 1 leave, got %d", len(store.createdLeaves))
	}
	leave := store.createdLeaves[0]
	if leave.EmployeeID != "emp-22" || leave.CategoryID != "cat-doenca" {
		t.Fatalf("references not resolved: %+v", leave)
	}
}

func validTrainingRow() Row {
	return Row{
		"Nome":           "Segurança no Trabalho",
		"Categoria":      "Obrigatório",
		"Data de Início": "01/04/2024",
		"Data de Fim":    "02/04/2024",
		"Carga Horária":  "8",
	}
}

func TestImportTrainingEnrollsParticipants(t *testing.T) {
	store := newFakeStore()
	store.employees["44444444444"] = "emp-44"
	store.employees["55555555555"] = "emp-55"
	reconciler := NewReconciler(store, 1)

	row := validTrainingRow()
	row["Participantes (CPFs)"] = "44444444444, 55555555555, 44444444444"

	summary := reconciler.Run(context.Background(), KindTrainings, []Row{row})
	if len(summary.Successful) != 1 {
		t.Fatalf("expected success, got %+v", summary)
	}
	if len(store.createdTrainings) != 1 {
		t.Fatalf("expected 1 training, got %d", len(store.createdTrainings))
	}
	enrolled := store.enrollments[0]
	if len(enrolled) != 2 || enrolled[0] != "emp-44" || enrolled[1] != "emp-55" {
		t.Fatalf("participants not resolved and deduplicated: %v", enrolled)
	}
}

func TestImportTrainingUnknownParticipantFailsRow(t *testing.T) {
	store := newFakeStore()
	store.employees["44444444444"] = "emp-44"
	reconciler := NewReconciler(store, 1)

	row := validTrainingRow()
	row["Participantes (CPFs)"] = "44444444444, 99999999999"

	summary := reconciler.Run(context.Background(), KindTrainings, []Row{row})
	if len(summary.Failed) != 1 {
		t.Fatalf("expected failure, got %+v", summary)
	}
	if !strings.Contains(summary.Failed[0].Reason, "Participante não encontrado: CPF 99999999999") {
		t.Fatalf("unexpected reason: %s", summary.Failed[0].Reason)
	}
	if len(store.createdTrainings) != 0 {
		t.Fatal("failed row must not create a training")
	}
}

func TestImportTrainingWithoutParticipantsStillSucceeds(t *testing.T) {
	store := newFakeStore()
	reconciler := NewReconciler(store, 1)

	summary := reconciler.Run(context.Background(), KindTrainings, []Row{validTrainingRow()})
	if len(summary.Successful) != 1 {
		t.Fatalf("expected success, got %+v", summary)
	}
	if len(store.enrollments) != 1 || len(store.enrollments[0]) != 0 {
		t.Fatalf("expected no enrollments, got %v", store.enrollments)
	}
}

func TestImportCareerRecordsEvent(t *testing.T) {
	store := newFakeStore()
	store.employees["33333333333"] = "emp-33"
	reconciler := NewReconciler(store, 1)

	row := Row{
		"CPF":                  "33333333333",
		"Departamento":         "TI",
		"Cargo":                "Analista",
		"Faixa do Cargo":       "Pleno",
		"Turno":                "Turno A",
		"Data da Movimentação": "01/06/2024",
	}
	summary := reconciler.Run(context.Background(), KindCareer, []Row{row})
	if len(summary.Successful) != 1 {
		t.Fatalf("expected success, got %+v", summary)
	}
	if len(store.careerEvents) != 1 {
		t.Fatalf("expected 1 career event, got %d", len(store.careerEvents))
	}
	event := store.careerEvents[0]
	if event.EmployeeID != "emp-33" || event.DepartmentID != "dept-ti" {
		t.Fatalf("references not resolved: %+v", event)
	}
}

func cpfFor(i int) string {
	digits := []byte("00000000000")
	for pos := len(digits) - 1; pos >= 0 && i > 0; pos-- {
		digits[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(digits)
}
