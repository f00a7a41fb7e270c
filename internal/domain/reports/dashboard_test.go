package reports

import (
	"testing"

	"ascend/internal/domain/evaluation"
)

func intPtr(v int) *int { return &v }

func pairedAnswers(self, manager int) []evaluation.Answer {
	return []evaluation.Answer{{SelfScore: intPtr(self), ManagerScore: intPtr(manager)}}
}

func TestBuildZeroEmployeeDepartmentReportsZeros(t *testing.T) {
	counts := []DepartmentCounts{
		{ID: "d1", Name: "TI", Employees: 3},
		{ID: "d2", Name: "Novo Setor"},
	}

	dashboard := Build(counts, nil, evaluation.DefaultWeights())
	if len(dashboard.Departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(dashboard.Departments))
	}

	empty := dashboard.Departments[1]
	if empty.Name != "Novo Setor" {
		t.Fatalf("unexpected ordering: %+v", dashboard.Departments)
	}
	if empty.Employees != 0 || empty.Evaluations != 0 || empty.MedicalLeaves != 0 || empty.Trainings != 0 {
		t.Fatalf("expected zero counts, got %+v", empty)
	}
	if empty.AverageScore != nil {
		t.Fatalf("empty department must have nil average, got %v", *empty.AverageScore)
	}
	if dashboard.Totals.Employees != 3 {
		t.Fatalf("totals must sum departments, got %d", dashboard.Totals.Employees)
	}
	if dashboard.Totals.AverageScore != nil {
		t.Fatal("no evaluations means nil overall average")
	}
}

func TestBuildAveragesOnlyScorableEvaluations(t *testing.T) {
	counts := []DepartmentCounts{{ID: "d1", Name: "TI", Employees: 2}}
	evals := []ScoredEvaluation{
		{EvaluationID: "ev1", EmployeeID: "e1", EmployeeName: "Ana", DepartmentID: "d1", DepartmentName: "TI", Answers: pairedAnswers(8, 9)},
		{EvaluationID: "ev2", EmployeeID: "e2", EmployeeName: "Bruno", DepartmentID: "d1", DepartmentName: "TI", Answers: []evaluation.Answer{{SelfScore: intPtr(10)}}},
	}

	dashboard := Build(counts, evals, evaluation.DefaultWeights())
	dept := dashboard.Departments[0]
	if dept.Evaluations != 2 {
		t.Fatalf("both evaluations count, got %d", dept.Evaluations)
	}
	if dept.AverageScore == nil || *dept.AverageScore != 8.6 {
		t.Fatalf("average must cover the scorable evaluation only, got %v", dept.AverageScore)
	}
	if len(dashboard.TopPerformers) != 1 || dashboard.TopPerformers[0].EmployeeName != "Ana" {
		t.Fatalf("only scorable evaluations rank, got %+v", dashboard.TopPerformers)
	}
}

func TestBuildTopPerformersCapped(t *testing.T) {
	counts := []DepartmentCounts{{ID: "d1", Name: "TI", Employees: 15}}
	var evals []ScoredEvaluation
	for i := 0; i < 15; i++ {
		evals = append(evals, ScoredEvaluation{
			EvaluationID:   "ev",
			EmployeeID:     "e",
			EmployeeName:   "N",
			DepartmentID:   "d1",
			DepartmentName: "TI",
			Answers:        pairedAnswers(i%11, i%11),
		})
	}

	dashboard := Build(counts, evals, evaluation.DefaultWeights())
	if len(dashboard.TopPerformers) != evaluation.TopPerformerLimit {
		t.Fatalf("expected %d top performers, got %d", evaluation.TopPerformerLimit, len(dashboard.TopPerformers))
	}
	for i := 1; i < len(dashboard.TopPerformers); i++ {
		if dashboard.TopPerformers[i].Score > dashboard.TopPerformers[i-1].Score {
			t.Fatalf("ranking must be descending: %+v", dashboard.TopPerformers)
		}
	}
}
