package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ascend/internal/domain/evaluation"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// DepartmentCounts tallies active employees plus windowed leaves and
// trainings per department. Trainings attach to a department through their
// participants.
func (s *Store) DepartmentCounts(ctx context.Context, since time.Time, filter Filter) ([]DepartmentCounts, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name,
      (SELECT COUNT(*) FROM employees e
        WHERE e.department_id = d.id AND e.active) AS employees,
      (SELECT COUNT(*) FROM medical_leaves ml
        JOIN employees e ON e.id = ml.employee_id
        WHERE e.department_id = d.id AND ml.start_date >= $1) AS medical_leaves,
      (SELECT COUNT(DISTINCT t.id) FROM trainings t
        JOIN training_participants tp ON tp.training_id = t.id
        JOIN employees e ON e.id = tp.employee_id
        WHERE e.department_id = d.id AND (t.start_date IS NULL OR t.start_date >= $1)) AS trainings,
      (SELECT COALESCE(SUM(dt.hours), 0) FROM (
        SELECT DISTINCT t.id, t.hours FROM trainings t
          JOIN training_participants tp ON tp.training_id = t.id
          JOIN employees e ON e.id = tp.employee_id
          WHERE e.department_id = d.id AND (t.start_date IS NULL OR t.start_date >= $1)) dt) AS training_hours
    FROM departments d
    WHERE ($2 OR d.name = $3)
    ORDER BY d.name
  `, since, filter.All(), filter.Department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DepartmentCounts
	for rows.Next() {
		var dept DepartmentCounts
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Employees, &dept.MedicalLeaves, &dept.Trainings, &dept.TrainingHours); err != nil {
			return nil, err
		}
		counts = append(counts, dept)
	}
	return counts, rows.Err()
}

// EvaluationsForScoring loads windowed evaluations with their answers so the
// aggregation can recompute weighted scores with the configured weights.
func (s *Store) EvaluationsForScoring(ctx context.Context, since time.Time, filter Filter) ([]ScoredEvaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ev.id, e.id, e.name, d.id, d.name
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    JOIN departments d ON d.id = e.department_id
    WHERE ev.date >= $1 AND ($2 OR d.name = $3)
    ORDER BY ev.date DESC
  `, since, filter.All(), filter.Department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []ScoredEvaluation
	index := make(map[string]int)
	for rows.Next() {
		var eval ScoredEvaluation
		if err := rows.Scan(&eval.EvaluationID, &eval.EmployeeID, &eval.EmployeeName, &eval.DepartmentID, &eval.DepartmentName); err != nil {
			return nil, err
		}
		index[eval.EvaluationID] = len(evals)
		evals = append(evals, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(evals) == 0 {
		return nil, nil
	}

	answerRows, err := s.DB.Query(ctx, `
    SELECT a.evaluation_id, a.self_score, a.manager_score
    FROM evaluation_answers a
    JOIN evaluations ev ON ev.id = a.evaluation_id
    WHERE ev.date >= $1
  `, since)
	if err != nil {
		return nil, err
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var evaluationID string
		var answer evaluation.Answer
		if err := answerRows.Scan(&evaluationID, &answer.SelfScore, &answer.ManagerScore); err != nil {
			return nil, err
		}
		if i, ok := index[evaluationID]; ok {
			evals[i].Answers = append(evals[i].Answers, answer)
		}
	}
	return evals, answerRows.Err()
}
