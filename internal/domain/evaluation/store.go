package evaluation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM evaluation_templates ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var tmpl Template
		if err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, id string) (Template, error) {
	var tmpl Template
	err := s.DB.QueryRow(ctx, "SELECT id, name, created_at FROM evaluation_templates WHERE id = $1", id).Scan(&tmpl.ID, &tmpl.Name, &tmpl.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	if err != nil {
		return Template{}, err
	}

	questions, err := s.TemplateQuestions(ctx, id)
	if err != nil {
		return Template{}, err
	}
	tmpl.Questions = questions
	return tmpl, nil
}

func (s *Store) TemplateQuestions(ctx context.Context, templateID string) ([]Question, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, template_id, category, text, position
    FROM evaluation_questions
    WHERE template_id = $1
    ORDER BY position
  `, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var question Question
		if err := rows.Scan(&question.ID, &question.TemplateID, &question.Category, &question.Text, &question.Position); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (s *Store) CreateTemplate(ctx context.Context, tx pgx.Tx, name string, questions []Question) (string, error) {
	id := uuid.NewString()
	if _, err := tx.Exec(ctx, "INSERT INTO evaluation_templates (id, name) VALUES ($1, $2)", id, name); err != nil {
		return "", err
	}
	for i, question := range questions {
		if _, err := tx.Exec(ctx, `
      INSERT INTO evaluation_questions (id, template_id, category, text, position)
      VALUES ($1, $2, $3, $4, $5)
    `, uuid.NewString(), id, question.Category, question.Text, i); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

const evaluationColumns = `id, employee_id, COALESCE(evaluator_id::text, ''), template_id, date, self_status, self_strengths, self_improvements, self_goals, manager_status, manager_strengths, manager_improvements, manager_goals, final_score, created_at, updated_at`

// nullableID maps an absent reference to NULL instead of an empty string,
// which a UUID column would reject.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func scanEvaluation(row pgx.Row) (Evaluation, error) {
	var ev Evaluation
	err := row.Scan(&ev.ID, &ev.EmployeeID, &ev.EvaluatorID, &ev.TemplateID, &ev.Date, &ev.SelfStatus, &ev.SelfStrengths, &ev.SelfImprovements, &ev.SelfGoals, &ev.ManagerStatus, &ev.ManagerStrengths, &ev.ManagerImprovements, &ev.ManagerGoals, &ev.FinalScore, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

func (s *Store) ListEvaluations(ctx context.Context, employeeID string) ([]Evaluation, error) {
	query := "SELECT " + evaluationColumns + " FROM evaluations"
	args := []any{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations, rows.Err()
}

func (s *Store) GetEvaluation(ctx context.Context, id string) (Evaluation, error) {
	ev, err := scanEvaluation(s.DB.QueryRow(ctx, "SELECT "+evaluationColumns+" FROM evaluations WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}

	answers, err := s.Answers(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	ev.Answers = answers
	return ev, nil
}

func (s *Store) Answers(ctx context.Context, evaluationID string) ([]Answer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.evaluation_id, a.question_id, a.self_score, a.manager_score, a.comment
    FROM evaluation_answers a
    JOIN evaluation_questions q ON q.id = a.question_id
    WHERE a.evaluation_id = $1
    ORDER BY q.position
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var answer Answer
		if err := rows.Scan(&answer.ID, &answer.EvaluationID, &answer.QuestionID, &answer.SelfScore, &answer.ManagerScore, &answer.Comment); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}

// InsertEvaluation creates the evaluation plus one empty answer per template
// question.
func (s *Store) InsertEvaluation(ctx context.Context, tx pgx.Tx, id string, input NewEvaluation, questions []Question) error {
	if _, err := tx.Exec(ctx, `
    INSERT INTO evaluations (id, employee_id, evaluator_id, template_id, date, self_status, manager_status)
    VALUES ($1, $2, $3, $4, $5, $6, $6)
  `, id, input.EmployeeID, nullableID(input.EvaluatorID), input.TemplateID, input.Date, StatusPendente); err != nil {
		return err
	}
	for _, question := range questions {
		if _, err := tx.Exec(ctx, `
      INSERT INTO evaluation_answers (id, evaluation_id, question_id)
      VALUES ($1, $2, $3)
    `, uuid.NewString(), id, question.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpdateAnswer(ctx context.Context, tx pgx.Tx, evaluationID string, update AnswerUpdate) error {
	tag, err := tx.Exec(ctx, `
    UPDATE evaluation_answers
    SET self_score = $3, manager_score = $4, comment = $5
    WHERE id = $1 AND evaluation_id = $2
  `, update.ID, evaluationID, update.SelfScore, update.ManagerScore, update.Comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAnswerNotOwned
	}
	return nil
}

func (s *Store) UpdateEvaluation(ctx context.Context, tx pgx.Tx, ev Evaluation) error {
	tag, err := tx.Exec(ctx, `
    UPDATE evaluations
    SET date = $2, self_status = $3, self_strengths = $4, self_improvements = $5, self_goals = $6,
        manager_status = $7, manager_strengths = $8, manager_improvements = $9, manager_goals = $10,
        final_score = $11, updated_at = now()
    WHERE id = $1
  `, ev.ID, ev.Date, ev.SelfStatus, ev.SelfStrengths, ev.SelfImprovements, ev.SelfGoals, ev.ManagerStatus, ev.ManagerStrengths, ev.ManagerImprovements, ev.ManagerGoals, ev.FinalScore)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (s *Store) DeleteEvaluation(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

// AnswerIDs returns the set of answer ids owned by the evaluation, used to
// reject foreign answer ids before any write happens.
func (s *Store) AnswerIDs(ctx context.Context, evaluationID string) (map[string]bool, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM evaluation_answers WHERE evaluation_id = $1", evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
