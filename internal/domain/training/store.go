package training

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const trainingColumns = `id, name, category, source, instructor, institution, start_date, end_date, hours, status, created_at, updated_at`

func scanTraining(row pgx.Row) (Training, error) {
	var tr Training
	err := row.Scan(&tr.ID, &tr.Name, &tr.Category, &tr.Source, &tr.Instructor, &tr.Institution, &tr.StartDate, &tr.EndDate, &tr.Hours, &tr.Status, &tr.CreatedAt, &tr.UpdatedAt)
	return tr, err
}

func (s *Store) ListTrainings(ctx context.Context) ([]Training, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+trainingColumns+" FROM trainings ORDER BY start_date DESC NULLS LAST, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []Training
	for rows.Next() {
		tr, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, tr)
	}
	return trainings, rows.Err()
}

func (s *Store) GetTraining(ctx context.Context, id string) (Training, error) {
	tr, err := scanTraining(s.DB.QueryRow(ctx, "SELECT "+trainingColumns+" FROM trainings WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Training{}, ErrTrainingNotFound
	}
	if err != nil {
		return Training{}, err
	}

	participants, err := s.ListParticipants(ctx, id)
	if err != nil {
		return Training{}, err
	}
	tr.Participants = participants

	materials, err := s.ListMaterials(ctx, id)
	if err != nil {
		return Training{}, err
	}
	tr.Materials = materials
	return tr, nil
}

func (s *Store) TrainingIDByName(ctx context.Context, q Querier, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM trainings WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrTrainingNotFound
	}
	return id, err
}

func (s *Store) InsertTraining(ctx context.Context, q Querier, id string, input NewTraining) error {
	_, err := q.Exec(ctx, `
    INSERT INTO trainings (id, name, category, source, instructor, institution, start_date, end_date, hours, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
  `, id, input.Name, input.Category, input.Source, input.Instructor, input.Institution, input.StartDate, input.EndDate, input.Hours, input.Status)
	return err
}

func (s *Store) UpdateTraining(ctx context.Context, tr Training) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE trainings
    SET name = $2, category = $3, source = $4, instructor = $5, institution = $6, start_date = $7, end_date = $8, hours = $9, status = $10, updated_at = now()
    WHERE id = $1
  `, tr.ID, tr.Name, tr.Category, tr.Source, tr.Instructor, tr.Institution, tr.StartDate, tr.EndDate, tr.Hours, tr.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainingNotFound
	}
	return nil
}

func (s *Store) DeleteTraining(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM trainings WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainingNotFound
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context, trainingID string) ([]Participant, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.training_id, p.employee_id, e.name, p.created_at
    FROM training_participants p
    JOIN employees e ON e.id = p.employee_id
    WHERE p.training_id = $1
    ORDER BY e.name
  `, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var participant Participant
		if err := rows.Scan(&participant.ID, &participant.TrainingID, &participant.EmployeeID, &participant.EmployeeName, &participant.CreatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}

func (s *Store) AddParticipant(ctx context.Context, q Querier, trainingID, employeeID string) (string, error) {
	id := uuid.NewString()
	_, err := q.Exec(ctx, `
    INSERT INTO training_participants (id, training_id, employee_id)
    VALUES ($1, $2, $3)
  `, id, trainingID, employeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyParticipant
		}
		return "", err
	}
	return id, nil
}

func (s *Store) RemoveParticipant(ctx context.Context, trainingID, participantID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM training_participants WHERE id = $1 AND training_id = $2", participantID, trainingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (s *Store) ListMaterials(ctx context.Context, trainingID string) ([]Material, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, training_id, name, content_type, size, url, created_at
    FROM training_materials
    WHERE training_id = $1
    ORDER BY created_at
  `, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []Material
	for rows.Next() {
		var material Material
		if err := rows.Scan(&material.ID, &material.TrainingID, &material.Name, &material.ContentType, &material.Size, &material.URL, &material.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, rows.Err()
}

func (s *Store) InsertMaterial(ctx context.Context, material Material) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO training_materials (id, training_id, name, content_type, size, url)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, material.TrainingID, material.Name, material.ContentType, material.Size, material.URL)
	return id, err
}

func (s *Store) GetMaterial(ctx context.Context, trainingID, materialID string) (Material, error) {
	var material Material
	err := s.DB.QueryRow(ctx, `
    SELECT id, training_id, name, content_type, size, url, created_at
    FROM training_materials
    WHERE id = $1 AND training_id = $2
  `, materialID, trainingID).Scan(&material.ID, &material.TrainingID, &material.Name, &material.ContentType, &material.Size, &material.URL, &material.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, ErrMaterialNotFound
	}
	return material, err
}

func (s *Store) DeleteMaterial(ctx context.Context, trainingID, materialID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM training_materials WHERE id = $1 AND training_id = $2", materialID, trainingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
