package medicalleave

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx so inserts can join a
// bulk-import row transaction.
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

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM leave_categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO leave_categories (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *Store) CategoryIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM leave_categories WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrCategoryNotFound
	}
	return id, err
}

const leaveColumns = `id, employee_id, category_id, start_date, end_date, days, reason, cid, doctor, hospital, notes, status, created_at, updated_at`

func scanLeave(row pgx.Row) (MedicalLeave, error) {
	var leave MedicalLeave
	err := row.Scan(&leave.ID, &leave.EmployeeID, &leave.CategoryID, &leave.StartDate, &leave.EndDate, &leave.Days, &leave.Reason, &leave.CID, &leave.Doctor, &leave.Hospital, &leave.Notes, &leave.Status, &leave.CreatedAt, &leave.UpdatedAt)
	return leave, err
}

func (s *Store) ListLeaves(ctx context.Context, employeeID string) ([]MedicalLeave, error) {
	query := "SELECT " + leaveColumns + " FROM medical_leaves"
	args := []any{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY start_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []MedicalLeave
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}
	return leaves, rows.Err()
}

func (s *Store) GetLeave(ctx context.Context, id string) (MedicalLeave, error) {
	leave, err := scanLeave(s.DB.QueryRow(ctx, "SELECT "+leaveColumns+" FROM medical_leaves WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return MedicalLeave{}, ErrLeaveNotFound
	}
	if err != nil {
		return MedicalLeave{}, err
	}

	files, err := s.ListFiles(ctx, id)
	if err != nil {
		return MedicalLeave{}, err
	}
	leave.Files = files
	return leave, nil
}

func (s *Store) InsertLeave(ctx context.Context, q Querier, id string, input NewMedicalLeave, days int) error {
	_, err := q.Exec(ctx, `
    INSERT INTO medical_leaves (id, employee_id, category_id, start_date, end_date, days, reason, cid, doctor, hospital, notes, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
  `, id, input.EmployeeID, input.CategoryID, input.StartDate, input.EndDate, days, input.Reason, input.CID, input.Doctor, input.Hospital, input.Notes, input.Status)
	return err
}

func (s *Store) UpdateLeave(ctx context.Context, leave MedicalLeave) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE medical_leaves
    SET category_id = $2, start_date = $3, end_date = $4, days = $5, reason = $6, cid = $7, doctor = $8, hospital = $9, notes = $10, status = $11, updated_at = now()
    WHERE id = $1
  `, leave.ID, leave.CategoryID, leave.StartDate, leave.EndDate, leave.Days, leave.Reason, leave.CID, leave.Doctor, leave.Hospital, leave.Notes, leave.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLeaveNotFound
	}
	return nil
}

func (s *Store) DeleteLeave(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM medical_leaves WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLeaveNotFound
	}
	return nil
}

func (s *Store) ListFiles(ctx context.Context, leaveID string) ([]File, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, leave_id, name, content_type, size, url, created_at
    FROM medical_leave_files
    WHERE leave_id = $1
    ORDER BY created_at
  `, leaveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var file File
		if err := rows.Scan(&file.ID, &file.LeaveID, &file.Name, &file.ContentType, &file.Size, &file.URL, &file.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (s *Store) InsertFile(ctx context.Context, file File) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO medical_leave_files (id, leave_id, name, content_type, size, url)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, id, file.LeaveID, file.Name, file.ContentType, file.Size, file.URL)
	return id, err
}

func (s *Store) GetFile(ctx context.Context, leaveID, fileID string) (File, error) {
	var file File
	err := s.DB.QueryRow(ctx, `
    SELECT id, leave_id, name, content_type, size, url, created_at
    FROM medical_leave_files
    WHERE id = $1 AND leave_id = $2
  `, fileID, leaveID).Scan(&file.ID, &file.LeaveID, &file.Name, &file.ContentType, &file.Size, &file.URL, &file.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, ErrFileNotFound
	}
	return file, err
}

func (s *Store) DeleteFile(ctx context.Context, leaveID, fileID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM medical_leave_files WHERE id = $1 AND leave_id = $2", fileID, leaveID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFileNotFound
	}
	return nil
}
