package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *Store) UpdateDepartment(ctx context.Context, id, name string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE departments SET name = $2 WHERE id = $1", id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// DepartmentIDByName matches the exact stored name; imports resolve display
// strings through it.
func (s *Store) DepartmentIDByName(ctx context.Context, q Querier, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrDepartmentNotFound
	}
	return id, err
}

func (s *Store) ListPositions(ctx context.Context, departmentID string) ([]Position, error) {
	query := "SELECT id, department_id, title, created_at FROM positions"
	args := []any{}
	if departmentID != "" {
		query += " WHERE department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY title"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(&pos.ID, &pos.DepartmentID, &pos.Title, &pos.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

func (s *Store) CreatePosition(ctx context.Context, departmentID, title string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO positions (department_id, title) VALUES ($1, $2) RETURNING id", departmentID, title).Scan(&id)
	return id, err
}

func (s *Store) UpdatePosition(ctx context.Context, id, title string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE positions SET title = $2 WHERE id = $1", id, title)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (s *Store) DeletePosition(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (s *Store) PositionIDByTitle(ctx context.Context, q Querier, departmentID, title string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM positions WHERE department_id = $1 AND title = $2", departmentID, title).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPositionNotFound
	}
	return id, err
}

func (s *Store) ListPositionLevels(ctx context.Context, positionID string) ([]PositionLevel, error) {
	query := "SELECT id, position_id, name, created_at FROM position_levels"
	args := []any{}
	if positionID != "" {
		query += " WHERE position_id = $1"
		args = append(args, positionID)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []PositionLevel
	for rows.Next() {
		var level PositionLevel
		if err := rows.Scan(&level.ID, &level.PositionID, &level.Name, &level.CreatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

func (s *Store) CreatePositionLevel(ctx context.Context, positionID, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO position_levels (position_id, name) VALUES ($1, $2) RETURNING id", positionID, name).Scan(&id)
	return id, err
}

func (s *Store) UpdatePositionLevel(ctx context.Context, id, name string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE position_levels SET name = $2 WHERE id = $1", id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPositionLevelNotFound
	}
	return nil
}

func (s *Store) DeletePositionLevel(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM position_levels WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPositionLevelNotFound
	}
	return nil
}

func (s *Store) PositionLevelIDByName(ctx context.Context, q Querier, positionID, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM position_levels WHERE position_id = $1 AND name = $2", positionID, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPositionLevelNotFound
	}
	return id, err
}

func (s *Store) ListShifts(ctx context.Context) ([]Shift, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM shifts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var shift Shift
		if err := rows.Scan(&shift.ID, &shift.Name, &shift.CreatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func (s *Store) CreateShift(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO shifts (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *Store) UpdateShift(ctx context.Context, id, name string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE shifts SET name = $2 WHERE id = $1", id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM shifts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func (s *Store) ShiftIDByName(ctx context.Context, q Querier, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM shifts WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrShiftNotFound
	}
	return id, err
}
