package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) ListEmployeeHistory(ctx context.Context, employeeID string) ([]EmployeeHistory, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, department_id, position_level_id, shift_id, start_date, created_at
    FROM employee_history
    WHERE employee_id = $1
    ORDER BY start_date DESC, created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []EmployeeHistory
	for rows.Next() {
		var entry EmployeeHistory
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.DepartmentID, &entry.PositionLevelID, &entry.ShiftID, &entry.StartDate, &entry.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// LatestHistory returns the most recent assignment entry, or false when the
// employee has none yet.
func (s *Store) LatestHistory(ctx context.Context, q Querier, employeeID string) (EmployeeHistory, bool, error) {
	var entry EmployeeHistory
	err := q.QueryRow(ctx, `
    SELECT id, employee_id, department_id, position_level_id, shift_id, start_date, created_at
    FROM employee_history
    WHERE employee_id = $1
    ORDER BY start_date DESC, created_at DESC
    LIMIT 1
  `, employeeID).Scan(&entry.ID, &entry.EmployeeID, &entry.DepartmentID, &entry.PositionLevelID, &entry.ShiftID, &entry.StartDate, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeHistory{}, false, nil
	}
	if err != nil {
		return EmployeeHistory{}, false, err
	}
	return entry, true, nil
}

func (s *Store) InsertHistory(ctx context.Context, q Querier, employeeID, departmentID, positionLevelID, shiftID string, startDate time.Time) error {
	_, err := q.Exec(ctx, `
    INSERT INTO employee_history (id, employee_id, department_id, position_level_id, shift_id, start_date)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, uuid.NewString(), employeeID, departmentID, positionLevelID, shiftID, startDate)
	return err
}
