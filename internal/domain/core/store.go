package core

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx so store methods can
// run standalone or inside a per-row import transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const employeeColumns = `id, matricula, name, cpf, email, phone, address, birth_date, hire_date, termination_date, active, department_id, position_id, position_level_id, shift_id, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.Matricula, &emp.Name, &emp.CPF, &emp.Email, &emp.Phone, &emp.Address, &emp.BirthDate, &emp.HireDate, &emp.TerminationDate, &emp.Active, &emp.DepartmentID, &emp.PositionID, &emp.PositionLevelID, &emp.ShiftID, &emp.CreatedAt, &emp.UpdatedAt)
	return emp, err
}

type EmployeeFilter struct {
	DepartmentID string
	Active       *bool
	Search       string
	Limit        int
	Offset       int
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE 1=1"
	args := []any{}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		query += " AND department_id = $" + strconv.Itoa(len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += " AND active = $" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := strconv.Itoa(len(args))
		query += " AND (LOWER(name) LIKE $" + n + " OR cpf LIKE $" + n + " OR LOWER(matricula) LIKE $" + n + ")"
	}
	query += " ORDER BY name"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) EmployeeIDByCPF(ctx context.Context, q Querier, cpf string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM employees WHERE cpf = $1", cpf).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeNotFound
	}
	return id, err
}

func (s *Store) EmployeeEmailExists(ctx context.Context, q Querier, email string) (bool, error) {
	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE LOWER(email) = LOWER($1)", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) EmployeeCPFExists(ctx context.Context, q Querier, cpf string) (bool, error) {
	var count int
	if err := q.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE cpf = $1", cpf).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertEmployee writes the row and maps unique-constraint violations to the
// matching sentinel so concurrent duplicates surface as row failures.
func (s *Store) InsertEmployee(ctx context.Context, q Querier, id, matricula string, input NewEmployee) error {
	_, err := q.Exec(ctx, `
    INSERT INTO employees (id, matricula, name, cpf, email, phone, address, birth_date, hire_date, active, department_id, position_id, position_level_id, shift_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10, $11, $12, $13)
  `, id, matricula, input.Name, input.CPF, input.Email, input.Phone, input.Address, input.BirthDate, input.HireDate, input.DepartmentID, input.PositionID, input.PositionLevelID, input.ShiftID)
	return mapUniqueViolation(err)
}

func (s *Store) UpdateEmployee(ctx context.Context, q Querier, emp Employee) error {
	tag, err := q.Exec(ctx, `
    UPDATE employees
    SET name = $2, cpf = $3, email = $4, phone = $5, address = $6, birth_date = $7, hire_date = $8, termination_date = $9, active = $10, department_id = $11, position_id = $12, position_level_id = $13, shift_id = $14, updated_at = now()
    WHERE id = $1
  `, emp.ID, emp.Name, emp.CPF, emp.Email, emp.Phone, emp.Address, emp.BirthDate, emp.HireDate, emp.TerminationDate, emp.Active, emp.DepartmentID, emp.PositionID, emp.PositionLevelID, emp.ShiftID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "cpf"):
			return ErrDuplicateCPF
		case strings.Contains(pgErr.ConstraintName, "email"):
			return ErrDuplicateEmail
		case strings.Contains(pgErr.ConstraintName, "matricula"):
			return ErrDuplicateMatricula
		}
	}
	return err
}

