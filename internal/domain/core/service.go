package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ascend/internal/platform/db"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CreateEmployee assigns a matricula and writes the employee together with
// its first history entry in one transaction.
func (s *Service) CreateEmployee(ctx context.Context, input NewEmployee) (Employee, error) {
	if exists, err := s.Store.EmployeeCPFExists(ctx, s.Store.DB, input.CPF); err != nil {
		return Employee{}, err
	} else if exists {
		return Employee{}, ErrDuplicateCPF
	}
	if exists, err := s.Store.EmployeeEmailExists(ctx, s.Store.DB, input.Email); err != nil {
		return Employee{}, err
	} else if exists {
		return Employee{}, ErrDuplicateEmail
	}

	id := uuid.NewString()
	err := db.WithTx(ctx, s.Store.DB, func(ctx context.Context, tx pgx.Tx) error {
		matricula, err := s.Store.NextMatricula(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.Store.InsertEmployee(ctx, tx, id, matricula, input); err != nil {
			return err
		}
		startDate := time.Now()
		if input.HireDate != nil {
			startDate = *input.HireDate
		}
		return s.Store.InsertHistory(ctx, tx, id, input.DepartmentID, input.PositionLevelID, input.ShiftID, startDate)
	})
	if err != nil {
		return Employee{}, err
	}
	return s.Store.GetEmployee(ctx, id)
}

// UpdateEmployee persists the edit and appends a history entry when the
// department, position level or shift assignment changed relative to the
// latest history row. Comparison is by foreign key, not display value.
func (s *Service) UpdateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	err := db.WithTx(ctx, s.Store.DB, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.Store.UpdateEmployee(ctx, tx, emp); err != nil {
			return err
		}
		latest, found, err := s.Store.LatestHistory(ctx, tx, emp.ID)
		if err != nil {
			return err
		}
		changed := !found ||
			latest.DepartmentID != emp.DepartmentID ||
			latest.PositionLevelID != emp.PositionLevelID ||
			latest.ShiftID != emp.ShiftID
		if !changed {
			return nil
		}
		return s.Store.InsertHistory(ctx, tx, emp.ID, emp.DepartmentID, emp.PositionLevelID, emp.ShiftID, time.Now())
	})
	if err != nil {
		return Employee{}, err
	}
	return s.Store.GetEmployee(ctx, emp.ID)
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.Store.DeleteEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, filter)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployeeHistory(ctx context.Context, employeeID string) ([]EmployeeHistory, error) {
	return s.Store.ListEmployeeHistory(ctx, employeeID)
}
