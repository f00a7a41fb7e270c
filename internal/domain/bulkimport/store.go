package bulkimport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ascend/internal/domain/core"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/training"
	"ascend/internal/platform/db"
)

// Store implements StoreAPI against Postgres by composing the domain stores.
type Store struct {
	pool      *pgxpool.Pool
	core      *core.Store
	leaves    *medicalleave.Store
	trainings *training.Store
}

func NewStore(pool *pgxpool.Pool, coreStore *core.Store, leaveStore *medicalleave.Store, trainingStore *training.Store) *Store {
	return &Store{pool: pool, core: coreStore, leaves: leaveStore, trainings: trainingStore}
}

func (s *Store) DepartmentIDByName(ctx context.Context, name string) (string, error) {
	return s.core.DepartmentIDByName(ctx, s.pool, name)
}

func (s *Store) PositionIDByTitle(ctx context.Context, departmentID, title string) (string, error) {
	return s.core.PositionIDByTitle(ctx, s.pool, departmentID, title)
}

func (s *Store) PositionLevelIDByName(ctx context.Context, positionID, name string) (string, error) {
	return s.core.PositionLevelIDByName(ctx, s.pool, positionID, name)
}

func (s *Store) ShiftIDByName(ctx context.Context, name string) (string, error) {
	return s.core.ShiftIDByName(ctx, s.pool, name)
}

func (s *Store) LeaveCategoryIDByName(ctx context.Context, name string) (string, error) {
	return s.leaves.CategoryIDByName(ctx, name)
}

func (s *Store) EmployeeIDByCPF(ctx context.Context, cpf string) (string, error) {
	return s.core.EmployeeIDByCPF(ctx, s.pool, cpf)
}

func (s *Store) EmployeeCPFExists(ctx context.Context, cpf string) (bool, error) {
	return s.core.EmployeeCPFExists(ctx, s.pool, cpf)
}

func (s *Store) EmployeeEmailExists(ctx context.Context, email string) (bool, error) {
	return s.core.EmployeeEmailExists(ctx, s.pool, email)
}

// CreateEmployee writes matricula, employee and first history row in one
// transaction so a mid-row failure leaves nothing behind.
func (s *Store) CreateEmployee(ctx context.Context, input core.NewEmployee) error {
	return db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		matricula, err := s.core.NextMatricula(ctx, tx)
		if err != nil {
			return err
		}
		id := uuid.NewString()
		if err := s.core.InsertEmployee(ctx, tx, id, matricula, input); err != nil {
			return err
		}
		startDate := time.Now()
		if input.HireDate != nil {
			startDate = *input.HireDate
		}
		return s.core.InsertHistory(ctx, tx, id, input.DepartmentID, input.PositionLevelID, input.ShiftID, startDate)
	})
}

func (s *Store) CreateMedicalLeave(ctx context.Context, input medicalleave.NewMedicalLeave) error {
	days, err := medicalleave.LeaveDays(input.StartDate, input.EndDate)
	if err != nil {
		return err
	}
	if input.Status == "" {
		input.Status = medicalleave.StatusAfastado
	}
	return s.leaves.InsertLeave(ctx, s.pool, uuid.NewString(), input, days)
}

// CreateTraining writes the training and its participant enrollments in one
// transaction; an unenrollable participant fails the whole row.
func (s *Store) CreateTraining(ctx context.Context, input training.NewTraining, participantIDs []string) error {
	if input.Status == "" {
		input.Status = training.StatusPlanejado
	}
	if input.Source == "" {
		input.Source = training.SourceInternal
	}
	return db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		id := uuid.NewString()
		if err := s.trainings.InsertTraining(ctx, tx, id, input); err != nil {
			return err
		}
		for _, employeeID := range participantIDs {
			if _, err := s.trainings.AddParticipant(ctx, tx, id, employeeID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) RecordCareerEvent(ctx context.Context, event CareerEvent) error {
	return db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
      UPDATE employees
      SET department_id = $2, position_id = $3, position_level_id = $4, shift_id = $5, updated_at = now()
      WHERE id = $1
    `, event.EmployeeID, event.DepartmentID, event.PositionID, event.PositionLevelID, event.ShiftID); err != nil {
			return err
		}
		return s.core.InsertHistory(ctx, tx, event.EmployeeID, event.DepartmentID, event.PositionLevelID, event.ShiftID, event.EffectiveDate)
	})
}
