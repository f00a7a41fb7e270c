package bulkimport

import (
	"context"
	"time"

	"ascend/internal/domain/core"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/training"
)

// CareerEvent moves an employee to a new department/level/shift assignment,
// appending to the history trail.
type CareerEvent struct {
	EmployeeID      string
	DepartmentID    string
	PositionID      string
	PositionLevelID string
	ShiftID         string
	EffectiveDate   time.Time
}

// StoreAPI is everything the reconciler needs from the backing store. The
// Create* calls are atomic per row: either every write of the row lands or
// none does.
type StoreAPI interface {
	DepartmentIDByName(ctx context.Context, name string) (string, error)
	PositionIDByTitle(ctx context.Context, departmentID, title string) (string, error)
	PositionLevelIDByName(ctx context.Context, positionID, name string) (string, error)
	ShiftIDByName(ctx context.Context, name string) (string, error)
	LeaveCategoryIDByName(ctx context.Context, name string) (string, error)

	EmployeeIDByCPF(ctx context.Context, cpf string) (string, error)
	EmployeeCPFExists(ctx context.Context, cpf string) (bool, error)
	EmployeeEmailExists(ctx context.Context, email string) (bool, error)

	CreateEmployee(ctx context.Context, input core.NewEmployee) error
	CreateMedicalLeave(ctx context.Context, input medicalleave.NewMedicalLeave) error
	CreateTraining(ctx context.Context, input training.NewTraining, participantIDs []string) error
	RecordCareerEvent(ctx context.Context, event CareerEvent) error
}
