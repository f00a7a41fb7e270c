package core

import "time"

type Employee struct {
	ID              string     `json:"id"`
	Matricula       string     `json:"matricula"`
	Name            string     `json:"name"`
	CPF             string     `json:"cpf"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Address         string     `json:"address"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	HireDate        *time.Time `json:"hireDate,omitempty"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`
	Active          bool       `json:"active"`
	DepartmentID    string     `json:"departmentId"`
	PositionID      string     `json:"positionId"`
	PositionLevelID string     `json:"positionLevelId"`
	ShiftID         string     `json:"shiftId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// EmployeeHistory is append-only: one row per department/level/shift
// assignment, dated from the day the assignment took effect.
type EmployeeHistory struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	DepartmentID    string    `json:"departmentId"`
	PositionLevelID string    `json:"positionLevelId"`
	ShiftID         string    `json:"shiftId"`
	StartDate       time.Time `json:"startDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Position struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"departmentId"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PositionLevel struct {
	ID         string    `json:"id"`
	PositionID string    `json:"positionId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Shift struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEmployee carries the fields accepted on create; matricula is assigned
// by the store, never by the caller.
type NewEmployee struct {
	Name            string
	CPF             string
	Email           string
	Phone           string
	Address         string
	BirthDate       *time.Time
	HireDate        *time.Time
	DepartmentID    string
	PositionID      string
	PositionLevelID string
	ShiftID         string
}
