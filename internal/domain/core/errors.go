package core

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrPositionNotFound      = errors.New("position not found")
	ErrPositionLevelNotFound = errors.New("position level not found")
	ErrShiftNotFound         = errors.New("shift not found")
	ErrDuplicateCPF          = errors.New("cpf already registered")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateMatricula    = errors.New("matricula already registered")
)
