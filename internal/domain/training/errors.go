package training

import "errors"

var (
	ErrTrainingNotFound    = errors.New("training not found")
	ErrParticipantNotFound = errors.New("training participant not found")
	ErrMaterialNotFound    = errors.New("training material not found")
	ErrAlreadyParticipant  = errors.New("employee already enrolled in training")
)
