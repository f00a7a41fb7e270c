package medicalleave

import "errors"

var (
	ErrLeaveNotFound    = errors.New("medical leave not found")
	ErrCategoryNotFound = errors.New("leave category not found")
	ErrFileNotFound     = errors.New("leave file not found")
)
