package medicalleave

import (
	"errors"
	"time"
)

// LeaveDays returns the inclusive day count between start and end.
func LeaveDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	start = truncateDay(start)
	end = truncateDay(end)
	return int(end.Sub(start).Hours()/24) + 1, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
