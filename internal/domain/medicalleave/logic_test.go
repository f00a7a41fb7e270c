package medicalleave

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveDaysInclusive(t *testing.T) {
	days, err := LeaveDays(day(2024, 3, 1), day(2024, 3, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %d", days)
	}
}

func TestLeaveDaysSameDay(t *testing.T) {
	days, err := LeaveDays(day(2024, 3, 1), day(2024, 3, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
}

func TestLeaveDaysRejectsInvertedRange(t *testing.T) {
	if _, err := LeaveDays(day(2024, 3, 5), day(2024, 3, 1)); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestLeaveDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)
	days, err := LeaveDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 2 {
		t.Fatalf("expected 2 days, got %d", days)
	}
}
