package leave

import (
	"errors"
	"testing"
	"time"
)

func TestCountBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"monday to friday", NewDate(2025, time.March, 3), NewDate(2025, time.March, 7), 5},
		{"full calendar week mon-sun", NewDate(2025, time.March, 3), NewDate(2025, time.March, 9), 5},
		{"single weekday", NewDate(2025, time.March, 5), NewDate(2025, time.March, 5), 1},
		{"single saturday", NewDate(2025, time.March, 8), NewDate(2025, time.March, 8), 0},
		{"weekend only", NewDate(2025, time.March, 8), NewDate(2025, time.March, 9), 0},
		{"two full weeks", NewDate(2025, time.March, 3), NewDate(2025, time.March, 16), 10},
		{"friday to monday", NewDate(2025, time.March, 7), NewDate(2025, time.March, 10), 2},
		{"spans month boundary", NewDate(2025, time.February, 27), NewDate(2025, time.March, 4), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountBusinessDays(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountBusinessDays(%s, %s) = %d, want %d",
					tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestCountBusinessDays_EndBeforeStart(t *testing.T) {
	_, err := CountBusinessDays(NewDate(2025, time.March, 7), NewDate(2025, time.March, 3))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestCountBusinessDays_IgnoresTimeOfDay(t *testing.T) {
	// Late-evening start and early-morning end on the same dates must not
	// change the inclusive count.
	start := time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 7, 1, 0, 0, 0, time.UTC)

	got, err := CountBusinessDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5 business days, got %d", got)
	}
}

func TestIsBusinessDay(t *testing.T) {
	if IsBusinessDay(NewDate(2025, time.March, 8)) {
		t.Error("saturday should not be a business day")
	}
	if IsBusinessDay(NewDate(2025, time.March, 9)) {
		t.Error("sunday should not be a business day")
	}
	if !IsBusinessDay(NewDate(2025, time.March, 10)) {
		t.Error("monday should be a business day")
	}
}
