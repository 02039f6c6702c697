package usecase

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"normal range", date(2026, 1, 1), date(2026, 1, 31), nil},
		{"single day", date(2026, 6, 15), date(2026, 6, 15), nil},
		{"exactly 365 days", date(2025, 1, 1), date(2026, 1, 1), nil},
		{"one day over", date(2025, 1, 1), date(2026, 1, 2), ErrPeriodTooLarge},
		{"start after end", date(2026, 2, 1), date(2026, 1, 1), ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ValidatePeriod(tt.start, tt.end, DefaultMaxPeriodDays)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidatePeriod() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Errorf("ValidatePeriod() = (%s, %s), want input echoed back", start, end)
			}
		})
	}
}

func TestValidatePeriodIdempotent(t *testing.T) {
	start, end, err := ValidatePeriod(date(2026, 1, 1), date(2026, 12, 31), DefaultMaxPeriodDays)
	if err != nil {
		t.Fatalf("first validation failed: %v", err)
	}

	start2, end2, err := ValidatePeriod(start, end, DefaultMaxPeriodDays)
	if err != nil {
		t.Fatalf("re-validation failed: %v", err)
	}
	if !start2.Equal(start) || !end2.Equal(end) {
		t.Errorf("re-validation changed the period: (%s, %s) -> (%s, %s)", start, end, start2, end2)
	}
}
