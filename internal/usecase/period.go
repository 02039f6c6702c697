package usecase

import (
	"errors"
	"time"
)

// DefaultMaxPeriodDays is the business cap on any reporting period.
const DefaultMaxPeriodDays = 365

var (
	ErrInvalidPeriod  = errors.New("start date cannot be after end date")
	ErrPeriodTooLarge = errors.New("period cannot exceed the maximum span")
)

// ValidatePeriod checks an inclusive [start, end] date range and echoes it
// back unchanged. It is the single source of truth for the one-year rule
// shared by the financial report and the dashboard, and is idempotent:
// re-validating its own output yields the same pair.
func ValidatePeriod(start, end time.Time, maxSpanDays int) (time.Time, time.Time, error) {
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if end.Sub(start) > time.Duration(maxSpanDays)*24*time.Hour {
		return time.Time{}, time.Time{}, ErrPeriodTooLarge
	}
	return start, end, nil
}
