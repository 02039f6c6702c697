package handler

import (
	"errors"
	"net/http"
	"time"
)

var errMissingPeriod = errors.New("start_date and end_date are required, use YYYY-MM-DD")

// parsePeriodQuery reads the start_date/end_date query parameters shared by
// the financial report and dashboard endpoints. Range validation itself
// belongs to the usecases; this only parses.
func parsePeriodQuery(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	rawStart := query.Get("start_date")
	rawEnd := query.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, errMissingPeriod
	}

	start, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start_date, use YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end_date, use YYYY-MM-DD")
	}
	return start, end, nil
}
