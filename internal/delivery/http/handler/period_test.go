package handler

import (
	"net/http/httptest"
	"testing"
)

func TestParsePeriodQuery(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"valid", "/report?start_date=2026-01-01&end_date=2026-01-31", false},
		{"missing start", "/report?end_date=2026-01-31", true},
		{"missing end", "/report?start_date=2026-01-01", true},
		{"missing both", "/report", true},
		{"bad start format", "/report?start_date=01-01-2026&end_date=2026-01-31", true},
		{"bad end format", "/report?start_date=2026-01-01&end_date=31/01/2026", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			start, end, err := parsePeriodQuery(req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start.Format("2006-01-02") != "2026-01-01" || end.Format("2006-01-02") != "2026-01-31" {
				t.Errorf("parsed period = (%s, %s)", start, end)
			}
		})
	}
}
