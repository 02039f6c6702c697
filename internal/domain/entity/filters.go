package entity

import "time"

// SessionFilter is a domain-level filter for querying sessions.
// Used by the repository layer to avoid coupling with delivery DTOs.
type SessionFilter struct {
	PatientID *string
	Status    *SessionStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// EntryFilter is a domain-level filter for querying financial entries.
type EntryFilter struct {
	PatientID *string
	Statuses  []EntryStatus
	Limit     int
	Offset    int
}

// PatientFilter is a domain-level filter for querying patients.
type PatientFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}
