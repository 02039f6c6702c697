package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusNoShow    SessionStatus = "no_show"

	// DefaultSessionDuration is applied when a session is scheduled without
	// an explicit duration.
	DefaultSessionDuration = 50

	// MaxSessionDuration caps a single session at 8 hours.
	MaxSessionDuration = 480

	// MaxSessionNotesLength caps free-text notes.
	MaxSessionNotesLength = 2000
)

// MaxSessionPrice caps the price of a single session.
var MaxSessionPrice = decimal.NewFromInt(10000)

// sessionTransitions is the full legality table keyed by
// (current status, requested status). Scheduled is the only state with
// outgoing edges; completed, cancelled and no_show are terminal.
var sessionTransitions = map[SessionStatus]map[SessionStatus]bool{
	SessionStatusScheduled: {
		SessionStatusCompleted: true,
		SessionStatusCancelled: true,
		SessionStatusNoShow:    true,
	},
}

// Valid reports whether s is one of the four known statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s SessionStatus) IsTerminal() bool {
	return s.Valid() && len(sessionTransitions[s]) == 0
}

// CanTransition consults the transition table. Same-state requests are
// illegal like any other edge missing from the table.
func CanTransition(from, to SessionStatus) bool {
	return sessionTransitions[from][to]
}

// Session represents a single appointment with a patient
type Session struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DateTime        time.Time       `gorm:"not null;index" json:"date_time"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:50" json:"duration_minutes"`
	Status          SessionStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// IsScheduled checks if the session is still in its initial state
func (s *Session) IsScheduled() bool {
	return s.Status == SessionStatusScheduled
}

// IsCompleted checks if the session was completed
func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// CanTransitionTo reports whether the session may move to the target status.
func (s *Session) CanTransitionTo(target SessionStatus) bool {
	return CanTransition(s.Status, target)
}

// Editable reports whether non-status fields may still be changed.
// Sessions in a terminal state are frozen.
func (s *Session) Editable() bool {
	return !s.Status.IsTerminal()
}
