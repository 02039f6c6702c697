package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ScheduleSessionRequest struct {
	PatientID       uuid.UUID       `json:"patient_id" validate:"required"`
	DateTime        time.Time       `json:"date_time" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,gt=0,lte=480"`
	Notes           string          `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateSessionRequest struct {
	DateTime        *time.Time       `json:"date_time"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,gt=0,lte=480"`
	Notes           *string          `json:"notes" validate:"omitempty,max=2000"`
}

type TransitionSessionRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"omitempty,max=2000"`
}

// Response DTOs

type SessionResponse struct {
	ID              uuid.UUID       `json:"id"`
	PatientID       uuid.UUID       `json:"patient_id"`
	PatientName     string          `json:"patient_name,omitempty"`
	DateTime        time.Time       `json:"date_time"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
}

// TransitionResponse reports the outcome of a status change, including the
// billing entry created when the session completed.
type TransitionResponse struct {
	SessionID      uuid.UUID        `json:"session_id"`
	PreviousStatus string           `json:"previous_status"`
	NewStatus      string           `json:"new_status"`
	EntryCreated   bool             `json:"entry_created"`
	EntryID        *uuid.UUID       `json:"entry_id,omitempty"`
	EntryAmount    *decimal.Decimal `json:"entry_amount,omitempty"`
}
