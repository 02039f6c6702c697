package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	BirthDate string `json:"birth_date" validate:"omitempty"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdatePatientRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	BirthDate string `json:"birth_date" validate:"omitempty"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type PatientResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
}

// PatientSummaryResponse aggregates a single patient's history.
type PatientSummaryResponse struct {
	Patient           PatientResponse `json:"patient"`
	TotalSessions     int64           `json:"total_sessions"`
	CompletedSessions int64           `json:"completed_sessions"`
	CancelledSessions int64           `json:"cancelled_sessions"`
	NoShowSessions    int64           `json:"no_show_sessions"`
	TotalBilled       decimal.Decimal `json:"total_billed"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalPending      decimal.Decimal `json:"total_pending"`
}
