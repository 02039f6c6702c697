package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs

type FinancialEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	EntryDate   string          `json:"entry_date"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type FinancialEntryListResponse struct {
	Entries []FinancialEntryResponse `json:"entries"`
	Total   int64                    `json:"total"`
}

// FinancialReportResponse carries the capped entry list plus totals computed
// over the entire filtered period. TotalAmount always equals
// TotalPending + TotalPaid.
type FinancialReportResponse struct {
	Entries      []FinancialEntryResponse `json:"entries"`
	TotalEntries int                      `json:"total_entries"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	TotalPending decimal.Decimal          `json:"total_pending"`
	TotalPaid    decimal.Decimal          `json:"total_paid"`
	PeriodStart  string                   `json:"period_start"`
	PeriodEnd    string                   `json:"period_end"`
}
