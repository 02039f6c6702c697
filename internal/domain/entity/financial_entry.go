package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the payment status of a financial entry
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "pending"
	EntryStatusPaid    EntryStatus = "paid"
)

// Valid reports whether s is a known entry status.
func (s EntryStatus) Valid() bool {
	return s == EntryStatusPending || s == EntryStatusPaid
}

// FinancialEntry is the billing record derived from a completed session.
// At most one entry ever exists per session (unique index on session_id);
// the amount is frozen at creation and never recomputed from the session.
type FinancialEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"session_id"`
	PatientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	EntryDate   time.Time       `gorm:"type:date;not null;index" json:"entry_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      EntryStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Description string          `gorm:"type:varchar(500)" json:"description,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (FinancialEntry) TableName() string {
	return "financial_entries"
}

// NewEntryFromSession builds the pending entry created when a session
// completes. The amount is the session price at this moment.
func NewEntryFromSession(session *Session) *FinancialEntry {
	return &FinancialEntry{
		SessionID:   session.ID,
		PatientID:   session.PatientID,
		EntryDate:   session.DateTime,
		Amount:      session.Price,
		Status:      EntryStatusPending,
		Description: fmt.Sprintf("Session on %s", session.DateTime.Format("2006-01-02 15:04")),
	}
}

// IsPending checks if the entry is awaiting payment
func (e *FinancialEntry) IsPending() bool {
	return e.Status == EntryStatusPending
}

// IsPaid checks if the entry has been paid
func (e *FinancialEntry) IsPaid() bool {
	return e.Status == EntryStatusPaid
}
