package repository

import (
	"context"
	"time"

	"go-practice-management/internal/domain/entity"

	"github.com/google/uuid"
)

type FinancialEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FinancialEntry, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.FinancialEntry, error)
	// FindByPeriod returns every entry whose entry_date falls within
	// [start, end], optionally restricted to the given statuses, ordered by
	// entry_date ascending. The caller owns any list capping; report totals
	// are computed over the full result.
	FindByPeriod(ctx context.Context, start, end time.Time, statuses []entity.EntryStatus) ([]entity.FinancialEntry, error)
	FindAll(ctx context.Context, filter entity.EntryFilter) ([]entity.FinancialEntry, int64, error)
	// UpdateStatus flips the payment status, recording or clearing paid_at.
	// Returns the number of rows affected so callers can detect races.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.EntryStatus, paidAt *time.Time) (int64, error)
}
