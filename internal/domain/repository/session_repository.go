package repository

import (
	"context"
	"errors"
	"time"

	"go-practice-management/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrStaleSession is returned by ApplyTransition when the session's
	// status in the store no longer matches the expected previous status,
	// i.e. a concurrent transition won the race.
	ErrStaleSession = errors.New("session status changed concurrently")

	// ErrEntryExists is returned by ApplyTransition when the session
	// already has a financial entry. The unique index on
	// financial_entries.session_id enforces this at the store boundary.
	ErrEntryExists = errors.New("financial entry already exists for session")
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, int64, error)
	// FindScheduledBetween returns sessions still in scheduled state whose
	// timestamp falls within [from, to), capped at limit.
	FindScheduledBetween(ctx context.Context, from, to time.Time, limit int) ([]entity.Session, error)
	// FindRecent returns the most recently dated sessions ordered by
	// timestamp descending, ties broken by id for determinism.
	FindRecent(ctx context.Context, limit int) ([]entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	// ApplyTransition persists the status change and, when entry is
	// non-nil, the financial entry in a single transaction. The status
	// write is conditional on the session still being in `from`; both
	// writes succeed or neither does.
	ApplyTransition(ctx context.Context, session *entity.Session, from entity.SessionStatus, entry *entity.FinancialEntry) error
}
