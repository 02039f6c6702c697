package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-practice-management/internal/domain/entity"
	domainRepo "go-practice-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).Preload("Patient").Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Session{})

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("date_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date_time < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var sessions []entity.Session
	err := query.Preload("Patient").Order("date_time DESC, id DESC").Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) FindScheduledBetween(ctx context.Context, from, to time.Time, limit int) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("status = ?", entity.SessionStatusScheduled).
		Where("date_time >= ? AND date_time < ?", from, to).
		Order("date_time ASC, id ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindRecent(ctx context.Context, limit int) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Order("date_time DESC, id DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// ApplyTransition writes the new status and, for completions, the financial
// entry in one transaction. The conditional WHERE on the previous status makes
// concurrent duplicate transitions lose deterministically: the loser updates
// zero rows and the whole transaction rolls back, leaving the session and the
// entries table untouched.
func (r *sessionRepository) ApplyTransition(ctx context.Context, session *entity.Session, from entity.SessionStatus, entry *entity.FinancialEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     session.Status,
			"updated_at": time.Now().UTC(),
		}
		if session.Notes != "" {
			updates["notes"] = session.Notes
		}

		result := tx.Model(&entity.Session{}).
			Where("id = ? AND status = ?", session.ID, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrStaleSession
		}

		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				if isUniqueViolation(err, "session_id") {
					return domainRepo.ErrEntryExists
				}
				return err
			}
		}
		return nil
	})
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
