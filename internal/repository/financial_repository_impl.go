package repository

import (
	"context"
	"errors"
	"time"

	"go-practice-management/internal/domain/entity"
	domainRepo "go-practice-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type financialEntryRepository struct {
	db *gorm.DB
}

func NewFinancialEntryRepository(db *gorm.DB) domainRepo.FinancialEntryRepository {
	return &financialEntryRepository{db: db}
}

func (r *financialEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FinancialEntry, error) {
	var entry entity.FinancialEntry
	err := r.db.WithContext(ctx).Preload("Patient").Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *financialEntryRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entity.FinancialEntry, error) {
	var entry entity.FinancialEntry
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *financialEntryRepository) FindByPeriod(ctx context.Context, start, end time.Time, statuses []entity.EntryStatus) ([]entity.FinancialEntry, error) {
	query := r.db.WithContext(ctx).
		Where("entry_date >= ? AND entry_date <= ?", start, end)

	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var entries []entity.FinancialEntry
	if err := query.Order("entry_date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *financialEntryRepository) FindAll(ctx context.Context, filter entity.EntryFilter) ([]entity.FinancialEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.FinancialEntry{})

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
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

	var entries []entity.FinancialEntry
	if err := query.Order("entry_date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// UpdateStatus flips payment status only when the entry is still in the
// expected state, so double-pay requests update zero rows instead of
// clobbering paid_at.
func (r *financialEntryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.EntryStatus, paidAt *time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.FinancialEntry{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":  to,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}
