package repository

import (
	"context"
	"errors"

	"go-practice-management/internal/domain/entity"
	domainRepo "go-practice-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, filter entity.PatientFilter) ([]entity.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Patient{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
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

	var patients []entity.Patient
	if err := query.Order("name ASC").Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Counts(ctx context.Context) (domainRepo.PatientCounts, error) {
	var counts domainRepo.PatientCounts

	if err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Patient{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return counts, err
	}
	counts.Inactive = counts.Total - counts.Active
	return counts, nil
}
