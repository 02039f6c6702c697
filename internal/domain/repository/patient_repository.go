package repository

import (
	"context"

	"go-practice-management/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientCounts holds the aggregate counts shown on the dashboard.
type PatientCounts struct {
	Total    int64
	Active   int64
	Inactive int64
}

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindAll(ctx context.Context, filter entity.PatientFilter) ([]entity.Patient, int64, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Counts(ctx context.Context) (PatientCounts, error)
}
