package usecase

import (
	"context"
	"errors"
	"time"

	"go-practice-management/internal/converter"
	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/domain/repository"
	"go-practice-management/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrPatientInactive  = errors.New("patient is already inactive")
	ErrInvalidBirthDate = errors.New("invalid birth date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, filter entity.PatientFilter) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeactivatePatient(ctx context.Context, patientID uuid.UUID) error
	GetPatientSummary(ctx context.Context, patientID uuid.UUID) (*dto.PatientSummaryResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	sessionRepo  repository.SessionRepository
	entryRepo    repository.FinancialEntryRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	sessionRepo repository.SessionRepository,
	entryRepo repository.FinancialEntryRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		sessionRepo:  sessionRepo,
		entryRepo:    entryRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Notes:     req.Notes,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionPatientCreate, entity.JSON{
		"patient_id": patient.ID.String(),
	})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, filter entity.PatientFilter) (*dto.PatientListResponse, error) {
	patients, total, err := u.patientRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    total,
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	patient.Name = req.Name
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.BirthDate = birthDate
	patient.Notes = req.Notes

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionPatientUpdate, entity.JSON{
		"patient_id": patient.ID.String(),
	})

	return converter.PatientToResponse(patient), nil
}

// DeactivatePatient soft-deletes. The record and its history stay.
func (u *patientUsecase) DeactivatePatient(ctx context.Context, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	if !patient.Active() {
		return ErrPatientInactive
	}

	patient.Deactivate()
	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to deactivate patient %s: %+v", patientID, err)
		return err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionPatientDeactivate, entity.JSON{
		"patient_id": patient.ID.String(),
	})

	return nil
}

// GetPatientSummary aggregates a patient's session history and billing
// totals.
func (u *patientUsecase) GetPatientSummary(ctx context.Context, patientID uuid.UUID) (*dto.PatientSummaryResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	idStr := patientID.String()
	sessions, total, err := u.sessionRepo.FindAll(ctx, entity.SessionFilter{PatientID: &idStr})
	if err != nil {
		u.log.Warnf("Failed to list sessions for patient %s: %+v", patientID, err)
		return nil, err
	}

	summary := &dto.PatientSummaryResponse{
		Patient:       *converter.PatientToResponse(patient),
		TotalSessions: total,
		TotalBilled:   decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalPending:  decimal.Zero,
	}
	for _, session := range sessions {
		switch session.Status {
		case entity.SessionStatusCompleted:
			summary.CompletedSessions++
		case entity.SessionStatusCancelled:
			summary.CancelledSessions++
		case entity.SessionStatusNoShow:
			summary.NoShowSessions++
		}
	}

	entries, _, err := u.entryRepo.FindAll(ctx, entity.EntryFilter{PatientID: &idStr})
	if err != nil {
		u.log.Warnf("Failed to list entries for patient %s: %+v", patientID, err)
		return nil, err
	}
	for _, entry := range entries {
		summary.TotalBilled = summary.TotalBilled.Add(entry.Amount)
		if entry.IsPaid() {
			summary.TotalPaid = summary.TotalPaid.Add(entry.Amount)
		} else {
			summary.TotalPending = summary.TotalPending.Add(entry.Amount)
		}
	}

	return summary, nil
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	return &parsed, nil
}
