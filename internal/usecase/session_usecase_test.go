package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newSessionUsecaseForTest(sessionRepo *stubSessionRepository, patientRepo *stubPatientRepository) (SessionUsecase, *noopAuditService, *noopSummaryCache) {
	audit := &noopAuditService{}
	cache := &noopSummaryCache{}
	uc := NewSessionUsecase(testLogger(), sessionRepo, patientRepo, audit, cache)
	return uc, audit, cache
}

func scheduleRequest(patientID uuid.UUID) *dto.ScheduleSessionRequest {
	return &dto.ScheduleSessionRequest{
		PatientID: patientID,
		DateTime:  time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC),
		Price:     decimal.RequireFromString("100.00"),
	}
}

func scheduledSession(price string) *entity.Session {
	return &entity.Session{
		ID:              uuid.New(),
		PatientID:       uuid.New(),
		DateTime:        time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC),
		Price:           decimal.RequireFromString(price),
		DurationMinutes: 50,
		Status:          entity.SessionStatusScheduled,
	}
}

func TestTransitionSessionNotFound(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

	_, err := uc.TransitionSession(context.Background(), uuid.New(), entity.SessionStatusCompleted, "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTransitionSessionUnknownStatus(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	session := scheduledSession("100.00")
	sessionRepo.add(session)
	uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

	_, err := uc.TransitionSession(context.Background(), session.ID, "archived", "")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestTransitionSessionIllegalEdges(t *testing.T) {
	tests := []struct {
		name    string
		current entity.SessionStatus
		target  entity.SessionStatus
	}{
		{"completed to cancelled", entity.SessionStatusCompleted, entity.SessionStatusCancelled},
		{"completed to scheduled", entity.SessionStatusCompleted, entity.SessionStatusScheduled},
		{"cancelled to completed", entity.SessionStatusCancelled, entity.SessionStatusCompleted},
		{"no_show to completed", entity.SessionStatusNoShow, entity.SessionStatusCompleted},
		{"scheduled to scheduled", entity.SessionStatusScheduled, entity.SessionStatusScheduled},
		{"completed to completed", entity.SessionStatusCompleted, entity.SessionStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionRepo := newStubSessionRepository()
			session := scheduledSession("100.00")
			session.Status = tt.current
			sessionRepo.add(session)
			uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

			_, err := uc.TransitionSession(context.Background(), session.ID, tt.target, "")

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if invalid.Current != tt.current || invalid.Requested != tt.target {
				t.Errorf("error pair = (%s, %s), want (%s, %s)", invalid.Current, invalid.Requested, tt.current, tt.target)
			}
			if sessionRepo.appliedSession != nil {
				t.Error("rejected transition must not reach the store")
			}
		})
	}
}

func TestTransitionSessionCompletionCreatesEntry(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	session := scheduledSession("150.75")
	sessionRepo.add(session)
	uc, audit, cache := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

	result, err := uc.TransitionSession(context.Background(), session.ID, entity.SessionStatusCompleted, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PreviousStatus != "scheduled" || result.NewStatus != "completed" {
		t.Errorf("result statuses = (%s, %s)", result.PreviousStatus, result.NewStatus)
	}
	if !result.EntryCreated {
		t.Fatal("completion must create a financial entry")
	}
	if result.EntryAmount == nil || !result.EntryAmount.Equal(decimal.RequireFromString("150.75")) {
		t.Errorf("entry amount = %v, want 150.75", result.EntryAmount)
	}

	entry := sessionRepo.appliedEntry
	if entry == nil {
		t.Fatal("no entry handed to the store")
	}
	if entry.SessionID != session.ID {
		t.Errorf("entry session ID = %s, want %s", entry.SessionID, session.ID)
	}
	if entry.Status != entity.EntryStatusPending {
		t.Errorf("entry status = %s, want pending", entry.Status)
	}
	if sessionRepo.appliedFrom != entity.SessionStatusScheduled {
		t.Errorf("conditional previous status = %s, want scheduled", sessionRepo.appliedFrom)
	}
	if len(audit.actions) == 0 {
		t.Error("transition must be audited")
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestTransitionSessionAmountFrozenAtCompletion(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	session := scheduledSession("80.00")
	sessionRepo.add(session)
	uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

	result, err := uc.TransitionSession(context.Background(), session.ID, entity.SessionStatusCompleted, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later price edit on the original entity must not leak into the entry.
	session.Price = decimal.RequireFromString("500.00")
	if !result.EntryAmount.Equal(decimal.RequireFromString("80.00")) {
		t.Errorf("entry amount = %s, want the price at completion time", result.EntryAmount)
	}
}

func TestTransitionSessionNonCompletionCreatesNoEntry(t *testing.T) {
	for _, target := range []entity.SessionStatus{entity.SessionStatusCancelled, entity.SessionStatusNoShow} {
		t.Run(string(target), func(t *testing.T) {
			sessionRepo := newStubSessionRepository()
			session := scheduledSession("120.00")
			sessionRepo.add(session)
			uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

			result, err := uc.TransitionSession(context.Background(), session.ID, target, "patient called ahead")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.EntryCreated || result.EntryID != nil {
				t.Errorf("%s must not create a financial entry", target)
			}
			if sessionRepo.appliedEntry != nil {
				t.Error("no entry may reach the store")
			}
			if sessionRepo.appliedSession.Notes != "patient called ahead" {
				t.Errorf("note not applied: %q", sessionRepo.appliedSession.Notes)
			}
		})
	}
}

func TestTransitionSessionConflictMapping(t *testing.T) {
	for _, storeErr := range []error{repository.ErrStaleSession, repository.ErrEntryExists} {
		sessionRepo := newStubSessionRepository()
		session := scheduledSession("100.00")
		sessionRepo.add(session)
		sessionRepo.transitionErr = storeErr
		uc, _, cache := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

		_, err := uc.TransitionSession(context.Background(), session.ID, entity.SessionStatusCompleted, "")
		if !errors.Is(err, ErrTransitionConflict) {
			t.Errorf("store error %v: expected ErrTransitionConflict, got %v", storeErr, err)
		}
		if cache.invalidations != 0 {
			t.Error("failed transition must not invalidate the cache")
		}
	}
}

func TestScheduleSessionDefaultsDuration(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	patientRepo := newStubPatientRepository()
	patient := &entity.Patient{ID: uuid.New(), Name: "Ana Souza"}
	patientRepo.add(patient)
	uc, _, _ := newSessionUsecaseForTest(sessionRepo, patientRepo)

	result, err := uc.ScheduleSession(context.Background(), scheduleRequest(patient.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DurationMinutes != entity.DefaultSessionDuration {
		t.Errorf("duration = %d, want default %d", result.DurationMinutes, entity.DefaultSessionDuration)
	}
	if result.Status != "scheduled" {
		t.Errorf("status = %s, want scheduled", result.Status)
	}
}

func TestScheduleSessionUnknownPatient(t *testing.T) {
	uc, _, _ := newSessionUsecaseForTest(newStubSessionRepository(), newStubPatientRepository())

	_, err := uc.ScheduleSession(context.Background(), scheduleRequest(uuid.New()))
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestScheduleSessionPriceBounds(t *testing.T) {
	patientRepo := newStubPatientRepository()
	patient := &entity.Patient{ID: uuid.New(), Name: "Ana Souza"}
	patientRepo.add(patient)
	uc, _, _ := newSessionUsecaseForTest(newStubSessionRepository(), patientRepo)

	req := scheduleRequest(patient.ID)
	req.Price = decimal.RequireFromString("-1.00")
	if _, err := uc.ScheduleSession(context.Background(), req); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}

	req.Price = decimal.RequireFromString("10000.01")
	if _, err := uc.ScheduleSession(context.Background(), req); !errors.Is(err, ErrPriceTooHigh) {
		t.Errorf("expected ErrPriceTooHigh, got %v", err)
	}

	req.Price = decimal.RequireFromString("10000.00")
	if _, err := uc.ScheduleSession(context.Background(), req); err != nil {
		t.Errorf("price at the ceiling must be accepted, got %v", err)
	}
}

func TestUpdateSessionTerminalStateRejected(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	session := scheduledSession("100.00")
	session.Status = entity.SessionStatusCompleted
	sessionRepo.add(session)
	uc, _, _ := newSessionUsecaseForTest(sessionRepo, newStubPatientRepository())

	newPrice := decimal.RequireFromString("90.00")
	_, err := uc.UpdateSession(context.Background(), session.ID, &dto.UpdateSessionRequest{Price: &newPrice})
	if !errors.Is(err, ErrSessionNotEditable) {
		t.Fatalf("expected ErrSessionNotEditable, got %v", err)
	}
}
