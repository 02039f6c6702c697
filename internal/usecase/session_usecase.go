package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownStatus      = errors.New("unknown session status")
	ErrSessionNotEditable = errors.New("session is in a terminal state and cannot be edited")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrPriceTooHigh       = errors.New("price exceeds the maximum allowed")
	ErrTransitionConflict = errors.New("session was modified concurrently, retry the request")
)

// InvalidTransitionError is returned when the requested status change is not
// an edge of the transition table. It carries both statuses so callers can
// report the rejected pair.
type InvalidTransitionError struct {
	Current   entity.SessionStatus
	Requested entity.SessionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition session from %q to %q", e.Current, e.Requested)
}

type SessionUsecase interface {
	ScheduleSession(ctx context.Context, req *dto.ScheduleSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, filter entity.SessionFilter) (*dto.SessionListResponse, error)
	UpdateSession(ctx context.Context, sessionID uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	TransitionSession(ctx context.Context, sessionID uuid.UUID, newStatus entity.SessionStatus, note string) (*dto.TransitionResponse, error)
}

type sessionUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	summaryCache service.SummaryCache
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	summaryCache service.SummaryCache,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
		summaryCache: summaryCache,
	}
}

// ScheduleSession creates a new session in the scheduled state.
func (u *sessionUsecase) ScheduleSession(ctx context.Context, req *dto.ScheduleSessionRequest) (*dto.SessionResponse, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = entity.DefaultSessionDuration
	}

	session := &entity.Session{
		PatientID:       req.PatientID,
		DateTime:        req.DateTime,
		Price:           req.Price,
		DurationMinutes: duration,
		Status:          entity.SessionStatusScheduled,
		Notes:           req.Notes,
	}

	if err := u.sessionRepo.Create(ctx, session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionSessionSchedule, entity.JSON{
		"session_id": session.ID.String(),
		"patient_id": session.PatientID.String(),
		"date_time":  session.DateTime,
	})

	session.Patient = *patient
	return converter.SessionToResponse(session), nil
}

func (u *sessionUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return converter.SessionToResponse(session), nil
}

func (u *sessionUsecase) ListSessions(ctx context.Context, filter entity.SessionFilter) (*dto.SessionListResponse, error) {
	sessions, total, err := u.sessionRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list sessions: %+v", err)
		return nil, err
	}

	return &dto.SessionListResponse{
		Sessions: converter.SessionsToResponses(sessions),
		Total:    total,
	}, nil
}

// UpdateSession edits the mutable fields of a session. Only sessions still in
// the scheduled state are editable; the status is never touched here.
func (u *sessionUsecase) UpdateSession(ctx context.Context, sessionID uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Editable() {
		return nil, ErrSessionNotEditable
	}

	if req.DateTime != nil {
		session.DateTime = *req.DateTime
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		session.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if err := u.sessionRepo.Update(ctx, session); err != nil {
		u.log.Warnf("Failed to update session %s: %+v", sessionID, err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionSessionUpdate, entity.JSON{
		"session_id": session.ID.String(),
	})

	return converter.SessionToResponse(session), nil
}

// TransitionSession moves a session through its lifecycle.
//
// Flow:
// 1. Look up the session
// 2. Check the requested edge against the transition table
// 3. For completions, build the pending financial entry (amount frozen to
//    the session price at this moment)
// 4. Persist status write + entry insert as one atomic unit in the store
//
// Cancellations and no-shows write only the status. A session that ever
// reached completed has exactly one entry; the store's unique index and the
// conditional status update reject duplicates under concurrency.
func (u *sessionUsecase) TransitionSession(ctx context.Context, sessionID uuid.UUID, newStatus entity.SessionStatus, note string) (*dto.TransitionResponse, error) {
	if !newStatus.Valid() {
		return nil, ErrUnknownStatus
	}

	session, err := u.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	previous := session.Status
	if !session.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{Current: previous, Requested: newStatus}
	}

	session.Status = newStatus
	if note != "" {
		session.Notes = note
	}

	var entry *entity.FinancialEntry
	if newStatus == entity.SessionStatusCompleted {
		entry = entity.NewEntryFromSession(session)
	}

	if err := u.sessionRepo.ApplyTransition(ctx, session, previous, entry); err != nil {
		if errors.Is(err, repository.ErrStaleSession) || errors.Is(err, repository.ErrEntryExists) {
			u.log.Warnf("Transition conflict on session %s (%s -> %s): %+v", sessionID, previous, newStatus, err)
			return nil, ErrTransitionConflict
		}
		u.log.Errorf("Failed to apply transition on session %s: %+v", sessionID, err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionSessionTransition, entity.JSON{
		"session_id":      session.ID.String(),
		"previous_status": string(previous),
		"new_status":      string(newStatus),
	})
	u.summaryCache.Invalidate(ctx)

	response := &dto.TransitionResponse{
		SessionID:      session.ID,
		PreviousStatus: string(previous),
		NewStatus:      string(newStatus),
	}
	if entry != nil {
		response.EntryCreated = true
		entryID := entry.ID
		entryAmount := entry.Amount
		response.EntryID = &entryID
		response.EntryAmount = &entryAmount
	}

	u.log.Infof("Session transitioned: id=%s, %s -> %s, entry_created=%t", session.ID, previous, newStatus, response.EntryCreated)
	return response, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if price.GreaterThan(entity.MaxSessionPrice) {
		return ErrPriceTooHigh
	}
	return nil
}
