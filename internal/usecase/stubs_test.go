package usecase

import (
	"context"
	"io"
	"time"

	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubSessionRepository serves canned sessions and records writes.
type stubSessionRepository struct {
	sessions map[uuid.UUID]*entity.Session

	scheduledBetween []entity.Session
	recent           []entity.Session

	findErr       error
	scheduledErr  error
	recentErr     error
	transitionErr error

	appliedSession *entity.Session
	appliedFrom    entity.SessionStatus
	appliedEntry   *entity.FinancialEntry
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{sessions: map[uuid.UUID]*entity.Session{}}
}

func (r *stubSessionRepository) add(session *entity.Session) {
	r.sessions[session.ID] = session
}

func (r *stubSessionRepository) Create(_ context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	// Copy so the caller cannot mutate stored state before ApplyTransition.
	clone := *session
	return &clone, nil
}

func (r *stubSessionRepository) FindAll(_ context.Context, filter entity.SessionFilter) ([]entity.Session, int64, error) {
	var out []entity.Session
	for _, session := range r.sessions {
		if filter.PatientID != nil && session.PatientID.String() != *filter.PatientID {
			continue
		}
		out = append(out, *session)
	}
	return out, int64(len(out)), nil
}

func (r *stubSessionRepository) FindScheduledBetween(_ context.Context, _, _ time.Time, _ int) ([]entity.Session, error) {
	if r.scheduledErr != nil {
		return nil, r.scheduledErr
	}
	return r.scheduledBetween, nil
}

func (r *stubSessionRepository) FindRecent(_ context.Context, _ int) ([]entity.Session, error) {
	if r.recentErr != nil {
		return nil, r.recentErr
	}
	return r.recent, nil
}

func (r *stubSessionRepository) Update(_ context.Context, session *entity.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepository) ApplyTransition(_ context.Context, session *entity.Session, from entity.SessionStatus, entry *entity.FinancialEntry) error {
	if r.transitionErr != nil {
		return r.transitionErr
	}
	r.appliedSession = session
	r.appliedFrom = from
	r.appliedEntry = entry
	if entry != nil && entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

// stubPatientRepository serves canned patients.
type stubPatientRepository struct {
	patients  map[uuid.UUID]*entity.Patient
	counts    repository.PatientCounts
	countsErr error
}

func newStubPatientRepository() *stubPatientRepository {
	return &stubPatientRepository{patients: map[uuid.UUID]*entity.Patient{}}
}

func (r *stubPatientRepository) add(patient *entity.Patient) {
	r.patients[patient.ID] = patient
}

func (r *stubPatientRepository) Create(_ context.Context, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *stubPatientRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	clone := *patient
	return &clone, nil
}

func (r *stubPatientRepository) FindAll(_ context.Context, _ entity.PatientFilter) ([]entity.Patient, int64, error) {
	var out []entity.Patient
	for _, patient := range r.patients {
		out = append(out, *patient)
	}
	return out, int64(len(out)), nil
}

func (r *stubPatientRepository) Update(_ context.Context, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *stubPatientRepository) Counts(_ context.Context) (repository.PatientCounts, error) {
	if r.countsErr != nil {
		return repository.PatientCounts{}, r.countsErr
	}
	return r.counts, nil
}

// stubEntryRepository serves canned financial entries.
type stubEntryRepository struct {
	entries   map[uuid.UUID]*entity.FinancialEntry
	byPeriod  []entity.FinancialEntry
	periodErr error

	lastPeriodStatuses []entity.EntryStatus

	updateRows int64
	updateErr  error
}

func newStubEntryRepository() *stubEntryRepository {
	return &stubEntryRepository{entries: map[uuid.UUID]*entity.FinancialEntry{}, updateRows: 1}
}

func (r *stubEntryRepository) add(entry *entity.FinancialEntry) {
	r.entries[entry.ID] = entry
}

func (r *stubEntryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.FinancialEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (r *stubEntryRepository) FindBySessionID(_ context.Context, sessionID uuid.UUID) (*entity.FinancialEntry, error) {
	for _, entry := range r.entries {
		if entry.SessionID == sessionID {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubEntryRepository) FindByPeriod(_ context.Context, _, _ time.Time, statuses []entity.EntryStatus) ([]entity.FinancialEntry, error) {
	if r.periodErr != nil {
		return nil, r.periodErr
	}
	r.lastPeriodStatuses = statuses
	if len(statuses) == 0 {
		return r.byPeriod, nil
	}
	var out []entity.FinancialEntry
	for _, entry := range r.byPeriod {
		for _, status := range statuses {
			if entry.Status == status {
				out = append(out, entry)
				break
			}
		}
	}
	return out, nil
}

func (r *stubEntryRepository) FindAll(_ context.Context, filter entity.EntryFilter) ([]entity.FinancialEntry, int64, error) {
	var out []entity.FinancialEntry
	for _, entry := range r.entries {
		if filter.PatientID != nil && entry.PatientID.String() != *filter.PatientID {
			continue
		}
		out = append(out, *entry)
	}
	return out, int64(len(out)), nil
}

func (r *stubEntryRepository) UpdateStatus(_ context.Context, id uuid.UUID, _, to entity.EntryStatus, paidAt *time.Time) (int64, error) {
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	if r.updateRows > 0 {
		if entry, ok := r.entries[id]; ok {
			entry.Status = to
			entry.PaidAt = paidAt
		}
	}
	return r.updateRows, nil
}

// noopAuditService counts recorded actions without persisting anything.
type noopAuditService struct {
	actions []string
}

func (s *noopAuditService) Record(_ context.Context, _ *uuid.UUID, action string, _ entity.JSON) {
	s.actions = append(s.actions, action)
}

// noopSummaryCache never hits and counts invalidations.
type noopSummaryCache struct {
	invalidations int
	sets          int
	cached        *dto.DashboardSummaryResponse
}

func (c *noopSummaryCache) Get(_ context.Context, _, _ time.Time) (*dto.DashboardSummaryResponse, bool) {
	if c.cached != nil {
		return c.cached, true
	}
	return nil, false
}

func (c *noopSummaryCache) Set(_ context.Context, _, _ time.Time, summary *dto.DashboardSummaryResponse) {
	c.sets++
	c.cached = summary
}

func (c *noopSummaryCache) Invalidate(_ context.Context) {
	c.invalidations++
	c.cached = nil
}
