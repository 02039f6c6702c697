package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/domain/repository"

	"github.com/shopspring/decimal"
)

type dashboardFixture struct {
	uc          *dashboardUsecase
	sessionRepo *stubSessionRepository
	patientRepo *stubPatientRepository
	entryRepo   *stubEntryRepository
	cache       *noopSummaryCache
}

func newDashboardFixture() *dashboardFixture {
	sessionRepo := newStubSessionRepository()
	patientRepo := newStubPatientRepository()
	entryRepo := newStubEntryRepository()
	cache := &noopSummaryCache{}
	financial := NewFinancialUsecase(testLogger(), entryRepo, &noopAuditService{}, &noopSummaryCache{})

	uc := NewDashboardUsecase(testLogger(), financial, sessionRepo, patientRepo, cache).(*dashboardUsecase)
	uc.now = func() time.Time { return time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC) }

	return &dashboardFixture{
		uc:          uc,
		sessionRepo: sessionRepo,
		patientRepo: patientRepo,
		entryRepo:   entryRepo,
		cache:       cache,
	}
}

func TestDashboardSummaryMergesAllSections(t *testing.T) {
	f := newDashboardFixture()
	f.entryRepo.byPeriod = []entity.FinancialEntry{
		periodEntry("100.00", entity.EntryStatusPaid),
		periodEntry("50.00", entity.EntryStatusPending),
	}
	f.sessionRepo.scheduledBetween = []entity.Session{*scheduledSession("80.00"), *scheduledSession("90.00")}
	f.sessionRepo.recent = []entity.Session{*scheduledSession("70.00")}
	f.patientRepo.counts = repository.PatientCounts{Total: 12, Active: 10, Inactive: 2}

	summary, err := f.uc.Summary(context.Background(), date(2026, 5, 1), date(2026, 5, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.FinancialReport.TotalAmount.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("financial total = %s, want 150.00", summary.FinancialReport.TotalAmount)
	}
	if len(summary.TodaySessions) != 2 {
		t.Errorf("today sessions = %d, want 2", len(summary.TodaySessions))
	}
	if len(summary.RecentSessions) != 1 {
		t.Errorf("recent sessions = %d, want 1", len(summary.RecentSessions))
	}
	if summary.PatientsSummary.Total != 12 || summary.PatientsSummary.Active != 10 || summary.PatientsSummary.Inactive != 2 {
		t.Errorf("patients summary = %+v", summary.PatientsSummary)
	}
	if f.cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", f.cache.sets)
	}
}

func TestDashboardSummarySubqueryFailureNamesSection(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name  string
		setup func(f *dashboardFixture)
		query string
	}{
		{"financial report", func(f *dashboardFixture) { f.entryRepo.periodErr = boom }, "financial_report"},
		{"today sessions", func(f *dashboardFixture) { f.sessionRepo.scheduledErr = boom }, "today_sessions"},
		{"recent sessions", func(f *dashboardFixture) { f.sessionRepo.recentErr = boom }, "recent_sessions"},
		{"patients summary", func(f *dashboardFixture) { f.patientRepo.countsErr = boom }, "patients_summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture()
			tt.setup(f)

			_, err := f.uc.Summary(context.Background(), date(2026, 5, 1), date(2026, 5, 31))

			var sub *SubqueryError
			if !errors.As(err, &sub) {
				t.Fatalf("expected SubqueryError, got %v", err)
			}
			if sub.Query != tt.query {
				t.Errorf("failed subquery = %q, want %q", sub.Query, tt.query)
			}
			if !errors.Is(err, boom) {
				t.Error("SubqueryError must wrap the underlying failure")
			}
			if f.cache.sets != 0 {
				t.Error("a failed summary must not be cached")
			}
		})
	}
}

func TestDashboardSummaryValidatesPeriodFirst(t *testing.T) {
	f := newDashboardFixture()
	// Every subquery is armed to fail; validation must reject the period
	// before any of them runs.
	boom := errors.New("must not be reached")
	f.entryRepo.periodErr = boom
	f.sessionRepo.scheduledErr = boom
	f.sessionRepo.recentErr = boom
	f.patientRepo.countsErr = boom

	_, err := f.uc.Summary(context.Background(), date(2026, 6, 1), date(2026, 5, 1))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	_, err = f.uc.Summary(context.Background(), date(2024, 1, 1), date(2026, 1, 1))
	if !errors.Is(err, ErrPeriodTooLarge) {
		t.Fatalf("expected ErrPeriodTooLarge, got %v", err)
	}
}

func TestDashboardSummaryServedFromCache(t *testing.T) {
	f := newDashboardFixture()
	f.patientRepo.counts = repository.PatientCounts{Total: 1, Active: 1}

	first, err := f.uc.Summary(context.Background(), date(2026, 5, 1), date(2026, 5, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Arm a failure; the cached summary must be served without re-querying.
	f.patientRepo.countsErr = errors.New("down")
	second, err := f.uc.Summary(context.Background(), date(2026, 5, 1), date(2026, 5, 31))
	if err != nil {
		t.Fatalf("cached summary not served: %v", err)
	}
	if second != first {
		t.Error("expected the cached summary instance")
	}
}

// Completing a session and then reading the report end to end: the new entry
// shows up as pending and the totals still reconcile.
func TestCompletionFeedsFinancialReport(t *testing.T) {
	sessionRepo := newStubSessionRepository()
	entryRepo := newStubEntryRepository()
	session := scheduledSession("120.00")
	session.DateTime = time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	sessionRepo.add(session)

	sessionUC := NewSessionUsecase(testLogger(), sessionRepo, newStubPatientRepository(), &noopAuditService{}, &noopSummaryCache{})
	financialUC := NewFinancialUsecase(testLogger(), entryRepo, &noopAuditService{}, &noopSummaryCache{})

	result, err := sessionUC.TransitionSession(context.Background(), session.ID, entity.SessionStatusCompleted, "")
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	// The entry the store received lands in the report source.
	entryRepo.byPeriod = []entity.FinancialEntry{*sessionRepo.appliedEntry}

	report, err := financialUC.Report(context.Background(), date(2026, 5, 1), date(2026, 5, 31), nil)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.TotalEntries != 1 {
		t.Fatalf("total entries = %d, want 1", report.TotalEntries)
	}
	if !report.TotalPending.Equal(*result.EntryAmount) {
		t.Errorf("pending total = %s, want the completed session's price %s", report.TotalPending, result.EntryAmount)
	}
	if !report.TotalPaid.IsZero() {
		t.Errorf("paid total = %s, want 0", report.TotalPaid)
	}
	if !report.TotalAmount.Equal(report.TotalPending.Add(report.TotalPaid)) {
		t.Error("total_amount must equal total_pending + total_paid")
	}
}
