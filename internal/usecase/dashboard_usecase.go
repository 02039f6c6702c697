package usecase

import (
	"context"
	"fmt"
	"time"

	"go-practice-management/internal/converter"
	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/repository"
	"go-practice-management/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

const (
	// TodaySessionLimit caps the today-sessions dashboard section.
	TodaySessionLimit = 100

	// RecentSessionLimit is the fixed size of the recent-sessions section.
	RecentSessionLimit = 10
)

// SubqueryError wraps a failed dashboard subquery so the caller can tell
// which of the four sections failed. The dashboard never returns a partial
// payload: one failed subquery fails the whole summary.
type SubqueryError struct {
	Query string
	Err   error
}

func (e *SubqueryError) Error() string {
	return fmt.Sprintf("dashboard subquery %q failed: %v", e.Query, e.Err)
}

func (e *SubqueryError) Unwrap() error {
	return e.Err
}

type DashboardUsecase interface {
	Summary(ctx context.Context, start, end time.Time) (*dto.DashboardSummaryResponse, error)
}

type dashboardUsecase struct {
	log          *logrus.Logger
	financial    FinancialUsecase
	sessionRepo  repository.SessionRepository
	patientRepo  repository.PatientRepository
	summaryCache service.SummaryCache
	now          func() time.Time
}

func NewDashboardUsecase(
	log *logrus.Logger,
	financial FinancialUsecase,
	sessionRepo repository.SessionRepository,
	patientRepo repository.PatientRepository,
	summaryCache service.SummaryCache,
) DashboardUsecase {
	return &dashboardUsecase{
		log:          log,
		financial:    financial,
		sessionRepo:  sessionRepo,
		patientRepo:  patientRepo,
		summaryCache: summaryCache,
		now:          time.Now,
	}
}

// Summary assembles the dashboard in one shot.
//
// The period is validated before anything else runs; the four independent
// reads then fan out concurrently and the first failure cancels the rest.
// Results merge into a single payload only when all four succeeded.
func (u *dashboardUsecase) Summary(ctx context.Context, start, end time.Time) (*dto.DashboardSummaryResponse, error) {
	start, end, err := ValidatePeriod(start, end, DefaultMaxPeriodDays)
	if err != nil {
		return nil, err
	}

	if cached, ok := u.summaryCache.Get(ctx, start, end); ok {
		return cached, nil
	}

	var (
		report         *dto.FinancialReportResponse
		todaySessions  []dto.SessionResponse
		recentSessions []dto.SessionResponse
		patientCounts  repository.PatientCounts
	)

	today := u.now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		var err error
		report, err = u.financial.Report(ctx, start, end, nil)
		if err != nil {
			return &SubqueryError{Query: "financial_report", Err: err}
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		sessions, err := u.sessionRepo.FindScheduledBetween(ctx, today, tomorrow, TodaySessionLimit)
		if err != nil {
			return &SubqueryError{Query: "today_sessions", Err: err}
		}
		todaySessions = converter.SessionsToResponses(sessions)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		sessions, err := u.sessionRepo.FindRecent(ctx, RecentSessionLimit)
		if err != nil {
			return &SubqueryError{Query: "recent_sessions", Err: err}
		}
		recentSessions = converter.SessionsToResponses(sessions)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		counts, err := u.patientRepo.Counts(ctx)
		if err != nil {
			return &SubqueryError{Query: "patients_summary", Err: err}
		}
		patientCounts = counts
		return nil
	})

	if err := p.Wait(); err != nil {
		u.log.Warnf("Dashboard summary failed: %+v", err)
		return nil, err
	}

	summary := &dto.DashboardSummaryResponse{
		FinancialReport: *report,
		TodaySessions:   todaySessions,
		RecentSessions:  recentSessions,
		PatientsSummary: dto.PatientsSummary{
			Total:    patientCounts.Total,
			Active:   patientCounts.Active,
			Inactive: patientCounts.Inactive,
		},
	}

	u.summaryCache.Set(ctx, start, end, summary)
	return summary, nil
}
