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

// ReportEntryLimit caps the detail list of a financial report. The cap is a
// response-size control only: totals are always computed over the entire
// filtered period.
const ReportEntryLimit = 100

var (
	ErrEntryNotFound       = errors.New("financial entry not found")
	ErrEntryAlreadyPaid    = errors.New("financial entry is already paid")
	ErrEntryAlreadyPending = errors.New("financial entry is already pending")
)

type FinancialUsecase interface {
	Report(ctx context.Context, start, end time.Time, statusFilter []entity.EntryStatus) (*dto.FinancialReportResponse, error)
	ListEntries(ctx context.Context, filter entity.EntryFilter) (*dto.FinancialEntryListResponse, error)
	GetEntry(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error)
	MarkEntryPaid(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error)
	MarkEntryPending(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error)
}

type financialUsecase struct {
	log          *logrus.Logger
	entryRepo    repository.FinancialEntryRepository
	auditService service.AuditService
	summaryCache service.SummaryCache
}

func NewFinancialUsecase(
	log *logrus.Logger,
	entryRepo repository.FinancialEntryRepository,
	auditService service.AuditService,
	summaryCache service.SummaryCache,
) FinancialUsecase {
	return &financialUsecase{
		log:          log,
		entryRepo:    entryRepo,
		auditService: auditService,
		summaryCache: summaryCache,
	}
}

// Report builds the consolidated financial report for a period.
//
// Totals are summed over the full filtered set with decimal arithmetic, so
// total_amount == total_pending + total_paid holds exactly; the detail list
// is capped afterwards.
func (u *financialUsecase) Report(ctx context.Context, start, end time.Time, statusFilter []entity.EntryStatus) (*dto.FinancialReportResponse, error) {
	start, end, err := ValidatePeriod(start, end, DefaultMaxPeriodDays)
	if err != nil {
		return nil, err
	}

	entries, err := u.entryRepo.FindByPeriod(ctx, start, end, statusFilter)
	if err != nil {
		u.log.Warnf("Failed to fetch entries for report: %+v", err)
		return nil, err
	}

	totalAmount := decimal.Zero
	totalPending := decimal.Zero
	totalPaid := decimal.Zero
	for _, entry := range entries {
		totalAmount = totalAmount.Add(entry.Amount)
		switch entry.Status {
		case entity.EntryStatusPending:
			totalPending = totalPending.Add(entry.Amount)
		case entity.EntryStatusPaid:
			totalPaid = totalPaid.Add(entry.Amount)
		}
	}

	capped := entries
	if len(capped) > ReportEntryLimit {
		capped = capped[:ReportEntryLimit]
	}

	return &dto.FinancialReportResponse{
		Entries:      converter.FinancialEntriesToResponses(capped),
		TotalEntries: len(entries),
		TotalAmount:  totalAmount,
		TotalPending: totalPending,
		TotalPaid:    totalPaid,
		PeriodStart:  start.Format("2006-01-02"),
		PeriodEnd:    end.Format("2006-01-02"),
	}, nil
}

func (u *financialUsecase) ListEntries(ctx context.Context, filter entity.EntryFilter) (*dto.FinancialEntryListResponse, error) {
	entries, total, err := u.entryRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list financial entries: %+v", err)
		return nil, err
	}

	return &dto.FinancialEntryListResponse{
		Entries: converter.FinancialEntriesToResponses(entries),
		Total:   total,
	}, nil
}

func (u *financialUsecase) GetEntry(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error) {
	entry, err := u.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		u.log.Warnf("Failed to find entry %s: %+v", entryID, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return converter.FinancialEntryToResponse(entry), nil
}

// MarkEntryPaid records payment of a pending entry.
func (u *financialUsecase) MarkEntryPaid(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error) {
	entry, err := u.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		u.log.Warnf("Failed to find entry %s: %+v", entryID, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	if entry.IsPaid() {
		return nil, ErrEntryAlreadyPaid
	}

	paidAt := time.Now().UTC()
	rows, err := u.entryRepo.UpdateStatus(ctx, entryID, entity.EntryStatusPending, entity.EntryStatusPaid, &paidAt)
	if err != nil {
		u.log.Warnf("Failed to mark entry %s as paid: %+v", entryID, err)
		return nil, err
	}
	if rows == 0 {
		// Lost a race against another payment request.
		return nil, ErrEntryAlreadyPaid
	}

	entry.Status = entity.EntryStatusPaid
	entry.PaidAt = &paidAt

	u.auditService.Record(ctx, nil, entity.AuditActionEntryPaid, entity.JSON{
		"entry_id": entry.ID.String(),
		"amount":   entry.Amount.String(),
	})
	u.summaryCache.Invalidate(ctx)

	return converter.FinancialEntryToResponse(entry), nil
}

// MarkEntryPending reverts a recorded payment.
func (u *financialUsecase) MarkEntryPending(ctx context.Context, entryID uuid.UUID) (*dto.FinancialEntryResponse, error) {
	entry, err := u.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		u.log.Warnf("Failed to find entry %s: %+v", entryID, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	if entry.IsPending() {
		return nil, ErrEntryAlreadyPending
	}

	rows, err := u.entryRepo.UpdateStatus(ctx, entryID, entity.EntryStatusPaid, entity.EntryStatusPending, nil)
	if err != nil {
		u.log.Warnf("Failed to mark entry %s as pending: %+v", entryID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEntryAlreadyPending
	}

	entry.Status = entity.EntryStatusPending
	entry.PaidAt = nil

	u.auditService.Record(ctx, nil, entity.AuditActionEntryUnpaid, entity.JSON{
		"entry_id": entry.ID.String(),
		"amount":   entry.Amount.String(),
	})
	u.summaryCache.Invalidate(ctx)

	return converter.FinancialEntryToResponse(entry), nil
}
