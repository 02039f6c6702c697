package converter

import (
	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
)

// FinancialEntryToResponse converts a FinancialEntry entity to its DTO
func FinancialEntryToResponse(entry *entity.FinancialEntry) *dto.FinancialEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.FinancialEntryResponse{
		ID:          entry.ID,
		SessionID:   entry.SessionID,
		PatientID:   entry.PatientID,
		EntryDate:   entry.EntryDate.Format("2006-01-02"),
		Amount:      entry.Amount,
		Status:      string(entry.Status),
		Description: entry.Description,
		PaidAt:      entry.PaidAt,
		CreatedAt:   entry.CreatedAt,
	}
}

// FinancialEntriesToResponses converts a slice of entries to response DTOs
func FinancialEntriesToResponses(entries []entity.FinancialEntry) []dto.FinancialEntryResponse {
	responses := make([]dto.FinancialEntryResponse, len(entries))
	for i, entry := range entries {
		resp := FinancialEntryToResponse(&entry)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
