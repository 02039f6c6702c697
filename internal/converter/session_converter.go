package converter

import (
	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
)

// SessionToResponse converts a Session entity to SessionResponse DTO
func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	if session == nil {
		return nil
	}

	response := &dto.SessionResponse{
		ID:              session.ID,
		PatientID:       session.PatientID,
		DateTime:        session.DateTime,
		Price:           session.Price,
		DurationMinutes: session.DurationMinutes,
		Status:          string(session.Status),
		Notes:           session.Notes,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}

	// Include patient name if the relation was preloaded
	if session.Patient.Name != "" {
		response.PatientName = session.Patient.Name
	}

	return response
}

// SessionsToResponses converts a slice of Session entities to response DTOs
func SessionsToResponses(sessions []entity.Session) []dto.SessionResponse {
	responses := make([]dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		resp := SessionToResponse(&session)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
