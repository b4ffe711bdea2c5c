package converter

import (
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"
)

// NegotiationLogToResponse converts a NegotiationLog entity to its DTO
func NegotiationLogToResponse(log *entity.NegotiationLog) *dto.NegotiationLogResponse {
	if log == nil {
		return nil
	}

	return &dto.NegotiationLogResponse{
		ID:        log.ID,
		DoctorID:  log.DoctorID,
		Date:      log.Date,
		Outcome:   string(log.Outcome),
		Agent:     log.Agent,
		Booked:    log.Booked,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

// NegotiationLogsToResponses converts a slice of NegotiationLog entities to DTOs
func NegotiationLogsToResponses(logs []entity.NegotiationLog) []dto.NegotiationLogResponse {
	responses := make([]dto.NegotiationLogResponse, len(logs))
	for i, log := range logs {
		resp := NegotiationLogToResponse(&log)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
