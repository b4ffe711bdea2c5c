package dto

import (
	"time"

	"adrd-care-system/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type NegotiationLogResponse struct {
	ID        uuid.UUID   `json:"id"`
	DoctorID  string      `json:"doctor_id"`
	Date      string      `json:"date"`
	Outcome   string      `json:"outcome"`
	Agent     string      `json:"agent"`
	Booked    bool        `json:"booked"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type NegotiationLogListResponse struct {
	Logs  []NegotiationLogResponse `json:"logs"`
	Total int                      `json:"total"`
}
