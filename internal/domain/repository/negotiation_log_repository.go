package repository

import (
	"adrd-care-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NegotiationLogRepository interface {
	Create(db *gorm.DB, log *entity.NegotiationLog) error
	FindAll(db *gorm.DB) ([]entity.NegotiationLog, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.NegotiationLog, error)
}
