package repository

import (
	"errors"

	"adrd-care-system/internal/domain/entity"
	domainRepo "adrd-care-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type negotiationLogRepository struct{}

func NewNegotiationLogRepository() domainRepo.NegotiationLogRepository {
	return &negotiationLogRepository{}
}

func (r *negotiationLogRepository) Create(db *gorm.DB, log *entity.NegotiationLog) error {
	return db.Create(log).Error
}

func (r *negotiationLogRepository) FindAll(db *gorm.DB) ([]entity.NegotiationLog, error) {
	var logs []entity.NegotiationLog
	err := db.Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *negotiationLogRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.NegotiationLog, error) {
	var log entity.NegotiationLog
	err := db.Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
