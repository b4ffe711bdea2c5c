package service

import (
	"context"

	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	RecordTurn(ctx context.Context, log *entity.NegotiationLog) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.NegotiationLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.NegotiationLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// RecordTurn persists the audit entry for one negotiation turn. Failures are
// logged; the caller must not fail the turn over a missing audit row.
func (s *auditService) RecordTurn(ctx context.Context, turnLog *entity.NegotiationLog) error {
	if err := s.auditRepo.Create(s.db.WithContext(ctx), turnLog); err != nil {
		s.log.Warnf("Failed to create negotiation log: %+v", err)
		return err
	}
	return nil
}
