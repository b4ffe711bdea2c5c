package usecase

import (
	"context"
	"errors"

	"adrd-care-system/internal/converter"
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNegotiationLogNotFound = errors.New("negotiation log not found")
)

type NegotiationLogUsecase interface {
	GetAllNegotiationLogs(ctx context.Context) (*dto.NegotiationLogListResponse, error)
	GetNegotiationLog(ctx context.Context, id uuid.UUID) (*dto.NegotiationLogResponse, error)
}

type negotiationLogUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	negotiationLogRepo repository.NegotiationLogRepository
}

func NewNegotiationLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	negotiationLogRepo repository.NegotiationLogRepository,
) NegotiationLogUsecase {
	return &negotiationLogUsecase{
		db:                 db,
		log:                log,
		negotiationLogRepo: negotiationLogRepo,
	}
}

func (u *negotiationLogUsecase) GetAllNegotiationLogs(ctx context.Context) (*dto.NegotiationLogListResponse, error) {
	logs, err := u.negotiationLogRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all negotiation logs: %+v", err)
		return nil, err
	}

	return &dto.NegotiationLogListResponse{
		Logs:  converter.NegotiationLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *negotiationLogUsecase) GetNegotiationLog(ctx context.Context, id uuid.UUID) (*dto.NegotiationLogResponse, error) {
	negotiationLog, err := u.negotiationLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find negotiation log %s: %+v", id, err)
		return nil, err
	}
	if negotiationLog == nil {
		return nil, ErrNegotiationLogNotFound
	}

	return converter.NegotiationLogToResponse(negotiationLog), nil
}
