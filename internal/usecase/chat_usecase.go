package usecase

import (
	"context"
	"errors"
	"time"

	"adrd-care-system/config"
	"adrd-care-system/internal/converter"
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	// ErrClassifierUnavailable is returned when the intent classifier keeps
	// failing after the configured retries.
	ErrClassifierUnavailable = errors.New("intent classification failed after retries")

	// ErrAdvisorUnavailable is returned when the medical advisor call fails.
	ErrAdvisorUnavailable = errors.New("medical advisor unavailable")
)

const msgClarify = "Could you please clarify what you need help with?"

type ChatUsecase interface {
	// ProcessMessage routes one inbound message: appointment intents go to
	// the negotiator, medical intents to the advisor, everything else echoes
	// the classifier's own conversational text.
	ProcessMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatUsecase struct {
	log                *logrus.Logger
	cfg                config.ClassifierConfig
	classifier         repository.IntentClassifier
	advisor            repository.MedicalAdvisor
	negotiationUsecase AppointmentNegotiationUsecase
}

func NewChatUsecase(
	log *logrus.Logger,
	cfg config.ClassifierConfig,
	classifier repository.IntentClassifier,
	advisor repository.MedicalAdvisor,
	negotiationUsecase AppointmentNegotiationUsecase,
) ChatUsecase {
	return &chatUsecase{
		log:                log,
		cfg:                cfg,
		classifier:         classifier,
		advisor:            advisor,
		negotiationUsecase: negotiationUsecase,
	}
}

func (u *chatUsecase) ProcessMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	history := converter.HistoryToTurns(req.History)

	record, err := u.classifyWithRetry(ctx, req.Message, history)
	if err != nil {
		return nil, ErrClassifierUnavailable
	}

	switch record.Agent {
	case entity.AgentAppointment:
		return u.negotiationUsecase.Negotiate(ctx, record), nil

	case entity.AgentMedical:
		answer, err := u.advisor.Answer(ctx, req.Message, history)
		if err != nil {
			u.log.Errorf("Medical advisor call failed: %+v", err)
			return nil, ErrAdvisorUnavailable
		}
		return &dto.ChatResponse{Response: answer, Agent: entity.ResponderMedical}, nil

	default:
		responseText := record.Response
		if responseText == "" {
			responseText = msgClarify
		}
		return &dto.ChatResponse{Response: responseText, Agent: entity.ResponderOrchestrator}, nil
	}
}

// classifyWithRetry retries only the upstream classification call. The
// negotiation's own network calls fail fast instead, to avoid duplicate
// bookings.
func (u *chatUsecase) classifyWithRetry(ctx context.Context, message string, history []entity.ChatTurn) (*entity.IntentRecord, error) {
	maxRetries := u.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		record, err := u.classifier.Classify(ctx, message, history)
		if err == nil {
			return record, nil
		}

		lastErr = err
		u.log.Errorf("Classification attempt %d failed: %+v", attempt+1, err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(u.retryDelay()):
			}
		}
	}

	return nil, lastErr
}

func (u *chatUsecase) retryDelay() time.Duration {
	if u.cfg.RetryDelay > 0 {
		return u.cfg.RetryDelay
	}
	return 1 * time.Second
}
