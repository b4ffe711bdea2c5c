package repository

import (
	"context"

	"adrd-care-system/internal/domain/entity"
)

// IntentClassifier is the upstream collaborator that turns a free-text
// message into a structured routing decision with extracted booking fields.
type IntentClassifier interface {
	Classify(ctx context.Context, message string, history []entity.ChatTurn) (*entity.IntentRecord, error)
}

// MedicalAdvisor answers medical questions. The message is passed through
// unchanged; no negotiation state is involved.
type MedicalAdvisor interface {
	Answer(ctx context.Context, message string, history []entity.ChatTurn) (string, error)
}
