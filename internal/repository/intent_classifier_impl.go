package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adrd-care-system/internal/domain/entity"
	domainRepo "adrd-care-system/internal/domain/repository"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
)

const orchestratorInstructions = `You are the ADRD care system orchestrator. Analyze each message and determine the user's intent. Your response must be a single JSON object and nothing else.

If the user wants to book an appointment:
{
  "agent": "appointment",
  "intent": "book_appointment",
  "details": {
    "patient_name": "string",
    "doctor_id": "string",
    "preferred_date": "MM/DD/YYYY",
    "preferred_time": "HH:MM AM/PM",
    "request_type": "consultation|follow_up|new_patient"
  },
  "missing_fields": ["..."]
}

For medical questions:
{"agent": "medical", "intent": "ask_medical_question"}

For unclear intent:
{"agent": "orchestrator", "response": "Your conversational response"}

Remember:
- Dates must be in MM/DD/YYYY format
- Times must be in HH:MM AM/PM format with AM/PM
- Doctor IDs should be preserved as given (e.g. dr_001)
- missing_fields lists required booking fields the user has not provided`

type geminiIntentClassifier struct {
	model *genai.GenerativeModel
	log   *logrus.Logger
}

// NewGeminiIntentClassifier builds the upstream intent classifier on top of
// a shared Gemini client.
func NewGeminiIntentClassifier(client *genai.Client, modelName string, log *logrus.Logger) domainRepo.IntentClassifier {
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	return &geminiIntentClassifier{
		model: model,
		log:   log,
	}
}

func (c *geminiIntentClassifier) Classify(ctx context.Context, message string, history []entity.ChatTurn) (*entity.IntentRecord, error) {
	prompt := buildPrompt(orchestratorInstructions, message, history)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	raw := collectText(resp)

	var record entity.IntentRecord
	if err := json.Unmarshal([]byte(extractJSON(raw)), &record); err != nil || record.Agent == "" {
		// Invalid routing payload: fall back to a conversational response.
		c.log.Warnf("Invalid orchestrator response format: %s", raw)
		return &entity.IntentRecord{Agent: entity.AgentOrchestrator, Response: raw}, nil
	}

	return &record, nil
}

// buildPrompt folds instructions, prior turns and the new message into a
// single prompt.
func buildPrompt(instructions, message string, history []entity.ChatTurn) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\nConversation so far:\n")
	for _, turn := range history {
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("user: ")
	sb.WriteString(message)
	return sb.String()
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if textPart, ok := part.(genai.Text); ok {
				sb.WriteString(string(textPart))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// extractJSON strips markdown fences and surrounding prose the model may add
// around the JSON object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
