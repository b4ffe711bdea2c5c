package repository

import (
	"context"
	"fmt"

	"adrd-care-system/internal/domain/entity"
	domainRepo "adrd-care-system/internal/domain/repository"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
)

const medicalAdvisorInstructions = `You are a medical advisor specializing in ADRD (Age-Related Degenerative Diseases). Your role is to:

1. Answer medical questions related to ADRD
2. Provide general health information and advice
3. Explain medical terms and procedures
4. Discuss symptoms and treatment options

Important guidelines:
- Always provide accurate, evidence-based information
- Use clear, understandable language
- Be empathetic and supportive
- Direct urgent medical concerns to healthcare providers

Remember: You are not replacing a doctor. For specific medical advice, always recommend consulting with a healthcare provider.`

type geminiMedicalAdvisor struct {
	model *genai.GenerativeModel
	log   *logrus.Logger
}

// NewGeminiMedicalAdvisor builds the medical Q&A collaborator on top of a
// shared Gemini client.
func NewGeminiMedicalAdvisor(client *genai.Client, modelName string, log *logrus.Logger) domainRepo.MedicalAdvisor {
	return &geminiMedicalAdvisor{
		model: client.GenerativeModel(modelName),
		log:   log,
	}
}

func (a *geminiMedicalAdvisor) Answer(ctx context.Context, message string, history []entity.ChatTurn) (string, error) {
	prompt := buildPrompt(medicalAdvisorInstructions, message, history)

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	return collectText(resp), nil
}
