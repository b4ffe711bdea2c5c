package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"adrd-care-system/config"
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClassifier replays a scripted sequence of results, one per call.
type fakeClassifier struct {
	records []*entity.IntentRecord
	errs    []error
	calls   int
	history []entity.ChatTurn
}

func (f *fakeClassifier) Classify(_ context.Context, _ string, history []entity.ChatTurn) (*entity.IntentRecord, error) {
	i := f.calls
	f.calls++
	f.history = history
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.records) {
		return f.records[i], nil
	}
	return f.records[len(f.records)-1], nil
}

type fakeAdvisor struct {
	answer string
	err    error
}

func (f *fakeAdvisor) Answer(_ context.Context, _ string, _ []entity.ChatTurn) (string, error) {
	return f.answer, f.err
}

type fakeNegotiation struct {
	resp   *dto.ChatResponse
	record *entity.IntentRecord
}

func (f *fakeNegotiation) Negotiate(_ context.Context, record *entity.IntentRecord) *dto.ChatResponse {
	f.record = record
	return f.resp
}

func chatFixture(classifier *fakeClassifier, advisor *fakeAdvisor, negotiation *fakeNegotiation) ChatUsecase {
	return NewChatUsecase(
		testLogger(),
		config.ClassifierConfig{MaxRetries: 2, RetryDelay: time.Millisecond},
		classifier,
		advisor,
		negotiation,
	)
}

func TestChatUsecase_ProcessMessage(t *testing.T) {
	t.Run("appointment intent goes to the negotiator", func(t *testing.T) {
		record := &entity.IntentRecord{
			Agent:   entity.AgentAppointment,
			Details: &entity.BookingRequest{DoctorID: "dr_001"},
		}
		classifier := &fakeClassifier{records: []*entity.IntentRecord{record}}
		negotiation := &fakeNegotiation{resp: &dto.ChatResponse{Response: "booked", Agent: entity.ResponderAppointment}}
		uc := chatFixture(classifier, &fakeAdvisor{}, negotiation)

		resp, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "book me in"})

		require.NoError(t, err)
		assert.Equal(t, "booked", resp.Response)
		assert.Same(t, record, negotiation.record)
	})

	t.Run("medical intent goes to the advisor", func(t *testing.T) {
		classifier := &fakeClassifier{records: []*entity.IntentRecord{{Agent: entity.AgentMedical}}}
		advisor := &fakeAdvisor{answer: "Memantine is commonly prescribed."}
		uc := chatFixture(classifier, advisor, &fakeNegotiation{})

		resp, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "what helps with memory loss"})

		require.NoError(t, err)
		assert.Equal(t, advisor.answer, resp.Response)
		assert.Equal(t, entity.ResponderMedical, resp.Agent)
	})

	t.Run("advisor failure surfaces as an error", func(t *testing.T) {
		classifier := &fakeClassifier{records: []*entity.IntentRecord{{Agent: entity.AgentMedical}}}
		advisor := &fakeAdvisor{err: errors.New("model overloaded")}
		uc := chatFixture(classifier, advisor, &fakeNegotiation{})

		_, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "hi"})

		assert.ErrorIs(t, err, ErrAdvisorUnavailable)
	})

	t.Run("unrecognized intent echoes the classifier text", func(t *testing.T) {
		classifier := &fakeClassifier{records: []*entity.IntentRecord{{
			Agent:    entity.AgentOrchestrator,
			Response: "Hello! How can I help you today?",
		}}}
		uc := chatFixture(classifier, &fakeAdvisor{}, &fakeNegotiation{})

		resp, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "Hello! How can I help you today?", resp.Response)
		assert.Equal(t, entity.ResponderOrchestrator, resp.Agent)
	})

	t.Run("unrecognized intent with no text asks for clarification", func(t *testing.T) {
		classifier := &fakeClassifier{records: []*entity.IntentRecord{{Agent: entity.AgentOrchestrator}}}
		uc := chatFixture(classifier, &fakeAdvisor{}, &fakeNegotiation{})

		resp, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "???"})

		require.NoError(t, err)
		assert.Equal(t, msgClarify, resp.Response)
	})

	t.Run("classification is retried and succeeds", func(t *testing.T) {
		classifier := &fakeClassifier{
			errs:    []error{errors.New("transient"), errors.New("transient"), nil},
			records: []*entity.IntentRecord{nil, nil, {Agent: entity.AgentOrchestrator, Response: "hi"}},
		}
		uc := chatFixture(classifier, &fakeAdvisor{}, &fakeNegotiation{})

		resp, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Response)
		assert.Equal(t, 3, classifier.calls)
	})

	t.Run("persistent classification failure exhausts retries", func(t *testing.T) {
		transient := errors.New("transient")
		classifier := &fakeClassifier{errs: []error{transient, transient, transient}}
		uc := chatFixture(classifier, &fakeAdvisor{}, &fakeNegotiation{})

		_, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{Message: "hello"})

		assert.ErrorIs(t, err, ErrClassifierUnavailable)
		assert.Equal(t, 3, classifier.calls)
	})

	t.Run("conversation history is forwarded to the classifier", func(t *testing.T) {
		classifier := &fakeClassifier{records: []*entity.IntentRecord{{Agent: entity.AgentOrchestrator, Response: "ok"}}}
		uc := chatFixture(classifier, &fakeAdvisor{}, &fakeNegotiation{})

		_, err := uc.ProcessMessage(context.Background(), &dto.ChatRequest{
			Message: "and tomorrow?",
			History: []dto.HistoryTurn{
				{Role: "user", Content: "is dr_001 free today"},
				{Role: "assistant", Content: "No slots today."},
			},
		})

		require.NoError(t, err)
		require.Len(t, classifier.history, 2)
		assert.Equal(t, "is dr_001 free today", classifier.history[0].Content)
	})
}
