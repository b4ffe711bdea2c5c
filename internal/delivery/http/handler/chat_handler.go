package handler

import (
	"encoding/json"
	"net/http"

	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/delivery/http/middleware"
	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/internal/usecase"
	"adrd-care-system/pkg/response"
	"adrd-care-system/pkg/validator"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

// Chat handles one conversational turn. The body shape is the raw
// NegotiationResponse contract, not the admin envelope.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	chatResponse, err := h.chatUsecase.ProcessMessage(r.Context(), &req)
	if err != nil {
		// Collaborator exhaustion (classifier or advisor) is the only error
		// surfaced here; the text stays generic, detail lives in the log.
		response.JSON(w, http.StatusInternalServerError, dto.ChatResponse{
			Response: middleware.MsgGenericFailure,
			Agent:    entity.ResponderSystem,
		})
		return
	}

	response.JSON(w, http.StatusOK, chatResponse)
}
