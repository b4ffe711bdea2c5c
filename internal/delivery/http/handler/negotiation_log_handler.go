package handler

import (
	"net/http"

	"adrd-care-system/internal/usecase"
	"adrd-care-system/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type NegotiationLogHandler struct {
	negotiationLogUsecase usecase.NegotiationLogUsecase
}

func NewNegotiationLogHandler(negotiationLogUsecase usecase.NegotiationLogUsecase) *NegotiationLogHandler {
	return &NegotiationLogHandler{
		negotiationLogUsecase: negotiationLogUsecase,
	}
}

func (h *NegotiationLogHandler) GetNegotiationLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid negotiation log ID", nil)
		return
	}

	negotiationLog, err := h.negotiationLogUsecase.GetNegotiationLog(r.Context(), logID)
	if err != nil {
		if err == usecase.ErrNegotiationLogNotFound {
			response.NotFound(w, "Negotiation log not found")
			return
		}
		response.InternalServerError(w, "Failed to get negotiation log")
		return
	}

	response.Success(w, http.StatusOK, "Negotiation log retrieved successfully", negotiationLog)
}

func (h *NegotiationLogHandler) GetAllNegotiationLogs(w http.ResponseWriter, r *http.Request) {
	negotiationLogs, err := h.negotiationLogUsecase.GetAllNegotiationLogs(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get negotiation logs")
		return
	}

	response.Success(w, http.StatusOK, "Negotiation logs retrieved successfully", negotiationLogs)
}
