package handler

import (
	"net/http"
	"time"

	"adrd-care-system/pkg/response"
)

const serviceVersion = "1.0.1"

type HealthHandler struct {
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthStatus struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Agents    map[string]bool `json:"agents"`
	Version   string          `json:"version"`
	APIStatus string          `json:"api_status"`
}

// Check reports overall service health for monitoring systems.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Agents: map[string]bool{
			"orchestrator": true,
			"medical":      true,
			"appointment":  true,
		},
		Version:   serviceVersion,
		APIStatus: "online",
	})
}
