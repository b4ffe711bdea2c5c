package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	h := NewHealthHandler()
	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "online", body.APIStatus)
	assert.Equal(t, serviceVersion, body.Version)
	assert.Equal(t, map[string]bool{"orchestrator": true, "medical": true, "appointment": true}, body.Agents)
	assert.NotEmpty(t, body.Timestamp)
}
