package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"message": "Day advanced", "day": 3},
			expectedBody: `{"day":3,"message":"Day advanced"}`,
		},
		{
			name:         "empty list",
			status:       http.StatusOK,
			data:         []string{},
			expectedBody: `[]`,
		},
		{
			name:         "created",
			status:       http.StatusCreated,
			data:         MessageResponse{Message: "ok"},
			expectedBody: `{"message":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			RespondWithJSON(w, r, tt.status, tt.data)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/hint", nil)
	r = r.WithContext(WithTraceID(r.Context(), "trace-123"))

	RespondWithError(w, r, http.StatusNotFound, "Card not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Card not found", body.Error)
	assert.Equal(t, "trace-123", body.TraceID)
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	log, buf := logger.NewTestLogger(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/update", nil)
	r = r.WithContext(logger.WithLogger(r.Context(), log))

	err := errors.New("dial tcp db.example.com:5432: password=hunter2 rejected")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.NotContains(t, w.Body.String(), "db.example.com")

	logged := buf.String()
	assert.Contains(t, logged, "API error response")
	assert.Contains(t, logged, `"level":"ERROR"`)
	assert.False(t, strings.Contains(logged, "hunter2"), "log must not contain the password")
}
