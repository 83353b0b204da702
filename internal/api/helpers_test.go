package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/leitner/internal/api/shared"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, p *mockPracticeService, c *mockCardService) http.Handler {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	if p == nil {
		p = &mockPracticeService{}
	}
	if c == nil {
		c = &mockCardService{}
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewPracticeHandler(p, log), NewCardHandler(c, log))
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error
}
