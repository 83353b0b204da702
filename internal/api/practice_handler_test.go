package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/domain/leitner"
	"github.com/phrazzld/leitner/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPractice(t *testing.T) {
	var gotTags []string
	svc := &mockPracticeService{
		GetSessionFn: func(ctx context.Context, tags []string) (*practice.Session, error) {
			gotTags = tags
			return &practice.Session{
				Cards: []domain.Card{{ID: uuid.New(), Front: "2 + 2", Back: "4", Tags: []string{"math"}}},
				Day:   3,
			}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/practice?tags=math,%20science", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"math", "science"}, gotTags)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.EqualValues(t, 3, body["day"])
	cards, ok := body["cards"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "2 + 2", card["front"])
	assert.Contains(t, card, "createdAt", "session cards use the same casing as /api/cards")
	assert.NotContains(t, card, "created_at")
}

func TestGetPracticeEmptyIsArray(t *testing.T) {
	svc := &mockPracticeService{
		GetSessionFn: func(ctx context.Context, tags []string) (*practice.Session, error) {
			return &practice.Session{Day: 1}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/practice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cards":[],"day":1}`, w.Body.String())
}

func TestGetPracticeServiceError(t *testing.T) {
	svc := &mockPracticeService{
		GetSessionFn: func(ctx context.Context, tags []string) (*practice.Session, error) {
			return nil, errors.New("database is locked")
		},
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/practice", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w))
}

func TestUpdate(t *testing.T) {
	notFound := &practice.ServiceError{Operation: "submit_review", Message: "card not found", Err: practice.ErrCardNotFound}

	tests := []struct {
		name           string
		body           string
		reviewErr      error
		expectedStatus int
		expectedError  string
		expectedD      domain.Difficulty
	}{
		{
			name:           "numeric difficulty",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago","difficulty":2}`,
			expectedStatus: http.StatusOK,
			expectedD:      domain.DifficultyEasy,
		},
		{
			name:           "named difficulty",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago","difficulty":"hard"}`,
			expectedStatus: http.StatusOK,
			expectedD:      domain.DifficultyHard,
		},
		{
			name:           "wrong is zero",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago","difficulty":0}`,
			expectedStatus: http.StatusOK,
			expectedD:      domain.DifficultyWrong,
		},
		{
			name:           "out of range difficulty",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago","difficulty":5}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid difficulty value",
		},
		{
			name:           "unknown difficulty name",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago","difficulty":"medium"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid difficulty value",
		},
		{
			name:           "missing difficulty",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Santiago"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid difficulty value",
		},
		{
			name:           "missing card back",
			body:           `{"cardFront":"Capital of Chile","difficulty":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid cardBack: required field",
		},
		{
			name:           "malformed body",
			body:           `{"cardFront":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
		{
			name:           "unknown card",
			body:           `{"cardFront":"Capital of Chile","cardBack":"Lima","difficulty":1}`,
			reviewErr:      notFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Card not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			svc := &mockPracticeService{
				SubmitReviewFn: func(ctx context.Context, key domain.CardKey, d domain.Difficulty) (*domain.PracticeRecord, error) {
					called = true
					if tt.reviewErr != nil {
						return nil, tt.reviewErr
					}
					assert.Equal(t, "Capital of Chile", key.Front)
					assert.Equal(t, tt.expectedD, d)
					rec := domain.NewPracticeRecord(key, d, 1, 3, time.Now())
					return &rec, nil
				},
			}
			router := newTestRouter(t, svc, nil)

			w := doRequest(t, router, http.MethodPost, "/api/update", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w))
				assert.Equal(t, tt.reviewErr != nil, called)
				return
			}

			var resp UpdateResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Update successful", resp.Message)
			assert.Equal(t, 1, resp.PreviousBucket)
			assert.Equal(t, 3, resp.NewBucket)
		})
	}
}

func TestGetHint(t *testing.T) {
	svc := &mockPracticeService{
		GetHintFn: func(ctx context.Context, key domain.CardKey) (string, error) {
			if key.Back != "Ottawa" {
				return "", fmt.Errorf("lookup: %w", practice.ErrCardNotFound)
			}
			return "Cap***************", nil
		},
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/hint?cardFront=Capital%20of%20Canada&cardBack=Ottawa", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HintResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Cap***************", resp.Hint)

	w = doRequest(t, router, http.MethodGet, "/api/hint?cardFront=Capital%20of%20Canada&cardBack=Toronto", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Card not found", decodeError(t, w))

	for _, target := range []string{"/api/hint", "/api/hint?cardFront=x", "/api/hint?cardFront=&cardBack=y"} {
		w = doRequest(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "Missing or invalid query parameters", decodeError(t, w))
	}
}

func TestGetProgress(t *testing.T) {
	svc := &mockPracticeService{
		GetProgressFn: func(ctx context.Context) (*practice.Progress, error) {
			b := leitner.Buckets{}
			b.Add(0, domain.Card{Front: "a", Back: "1"})
			b.Add(5, domain.Card{Front: "b", Back: "2"})
			return &practice.Progress{
				ProgressStats: leitner.ComputeProgress(b),
				History: leitner.SummarizeHistory([]domain.PracticeRecord{
					{Difficulty: domain.DifficultyEasy},
				}),
				Day: 2,
			}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/progress", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.EqualValues(t, 2, body["totalCards"])
	assert.EqualValues(t, 2, body["day"])
	assert.EqualValues(t, 0, body["minBucket"])
	assert.EqualValues(t, 5, body["maxBucket"])

	stages, ok := body["stages"].([]any)
	require.True(t, ok)
	require.Len(t, stages, 3)
	first := stages[0].(map[string]any)
	assert.Equal(t, "Beginner", first["name"])
	assert.EqualValues(t, 50, first["percentage"])

	history := body["history"].(map[string]any)
	byDifficulty := history["byDifficulty"].(map[string]any)
	assert.EqualValues(t, 1, byDifficulty["easy"])
}

func TestNextDay(t *testing.T) {
	svc := &mockPracticeService{
		AdvanceDayFn: func(ctx context.Context) (int, error) { return 8, nil },
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodPost, "/api/day/next", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DayResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, DayResponse{Message: "Day advanced", Day: 8}, resp)
}

func TestHistoryEndpoints(t *testing.T) {
	var gotLimit int
	svc := &mockPracticeService{
		HistoryFn: func(ctx context.Context, limit int) ([]domain.PracticeRecord, error) {
			gotLimit = limit
			return []domain.PracticeRecord{
				domain.NewPracticeRecord(domain.CardKey{Front: "a", Back: "1"}, domain.DifficultyWrong, 2, 0, time.Now()),
			}, nil
		},
		ClearHistoryFn: func(ctx context.Context) (int64, error) { return 4, nil },
	}
	router := newTestRouter(t, svc, nil)

	w := doRequest(t, router, http.MethodGet, "/api/history?limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, gotLimit)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "wrong", records[0]["difficulty"])

	for _, target := range []string{"/api/history?limit=abc", "/api/history?limit=-1", "/api/history?limit=5000"} {
		w = doRequest(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "Invalid limit: must be an integer from 0 to 1000", decodeError(t, w), target)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cleared ClearHistoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cleared))
	assert.Equal(t, int64(4), cleared.Deleted)
}

func TestEmptyHistoryIsArray(t *testing.T) {
	router := newTestRouter(t, &mockPracticeService{}, nil)

	w := doRequest(t, router, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
