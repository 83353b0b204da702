package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/leitner/internal/api/shared"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/service/practice"
)

// PracticeHandler serves the practice workflow endpoints.
type PracticeHandler struct {
	practice practice.Service
	logger   *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(svc practice.Service, logger *slog.Logger) *PracticeHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practice service cannot be nil for PracticeHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PracticeHandler{
		practice: svc,
		logger:   logger.With(slog.String("component", "practice_handler")),
	}
}

// GetPractice handles GET /api/practice.
// The optional tags query parameter is a comma-separated list.
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	tags := shared.SplitList(r.URL.Query().Get("tags"))

	session, err := h.practice.GetSession(r.Context(), tags)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Cards: cardsToResponse(session.Cards),
		Day:   session.Day,
	})
}

// Update handles POST /api/update.
func (h *PracticeHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, domain.ErrInvalidDifficulty) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidDifficulty, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	if req.Difficulty == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidDifficulty)
		return
	}

	key := domain.CardKey{Front: req.CardFront, Back: req.CardBack}
	record, err := h.practice.SubmitReview(r.Context(), key, *req.Difficulty)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("update applied",
		slog.Int("previous_bucket", record.PreviousBucket),
		slog.Int("new_bucket", record.NewBucket))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{
		Message:        "Update successful",
		PreviousBucket: record.PreviousBucket,
		NewBucket:      record.NewBucket,
	})
}

// GetHint handles GET /api/hint?cardFront=...&cardBack=...
func (h *PracticeHandler) GetHint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	front, back := q.Get("cardFront"), q.Get("cardBack")
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMissingQuery)
		return
	}

	hint, err := h.practice.GetHint(r.Context(), domain.CardKey{Front: front, Back: back})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HintResponse{Hint: hint})
}

// GetProgress handles GET /api/progress.
func (h *PracticeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.practice.GetProgress(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// NextDay handles POST /api/day/next.
func (h *PracticeHandler) NextDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.practice.AdvanceDay(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DayResponse{Message: "Day advanced", Day: day})
}

// GetHistory handles GET /api/history?limit=N.
func (h *PracticeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidLimit, err)
		return
	}

	records, err := h.practice.History(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if records == nil {
		records = []domain.PracticeRecord{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// ClearHistory handles DELETE /api/history.
func (h *PracticeHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.practice.ClearHistory(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClearHistoryResponse{Message: "History cleared", Deleted: n})
}
