package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/leitner/internal/api/shared"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/service"
)

// CardHandler handles card management HTTP requests.
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card service cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /api/cards?tags=a,b.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListCards(r.Context(), shared.SplitList(r.URL.Query().Get("tags")))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// CreateCard handles POST /api/cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCardRequest(w, r)
	if !ok {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card created",
		slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(*card))
}

// EditCard handles PUT /api/cards/{id}.
func (h *CardHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req, ok := decodeCardRequest(w, r)
	if !ok {
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), cardID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(*card))
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cards.DeleteCard(r.Context(), cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportCards handles POST /api/cards/import.
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	inputs := make([]service.CardInput, len(req.Cards))
	for i, c := range req.Cards {
		inputs[i] = c.toInput()
	}

	result, err := h.cards.ImportCards(r.Context(), inputs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// decodeCardRequest reads and validates a CardRequest, writing the error
// response itself when it fails.
func decodeCardRequest(w http.ResponseWriter, r *http.Request) (CardRequest, bool) {
	var req CardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return req, false
	}
	return req, true
}
