package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/andrewpaige1/anki-api/decks"
	"github.com/andrewpaige1/anki-api/utils"
)

// GET /api/users/{username}/decks/{deckname}/next-card
func (h *DeckHandler) PullNextCard(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	deckname := r.PathValue("deckname")
	caller, _ := utils.GetUsername(r)

	card, err := h.Decks.PullNextCard(r.Context(), username, deckname, caller)
	if err != nil {
		writeError(w, "PullNextCard", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// POST /api/cards/{cardID}/feedback
func (h *DeckHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseUint(r.PathValue("cardID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid card ID", http.StatusBadRequest)
		return
	}
	caller, _ := utils.GetUsername(r)

	var req struct {
		Feedback *bool `json:"feedback"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "PostFeedback", fmt.Errorf("%w: %v", decks.ErrValidation, err))
		return
	}
	if req.Feedback == nil {
		writeError(w, "PostFeedback", fmt.Errorf("%w: feedback is required", decks.ErrValidation))
		return
	}

	stat, err := h.Decks.PostFeedback(r.Context(), uint(cardID), caller, *req.Feedback)
	if err != nil {
		writeError(w, "PostFeedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, stat)
}
