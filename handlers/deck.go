package handlers

import (
	"fmt"
	"net/http"

	"github.com/andrewpaige1/anki-api/decks"
	"github.com/andrewpaige1/anki-api/utils"
)

type DeckHandler struct {
	Decks *decks.Service
}

// GET /api/users/{username}/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	caller, _ := utils.GetUsername(r)

	infos, err := h.Decks.ListDecks(r.Context(), username, caller)
	if err != nil {
		writeError(w, "ListDecks", err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// GET /api/users/{username}/decks/{deckname}
func (h *DeckHandler) GetDeckInfo(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	deckname := r.PathValue("deckname")
	caller, _ := utils.GetUsername(r)

	info, err := h.Decks.GetDeckInfo(r.Context(), username, deckname, caller)
	if err != nil {
		writeError(w, "GetDeckInfo", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GET /api/users/{username}/decks/{deckname}/cards
func (h *DeckHandler) GetDeckWithCards(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	deckname := r.PathValue("deckname")
	caller, _ := utils.GetUsername(r)

	deck, err := h.Decks.GetDeckWithCards(r.Context(), username, deckname, caller)
	if err != nil {
		writeError(w, "GetDeckWithCards", err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

// GET /api/users/{username}/decks/{deckname}/stats
func (h *DeckHandler) GetDeckStats(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	deckname := r.PathValue("deckname")
	caller, _ := utils.GetUsername(r)

	stats, err := h.Decks.DeckStats(r.Context(), username, deckname, caller)
	if err != nil {
		writeError(w, "GetDeckStats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type reconcileRequest struct {
	Deck  decks.DeckPayload   `json:"deck"`
	Cards []decks.CardPayload `json:"cards"`
}

// PUT /api/users/{username}/decks
func (h *DeckHandler) ReconcileDeck(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	caller, _ := utils.GetUsername(r)

	var req reconcileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "ReconcileDeck", fmt.Errorf("%w: %v", decks.ErrValidation, err))
		return
	}

	result, err := h.Decks.Reconcile(r.Context(), username, caller, req.Deck, req.Cards)
	if err != nil {
		writeError(w, "ReconcileDeck", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// POST /api/users/{username}/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	caller, _ := utils.GetUsername(r)

	var req decks.DeckPayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "CreateDeck", fmt.Errorf("%w: %v", decks.ErrValidation, err))
		return
	}

	info, err := h.Decks.CreateDeck(r.Context(), username, caller, req)
	if err != nil {
		writeError(w, "CreateDeck", err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// DELETE /api/users/{username}/decks/{deckname}
func (h *DeckHandler) RemoveDeck(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	deckname := r.PathValue("deckname")
	caller, _ := utils.GetUsername(r)

	if err := h.Decks.RemoveDeck(r.Context(), username, deckname, caller); err != nil {
		writeError(w, "RemoveDeck", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
