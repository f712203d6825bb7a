package handlers

import (
	"net/http"

	"github.com/andrewpaige1/anki-api/utils"
)

// GET /api/me
func (h *DeckHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUsername(r)

	info, err := h.Decks.Me(r.Context(), caller)
	if err != nil {
		writeError(w, "GetMe", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
