package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/anki-api/middleware"
)

// NewRouter registers every API route. authMiddleware runs in front of the
// whole mux. Write routes and /api/me also sync the caller into the users
// table, so /api/me can report the caller's id.
func NewRouter(h *DeckHandler, db *gorm.DB, authMiddleware func(http.Handler) http.Handler) http.Handler {
	syncUser := middleware.SyncUserMiddleware(db)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", Health)
	mux.HandleFunc("GET /api/me", syncUser(h.GetMe))

	// Decks
	mux.HandleFunc("GET /api/users/{username}/decks", h.ListDecks)
	mux.HandleFunc("POST /api/users/{username}/decks", syncUser(h.CreateDeck))
	mux.HandleFunc("PUT /api/users/{username}/decks", syncUser(h.ReconcileDeck))
	mux.HandleFunc("GET /api/users/{username}/decks/{deckname}", h.GetDeckInfo)
	mux.HandleFunc("DELETE /api/users/{username}/decks/{deckname}", syncUser(h.RemoveDeck))
	mux.HandleFunc("GET /api/users/{username}/decks/{deckname}/cards", h.GetDeckWithCards)
	mux.HandleFunc("GET /api/users/{username}/decks/{deckname}/stats", h.GetDeckStats)

	// Study
	mux.HandleFunc("GET /api/users/{username}/decks/{deckname}/next-card", h.PullNextCard)
	mux.HandleFunc("POST /api/cards/{cardID}/feedback", syncUser(h.PostFeedback))

	return authMiddleware(mux)
}
