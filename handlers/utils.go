package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/anki-api/decks"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: failed to encode response: %v", err)
	}
}

// writeError maps service errors onto status codes. Missing and hidden
// resources both answer 404 with the same body.
func writeError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	switch {
	case errors.Is(err, decks.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, decks.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, decks.ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
