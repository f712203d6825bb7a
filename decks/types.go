package decks

import (
	"time"

	"github.com/andrewpaige1/anki-api/models"
)

// DeckPayload is the client's view of a deck. A nil ID asks for a new deck.
type DeckPayload struct {
	ID          *uint  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Color       string `json:"color" validate:"max=50"`
	Public      bool   `json:"public"`
	Description string `json:"description" validate:"max=1000"`
}

// CardPayload is the client's view of a card. A nil ID asks for a new card.
type CardPayload struct {
	ID       *uint  `json:"id"`
	Question string `json:"question" validate:"required,max=1000"`
	Answer   string `json:"answer" validate:"required,max=1000"`
}

// DeckInfo is a deck together with its description.
type DeckInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

func newDeckInfo(deck models.Deck) DeckInfo {
	info := DeckInfo{
		ID:     deck.ID,
		Name:   deck.Name,
		Color:  deck.Color,
		Public: deck.Public,
	}
	if deck.Description != nil {
		info.Description = deck.Description.Description
	}
	return info
}

type DeckWithCards struct {
	Deck  DeckInfo      `json:"deck"`
	Cards []models.Card `json:"cards"`
}

// ReconcileResult is the stored state after a reconcile. Created reports
// whether the deck row was inserted rather than updated.
type ReconcileResult struct {
	Deck    DeckInfo      `json:"deck"`
	Cards   []models.Card `json:"cards"`
	Created bool          `json:"created"`
}

// DeckStats summarises one user's review events on a deck.
type DeckStats struct {
	Deck          string     `json:"deck"`
	Cards         int64      `json:"cards"`
	Reviews       int        `json:"reviews"`
	Correct       int        `json:"correct"`
	Incorrect     int        `json:"incorrect"`
	ReviewedCards int        `json:"reviewed_cards"`
	LastReviewed  *time.Time `json:"last_reviewed,omitempty"`
}

type CallerInfo struct {
	ID          uint   `json:"id,omitempty"`
	Username    string `json:"username"`
	Anonymous   bool   `json:"anonymous"`
	AuthEnabled bool   `json:"auth_enabled"`
}
