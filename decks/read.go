package decks

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/anki-api/access"
	"github.com/andrewpaige1/anki-api/models"
)

// ListDecks returns target's decks that caller may see, oldest first.
func (s *Service) ListDecks(ctx context.Context, target, caller string) ([]DeckInfo, error) {
	db := s.db.WithContext(ctx)
	user, err := findUser(db, target)
	if err != nil {
		return nil, err
	}

	var decks []models.Deck
	err = db.Preload("Description").Where("owner_id = ?", user.ID).Order("id").Find(&decks).Error
	if err != nil {
		return nil, fmt.Errorf("list decks of %q: %w", target, err)
	}
	decks = access.FilterDecks(target, decks, caller, s.authEnabled)

	infos := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		infos = append(infos, newDeckInfo(d))
	}
	return infos, nil
}

func (s *Service) GetDeckInfo(ctx context.Context, target, deckName, caller string) (DeckInfo, error) {
	_, deck, err := s.visibleDeck(s.db.WithContext(ctx), target, deckName, caller)
	if err != nil {
		return DeckInfo{}, err
	}
	return newDeckInfo(deck), nil
}

// GetDeckWithCards returns the deck and all of its cards in id order.
func (s *Service) GetDeckWithCards(ctx context.Context, target, deckName, caller string) (DeckWithCards, error) {
	db := s.db.WithContext(ctx)
	_, deck, err := s.visibleDeck(db, target, deckName, caller)
	if err != nil {
		return DeckWithCards{}, err
	}

	cards := []models.Card{}
	if err := db.Where("deck_id = ?", deck.ID).Order("id").Find(&cards).Error; err != nil {
		return DeckWithCards{}, fmt.Errorf("load cards of deck %d: %w", deck.ID, err)
	}
	return DeckWithCards{Deck: newDeckInfo(deck), Cards: cards}, nil
}

// DeckStats summarises target's own review events on the deck.
func (s *Service) DeckStats(ctx context.Context, target, deckName, caller string) (DeckStats, error) {
	db := s.db.WithContext(ctx)
	user, deck, err := s.visibleDeck(db, target, deckName, caller)
	if err != nil {
		return DeckStats{}, err
	}

	stats := DeckStats{Deck: deck.Name}
	if err := db.Model(&models.Card{}).Where("deck_id = ?", deck.ID).Count(&stats.Cards).Error; err != nil {
		return DeckStats{}, fmt.Errorf("count cards of deck %d: %w", deck.ID, err)
	}

	events, err := deckEvents(db, deck.ID, &user.ID)
	if err != nil {
		return DeckStats{}, err
	}

	reviewed := make(map[uint]struct{})
	for _, ev := range events {
		stats.Reviews++
		if ev.Feedback {
			stats.Correct++
		} else {
			stats.Incorrect++
		}
		if ev.CardID != nil {
			reviewed[*ev.CardID] = struct{}{}
		}
		if stats.LastReviewed == nil || ev.Datetime.After(*stats.LastReviewed) {
			at := ev.Datetime
			stats.LastReviewed = &at
		}
	}
	stats.ReviewedCards = len(reviewed)
	return stats, nil
}
