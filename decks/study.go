package decks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/anki-api/access"
	"github.com/andrewpaige1/anki-api/models"
)

// PostFeedback records one review of a card by caller. The card's deck must
// be visible to caller.
func (s *Service) PostFeedback(ctx context.Context, cardID uint, caller string, correct bool) (models.Stat, error) {
	if s.authEnabled && caller == "" {
		return models.Stat{}, ErrUnauthenticated
	}
	db := s.db.WithContext(ctx)

	var card models.Card
	err := db.First(&card, cardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Stat{}, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}
	if err != nil {
		return models.Stat{}, fmt.Errorf("find card %d: %w", cardID, err)
	}

	var deck models.Deck
	if err := db.Preload("Owner").First(&deck, card.DeckID).Error; err != nil {
		return models.Stat{}, fmt.Errorf("find deck of card %d: %w", cardID, err)
	}
	if access.ResolveDeckVisibility(deck.Owner.Username, deck, caller, s.authEnabled) == access.Deny {
		return models.Stat{}, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}

	stat := models.Stat{
		Datetime: s.now().UTC(),
		Feedback: correct,
		CardID:   &card.ID,
	}
	if caller != "" {
		user, err := findUser(db, caller)
		if err != nil {
			return models.Stat{}, err
		}
		stat.OwnerID = &user.ID
	}

	if err := db.Omit(clause.Associations).Create(&stat).Error; err != nil {
		return models.Stat{}, fmt.Errorf("save feedback on card %d: %w", cardID, err)
	}

	log.Printf("PostFeedback: card=%d caller=%q correct=%v", cardID, caller, correct)
	return stat, nil
}

// PullNextCard picks the card caller should study next from target's deck,
// based on caller's own review history.
func (s *Service) PullNextCard(ctx context.Context, target, deckName, caller string) (models.Card, error) {
	db := s.db.WithContext(ctx)
	_, deck, err := s.visibleDeck(db, target, deckName, caller)
	if err != nil {
		return models.Card{}, err
	}

	var cards []models.Card
	if err := db.Where("deck_id = ?", deck.ID).Order("id").Find(&cards).Error; err != nil {
		return models.Card{}, fmt.Errorf("load cards of deck %d: %w", deck.ID, err)
	}
	if len(cards) == 0 {
		return models.Card{}, fmt.Errorf("deck %q has no cards: %w", deckName, ErrNotFound)
	}

	var reviewer *uint
	if caller != "" {
		user, err := findUser(db, caller)
		switch {
		case err == nil:
			reviewer = &user.ID
		case errors.Is(err, ErrNotFound):
			// caller has never been synced, so has no history
			next, _ := pickNextCard(cards, nil)
			return next, nil
		default:
			return models.Card{}, err
		}
	}

	events, err := deckEvents(db, deck.ID, reviewer)
	if err != nil {
		return models.Card{}, err
	}

	next, _ := pickNextCard(cards, events)
	return next, nil
}

// deckEvents loads the review events on a deck's cards by one reviewer, in
// the order they happened. A nil reviewer selects anonymous events.
func deckEvents(db *gorm.DB, deckID uint, reviewer *uint) ([]models.Stat, error) {
	query := db.Where("card_id IN (?)", db.Model(&models.Card{}).Select("id").Where("deck_id = ?", deckID))
	if reviewer != nil {
		query = query.Where("owner_id = ?", *reviewer)
	} else {
		query = query.Where("owner_id IS NULL")
	}

	var events []models.Stat
	if err := query.Order("datetime").Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load stats of deck %d: %w", deckID, err)
	}
	return events, nil
}

type cardHistory struct {
	reviews     int
	correct     int
	last        time.Time
	lastCorrect bool
}

// pickNextCard orders cards by study priority and returns the first:
// never-reviewed cards, then cards last answered wrong (longest ago first),
// then by accuracy, then by time since the last review. Ties go to the
// lower id. events must be in chronological order.
func pickNextCard(cards []models.Card, events []models.Stat) (models.Card, bool) {
	if len(cards) == 0 {
		return models.Card{}, false
	}

	history := make(map[uint]*cardHistory, len(cards))
	for _, ev := range events {
		if ev.CardID == nil {
			continue
		}
		h, ok := history[*ev.CardID]
		if !ok {
			h = &cardHistory{}
			history[*ev.CardID] = h
		}
		h.reviews++
		if ev.Feedback {
			h.correct++
		}
		if !ev.Datetime.Before(h.last) {
			h.last = ev.Datetime
			h.lastCorrect = ev.Feedback
		}
	}

	best := 0
	for i := 1; i < len(cards); i++ {
		if studyBefore(cards[i], cards[best], history) {
			best = i
		}
	}
	return cards[best], true
}

func studyBefore(a, b models.Card, history map[uint]*cardHistory) bool {
	ha, hb := history[a.ID], history[b.ID]
	switch {
	case ha == nil && hb == nil:
		return a.ID < b.ID
	case ha == nil:
		return true
	case hb == nil:
		return false
	}

	if ha.lastCorrect != hb.lastCorrect {
		return !ha.lastCorrect
	}
	if !ha.lastCorrect && !ha.last.Equal(hb.last) {
		return ha.last.Before(hb.last)
	}

	// compare correct/reviews without floats
	left, right := ha.correct*hb.reviews, hb.correct*ha.reviews
	if left != right {
		return left < right
	}
	if !ha.last.Equal(hb.last) {
		return ha.last.Before(hb.last)
	}
	return a.ID < b.ID
}
