package decks

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/andrewpaige1/anki-api/models"
)

// Reconcile merges a client-submitted deck and its cards into the stored
// rows of owner. Each of deck, description and card is updated when it
// already exists under the deck's scope and inserted otherwise.
//
// Ids that exist under another owner (decks) or another deck (cards) are
// rejected with ErrNotFound. The whole batch is one transaction.
func (s *Service) Reconcile(ctx context.Context, owner, caller string, deckIn DeckPayload, cardsIn []CardPayload) (ReconcileResult, error) {
	if err := s.check("deck", deckIn); err != nil {
		return ReconcileResult{}, err
	}
	for i, c := range cardsIn {
		if err := s.check(fmt.Sprintf("cards[%d]", i), c); err != nil {
			return ReconcileResult{}, err
		}
	}

	var result ReconcileResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.writableOwner(tx, owner, caller)
		if err != nil {
			return err
		}

		deck, created, err := upsertDeck(tx, user, deckIn)
		if err != nil {
			return err
		}

		desc, err := upsertDescription(tx, deck.ID, deckIn.Description)
		if err != nil {
			return err
		}
		deck.Description = &desc

		cards := make([]models.Card, 0, len(cardsIn))
		for i, c := range cardsIn {
			card, err := upsertCard(tx, deck.ID, c)
			if err != nil {
				return fmt.Errorf("cards[%d]: %w", i, err)
			}
			cards = append(cards, card)
		}

		result = ReconcileResult{Deck: newDeckInfo(deck), Cards: cards, Created: created}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	log.Printf("Reconcile: deck id=%d of %q saved (created=%v, cards=%d)", result.Deck.ID, owner, result.Created, len(result.Cards))
	return result, nil
}

func upsertDeck(tx *gorm.DB, owner models.User, in DeckPayload) (models.Deck, bool, error) {
	var key func(*gorm.DB) *gorm.DB
	if in.ID != nil {
		id := *in.ID
		foreign, err := existsWhere(tx, &models.Deck{}, "id = ? AND owner_id <> ?", id, owner.ID)
		if err != nil {
			return models.Deck{}, false, fmt.Errorf("check deck %d: %w", id, err)
		}
		if foreign {
			return models.Deck{}, false, fmt.Errorf("deck %d of %q: %w", id, owner.Username, ErrNotFound)
		}
		key = func(db *gorm.DB) *gorm.DB {
			return db.Where("id = ? AND owner_id = ?", id, owner.ID)
		}
	}

	deck, created, err := upsertByKey(tx, key, func(d *models.Deck) {
		d.Name = in.Name
		d.Color = in.Color
		d.Public = in.Public
		d.OwnerID = owner.ID
	})
	if err != nil {
		return deck, false, fmt.Errorf("save deck %q: %w", in.Name, err)
	}
	return deck, created, nil
}

func upsertDescription(tx *gorm.DB, deckID uint, text string) (models.DeckDescription, error) {
	desc, _, err := upsertByKey(tx,
		func(db *gorm.DB) *gorm.DB { return db.Where("deck_id = ?", deckID) },
		func(d *models.DeckDescription) {
			d.DeckID = deckID
			d.Description = text
		})
	if err != nil {
		return desc, fmt.Errorf("save description of deck %d: %w", deckID, err)
	}
	return desc, nil
}

func upsertCard(tx *gorm.DB, deckID uint, in CardPayload) (models.Card, error) {
	var key func(*gorm.DB) *gorm.DB
	if in.ID != nil {
		id := *in.ID
		foreign, err := existsWhere(tx, &models.Card{}, "id = ? AND deck_id <> ?", id, deckID)
		if err != nil {
			return models.Card{}, fmt.Errorf("check card %d: %w", id, err)
		}
		if foreign {
			return models.Card{}, fmt.Errorf("card %d: %w", id, ErrNotFound)
		}
		key = func(db *gorm.DB) *gorm.DB {
			return db.Where("id = ? AND deck_id = ?", id, deckID)
		}
	}

	card, _, err := upsertByKey(tx, key, func(c *models.Card) {
		c.Question = in.Question
		c.Answer = in.Answer
		c.DeckID = deckID
	})
	if err != nil {
		return card, fmt.Errorf("save card: %w", err)
	}
	return card, nil
}

// CreateDeck inserts a new deck with its description. Any id in the payload
// is ignored.
func (s *Service) CreateDeck(ctx context.Context, owner, caller string, in DeckPayload) (DeckInfo, error) {
	if err := s.check("deck", in); err != nil {
		return DeckInfo{}, err
	}

	var deck models.Deck
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.writableOwner(tx, owner, caller)
		if err != nil {
			return err
		}

		deck, _, err = upsertByKey(tx, nil, func(d *models.Deck) {
			d.Name = in.Name
			d.Color = in.Color
			d.Public = in.Public
			d.OwnerID = user.ID
		})
		if err != nil {
			return fmt.Errorf("create deck %q: %w", in.Name, err)
		}

		desc, err := upsertDescription(tx, deck.ID, in.Description)
		if err != nil {
			return err
		}
		deck.Description = &desc
		return nil
	})
	if err != nil {
		return DeckInfo{}, err
	}

	log.Printf("CreateDeck: created deck id=%d %q for %q", deck.ID, deck.Name, owner)
	return newDeckInfo(deck), nil
}

// RemoveDeck deletes the deck; its description, cards and their stats go
// with it through the foreign key cascades.
func (s *Service) RemoveDeck(ctx context.Context, owner, deckName, caller string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.writableOwner(tx, owner, caller)
		if err != nil {
			return err
		}
		deck, err := findDeck(tx, user, deckName)
		if err != nil {
			return err
		}

		result := tx.Delete(&models.Deck{}, deck.ID)
		if result.Error != nil {
			return fmt.Errorf("delete deck %d: %w", deck.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("deck %q of %q: %w", deckName, owner, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("RemoveDeck: deleted deck %q of %q", deckName, owner)
	return nil
}
