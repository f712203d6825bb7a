// Package decks implements the deck and card operations behind the HTTP API:
// visibility-checked reads, the deck reconciler, and the study flow.
package decks

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/andrewpaige1/anki-api/access"
	"github.com/andrewpaige1/anki-api/models"
)

// Service runs deck operations against the database. Callers are identified
// by username; "" is the anonymous caller.
type Service struct {
	db          *gorm.DB
	authEnabled bool
	validate    *validator.Validate
	now         func() time.Time
}

func NewService(db *gorm.DB, authEnabled bool) *Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		db:          db,
		authEnabled: authEnabled,
		validate:    validate,
		now:         time.Now,
	}
}

func (s *Service) check(what string, v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s: field %q failed %q check", ErrValidation, what, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %s: %v", ErrValidation, what, err)
}

func findUser(db *gorm.DB, username string) (models.User, error) {
	var user models.User
	if username == "" {
		return user, fmt.Errorf("user: %w", ErrNotFound)
	}
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return user, fmt.Errorf("find user %q: %w", username, err)
	}
	return user, nil
}

func findDeck(db *gorm.DB, owner models.User, name string) (models.Deck, error) {
	var deck models.Deck
	err := db.Preload("Description").
		Where("owner_id = ? AND name = ?", owner.ID, name).
		First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return deck, fmt.Errorf("deck %q of %q: %w", name, owner.Username, ErrNotFound)
	}
	if err != nil {
		return deck, fmt.Errorf("find deck %q of %q: %w", name, owner.Username, err)
	}
	return deck, nil
}

// visibleDeck loads target's deck and applies the visibility policy. A denied
// deck is reported exactly like a missing one.
func (s *Service) visibleDeck(db *gorm.DB, target, deckName, caller string) (models.User, models.Deck, error) {
	user, err := findUser(db, target)
	if err != nil {
		return user, models.Deck{}, err
	}
	deck, err := findDeck(db, user, deckName)
	if err != nil {
		return user, deck, err
	}
	if access.ResolveDeckVisibility(target, deck, caller, s.authEnabled) == access.Deny {
		return user, models.Deck{}, fmt.Errorf("deck %q of %q: %w", deckName, target, ErrNotFound)
	}
	return user, deck, nil
}

// writableOwner resolves owner and checks that caller may write to their decks.
func (s *Service) writableOwner(db *gorm.DB, owner, caller string) (models.User, error) {
	if s.authEnabled && caller == "" {
		return models.User{}, ErrUnauthenticated
	}
	user, err := findUser(db, owner)
	if err != nil {
		return user, err
	}
	if !access.CanModify(owner, caller, s.authEnabled) {
		return models.User{}, fmt.Errorf("decks of %q: %w", owner, ErrNotFound)
	}
	return user, nil
}

// Me reports who the caller is and whether auth is enforced.
func (s *Service) Me(ctx context.Context, caller string) (CallerInfo, error) {
	info := CallerInfo{
		Username:    caller,
		Anonymous:   caller == "",
		AuthEnabled: s.authEnabled,
	}
	if caller == "" {
		return info, nil
	}
	user, err := findUser(s.db.WithContext(ctx), caller)
	if err != nil {
		return CallerInfo{}, err
	}
	info.ID = user.ID
	return info, nil
}
