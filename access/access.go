// Package access decides which decks a caller may see or change.
//
// A caller is identified by username; the empty string is the anonymous
// caller and never matches an owner. Every function here is pure.
package access

import "github.com/andrewpaige1/anki-api/models"

// Decision is the outcome of a visibility check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Scope says which of a user's decks a listing may include.
type Scope int

const (
	PublicOnly Scope = iota
	All
)

// ResolveDeckVisibility decides whether caller may read deck, which belongs
// to target. Rules apply in order: auth disabled, public deck, owner.
func ResolveDeckVisibility(target string, deck models.Deck, caller string, authEnabled bool) Decision {
	switch {
	case !authEnabled:
		return Allow
	case deck.Public:
		return Allow
	case isOwner(target, caller):
		return Allow
	default:
		return Deny
	}
}

// ListScope is the listing form of ResolveDeckVisibility.
func ListScope(target, caller string, authEnabled bool) Scope {
	if !authEnabled || isOwner(target, caller) {
		return All
	}
	return PublicOnly
}

// FilterDecks keeps the decks of target that caller may see.
func FilterDecks(target string, decks []models.Deck, caller string, authEnabled bool) []models.Deck {
	if ListScope(target, caller, authEnabled) == All {
		return decks
	}
	visible := make([]models.Deck, 0, len(decks))
	for _, d := range decks {
		if d.Public {
			visible = append(visible, d)
		}
	}
	return visible
}

// CanModify reports whether caller may write to decks owned by owner.
func CanModify(owner, caller string, authEnabled bool) bool {
	return !authEnabled || isOwner(owner, caller)
}

func isOwner(target, caller string) bool {
	return caller != "" && caller == target
}
