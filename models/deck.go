package models

// Deck represents a named collection of cards owned by one user.
// Names are unique per owner, not globally.
type Deck struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;size:100;uniqueIndex:idx_deck_owner_name" json:"name"`
	Color   string `gorm:"size:50" json:"color"`
	Public  bool   `gorm:"not null" json:"public"`
	OwnerID uint   `gorm:"not null;uniqueIndex:idx_deck_owner_name" json:"-"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Description *DeckDescription `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Cards       []Card           `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// DeckDescription holds the free-text description of a deck.
type DeckDescription struct {
	ID          uint   `gorm:"primaryKey"`
	DeckID      uint   `gorm:"not null;uniqueIndex"`
	Description string `gorm:"size:1000"`
}
