package models

// Card is a single question/answer pair inside a deck
type Card struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Question string `gorm:"not null;size:1000" json:"question"`
	Answer   string `gorm:"not null;size:1000" json:"answer"`
	DeckID   uint   `gorm:"not null;index" json:"-"`
}
