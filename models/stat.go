package models

import (
	"time"
)

// Stat is one review event: a user saw a card and reported whether they got it right.
type Stat struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Datetime time.Time `gorm:"not null;index" json:"datetime"`
	Feedback bool      `gorm:"not null" json:"feedback"`
	CardID   *uint     `gorm:"index" json:"card_id"`
	Card     *Card     `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OwnerID  *uint     `gorm:"index" json:"-"`
	Owner    *User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
