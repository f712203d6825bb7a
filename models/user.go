package models

// User is a study account. Rows are provisioned by the identity layer;
// deck operations only read them.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null;size:150" json:"username"`
}
