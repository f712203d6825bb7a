package middleware

import (
	"log"
	"net/http"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/anki-api/models"
	"github.com/andrewpaige1/anki-api/utils"
)

// SyncUserMiddleware ensures the token subject exists in the users table
// before a write handler runs. Anonymous requests pass through untouched.
func SyncUserMiddleware(db *gorm.DB) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			username, ok := utils.GetUsername(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user := models.User{Username: username}
			result := db.WithContext(r.Context()).
				Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
				Create(&user)
			if result.Error != nil {
				http.Error(w, "Failed to sync user", http.StatusInternalServerError)
				log.Println("SyncUserMiddleware: database error:", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("SyncUserMiddleware: created new user %s\n", user.Username)
			}

			next.ServeHTTP(w, r)
		}
	}
}
