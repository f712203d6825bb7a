package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/andrewpaige1/anki-api/auth"
	"github.com/andrewpaige1/anki-api/config"
	"github.com/andrewpaige1/anki-api/decks"
	"github.com/andrewpaige1/anki-api/handlers"
	"github.com/andrewpaige1/anki-api/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	env, err := config.LoadEnvironment()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database connection
	db, err := config.Connect(env)
	if err != nil {
		log.Fatal(err)
	}

	authMiddleware, err := middleware.EnsureValidToken(auth.SettingsFromEnvironment(env))
	if err != nil {
		log.Fatal(err)
	}
	if !env.AuthEnabled {
		log.Printf("Warning: AUTH_ENABLED is off, every deck is readable and writable by anyone")
	}

	deckHandler := &handlers.DeckHandler{Decks: decks.NewService(db, env.AuthEnabled)}
	router := handlers.NewRouter(deckHandler, db, authMiddleware)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(router)

	serverAddr := "0.0.0.0:" + env.Port
	log.Printf("Server running at %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal(err)
	}
}
