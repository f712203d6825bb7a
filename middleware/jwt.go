package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/anki-api/auth"
)

// EnsureValidToken verifies bearer tokens when present. Requests without a
// token pass through anonymously; requests with a bad token get 401.
func EnsureValidToken(s auth.Settings) (func(http.Handler) http.Handler, error) {
	if len(s.Secret) == 0 {
		log.Printf("EnsureValidToken: no JWT secret configured, every request is anonymous")
		return func(next http.Handler) http.Handler { return next }, nil
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return s.Secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		s.Issuer,
		[]string{s.Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("EnsureValidToken: rejected token for %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(next)
	}, nil
}
