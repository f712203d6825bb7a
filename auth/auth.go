package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/andrewpaige1/anki-api/config"
)

// Settings are the parameters shared by token issuing and verification.
type Settings struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

func SettingsFromEnvironment(env config.Environment) Settings {
	return Settings{
		Secret:   []byte(env.JWTSecret),
		Issuer:   env.JWTIssuer,
		Audience: env.JWTAudience,
		TTL:      env.TokenTTL,
	}
}

// CreateToken issues an HS256 token whose subject is username.
func CreateToken(s Settings, username string) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("auth.go: JWT secret key not set")
	}
	if username == "" {
		return "", errors.New("auth.go: username is required")
	}

	tokenID, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenID,
		Issuer:    s.Issuer,
		Subject:   username,
		Audience:  jwt.ClaimStrings{s.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	})

	tokenString, err := token.SignedString(s.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks the signature, issuer, audience and expiry of
// tokenString and returns its subject.
func VerifyToken(s Settings, tokenString string) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("auth.go: JWT secret key not set")
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}
