package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Environment is the process configuration, read from the environment
// (and a .env file when main loads one).
type Environment struct {
	// AuthEnabled toggles visibility and ownership enforcement. With it off
	// every deck is effectively public and anyone may write.
	AuthEnabled bool `mapstructure:"auth_enabled"`

	JWTSecret   string        `mapstructure:"jwt_secret_key" validate:"required_if=AuthEnabled true"`
	JWTIssuer   string        `mapstructure:"jwt_issuer" validate:"required"`
	JWTAudience string        `mapstructure:"jwt_audience" validate:"required"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" validate:"gt=0"`

	DBDriver string `mapstructure:"db_driver" validate:"oneof=postgres sqlite"`
	DBURL    string `mapstructure:"db_url" validate:"required"`
	LogSQL   bool   `mapstructure:"log_sql"`

	Port           string   `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadEnvironment reads the environment and validates it.
func LoadEnvironment() (Environment, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("auth_enabled", true)
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("jwt_issuer", "anki-api")
	v.SetDefault("jwt_audience", "anki-api")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_url", "")
	v.SetDefault("log_sql", false)
	v.SetDefault("port", "8080") // fallback port for local development
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})

	var env Environment
	if err := v.Unmarshal(&env); err != nil {
		return Environment{}, fmt.Errorf("invalid environment: %w", err)
	}

	if err := validator.New().Struct(env); err != nil {
		return Environment{}, fmt.Errorf("invalid environment: %w", err)
	}

	return env, nil
}
