package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andrewpaige1/anki-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by env and migrates the schema.
func Connect(env Environment) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch env.DBDriver {
	case "postgres":
		dialector = postgres.Open(env.DBURL)
	case "sqlite":
		dialector = sqlite.Open(env.DBURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", env.DBDriver)
	}

	logLevel := logger.Warn
	if env.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logLevel,

			// create-or-update lookups miss on purpose
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	if env.DBDriver == "sqlite" {
		// one writer at a time, and in-memory databases live per connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)

		// sqlite ships with foreign keys off, which would skip every cascade
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Connect: %s database connected & migrated", env.DBDriver)
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Deck{},
		&models.DeckDescription{},
		&models.Card{},
		&models.Stat{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}
