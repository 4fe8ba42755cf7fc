package database

import (
	"context"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medville/medjobs/internal/config"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

// Connect opens the postgres connection and runs migrations. TranslateError
// lets the store map unique violations to its duplicate error.
func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	err = db.AutoMigrate(
		&models.City{},
		&models.Status{},
		&models.User{},
		&models.Job{},
		&models.Application{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	return db
}

// Seed inserts the status catalog rows that are missing. It runs at every
// startup and is idempotent; the catalog is read-only at runtime.
func Seed(ctx context.Context, s store.StatusStore) error {
	return s.SeedStatuses(ctx)
}
