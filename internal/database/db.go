package database

import (
	"fmt"

	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database for driver ("postgres" or "sqlite") and runs
// migrations.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		// Postings and applications outlive the users that webhooks delete.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info().Str("driver", driver).Msg("database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("running migrations")
	if err := db.AutoMigrate(&models.Company{}, &models.User{}, &models.Job{}, &models.JobApplication{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
