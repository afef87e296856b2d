package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

// Connect opens the Postgres connection. TranslateError maps driver
// unique-violation errors onto gorm.ErrDuplicatedKey, which the
// repositories rely on.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	// Primary keys default to uuid_generate_v4().
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.FacultyProfile{},
		&models.AdminProfile{},
		&models.Course{},
		&models.Assignment{},
		&models.Submission{},
	)
}
