package database

import (
	"fmt"
	"log/slog"
	"time"

	"gamebase/backend/internal/logging"
	"gamebase/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models lists every model managed by AutoMigrate. Join tables for the
// many2many relations are created alongside their owners.
func Models() []any {
	return []any{
		&models.User{},
		&models.Category{},
		&models.GameMechanic{},
		&models.Game{},
		&models.Proposal{},
		&models.GameInvitation{},
	}
}

// Open opens a gorm connection on the given dialector and runs migrations.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLogger := logger.New(
		logging.StdLogger(slog.Default(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		// Surface unique violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Connect initializes the PostgreSQL connection, runs migrations and stores
// the handle in DB.
func Connect(dsn string) error {
	db, err := Open(postgres.Open(dsn))
	if err != nil {
		return err
	}
	slog.Info("database connection established, migrations applied")

	DB = db
	return nil
}
