package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumistore/backoffice/internal/logger"
	"github.com/lumistore/backoffice/internal/utils"
)

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSQLiteService opens the store database. The default DSN is an in-memory
// database shared across connections, so the process starts with an empty
// store that the seed fills.
func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	dsn := utils.GetEnv("SQLITE_DSN", "file::memory:?cache=shared", log)

	serviceLog.Info("Opening SQLite database...", "dsn", dsn)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll(models ...interface{}) error {
	s.log.Info("Auto migrating sqlite tables...")
	if err := s.db.AutoMigrate(models...); err != nil {
		s.log.Error("Auto migration failed for sqlite tables", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}
