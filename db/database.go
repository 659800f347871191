package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog/models"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the single-file SQLite store at path, creating its
// directory when needed. In-memory DSNs ("file:...?mode=memory") are passed
// through untouched.
func Open(path string) (*gorm.DB, error) {
	if !strings.HasPrefix(path, "file:") {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Infof("Database file does not exist, creating: %s", path)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite takes one writer at a time; a single connection keeps writes
	// from failing with SQLITE_BUSY and keeps shared in-memory databases alive.
	sqlDB.SetMaxOpenConns(1)

	log.Infof("Database connected at %s", path)
	return db, nil
}

// Migrate creates the categories and products tables if they do not exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Init opens, migrates and optionally seeds the store in one step.
func Init(ctx context.Context, path string, seed bool) (*gorm.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		Close(db)
		return nil, err
	}
	if seed {
		if err := Seed(ctx, NewGateway(db)); err != nil {
			Close(db)
			return nil, err
		}
	}
	return db, nil
}
