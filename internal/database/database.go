package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scribeworks/scribe-api/internal/models"
	"github.com/scribeworks/scribe-api/pkg/config"
)

type DB struct {
	*gorm.DB
}

// Initialize creates a new database connection with default SQLite settings.
// Most callers should use InitializeWithConfig or InitializeWithMigrations.
func Initialize(dbPath string, verbose bool) (*DB, error) {
	return InitializeWithConfig(config.DatabaseConfig{
		Path:                  dbPath,
		MaxConnections:        10,
		MaxIdleConnections:    5,
		ConnectionMaxLifetime: 30 * time.Minute,
		BusyTimeout:           5 * time.Second,
		EnableWAL:             true,
		EnableForeignKeys:     true,
		LogQueries:            verbose,
	})
}

// InitializeWithConfig creates a new database connection from the given settings
func InitializeWithConfig(cfg config.DatabaseConfig) (*DB, error) {
	// Ensure the database directory exists
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." && cfg.Path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Configure GORM logger
	logLevel := logger.Error
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(buildDSN(cfg)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Set connection pool settings
	maxIdle := cfg.MaxIdleConnections
	if maxIdle <= 0 {
		maxIdle = 5
	}
	maxOpen := cfg.MaxConnections
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxLifetime := cfg.ConnectionMaxLifetime
	if maxLifetime <= 0 {
		maxLifetime = 30 * time.Minute
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return &DB{DB: db}, nil
}

// buildDSN appends SQLite pragma parameters to the database path.
// WAL is skipped for in-memory databases, which cannot use it.
func buildDSN(cfg config.DatabaseConfig) string {
	params := url.Values{}
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	}
	if cfg.EnableWAL && cfg.Path != ":memory:" && cfg.Path != "" {
		params.Set("_journal_mode", "WAL")
	}
	if cfg.EnableForeignKeys {
		params.Set("_foreign_keys", "on")
	}
	if len(params) == 0 {
		return cfg.Path
	}
	return cfg.Path + "?" + params.Encode()
}

// InitializeWithMigrations opens the database configured through the config
// package and migrates the full schema. Config is initialized on demand so
// commands can call this without worrying about ordering.
func InitializeWithMigrations() (*DB, error) {
	if !config.IsInitialized() {
		if err := config.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is not configured")
	}

	db, err := InitializeWithConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Transcript{},
		&models.TranscriptVersion{},
		&models.ExportRecord{},
		&models.Job{},
		&models.AudioFile{},
	); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("[DEBUG] Migrated %d model(s)", len(models))
	return nil
}
