package database

import (
	"errors"
	"fmt"
	"time"

	"ledgerbook/internal/config"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// Models lists every table of the ledger in dependency order.
var Models = []interface{}{
	&models.Party{},
	&models.Product{},
	&models.Order{},
	&models.OrderLineItem{},
	&models.MaterialTransaction{},
	&models.FinancialTransaction{},
}

// Manager handles database operations
type Manager struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewManager opens the configured database and tunes its connection pool
func NewManager(cfg *config.Config) (*Manager, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, cfg: cfg}, nil
}

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; SQLite, used for local runs, is auto-migrated from the models.
func (m *Manager) Migrate() error {
	if m.cfg.DBDriver == config.DriverSQLite {
		logger.Get().Info("Auto-migrating SQLite schema...")
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}
	return RunMigrations(m.cfg.MigrationsPath, m.cfg.PostgresURL())
}

// RunMigrations applies pending SQL migrations from dir to the database at url.
func RunMigrations(dir, url string) error {
	logger.Get().Infow("Running database migrations", "dir", dir)

	mig, err := migrate.New("file://"+dir, url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
