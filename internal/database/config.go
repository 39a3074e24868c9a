package database

import (
	"fmt"

	"ledgerbook/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// postgresDSN returns the PostgreSQL keyword/value connection string
func postgresDSN(c *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// sqliteDSN enables foreign keys and a busy timeout so concurrent writers
// wait for the database lock instead of failing immediately.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// dialector picks the gorm dialector for the configured driver
func dialector(c *config.Config) (gorm.Dialector, error) {
	switch c.DBDriver {
	case config.DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  postgresDSN(c),
			PreferSimpleProtocol: true,
		}), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(c.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
}
