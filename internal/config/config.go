package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Server
	Env            string
	Port           string
	LogLevel       string
	AllowedOrigins []string
	RateLimit      string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string
	MigrationsPath string
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var appConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "300-M")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "ledgerbook")
	v.SetDefault("DB_PASSWORD", "ledgerbook")
	v.SetDefault("DB_NAME", "ledgerbook")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "ledgerbook.db")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	// A missing .env is fine, the environment and defaults still apply
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		Env:       v.GetString("ENV"),
		Port:      v.GetString("PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		RateLimit: v.GetString("RATE_LIMIT"),

		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}
	config.AllowedOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// PostgresURL returns the URL form of the PostgreSQL connection, as used by
// golang-migrate.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		cfg, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		appConfig = cfg
	}
	return appConfig
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
