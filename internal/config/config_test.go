package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.DBDriver)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("expected allow-all origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT", "10-S")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.SQLitePath != "/tmp/ledger.db" {
		t.Errorf("unexpected sqlite path %q", cfg.SQLitePath)
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.AllowedOrigins)
	}
	if cfg.RateLimit != "10-S" {
		t.Errorf("unexpected rate limit %q", cfg.RateLimit)
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.PostgresURL(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
