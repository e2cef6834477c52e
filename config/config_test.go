package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MAX_CONCURRENCY", "")

	cfg := FromEnv()
	if cfg.StoreDriver != StoreNone {
		t.Errorf("StoreDriver: got %q, want %q", cfg.StoreDriver, StoreNone)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency: got %d, want 4", cfg.MaxConcurrency)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("MAX_CONCURRENCY", "9")
	t.Setenv("RATE_LIMIT_MS", "not-a-number")

	cfg := FromEnv()
	if cfg.StoreDriver != StoreSQLite {
		t.Errorf("StoreDriver: got %q, want %q", cfg.StoreDriver, StoreSQLite)
	}
	if cfg.DSN() != "/tmp/x.db" {
		t.Errorf("DSN: got %q", cfg.DSN())
	}
	if cfg.MaxConcurrency != 9 {
		t.Errorf("MaxConcurrency: got %d, want 9", cfg.MaxConcurrency)
	}
	if cfg.RateLimitMs != 2000 {
		t.Errorf("RateLimitMs should fall back on bad input, got %d", cfg.RateLimitMs)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		StoreDriver:      StorePostgres,
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "d",
		PostgresSSLMode:  "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
