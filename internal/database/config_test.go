package database

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{name: "test config passes", mutate: func(c *Config) { *c = *TestConfig() }},
		{name: "empty path", mutate: func(c *Config) { c.Path = "" }, errorMsg: "database path cannot be empty"},
		{name: "zero connections", mutate: func(c *Config) { c.MaxConnections = 0 }, errorMsg: "maxConnections must be positive"},
		{name: "negative idle", mutate: func(c *Config) { c.MaxIdleConns = -1 }, errorMsg: "maxIdleConns cannot be negative"},
		{name: "idle above max", mutate: func(c *Config) { c.MaxIdleConns = 10 }, errorMsg: "cannot be greater than maxConnections"},
		{name: "negative lifetime", mutate: func(c *Config) { c.ConnMaxLifetime = -time.Second }, errorMsg: "connMaxLifetime cannot be negative"},
		{name: "journal mode case-insensitive", mutate: func(c *Config) { c.JournalMode = "wal" }},
		{name: "bad journal mode", mutate: func(c *Config) { c.JournalMode = "FAST" }, errorMsg: "invalid journalMode"},
		{name: "WAL in memory", mutate: func(c *Config) { c.Path = ":memory:" }, errorMsg: "cannot be WAL"},
		{name: "bad synchronous mode", mutate: func(c *Config) { c.SynchronousMode = "normal" }, errorMsg: "invalid synchronousMode"},
		{name: "zero cache", mutate: func(c *Config) { c.CacheSize = 0 }, errorMsg: "cacheSize must be positive"},
		{name: "negative busy timeout", mutate: func(c *Config) { c.BusyTimeout = -1 }, errorMsg: "busyTimeout cannot be negative"},
		{name: "bad environment", mutate: func(c *Config) { c.Environment = "staging" }, errorMsg: "invalid environment"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, errorMsg: "invalid logLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			config.Path = filepath.Join(t.TempDir(), FileName)
			tt.mutate(config)

			err := config.Validate()
			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.errorMsg)
			}
		})
	}
}

func TestConfig_Validate_CreatesDirectory(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	config.Path = filepath.Join(t.TempDir(), "nested", "dir", FileName)

	if err := config.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info, err := os.Stat(filepath.Dir(config.Path)); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestConfig_GetConnectionString(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	config.Path = "/tmp/with?query&amp.db"

	dsn := config.GetConnectionString()
	path, query, ok := strings.Cut(dsn, "?")
	if !ok {
		t.Fatalf("DSN %q has no query", dsn)
	}
	if path != "/tmp/with%3Fquery%26amp.db" {
		t.Errorf("path = %q", path)
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	want := map[string]string{
		"_foreign_keys": "on",
		"_journal_mode": "WAL",
		"_synchronous":  "NORMAL",
		"_cache_size":   "-2000",
		"_busy_timeout": "5000",
	}
	for k, v := range want {
		if values.Get(k) != v {
			t.Errorf("%s = %q, want %q", k, values.Get(k), v)
		}
	}

	config.ForeignKeys = false
	if !strings.Contains(config.GetConnectionString(), "_foreign_keys=off") {
		t.Error("foreign keys off not encoded")
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("QUICKCMD_DB_PATH", "/data/custom.db")
	t.Setenv("QUICKCMD_DB_MAX_CONNECTIONS", "3")
	t.Setenv("QUICKCMD_DB_MAX_IDLE_CONNECTIONS", "not-a-number")
	t.Setenv("QUICKCMD_DB_CONN_MAX_LIFETIME", "1h")
	t.Setenv("QUICKCMD_DB_AUTO_MIGRATE", "off")
	t.Setenv("QUICKCMD_DB_JOURNAL_MODE", "DELETE")
	t.Setenv("QUICKCMD_DB_SYNCHRONOUS_MODE", "full")
	t.Setenv("QUICKCMD_DB_FOREIGN_KEYS", "no")
	t.Setenv("QUICKCMD_DB_FORCE_SINGLE_CONNECTION", "yes")
	t.Setenv("QUICKCMD_DB_OPTIMIZE_ON_CLOSE", "maybe")
	t.Setenv("QUICKCMD_ENVIRONMENT", "development")

	config := DefaultConfig()
	if err := config.LoadFromEnvironment(); err != nil {
		t.Fatal(err)
	}

	if config.Path != "/data/custom.db" {
		t.Errorf("Path = %q", config.Path)
	}
	if config.MaxConnections != 3 {
		t.Errorf("MaxConnections = %d", config.MaxConnections)
	}
	if config.MaxIdleConns != DefaultConfig().MaxIdleConns {
		t.Errorf("invalid idle value should be ignored, got %d", config.MaxIdleConns)
	}
	if config.ConnMaxLifetime != time.Hour {
		t.Errorf("ConnMaxLifetime = %v", config.ConnMaxLifetime)
	}
	if config.AutoMigrate || config.ForeignKeys {
		t.Error("AutoMigrate and ForeignKeys should be disabled")
	}
	if !config.ForceSingleConnection {
		t.Error("ForceSingleConnection should be enabled")
	}
	if !config.OptimizeOnClose {
		t.Error("unrecognised boolean should leave the default")
	}
	if config.JournalMode != "DELETE" || config.SynchronousMode != "FULL" {
		t.Errorf("pragmas = %s/%s", config.JournalMode, config.SynchronousMode)
	}
	if !config.IsDevelopment() {
		t.Errorf("Environment = %q", config.Environment)
	}
}

func TestConfigForEnvironment(t *testing.T) {
	t.Parallel()
	if c := ConfigForEnvironment("test", ""); !c.IsInMemory() || !c.IsTest() {
		t.Errorf("test config = %+v", c)
	}
	if c := ConfigForEnvironment("development", ""); !c.IsDevelopment() {
		t.Errorf("development config = %+v", c)
	}

	dir := filepath.Join("some", "data")
	c := ConfigForEnvironment("production", dir)
	if c.Path != filepath.Join(dir, FileName) || !c.IsProduction() {
		t.Errorf("production config = %+v", c)
	}
	if c := ConfigForEnvironment("", ""); c.Path != FileName {
		t.Errorf("fallback path = %q", c.Path)
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()
	original := DefaultConfig()
	clone := original.Clone()
	clone.Path = "other.db"
	clone.CacheSize = 1

	if original.Path == clone.Path || original.CacheSize == clone.CacheSize {
		t.Error("Clone() shares state with the original")
	}
}
