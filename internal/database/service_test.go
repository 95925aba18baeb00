package database

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	dberrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/testutils"
)

func connectFileService(t *testing.T) (*SQLiteService, *Config) {
	t.Helper()
	config := DefaultConfig()
	config.Path = filepath.Join(t.TempDir(), FileName)

	service := NewSQLiteService(&testutils.RecordingLogger{})
	if err := service.Connect(context.Background(), config); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { service.Close() })
	return service, config
}

func TestSQLiteService_ConnectAndHealth(t *testing.T) {
	t.Parallel()
	service, config := connectFileService(t)

	if err := service.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if _, err := os.Stat(config.Path); err != nil {
		t.Fatalf("database file was not created: %v", err)
	}
}

func TestSQLiteService_MigrateAndVersion(t *testing.T) {
	t.Parallel()
	service, _ := connectFileService(t)
	ctx := context.Background()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	version, err := service.GetMigrationVersion(ctx)
	if err != nil {
		t.Fatalf("GetMigrationVersion() error = %v", err)
	}
	if version <= 0 {
		t.Errorf("version = %d, want > 0", version)
	}

	count, err := service.GetQueries().CountCommands(ctx)
	if err != nil || count != 0 {
		t.Errorf("CountCommands() = %d, %v", count, err)
	}
}

func TestSQLiteService_InMemory(t *testing.T) {
	t.Parallel()
	service := NewSQLiteService(&testutils.RecordingLogger{})
	ctx := context.Background()
	if err := service.Connect(ctx, TestConfig()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer service.Close()

	if err := service.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if stats := service.GetStats(); stats.MaxOpenConnections != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1 for in-memory", stats.MaxOpenConnections)
	}
	// the schema must survive across calls on the single connection
	if _, err := service.GetQueries().CountCommands(ctx); err != nil {
		t.Errorf("CountCommands() error = %v", err)
	}
}

func TestSQLiteService_ConcurrentReads(t *testing.T) {
	t.Parallel()
	service, _ := connectFileService(t)
	db := service.DB()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := db.QueryRowContext(context.Background(), "SELECT ?", id).Scan(&result); err != nil {
				t.Errorf("query %d: %v", id, err)
				return
			}
			if result != id {
				t.Errorf("query %d returned %d", id, result)
			}
		}(i)
	}
	wg.Wait()
}

func TestSQLiteService_ConnectionPool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantOpen int
	}{
		{name: "WAL capped", mutate: func(c *Config) { c.MaxConnections = 10; c.MaxIdleConns = 5 }, wantOpen: 4},
		{name: "WAL configured", mutate: func(c *Config) { c.MaxConnections = 2; c.MaxIdleConns = 1 }, wantOpen: 2},
		{name: "non-WAL single", mutate: func(c *Config) { c.JournalMode = "DELETE" }, wantOpen: 1},
		{name: "forced single", mutate: func(c *Config) { c.ForceSingleConnection = true }, wantOpen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			config.Path = filepath.Join(t.TempDir(), FileName)
			tt.mutate(config)

			service := NewSQLiteService(&testutils.RecordingLogger{})
			if err := service.Connect(context.Background(), config); err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			defer service.Close()

			if got := service.GetStats().MaxOpenConnections; got != tt.wantOpen {
				t.Errorf("MaxOpenConnections = %d, want %d", got, tt.wantOpen)
			}
		})
	}
}

func TestSQLiteService_PreparedQueries(t *testing.T) {
	t.Parallel()
	service, _ := connectFileService(t)
	ctx := context.Background()
	if err := service.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	first, err := service.GetPreparedQueries(ctx)
	if err != nil {
		t.Fatalf("GetPreparedQueries() error = %v", err)
	}
	second, err := service.GetPreparedQueries(ctx)
	if err != nil || second != first {
		t.Fatalf("second call returned %p, %v; want %p", second, err, first)
	}

	if err := service.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if service.prepared != nil || service.db != nil || service.queries != nil || service.migrationRunner != nil {
		t.Error("Close() should clear every reference")
	}
}

func TestSQLiteService_Optimize(t *testing.T) {
	t.Parallel()
	service, _ := connectFileService(t)
	ctx := context.Background()
	if err := service.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := service.Optimize(ctx); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
}

func TestSQLiteService_InvalidConfig(t *testing.T) {
	t.Parallel()
	service := NewSQLiteService(&testutils.RecordingLogger{})

	if err := service.Connect(context.Background(), nil); !dberrors.IsValidation(err) {
		t.Errorf("Connect(nil) error = %v, want validation", err)
	}

	config := DefaultConfig()
	config.Path = filepath.Join(t.TempDir(), FileName)
	config.JournalMode = "bogus"
	if err := service.Connect(context.Background(), config); !dberrors.IsValidation(err) {
		t.Errorf("Connect() error = %v, want validation", err)
	}
}

func TestSQLiteService_UnwritablePath(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission checks are not reliable here")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	config := DefaultConfig()
	config.Path = filepath.Join(dir, FileName)
	service := NewSQLiteService(&testutils.RecordingLogger{})

	if err := service.Connect(context.Background(), config); !dberrors.IsConnection(err) {
		t.Errorf("Connect() error = %v, want connection error", err)
	}
}

func TestSQLiteService_NotConnected(t *testing.T) {
	t.Parallel()
	service := NewSQLiteService(&testutils.RecordingLogger{})
	ctx := context.Background()

	if err := service.Health(ctx); !dberrors.IsConnection(err) {
		t.Errorf("Health() error = %v", err)
	}
	if err := service.Migrate(ctx); !dberrors.IsConnection(err) {
		t.Errorf("Migrate() error = %v", err)
	}
	if v, err := service.GetMigrationVersion(ctx); !dberrors.IsConnection(err) || v != 0 {
		t.Errorf("GetMigrationVersion() = %d, %v", v, err)
	}
	if _, err := service.GetPreparedQueries(ctx); !dberrors.IsConnection(err) {
		t.Errorf("GetPreparedQueries() error = %v", err)
	}
	if err := service.Optimize(ctx); !dberrors.IsConnection(err) {
		t.Errorf("Optimize() error = %v", err)
	}
	if err := service.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
