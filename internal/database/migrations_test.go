package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"quickcmd/internal/testutils"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "migrations.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_RunMigrations(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db, &testutils.RecordingLogger{})
	ctx := context.Background()

	if err := runner.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	for _, table := range []string{"commands", "goose_db_version"} {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Errorf("table %s was not created: %v", table, err)
		}
	}

	// the commands columns match what the queries scan
	_, err := db.ExecContext(ctx,
		"INSERT INTO commands (name, description, command, icon) VALUES ('n', NULL, 'c', NULL)")
	if err != nil {
		t.Fatalf("insert into commands: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO commands (name, command) VALUES (NULL, 'c')"); err == nil {
		t.Error("name must be NOT NULL")
	}
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db, &testutils.RecordingLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := runner.RunMigrations(ctx); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	version, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
}

func TestMigrationRunner_NilDB(t *testing.T) {
	runner := NewMigrationRunner(nil, &testutils.RecordingLogger{})
	ctx := context.Background()

	if err := runner.RunMigrations(ctx); err == nil || err.Error() != "database connection is nil" {
		t.Errorf("RunMigrations() error = %v", err)
	}
	if _, err := runner.GetCurrentVersion(ctx); err == nil {
		t.Error("GetCurrentVersion() should fail without a database")
	}
}

func TestMigrationRunner_ValidateMigrations(t *testing.T) {
	runner := NewMigrationRunner(nil, &testutils.RecordingLogger{})
	if err := runner.ValidateMigrations(); err != nil {
		t.Fatalf("ValidateMigrations() error = %v", err)
	}
}

func TestMigrationRunner_CancelledContext(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db, &testutils.RecordingLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.RunMigrations(ctx); err == nil {
		t.Error("RunMigrations() should fail with a cancelled context")
	}
}
