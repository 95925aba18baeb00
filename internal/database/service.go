package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	queries "quickcmd/internal/database/generated"
	dberrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/infrastructure/logging"
)

const (
	maxWALConnections = 4
	optimizeTimeout   = 10 * time.Second
)

// SQLiteService implements Service on top of go-sqlite3. Connect it, run
// Migrate, then hand GetQueries or GetPreparedQueries to the repository.
// Close also releases prepared statements.
type SQLiteService struct {
	db              *sql.DB
	config          *Config
	migrationRunner MigrationManager
	queries         *queries.Queries
	prepared        *queries.Queries
	preparedMu      sync.RWMutex
	logger          logging.Logger
}

var _ Service = (*SQLiteService)(nil)

// NewSQLiteService creates a new SQLite database service
func NewSQLiteService(logger logging.Logger) *SQLiteService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &SQLiteService{
		logger: logging.WithComponent(logger, "database"),
	}
}

// Connect establishes a connection to the SQLite database
func (s *SQLiteService) Connect(ctx context.Context, config *Config) error {
	if config == nil {
		return dberrors.HandleValidationError("Connect", "config", "nil", "configuration is required")
	}
	if err := config.Validate(); err != nil {
		return dberrors.HandleValidationError("Connect", "config", config.Path, err.Error())
	}
	s.config = config

	// Close any existing connection to prevent resource leaks
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			// the new connection is opened regardless
			s.logger.Error("Failed to close existing database connection", "error", err)
		}
		// drop references so nothing keeps using the old handle
		s.db = nil
		s.queries = nil
		s.migrationRunner = nil

		// statements prepared on the old handle are useless now
		s.preparedMu.Lock()
		if s.prepared != nil {
			if err := s.prepared.Close(); err != nil {
				s.logger.Error("Failed to close existing prepared statements", "error", err)
			}
			s.prepared = nil
		}
		s.preparedMu.Unlock()
	}

	// pragmas travel in the DSN so every pooled connection gets them
	connStr := config.GetConnectionString()

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return dberrors.HandleConnectionError("Connect", fmt.Sprintf("failed to open database: %v", err))
	}

	s.configureConnectionPool(db, config)

	// sql.Open is lazy; ping so a bad path fails here and not on first query
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return dberrors.HandleConnectionError("Connect", fmt.Sprintf("failed to ping database: %v", err))
	}

	s.db = db
	s.queries = queries.New(db)
	// migrations share the pool so in-memory databases see the same schema
	s.migrationRunner = NewMigrationRunner(db, s.logger)

	s.logger.Info("Connected to SQLite database", "path", config.Path)
	return nil
}

// Close closes the database connection. With OptimizeOnClose set it first
// runs Optimize; a failure there is logged and does not stop the close.
func (s *SQLiteService) Close() error {
	if s.db == nil {
		return nil
	}

	// statements first: closing the db under them would mask their errors
	s.preparedMu.Lock()
	if s.prepared != nil {
		if err := s.prepared.Close(); err != nil {
			// keep going, the connection must still be released
			s.logger.Error("Failed to close prepared statements", "error", err)
		}
		s.prepared = nil
	}
	s.preparedMu.Unlock()

	// an in-memory database is discarded on close, optimizing it is wasted work
	if s.config != nil && s.config.OptimizeOnClose && !s.config.IsInMemory() {
		ctx, cancel := context.WithTimeout(context.Background(), optimizeTimeout)
		if err := s.Optimize(ctx); err != nil {
			s.logger.Warn("Optimize before close failed", "error", err)
		}
		cancel()
	}

	if err := s.db.Close(); err != nil {
		return dberrors.HandleConnectionError("Close", fmt.Sprintf("failed to close database: %v", err))
	}

	s.db = nil
	s.queries = nil
	s.migrationRunner = nil

	s.logger.Info("Closed SQLite database connection")
	return nil
}

// Migrate runs database migrations using the migration runner
func (s *SQLiteService) Migrate(ctx context.Context) error {
	if s.db == nil {
		return dberrors.HandleConnectionError("Migrate", "database not connected")
	}

	if s.migrationRunner == nil {
		return dberrors.HandleValidationError("Migrate", "migrationRunner", "nil", "migration runner not initialized")
	}

	// refuse to touch the schema if the embedded files are broken
	if err := s.migrationRunner.ValidateMigrations(); err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Migrate", err, map[string]string{
			"phase": "validation",
		})
	}

	if err := s.migrationRunner.RunMigrations(ctx); err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Migrate", err, map[string]string{
			"phase": "execution",
		})
	}

	return nil
}

// Health checks the database connection health
func (s *SQLiteService) Health(ctx context.Context) error {
	if s.db == nil {
		return dberrors.HandleConnectionError("Health", "database not connected")
	}

	// ping only proves a connection can be opened
	if err := s.db.PingContext(ctx); err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Health", err, map[string]string{
			"phase": "ping",
		})
	}

	// a round trip through the engine catches a locked or corrupt file
	var result int
	err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Health", err, map[string]string{
			"phase": "query",
		})
	}

	if result != 1 {
		return dberrors.HandleValidationError("Health", "query_result", fmt.Sprintf("%d", result), "expected result 1")
	}

	return nil
}

// DB returns the underlying database connection for use by repositories
func (s *SQLiteService) DB() *sql.DB {
	return s.db
}

// GetQueries returns the queries instance for repository use
func (s *SQLiteService) GetQueries() *queries.Queries {
	return s.queries
}

// GetMigrationVersion returns the current migration version
func (s *SQLiteService) GetMigrationVersion(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, dberrors.HandleConnectionError("GetMigrationVersion", "database not connected")
	}
	if s.migrationRunner == nil {
		return 0, dberrors.HandleValidationError("GetMigrationVersion", "migrationRunner", "nil", "migration runner not initialized")
	}

	version, err := s.migrationRunner.GetCurrentVersion(ctx)
	if err != nil {
		return 0, dberrors.WrapDatabaseError("GetMigrationVersion", err)
	}
	return version, nil
}

// GetPreparedQueries lazily prepares every generated statement once. The
// statements are closed by Close.
func (s *SQLiteService) GetPreparedQueries(ctx context.Context) (*queries.Queries, error) {
	if s.db == nil {
		return nil, dberrors.HandleConnectionError("GetPreparedQueries", "database not connected")
	}

	// fast path under the read lock
	s.preparedMu.RLock()
	if s.prepared != nil {
		prepared := s.prepared
		s.preparedMu.RUnlock()
		return prepared, nil
	}
	s.preparedMu.RUnlock()

	s.preparedMu.Lock()
	defer s.preparedMu.Unlock()

	// another caller may have prepared them while we waited for the lock
	if s.prepared != nil {
		return s.prepared, nil
	}

	preparedQueries, err := queries.Prepare(ctx, s.db)
	if err != nil {
		return nil, dberrors.WrapDatabaseError("GetPreparedQueries", err)
	}

	s.prepared = preparedQueries
	return s.prepared, nil
}

// GetStats returns connection pool statistics
func (s *SQLiteService) GetStats() sql.DBStats {
	if s.db == nil {
		return sql.DBStats{}
	}
	return s.db.Stats()
}

// Optimize runs VACUUM and ANALYZE to optimize database performance
func (s *SQLiteService) Optimize(ctx context.Context) error {
	if s.db == nil {
		return dberrors.HandleConnectionError("Optimize", "database not connected")
	}

	// refresh planner statistics
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Optimize", err, map[string]string{
			"phase": "analyze",
		})
	}

	// Best-effort WAL checkpoint to trim .wal (ignored on non-WAL)
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil && s.logger != nil {
		s.logger.Warn("wal_checkpoint failed", "error", err)
	}

	// reclaim pages freed by deletes
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return dberrors.WrapDatabaseErrorWithContext("Optimize", err, map[string]string{
			"phase": "vacuum",
		})
	}

	// no-op on builds without it
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil && s.logger != nil {
		s.logger.Warn("PRAGMA optimize failed", "error", err)
	}

	s.logger.Info("Database optimization completed")
	return nil
}

// configureConnectionPool keeps SQLite to one connection unless WAL lets
// readers run alongside the writer.
func (s *SQLiteService) configureConnectionPool(db *sql.DB, config *Config) {
	if config.ForceSingleConnection || config.IsInMemory() {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		s.logger.Debug("Configured single connection mode", "inMemory", config.IsInMemory())
	} else if !strings.EqualFold(config.JournalMode, "WAL") {
		// rollback journals lock the whole file for writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		s.logger.Debug("Configured single connection mode (non-WAL journal mode)",
			"journalMode", config.JournalMode)
	} else {
		// WAL allows concurrent readers; a small pool is plenty for a launcher
		maxConns := min(max(config.MaxConnections, 1), maxWALConnections)
		idleConns := max(min(config.MaxIdleConns, maxConns), 1)

		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(idleConns)
		s.logger.Debug("Configured limited connection pool (WAL mode)",
			"maxOpenConns", maxConns, "maxIdleConns", idleConns)
	}

	// an in-memory database vanishes with its last connection
	if config.IsInMemory() {
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		return
	}
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)
}
