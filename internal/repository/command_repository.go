package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quickcmd/internal/database"
	queries "quickcmd/internal/database/generated"
	repoerrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/infrastructure/logging"
	"quickcmd/internal/types"
)

// SQLiteRepository implements CommandRepository using SQLite
type SQLiteRepository struct {
	db          *sql.DB
	queries     *queries.Queries
	dbService   database.Service
	retryConfig *repoerrors.RetryConfig
	logger      logging.Logger
}

var _ CommandRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository creates a new SQLite repository instance
func NewSQLiteRepository(dbService database.Service, logger logging.Logger) *SQLiteRepository {
	return NewSQLiteRepositoryWithConfig(dbService, nil, logger)
}

// NewSQLiteRepositoryWithConfig creates a repository with a custom retry policy
func NewSQLiteRepositoryWithConfig(dbService database.Service, retryConfig *repoerrors.RetryConfig, logger logging.Logger) *SQLiteRepository {
	if retryConfig == nil {
		retryConfig = repoerrors.DefaultRetryConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &SQLiteRepository{
		db:          dbService.DB(),
		queries:     dbService.GetQueries(),
		dbService:   dbService,
		retryConfig: retryConfig,
		logger:      logging.WithComponent(logger, "repository"),
	}
}

// NewSQLiteRepositoryWithPreparedQueries uses the service's prepared statements
func NewSQLiteRepositoryWithPreparedQueries(ctx context.Context, dbService database.Service, logger logging.Logger) (*SQLiteRepository, error) {
	preparedQueries, err := dbService.GetPreparedQueries(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteRepositoryWithPreparedQueries: failed to get prepared queries from database service: %w", err)
	}

	repo := NewSQLiteRepository(dbService, logger)
	repo.queries = preparedQueries
	return repo, nil
}

// SearchCommands lists commands whose name, description or icon contains search
func (r *SQLiteRepository) SearchCommands(ctx context.Context, search string) ([]types.Command, error) {
	start := time.Now()

	var result []types.Command
	err := repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		rows, err := r.queries.SearchCommands(ctx, search)
		if err != nil {
			return r.fail("SearchCommands", err, map[string]string{"search": search})
		}

		result = make([]types.Command, 0, len(rows))
		for _, row := range rows {
			result = append(result, r.convertCommandFromDB(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LogOperation(r.logger, "SearchCommands", time.Since(start), map[string]any{
		"search":  search,
		"results": len(result),
	})
	return result, nil
}

// GetCommand returns one command; a missing id is a not-found error
func (r *SQLiteRepository) GetCommand(ctx context.Context, id int64) (*types.Command, error) {
	var result *types.Command
	err := repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		row, err := r.queries.GetCommand(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return repoerrors.HandleNotFound("GetCommand", "command", strconv.FormatInt(id, 10))
		}
		if err != nil {
			return r.fail("GetCommand", err, map[string]string{"id": strconv.FormatInt(id, 10)})
		}
		cmd := r.convertCommandFromDB(row)
		result = &cmd
		return nil
	})
	return result, err
}

// AddCommand inserts cmd and returns the new id
func (r *SQLiteRepository) AddCommand(ctx context.Context, cmd *types.Command) (int64, error) {
	start := time.Now()

	clean, err := validateCommand("AddCommand", cmd)
	if err != nil {
		logging.LogError(r.logger, err, "AddCommand", nil)
		return 0, err
	}

	var id int64
	err = repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		newID, err := r.queries.CreateCommand(ctx, queries.CreateCommandParams{
			Name:        clean.Name,
			Description: r.nullStringFromString(clean.Description),
			Command:     clean.Command,
			Icon:        r.nullStringFromString(clean.Icon),
		})
		if err != nil {
			return r.fail("AddCommand", err, map[string]string{"name": clean.Name})
		}
		id = newID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.LogOperation(r.logger, "AddCommand", time.Since(start), map[string]any{
		"id":   id,
		"name": clean.Name,
	})
	return id, nil
}

// UpdateCommand replaces every field of an existing command
func (r *SQLiteRepository) UpdateCommand(ctx context.Context, cmd *types.Command) error {
	start := time.Now()

	clean, err := validateCommand("UpdateCommand", cmd)
	if err != nil {
		logging.LogError(r.logger, err, "UpdateCommand", nil)
		return err
	}
	idStr := strconv.FormatInt(clean.ID, 10)

	err = repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		affected, err := r.queries.UpdateCommand(ctx, queries.UpdateCommandParams{
			Name:        clean.Name,
			Description: r.nullStringFromString(clean.Description),
			Command:     clean.Command,
			Icon:        r.nullStringFromString(clean.Icon),
			ID:          clean.ID,
		})
		if err != nil {
			return r.fail("UpdateCommand", err, map[string]string{"id": idStr})
		}
		if affected == 0 {
			return repoerrors.HandleNotFound("UpdateCommand", "command", idStr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.LogOperation(r.logger, "UpdateCommand", time.Since(start), map[string]any{"id": clean.ID})
	return nil
}

// DeleteCommand removes a command. Deleting an unknown id is not an error.
func (r *SQLiteRepository) DeleteCommand(ctx context.Context, id int64) error {
	start := time.Now()

	var affected int64
	err := repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		n, err := r.queries.DeleteCommand(ctx, id)
		if err != nil {
			return r.fail("DeleteCommand", err, map[string]string{"id": strconv.FormatInt(id, 10)})
		}
		affected = n
		return nil
	})
	if err != nil {
		return err
	}

	logging.LogOperation(r.logger, "DeleteCommand", time.Since(start), map[string]any{
		"id":      id,
		"deleted": affected,
	})
	return nil
}

func (r *SQLiteRepository) CountCommands(ctx context.Context) (int64, error) {
	var count int64
	err := repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		n, err := r.queries.CountCommands(ctx)
		if err != nil {
			return r.fail("CountCommands", err, nil)
		}
		count = n
		return nil
	})
	return count, err
}

// fail wraps err and logs it. Retryable errors stay at debug level since
// WithRetry will try again.
func (r *SQLiteRepository) fail(op string, err error, context map[string]string) error {
	repoErr := repoerrors.NewRepositoryErrorWithContext(op, err, r.classifyError(err), context)
	if repoErr.IsRetryable() {
		r.logger.Debug("Retryable error in "+op, "error", err)
	} else {
		fields := make(map[string]any, len(context))
		for k, v := range context {
			fields[k] = v
		}
		logging.LogError(r.logger, repoErr, op, fields)
	}
	return repoErr
}
