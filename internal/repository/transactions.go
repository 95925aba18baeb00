package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	repoerrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/infrastructure/logging"
)

// WithTransaction runs fn against a repository bound to one transaction.
// The transaction commits when fn returns nil and is retried as a whole on
// transient errors.
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(repo CommandRepository) error) error {
	start := time.Now()

	err := repoerrors.WithRetry(ctx, r.retryConfig, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return r.fail("WithTransaction.Begin", err, nil)
		}

		var committed bool
		defer func() {
			if committed {
				return
			}
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				r.logger.Debug("Failed to rollback transaction", "rollback_error", rollbackErr)
			}
		}()

		txRepo := &SQLiteRepository{
			db:        r.db,
			queries:   r.queries.WithTx(tx),
			dbService: r.dbService,
			// the outer retry owns the whole transaction
			retryConfig: noRetry,
			logger:      r.logger,
		}

		if err := fn(txRepo); err != nil {
			r.logger.Debug("Transaction function failed", "error", err)
			return err
		}

		if err := tx.Commit(); err != nil {
			return r.fail("WithTransaction.Commit", err, nil)
		}
		committed = true
		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "WithTransaction", time.Since(start), nil)
	}
	return err
}

var noRetry = &repoerrors.RetryConfig{MaxAttempts: 1}
