package repository

import (
	"context"

	"quickcmd/internal/types"
)

// CommandRepository defines persistence operations for saved commands
type CommandRepository interface {
	// SearchCommands matches search as a substring of name, description or
	// icon, ordered by name. An empty search returns every command.
	SearchCommands(ctx context.Context, search string) ([]types.Command, error)
	GetCommand(ctx context.Context, id int64) (*types.Command, error)
	AddCommand(ctx context.Context, cmd *types.Command) (int64, error)
	UpdateCommand(ctx context.Context, cmd *types.Command) error
	// DeleteCommand succeeds when id does not exist.
	DeleteCommand(ctx context.Context, id int64) error
	CountCommands(ctx context.Context) (int64, error)

	WithTransaction(ctx context.Context, fn func(repo CommandRepository) error) error
}
