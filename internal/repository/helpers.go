package repository

import (
	"database/sql"
	"strings"

	queries "quickcmd/internal/database/generated"
	repoerrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/types"
)

func (r *SQLiteRepository) convertCommandFromDB(row queries.Command) types.Command {
	return types.Command{
		ID:          row.ID,
		Name:        row.Name,
		Description: r.stringFromNullString(row.Description),
		Command:     row.Command,
		Icon:        r.stringFromNullString(row.Icon),
	}
}

// nullStringFromString stores empty strings as NULL
func (r *SQLiteRepository) nullStringFromString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func (r *SQLiteRepository) stringFromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func (r *SQLiteRepository) classifyError(err error) repoerrors.ErrorCode {
	return repoerrors.ClassifyError(err)
}

// validateCommand trims every field and requires a name and a command.
func validateCommand(op string, cmd *types.Command) (types.Command, error) {
	if cmd == nil {
		return types.Command{}, repoerrors.HandleValidationError(op, "command", "nil", "command is nil")
	}

	clean := types.Command{
		ID:          cmd.ID,
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Command:     strings.TrimSpace(cmd.Command),
		Icon:        strings.TrimSpace(cmd.Icon),
	}
	if clean.Name == "" {
		return types.Command{}, repoerrors.HandleValidationError(op, "name", cmd.Name, "name is required")
	}
	if clean.Command == "" {
		return types.Command{}, repoerrors.HandleValidationError(op, "command", cmd.Command, "command is required")
	}
	return clean, nil
}
