package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrCodeUnknown},
		{
			"unique",
			sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			ErrCodeDuplicate,
		},
		{
			"not null",
			sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull},
			ErrCodeConstraint,
		},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, ErrCodeBusy},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, ErrCodeBusy},
		{"corrupt", sqlite3.Error{Code: sqlite3.ErrCorrupt}, ErrCodeCorruption},
		{"readonly", sqlite3.Error{Code: sqlite3.ErrReadonly}, ErrCodePermission},
		{"cant open", sqlite3.Error{Code: sqlite3.ErrCantOpen}, ErrCodeConnection},
		{"full", sqlite3.Error{Code: sqlite3.ErrFull}, ErrCodeDiskSpace},
		{"misuse", sqlite3.Error{Code: sqlite3.ErrMisuse}, ErrCodeInternal},
		{"schema", sqlite3.Error{Code: sqlite3.ErrSchema}, ErrCodeSchema},
		{"wrapped sqlite", fmt.Errorf("exec: %w", sqlite3.Error{Code: sqlite3.ErrBusy}), ErrCodeBusy},
		{"no rows", sql.ErrNoRows, ErrCodeNotFound},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), ErrCodeTimeout},
		{"text unique", errors.New("UNIQUE constraint failed: commands.name"), ErrCodeDuplicate},
		{"text no table", errors.New("no such table: commands"), ErrCodeSchema},
		{"text disk", errors.New("write: no space left on device"), ErrCodeDiskSpace},
		{"text other", errors.New("something odd"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapDatabaseError(t *testing.T) {
	if WrapDatabaseError("op", nil) != nil {
		t.Error("nil error should stay nil")
	}
	if WrapDatabaseErrorWithContext("op", nil, nil) != nil {
		t.Error("nil error should stay nil")
	}

	err := WrapDatabaseErrorWithContext("DeleteCommand", sqlite3.Error{Code: sqlite3.ErrBusy}, map[string]string{"id": "4"})
	if !IsBusy(err) || !IsRetryable(err) {
		t.Errorf("expected retryable busy error, got %v", err)
	}

	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) || repoErr.Context["id"] != "4" || repoErr.Op != "DeleteCommand" {
		t.Errorf("unexpected wrapped error %#v", repoErr)
	}
}
