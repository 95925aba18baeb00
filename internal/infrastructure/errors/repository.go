package errors

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ClassifyError picks an ErrorCode for a database error, trying driver errors
// first, then standard library sentinels, then the error text.
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	// driver errors carry exact result codes
	if code := classifySQLiteError(err); code != ErrCodeUnknown {
		return code
	}

	// standard library sentinels
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// cancellation is reported as a timeout; both mean the caller stopped waiting
		return ErrCodeTimeout
	}

	// last resort: match the error text, for errors wrapped with %v
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"):
		return ErrCodeDuplicate
	case strings.Contains(msg, "not null constraint"),
		strings.Contains(msg, "check constraint"),
		strings.Contains(msg, "foreign key constraint"):
		return ErrCodeConstraint
	case strings.Contains(msg, "database is locked"):
		return ErrCodeBusy
	case strings.Contains(msg, "database disk image is malformed"):
		return ErrCodeCorruption
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "no such column"):
		return ErrCodeSchema
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access denied"):
		return ErrCodePermission
	case strings.Contains(msg, "disk full"), strings.Contains(msg, "no space left"):
		return ErrCodeDiskSpace
	case strings.Contains(msg, "timeout"):
		return ErrCodeTimeout
	default:
		return ErrCodeUnknown
	}
}

func WrapDatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewRepositoryError(op, err, ClassifyError(err))
}

func WrapDatabaseErrorWithContext(op string, err error, contextMap map[string]string) error {
	if err == nil {
		return nil
	}
	return NewRepositoryErrorWithContext(op, err, ClassifyError(err), contextMap)
}

func HandleNotFound(op, resource, identifier string) error {
	return NewRepositoryErrorWithContext(op, sql.ErrNoRows, ErrCodeNotFound, map[string]string{
		"resource":   resource,
		"identifier": identifier,
	})
}

func HandleValidationError(op, field, value, reason string) error {
	return NewRepositoryErrorWithContext(op, errors.New("validation failed"), ErrCodeValidation, map[string]string{
		"field":  field,
		"value":  value,
		"reason": reason,
	})
}

func HandleConnectionError(op, details string) error {
	return NewRepositoryErrorWithContext(op, errors.New("connection error"), ErrCodeConnection, map[string]string{
		"details": details,
	})
}
