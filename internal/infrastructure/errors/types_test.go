package errors

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeNotFound, "NOT_FOUND"},
		{ErrCodeValidation, "VALIDATION"},
		{ErrCodeBusy, "BUSY"},
		{ErrCodeUnknown, "UNKNOWN"},
		{ErrorCode(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestRepositoryError_Error(t *testing.T) {
	err := NewRepositoryErrorWithContext("AddCommand", errors.New("boom"), ErrCodeConnection, map[string]string{
		"name": "build",
		"id":   "3",
	})

	got := err.Error()
	want := "boom [op=AddCommand code=CONNECTION retryable=true id=3 name=build]"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var nilErr *RepositoryError
	if nilErr.Error() != "repository error" {
		t.Errorf("nil receiver Error() = %q", nilErr.Error())
	}
	if nilErr.IsRetryable() || nilErr.GetCode() != "UNKNOWN" || len(nilErr.GetContext()) != 0 {
		t.Error("nil receiver accessors should return zero values")
	}
}

func TestRepositoryError_IsAndUnwrap(t *testing.T) {
	err := NewRepositoryError("GetCommand", sql.ErrNoRows, ErrCodeNotFound)

	if !errors.Is(err, sql.ErrNoRows) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}
	if !errors.Is(err, &RepositoryError{Code: ErrCodeNotFound}) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, &RepositoryError{Code: ErrCodeDuplicate}) {
		t.Error("errors.Is must not match a different code")
	}
	if !IsNotFound(err) || IsValidation(err) {
		t.Error("classification helpers disagree with code")
	}
}

func TestNewRepositoryErrorWithContext_CopiesContext(t *testing.T) {
	ctx := map[string]string{"k": "v"}
	err := NewRepositoryErrorWithContext("op", nil, ErrCodeValidation, ctx)
	ctx["k"] = "changed"

	if err.Context["k"] != "v" {
		t.Errorf("context was not copied: %v", err.Context)
	}
	if err.WithContext("extra", "1").Context["extra"] != "1" {
		t.Error("WithContext did not add key")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		err  error
		want bool
	}{
		{"busy", ErrCodeBusy, nil, true},
		{"timeout", ErrCodeTimeout, nil, true},
		{"validation", ErrCodeValidation, nil, false},
		{"disk space", ErrCodeDiskSpace, nil, false},
		{"unknown locked", ErrCodeUnknown, errors.New("table is LOCKED"), true},
		{"unknown plain", ErrCodeUnknown, errors.New("nope"), false},
		{"unknown nil", ErrCodeUnknown, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.code, tt.err); got != tt.want {
				t.Errorf("isRetryableError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleHelpers(t *testing.T) {
	err := HandleValidationError("AddCommand", "name", "", "name is required")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "reason=name is required") {
		t.Errorf("reason missing from %q", err.Error())
	}

	if !IsNotFound(HandleNotFound("GetCommand", "command", "9")) {
		t.Error("HandleNotFound should be NOT_FOUND")
	}
	conn := HandleConnectionError("Connect", "refused")
	if !IsConnection(conn) || !IsRetryable(conn) {
		t.Error("connection errors should be retryable CONNECTION errors")
	}
}
