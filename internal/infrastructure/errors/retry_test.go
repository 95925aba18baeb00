package errors

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quickcmd/internal/testutils"
)

func fastRetryConfig() *RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestWithRetry_SucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetryConfig(), func() error {
		calls++
		if calls < 3 {
			return NewRepositoryError("op", errors.New("busy"), ErrCodeBusy)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("WithRetry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	want := NewRepositoryError("op", errors.New("bad"), ErrCodeValidation)
	err := WithRetry(context.Background(), fastRetryConfig(), func() error {
		calls++
		return want
	})

	if err != want {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetry_PlainErrorsAreNotRetried(t *testing.T) {
	calls := 0
	_ = WithRetry(context.Background(), fastRetryConfig(), func() error {
		calls++
		return errors.New("database is locked")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetryContext(context.Background(), fastRetryConfig(), func() error {
		calls++
		return NewRepositoryError("op", errors.New("down"), ErrCodeConnection)
	}, "AddCommand")

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if err == nil || !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Fatalf("unexpected error %v", err)
	}
	if !IsConnection(err) {
		t.Error("last error should stay reachable through wrapping")
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	cfg := fastRetryConfig()
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, cfg, func() error {
		calls++
		cancel()
		return NewRepositoryError("op", errors.New("timeout"), ErrCodeTimeout)
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCalculateDelay(t *testing.T) {
	cfg := &RetryConfig{InitialDelay: 10 * time.Millisecond, MaxDelay: 35 * time.Millisecond, BackoffFactor: 2}

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 35 * time.Millisecond}
	for attempt, w := range want {
		if got := calculateDelay(attempt, cfg); got != w {
			t.Errorf("attempt %d: delay = %v, want %v", attempt, got, w)
		}
	}

	cfg.Jitter = true
	cfg.MaxDelay = time.Second
	if got := calculateDelay(0, cfg); got < 10*time.Millisecond || got > 13*time.Millisecond {
		t.Errorf("jittered delay out of range: %v", got)
	}
}

func TestLoggerBridge(t *testing.T) {
	rec := &testutils.RecordingLogger{}
	SetRetryLogger(NewLoggerBridge(rec))
	t.Cleanup(func() { SetRetryLogger(nil) })

	calls := 0
	_ = WithRetryContext(context.Background(), fastRetryConfig(), func() error {
		calls++
		if calls == 1 {
			return NewRepositoryError("op", errors.New("busy"), ErrCodeBusy)
		}
		return nil
	}, "SearchCommands")

	logged := rec.Calls("debug")
	if len(logged) != 2 {
		t.Fatalf("expected retry + success messages, got %+v", logged)
	}
	if !strings.Contains(logged[0].Msg, `"SearchCommands" failed (attempt 1/3)`) {
		t.Errorf("unexpected retry message %q", logged[0].Msg)
	}
}
