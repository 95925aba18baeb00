package errors

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// RetryLogger receives retry progress messages
type RetryLogger interface {
	Printf(format string, v ...interface{})
}

// RetryConfig controls WithRetry
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	Jitter          bool        // adds up to 25% of the delay
	RetryableErrors []ErrorCode // codes eligible for another attempt
}

var (
	retryLoggerMu sync.RWMutex
	retryLogger   RetryLogger
)

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
		RetryableErrors: []ErrorCode{
			ErrCodeConnection,
			ErrCodeTimeout,
			ErrCodeTransaction,
			ErrCodeBusy,
		},
	}
}

// RetryableOperation is a unit of work retried by WithRetry
type RetryableOperation func() error

// SetRetryLogger installs the package-wide retry logger; nil silences it.
func SetRetryLogger(logger RetryLogger) {
	retryLoggerMu.Lock()
	retryLogger = logger
	retryLoggerMu.Unlock()
}

func logRetry(format string, v ...interface{}) {
	retryLoggerMu.RLock()
	l := retryLogger
	retryLoggerMu.RUnlock()
	if l != nil {
		l.Printf(format, v...)
	}
}

// WithRetry runs operation until it succeeds, returns a non-retryable error,
// exhausts MaxAttempts, or ctx is done while waiting between attempts.
func WithRetry(ctx context.Context, config *RetryConfig, operation RetryableOperation) error {
	return WithRetryContext(ctx, config, operation, "")
}

// WithRetryContext is WithRetry with an operation name for log messages.
func WithRetryContext(ctx context.Context, config *RetryConfig, operation RetryableOperation, name string) error {
	if config == nil {
		config = DefaultRetryConfig()
	}
	// always run the operation at least once
	attempts := max(config.MaxAttempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 0 {
				logRetry("operation %q succeeded after %d attempts", name, attempt+1)
			}
			return nil
		}
		lastErr = err

		// non-retryable errors go back unwrapped so callers can still match them
		if !shouldRetry(err, config) {
			return err
		}
		// no point sleeping after the final attempt
		if attempt == attempts-1 {
			break
		}

		delay := calculateDelay(attempt, config)
		logRetry("operation %q failed (attempt %d/%d), retrying in %v: %v", name, attempt+1, attempts, delay, err)

		// wait for the backoff, but give up as soon as the caller does
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("operation %q cancelled during retry: %w", name, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("operation %q failed after %d attempts: %w", name, attempts, lastErr)
}

func shouldRetry(err error, config *RetryConfig) bool {
	// plain errors are never retried; only classified ones can be transient
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsRetryable() {
		return false
	}
	// the config can narrow the codes further than the error itself does
	return slices.Contains(config.RetryableErrors, repoErr.Code)
}

func calculateDelay(attempt int, config *RetryConfig) time.Duration {
	// exponential backoff: InitialDelay * BackoffFactor^attempt
	multiplier := 1.0
	for range attempt {
		multiplier *= config.BackoffFactor
	}
	delay := time.Duration(float64(config.InitialDelay) * multiplier)

	// spread concurrent retries so they do not hit the lock together
	if config.Jitter && delay > 0 {
		if jitter := int64(float64(delay) * 0.25); jitter > 0 {
			delay += time.Duration(time.Now().UnixNano() % jitter)
		}
	}

	// cap after jitter so MaxDelay is a hard ceiling
	if config.MaxDelay > 0 {
		delay = min(delay, config.MaxDelay)
	}
	return delay
}
