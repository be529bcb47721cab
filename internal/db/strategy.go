package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// MySQL server error numbers that are safe to retry as a whole transaction.
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// ErrRetriesExhausted wraps the last transient error once the strategy gives up.
var ErrRetriesExhausted = errors.New("transient failure persisted after retries")

// ExecutionStrategy re-runs a whole unit of work when it fails with a
// transient infrastructure error. Domain errors are returned immediately.
type ExecutionStrategy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	// Transient decides which errors are retried. Defaults to IsTransient.
	Transient func(error) bool
}

// NewExecutionStrategy builds a strategy with doubling back-off.
func NewExecutionStrategy(maxRetries int) *ExecutionStrategy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ExecutionStrategy{
		MaxRetries: maxRetries,
		BaseDelay:  50 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Transient:  IsTransient,
	}
}

// Execute runs op, retrying it while it fails with a transient error and
// the retry budget lasts. op must be safe to run again from scratch.
func (s *ExecutionStrategy) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	transient := s.Transient
	if transient == nil {
		transient = IsTransient
	}

	delay := s.BaseDelay
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil || !transient(err) {
			return err
		}
		if attempt >= s.MaxRetries {
			return fmt.Errorf("%w (%d attempts): %w", ErrRetriesExhausted, attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; s.MaxDelay > 0 && delay > s.MaxDelay {
			delay = s.MaxDelay
		}
	}
}

// IsTransient reports whether err is an infrastructure fault that may
// succeed when the transaction is replayed.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
