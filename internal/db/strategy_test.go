package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastStrategy(retries int) *ExecutionStrategy {
	s := NewExecutionStrategy(retries)
	s.BaseDelay = time.Millisecond
	s.MaxDelay = 2 * time.Millisecond
	return s
}

func TestExecute_RetriesTransientUntilSuccess(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	calls := 0

	err := fastStrategy(3).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("delete visitor: %w", deadlock)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_DoesNotRetryDomainErrors(t *testing.T) {
	domainErr := errors.New("user is not a visitor")
	calls := 0

	err := fastStrategy(5).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return domainErr
	})

	assert.ErrorIs(t, err, domainErr)
	assert.Equal(t, 1, calls)
}

func TestExecute_ExhaustionWrapsLastError(t *testing.T) {
	calls := 0

	err := fastStrategy(2).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 3, calls)
}

func TestExecute_StopsOnCancelledContext(t *testing.T) {
	s := NewExecutionStrategy(10)
	s.BaseDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := s.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return mysql.ErrInvalidConn
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", fmt.Errorf("tx: %w", &mysql.MySQLError{Number: 1205}), true},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"bad conn", driver.ErrBadConn, true},
		{"invalid conn", mysql.ErrInvalidConn, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
