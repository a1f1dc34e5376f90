package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// Error classes used in logs and metrics.
const (
	ClassConflict    = "conflict"
	ClassRetryable   = "retryable"
	ClassSchema      = "schema"
	ClassUnavailable = "unavailable"
	ClassInternal    = "internal"
)

// StoreError is a classified Postgres failure.
// It matches both domain.ErrStoreUnavailable and the driver error.
type StoreError struct {
	Op    string
	Class string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("postgres %s (%s): %v", e.Op, e.Class, e.Err)
}

// Unwrap exposes the sentinel and the cause to errors.Is and errors.As.
func (e *StoreError) Unwrap() []error {
	return []error{domain.ErrStoreUnavailable, e.Err}
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Class: classOf(err), Err: err}
}

// classOf maps a driver error to an error class using SQLSTATE codes where available.
func classOf(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ClassRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := strings.TrimSpace(pgErr.Code)
		switch {
		case code == "23505":
			return ClassConflict // unique_violation
		case code == "40001", code == "40P01", code == "55P03":
			return ClassRetryable // serialization/deadlock/lock_not_available
		case code == "42P01", code == "42703":
			return ClassSchema // undefined_table/undefined_column
		case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P"):
			return ClassUnavailable // connection_exception/operator_intervention
		}
		return ClassInternal
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "failed to connect"):
		return ClassUnavailable
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadlock"):
		return ClassRetryable
	default:
		return ClassInternal
	}
}
