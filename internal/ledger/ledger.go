// Package ledger implements the bill-tracking operations: biller and bill
// bookkeeping, payment reconciliation, and the read models behind the
// dashboard. It validates input, runs each write as one store transaction,
// and translates storage failures into the error kinds in errors.go.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

const (
	defaultRetryBase = 10 * time.Millisecond
	defaultRetries   = 3
)

// Ledger is safe for concurrent use.
type Ledger struct {
	store   storage.Store
	now     func() time.Time
	metrics *metrics.Metrics

	retryBase time.Duration
	retries   uint64
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now, which decides the default paid-on date.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithRetry sets the backoff used when a transaction hits a concurrent
// modification. retries of 0 disables retrying.
func WithRetry(base time.Duration, retries uint64) Option {
	return func(l *Ledger) {
		if base > 0 {
			l.retryBase = base
		}
		l.retries = retries
	}
}

// New creates a Ledger backed by store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		now:       time.Now,
		retryBase: defaultRetryBase,
		retries:   defaultRetries,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// write runs fn in a store transaction, retrying the whole transaction with
// exponential backoff while the store reports a conflict.
func (l *Ledger) write(ctx context.Context, op string, fn func(tx storage.Tx) error) error {
	backoff := retry.WithMaxRetries(l.retries, retry.NewExponential(l.retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := l.store.WithTx(ctx, fn)
		if errors.Is(err, storage.ErrConflict) {
			slog.Warn("Transaction conflict, retrying", "op", op, "error", err)
			l.metrics.PaymentConflict()
			return retry.RetryableError(err)
		}
		return err
	})
	return l.translate(op, err)
}

// translate maps store errors onto the ledger's error kinds. Errors that
// already carry a ledger kind pass through.
func (l *Ledger) translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		slog.Error("Storage failure", "op", op, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
	}
}

// today is the current calendar date per the ledger clock.
func (l *Ledger) today() time.Time {
	return models.Today(l.now())
}
