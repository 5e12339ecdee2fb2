package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/pkg/api"
)

// ReceiptSource reports transaction receipts. *Remote and
// *sequencer.Sequencer both satisfy it.
type ReceiptSource interface {
	Receipt(ctx context.Context, txID string) (*models.Receipt, error)
}

var errPending = errors.New("pending")

// Watcher waits for submitted transactions to resolve.
type Watcher struct {
	source          ReceiptSource
	timeout         time.Duration
	initialInterval time.Duration
	maxInterval     time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithPollInterval sets the first and the largest delay between polls.
func WithPollInterval(initial, max time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.initialInterval = initial
		w.maxInterval = max
	}
}

// NewWatcher creates a Watcher that gives up after timeout.
func NewWatcher(source ReceiptSource, timeout time.Duration, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:          source,
		timeout:         timeout,
		initialInterval: 250 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait polls txID with exponential backoff until it resolves. A successful
// transaction returns its receipt. A failed one returns its receipt along
// with the decoded ledger error. If the window elapses first, Wait returns
// ledger.ErrStillPending; the transaction may still be applied later.
func (w *Watcher) Wait(ctx context.Context, txID string) (*models.Receipt, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.initialInterval
	b.MaxInterval = w.maxInterval

	receipt, err := backoff.Retry(ctx, func() (*models.Receipt, error) {
		r, err := w.source.Receipt(ctx, txID)
		if err != nil {
			if api.IsRetryable(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		if !r.Final() {
			return nil, errPending
		}
		return r, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(w.timeout))

	switch {
	case err == nil:
	case errors.Is(err, errPending) || api.IsRetryable(err) && ctx.Err() == nil:
		return nil, fmt.Errorf("transaction %s: %w", txID, ledger.ErrStillPending)
	default:
		return nil, err
	}

	if receipt.Status == models.TxFailure {
		return receipt, ledger.FromCode(receipt.ErrorCode, receipt.ErrorMessage)
	}
	return receipt, nil
}
