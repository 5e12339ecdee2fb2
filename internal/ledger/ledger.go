// Package ledger implements the circle state machine: group registry,
// membership, expense and balance engine, settlement engine, and the read
// projections derived from them.
//
// Every mutation is an Op applied atomically inside one storage
// transaction. The ledger holds no authoritative state in memory; each call
// reads the store's committed snapshot.
package ledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mmynk/kindnest/internal/storage"
)

// Ledger executes operations against a store.
type Ledger struct {
	store  storage.Store
	policy Policy
	now    func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for expense and settlement timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over store.
func New(store storage.Store, policy Policy, opts ...Option) *Ledger {
	l := &Ledger{store: store, policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the rules the ledger was configured with.
func (l *Ledger) Policy() Policy {
	return l.policy
}

// Store returns the underlying store.
func (l *Ledger) Store() storage.Store {
	return l.store
}

// Result is the outcome of an applied operation.
type Result struct {
	// ID is the group, expense or settlement ID the op produced, if any.
	ID uint64
	// Height is the ledger height after the op.
	Height uint64
}

// Execute validates and applies op in its own transaction.
func (l *Ledger) Execute(ctx context.Context, caller string, op Op) (Result, error) {
	var res Result
	err := l.store.Update(ctx, func(tx storage.Tx) error {
		var err error
		res, err = l.Apply(tx, caller, op)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Apply applies op inside an existing write transaction and advances the
// ledger height. Addresses in caller and op are canonicalized first. On
// error the caller must discard tx.
func (l *Ledger) Apply(tx storage.Tx, caller string, op Op) (Result, error) {
	if caller == "" {
		return Result{}, ErrAuthenticationRequired
	}
	caller = CanonicalAddress(caller)
	if err := validateAddress("caller", caller); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAuthenticationRequired, err)
	}
	op = op.canonical()
	if err := op.Validate(l.policy); err != nil {
		return Result{}, err
	}

	height, err := tx.Height()
	if err != nil {
		return Result{}, err
	}
	height++
	if err := tx.SetHeight(height); err != nil {
		return Result{}, err
	}

	a := &applier{
		tx:     tx,
		caller: caller,
		policy: l.policy,
		height: height,
		now:    l.now().Unix(),
	}
	id, err := op.apply(a)
	if err != nil {
		return Result{}, err
	}
	return Result{ID: id, Height: height}, nil
}

// applier carries the context of one operation being applied.
type applier struct {
	tx     storage.Tx
	caller string
	policy Policy
	height uint64
	now    int64
}

// safeAdd adds two non-negative amounts, rejecting overflow.
func safeAdd(x, y int64) (int64, error) {
	if y > 0 && x > math.MaxInt64-y {
		return 0, fmt.Errorf("%w: amount overflow", ErrInvalidArgument)
	}
	return x + y, nil
}
