// Package sequencer turns submitted operations into a totally ordered
// stream of ledger transitions.
//
// Submit persists a pending receipt and queues the operation. A single
// applier goroutine (Run) takes operations in inclusion order and applies
// each one in its own store transaction, writing the success receipt in the
// same transaction. A rejected operation rolls back and gets a failure
// receipt instead, so callers observe pending, then exactly one of success
// or failure.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/metrics"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// ErrStopped is returned by Submit once the applier has exited.
var ErrStopped = errors.New("sequencer stopped")

// Message recorded on receipts orphaned by a restart.
const abandonedMessage = "node restarted before the operation was included"

type submission struct {
	txID   string
	caller string
	op     ledger.Op
	at     int64
}

// Sequencer orders and applies operations.
type Sequencer struct {
	ledger  *ledger.Ledger
	store   storage.Store
	metrics *metrics.Metrics
	queue   chan submission
	now     func() time.Time

	// mu is held shared by every enqueue and exclusively by Run while it
	// stops, so nothing enters the queue after the final drain.
	mu       sync.RWMutex
	stopped  bool
	stopping chan struct{}
}

// New creates a Sequencer that queues at most queueSize operations.
func New(l *ledger.Ledger, m *metrics.Metrics, queueSize int) *Sequencer {
	return &Sequencer{
		ledger:  l,
		store:   l.Store(),
		metrics: m,
		queue:    make(chan submission, queueSize),
		now:      time.Now,
		stopping: make(chan struct{}),
	}
}

// Submit canonicalizes and validates op, records it as pending and queues
// it. The returned transaction ID resolves through Receipt. Stateless
// validation errors are returned directly and nothing is recorded.
func (s *Sequencer) Submit(ctx context.Context, caller string, op ledger.Op) (string, error) {
	if caller == "" {
		return "", ledger.ErrAuthenticationRequired
	}
	caller = ledger.CanonicalAddress(caller)
	op = ledger.Canonical(op)
	if err := op.Validate(s.ledger.Policy()); err != nil {
		return "", err
	}

	select {
	case <-s.stopping:
		return "", ErrStopped
	default:
	}

	sub := submission{
		txID:   uuid.New().String(),
		caller: caller,
		op:     op,
		at:     s.now().Unix(),
	}

	pending := &models.Receipt{
		TxID:        sub.txID,
		Op:          op.Name(),
		Caller:      caller,
		GroupID:     op.Group(),
		Status:      models.TxPending,
		SubmittedAt: sub.at,
	}
	if err := s.store.Update(ctx, func(tx storage.Tx) error {
		return tx.PutReceipt(pending)
	}); err != nil {
		return "", fmt.Errorf("failed to record submission: %w", err)
	}

	if err := s.enqueue(ctx, sub); err != nil {
		s.fail(sub, err)
		return "", err
	}

	s.metrics.Submitted(op.Name())
	s.metrics.SetQueueDepth(len(s.queue))
	slog.Debug("Operation submitted", "tx_id", sub.txID, "op", op.Name(), "caller", caller)
	return sub.txID, nil
}

// enqueue hands sub to the applier. Once Run has begun stopping it fails
// with ErrStopped; a submission that made it into the queue is always
// either applied or drained.
func (s *Sequencer) enqueue(ctx context.Context, sub submission) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return ErrStopped
	}
	select {
	case s.queue <- sub:
		return nil
	case <-s.stopping:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receipt returns the current receipt of a submitted operation.
func (s *Sequencer) Receipt(ctx context.Context, txID string) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		receipt, err = tx.GetReceipt(txID)
		return err
	})
	return receipt, err
}

// Run applies queued operations until ctx is cancelled. It must be
// called exactly once.
func (s *Sequencer) Run(ctx context.Context) error {
	if height, err := s.ledger.Height(ctx); err == nil {
		s.metrics.SetHeight(height)
	}

	slog.Info("Sequencer started", "queue_size", cap(s.queue))
	for {
		select {
		case <-ctx.Done():
			s.stop()
			slog.Info("Sequencer stopped")
			return nil
		case sub := <-s.queue:
			s.metrics.SetQueueDepth(len(s.queue))
			s.apply(ctx, sub)
		}
	}
}

// apply runs one operation. A started operation is always finished, even
// if ctx is cancelled meanwhile.
func (s *Sequencer) apply(ctx context.Context, sub submission) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	var res ledger.Result
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		var err error
		res, err = s.ledger.Apply(tx, sub.caller, sub.op)
		if err != nil {
			return err
		}

		receipt := s.receipt(sub, models.TxSuccess)
		receipt.ResultID = res.ID
		receipt.Height = res.Height
		if sub.op.Name() == ledger.OpCreateGroup {
			receipt.GroupID = res.ID
		}
		return tx.PutReceipt(receipt)
	})
	took := time.Since(start)

	if err != nil {
		code := ledger.Code(err)
		s.metrics.Applied(sub.op.Name(), string(models.TxFailure), code, took)
		if ledger.IsDomain(err) {
			slog.Info("Operation rejected",
				"tx_id", sub.txID,
				"op", sub.op.Name(),
				"caller", sub.caller,
				"code", code,
				"error", err,
			)
		} else {
			slog.Error("Operation failed",
				"tx_id", sub.txID,
				"op", sub.op.Name(),
				"caller", sub.caller,
				"error", err,
			)
		}
		s.fail(sub, err)
		return
	}

	s.metrics.Applied(sub.op.Name(), string(models.TxSuccess), "", took)
	s.metrics.SetHeight(res.Height)
	slog.Info("Operation applied",
		"tx_id", sub.txID,
		"op", sub.op.Name(),
		"caller", sub.caller,
		"height", res.Height,
		"result_id", res.ID,
		"duration_ms", took.Milliseconds(),
	)
}

func (s *Sequencer) receipt(sub submission, status models.TxStatus) *models.Receipt {
	return &models.Receipt{
		TxID:        sub.txID,
		Op:          sub.op.Name(),
		Caller:      sub.caller,
		GroupID:     sub.op.Group(),
		Status:      status,
		SubmittedAt: sub.at,
		ConfirmedAt: s.now().Unix(),
	}
}

// fail writes a failure receipt. The height is the one the operation was
// evaluated against.
func (s *Sequencer) fail(sub submission, cause error) {
	err := s.store.Update(context.Background(), func(tx storage.Tx) error {
		height, err := tx.Height()
		if err != nil {
			return err
		}
		receipt := s.receipt(sub, models.TxFailure)
		receipt.ErrorCode = ledger.Code(cause)
		receipt.ErrorMessage = cause.Error()
		receipt.Height = height
		return tx.PutReceipt(receipt)
	})
	if err != nil {
		slog.Error("Failed to record failure receipt", "tx_id", sub.txID, "error", err)
	}
}

// stop releases blocked submitters, waits for in-flight enqueues, then
// fails everything left in the queue.
func (s *Sequencer) stop() {
	close(s.stopping)
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.drain()
}

// drain fails everything still queued at shutdown.
func (s *Sequencer) drain() {
	for {
		select {
		case sub := <-s.queue:
			s.fail(sub, ErrStopped)
		default:
			s.metrics.SetQueueDepth(0)
			return
		}
	}
}

// Recover resolves pending receipts persisted by an earlier process as
// failures. Their operations were never applied and are not retained.
// Call it before the first Submit.
func (s *Sequencer) Recover(ctx context.Context) error {
	var orphans int
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		pending, err := tx.ListReceipts(models.TxPending)
		if err != nil {
			return err
		}
		height, err := tx.Height()
		if err != nil {
			return err
		}
		for _, r := range pending {
			r.Status = models.TxFailure
			r.ErrorCode = ledger.CodeInternal
			r.ErrorMessage = abandonedMessage
			r.Height = height
			r.ConfirmedAt = s.now().Unix()
			if err := tx.PutReceipt(r); err != nil {
				return err
			}
		}
		orphans = len(pending)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to resolve orphaned receipts: %w", err)
	}
	if orphans > 0 {
		slog.Warn("Resolved orphaned submissions", "count", orphans)
	}
	return nil
}
