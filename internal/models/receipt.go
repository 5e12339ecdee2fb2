package models

// TxStatus is the observable phase of a submitted operation.
type TxStatus string

const (
	// TxPending means the operation was accepted but not yet applied.
	TxPending TxStatus = "pending"
	// TxSuccess means the operation was applied and state mutated.
	TxSuccess TxStatus = "success"
	// TxFailure means the operation was rejected with no state change.
	TxFailure TxStatus = "failure"
)

// Receipt records the outcome of one submitted operation.
type Receipt struct {
	// TxID is the submission identifier (UUID format).
	TxID string

	// Op is the operation name (e.g., "add-expense").
	Op string

	// Caller is the submitting address.
	Caller string

	// GroupID is the target group, or the created group for create-group.
	GroupID uint64

	Status TxStatus

	// ResultID is the ID produced by the operation: the group ID for
	// create-group, the expense ID for add-expense, the settlement ID for
	// settle-debt. Zero otherwise.
	ResultID uint64

	// ErrorCode and ErrorMessage are set for failures.
	ErrorCode    string
	ErrorMessage string

	// Height is the ledger height at which the operation was applied.
	Height uint64

	SubmittedAt int64
	ConfirmedAt int64
}

// Final reports whether the receipt reached success or failure.
func (r *Receipt) Final() bool {
	return r.Status == TxSuccess || r.Status == TxFailure
}
