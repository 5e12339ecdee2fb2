package models

// Expense represents a shared cost paid by one member and split equally
// among participants. Expenses are immutable once recorded.
type Expense struct {
	// GroupID is the group the expense was recorded in.
	GroupID uint64

	// ID is monotonic per group, starting at 1.
	ID uint64

	// Description is a short human-readable label (e.g., "Dinner").
	Description string

	// TotalAmount is the full cost in the smallest currency unit.
	TotalAmount int64

	// Payer is the address that submitted the expense.
	Payer string

	// Participants lists who shares the cost, in submission order.
	Participants []string

	// Shares holds each participant's portion, aligned with Participants.
	// The shares always sum to TotalAmount.
	Shares []int64

	// ReceiptHash is an optional hex digest of an off-ledger receipt.
	ReceiptHash string

	// Timestamp is the Unix time at which the expense was applied.
	Timestamp int64

	// Settled is derived on read: every non-payer participant has no
	// outstanding debt to the payer. It is never stored.
	Settled bool
}

// ShareOf returns the share assigned to address, or 0 when absent.
func (e *Expense) ShareOf(address string) int64 {
	for i, p := range e.Participants {
		if p == address {
			return e.Shares[i]
		}
	}
	return 0
}
