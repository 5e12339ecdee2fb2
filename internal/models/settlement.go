package models

// Settlement represents a value transfer between group members to clear debt.
type Settlement struct {
	// GroupID is the group this settlement belongs to.
	GroupID uint64

	// ID is monotonic per group, starting at 1.
	ID uint64

	// Debtor is the address that paid (the caller settling up).
	Debtor string

	// Creditor is the address that received the payment.
	Creditor string

	// Amount is the transferred amount; it always equals the applied
	// reduction of the pairwise balance.
	Amount int64

	// Timestamp is the Unix time at which the settlement was applied.
	Timestamp int64
}
