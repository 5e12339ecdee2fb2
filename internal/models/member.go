package models

// Member represents one address's membership in a group.
// Rows are never deleted; removal clears Active so history stays resolvable.
type Member struct {
	// GroupID is the group this member belongs to.
	GroupID uint64

	// Address is the member's identity, unique per group.
	Address string

	// Nickname is the display name chosen when the member was added.
	Nickname string

	// Index is the zero-based join position within the group.
	Index uint64

	// Active is false once the member has been removed.
	Active bool

	// TotalOwed is the sum of what other members owe this member.
	TotalOwed int64

	// TotalOwing is the sum of what this member owes other members.
	TotalOwing int64
}

// NetBalance returns TotalOwed - TotalOwing. Positive means net creditor.
func (m *Member) NetBalance() int64 {
	return m.TotalOwed - m.TotalOwing
}

// Creditor is a counterparty the member owes money to.
type Creditor struct {
	Address  string
	Nickname string
	Amount   int64
}
