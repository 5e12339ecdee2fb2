package models

// Group represents a circle of participants sharing costs.
// Groups are never deleted; ID is allocated monotonically starting at 1.
type Group struct {
	// ID is the ledger-assigned group identifier.
	ID uint64

	// Name is the display name of the group (e.g., "Trip", "Roommates").
	Name string

	// Creator is the address of the identity that created the group.
	// Only the creator may pause, unpause, and (by default) add members.
	Creator string

	// CreatedAt is the ledger height at which the group was created.
	CreatedAt uint64

	// Paused freezes new members and new expenses while set.
	Paused bool

	// MemberCount is the number of member rows ever created, active or not.
	MemberCount uint64

	// ExpenseCount is the number of expenses recorded; also the last expense ID.
	ExpenseCount uint64

	// SettlementCount is the number of settlements recorded; also the last settlement ID.
	SettlementCount uint64
}

// GroupStats is the derived summary of a group.
type GroupStats struct {
	MemberCount      uint64
	TotalExpenses    uint64
	TotalSettlements uint64
	Paused           bool
}

// Stats derives the summary for g.
func (g *Group) Stats() GroupStats {
	return GroupStats{
		MemberCount:      g.MemberCount,
		TotalExpenses:    g.ExpenseCount,
		TotalSettlements: g.SettlementCount,
		Paused:           g.Paused,
	}
}
