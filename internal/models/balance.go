package models

// Balance is the amount Debtor owes Creditor inside a group.
// For any pair at most one direction is nonzero.
type Balance struct {
	GroupID  uint64
	Debtor   string
	Creditor string
	Amount   int64
}

// DebtEdge is a suggested transfer that would reduce outstanding debt.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount int64
}
