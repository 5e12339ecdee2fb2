package calculator

import (
	"sort"

	"github.com/mmynk/kindnest/internal/models"
)

// Netting is the outcome of adding new debt to a pair of directed balances.
type Netting struct {
	// Forward is the new amount the debtor owes the creditor.
	Forward int64
	// Reverse is the new amount the creditor owes the debtor.
	Reverse int64
	// Cancelled is how much of the new debt was absorbed by Reverse.
	Cancelled int64
	// Added is how much of the new debt landed on Forward.
	Added int64
}

// Net adds amount of new debt from debtor to creditor, given the current
// forward (debtor -> creditor) and reverse (creditor -> debtor) balances.
// Existing reverse debt is reduced first so that at most one direction
// stays nonzero.
func Net(forward, reverse, amount int64) Netting {
	cancelled := min(reverse, amount)
	added := amount - cancelled
	return Netting{
		Forward:   forward + added,
		Reverse:   reverse - cancelled,
		Cancelled: cancelled,
		Added:     added,
	}
}

// MemberBalance is the net position of one member.
type MemberBalance struct {
	Address    string
	NetBalance int64 // Positive = owed money, Negative = owes money
}

// SimplifyDebts proposes a small set of transfers that would clear every
// net position. It is advisory: the ledger only settles pairwise debts.
//
// Algorithm: greedy matching of the largest debtor with the largest
// creditor until every position is zero.
func SimplifyDebts(balances []MemberBalance) []models.DebtEdge {
	var creditors, debtors []MemberBalance
	for _, bal := range balances {
		if bal.NetBalance > 0 {
			creditors = append(creditors, bal)
		} else if bal.NetBalance < 0 {
			debtors = append(debtors, MemberBalance{Address: bal.Address, NetBalance: -bal.NetBalance})
		}
	}

	// Largest first; ties broken by address so the plan is deterministic
	byAmount := func(s []MemberBalance) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].NetBalance != s[j].NetBalance {
				return s[i].NetBalance > s[j].NetBalance
			}
			return s[i].Address < s[j].Address
		})
	}
	byAmount(creditors)
	byAmount(debtors)

	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := min(debtor.NetBalance, creditor.NetBalance)
		edges = append(edges, models.DebtEdge{
			From:   debtor.Address,
			To:     creditor.Address,
			Amount: amount,
		})

		debtor.NetBalance -= amount
		creditor.NetBalance -= amount

		// Move to next debtor/creditor if fully settled
		if debtor.NetBalance == 0 {
			i++
		}
		if creditor.NetBalance == 0 {
			j++
		}
	}

	return edges
}
