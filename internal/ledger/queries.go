package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/mmynk/kindnest/internal/calculator"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// Read projections. None of these mutate state; each runs in one View so
// the answer reflects a single committed snapshot. Address arguments are
// canonicalized like those of operations.

// GetGroup returns a group by ID.
func (l *Ledger) GetGroup(ctx context.Context, groupID uint64) (*models.Group, error) {
	var group *models.Group
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		group, err = tx.GetGroup(groupID)
		return err
	})
	return group, err
}

// GetTotalGroups returns how many groups have been created.
func (l *Ledger) GetTotalGroups(ctx context.Context) (uint64, error) {
	var count uint64
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		count, err = tx.GroupCount()
		return err
	})
	return count, err
}

// GetGroupStats returns the derived summary of a group.
func (l *Ledger) GetGroupStats(ctx context.Context, groupID uint64) (models.GroupStats, error) {
	group, err := l.GetGroup(ctx, groupID)
	if err != nil {
		return models.GroupStats{}, err
	}
	return group.Stats(), nil
}

// GetMemberInfo returns address's member row in a group.
func (l *Ledger) GetMemberInfo(ctx context.Context, groupID uint64, address string) (*models.Member, error) {
	address = CanonicalAddress(address)
	var member *models.Member
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		var err error
		member, err = tx.GetMember(groupID, address)
		return err
	})
	return member, err
}

// GetMemberAt returns the member that joined at index.
func (l *Ledger) GetMemberAt(ctx context.Context, groupID uint64, index uint64) (*models.Member, error) {
	var member *models.Member
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		member, err = tx.GetMemberAt(groupID, index)
		return err
	})
	return member, err
}

// GetNetBalance returns totalOwed - totalOwing. Positive means net creditor.
func (l *Ledger) GetNetBalance(ctx context.Context, groupID uint64, address string) (int64, error) {
	member, err := l.GetMemberInfo(ctx, groupID, address)
	if err != nil {
		return 0, err
	}
	return member.NetBalance(), nil
}

// GetGroupMembers returns every member row, including inactive ones, in join order.
func (l *Ledger) GetGroupMembers(ctx context.Context, groupID uint64) ([]*models.Member, error) {
	var members []*models.Member
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		var err error
		members, err = tx.ListMembers(groupID)
		return err
	})
	return members, err
}

// GetBalance returns what debtor owes creditor.
func (l *Ledger) GetBalance(ctx context.Context, groupID uint64, debtor, creditor string) (int64, error) {
	debtor, creditor = CanonicalAddress(debtor), CanonicalAddress(creditor)
	var amount int64
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		var err error
		amount, err = tx.GetBalance(groupID, debtor, creditor)
		return err
	})
	return amount, err
}

// GetUserCreditors lists the active counterparties address owes money to,
// largest debt first. The first entry is the default settlement target.
func (l *Ledger) GetUserCreditors(ctx context.Context, groupID uint64, address string) ([]models.Creditor, error) {
	address = CanonicalAddress(address)
	var creditors []models.Creditor
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		creditors, err = creditorsOf(tx, groupID, address)
		return err
	})
	return creditors, err
}

func creditorsOf(tx storage.ReadTx, groupID uint64, address string) ([]models.Creditor, error) {
	if _, err := tx.GetGroup(groupID); err != nil {
		return nil, err
	}
	debts, err := tx.ListDebts(groupID, address)
	if err != nil {
		return nil, err
	}

	creditors := make([]models.Creditor, 0, len(debts))
	for _, d := range debts {
		m, err := tx.GetMember(groupID, d.Creditor)
		if err != nil {
			return nil, fmt.Errorf("creditor %s: %w", d.Creditor, err)
		}
		if !m.Active {
			continue
		}
		creditors = append(creditors, models.Creditor{Address: m.Address, Nickname: m.Nickname, Amount: d.Amount})
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		if creditors[i].Amount != creditors[j].Amount {
			return creditors[i].Amount > creditors[j].Amount
		}
		return creditors[i].Address < creditors[j].Address
	})
	return creditors, nil
}

// GetExpense returns one expense with its derived Settled flag.
func (l *Ledger) GetExpense(ctx context.Context, groupID, expenseID uint64) (*models.Expense, error) {
	var expense *models.Expense
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		if expense, err = tx.GetExpense(groupID, expenseID); err != nil {
			return err
		}
		expense.Settled, err = expenseSettled(tx, expense)
		return err
	})
	return expense, err
}

// ListExpenses returns every expense of a group, oldest first.
func (l *Ledger) ListExpenses(ctx context.Context, groupID uint64) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		var err error
		if expenses, err = tx.ListExpenses(groupID); err != nil {
			return err
		}
		for _, e := range expenses {
			if e.Settled, err = expenseSettled(tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	return expenses, err
}

// expenseSettled reports whether no participant still owes the payer.
func expenseSettled(tx storage.ReadTx, e *models.Expense) (bool, error) {
	for i, p := range e.Participants {
		if p == e.Payer || e.Shares[i] == 0 {
			continue
		}
		owed, err := tx.GetBalance(e.GroupID, p, e.Payer)
		if err != nil {
			return false, err
		}
		if owed > 0 {
			return false, nil
		}
	}
	return true, nil
}

// GetSettlement returns one settlement.
func (l *Ledger) GetSettlement(ctx context.Context, groupID, settlementID uint64) (*models.Settlement, error) {
	var settlement *models.Settlement
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		settlement, err = tx.GetSettlement(groupID, settlementID)
		return err
	})
	return settlement, err
}

// GetAllSettlements returns every settlement of a group, oldest first.
func (l *Ledger) GetAllSettlements(ctx context.Context, groupID uint64) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		var err error
		settlements, err = tx.ListSettlements(groupID)
		return err
	})
	return settlements, err
}

// GetUserGroups returns the groups where address is an active member.
func (l *Ledger) GetUserGroups(ctx context.Context, address string) ([]uint64, error) {
	address = CanonicalAddress(address)
	var groups []uint64
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		ids, err := tx.ListGroupsByMember(address)
		if err != nil {
			return err
		}
		for _, id := range ids {
			m, err := tx.GetMember(id, address)
			if err != nil {
				return err
			}
			if m.Active {
				groups = append(groups, id)
			}
		}
		return nil
	})
	return groups, err
}

// SuggestSettlements proposes transfers that would clear every net position
// in the group. The plan is advisory; settleDebt only pays pairwise debts.
func (l *Ledger) SuggestSettlements(ctx context.Context, groupID uint64) ([]models.DebtEdge, error) {
	var balances []calculator.MemberBalance
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.GetGroup(groupID); err != nil {
			return err
		}
		members, err := tx.ListMembers(groupID)
		if err != nil {
			return err
		}
		for _, m := range members {
			balances = append(balances, calculator.MemberBalance{Address: m.Address, NetBalance: m.NetBalance()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return calculator.SimplifyDebts(balances), nil
}

// GetAccount returns the spendable balance of address.
func (l *Ledger) GetAccount(ctx context.Context, address string) (int64, error) {
	address = CanonicalAddress(address)
	var balance int64
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		balance, err = tx.GetAccount(address)
		return err
	})
	return balance, err
}

// Height returns the number of operations applied so far.
func (l *Ledger) Height(ctx context.Context) (uint64, error) {
	var height uint64
	err := l.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		height, err = tx.Height()
		return err
	})
	return height, err
}
