package ledger

import (
	"fmt"

	"github.com/mmynk/kindnest/internal/calculator"
	"github.com/mmynk/kindnest/internal/models"
)

func (o AddExpense) apply(a *applier) (uint64, error) {
	group, err := a.tx.GetGroup(o.GroupID)
	if err != nil {
		return 0, err
	}
	if group.Paused {
		return 0, ErrGroupPaused
	}

	payer, err := activeMember(a, o.GroupID, a.caller)
	if err != nil {
		return 0, err
	}
	if payer == nil {
		return 0, fmt.Errorf("%w: %s is not an active member of group %d", ErrUnauthorized, a.caller, o.GroupID)
	}

	// Every participant must be an active member
	for _, addr := range o.Participants {
		m, err := activeMember(a, o.GroupID, addr)
		if err != nil {
			return 0, err
		}
		if m == nil {
			return 0, fmt.Errorf("%w: %s is not an active member of group %d", ErrInvalidParticipant, addr, o.GroupID)
		}
	}

	shares, err := calculator.EqualSplit(o.Amount, len(o.Participants))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// Each participant other than the payer now owes the payer their share
	for i, addr := range o.Participants {
		if addr == a.caller || shares[i] == 0 {
			continue
		}
		if err := addDebt(a, o.GroupID, addr, a.caller, shares[i]); err != nil {
			return 0, err
		}
	}

	group.ExpenseCount++
	expense := &models.Expense{
		GroupID:      o.GroupID,
		ID:           group.ExpenseCount,
		Description:  o.Description,
		TotalAmount:  o.Amount,
		Payer:        a.caller,
		Participants: o.Participants,
		Shares:       shares,
		ReceiptHash:  o.ReceiptHash,
		Timestamp:    a.now,
	}
	if err := a.tx.InsertExpense(expense); err != nil {
		return 0, err
	}
	if err := a.tx.PutGroup(group); err != nil {
		return 0, err
	}
	return expense.ID, nil
}

// addDebt records that debtor owes creditor amount more, netting it against
// any debt in the opposite direction, and keeps both members' aggregates in
// step with the pairwise balances.
func addDebt(a *applier, groupID uint64, debtor, creditor string, amount int64) error {
	forward, err := a.tx.GetBalance(groupID, debtor, creditor)
	if err != nil {
		return err
	}
	reverse, err := a.tx.GetBalance(groupID, creditor, debtor)
	if err != nil {
		return err
	}
	if _, err := safeAdd(forward, amount); err != nil {
		return err
	}

	n := calculator.Net(forward, reverse, amount)

	d, err := a.tx.GetMember(groupID, debtor)
	if err != nil {
		return err
	}
	c, err := a.tx.GetMember(groupID, creditor)
	if err != nil {
		return err
	}

	// The cancelled part shrinks the creditor's old debt to the debtor
	c.TotalOwing -= n.Cancelled
	d.TotalOwed -= n.Cancelled

	// The rest becomes new debt from debtor to creditor
	if d.TotalOwing, err = safeAdd(d.TotalOwing, n.Added); err != nil {
		return err
	}
	if c.TotalOwed, err = safeAdd(c.TotalOwed, n.Added); err != nil {
		return err
	}

	if err := a.tx.PutBalance(groupID, debtor, creditor, n.Forward); err != nil {
		return err
	}
	if err := a.tx.PutBalance(groupID, creditor, debtor, n.Reverse); err != nil {
		return err
	}
	if err := a.tx.PutMember(d); err != nil {
		return err
	}
	return a.tx.PutMember(c)
}
