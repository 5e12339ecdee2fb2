package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
)

// apply moves Amount from the caller's account to the creditor's and
// reduces the caller's debt by the same amount. Overpayment is rejected, so
// the recorded amount always equals the applied reduction.
func (o SettleDebt) apply(a *applier) (uint64, error) {
	group, err := a.tx.GetGroup(o.GroupID)
	if err != nil {
		return 0, err
	}
	if group.Paused && !a.policy.SettleWhilePaused {
		return 0, ErrGroupPaused
	}
	if o.Creditor == a.caller {
		return 0, fmt.Errorf("%w: cannot settle with yourself", ErrInvalidArgument)
	}

	debtor, err := a.tx.GetMember(o.GroupID, a.caller)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("%w: %s is not a member of group %d", ErrUnauthorized, a.caller, o.GroupID)
	}
	if err != nil {
		return 0, err
	}

	owed, err := a.tx.GetBalance(o.GroupID, a.caller, o.Creditor)
	if err != nil {
		return 0, err
	}
	if owed == 0 {
		return 0, fmt.Errorf("%w: %s owes nothing to %s", ErrNoSuchDebt, a.caller, o.Creditor)
	}
	if o.Amount > owed {
		return 0, fmt.Errorf("%w: amount %d exceeds outstanding %d", ErrOverpaymentRejected, o.Amount, owed)
	}

	creditor, err := a.tx.GetMember(o.GroupID, o.Creditor)
	if err != nil {
		return 0, err
	}

	if err := transfer(a, a.caller, o.Creditor, o.Amount); err != nil {
		return 0, err
	}

	if err := a.tx.PutBalance(o.GroupID, a.caller, o.Creditor, owed-o.Amount); err != nil {
		return 0, err
	}
	debtor.TotalOwing -= o.Amount
	creditor.TotalOwed -= o.Amount
	if err := a.tx.PutMember(debtor); err != nil {
		return 0, err
	}
	if err := a.tx.PutMember(creditor); err != nil {
		return 0, err
	}

	group.SettlementCount++
	settlement := &models.Settlement{
		GroupID:   o.GroupID,
		ID:        group.SettlementCount,
		Debtor:    a.caller,
		Creditor:  o.Creditor,
		Amount:    o.Amount,
		Timestamp: a.now,
	}
	if err := a.tx.InsertSettlement(settlement); err != nil {
		return 0, err
	}
	if err := a.tx.PutGroup(group); err != nil {
		return 0, err
	}
	return settlement.ID, nil
}

// transfer moves amount between accounts. It is the value-transfer layer:
// a shortfall is a ledger rejection, not a validation error.
func transfer(a *applier, from, to string, amount int64) error {
	fromBalance, err := a.tx.GetAccount(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from, fromBalance, amount)
	}
	toBalance, err := a.tx.GetAccount(to)
	if err != nil {
		return err
	}
	toBalance, err = safeAdd(toBalance, amount)
	if err != nil {
		return err
	}

	if err := a.tx.PutAccount(from, fromBalance-amount); err != nil {
		return err
	}
	return a.tx.PutAccount(to, toBalance)
}

func (o Deposit) apply(a *applier) (uint64, error) {
	if !a.policy.Faucet {
		return 0, fmt.Errorf("%w: deposits are disabled on this network", ErrUnauthorized)
	}
	balance, err := a.tx.GetAccount(a.caller)
	if err != nil {
		return 0, err
	}
	balance, err = safeAdd(balance, o.Amount)
	if err != nil {
		return 0, err
	}
	return 0, a.tx.PutAccount(a.caller, balance)
}
