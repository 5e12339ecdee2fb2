// Package storagetest holds the behavioral checks every storage.Store
// backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// Factory returns a new empty store. The store is closed by the suite.
type Factory func(t *testing.T) storage.Store

// Run exercises a store backend.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"Height", testHeight},
		{"Groups", testGroups},
		{"Members", testMembers},
		{"Balances", testBalances},
		{"Expenses", testExpenses},
		{"Settlements", testSettlements},
		{"Accounts", testAccounts},
		{"Receipts", testReceipts},
		{"Rollback", testRollback},
		{"ReadYourWrites", testReadYourWrites},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			tt.fn(t, s)
		})
	}
}

func update(t *testing.T, s storage.Store, fn func(tx storage.Tx) error) {
	t.Helper()
	if err := s.Update(context.Background(), fn); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}

func view(t *testing.T, s storage.Store, fn func(tx storage.ReadTx) error) {
	t.Helper()
	if err := s.View(context.Background(), fn); err != nil {
		t.Fatalf("View failed: %v", err)
	}
}

func seedGroup(t *testing.T, s storage.Store, id uint64, creator string) {
	t.Helper()
	update(t, s, func(tx storage.Tx) error {
		if err := tx.PutGroup(&models.Group{ID: id, Name: "Trip", Creator: creator, CreatedAt: id, MemberCount: 1}); err != nil {
			return err
		}
		return tx.PutMember(&models.Member{GroupID: id, Address: creator, Nickname: creator, Index: 0, Active: true})
	})
}

func testHeight(t *testing.T, s storage.Store) {
	view(t, s, func(tx storage.ReadTx) error {
		h, err := tx.Height()
		if err != nil {
			return err
		}
		if h != 0 {
			t.Errorf("empty store height = %d, want 0", h)
		}
		return nil
	})

	update(t, s, func(tx storage.Tx) error { return tx.SetHeight(7) })

	view(t, s, func(tx storage.ReadTx) error {
		h, err := tx.Height()
		if err != nil {
			return err
		}
		if h != 7 {
			t.Errorf("height = %d, want 7", h)
		}
		return nil
	})
}

func testGroups(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	seedGroup(t, s, 2, "Y")

	update(t, s, func(tx storage.Tx) error {
		g, err := tx.GetGroup(1)
		if err != nil {
			return err
		}
		g.Paused = true
		g.ExpenseCount = 3
		return tx.PutGroup(g)
	})

	view(t, s, func(tx storage.ReadTx) error {
		count, err := tx.GroupCount()
		if err != nil {
			return err
		}
		if count != 2 {
			t.Errorf("GroupCount = %d, want 2", count)
		}

		g, err := tx.GetGroup(1)
		if err != nil {
			return err
		}
		if !g.Paused || g.ExpenseCount != 3 || g.Creator != "X" || g.Name != "Trip" {
			t.Errorf("unexpected group: %+v", g)
		}

		if _, err := tx.GetGroup(3); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup(3): expected ErrNotFound, got %v", err)
		}
		return nil
	})
}

func testMembers(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	seedGroup(t, s, 2, "Z")
	update(t, s, func(tx storage.Tx) error {
		if err := tx.PutMember(&models.Member{GroupID: 1, Address: "Y", Nickname: "Bob", Index: 1, Active: true}); err != nil {
			return err
		}
		return tx.PutMember(&models.Member{GroupID: 2, Address: "X", Nickname: "Al", Index: 1, Active: true})
	})

	// Replacing a row keeps its position
	update(t, s, func(tx storage.Tx) error {
		m, err := tx.GetMember(1, "Y")
		if err != nil {
			return err
		}
		m.Active = false
		m.TotalOwing = 5
		return tx.PutMember(m)
	})

	view(t, s, func(tx storage.ReadTx) error {
		members, err := tx.ListMembers(1)
		if err != nil {
			return err
		}
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
		if members[0].Address != "X" || members[1].Address != "Y" {
			t.Errorf("unexpected order: %s, %s", members[0].Address, members[1].Address)
		}
		if members[1].Active || members[1].TotalOwing != 5 || members[1].Nickname != "Bob" {
			t.Errorf("unexpected member: %+v", members[1])
		}

		at, err := tx.GetMemberAt(1, 1)
		if err != nil {
			return err
		}
		if at.Address != "Y" {
			t.Errorf("GetMemberAt(1) = %s, want Y", at.Address)
		}
		if _, err := tx.GetMemberAt(1, 2); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMemberAt(2): expected ErrNotFound, got %v", err)
		}
		if _, err := tx.GetMember(1, "Q"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMember(Q): expected ErrNotFound, got %v", err)
		}

		ids, err := tx.ListGroupsByMember("X")
		if err != nil {
			return err
		}
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Errorf("ListGroupsByMember(X) = %v, want [1 2]", ids)
		}
		return nil
	})
}

func testBalances(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	update(t, s, func(tx storage.Tx) error {
		for _, b := range []models.Balance{
			{Debtor: "Y", Creditor: "X", Amount: 150},
			{Debtor: "Y", Creditor: "Z", Amount: 20},
			{Debtor: "Z", Creditor: "X", Amount: 5},
		} {
			if err := tx.PutBalance(1, b.Debtor, b.Creditor, b.Amount); err != nil {
				return err
			}
		}
		return nil
	})

	view(t, s, func(tx storage.ReadTx) error {
		got, err := tx.GetBalance(1, "Y", "X")
		if err != nil {
			return err
		}
		if got != 150 {
			t.Errorf("Balance(Y,X) = %d, want 150", got)
		}
		if got, _ := tx.GetBalance(1, "X", "Y"); got != 0 {
			t.Errorf("Balance(X,Y) = %d, want 0", got)
		}

		debts, err := tx.ListDebts(1, "Y")
		if err != nil {
			return err
		}
		if len(debts) != 2 || debts[0].Creditor != "X" || debts[1].Creditor != "Z" {
			t.Errorf("unexpected debts of Y: %+v", debts)
		}
		return nil
	})

	// Zero clears the entry
	update(t, s, func(tx storage.Tx) error { return tx.PutBalance(1, "Y", "X", 0) })

	view(t, s, func(tx storage.ReadTx) error {
		all, err := tx.ListBalances(1)
		if err != nil {
			return err
		}
		if len(all) != 2 {
			t.Errorf("expected 2 balances after clearing, got %+v", all)
		} else if all[0].Debtor != "Y" || all[0].Creditor != "Z" || all[1].Debtor != "Z" || all[1].Creditor != "X" {
			t.Errorf("balances not ordered by debtor then creditor: %+v", all)
		}
		for _, b := range all {
			if b.Debtor == "Y" && b.Creditor == "X" {
				t.Errorf("cleared balance still listed: %+v", b)
			}
		}
		return nil
	})

	err := s.Update(context.Background(), func(tx storage.Tx) error {
		return tx.PutBalance(1, "Y", "X", -1)
	})
	if err == nil {
		t.Error("expected negative balance to be rejected")
	}
}

func testExpenses(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	first := &models.Expense{
		GroupID: 1, ID: 1, Description: "Dinner", TotalAmount: 100, Payer: "X",
		Participants: []string{"X", "Y", "Z"}, Shares: []int64{34, 33, 33},
		ReceiptHash: "beef", Timestamp: 1700000000,
	}
	second := &models.Expense{
		GroupID: 1, ID: 2, Description: "Taxi", TotalAmount: 40, Payer: "Y",
		Participants: []string{"Y"}, Shares: []int64{40}, Timestamp: 1700000100,
	}
	update(t, s, func(tx storage.Tx) error {
		if err := tx.InsertExpense(first); err != nil {
			return err
		}
		return tx.InsertExpense(second)
	})

	view(t, s, func(tx storage.ReadTx) error {
		e, err := tx.GetExpense(1, 1)
		if err != nil {
			return err
		}
		if e.Description != "Dinner" || e.Payer != "X" || e.ReceiptHash != "beef" || e.Timestamp != 1700000000 {
			t.Errorf("unexpected expense: %+v", e)
		}
		if len(e.Participants) != 3 || e.Participants[2] != "Z" || e.Shares[0] != 34 {
			t.Errorf("participants/shares not preserved: %v %v", e.Participants, e.Shares)
		}

		list, err := tx.ListExpenses(1)
		if err != nil {
			return err
		}
		if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
			t.Errorf("unexpected expense list: %+v", list)
		}
		if _, err := tx.GetExpense(1, 3); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense(3): expected ErrNotFound, got %v", err)
		}
		return nil
	})

	err := s.Update(context.Background(), func(tx storage.Tx) error {
		return tx.InsertExpense(first)
	})
	if err == nil {
		t.Error("expected duplicate expense to be rejected")
	}
}

func testSettlements(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	update(t, s, func(tx storage.Tx) error {
		return tx.InsertSettlement(&models.Settlement{GroupID: 1, ID: 1, Debtor: "Y", Creditor: "X", Amount: 100, Timestamp: 1700000000})
	})

	view(t, s, func(tx storage.ReadTx) error {
		st, err := tx.GetSettlement(1, 1)
		if err != nil {
			return err
		}
		if st.Debtor != "Y" || st.Creditor != "X" || st.Amount != 100 {
			t.Errorf("unexpected settlement: %+v", st)
		}
		list, err := tx.ListSettlements(1)
		if err != nil {
			return err
		}
		if len(list) != 1 {
			t.Errorf("expected 1 settlement, got %d", len(list))
		}
		if _, err := tx.GetSettlement(1, 2); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetSettlement(2): expected ErrNotFound, got %v", err)
		}
		return nil
	})
}

func testAccounts(t *testing.T, s storage.Store) {
	update(t, s, func(tx storage.Tx) error { return tx.PutAccount("X", 500) })
	update(t, s, func(tx storage.Tx) error { return tx.PutAccount("X", 320) })

	view(t, s, func(tx storage.ReadTx) error {
		if got, _ := tx.GetAccount("X"); got != 320 {
			t.Errorf("account X = %d, want 320", got)
		}
		if got, _ := tx.GetAccount("nobody"); got != 0 {
			t.Errorf("unknown account = %d, want 0", got)
		}
		return nil
	})
}

func testReceipts(t *testing.T, s storage.Store) {
	pending := &models.Receipt{TxID: "tx-1", Op: "add-expense", Caller: "X", GroupID: 1, Status: models.TxPending, SubmittedAt: 10}
	update(t, s, func(tx storage.Tx) error { return tx.PutReceipt(pending) })

	done := *pending
	done.Status = models.TxFailure
	done.ErrorCode = "GROUP_PAUSED"
	done.ErrorMessage = "group is paused"
	done.Height = 4
	done.ConfirmedAt = 11
	update(t, s, func(tx storage.Tx) error { return tx.PutReceipt(&done) })

	view(t, s, func(tx storage.ReadTx) error {
		r, err := tx.GetReceipt("tx-1")
		if err != nil {
			return err
		}
		if *r != done {
			t.Errorf("receipt = %+v, want %+v", r, done)
		}
		if _, err := tx.GetReceipt("tx-2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetReceipt(tx-2): expected ErrNotFound, got %v", err)
		}
		return nil
	})

	update(t, s, func(tx storage.Tx) error {
		for _, r := range []*models.Receipt{
			{TxID: "tx-3", Op: "deposit", Caller: "Y", Status: models.TxPending, SubmittedAt: 30},
			{TxID: "tx-2", Op: "deposit", Caller: "Y", Status: models.TxPending, SubmittedAt: 20},
		} {
			if err := tx.PutReceipt(r); err != nil {
				return err
			}
		}
		return nil
	})

	view(t, s, func(tx storage.ReadTx) error {
		list, err := tx.ListReceipts(models.TxPending)
		if err != nil {
			return err
		}
		if len(list) != 2 || list[0].TxID != "tx-2" || list[1].TxID != "tx-3" {
			t.Errorf("unexpected pending receipts: %+v", list)
		}
		failed, err := tx.ListReceipts(models.TxFailure)
		if err != nil {
			return err
		}
		if len(failed) != 1 || failed[0].TxID != "tx-1" {
			t.Errorf("unexpected failed receipts: %+v", failed)
		}
		return nil
	})
}

func testRollback(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	boom := errors.New("boom")

	err := s.Update(context.Background(), func(tx storage.Tx) error {
		if err := tx.SetHeight(9); err != nil {
			return err
		}
		if err := tx.PutGroup(&models.Group{ID: 2, Name: "Ghost", Creator: "Y"}); err != nil {
			return err
		}
		if err := tx.PutMember(&models.Member{GroupID: 1, Address: "Y", Nickname: "Y", Index: 1, Active: true}); err != nil {
			return err
		}
		if err := tx.PutBalance(1, "Y", "X", 10); err != nil {
			return err
		}
		if err := tx.PutAccount("Y", 10); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	view(t, s, func(tx storage.ReadTx) error {
		if h, _ := tx.Height(); h != 0 {
			t.Errorf("height = %d after rollback", h)
		}
		if count, _ := tx.GroupCount(); count != 1 {
			t.Errorf("GroupCount = %d after rollback", count)
		}
		if _, err := tx.GetMember(1, "Y"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("member survived rollback: %v", err)
		}
		if b, _ := tx.GetBalance(1, "Y", "X"); b != 0 {
			t.Errorf("balance survived rollback: %d", b)
		}
		if a, _ := tx.GetAccount("Y"); a != 0 {
			t.Errorf("account survived rollback: %d", a)
		}
		members, _ := tx.ListMembers(1)
		if len(members) != 1 {
			t.Errorf("member order survived rollback: %d members", len(members))
		}
		return nil
	})
}

func testReadYourWrites(t *testing.T, s storage.Store) {
	seedGroup(t, s, 1, "X")
	update(t, s, func(tx storage.Tx) error {
		if err := tx.PutMember(&models.Member{GroupID: 1, Address: "Y", Nickname: "Y", Index: 1, Active: true}); err != nil {
			return err
		}
		if err := tx.PutBalance(1, "Y", "X", 25); err != nil {
			return err
		}

		members, err := tx.ListMembers(1)
		if err != nil {
			return err
		}
		if len(members) != 2 {
			t.Errorf("uncommitted member not visible: %d members", len(members))
		}
		debts, err := tx.ListDebts(1, "Y")
		if err != nil {
			return err
		}
		if len(debts) != 1 || debts[0].Amount != 25 {
			t.Errorf("uncommitted balance not visible: %+v", debts)
		}
		return nil
	})
}
