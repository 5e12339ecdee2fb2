package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// GetBalance returns what debtor owes creditor.
func (t *sqlTx) GetBalance(groupID uint64, debtor, creditor string) (int64, error) {
	var amount int64
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT amount FROM balances WHERE group_id = ? AND debtor = ? AND creditor = ?",
		groupID, debtor, creditor,
	).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return amount, nil
}

// PutBalance sets or clears a directed balance.
func (t *sqlTx) PutBalance(groupID uint64, debtor, creditor string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative balance %d for %s -> %s", amount, debtor, creditor)
	}
	var err error
	if amount == 0 {
		err = t.exec(
			"DELETE FROM balances WHERE group_id = ? AND debtor = ? AND creditor = ?",
			groupID, debtor, creditor,
		)
	} else {
		err = t.exec(
			`INSERT INTO balances (group_id, debtor, creditor, amount) VALUES (?, ?, ?, ?)
			 ON CONFLICT(group_id, debtor, creditor) DO UPDATE SET amount = excluded.amount`,
			groupID, debtor, creditor, amount,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to put balance: %w", err)
	}
	return nil
}

func (t *sqlTx) queryBalances(query string, args ...any) ([]models.Balance, error) {
	rows, err := t.tx.QueryContext(t.ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.GroupID, &b.Debtor, &b.Creditor, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return balances, nil
}

// ListDebts returns the balances owed by debtor, ordered by creditor.
func (t *sqlTx) ListDebts(groupID uint64, debtor string) ([]models.Balance, error) {
	return t.queryBalances(
		`SELECT group_id, debtor, creditor, amount FROM balances
		 WHERE group_id = ? AND debtor = ? ORDER BY creditor`,
		groupID, debtor,
	)
}

// ListBalances returns every balance in the group.
func (t *sqlTx) ListBalances(groupID uint64) ([]models.Balance, error) {
	return t.queryBalances(
		`SELECT group_id, debtor, creditor, amount FROM balances
		 WHERE group_id = ? ORDER BY debtor, creditor`,
		groupID,
	)
}

// InsertExpense persists an expense and its per-participant shares.
func (t *sqlTx) InsertExpense(e *models.Expense) error {
	err := t.exec(
		`INSERT INTO expenses (group_id, id, description, total_amount, payer, receipt_hash, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.GroupID, e.ID, e.Description, e.TotalAmount, e.Payer, e.ReceiptHash, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	// Insert shares in participant order
	for i, p := range e.Participants {
		err = t.exec(
			"INSERT INTO expense_shares (group_id, expense_id, position, participant, share) VALUES (?, ?, ?, ?, ?)",
			e.GroupID, e.ID, i, p, e.Shares[i],
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}
	return nil
}

func (t *sqlTx) loadShares(e *models.Expense) error {
	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT participant, share FROM expense_shares WHERE group_id = ? AND expense_id = ? ORDER BY position",
		e.GroupID, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p string
		var share int64
		if err := rows.Scan(&p, &share); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		e.Participants = append(e.Participants, p)
		e.Shares = append(e.Shares, share)
	}
	return rows.Err()
}

// GetExpense retrieves an expense with its shares.
func (t *sqlTx) GetExpense(groupID, expenseID uint64) (*models.Expense, error) {
	e := &models.Expense{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT group_id, id, description, total_amount, payer, receipt_hash, timestamp
		 FROM expenses WHERE group_id = ? AND id = ?`,
		groupID, expenseID,
	).Scan(&e.GroupID, &e.ID, &e.Description, &e.TotalAmount, &e.Payer, &e.ReceiptHash, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %d in group %d: %w", expenseID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := t.loadShares(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListExpenses retrieves all expenses of a group, oldest first.
func (t *sqlTx) ListExpenses(groupID uint64) ([]*models.Expense, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT group_id, id, description, total_amount, payer, receipt_hash, timestamp
		 FROM expenses WHERE group_id = ? ORDER BY id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.GroupID, &e.ID, &e.Description, &e.TotalAmount, &e.Payer, &e.ReceiptHash, &e.Timestamp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Shares are loaded after the outer rows are closed
	for _, e := range expenses {
		if err := t.loadShares(e); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}
