package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// InsertSettlement persists a new settlement to the database.
func (t *sqlTx) InsertSettlement(s *models.Settlement) error {
	err := t.exec(
		`INSERT INTO settlements (group_id, id, debtor, creditor, amount, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.GroupID, s.ID, s.Debtor, s.Creditor, s.Amount, s.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (t *sqlTx) GetSettlement(groupID, settlementID uint64) (*models.Settlement, error) {
	s := &models.Settlement{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT group_id, id, debtor, creditor, amount, timestamp
		 FROM settlements WHERE group_id = ? AND id = ?`,
		groupID, settlementID,
	).Scan(&s.GroupID, &s.ID, &s.Debtor, &s.Creditor, &s.Amount, &s.Timestamp)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %d in group %d: %w", settlementID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return s, nil
}

// ListSettlements retrieves all settlements for a group, oldest first.
func (t *sqlTx) ListSettlements(groupID uint64) ([]*models.Settlement, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT group_id, id, debtor, creditor, amount, timestamp
		 FROM settlements WHERE group_id = ? ORDER BY id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		s := &models.Settlement{}
		if err := rows.Scan(&s.GroupID, &s.ID, &s.Debtor, &s.Creditor, &s.Amount, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// GetAccount returns the spendable balance of address.
func (t *sqlTx) GetAccount(address string) (int64, error) {
	var balance int64
	err := t.tx.QueryRowContext(t.ctx, "SELECT balance FROM accounts WHERE address = ?", address).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	return balance, nil
}

// PutAccount sets the spendable balance of address.
func (t *sqlTx) PutAccount(address string, balance int64) error {
	if balance < 0 {
		return fmt.Errorf("negative account balance %d for %s", balance, address)
	}
	err := t.exec(
		`INSERT INTO accounts (address, balance) VALUES (?, ?)
		 ON CONFLICT(address) DO UPDATE SET balance = excluded.balance`,
		address, balance,
	)
	if err != nil {
		return fmt.Errorf("failed to put account: %w", err)
	}
	return nil
}

// GetReceipt retrieves a transaction receipt.
func (t *sqlTx) GetReceipt(txID string) (*models.Receipt, error) {
	r := &models.Receipt{}
	var status string
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT tx_id, op, caller, group_id, status, result_id, error_code, error_message, height, submitted_at, confirmed_at
		 FROM receipts WHERE tx_id = ?`,
		txID,
	).Scan(&r.TxID, &r.Op, &r.Caller, &r.GroupID, &status, &r.ResultID, &r.ErrorCode, &r.ErrorMessage,
		&r.Height, &r.SubmittedAt, &r.ConfirmedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	r.Status = models.TxStatus(status)
	return r, nil
}

// ListReceipts returns receipts in a status, oldest submission first.
func (t *sqlTx) ListReceipts(status models.TxStatus) ([]*models.Receipt, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT tx_id, op, caller, group_id, status, result_id, error_code, error_message, height, submitted_at, confirmed_at
		 FROM receipts WHERE status = ? ORDER BY submitted_at, tx_id`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		r := &models.Receipt{}
		var s string
		if err := rows.Scan(&r.TxID, &r.Op, &r.Caller, &r.GroupID, &s, &r.ResultID, &r.ErrorCode, &r.ErrorMessage,
			&r.Height, &r.SubmittedAt, &r.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		r.Status = models.TxStatus(s)
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	return receipts, nil
}

// PutReceipt inserts or replaces a transaction receipt.
func (t *sqlTx) PutReceipt(r *models.Receipt) error {
	err := t.exec(
		`INSERT INTO receipts (tx_id, op, caller, group_id, status, result_id, error_code, error_message, height, submitted_at, confirmed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(tx_id) DO UPDATE SET
		     group_id = excluded.group_id,
		     status = excluded.status,
		     result_id = excluded.result_id,
		     error_code = excluded.error_code,
		     error_message = excluded.error_message,
		     height = excluded.height,
		     confirmed_at = excluded.confirmed_at`,
		r.TxID, r.Op, r.Caller, r.GroupID, string(r.Status), r.ResultID, r.ErrorCode, r.ErrorMessage,
		r.Height, r.SubmittedAt, r.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put receipt: %w", err)
	}
	return nil
}
