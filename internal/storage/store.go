// Package storage provides abstractions for the ledger's committed state.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/kindnest/internal/models"
)

// ErrNotFound is returned by getters when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store is the transactional substrate the ledger executes against.
// This abstraction allows swapping storage backends (memory, SQLite, etc.)
// without changing the state machine.
type Store interface {
	// View runs fn against a consistent snapshot of committed state.
	// Views may run concurrently with each other. Whether a View can overlap
	// an in-flight Update is up to the backend: sqlite serves reads from the
	// last committed snapshot while a write is open, the memory store blocks
	// them until the Update returns.
	View(ctx context.Context, fn func(tx ReadTx) error) error

	// Update runs fn in a write transaction. Updates are serialized; if fn
	// returns an error nothing it wrote becomes visible.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// ReadTx exposes committed state. Getters return copies; mutating them has
// no effect until written back through a Tx.
type ReadTx interface {
	// Height returns the number of operations applied so far.
	Height() (uint64, error)

	// GroupCount returns the number of groups ever created, which is also
	// the highest allocated group ID.
	GroupCount() (uint64, error)

	// GetGroup returns ErrNotFound for unknown IDs.
	GetGroup(groupID uint64) (*models.Group, error)

	// GetMember returns ErrNotFound when address has no row in the group.
	GetMember(groupID uint64, address string) (*models.Member, error)

	// GetMemberAt returns the member that joined at the given index.
	GetMemberAt(groupID uint64, index uint64) (*models.Member, error)

	// ListMembers returns every member row, active or not, in join order.
	ListMembers(groupID uint64) ([]*models.Member, error)

	// ListGroupsByMember returns the IDs of groups where address has a
	// member row, in ascending order.
	ListGroupsByMember(address string) ([]uint64, error)

	// GetBalance returns what debtor owes creditor, 0 when nothing.
	GetBalance(groupID uint64, debtor, creditor string) (int64, error)

	// ListDebts returns the nonzero balances owed by debtor.
	ListDebts(groupID uint64, debtor string) ([]models.Balance, error)

	// ListBalances returns every nonzero balance in the group.
	ListBalances(groupID uint64) ([]models.Balance, error)

	GetExpense(groupID, expenseID uint64) (*models.Expense, error)

	// ListExpenses returns expenses oldest first.
	ListExpenses(groupID uint64) ([]*models.Expense, error)

	GetSettlement(groupID, settlementID uint64) (*models.Settlement, error)

	// ListSettlements returns settlements oldest first.
	ListSettlements(groupID uint64) ([]*models.Settlement, error)

	// GetAccount returns the spendable balance of address, 0 when unknown.
	GetAccount(address string) (int64, error)

	GetReceipt(txID string) (*models.Receipt, error)

	// ListReceipts returns receipts in the given status, oldest submission first.
	ListReceipts(status models.TxStatus) ([]*models.Receipt, error)
}

// Tx is a write transaction.
type Tx interface {
	ReadTx

	SetHeight(height uint64) error

	// PutGroup inserts or replaces a group.
	PutGroup(group *models.Group) error

	// PutMember inserts or replaces a member row.
	PutMember(member *models.Member) error

	// PutBalance sets what debtor owes creditor. An amount of 0 clears it.
	PutBalance(groupID uint64, debtor, creditor string, amount int64) error

	// InsertExpense appends an expense. Expenses are never replaced.
	InsertExpense(expense *models.Expense) error

	// InsertSettlement appends a settlement. Settlements are never replaced.
	InsertSettlement(settlement *models.Settlement) error

	PutAccount(address string, balance int64) error

	// PutReceipt inserts or replaces a receipt.
	PutReceipt(receipt *models.Receipt) error
}
