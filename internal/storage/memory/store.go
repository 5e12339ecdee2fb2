// Package memory provides an in-process implementation of storage.Store.
// It is the reference implementation used by tests and single-node dev runs.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type memberKey struct {
	groupID uint64
	address string
}

type balanceKey struct {
	groupID  uint64
	debtor   string
	creditor string
}

// state is one layer of ledger data. The committed state and each write
// transaction's pending writes use the same shape.
type state struct {
	height      *uint64
	groups      map[uint64]models.Group
	members     map[memberKey]models.Member
	memberOrder map[uint64][]string
	userGroups  map[string][]uint64
	balances    map[balanceKey]int64
	debts       map[memberKey]map[string]struct{}
	expenses    map[uint64][]models.Expense
	settlements map[uint64][]models.Settlement
	accounts    map[string]int64
	receipts    map[string]models.Receipt
}

func newState() *state {
	return &state{
		groups:      make(map[uint64]models.Group),
		members:     make(map[memberKey]models.Member),
		memberOrder: make(map[uint64][]string),
		userGroups:  make(map[string][]uint64),
		balances:    make(map[balanceKey]int64),
		debts:       make(map[memberKey]map[string]struct{}),
		expenses:    make(map[uint64][]models.Expense),
		settlements: make(map[uint64][]models.Settlement),
		accounts:    make(map[string]int64),
		receipts:    make(map[string]models.Receipt),
	}
}

// Store keeps all state in memory behind a RWMutex. Update holds the write
// lock for the whole transaction so writers are totally ordered, and Views
// wait for it: readers never overlap a write here.
type Store struct {
	mu        sync.RWMutex
	committed *state
	closed    bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{committed: newState()}
}

// View runs fn against committed state. It blocks while an Update is open.
func (s *Store) View(ctx context.Context, fn func(tx storage.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("store is closed")
	}
	return fn(&memTx{base: s.committed, pending: newState()})
}

// Update runs fn and commits its writes only if fn returns nil.
func (s *Store) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("store is closed")
	}

	tx := &memTx{base: s.committed, pending: newState()}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// memTx reads through its pending writes to the committed base.
type memTx struct {
	base    *state
	pending *state
}

func (t *memTx) commit() {
	b, p := t.base, t.pending
	if p.height != nil {
		h := *p.height
		b.height = &h
	}
	for k, v := range p.groups {
		b.groups[k] = v
	}
	for k, v := range p.members {
		b.members[k] = v
	}
	for k, v := range p.memberOrder {
		b.memberOrder[k] = append(b.memberOrder[k], v...)
	}
	for k, v := range p.userGroups {
		b.userGroups[k] = append(b.userGroups[k], v...)
		slices.Sort(b.userGroups[k])
	}
	for k, v := range p.balances {
		dk := memberKey{k.groupID, k.debtor}
		if v == 0 {
			delete(b.balances, k)
			delete(b.debts[dk], k.creditor)
			continue
		}
		b.balances[k] = v
		if b.debts[dk] == nil {
			b.debts[dk] = make(map[string]struct{})
		}
		b.debts[dk][k.creditor] = struct{}{}
	}
	for k, v := range p.expenses {
		b.expenses[k] = append(b.expenses[k], v...)
	}
	for k, v := range p.settlements {
		b.settlements[k] = append(b.settlements[k], v...)
	}
	for k, v := range p.accounts {
		b.accounts[k] = v
	}
	for k, v := range p.receipts {
		b.receipts[k] = v
	}
}

func (t *memTx) Height() (uint64, error) {
	if t.pending.height != nil {
		return *t.pending.height, nil
	}
	if t.base.height != nil {
		return *t.base.height, nil
	}
	return 0, nil
}

func (t *memTx) SetHeight(height uint64) error {
	t.pending.height = &height
	return nil
}

func (t *memTx) GroupCount() (uint64, error) {
	var count uint64
	for id := range t.base.groups {
		count = max(count, id)
	}
	for id := range t.pending.groups {
		count = max(count, id)
	}
	return count, nil
}

func (t *memTx) GetGroup(groupID uint64) (*models.Group, error) {
	if g, ok := t.pending.groups[groupID]; ok {
		return &g, nil
	}
	if g, ok := t.base.groups[groupID]; ok {
		return &g, nil
	}
	return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
}

func (t *memTx) PutGroup(group *models.Group) error {
	t.pending.groups[group.ID] = *group
	return nil
}

func (t *memTx) GetMember(groupID uint64, address string) (*models.Member, error) {
	k := memberKey{groupID, address}
	if m, ok := t.pending.members[k]; ok {
		return &m, nil
	}
	if m, ok := t.base.members[k]; ok {
		return &m, nil
	}
	return nil, fmt.Errorf("member %s in group %d: %w", address, groupID, storage.ErrNotFound)
}

func (t *memTx) order(groupID uint64) []string {
	base := t.base.memberOrder[groupID]
	pending := t.pending.memberOrder[groupID]
	out := make([]string, 0, len(base)+len(pending))
	out = append(out, base...)
	return append(out, pending...)
}

func (t *memTx) GetMemberAt(groupID uint64, index uint64) (*models.Member, error) {
	order := t.order(groupID)
	if index >= uint64(len(order)) {
		return nil, fmt.Errorf("member #%d in group %d: %w", index, groupID, storage.ErrNotFound)
	}
	return t.GetMember(groupID, order[index])
}

func (t *memTx) ListMembers(groupID uint64) ([]*models.Member, error) {
	order := t.order(groupID)
	members := make([]*models.Member, 0, len(order))
	for _, addr := range order {
		m, err := t.GetMember(groupID, addr)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (t *memTx) PutMember(member *models.Member) error {
	k := memberKey{member.GroupID, member.Address}
	if _, err := t.GetMember(member.GroupID, member.Address); err != nil {
		t.pending.memberOrder[member.GroupID] = append(t.pending.memberOrder[member.GroupID], member.Address)
		t.pending.userGroups[member.Address] = append(t.pending.userGroups[member.Address], member.GroupID)
	}
	t.pending.members[k] = *member
	return nil
}

func (t *memTx) ListGroupsByMember(address string) ([]uint64, error) {
	ids := slices.Clone(t.base.userGroups[address])
	ids = append(ids, t.pending.userGroups[address]...)
	slices.Sort(ids)
	return ids, nil
}

func (t *memTx) GetBalance(groupID uint64, debtor, creditor string) (int64, error) {
	k := balanceKey{groupID, debtor, creditor}
	if v, ok := t.pending.balances[k]; ok {
		return v, nil
	}
	return t.base.balances[k], nil
}

func (t *memTx) PutBalance(groupID uint64, debtor, creditor string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative balance %d for %s -> %s", amount, debtor, creditor)
	}
	t.pending.balances[balanceKey{groupID, debtor, creditor}] = amount
	return nil
}

func (t *memTx) ListDebts(groupID uint64, debtor string) ([]models.Balance, error) {
	creditors := make(map[string]struct{})
	for c := range t.base.debts[memberKey{groupID, debtor}] {
		creditors[c] = struct{}{}
	}
	for k := range t.pending.balances {
		if k.groupID == groupID && k.debtor == debtor {
			creditors[k.creditor] = struct{}{}
		}
	}

	var debts []models.Balance
	for c := range creditors {
		amount, _ := t.GetBalance(groupID, debtor, c)
		if amount > 0 {
			debts = append(debts, models.Balance{GroupID: groupID, Debtor: debtor, Creditor: c, Amount: amount})
		}
	}
	slices.SortFunc(debts, func(a, b models.Balance) int {
		if a.Creditor < b.Creditor {
			return -1
		}
		if a.Creditor > b.Creditor {
			return 1
		}
		return 0
	})
	return debts, nil
}

// ListBalances reads every balance key of the group, not just those of
// current members, ordered by debtor then creditor.
func (t *memTx) ListBalances(groupID uint64) ([]models.Balance, error) {
	keys := make(map[balanceKey]struct{})
	for k := range t.base.balances {
		if k.groupID == groupID {
			keys[k] = struct{}{}
		}
	}
	for k := range t.pending.balances {
		if k.groupID == groupID {
			keys[k] = struct{}{}
		}
	}

	var all []models.Balance
	for k := range keys {
		amount, _ := t.GetBalance(groupID, k.debtor, k.creditor)
		if amount > 0 {
			all = append(all, models.Balance{GroupID: groupID, Debtor: k.debtor, Creditor: k.creditor, Amount: amount})
		}
	}
	slices.SortFunc(all, func(a, b models.Balance) int {
		return cmp.Or(cmp.Compare(a.Debtor, b.Debtor), cmp.Compare(a.Creditor, b.Creditor))
	})
	return all, nil
}

func copyExpense(e models.Expense) *models.Expense {
	e.Participants = slices.Clone(e.Participants)
	e.Shares = slices.Clone(e.Shares)
	return &e
}

func (t *memTx) GetExpense(groupID, expenseID uint64) (*models.Expense, error) {
	for _, list := range [][]models.Expense{t.base.expenses[groupID], t.pending.expenses[groupID]} {
		for _, e := range list {
			if e.ID == expenseID {
				return copyExpense(e), nil
			}
		}
	}
	return nil, fmt.Errorf("expense %d in group %d: %w", expenseID, groupID, storage.ErrNotFound)
}

func (t *memTx) ListExpenses(groupID uint64) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, list := range [][]models.Expense{t.base.expenses[groupID], t.pending.expenses[groupID]} {
		for _, e := range list {
			out = append(out, copyExpense(e))
		}
	}
	return out, nil
}

func (t *memTx) InsertExpense(expense *models.Expense) error {
	if _, err := t.GetExpense(expense.GroupID, expense.ID); err == nil {
		return fmt.Errorf("expense %d in group %d already exists", expense.ID, expense.GroupID)
	}
	t.pending.expenses[expense.GroupID] = append(t.pending.expenses[expense.GroupID], *copyExpense(*expense))
	return nil
}

func (t *memTx) GetSettlement(groupID, settlementID uint64) (*models.Settlement, error) {
	for _, list := range [][]models.Settlement{t.base.settlements[groupID], t.pending.settlements[groupID]} {
		for _, s := range list {
			if s.ID == settlementID {
				return &s, nil
			}
		}
	}
	return nil, fmt.Errorf("settlement %d in group %d: %w", settlementID, groupID, storage.ErrNotFound)
}

func (t *memTx) ListSettlements(groupID uint64) ([]*models.Settlement, error) {
	var out []*models.Settlement
	for _, list := range [][]models.Settlement{t.base.settlements[groupID], t.pending.settlements[groupID]} {
		for _, s := range list {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (t *memTx) InsertSettlement(settlement *models.Settlement) error {
	if _, err := t.GetSettlement(settlement.GroupID, settlement.ID); err == nil {
		return fmt.Errorf("settlement %d in group %d already exists", settlement.ID, settlement.GroupID)
	}
	t.pending.settlements[settlement.GroupID] = append(t.pending.settlements[settlement.GroupID], *settlement)
	return nil
}

func (t *memTx) GetAccount(address string) (int64, error) {
	if v, ok := t.pending.accounts[address]; ok {
		return v, nil
	}
	return t.base.accounts[address], nil
}

func (t *memTx) PutAccount(address string, balance int64) error {
	if balance < 0 {
		return fmt.Errorf("negative account balance %d for %s", balance, address)
	}
	t.pending.accounts[address] = balance
	return nil
}

func (t *memTx) GetReceipt(txID string) (*models.Receipt, error) {
	if r, ok := t.pending.receipts[txID]; ok {
		return &r, nil
	}
	if r, ok := t.base.receipts[txID]; ok {
		return &r, nil
	}
	return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
}

func (t *memTx) ListReceipts(status models.TxStatus) ([]*models.Receipt, error) {
	var out []*models.Receipt
	for id, r := range t.base.receipts {
		if _, shadowed := t.pending.receipts[id]; !shadowed && r.Status == status {
			out = append(out, &r)
		}
	}
	for _, r := range t.pending.receipts {
		if r.Status == status {
			out = append(out, &r)
		}
	}
	slices.SortFunc(out, func(a, b *models.Receipt) int {
		if a.SubmittedAt != b.SubmittedAt {
			return cmp.Compare(a.SubmittedAt, b.SubmittedAt)
		}
		return cmp.Compare(a.TxID, b.TxID)
	})
	return out, nil
}

func (t *memTx) PutReceipt(receipt *models.Receipt) error {
	t.pending.receipts[receipt.TxID] = *receipt
	return nil
}
