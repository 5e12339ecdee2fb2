package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
)

// GroupCount returns the highest allocated group ID.
func (t *sqlTx) GroupCount() (uint64, error) {
	var count uint64
	err := t.tx.QueryRowContext(t.ctx, "SELECT COALESCE(MAX(id), 0) FROM groups").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

// GetGroup retrieves a group by ID.
func (t *sqlTx) GetGroup(groupID uint64) (*models.Group, error) {
	g := &models.Group{}
	var paused int
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, name, creator, created_at, paused, member_count, expense_count, settlement_count
		 FROM groups WHERE id = ?`,
		groupID,
	).Scan(&g.ID, &g.Name, &g.Creator, &g.CreatedAt, &paused, &g.MemberCount, &g.ExpenseCount, &g.SettlementCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	g.Paused = paused != 0
	return g, nil
}

// PutGroup inserts or replaces a group.
func (t *sqlTx) PutGroup(g *models.Group) error {
	err := t.exec(
		`INSERT INTO groups (id, name, creator, created_at, paused, member_count, expense_count, settlement_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     name = excluded.name,
		     paused = excluded.paused,
		     member_count = excluded.member_count,
		     expense_count = excluded.expense_count,
		     settlement_count = excluded.settlement_count`,
		g.ID, g.Name, g.Creator, g.CreatedAt, boolToInt(g.Paused), g.MemberCount, g.ExpenseCount, g.SettlementCount,
	)
	if err != nil {
		return fmt.Errorf("failed to put group: %w", err)
	}
	return nil
}

const memberColumns = "group_id, address, nickname, member_index, active, total_owed, total_owing"

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	m := &models.Member{}
	var active int
	if err := row.Scan(&m.GroupID, &m.Address, &m.Nickname, &m.Index, &active, &m.TotalOwed, &m.TotalOwing); err != nil {
		return nil, err
	}
	m.Active = active != 0
	return m, nil
}

// GetMember retrieves a member row.
func (t *sqlTx) GetMember(groupID uint64, address string) (*models.Member, error) {
	m, err := scanMember(t.tx.QueryRowContext(t.ctx,
		"SELECT "+memberColumns+" FROM group_members WHERE group_id = ? AND address = ?",
		groupID, address,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s in group %d: %w", address, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// GetMemberAt retrieves the member at a join index.
func (t *sqlTx) GetMemberAt(groupID uint64, index uint64) (*models.Member, error) {
	m, err := scanMember(t.tx.QueryRowContext(t.ctx,
		"SELECT "+memberColumns+" FROM group_members WHERE group_id = ? AND member_index = ?",
		groupID, index,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member #%d in group %d: %w", index, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member at index: %w", err)
	}
	return m, nil
}

// ListMembers retrieves all member rows of a group in join order.
func (t *sqlTx) ListMembers(groupID uint64) ([]*models.Member, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT "+memberColumns+" FROM group_members WHERE group_id = ? ORDER BY member_index",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// PutMember inserts or replaces a member row.
func (t *sqlTx) PutMember(m *models.Member) error {
	err := t.exec(
		`INSERT INTO group_members (`+memberColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(group_id, address) DO UPDATE SET
		     nickname = excluded.nickname,
		     active = excluded.active,
		     total_owed = excluded.total_owed,
		     total_owing = excluded.total_owing`,
		m.GroupID, m.Address, m.Nickname, m.Index, boolToInt(m.Active), m.TotalOwed, m.TotalOwing,
	)
	if err != nil {
		return fmt.Errorf("failed to put member: %w", err)
	}
	return nil
}

// ListGroupsByMember returns the groups where address has a member row.
func (t *sqlTx) ListGroupsByMember(address string) ([]uint64, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT group_id FROM group_members WHERE address = ? ORDER BY group_id",
		address,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return ids, nil
}
