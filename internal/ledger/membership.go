package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
)

// activeMember loads address's row and requires it to be active.
func activeMember(a *applier, groupID uint64, address string) (*models.Member, error) {
	m, err := a.tx.GetMember(groupID, address)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, nil
	}
	return m, nil
}

// canInvite reports whether the caller may add members to group.
func canInvite(a *applier, group *models.Group) (bool, error) {
	if group.Creator == a.caller {
		return true, nil
	}
	if !a.policy.MemberInvites {
		return false, nil
	}
	m, err := activeMember(a, group.ID, a.caller)
	return m != nil, err
}

func (o AddMember) apply(a *applier) (uint64, error) {
	group, err := a.tx.GetGroup(o.GroupID)
	if err != nil {
		return 0, err
	}

	ok, err := canInvite(a, group)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: caller cannot add members to group %d", ErrUnauthorized, o.GroupID)
	}
	if group.Paused {
		return 0, ErrGroupPaused
	}

	existing, err := a.tx.GetMember(o.GroupID, o.Address)
	switch {
	case errors.Is(err, ErrNotFound):
		// New row at the next join index
		member := &models.Member{
			GroupID:  o.GroupID,
			Address:  o.Address,
			Nickname: o.Nickname,
			Index:    group.MemberCount,
			Active:   true,
		}
		if err := a.tx.PutMember(member); err != nil {
			return 0, err
		}
		group.MemberCount++
		return 0, a.tx.PutGroup(group)
	case err != nil:
		return 0, err
	case existing.Active:
		return 0, fmt.Errorf("%w: %s in group %d", ErrAlreadyMember, o.Address, o.GroupID)
	default:
		// Reactivate the historical row; its join index is kept
		existing.Active = true
		existing.Nickname = o.Nickname
		return 0, a.tx.PutMember(existing)
	}
}

func (o RemoveMember) apply(a *applier) (uint64, error) {
	group, err := a.tx.GetGroup(o.GroupID)
	if err != nil {
		return 0, err
	}
	if group.Creator != a.caller {
		return 0, fmt.Errorf("%w: only the creator can remove members from group %d", ErrUnauthorized, o.GroupID)
	}
	if o.Address == group.Creator {
		return 0, fmt.Errorf("%w: the creator cannot be removed", ErrInvalidArgument)
	}

	member, err := activeMember(a, o.GroupID, o.Address)
	if err != nil {
		return 0, err
	}
	if member == nil {
		return 0, fmt.Errorf("member %s in group %d: %w", o.Address, o.GroupID, ErrNotFound)
	}
	if member.TotalOwed != 0 || member.TotalOwing != 0 {
		return 0, fmt.Errorf("%w: %s is owed %d and owes %d", ErrOutstandingBalance,
			o.Address, member.TotalOwed, member.TotalOwing)
	}

	member.Active = false
	return 0, a.tx.PutMember(member)
}
