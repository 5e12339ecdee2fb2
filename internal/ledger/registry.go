package ledger

import (
	"fmt"

	"github.com/mmynk/kindnest/internal/models"
)

// apply allocates the next group ID and writes the group together with the
// creator's member row, so a group without its creator is never observable.
func (o CreateGroup) apply(a *applier) (uint64, error) {
	count, err := a.tx.GroupCount()
	if err != nil {
		return 0, err
	}

	group := &models.Group{
		ID:          count + 1,
		Name:        o.GroupName,
		Creator:     a.caller,
		CreatedAt:   a.height,
		MemberCount: 1,
	}
	if err := a.tx.PutGroup(group); err != nil {
		return 0, err
	}

	creator := &models.Member{
		GroupID:  group.ID,
		Address:  a.caller,
		Nickname: o.Nickname,
		Index:    0,
		Active:   true,
	}
	if err := a.tx.PutMember(creator); err != nil {
		return 0, err
	}
	return group.ID, nil
}

func (o PauseGroup) apply(a *applier) (uint64, error) {
	return 0, setPaused(a, o.GroupID, true)
}

func (o UnpauseGroup) apply(a *applier) (uint64, error) {
	return 0, setPaused(a, o.GroupID, false)
}

// setPaused toggles the pause flag. Setting the flag to its current value
// is a successful no-op.
func setPaused(a *applier, groupID uint64, paused bool) error {
	group, err := a.tx.GetGroup(groupID)
	if err != nil {
		return err
	}
	if group.Creator != a.caller {
		return fmt.Errorf("%w: only the creator can pause or unpause group %d", ErrUnauthorized, groupID)
	}
	if group.Paused == paused {
		return nil
	}
	group.Paused = paused
	return a.tx.PutGroup(group)
}
