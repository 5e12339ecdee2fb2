package ledger

// Policy holds the tunable rules of the state machine.
type Policy struct {
	// MaxNameLength bounds group names and nicknames.
	MaxNameLength int
	// MaxDescriptionLength bounds expense descriptions.
	MaxDescriptionLength int
	// MaxParticipants bounds the participant list of one expense.
	MaxParticipants int
	// MemberInvites lets any active member add members. When false only
	// the creator may.
	MemberInvites bool
	// SettleWhilePaused keeps settleDebt open on paused groups.
	SettleWhilePaused bool
	// Faucet enables deposit, which mints value into the caller's account.
	Faucet bool
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		MaxNameLength:        50,
		MaxDescriptionLength: 100,
		MaxParticipants:      50,
		MemberInvites:        false,
		SettleWhilePaused:    true,
		Faucet:               false,
	}
}
