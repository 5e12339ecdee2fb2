package ledger

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mmynk/kindnest/internal/auth"
)

// Op is one mutating operation. Ops are plain data: the same value can be
// validated before submission and applied later by the sequencer.
type Op interface {
	// Name is the stable operation name recorded in receipts.
	Name() string
	// Group is the target group, 0 when the op does not address one.
	Group() uint64
	// Validate performs the stateless checks that can fail before submission.
	Validate(p Policy) error

	// canonical returns a copy with every address in canonical form.
	canonical() Op
	apply(a *applier) (uint64, error)
}

// Canonical returns op with every address lowercased, the only form a
// signing identity can take. Two spellings of one address are the same member.
func Canonical(op Op) Op {
	return op.canonical()
}

// CanonicalAddress lowercases addr.
func CanonicalAddress(addr string) string {
	return strings.ToLower(addr)
}

// MaxAmount bounds any single amount so aggregate sums cannot overflow.
const MaxAmount = math.MaxInt64 / 1024

// CreateGroup opens a new circle with the caller as creator and first member.
type CreateGroup struct {
	GroupName string
	Nickname  string
}

// AddMember adds (or reactivates) a member.
type AddMember struct {
	GroupID  uint64
	Address  string
	Nickname string
}

// RemoveMember deactivates a member whose balances are all zero.
type RemoveMember struct {
	GroupID uint64
	Address string
}

// AddExpense records a shared expense paid by the caller.
type AddExpense struct {
	GroupID      uint64
	Description  string
	Amount       int64
	Participants []string
	ReceiptHash  string
}

// SettleDebt transfers Amount from the caller to Creditor and reduces the
// caller's debt to Creditor by the same amount.
type SettleDebt struct {
	GroupID  uint64
	Creditor string
	Amount   int64
}

// PauseGroup freezes new members and expenses.
type PauseGroup struct {
	GroupID uint64
}

// UnpauseGroup reopens a paused group.
type UnpauseGroup struct {
	GroupID uint64
}

// Deposit credits Amount to the caller's own account. Only enabled on
// faucet networks.
type Deposit struct {
	Amount int64
}

// Operation names.
const (
	OpCreateGroup  = "create-group"
	OpAddMember    = "add-member"
	OpRemoveMember = "remove-member"
	OpAddExpense   = "add-expense"
	OpSettleDebt   = "settle-debt"
	OpPauseGroup   = "pause-group"
	OpUnpauseGroup = "unpause-group"
	OpDeposit      = "deposit"
)

func (CreateGroup) Name() string  { return OpCreateGroup }
func (AddMember) Name() string    { return OpAddMember }
func (RemoveMember) Name() string { return OpRemoveMember }
func (AddExpense) Name() string   { return OpAddExpense }
func (SettleDebt) Name() string   { return OpSettleDebt }
func (PauseGroup) Name() string   { return OpPauseGroup }
func (UnpauseGroup) Name() string { return OpUnpauseGroup }
func (Deposit) Name() string      { return OpDeposit }

func (o CreateGroup) canonical() Op  { return o }
func (o PauseGroup) canonical() Op   { return o }
func (o UnpauseGroup) canonical() Op { return o }
func (o Deposit) canonical() Op      { return o }

func (o AddMember) canonical() Op {
	o.Address = CanonicalAddress(o.Address)
	return o
}

func (o RemoveMember) canonical() Op {
	o.Address = CanonicalAddress(o.Address)
	return o
}

func (o AddExpense) canonical() Op {
	o.Participants = slices.Clone(o.Participants)
	for i, p := range o.Participants {
		o.Participants[i] = CanonicalAddress(p)
	}
	return o
}

func (o SettleDebt) canonical() Op {
	o.Creditor = CanonicalAddress(o.Creditor)
	return o
}

func (CreateGroup) Group() uint64    { return 0 }
func (o AddMember) Group() uint64    { return o.GroupID }
func (o RemoveMember) Group() uint64 { return o.GroupID }
func (o AddExpense) Group() uint64   { return o.GroupID }
func (o SettleDebt) Group() uint64   { return o.GroupID }
func (o PauseGroup) Group() uint64   { return o.GroupID }
func (o UnpauseGroup) Group() uint64 { return o.GroupID }
func (Deposit) Group() uint64        { return 0 }

func (o CreateGroup) Validate(p Policy) error {
	if err := validateText("name", o.GroupName, p.MaxNameLength); err != nil {
		return err
	}
	return validateText("nickname", o.Nickname, p.MaxNameLength)
}

func (o AddMember) Validate(p Policy) error {
	if err := validateGroupID(o.GroupID); err != nil {
		return err
	}
	if err := validateAddress("address", o.Address); err != nil {
		return err
	}
	return validateText("nickname", o.Nickname, p.MaxNameLength)
}

func (o RemoveMember) Validate(Policy) error {
	if err := validateGroupID(o.GroupID); err != nil {
		return err
	}
	return validateAddress("address", o.Address)
}

func (o AddExpense) Validate(p Policy) error {
	if err := validateGroupID(o.GroupID); err != nil {
		return err
	}
	if err := validateText("description", o.Description, p.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateAmount(o.Amount); err != nil {
		return err
	}
	if len(o.Participants) == 0 {
		return fmt.Errorf("%w: participants must not be empty", ErrInvalidParticipant)
	}
	if p.MaxParticipants > 0 && len(o.Participants) > p.MaxParticipants {
		return fmt.Errorf("%w: at most %d participants", ErrInvalidParticipant, p.MaxParticipants)
	}
	seen := make(map[string]bool, len(o.Participants))
	for _, addr := range o.Participants {
		if err := validateAddress("participant", addr); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParticipant, err)
		}
		if seen[addr] {
			return fmt.Errorf("%w: duplicate participant %s", ErrInvalidParticipant, addr)
		}
		seen[addr] = true
	}
	return validateReceiptHash(o.ReceiptHash)
}

func (o SettleDebt) Validate(Policy) error {
	if err := validateGroupID(o.GroupID); err != nil {
		return err
	}
	if err := validateAddress("creditor", o.Creditor); err != nil {
		return err
	}
	return validateAmount(o.Amount)
}

func (o PauseGroup) Validate(Policy) error   { return validateGroupID(o.GroupID) }
func (o UnpauseGroup) Validate(Policy) error { return validateGroupID(o.GroupID) }
func (o Deposit) Validate(Policy) error      { return validateAmount(o.Amount) }

func validateGroupID(id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: group id required", ErrInvalidArgument)
	}
	return nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount exceeds %d", ErrInvalidArgument, int64(MaxAmount))
	}
	return nil
}

// validateText accepts non-empty printable ASCII up to limit bytes.
func validateText(field, s string, limit int) error {
	if s == "" {
		return fmt.Errorf("%w: %s required", ErrInvalidArgument, field)
	}
	if limit > 0 && len(s) > limit {
		return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidArgument, field, limit)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return fmt.Errorf("%w: %s must be printable ASCII", ErrInvalidArgument, field)
		}
	}
	return nil
}

// validateAddress accepts only canonical identities: 0x followed by 40
// lowercase hex digits, as derived from a signing key.
func validateAddress(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: %s required", ErrInvalidArgument, field)
	}
	if !auth.ValidAddress(addr) || addr != CanonicalAddress(addr) {
		return fmt.Errorf("%w: %s %q is not a canonical address", ErrInvalidArgument, field, addr)
	}
	return nil
}

func validateReceiptHash(h string) error {
	if len(h) > 64 {
		return fmt.Errorf("%w: receipt hash longer than 64 characters", ErrInvalidArgument)
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return fmt.Errorf("%w: receipt hash must be hex", ErrInvalidArgument)
		}
	}
	return nil
}
