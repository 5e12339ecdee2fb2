package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/kindnest/internal/storage"
)

// Sentinel errors for every way an operation can be rejected.
var (
	// ErrAuthenticationRequired means the caller has no verified identity.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrUnauthorized means the caller lacks the required role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means an unknown group, member, expense, settlement or transaction.
	ErrNotFound = storage.ErrNotFound
	// ErrGroupPaused means a mutating operation was attempted on a paused group.
	ErrGroupPaused = errors.New("group is paused")
	// ErrInvalidArgument covers malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyMember means the address is already an active member.
	ErrAlreadyMember = errors.New("already a member")
	// ErrNoSuchDebt means the caller owes nothing to the creditor.
	ErrNoSuchDebt = errors.New("no outstanding debt")
	// ErrOverpaymentRejected means the amount exceeds the outstanding debt.
	ErrOverpaymentRejected = errors.New("overpayment rejected")
	// ErrOutstandingBalance means the member still owes or is owed money.
	ErrOutstandingBalance = errors.New("member has outstanding balances")
	// ErrLedgerRejected means the value-transfer layer declined the operation.
	ErrLedgerRejected = errors.New("ledger rejected operation")
	// ErrStillPending means confirmation did not arrive within the wait window.
	ErrStillPending = errors.New("transaction still pending")
)

// Refinements that keep their family in errors.Is chains.
var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	ErrInvalidParticipant = fmt.Errorf("%w: invalid participant", ErrInvalidArgument)
	ErrInsufficientFunds  = fmt.Errorf("%w: insufficient funds", ErrLedgerRejected)
)

// Error codes carried in failure receipts and across the wire.
const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeNotFound               = "NOT_FOUND"
	CodeGroupPaused            = "GROUP_PAUSED"
	CodeInvalidArgument        = "INVALID_ARGUMENT"
	CodeAlreadyMember          = "ALREADY_MEMBER"
	CodeNoSuchDebt             = "NO_SUCH_DEBT"
	CodeOverpaymentRejected    = "OVERPAYMENT_REJECTED"
	CodeOutstandingBalance     = "OUTSTANDING_BALANCE"
	CodeInsufficientFunds      = "INSUFFICIENT_FUNDS"
	CodeLedgerRejected         = "LEDGER_REJECTED"
	CodeStillPending           = "STILL_PENDING"
	CodeInternal               = "INTERNAL"
)

// codes is checked in order; refinements come before their families.
var codes = []struct {
	err  error
	code string
}{
	{ErrAuthenticationRequired, CodeAuthenticationRequired},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrNotFound, CodeNotFound},
	{ErrGroupPaused, CodeGroupPaused},
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrAlreadyMember, CodeAlreadyMember},
	{ErrNoSuchDebt, CodeNoSuchDebt},
	{ErrOverpaymentRejected, CodeOverpaymentRejected},
	{ErrOutstandingBalance, CodeOutstandingBalance},
	{ErrInsufficientFunds, CodeInsufficientFunds},
	{ErrLedgerRejected, CodeLedgerRejected},
	{ErrStillPending, CodeStillPending},
}

// Code returns the stable code for err, or CodeInternal for errors outside
// the taxonomy.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// IsDomain reports whether err is part of the rejection taxonomy. Domain
// errors are deterministic and fail identically on retry.
func IsDomain(err error) bool {
	return err != nil && Code(err) != CodeInternal && !errors.Is(err, ErrStillPending)
}

// codedError keeps the original message while matching its sentinel.
type codedError struct {
	sentinel error
	message  string
}

func (e *codedError) Error() string { return e.message }
func (e *codedError) Unwrap() error { return e.sentinel }

// FromCode rebuilds a typed error from a code and message received over
// the wire or read from a receipt.
func FromCode(code, message string) error {
	for _, c := range codes {
		if c.code == code {
			if message == "" {
				return c.err
			}
			return &codedError{sentinel: c.err, message: message}
		}
	}
	if message == "" {
		message = "internal error"
	}
	return errors.New(message)
}
