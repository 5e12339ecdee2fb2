package api

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/ledger"
)

// ErrorCodeHeader carries the ledger error code in error metadata.
const ErrorCodeHeader = "Kindnest-Error-Code"

// connectCode maps a ledger error code to the closest RPC status.
func connectCode(code string) connect.Code {
	switch code {
	case ledger.CodeUnauthorized:
		return connect.CodePermissionDenied
	case ledger.CodeAuthenticationRequired:
		return connect.CodeUnauthenticated
	case ledger.CodeNotFound:
		return connect.CodeNotFound
	case ledger.CodeInvalidArgument:
		return connect.CodeInvalidArgument
	case ledger.CodeAlreadyMember:
		return connect.CodeAlreadyExists
	case ledger.CodeGroupPaused, ledger.CodeNoSuchDebt, ledger.CodeOverpaymentRejected, ledger.CodeOutstandingBalance:
		return connect.CodeFailedPrecondition
	case ledger.CodeInsufficientFunds, ledger.CodeLedgerRejected:
		return connect.CodeAborted
	case ledger.CodeStillPending:
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// NewError converts a ledger error into an RPC error that remembers its
// ledger code. Errors outside the taxonomy become CodeInternal.
func NewError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	if errors.Is(err, context.Canceled) {
		return connect.NewError(connect.CodeCanceled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	code := ledger.Code(err)
	connectErr = connect.NewError(connectCode(code), err)
	connectErr.Meta().Set(ErrorCodeHeader, code)
	return connectErr
}

// DecodeError rebuilds the ledger error carried by an RPC error, so callers
// can match it with errors.Is. Transport errors are returned unchanged.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}
	code := connectErr.Meta().Get(ErrorCodeHeader)
	if code == "" {
		return err
	}
	return ledger.FromCode(code, connectErr.Message())
}

// IsRetryable reports whether err is a transient transport failure worth
// retrying. Ledger rejections never are.
func IsRetryable(err error) bool {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return !ledger.IsDomain(err) && !errors.Is(err, context.Canceled)
	}
	if connectErr.Meta().Get(ErrorCodeHeader) != "" {
		return false
	}
	switch connectErr.Code() {
	case connect.CodeUnavailable, connect.CodeDeadlineExceeded, connect.CodeResourceExhausted:
		return true
	default:
		return false
	}
}
