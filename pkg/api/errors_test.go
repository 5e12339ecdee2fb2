package api

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/ledger"
)

func TestNewError_Codes(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{ledger.ErrUnauthorized, connect.CodePermissionDenied},
		{ledger.ErrAuthenticationRequired, connect.CodeUnauthenticated},
		{ledger.ErrNotFound, connect.CodeNotFound},
		{ledger.ErrInvalidAmount, connect.CodeInvalidArgument},
		{ledger.ErrAlreadyMember, connect.CodeAlreadyExists},
		{ledger.ErrGroupPaused, connect.CodeFailedPrecondition},
		{ledger.ErrNoSuchDebt, connect.CodeFailedPrecondition},
		{ledger.ErrOverpaymentRejected, connect.CodeFailedPrecondition},
		{ledger.ErrOutstandingBalance, connect.CodeFailedPrecondition},
		{ledger.ErrInsufficientFunds, connect.CodeAborted},
		{ledger.ErrLedgerRejected, connect.CodeAborted},
		{errors.New("disk on fire"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := NewError(fmt.Errorf("group 1: %w", tt.err))
			if got.Code() != tt.want {
				t.Errorf("code: expected %v, got %v", tt.want, got.Code())
			}
			if got.Meta().Get(ErrorCodeHeader) != ledger.Code(tt.err) {
				t.Errorf("header: expected %q, got %q", ledger.Code(tt.err), got.Meta().Get(ErrorCodeHeader))
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	wire := NewError(fmt.Errorf("%w: amount 9 exceeds outstanding 5", ledger.ErrOverpaymentRejected))

	err := DecodeError(wire)
	if !errors.Is(err, ledger.ErrOverpaymentRejected) {
		t.Fatalf("expected ErrOverpaymentRejected, got %v", err)
	}
	if err.Error() != wire.Message() {
		t.Errorf("message: expected %q, got %q", wire.Message(), err.Error())
	}

	transport := connect.NewError(connect.CodeUnavailable, errors.New("connection refused"))
	if DecodeError(transport) != error(transport) {
		t.Error("transport errors should pass through unchanged")
	}
	if DecodeError(nil) != nil {
		t.Error("nil should decode to nil")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable", connect.NewError(connect.CodeUnavailable, errors.New("down")), true},
		{"deadline", connect.NewError(connect.CodeDeadlineExceeded, errors.New("slow")), true},
		{"internal", connect.NewError(connect.CodeInternal, errors.New("bug")), false},
		{"ledger rejection", NewError(ledger.ErrGroupPaused), false},
		{"decoded rejection", DecodeError(NewError(ledger.ErrNoSuchDebt)), false},
		{"canceled", context.Canceled, false},
		{"network", errors.New("dial tcp: connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCodec(t *testing.T) {
	var c Codec
	if c.Name() != "json" {
		t.Errorf("name: expected json, got %s", c.Name())
	}

	data, err := c.Marshal(&AddExpenseRequest{GroupID: 1, Description: "Dinner", Amount: 100, Participants: []string{"X"}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"groupId":1,"description":"Dinner","amount":100,"participants":["X"]}`
	if string(data) != want {
		t.Errorf("json: expected %s, got %s", want, data)
	}

	var empty GetHeightRequest
	if err := c.Unmarshal(nil, &empty); err != nil {
		t.Errorf("empty body should decode: %v", err)
	}
	if err := c.Unmarshal([]byte("{"), &empty); err == nil {
		t.Error("expected error for truncated json")
	}
}
