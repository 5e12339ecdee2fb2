package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/middleware"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/sequencer"
	"github.com/mmynk/kindnest/pkg/api"
)

// Submitter queues operations and reports their receipts.
// *sequencer.Sequencer satisfies it.
type Submitter interface {
	Submit(ctx context.Context, caller string, op ledger.Op) (string, error)
	Receipt(ctx context.Context, txID string) (*models.Receipt, error)
}

// LedgerService implements the Connect LedgerService. Every mutation is
// queued and answered with a transaction ID; outcomes are read back
// through QueryService.GetTransaction.
type LedgerService struct {
	submitter Submitter
}

// NewLedgerService creates a LedgerService that submits to s.
func NewLedgerService(s Submitter) *LedgerService {
	return &LedgerService{submitter: s}
}

// submit queues op on behalf of the authenticated caller.
func (s *LedgerService) submit(ctx context.Context, op ledger.Op) (*connect.Response[api.SubmitResponse], error) {
	caller := middleware.GetAddress(ctx)
	slog.Info(op.Name()+" request received", "caller", caller, "group_id", op.Group())

	txID, err := s.submitter.Submit(ctx, caller, op)
	if err != nil {
		if errors.Is(err, sequencer.ErrStopped) {
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		if ledger.IsDomain(err) {
			slog.Warn(op.Name()+" rejected", "caller", caller, "error", err)
		} else {
			slog.Error(op.Name()+" failed", "caller", caller, "error", err)
		}
		return nil, api.NewError(err)
	}

	return connect.NewResponse(&api.SubmitResponse{TxID: txID}), nil
}

func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.CreateGroup{
		GroupName: req.Msg.Name,
		Nickname:  req.Msg.Nickname,
	})
}

func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.AddMember{
		GroupID:  req.Msg.GroupID,
		Address:  req.Msg.Address,
		Nickname: req.Msg.Nickname,
	})
}

func (s *LedgerService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.RemoveMember{
		GroupID: req.Msg.GroupID,
		Address: req.Msg.Address,
	})
}

func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.AddExpense{
		GroupID:      req.Msg.GroupID,
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		Participants: req.Msg.Participants,
		ReceiptHash:  req.Msg.ReceiptHash,
	})
}

func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.SettleDebt{
		GroupID:  req.Msg.GroupID,
		Creditor: req.Msg.Creditor,
		Amount:   req.Msg.Amount,
	})
}

func (s *LedgerService) PauseGroup(ctx context.Context, req *connect.Request[api.PauseGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.PauseGroup{GroupID: req.Msg.GroupID})
}

func (s *LedgerService) UnpauseGroup(ctx context.Context, req *connect.Request[api.UnpauseGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.UnpauseGroup{GroupID: req.Msg.GroupID})
}

func (s *LedgerService) Deposit(ctx context.Context, req *connect.Request[api.DepositRequest]) (*connect.Response[api.SubmitResponse], error) {
	return s.submit(ctx, ledger.Deposit{Amount: req.Msg.Amount})
}
