package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/pkg/api"
)

// QueryService implements the Connect QueryService: read-only projections
// of the ledger plus transaction receipts. Queries never require a caller.
type QueryService struct {
	ledger    *ledger.Ledger
	submitter Submitter
}

// NewQueryService creates a QueryService reading l and the receipts of s.
func NewQueryService(l *ledger.Ledger, s Submitter) *QueryService {
	return &QueryService{ledger: l, submitter: s}
}

// queryError logs unexpected failures and converts err to an RPC error.
func queryError(query string, err error) error {
	if !ledger.IsDomain(err) {
		slog.Error(query+" failed", "error", err)
	}
	return api.NewError(err)
}

func (s *QueryService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	if req.Msg.TxID == "" {
		return nil, api.NewError(fmt.Errorf("%w: tx id required", ledger.ErrInvalidArgument))
	}
	receipt, err := s.submitter.Receipt(ctx, req.Msg.TxID)
	if err != nil {
		return nil, queryError("GetTransaction", err)
	}
	return connect.NewResponse(&api.GetTransactionResponse{Receipt: api.FromReceipt(receipt)}), nil
}

func (s *QueryService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, err := s.ledger.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("GetGroup", err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: api.FromGroup(group)}), nil
}

func (s *QueryService) GetTotalGroups(ctx context.Context, req *connect.Request[api.GetTotalGroupsRequest]) (*connect.Response[api.GetTotalGroupsResponse], error) {
	total, err := s.ledger.GetTotalGroups(ctx)
	if err != nil {
		return nil, queryError("GetTotalGroups", err)
	}
	return connect.NewResponse(&api.GetTotalGroupsResponse{Total: total}), nil
}

func (s *QueryService) GetGroupStats(ctx context.Context, req *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error) {
	stats, err := s.ledger.GetGroupStats(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("GetGroupStats", err)
	}
	return connect.NewResponse(&api.GetGroupStatsResponse{Stats: api.FromGroupStats(stats)}), nil
}

func (s *QueryService) GetMemberInfo(ctx context.Context, req *connect.Request[api.GetMemberInfoRequest]) (*connect.Response[api.MemberResponse], error) {
	member, err := s.ledger.GetMemberInfo(ctx, req.Msg.GroupID, req.Msg.Address)
	if err != nil {
		return nil, queryError("GetMemberInfo", err)
	}
	return connect.NewResponse(&api.MemberResponse{Member: api.FromMember(member)}), nil
}

func (s *QueryService) GetMemberAtIndex(ctx context.Context, req *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.MemberResponse], error) {
	member, err := s.ledger.GetMemberAt(ctx, req.Msg.GroupID, req.Msg.Index)
	if err != nil {
		return nil, queryError("GetMemberAtIndex", err)
	}
	return connect.NewResponse(&api.MemberResponse{Member: api.FromMember(member)}), nil
}

func (s *QueryService) GetNetBalance(ctx context.Context, req *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.AmountResponse], error) {
	net, err := s.ledger.GetNetBalance(ctx, req.Msg.GroupID, req.Msg.Address)
	if err != nil {
		return nil, queryError("GetNetBalance", err)
	}
	return connect.NewResponse(&api.AmountResponse{Amount: net}), nil
}

func (s *QueryService) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	members, err := s.ledger.GetGroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("GetGroupMembers", err)
	}
	return connect.NewResponse(&api.GetGroupMembersResponse{Members: api.FromMembers(members)}), nil
}

func (s *QueryService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.AmountResponse], error) {
	amount, err := s.ledger.GetBalance(ctx, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, queryError("GetBalance", err)
	}
	return connect.NewResponse(&api.AmountResponse{Amount: amount}), nil
}

func (s *QueryService) GetUserCreditors(ctx context.Context, req *connect.Request[api.GetUserCreditorsRequest]) (*connect.Response[api.GetUserCreditorsResponse], error) {
	creditors, err := s.ledger.GetUserCreditors(ctx, req.Msg.GroupID, req.Msg.Address)
	if err != nil {
		return nil, queryError("GetUserCreditors", err)
	}
	return connect.NewResponse(&api.GetUserCreditorsResponse{Creditors: api.FromCreditors(creditors)}), nil
}

func (s *QueryService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	expense, err := s.ledger.GetExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID)
	if err != nil {
		return nil, queryError("GetExpense", err)
	}
	return connect.NewResponse(&api.ExpenseResponse{Expense: api.FromExpense(expense)}), nil
}

func (s *QueryService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	expenses, err := s.ledger.ListExpenses(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("ListExpenses", err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: api.FromExpenses(expenses)}), nil
}

func (s *QueryService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	settlement, err := s.ledger.GetSettlement(ctx, req.Msg.GroupID, req.Msg.SettlementID)
	if err != nil {
		return nil, queryError("GetSettlement", err)
	}
	return connect.NewResponse(&api.SettlementResponse{Settlement: api.FromSettlement(settlement)}), nil
}

func (s *QueryService) GetAllSettlements(ctx context.Context, req *connect.Request[api.GetAllSettlementsRequest]) (*connect.Response[api.GetAllSettlementsResponse], error) {
	settlements, err := s.ledger.GetAllSettlements(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("GetAllSettlements", err)
	}
	return connect.NewResponse(&api.GetAllSettlementsResponse{Settlements: api.FromSettlements(settlements)}), nil
}

func (s *QueryService) GetUserGroups(ctx context.Context, req *connect.Request[api.GetUserGroupsRequest]) (*connect.Response[api.GetUserGroupsResponse], error) {
	ids, err := s.ledger.GetUserGroups(ctx, req.Msg.Address)
	if err != nil {
		return nil, queryError("GetUserGroups", err)
	}
	return connect.NewResponse(&api.GetUserGroupsResponse{GroupIDs: ids}), nil
}

func (s *QueryService) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	edges, err := s.ledger.SuggestSettlements(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, queryError("SuggestSettlements", err)
	}
	return connect.NewResponse(&api.SuggestSettlementsResponse{Transfers: api.FromDebtEdges(edges)}), nil
}

func (s *QueryService) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.AmountResponse], error) {
	balance, err := s.ledger.GetAccount(ctx, req.Msg.Address)
	if err != nil {
		return nil, queryError("GetAccount", err)
	}
	return connect.NewResponse(&api.AmountResponse{Amount: balance}), nil
}

func (s *QueryService) GetHeight(ctx context.Context, req *connect.Request[api.GetHeightRequest]) (*connect.Response[api.GetHeightResponse], error) {
	height, err := s.ledger.Height(ctx)
	if err != nil {
		return nil, queryError("GetHeight", err)
	}
	return connect.NewResponse(&api.GetHeightResponse{Height: height}), nil
}
