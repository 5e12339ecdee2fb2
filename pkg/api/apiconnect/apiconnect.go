// Package apiconnect binds the kindnest services to Connect handlers and
// clients. Every handler and client speaks the JSON codec from package api.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/pkg/api"
)

const (
	AuthServiceName   = "kindnest.v1.AuthService"
	LedgerServiceName = "kindnest.v1.LedgerService"
	QueryServiceName  = "kindnest.v1.QueryService"
)

// Procedure names.
const (
	AuthServiceChallengeProcedure = "/kindnest.v1.AuthService/Challenge"
	AuthServiceLoginProcedure     = "/kindnest.v1.AuthService/Login"

	LedgerServiceCreateGroupProcedure  = "/kindnest.v1.LedgerService/CreateGroup"
	LedgerServiceAddMemberProcedure    = "/kindnest.v1.LedgerService/AddMember"
	LedgerServiceRemoveMemberProcedure = "/kindnest.v1.LedgerService/RemoveMember"
	LedgerServiceAddExpenseProcedure   = "/kindnest.v1.LedgerService/AddExpense"
	LedgerServiceSettleDebtProcedure   = "/kindnest.v1.LedgerService/SettleDebt"
	LedgerServicePauseGroupProcedure   = "/kindnest.v1.LedgerService/PauseGroup"
	LedgerServiceUnpauseGroupProcedure = "/kindnest.v1.LedgerService/UnpauseGroup"
	LedgerServiceDepositProcedure      = "/kindnest.v1.LedgerService/Deposit"

	QueryServiceGetTransactionProcedure     = "/kindnest.v1.QueryService/GetTransaction"
	QueryServiceGetGroupProcedure           = "/kindnest.v1.QueryService/GetGroup"
	QueryServiceGetTotalGroupsProcedure     = "/kindnest.v1.QueryService/GetTotalGroups"
	QueryServiceGetGroupStatsProcedure      = "/kindnest.v1.QueryService/GetGroupStats"
	QueryServiceGetMemberInfoProcedure      = "/kindnest.v1.QueryService/GetMemberInfo"
	QueryServiceGetMemberAtIndexProcedure   = "/kindnest.v1.QueryService/GetMemberAtIndex"
	QueryServiceGetNetBalanceProcedure      = "/kindnest.v1.QueryService/GetNetBalance"
	QueryServiceGetGroupMembersProcedure    = "/kindnest.v1.QueryService/GetGroupMembers"
	QueryServiceGetBalanceProcedure         = "/kindnest.v1.QueryService/GetBalance"
	QueryServiceGetUserCreditorsProcedure   = "/kindnest.v1.QueryService/GetUserCreditors"
	QueryServiceGetExpenseProcedure         = "/kindnest.v1.QueryService/GetExpense"
	QueryServiceListExpensesProcedure       = "/kindnest.v1.QueryService/ListExpenses"
	QueryServiceGetSettlementProcedure      = "/kindnest.v1.QueryService/GetSettlement"
	QueryServiceGetAllSettlementsProcedure  = "/kindnest.v1.QueryService/GetAllSettlements"
	QueryServiceGetUserGroupsProcedure      = "/kindnest.v1.QueryService/GetUserGroups"
	QueryServiceSuggestSettlementsProcedure = "/kindnest.v1.QueryService/SuggestSettlements"
	QueryServiceGetAccountProcedure         = "/kindnest.v1.QueryService/GetAccount"
	QueryServiceGetHeightProcedure          = "/kindnest.v1.QueryService/GetHeight"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// AuthService

type AuthServiceHandler interface {
	Challenge(context.Context, *connect.Request[api.ChallengeRequest]) (*connect.Response[api.ChallengeResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceHandler returns the mount path and handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceChallengeProcedure, connect.NewUnaryHandler(AuthServiceChallengeProcedure, svc.Challenge, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

type AuthServiceClient interface {
	Challenge(context.Context, *connect.Request[api.ChallengeRequest]) (*connect.Response[api.ChallengeResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

type authServiceClient struct {
	challenge *connect.Client[api.ChallengeRequest, api.ChallengeResponse]
	login     *connect.Client[api.LoginRequest, api.LoginResponse]
}

// NewAuthServiceClient creates a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		challenge: connect.NewClient[api.ChallengeRequest, api.ChallengeResponse](httpClient, baseURL+AuthServiceChallengeProcedure, opts...),
		login:     connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *authServiceClient) Challenge(ctx context.Context, req *connect.Request[api.ChallengeRequest]) (*connect.Response[api.ChallengeResponse], error) {
	return c.challenge.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// LedgerService

type LedgerServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.SubmitResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.SubmitResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.SubmitResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.SubmitResponse], error)
	SettleDebt(context.Context, *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SubmitResponse], error)
	PauseGroup(context.Context, *connect.Request[api.PauseGroupRequest]) (*connect.Response[api.SubmitResponse], error)
	UnpauseGroup(context.Context, *connect.Request[api.UnpauseGroupRequest]) (*connect.Response[api.SubmitResponse], error)
	Deposit(context.Context, *connect.Request[api.DepositRequest]) (*connect.Response[api.SubmitResponse], error)
}

// NewLedgerServiceHandler returns the mount path and handler for svc.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateGroupProcedure, connect.NewUnaryHandler(LedgerServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(LedgerServiceAddMemberProcedure, connect.NewUnaryHandler(LedgerServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(LedgerServiceRemoveMemberProcedure, connect.NewUnaryHandler(LedgerServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceSettleDebtProcedure, connect.NewUnaryHandler(LedgerServiceSettleDebtProcedure, svc.SettleDebt, opts...))
	mux.Handle(LedgerServicePauseGroupProcedure, connect.NewUnaryHandler(LedgerServicePauseGroupProcedure, svc.PauseGroup, opts...))
	mux.Handle(LedgerServiceUnpauseGroupProcedure, connect.NewUnaryHandler(LedgerServiceUnpauseGroupProcedure, svc.UnpauseGroup, opts...))
	mux.Handle(LedgerServiceDepositProcedure, connect.NewUnaryHandler(LedgerServiceDepositProcedure, svc.Deposit, opts...))
	return "/" + LedgerServiceName + "/", mux
}

type LedgerServiceClient interface {
	LedgerServiceHandler
}

type ledgerServiceClient struct {
	createGroup  *connect.Client[api.CreateGroupRequest, api.SubmitResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.SubmitResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.SubmitResponse]
	addExpense   *connect.Client[api.AddExpenseRequest, api.SubmitResponse]
	settleDebt   *connect.Client[api.SettleDebtRequest, api.SubmitResponse]
	pauseGroup   *connect.Client[api.PauseGroupRequest, api.SubmitResponse]
	unpauseGroup *connect.Client[api.UnpauseGroupRequest, api.SubmitResponse]
	deposit      *connect.Client[api.DepositRequest, api.SubmitResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		createGroup:  connect.NewClient[api.CreateGroupRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceCreateGroupProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceAddMemberProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceRemoveMemberProcedure, opts...),
		addExpense:   connect.NewClient[api.AddExpenseRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		settleDebt:   connect.NewClient[api.SettleDebtRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceSettleDebtProcedure, opts...),
		pauseGroup:   connect.NewClient[api.PauseGroupRequest, api.SubmitResponse](httpClient, baseURL+LedgerServicePauseGroupProcedure, opts...),
		unpauseGroup: connect.NewClient[api.UnpauseGroupRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceUnpauseGroupProcedure, opts...),
		deposit:      connect.NewClient[api.DepositRequest, api.SubmitResponse](httpClient, baseURL+LedgerServiceDepositProcedure, opts...),
	}
}

func (c *ledgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) PauseGroup(ctx context.Context, req *connect.Request[api.PauseGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.pauseGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UnpauseGroup(ctx context.Context, req *connect.Request[api.UnpauseGroupRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.unpauseGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Deposit(ctx context.Context, req *connect.Request[api.DepositRequest]) (*connect.Response[api.SubmitResponse], error) {
	return c.deposit.CallUnary(ctx, req)
}

// QueryService

type QueryServiceHandler interface {
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	GetTotalGroups(context.Context, *connect.Request[api.GetTotalGroupsRequest]) (*connect.Response[api.GetTotalGroupsResponse], error)
	GetGroupStats(context.Context, *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error)
	GetMemberInfo(context.Context, *connect.Request[api.GetMemberInfoRequest]) (*connect.Response[api.MemberResponse], error)
	GetMemberAtIndex(context.Context, *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.MemberResponse], error)
	GetNetBalance(context.Context, *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.AmountResponse], error)
	GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.AmountResponse], error)
	GetUserCreditors(context.Context, *connect.Request[api.GetUserCreditorsRequest]) (*connect.Response[api.GetUserCreditorsResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.ExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error)
	GetAllSettlements(context.Context, *connect.Request[api.GetAllSettlementsRequest]) (*connect.Response[api.GetAllSettlementsResponse], error)
	GetUserGroups(context.Context, *connect.Request[api.GetUserGroupsRequest]) (*connect.Response[api.GetUserGroupsResponse], error)
	SuggestSettlements(context.Context, *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.AmountResponse], error)
	GetHeight(context.Context, *connect.Request[api.GetHeightRequest]) (*connect.Response[api.GetHeightResponse], error)
}

// NewQueryServiceHandler returns the mount path and handler for svc.
func NewQueryServiceHandler(svc QueryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(QueryServiceGetTransactionProcedure, connect.NewUnaryHandler(QueryServiceGetTransactionProcedure, svc.GetTransaction, opts...))
	mux.Handle(QueryServiceGetGroupProcedure, connect.NewUnaryHandler(QueryServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(QueryServiceGetTotalGroupsProcedure, connect.NewUnaryHandler(QueryServiceGetTotalGroupsProcedure, svc.GetTotalGroups, opts...))
	mux.Handle(QueryServiceGetGroupStatsProcedure, connect.NewUnaryHandler(QueryServiceGetGroupStatsProcedure, svc.GetGroupStats, opts...))
	mux.Handle(QueryServiceGetMemberInfoProcedure, connect.NewUnaryHandler(QueryServiceGetMemberInfoProcedure, svc.GetMemberInfo, opts...))
	mux.Handle(QueryServiceGetMemberAtIndexProcedure, connect.NewUnaryHandler(QueryServiceGetMemberAtIndexProcedure, svc.GetMemberAtIndex, opts...))
	mux.Handle(QueryServiceGetNetBalanceProcedure, connect.NewUnaryHandler(QueryServiceGetNetBalanceProcedure, svc.GetNetBalance, opts...))
	mux.Handle(QueryServiceGetGroupMembersProcedure, connect.NewUnaryHandler(QueryServiceGetGroupMembersProcedure, svc.GetGroupMembers, opts...))
	mux.Handle(QueryServiceGetBalanceProcedure, connect.NewUnaryHandler(QueryServiceGetBalanceProcedure, svc.GetBalance, opts...))
	mux.Handle(QueryServiceGetUserCreditorsProcedure, connect.NewUnaryHandler(QueryServiceGetUserCreditorsProcedure, svc.GetUserCreditors, opts...))
	mux.Handle(QueryServiceGetExpenseProcedure, connect.NewUnaryHandler(QueryServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(QueryServiceListExpensesProcedure, connect.NewUnaryHandler(QueryServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(QueryServiceGetSettlementProcedure, connect.NewUnaryHandler(QueryServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(QueryServiceGetAllSettlementsProcedure, connect.NewUnaryHandler(QueryServiceGetAllSettlementsProcedure, svc.GetAllSettlements, opts...))
	mux.Handle(QueryServiceGetUserGroupsProcedure, connect.NewUnaryHandler(QueryServiceGetUserGroupsProcedure, svc.GetUserGroups, opts...))
	mux.Handle(QueryServiceSuggestSettlementsProcedure, connect.NewUnaryHandler(QueryServiceSuggestSettlementsProcedure, svc.SuggestSettlements, opts...))
	mux.Handle(QueryServiceGetAccountProcedure, connect.NewUnaryHandler(QueryServiceGetAccountProcedure, svc.GetAccount, opts...))
	mux.Handle(QueryServiceGetHeightProcedure, connect.NewUnaryHandler(QueryServiceGetHeightProcedure, svc.GetHeight, opts...))
	return "/" + QueryServiceName + "/", mux
}

type QueryServiceClient interface {
	QueryServiceHandler
}

type queryServiceClient struct {
	getTransaction     *connect.Client[api.GetTransactionRequest, api.GetTransactionResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	getTotalGroups     *connect.Client[api.GetTotalGroupsRequest, api.GetTotalGroupsResponse]
	getGroupStats      *connect.Client[api.GetGroupStatsRequest, api.GetGroupStatsResponse]
	getMemberInfo      *connect.Client[api.GetMemberInfoRequest, api.MemberResponse]
	getMemberAtIndex   *connect.Client[api.GetMemberAtIndexRequest, api.MemberResponse]
	getNetBalance      *connect.Client[api.GetNetBalanceRequest, api.AmountResponse]
	getGroupMembers    *connect.Client[api.GetGroupMembersRequest, api.GetGroupMembersResponse]
	getBalance         *connect.Client[api.GetBalanceRequest, api.AmountResponse]
	getUserCreditors   *connect.Client[api.GetUserCreditorsRequest, api.GetUserCreditorsResponse]
	getExpense         *connect.Client[api.GetExpenseRequest, api.ExpenseResponse]
	listExpenses       *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getSettlement      *connect.Client[api.GetSettlementRequest, api.SettlementResponse]
	getAllSettlements  *connect.Client[api.GetAllSettlementsRequest, api.GetAllSettlementsResponse]
	getUserGroups      *connect.Client[api.GetUserGroupsRequest, api.GetUserGroupsResponse]
	suggestSettlements *connect.Client[api.SuggestSettlementsRequest, api.SuggestSettlementsResponse]
	getAccount         *connect.Client[api.GetAccountRequest, api.AmountResponse]
	getHeight          *connect.Client[api.GetHeightRequest, api.GetHeightResponse]
}

// NewQueryServiceClient creates a client for the QueryService at baseURL.
func NewQueryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) QueryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &queryServiceClient{
		getTransaction:     connect.NewClient[api.GetTransactionRequest, api.GetTransactionResponse](httpClient, baseURL+QueryServiceGetTransactionProcedure, opts...),
		getGroup:           connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+QueryServiceGetGroupProcedure, opts...),
		getTotalGroups:     connect.NewClient[api.GetTotalGroupsRequest, api.GetTotalGroupsResponse](httpClient, baseURL+QueryServiceGetTotalGroupsProcedure, opts...),
		getGroupStats:      connect.NewClient[api.GetGroupStatsRequest, api.GetGroupStatsResponse](httpClient, baseURL+QueryServiceGetGroupStatsProcedure, opts...),
		getMemberInfo:      connect.NewClient[api.GetMemberInfoRequest, api.MemberResponse](httpClient, baseURL+QueryServiceGetMemberInfoProcedure, opts...),
		getMemberAtIndex:   connect.NewClient[api.GetMemberAtIndexRequest, api.MemberResponse](httpClient, baseURL+QueryServiceGetMemberAtIndexProcedure, opts...),
		getNetBalance:      connect.NewClient[api.GetNetBalanceRequest, api.AmountResponse](httpClient, baseURL+QueryServiceGetNetBalanceProcedure, opts...),
		getGroupMembers:    connect.NewClient[api.GetGroupMembersRequest, api.GetGroupMembersResponse](httpClient, baseURL+QueryServiceGetGroupMembersProcedure, opts...),
		getBalance:         connect.NewClient[api.GetBalanceRequest, api.AmountResponse](httpClient, baseURL+QueryServiceGetBalanceProcedure, opts...),
		getUserCreditors:   connect.NewClient[api.GetUserCreditorsRequest, api.GetUserCreditorsResponse](httpClient, baseURL+QueryServiceGetUserCreditorsProcedure, opts...),
		getExpense:         connect.NewClient[api.GetExpenseRequest, api.ExpenseResponse](httpClient, baseURL+QueryServiceGetExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+QueryServiceListExpensesProcedure, opts...),
		getSettlement:      connect.NewClient[api.GetSettlementRequest, api.SettlementResponse](httpClient, baseURL+QueryServiceGetSettlementProcedure, opts...),
		getAllSettlements:  connect.NewClient[api.GetAllSettlementsRequest, api.GetAllSettlementsResponse](httpClient, baseURL+QueryServiceGetAllSettlementsProcedure, opts...),
		getUserGroups:      connect.NewClient[api.GetUserGroupsRequest, api.GetUserGroupsResponse](httpClient, baseURL+QueryServiceGetUserGroupsProcedure, opts...),
		suggestSettlements: connect.NewClient[api.SuggestSettlementsRequest, api.SuggestSettlementsResponse](httpClient, baseURL+QueryServiceSuggestSettlementsProcedure, opts...),
		getAccount:         connect.NewClient[api.GetAccountRequest, api.AmountResponse](httpClient, baseURL+QueryServiceGetAccountProcedure, opts...),
		getHeight:          connect.NewClient[api.GetHeightRequest, api.GetHeightResponse](httpClient, baseURL+QueryServiceGetHeightProcedure, opts...),
	}
}

func (c *queryServiceClient) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetTotalGroups(ctx context.Context, req *connect.Request[api.GetTotalGroupsRequest]) (*connect.Response[api.GetTotalGroupsResponse], error) {
	return c.getTotalGroups.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetGroupStats(ctx context.Context, req *connect.Request[api.GetGroupStatsRequest]) (*connect.Response[api.GetGroupStatsResponse], error) {
	return c.getGroupStats.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetMemberInfo(ctx context.Context, req *connect.Request[api.GetMemberInfoRequest]) (*connect.Response[api.MemberResponse], error) {
	return c.getMemberInfo.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetMemberAtIndex(ctx context.Context, req *connect.Request[api.GetMemberAtIndexRequest]) (*connect.Response[api.MemberResponse], error) {
	return c.getMemberAtIndex.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetNetBalance(ctx context.Context, req *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.AmountResponse], error) {
	return c.getNetBalance.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	return c.getGroupMembers.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.AmountResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetUserCreditors(ctx context.Context, req *connect.Request[api.GetUserCreditorsRequest]) (*connect.Response[api.GetUserCreditorsResponse], error) {
	return c.getUserCreditors.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *queryServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetAllSettlements(ctx context.Context, req *connect.Request[api.GetAllSettlementsRequest]) (*connect.Response[api.GetAllSettlementsResponse], error) {
	return c.getAllSettlements.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetUserGroups(ctx context.Context, req *connect.Request[api.GetUserGroupsRequest]) (*connect.Response[api.GetUserGroupsResponse], error) {
	return c.getUserGroups.CallUnary(ctx, req)
}

func (c *queryServiceClient) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	return c.suggestSettlements.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.AmountResponse], error) {
	return c.getAccount.CallUnary(ctx, req)
}

func (c *queryServiceClient) GetHeight(ctx context.Context, req *connect.Request[api.GetHeightRequest]) (*connect.Response[api.GetHeightResponse], error) {
	return c.getHeight.CallUnary(ctx, req)
}
