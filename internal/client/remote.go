// Package client talks to a kindnest node over Connect. Remote mirrors the
// ledger's submit and query surface; Watcher turns a submitted transaction
// into its confirmed outcome.
package client

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/pkg/api"
	"github.com/mmynk/kindnest/pkg/api/apiconnect"
)

// Remote is a networked ledger. Errors come back as ledger sentinels, so
// callers match them with errors.Is just as they would locally.
type Remote struct {
	auth   apiconnect.AuthServiceClient
	ledger apiconnect.LedgerServiceClient
	query  apiconnect.QueryServiceClient

	mu    sync.RWMutex
	token string
}

// New creates a Remote for the node at baseURL.
func New(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Remote {
	r := &Remote{}
	opts = append(opts, connect.WithInterceptors(r.bearer()))
	r.auth = apiconnect.NewAuthServiceClient(httpClient, baseURL, opts...)
	r.ledger = apiconnect.NewLedgerServiceClient(httpClient, baseURL, opts...)
	r.query = apiconnect.NewQueryServiceClient(httpClient, baseURL, opts...)
	return r
}

// SetToken sets the session token sent with every call.
func (r *Remote) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

// Token returns the current session token.
func (r *Remote) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

func (r *Remote) bearer() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token := r.Token(); token != "" && req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

// Login proves control of priv's address and stores the session token.
func (r *Remote) Login(ctx context.Context, priv ed25519.PrivateKey) (string, time.Time, error) {
	pub := priv.Public().(ed25519.PublicKey)
	address := auth.AddressFromPublicKey(pub)

	ch, err := r.auth.Challenge(ctx, connect.NewRequest(&api.ChallengeRequest{Address: address}))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("challenge: %w", api.DecodeError(err))
	}
	sig := ed25519.Sign(priv, auth.ChallengeMessage(ch.Msg.Nonce))

	resp, err := r.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Address:   address,
		PublicKey: hex.EncodeToString(pub),
		Nonce:     ch.Msg.Nonce,
		Signature: hex.EncodeToString(sig),
	}))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("login: %w", api.DecodeError(err))
	}

	r.SetToken(resp.Msg.Token)
	return resp.Msg.Token, time.Unix(resp.Msg.ExpiresAt, 0), nil
}

// Submit sends op to the node and returns its transaction ID.
func (r *Remote) Submit(ctx context.Context, op ledger.Op) (string, error) {
	var (
		resp *connect.Response[api.SubmitResponse]
		err  error
	)
	switch o := op.(type) {
	case ledger.CreateGroup:
		resp, err = r.ledger.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: o.GroupName, Nickname: o.Nickname}))
	case ledger.AddMember:
		resp, err = r.ledger.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: o.GroupID, Address: o.Address, Nickname: o.Nickname}))
	case ledger.RemoveMember:
		resp, err = r.ledger.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: o.GroupID, Address: o.Address}))
	case ledger.AddExpense:
		resp, err = r.ledger.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
			GroupID:      o.GroupID,
			Description:  o.Description,
			Amount:       o.Amount,
			Participants: o.Participants,
			ReceiptHash:  o.ReceiptHash,
		}))
	case ledger.SettleDebt:
		resp, err = r.ledger.SettleDebt(ctx, connect.NewRequest(&api.SettleDebtRequest{GroupID: o.GroupID, Creditor: o.Creditor, Amount: o.Amount}))
	case ledger.PauseGroup:
		resp, err = r.ledger.PauseGroup(ctx, connect.NewRequest(&api.PauseGroupRequest{GroupID: o.GroupID}))
	case ledger.UnpauseGroup:
		resp, err = r.ledger.UnpauseGroup(ctx, connect.NewRequest(&api.UnpauseGroupRequest{GroupID: o.GroupID}))
	case ledger.Deposit:
		resp, err = r.ledger.Deposit(ctx, connect.NewRequest(&api.DepositRequest{Amount: o.Amount}))
	default:
		return "", fmt.Errorf("unsupported operation %T", op)
	}
	if err != nil {
		return "", api.DecodeError(err)
	}
	return resp.Msg.TxID, nil
}

// Receipt returns the current receipt of a transaction.
func (r *Remote) Receipt(ctx context.Context, txID string) (*models.Receipt, error) {
	resp, err := r.query.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{TxID: txID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Receipt.Model(), nil
}

func (r *Remote) GetGroup(ctx context.Context, groupID uint64) (*models.Group, error) {
	resp, err := r.query.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: groupID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Group.Model(), nil
}

func (r *Remote) GetTotalGroups(ctx context.Context) (uint64, error) {
	resp, err := r.query.GetTotalGroups(ctx, connect.NewRequest(&api.GetTotalGroupsRequest{}))
	if err != nil {
		return 0, api.DecodeError(err)
	}
	return resp.Msg.Total, nil
}

func (r *Remote) GetGroupStats(ctx context.Context, groupID uint64) (models.GroupStats, error) {
	resp, err := r.query.GetGroupStats(ctx, connect.NewRequest(&api.GetGroupStatsRequest{GroupID: groupID}))
	if err != nil {
		return models.GroupStats{}, api.DecodeError(err)
	}
	return resp.Msg.Stats.Model(), nil
}

func (r *Remote) GetMemberInfo(ctx context.Context, groupID uint64, address string) (*models.Member, error) {
	resp, err := r.query.GetMemberInfo(ctx, connect.NewRequest(&api.GetMemberInfoRequest{GroupID: groupID, Address: address}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Member.Model(), nil
}

func (r *Remote) GetMemberAt(ctx context.Context, groupID, index uint64) (*models.Member, error) {
	resp, err := r.query.GetMemberAtIndex(ctx, connect.NewRequest(&api.GetMemberAtIndexRequest{GroupID: groupID, Index: index}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Member.Model(), nil
}

func (r *Remote) GetNetBalance(ctx context.Context, groupID uint64, address string) (int64, error) {
	resp, err := r.query.GetNetBalance(ctx, connect.NewRequest(&api.GetNetBalanceRequest{GroupID: groupID, Address: address}))
	if err != nil {
		return 0, api.DecodeError(err)
	}
	return resp.Msg.Amount, nil
}

func (r *Remote) GetGroupMembers(ctx context.Context, groupID uint64) ([]*models.Member, error) {
	resp, err := r.query.GetGroupMembers(ctx, connect.NewRequest(&api.GetGroupMembersRequest{GroupID: groupID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	members := make([]*models.Member, len(resp.Msg.Members))
	for i, m := range resp.Msg.Members {
		members[i] = m.Model()
	}
	return members, nil
}

func (r *Remote) GetBalance(ctx context.Context, groupID uint64, debtor, creditor string) (int64, error) {
	resp, err := r.query.GetBalance(ctx, connect.NewRequest(&api.GetBalanceRequest{GroupID: groupID, Debtor: debtor, Creditor: creditor}))
	if err != nil {
		return 0, api.DecodeError(err)
	}
	return resp.Msg.Amount, nil
}

func (r *Remote) GetUserCreditors(ctx context.Context, groupID uint64, address string) ([]models.Creditor, error) {
	resp, err := r.query.GetUserCreditors(ctx, connect.NewRequest(&api.GetUserCreditorsRequest{GroupID: groupID, Address: address}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	creditors := make([]models.Creditor, len(resp.Msg.Creditors))
	for i, c := range resp.Msg.Creditors {
		creditors[i] = c.Model()
	}
	return creditors, nil
}

func (r *Remote) GetExpense(ctx context.Context, groupID, expenseID uint64) (*models.Expense, error) {
	resp, err := r.query.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{GroupID: groupID, ExpenseID: expenseID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Expense.Model(), nil
}

func (r *Remote) ListExpenses(ctx context.Context, groupID uint64) ([]*models.Expense, error) {
	resp, err := r.query.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: groupID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	expenses := make([]*models.Expense, len(resp.Msg.Expenses))
	for i, e := range resp.Msg.Expenses {
		expenses[i] = e.Model()
	}
	return expenses, nil
}

func (r *Remote) GetSettlement(ctx context.Context, groupID, settlementID uint64) (*models.Settlement, error) {
	resp, err := r.query.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{GroupID: groupID, SettlementID: settlementID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.Settlement.Model(), nil
}

func (r *Remote) GetAllSettlements(ctx context.Context, groupID uint64) ([]*models.Settlement, error) {
	resp, err := r.query.GetAllSettlements(ctx, connect.NewRequest(&api.GetAllSettlementsRequest{GroupID: groupID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	settlements := make([]*models.Settlement, len(resp.Msg.Settlements))
	for i, s := range resp.Msg.Settlements {
		settlements[i] = s.Model()
	}
	return settlements, nil
}

func (r *Remote) GetUserGroups(ctx context.Context, address string) ([]uint64, error) {
	resp, err := r.query.GetUserGroups(ctx, connect.NewRequest(&api.GetUserGroupsRequest{Address: address}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	return resp.Msg.GroupIDs, nil
}

func (r *Remote) SuggestSettlements(ctx context.Context, groupID uint64) ([]models.DebtEdge, error) {
	resp, err := r.query.SuggestSettlements(ctx, connect.NewRequest(&api.SuggestSettlementsRequest{GroupID: groupID}))
	if err != nil {
		return nil, api.DecodeError(err)
	}
	edges := make([]models.DebtEdge, len(resp.Msg.Transfers))
	for i, t := range resp.Msg.Transfers {
		edges[i] = t.Model()
	}
	return edges, nil
}

func (r *Remote) GetAccount(ctx context.Context, address string) (int64, error) {
	resp, err := r.query.GetAccount(ctx, connect.NewRequest(&api.GetAccountRequest{Address: address}))
	if err != nil {
		return 0, api.DecodeError(err)
	}
	return resp.Msg.Amount, nil
}

func (r *Remote) Height(ctx context.Context) (uint64, error) {
	resp, err := r.query.GetHeight(ctx, connect.NewRequest(&api.GetHeightRequest{}))
	if err != nil {
		return 0, api.DecodeError(err)
	}
	return resp.Msg.Height, nil
}
