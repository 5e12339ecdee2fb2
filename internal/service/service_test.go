package service

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/metrics"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/sequencer"
	"github.com/mmynk/kindnest/internal/storage/sqlite"
	"github.com/mmynk/kindnest/pkg/api"
	"github.com/mmynk/kindnest/pkg/api/apiconnect"
)

type testClients struct {
	auth   apiconnect.AuthServiceClient
	ledger apiconnect.LedgerServiceClient
	query  apiconnect.QueryServiceClient
}

// setupTestServer starts a node over a temp sqlite database with the
// faucet enabled.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	policy := ledger.DefaultPolicy()
	policy.Faucet = true
	l := ledger.New(store, policy)
	seq := sequencer.New(l, metrics.New(), 64)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		seq.Run(ctx)
	}()

	mux := http.NewServeMux()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	Register(mux, l, seq, auth.NewKeyAuthenticator(time.Minute), auth.NewJWTManager("test-secret", time.Hour), logger)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		cancel()
		<-stopped
		store.Close()
	})

	return &testClients{
		auth:   apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		query:  apiconnect.NewQueryServiceClient(http.DefaultClient, server.URL),
	}
}

type user struct {
	address string
	token   string
}

// login creates a key and signs in with it.
func login(t *testing.T, c *testClients) user {
	t.Helper()
	priv, err := auth.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	pub := priv.Public().(ed25519.PublicKey)
	address := auth.AddressFromPublicKey(pub)

	ch, err := c.auth.Challenge(context.Background(), connect.NewRequest(&api.ChallengeRequest{Address: address}))
	if err != nil {
		t.Fatalf("Challenge failed: %v", err)
	}
	sig := ed25519.Sign(priv, []byte(ch.Msg.Message))

	resp, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Address:   address,
		PublicKey: hex.EncodeToString(pub),
		Nonce:     ch.Msg.Nonce,
		Signature: hex.EncodeToString(sig),
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return user{address: address, token: resp.Msg.Token}
}

// as builds a request carrying u's session token.
func as[T any](u user, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if u.token != "" {
		req.Header().Set("Authorization", "Bearer "+u.token)
	}
	return req
}

// waitTx polls until the transaction leaves pending.
func waitTx(t *testing.T, c *testClients, txID string) *api.Receipt {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := c.query.GetTransaction(context.Background(), connect.NewRequest(&api.GetTransactionRequest{TxID: txID}))
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if resp.Msg.Receipt.Status != string(models.TxPending) {
			return resp.Msg.Receipt
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("transaction %s still pending", txID)
	return nil
}

// confirm waits for txID and fails the test unless it succeeded.
func confirm(t *testing.T, c *testClients, resp *connect.Response[api.SubmitResponse], err error) *api.Receipt {
	t.Helper()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	r := waitTx(t, c, resp.Msg.TxID)
	if r.Status != string(models.TxSuccess) {
		t.Fatalf("%s failed: %s %s", r.Op, r.ErrorCode, r.ErrorMessage)
	}
	return r
}

func expectConnectCode(t *testing.T, err error, want connect.Code, wantLedger string) {
	t.Helper()
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T (%v)", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("code: expected %v, got %v", want, connectErr.Code())
	}
	if got := connectErr.Meta().Get(api.ErrorCodeHeader); got != wantLedger {
		t.Errorf("ledger code: expected %q, got %q", wantLedger, got)
	}
}

func TestLogin(t *testing.T) {
	c := setupTestServer(t)
	u := login(t, c)

	if u.token == "" {
		t.Fatal("expected non-empty token")
	}
	if !auth.ValidAddress(u.address) {
		t.Errorf("unexpected address %q", u.address)
	}
}

func TestLogin_Rejected(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	priv, _ := auth.GenerateKey()
	pub := priv.Public().(ed25519.PublicKey)
	address := auth.AddressFromPublicKey(pub)
	other, _ := auth.GenerateKey()
	otherPub := other.Public().(ed25519.PublicKey)

	challenge := func() string {
		t.Helper()
		resp, err := c.auth.Challenge(ctx, connect.NewRequest(&api.ChallengeRequest{Address: address}))
		if err != nil {
			t.Fatalf("Challenge failed: %v", err)
		}
		return resp.Msg.Nonce
	}

	tests := []struct {
		name string
		req  func() *api.LoginRequest
		want connect.Code
	}{
		{
			name: "wrong key for address",
			req: func() *api.LoginRequest {
				nonce := challenge()
				return &api.LoginRequest{
					Address:   address,
					PublicKey: hex.EncodeToString(otherPub),
					Nonce:     nonce,
					Signature: hex.EncodeToString(ed25519.Sign(other, auth.ChallengeMessage(nonce))),
				}
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "bad signature",
			req: func() *api.LoginRequest {
				nonce := challenge()
				return &api.LoginRequest{
					Address:   address,
					PublicKey: hex.EncodeToString(pub),
					Nonce:     nonce,
					Signature: hex.EncodeToString(ed25519.Sign(priv, []byte("something else"))),
				}
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "unknown nonce",
			req: func() *api.LoginRequest {
				return &api.LoginRequest{
					Address:   address,
					PublicKey: hex.EncodeToString(pub),
					Nonce:     "not-issued",
					Signature: hex.EncodeToString(ed25519.Sign(priv, auth.ChallengeMessage("not-issued"))),
				}
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "malformed public key",
			req: func() *api.LoginRequest {
				return &api.LoginRequest{Address: address, PublicKey: "abcd", Nonce: challenge(), Signature: "00"}
			},
			want: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.auth.Login(ctx, connect.NewRequest(tt.req()))
			if err == nil {
				t.Fatal("expected login to fail")
			}
			if connect.CodeOf(err) != tt.want {
				t.Errorf("code: expected %v, got %v", tt.want, connect.CodeOf(err))
			}
		})
	}
}

func TestLogin_NonceSingleUse(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	priv, _ := auth.GenerateKey()
	pub := priv.Public().(ed25519.PublicKey)
	address := auth.AddressFromPublicKey(pub)

	ch, err := c.auth.Challenge(ctx, connect.NewRequest(&api.ChallengeRequest{Address: address}))
	if err != nil {
		t.Fatalf("Challenge failed: %v", err)
	}
	req := &api.LoginRequest{
		Address:   address,
		PublicKey: hex.EncodeToString(pub),
		Nonce:     ch.Msg.Nonce,
		Signature: hex.EncodeToString(ed25519.Sign(priv, []byte(ch.Msg.Message))),
	}

	if _, err := c.auth.Login(ctx, connect.NewRequest(req)); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := c.auth.Login(ctx, connect.NewRequest(req)); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("replayed login: expected Unauthenticated, got %v", err)
	}
}

func TestChallenge_MalformedAddress(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.auth.Challenge(context.Background(), connect.NewRequest(&api.ChallengeRequest{Address: "alice"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestMutation_RequiresAuth(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ledger.CreateGroup(ctx, as(user{token: tt.token}, &api.CreateGroupRequest{Name: "Trip", Nickname: "Alice"}))
			expectConnectCode(t, err, connect.CodeUnauthenticated, ledger.CodeAuthenticationRequired)
			if !errors.Is(api.DecodeError(err), ledger.ErrAuthenticationRequired) {
				t.Errorf("DecodeError: expected ErrAuthenticationRequired, got %v", api.DecodeError(err))
			}
		})
	}
}

func TestMutation_InvalidArgumentIsSynchronous(t *testing.T) {
	c := setupTestServer(t)
	alice := login(t, c)
	ctx := context.Background()

	_, err := c.ledger.AddExpense(ctx, as(alice, &api.AddExpenseRequest{
		GroupID:      1,
		Description:  "Dinner",
		Amount:       0,
		Participants: []string{alice.address},
	}))
	expectConnectCode(t, err, connect.CodeInvalidArgument, ledger.CodeInvalidArgument)
	if !errors.Is(api.DecodeError(err), ledger.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", api.DecodeError(err))
	}

	// Nothing was applied.
	height, err := c.query.GetHeight(ctx, connect.NewRequest(&api.GetHeightRequest{}))
	if err != nil {
		t.Fatalf("GetHeight failed: %v", err)
	}
	if height.Msg.Height != 0 {
		t.Errorf("height: expected 0, got %d", height.Msg.Height)
	}
}

func TestFullFlow(t *testing.T) {
	c := setupTestServer(t)
	alice := login(t, c)
	bob := login(t, c)
	ctx := context.Background()

	resp, err := c.ledger.CreateGroup(ctx, as(alice, &api.CreateGroupRequest{Name: "Trip", Nickname: "Alice"}))
	created := confirm(t, c, resp, err)
	groupID := created.ResultID
	if groupID != 1 || created.GroupID != 1 {
		t.Fatalf("expected group 1, got result %d group %d", created.ResultID, created.GroupID)
	}

	resp, err = c.ledger.AddMember(ctx, as(alice, &api.AddMemberRequest{GroupID: groupID, Address: bob.address, Nickname: "Bob"}))
	confirm(t, c, resp, err)

	resp, err = c.ledger.AddExpense(ctx, as(alice, &api.AddExpenseRequest{
		GroupID:      groupID,
		Description:  "Dinner",
		Amount:       100,
		Participants: []string{alice.address, bob.address},
		ReceiptHash:  "deadbeef",
	}))
	expense := confirm(t, c, resp, err)
	if expense.ResultID != 1 {
		t.Errorf("expense id: expected 1, got %d", expense.ResultID)
	}

	balance, err := c.query.GetBalance(ctx, connect.NewRequest(&api.GetBalanceRequest{GroupID: groupID, Debtor: bob.address, Creditor: alice.address}))
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance.Msg.Amount != 50 {
		t.Errorf("balance: expected 50, got %d", balance.Msg.Amount)
	}

	creditors, err := c.query.GetUserCreditors(ctx, connect.NewRequest(&api.GetUserCreditorsRequest{GroupID: groupID, Address: bob.address}))
	if err != nil {
		t.Fatalf("GetUserCreditors failed: %v", err)
	}
	if len(creditors.Msg.Creditors) != 1 || creditors.Msg.Creditors[0].Address != alice.address || creditors.Msg.Creditors[0].Amount != 50 {
		t.Errorf("unexpected creditors: %+v", creditors.Msg.Creditors)
	}

	resp, err = c.ledger.Deposit(ctx, as(bob, &api.DepositRequest{Amount: 100}))
	confirm(t, c, resp, err)

	resp, err = c.ledger.SettleDebt(ctx, as(bob, &api.SettleDebtRequest{GroupID: groupID, Creditor: alice.address, Amount: 50}))
	settled := confirm(t, c, resp, err)
	if settled.ResultID != 1 || settled.Height != 5 {
		t.Errorf("settlement receipt: result %d height %d, want 1/5", settled.ResultID, settled.Height)
	}

	settlement, err := c.query.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{GroupID: groupID, SettlementID: 1}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if settlement.Msg.Settlement.Debtor != bob.address || settlement.Msg.Settlement.Amount != 50 {
		t.Errorf("unexpected settlement: %+v", settlement.Msg.Settlement)
	}

	expenses, err := c.query.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses.Msg.Expenses) != 1 || !expenses.Msg.Expenses[0].Settled || expenses.Msg.Expenses[0].ReceiptHash != "deadbeef" {
		t.Errorf("unexpected expenses: %+v", expenses.Msg.Expenses)
	}

	for _, tc := range []struct {
		address string
		want    int64
	}{
		{alice.address, 50},
		{bob.address, 50},
	} {
		acct, err := c.query.GetAccount(ctx, connect.NewRequest(&api.GetAccountRequest{Address: tc.address}))
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if acct.Msg.Amount != tc.want {
			t.Errorf("account %s: expected %d, got %d", tc.address, tc.want, acct.Msg.Amount)
		}
	}

	stats, err := c.query.GetGroupStats(ctx, connect.NewRequest(&api.GetGroupStatsRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("GetGroupStats failed: %v", err)
	}
	want := api.GroupStats{MemberCount: 2, TotalExpenses: 1, TotalSettlements: 1}
	if *stats.Msg.Stats != want {
		t.Errorf("stats: expected %+v, got %+v", want, *stats.Msg.Stats)
	}

	groups, err := c.query.GetUserGroups(ctx, connect.NewRequest(&api.GetUserGroupsRequest{Address: bob.address}))
	if err != nil {
		t.Fatalf("GetUserGroups failed: %v", err)
	}
	if len(groups.Msg.GroupIDs) != 1 || groups.Msg.GroupIDs[0] != groupID {
		t.Errorf("user groups: expected [%d], got %v", groupID, groups.Msg.GroupIDs)
	}

	members, err := c.query.GetGroupMembers(ctx, connect.NewRequest(&api.GetGroupMembersRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("GetGroupMembers failed: %v", err)
	}
	if len(members.Msg.Members) != 2 || members.Msg.Members[0].Address != alice.address || members.Msg.Members[1].Nickname != "Bob" {
		t.Errorf("unexpected members: %+v", members.Msg.Members)
	}
}

func TestFailureReceipt(t *testing.T) {
	c := setupTestServer(t)
	alice := login(t, c)
	bob := login(t, c)
	ctx := context.Background()

	resp, err := c.ledger.CreateGroup(ctx, as(alice, &api.CreateGroupRequest{Name: "Trip", Nickname: "Alice"}))
	confirm(t, c, resp, err)

	resp, err = c.ledger.PauseGroup(ctx, as(bob, &api.PauseGroupRequest{GroupID: 1}))
	if err != nil {
		t.Fatalf("PauseGroup submit failed: %v", err)
	}
	r := waitTx(t, c, resp.Msg.TxID)
	if r.Status != string(models.TxFailure) || r.ErrorCode != ledger.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED failure, got %s %s", r.Status, r.ErrorCode)
	}
	if r.Caller != bob.address || r.Op != ledger.OpPauseGroup {
		t.Errorf("unexpected receipt: %+v", r)
	}

	group, err := c.query.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: 1}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if group.Msg.Group.Paused {
		t.Error("rejected pause changed the group")
	}
}

func TestQuery_NotFound(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.query.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: 99}))
	expectConnectCode(t, err, connect.CodeNotFound, ledger.CodeNotFound)
	if !errors.Is(api.DecodeError(err), ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", api.DecodeError(err))
	}

	_, err = c.query.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{TxID: "unknown"}))
	expectConnectCode(t, err, connect.CodeNotFound, ledger.CodeNotFound)

	_, err = c.query.GetTransaction(ctx, connect.NewRequest(&api.GetTransactionRequest{}))
	expectConnectCode(t, err, connect.CodeInvalidArgument, ledger.CodeInvalidArgument)
}

func TestQuery_Anonymous(t *testing.T) {
	c := setupTestServer(t)

	total, err := c.query.GetTotalGroups(context.Background(), connect.NewRequest(&api.GetTotalGroupsRequest{}))
	if err != nil {
		t.Fatalf("GetTotalGroups failed: %v", err)
	}
	if total.Msg.Total != 0 {
		t.Errorf("total: expected 0, got %d", total.Msg.Total)
	}
}
