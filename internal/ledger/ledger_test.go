package ledger

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage/memory"
)

var (
	alice = testAddress(1)
	bob   = testAddress(2)
	carol = testAddress(3)
	dave  = testAddress(4)
	erin  = testAddress(5)
)

// testAddress derives the address of a deterministic signing key.
func testAddress(seed byte) string {
	priv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
	return auth.AddressFromPublicKey(priv.Public().(ed25519.PublicKey))
}

// newTestLedger creates a ledger over a fresh memory store with the faucet on.
func newTestLedger(t *testing.T, mutate ...func(*Policy)) *Ledger {
	t.Helper()
	policy := DefaultPolicy()
	policy.Faucet = true
	for _, m := range mutate {
		m(&policy)
	}
	clock := time.Unix(1_700_000_000, 0)
	return New(memory.New(), policy, WithClock(func() time.Time { return clock }))
}

func mustExec(t *testing.T, l *Ledger, caller string, op Op) Result {
	t.Helper()
	res, err := l.Execute(context.Background(), caller, op)
	if err != nil {
		t.Fatalf("%s by %s failed: %v", op.Name(), caller, err)
	}
	return res
}

func expectErr(t *testing.T, l *Ledger, caller string, op Op, want error) {
	t.Helper()
	_, err := l.Execute(context.Background(), caller, op)
	if !errors.Is(err, want) {
		t.Fatalf("%s by %s: expected %v, got %v", op.Name(), caller, want, err)
	}
}

// tripWithBob creates "Trip" by alice and adds bob, returning the group ID.
func tripWithBob(t *testing.T, l *Ledger) uint64 {
	t.Helper()
	groupID := mustExec(t, l, alice, CreateGroup{GroupName: "Trip", Nickname: "Alice"}).ID
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: bob, Nickname: "Bob"})
	return groupID
}

func balance(t *testing.T, l *Ledger, groupID uint64, debtor, creditor string) int64 {
	t.Helper()
	amount, err := l.GetBalance(context.Background(), groupID, debtor, creditor)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	return amount
}

func netBalance(t *testing.T, l *Ledger, groupID uint64, address string) int64 {
	t.Helper()
	net, err := l.GetNetBalance(context.Background(), groupID, address)
	if err != nil {
		t.Fatalf("GetNetBalance failed: %v", err)
	}
	return net
}

func TestScenarioA_CreateGroup(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := mustExec(t, l, alice, CreateGroup{GroupName: "Trip", Nickname: "Alice"})
	if res.ID != 1 {
		t.Errorf("expected group ID 1, got %d", res.ID)
	}

	stats, err := l.GetGroupStats(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetGroupStats failed: %v", err)
	}
	want := models.GroupStats{MemberCount: 1, TotalExpenses: 0, TotalSettlements: 0, Paused: false}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	group, err := l.GetGroup(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if group.Creator != alice || group.Name != "Trip" {
		t.Errorf("unexpected group: %+v", group)
	}

	// The creator's member row exists from the same operation
	member, err := l.GetMemberInfo(ctx, res.ID, alice)
	if err != nil {
		t.Fatalf("GetMemberInfo failed: %v", err)
	}
	if !member.Active || member.Nickname != "Alice" {
		t.Errorf("unexpected creator row: %+v", member)
	}

	// IDs are monotonic
	second := mustExec(t, l, bob, CreateGroup{GroupName: "Flat", Nickname: "Bob"})
	if second.ID != 2 {
		t.Errorf("expected group ID 2, got %d", second.ID)
	}
}

func TestScenariosBCD_ExpenseAndSettlement(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)

	// B: alice pays 300 for both
	res := mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})
	if res.ID != 1 {
		t.Errorf("expected expense ID 1, got %d", res.ID)
	}
	if got := balance(t, l, groupID, bob, alice); got != 150 {
		t.Errorf("Balance(bob, alice) = %d, want 150", got)
	}
	if got := netBalance(t, l, groupID, alice); got != 150 {
		t.Errorf("netBalance(X) = %d, want 150", got)
	}
	if got := netBalance(t, l, groupID, bob); got != -150 {
		t.Errorf("netBalance(Y) = %d, want -150", got)
	}

	// C: bob settles 100
	mustExec(t, l, bob, Deposit{Amount: 1000})
	res = mustExec(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 100})
	if res.ID != 1 {
		t.Errorf("expected settlement ID 1, got %d", res.ID)
	}
	if got := balance(t, l, groupID, bob, alice); got != 50 {
		t.Errorf("Balance(bob, alice) = %d, want 50", got)
	}
	settlements, err := l.GetAllSettlements(ctx, groupID)
	if err != nil {
		t.Fatalf("GetAllSettlements failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(settlements))
	}
	s := settlements[0]
	if s.Amount != 100 || s.Debtor != bob || s.Creditor != alice {
		t.Errorf("unexpected settlement: %+v", s)
	}

	// Value moved with the settlement
	if got, _ := l.GetAccount(ctx, bob); got != 900 {
		t.Errorf("bob account = %d, want 900", got)
	}
	if got, _ := l.GetAccount(ctx, alice); got != 100 {
		t.Errorf("alice account = %d, want 100", got)
	}

	// D: another expense paid by alice adds to bob's debt in the same direction
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Snacks", Amount: 100, Participants: []string{alice, bob}})
	if got := balance(t, l, groupID, bob, alice); got != 100 {
		t.Errorf("Balance(bob, alice) = %d, want 100", got)
	}
	if got := balance(t, l, groupID, alice, bob); got != 0 {
		t.Errorf("Balance(alice, bob) = %d, want 0", got)
	}

	stats, _ := l.GetGroupStats(ctx, groupID)
	if stats.TotalExpenses != 2 || stats.TotalSettlements != 1 || stats.MemberCount != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	checkInvariants(t, l, groupID)
}

func TestScenarioE_Pause(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)

	mustExec(t, l, alice, PauseGroup{GroupID: groupID})

	expectErr(t, l, alice, AddExpense{GroupID: groupID, Description: "Taxi", Amount: 40, Participants: []string{alice, bob}}, ErrGroupPaused)
	expectErr(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"}, ErrGroupPaused)

	mustExec(t, l, alice, UnpauseGroup{GroupID: groupID})

	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Taxi", Amount: 40, Participants: []string{alice, bob}})
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"})

	stats, _ := l.GetGroupStats(ctx, groupID)
	if stats.Paused || stats.MemberCount != 3 || stats.TotalExpenses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestPause_Idempotent(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})

	mustExec(t, l, alice, PauseGroup{GroupID: groupID})
	before, _ := l.GetGroupStats(ctx, groupID)
	mustExec(t, l, alice, PauseGroup{GroupID: groupID})
	after, _ := l.GetGroupStats(ctx, groupID)

	if before != after {
		t.Errorf("second pause changed stats: %+v -> %+v", before, after)
	}
	if got := balance(t, l, groupID, bob, alice); got != 150 {
		t.Errorf("second pause changed balance to %d", got)
	}

	// Unpausing an active group is also a successful no-op
	mustExec(t, l, alice, UnpauseGroup{GroupID: groupID})
	mustExec(t, l, alice, UnpauseGroup{GroupID: groupID})
}

func TestPause_Authorization(t *testing.T) {
	l := newTestLedger(t)
	groupID := tripWithBob(t, l)

	expectErr(t, l, bob, PauseGroup{GroupID: groupID}, ErrUnauthorized)
	expectErr(t, l, bob, UnpauseGroup{GroupID: groupID}, ErrUnauthorized)
	expectErr(t, l, alice, PauseGroup{GroupID: 99}, ErrNotFound)
}

func TestSettle_WhilePaused(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		l := newTestLedger(t)
		groupID := tripWithBob(t, l)
		mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})
		mustExec(t, l, bob, Deposit{Amount: 150})
		mustExec(t, l, alice, PauseGroup{GroupID: groupID})

		mustExec(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 150})
		if got := balance(t, l, groupID, bob, alice); got != 0 {
			t.Errorf("Balance(bob, alice) = %d, want 0", got)
		}
	})

	t.Run("rejected when policy closes it", func(t *testing.T) {
		l := newTestLedger(t, func(p *Policy) { p.SettleWhilePaused = false })
		groupID := tripWithBob(t, l)
		mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})
		mustExec(t, l, bob, Deposit{Amount: 150})
		mustExec(t, l, alice, PauseGroup{GroupID: groupID})

		expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 150}, ErrGroupPaused)
	})
}

func TestAddMember_Errors(t *testing.T) {
	l := newTestLedger(t)
	groupID := tripWithBob(t, l)

	expectErr(t, l, alice, AddMember{GroupID: groupID, Address: bob, Nickname: "Bob again"}, ErrAlreadyMember)
	expectErr(t, l, bob, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"}, ErrUnauthorized)
	expectErr(t, l, alice, AddMember{GroupID: 42, Address: carol, Nickname: "Carol"}, ErrNotFound)
	expectErr(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: ""}, ErrInvalidArgument)
}

func TestAddMember_MemberInvites(t *testing.T) {
	l := newTestLedger(t, func(p *Policy) { p.MemberInvites = true })
	groupID := tripWithBob(t, l)

	mustExec(t, l, bob, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"})

	// Outsiders still cannot invite
	expectErr(t, l, dave, AddMember{GroupID: groupID, Address: erin, Nickname: "Erin"}, ErrUnauthorized)
}

func TestAddresses_Canonicalized(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := mustExec(t, l, alice, CreateGroup{GroupName: "Trip", Nickname: "Alice"}).ID

	// An uppercase spelling names the same identity as the derived address
	shouted := "0X" + strings.ToUpper(strings.TrimPrefix(bob, "0x"))
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: shouted, Nickname: "Bob"})
	if _, err := l.GetMemberInfo(ctx, groupID, bob); err != nil {
		t.Fatalf("member stored under a non-canonical address: %v", err)
	}
	expectErr(t, l, alice, AddMember{GroupID: groupID, Address: bob, Nickname: "Bob"}, ErrAlreadyMember)
	expectErr(t, l, alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{bob, shouted}}, ErrInvalidParticipant)

	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, shouted}})
	if got := balance(t, l, groupID, bob, alice); got != 150 {
		t.Fatalf("Balance(bob, alice) = %d, want 150", got)
	}

	// The signing identity can settle and then be removed
	mustExec(t, l, bob, Deposit{Amount: 150})
	mustExec(t, l, bob, SettleDebt{GroupID: groupID, Creditor: "0x" + strings.ToUpper(alice[2:]), Amount: 150})
	mustExec(t, l, alice, RemoveMember{GroupID: groupID, Address: shouted})

	members, _ := l.GetGroupMembers(ctx, groupID)
	for _, m := range members {
		if m.Address != strings.ToLower(m.Address) {
			t.Errorf("non-canonical member row %q", m.Address)
		}
	}
}

func TestAddresses_Malformed(t *testing.T) {
	l := newTestLedger(t)
	groupID := tripWithBob(t, l)

	for _, addr := range []string{"Y", "0xabc", bob[2:], bob + "00", "0x" + strings.Repeat("g", 40)} {
		t.Run(addr, func(t *testing.T) {
			expectErr(t, l, alice, AddMember{GroupID: groupID, Address: addr, Nickname: "Nobody"}, ErrInvalidArgument)
			expectErr(t, l, alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{addr}}, ErrInvalidParticipant)
			expectErr(t, l, alice, SettleDebt{GroupID: groupID, Creditor: addr, Amount: 10}, ErrInvalidArgument)
			expectErr(t, l, addr, PauseGroup{GroupID: groupID}, ErrAuthenticationRequired)
		})
	}
}

func TestAddExpense_Errors(t *testing.T) {
	l := newTestLedger(t)
	groupID := tripWithBob(t, l)

	tests := []struct {
		name   string
		caller string
		op     AddExpense
		want   error
	}{
		{"non-member caller", carol, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{alice}}, ErrUnauthorized},
		{"unknown participant", alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{alice, carol}}, ErrInvalidParticipant},
		{"duplicate participant", alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{bob, bob}}, ErrInvalidParticipant},
		{"empty participants", alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10}, ErrInvalidArgument},
		{"zero amount", alice, AddExpense{GroupID: groupID, Description: "x", Amount: 0, Participants: []string{bob}}, ErrInvalidAmount},
		{"negative amount", alice, AddExpense{GroupID: groupID, Description: "x", Amount: -5, Participants: []string{bob}}, ErrInvalidArgument},
		{"missing description", alice, AddExpense{GroupID: groupID, Amount: 10, Participants: []string{bob}}, ErrInvalidArgument},
		{"non-hex receipt hash", alice, AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{bob}, ReceiptHash: "zz"}, ErrInvalidArgument},
		{"unknown group", alice, AddExpense{GroupID: 7, Description: "x", Amount: 10, Participants: []string{bob}}, ErrNotFound},
		{"unauthenticated", "", AddExpense{GroupID: groupID, Description: "x", Amount: 10, Participants: []string{bob}}, ErrAuthenticationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErr(t, l, tt.caller, tt.op, tt.want)
		})
	}

	// None of the failures left a trace
	stats, _ := l.GetGroupStats(context.Background(), groupID)
	if stats.TotalExpenses != 0 {
		t.Errorf("failed expenses were counted: %+v", stats)
	}
}

func TestAddExpense_Shares(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"})

	// 100 over three: the first participant takes the remainder
	res := mustExec(t, l, carol, AddExpense{GroupID: groupID, Description: "Pizza", Amount: 100, Participants: []string{alice, bob, carol}, ReceiptHash: "ab12"})
	expense, err := l.GetExpense(ctx, groupID, res.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	want := []int64{34, 33, 33}
	for i, s := range expense.Shares {
		if s != want[i] {
			t.Errorf("share[%d] = %d, want %d", i, s, want[i])
		}
	}
	if expense.Payer != carol || expense.ReceiptHash != "ab12" {
		t.Errorf("unexpected expense: %+v", expense)
	}
	if expense.Settled {
		t.Error("expected expense to be unsettled")
	}

	if got := balance(t, l, groupID, alice, carol); got != 34 {
		t.Errorf("Balance(X,Z) = %d, want 34", got)
	}
	if got := balance(t, l, groupID, bob, carol); got != 33 {
		t.Errorf("Balance(Y,Z) = %d, want 33", got)
	}

	// Payer outside the participant list is owed the whole amount
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Gift", Amount: 60, Participants: []string{bob, carol}})
	if got := balance(t, l, groupID, bob, alice); got != 30 {
		t.Errorf("Balance(bob, alice) = %d, want 30", got)
	}
	// 30 nets against alice's 34 owed to carol
	if got := balance(t, l, groupID, alice, carol); got != 4 {
		t.Errorf("Balance(X,Z) = %d, want 4", got)
	}
	if got := balance(t, l, groupID, carol, alice); got != 0 {
		t.Errorf("Balance(Z,X) = %d, want 0", got)
	}
	checkInvariants(t, l, groupID)
}

func TestAddExpense_NettingFlipsDirection(t *testing.T) {
	l := newTestLedger(t)
	groupID := tripWithBob(t, l)

	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 100, Participants: []string{alice, bob}})
	mustExec(t, l, bob, AddExpense{GroupID: groupID, Description: "Hotel", Amount: 300, Participants: []string{alice, bob}})

	if got := balance(t, l, groupID, bob, alice); got != 0 {
		t.Errorf("Balance(bob, alice) = %d, want 0", got)
	}
	if got := balance(t, l, groupID, alice, bob); got != 100 {
		t.Errorf("Balance(alice, bob) = %d, want 100", got)
	}
	checkInvariants(t, l, groupID)
}

func TestSettle_Errors(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})

	expectErr(t, l, alice, SettleDebt{GroupID: groupID, Creditor: bob, Amount: 10}, ErrNoSuchDebt)
	expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: bob, Amount: 10}, ErrInvalidArgument)
	expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 0}, ErrInvalidAmount)
	expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 151}, ErrOverpaymentRejected)
	expectErr(t, l, carol, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 10}, ErrUnauthorized)

	// No funds: the ledger rejects the transfer and nothing changes
	expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 100}, ErrInsufficientFunds)
	expectErr(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 100}, ErrLedgerRejected)
	if got := balance(t, l, groupID, bob, alice); got != 150 {
		t.Errorf("failed settlement changed balance to %d", got)
	}
	stats, _ := l.GetGroupStats(ctx, groupID)
	if stats.TotalSettlements != 0 {
		t.Errorf("failed settlement was counted: %+v", stats)
	}
}

func TestSettle_FullPaymentSettlesExpense(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})
	mustExec(t, l, bob, Deposit{Amount: 150})
	mustExec(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 150})

	expense, err := l.GetExpense(ctx, groupID, 1)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !expense.Settled {
		t.Error("expected expense to be settled")
	}

	creditors, _ := l.GetUserCreditors(ctx, groupID, bob)
	if len(creditors) != 0 {
		t.Errorf("expected no creditors, got %v", creditors)
	}
	checkInvariants(t, l, groupID)
}

func TestDeposit_DisabledWithoutFaucet(t *testing.T) {
	l := newTestLedger(t, func(p *Policy) { p.Faucet = false })
	expectErr(t, l, alice, Deposit{Amount: 10}, ErrUnauthorized)
}

func TestRemoveMember(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Dinner", Amount: 300, Participants: []string{alice, bob}})

	expectErr(t, l, alice, RemoveMember{GroupID: groupID, Address: bob}, ErrOutstandingBalance)
	expectErr(t, l, bob, RemoveMember{GroupID: groupID, Address: alice}, ErrUnauthorized)
	expectErr(t, l, alice, RemoveMember{GroupID: groupID, Address: alice}, ErrInvalidArgument)

	mustExec(t, l, bob, Deposit{Amount: 150})
	mustExec(t, l, bob, SettleDebt{GroupID: groupID, Creditor: alice, Amount: 150})
	mustExec(t, l, alice, RemoveMember{GroupID: groupID, Address: bob})

	// Removed members keep their row but cannot take part in new expenses
	member, err := l.GetMemberInfo(ctx, groupID, bob)
	if err != nil {
		t.Fatalf("GetMemberInfo failed: %v", err)
	}
	if member.Active {
		t.Error("expected bob to be inactive")
	}
	expectErr(t, l, alice, AddExpense{GroupID: groupID, Description: "Taxi", Amount: 20, Participants: []string{alice, bob}}, ErrInvalidParticipant)
	expectErr(t, l, bob, AddExpense{GroupID: groupID, Description: "Taxi", Amount: 20, Participants: []string{alice}}, ErrUnauthorized)

	groups, _ := l.GetUserGroups(ctx, bob)
	if len(groups) != 0 {
		t.Errorf("expected no active groups for bob, got %v", groups)
	}

	// Re-adding reactivates the same row
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: bob, Nickname: "Bobby"})
	member, _ = l.GetMemberInfo(ctx, groupID, bob)
	if !member.Active || member.Index != 1 || member.Nickname != "Bobby" {
		t.Errorf("unexpected reactivated member: %+v", member)
	}
	stats, _ := l.GetGroupStats(ctx, groupID)
	if stats.MemberCount != 2 {
		t.Errorf("reactivation changed member count to %d", stats.MemberCount)
	}
}

func TestCreditors_OrderedByAmount(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"})

	mustExec(t, l, bob, AddExpense{GroupID: groupID, Description: "Fuel", Amount: 40, Participants: []string{alice, bob}})
	mustExec(t, l, carol, AddExpense{GroupID: groupID, Description: "Hotel", Amount: 200, Participants: []string{alice, carol}})

	creditors, err := l.GetUserCreditors(ctx, groupID, alice)
	if err != nil {
		t.Fatalf("GetUserCreditors failed: %v", err)
	}
	if len(creditors) != 2 {
		t.Fatalf("expected 2 creditors, got %v", creditors)
	}
	if creditors[0].Address != carol || creditors[0].Amount != 100 || creditors[0].Nickname != "Carol" {
		t.Errorf("first creditor = %+v, want carol/100", creditors[0])
	}
	if creditors[1].Address != bob || creditors[1].Amount != 20 {
		t.Errorf("second creditor = %+v, want bob/20", creditors[1])
	}
}

func TestQueries_NotFound(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)

	if _, err := l.GetGroup(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetGroup: expected ErrNotFound, got %v", err)
	}
	if _, err := l.GetMemberInfo(ctx, groupID, carol); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMemberInfo: expected ErrNotFound, got %v", err)
	}
	if _, err := l.GetExpense(ctx, groupID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExpense: expected ErrNotFound, got %v", err)
	}
	if _, err := l.GetSettlement(ctx, groupID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSettlement: expected ErrNotFound, got %v", err)
	}
	if _, err := l.GetMemberAt(ctx, groupID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMemberAt: expected ErrNotFound, got %v", err)
	}

	m, err := l.GetMemberAt(ctx, groupID, 1)
	if err != nil || m.Address != bob {
		t.Errorf("GetMemberAt(1) = %+v, %v; want bob", m, err)
	}
}

func TestSuggestSettlements(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	mustExec(t, l, alice, AddMember{GroupID: groupID, Address: carol, Nickname: "Carol"})
	mustExec(t, l, alice, AddExpense{GroupID: groupID, Description: "Cabin", Amount: 300, Participants: []string{alice, bob, carol}})

	edges, err := l.SuggestSettlements(ctx, groupID)
	if err != nil {
		t.Fatalf("SuggestSettlements failed: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %v", edges)
	}
	for _, e := range edges {
		if e.To != alice || e.Amount != 100 {
			t.Errorf("unexpected edge %+v", e)
		}
	}
}

func TestHeight_CountsAppliedOps(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	groupID := tripWithBob(t, l)
	expectErr(t, l, bob, PauseGroup{GroupID: groupID}, ErrUnauthorized)

	height, err := l.Height(ctx)
	if err != nil {
		t.Fatalf("Height failed: %v", err)
	}
	if height != 2 {
		t.Errorf("height = %d, want 2 (failures do not advance it)", height)
	}
	group, _ := l.GetGroup(ctx, groupID)
	if group.CreatedAt != 1 {
		t.Errorf("CreatedAt = %d, want 1", group.CreatedAt)
	}
}

func TestErrorCodes_RoundTrip(t *testing.T) {
	errs := []error{
		ErrAuthenticationRequired, ErrUnauthorized, ErrNotFound, ErrGroupPaused,
		ErrInvalidArgument, ErrAlreadyMember, ErrNoSuchDebt, ErrOverpaymentRejected,
		ErrOutstandingBalance, ErrInsufficientFunds, ErrLedgerRejected, ErrStillPending,
	}
	for _, want := range errs {
		code := Code(want)
		if code == CodeInternal {
			t.Errorf("%v has no code", want)
			continue
		}
		got := FromCode(code, "detail: "+want.Error())
		if !errors.Is(got, want) {
			t.Errorf("FromCode(%s) = %v, does not match %v", code, got, want)
		}
	}

	if Code(ErrInvalidAmount) != CodeInvalidArgument {
		t.Errorf("ErrInvalidAmount code = %s", Code(ErrInvalidAmount))
	}
	if Code(errors.New("disk full")) != CodeInternal {
		t.Error("unknown errors should map to INTERNAL")
	}
	if IsDomain(errors.New("disk full")) || !IsDomain(ErrNoSuchDebt) {
		t.Error("IsDomain misclassified errors")
	}
}
