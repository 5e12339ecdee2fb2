package api

// Entities

type Group struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Creator         string `json:"creator"`
	CreatedAt       uint64 `json:"createdAt"`
	Paused          bool   `json:"paused"`
	MemberCount     uint64 `json:"memberCount"`
	ExpenseCount    uint64 `json:"expenseCount"`
	SettlementCount uint64 `json:"settlementCount"`
}

type GroupStats struct {
	MemberCount      uint64 `json:"memberCount"`
	TotalExpenses    uint64 `json:"totalExpenses"`
	TotalSettlements uint64 `json:"totalSettlements"`
	Paused           bool   `json:"paused"`
}

type Member struct {
	GroupID    uint64 `json:"groupId"`
	Address    string `json:"address"`
	Nickname   string `json:"nickname"`
	Index      uint64 `json:"index"`
	Active     bool   `json:"active"`
	TotalOwed  int64  `json:"totalOwed"`
	TotalOwing int64  `json:"totalOwing"`
}

type Expense struct {
	GroupID      uint64   `json:"groupId"`
	ID           uint64   `json:"id"`
	Description  string   `json:"description"`
	TotalAmount  int64    `json:"totalAmount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Shares       []int64  `json:"shares"`
	ReceiptHash  string   `json:"receiptHash,omitempty"`
	Timestamp    int64    `json:"timestamp"`
	Settled      bool     `json:"settled"`
}

type Settlement struct {
	GroupID   uint64 `json:"groupId"`
	ID        uint64 `json:"id"`
	Debtor    string `json:"debtor"`
	Creditor  string `json:"creditor"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

type Creditor struct {
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
	Amount   int64  `json:"amount"`
}

// Transfer is one suggested payment.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type Receipt struct {
	TxID         string `json:"txId"`
	Op           string `json:"op"`
	Caller       string `json:"caller"`
	GroupID      uint64 `json:"groupId,omitempty"`
	Status       string `json:"status"`
	ResultID     uint64 `json:"resultId,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Height       uint64 `json:"height"`
	SubmittedAt  int64  `json:"submittedAt"`
	ConfirmedAt  int64  `json:"confirmedAt,omitempty"`
}

// AuthService

type ChallengeRequest struct {
	Address string `json:"address"`
}

type ChallengeResponse struct {
	Nonce string `json:"nonce"`
	// Message is the exact text to sign.
	Message   string `json:"message"`
	ExpiresAt int64  `json:"expiresAt"`
}

type LoginRequest struct {
	Address string `json:"address"`
	// PublicKey and Signature are hex encoded.
	PublicKey string `json:"publicKey"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt int64  `json:"expiresAt"`
}

// LedgerService

type CreateGroupRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

type AddMemberRequest struct {
	GroupID  uint64 `json:"groupId"`
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
}

type RemoveMemberRequest struct {
	GroupID uint64 `json:"groupId"`
	Address string `json:"address"`
}

type AddExpenseRequest struct {
	GroupID      uint64   `json:"groupId"`
	Description  string   `json:"description"`
	Amount       int64    `json:"amount"`
	Participants []string `json:"participants"`
	ReceiptHash  string   `json:"receiptHash,omitempty"`
}

type SettleDebtRequest struct {
	GroupID  uint64 `json:"groupId"`
	Creditor string `json:"creditor"`
	Amount   int64  `json:"amount"`
}

type PauseGroupRequest struct {
	GroupID uint64 `json:"groupId"`
}

type UnpauseGroupRequest struct {
	GroupID uint64 `json:"groupId"`
}

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

// SubmitResponse answers every mutation. The operation is pending until
// its transaction resolves.
type SubmitResponse struct {
	TxID string `json:"txId"`
}

// QueryService

type GetTransactionRequest struct {
	TxID string `json:"txId"`
}

type GetTransactionResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type GetGroupRequest struct {
	GroupID uint64 `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type GetTotalGroupsRequest struct{}

type GetTotalGroupsResponse struct {
	Total uint64 `json:"total"`
}

type GetGroupStatsRequest struct {
	GroupID uint64 `json:"groupId"`
}

type GetGroupStatsResponse struct {
	Stats *GroupStats `json:"stats"`
}

type GetMemberInfoRequest struct {
	GroupID uint64 `json:"groupId"`
	Address string `json:"address"`
}

type GetMemberAtIndexRequest struct {
	GroupID uint64 `json:"groupId"`
	Index   uint64 `json:"index"`
}

type MemberResponse struct {
	Member *Member `json:"member"`
}

type GetNetBalanceRequest struct {
	GroupID uint64 `json:"groupId"`
	Address string `json:"address"`
}

type GetBalanceRequest struct {
	GroupID  uint64 `json:"groupId"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type GetAccountRequest struct {
	Address string `json:"address"`
}

// AmountResponse answers queries that return a single amount.
type AmountResponse struct {
	Amount int64 `json:"amount"`
}

type GetGroupMembersRequest struct {
	GroupID uint64 `json:"groupId"`
}

type GetGroupMembersResponse struct {
	Members []*Member `json:"members"`
}

type GetUserCreditorsRequest struct {
	GroupID uint64 `json:"groupId"`
	Address string `json:"address"`
}

type GetUserCreditorsResponse struct {
	Creditors []*Creditor `json:"creditors"`
}

type GetExpenseRequest struct {
	GroupID   uint64 `json:"groupId"`
	ExpenseID uint64 `json:"expenseId"`
}

type ExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID uint64 `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetSettlementRequest struct {
	GroupID      uint64 `json:"groupId"`
	SettlementID uint64 `json:"settlementId"`
}

type SettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type GetAllSettlementsRequest struct {
	GroupID uint64 `json:"groupId"`
}

type GetAllSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type GetUserGroupsRequest struct {
	Address string `json:"address"`
}

type GetUserGroupsResponse struct {
	GroupIDs []uint64 `json:"groupIds"`
}

type SuggestSettlementsRequest struct {
	GroupID uint64 `json:"groupId"`
}

type SuggestSettlementsResponse struct {
	Transfers []*Transfer `json:"transfers"`
}

type GetHeightRequest struct{}

type GetHeightResponse struct {
	Height uint64 `json:"height"`
}
