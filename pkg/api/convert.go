package api

import "github.com/mmynk/kindnest/internal/models"

// Wire entities mirror the model structs field for field, so conversions
// are plain type conversions.

func FromGroup(g *models.Group) *Group {
	out := Group(*g)
	return &out
}

func (g *Group) Model() *models.Group {
	out := models.Group(*g)
	return &out
}

func FromGroupStats(s models.GroupStats) *GroupStats {
	out := GroupStats(s)
	return &out
}

func (s *GroupStats) Model() models.GroupStats {
	return models.GroupStats(*s)
}

func FromMember(m *models.Member) *Member {
	out := Member(*m)
	return &out
}

func (m *Member) Model() *models.Member {
	out := models.Member(*m)
	return &out
}

func FromMembers(ms []*models.Member) []*Member {
	out := make([]*Member, len(ms))
	for i, m := range ms {
		out[i] = FromMember(m)
	}
	return out
}

func FromExpense(e *models.Expense) *Expense {
	out := Expense(*e)
	return &out
}

func (e *Expense) Model() *models.Expense {
	out := models.Expense(*e)
	return &out
}

func FromExpenses(es []*models.Expense) []*Expense {
	out := make([]*Expense, len(es))
	for i, e := range es {
		out[i] = FromExpense(e)
	}
	return out
}

func FromSettlement(s *models.Settlement) *Settlement {
	out := Settlement(*s)
	return &out
}

func (s *Settlement) Model() *models.Settlement {
	out := models.Settlement(*s)
	return &out
}

func FromSettlements(ss []*models.Settlement) []*Settlement {
	out := make([]*Settlement, len(ss))
	for i, s := range ss {
		out[i] = FromSettlement(s)
	}
	return out
}

func FromCreditors(cs []models.Creditor) []*Creditor {
	out := make([]*Creditor, len(cs))
	for i, c := range cs {
		cc := Creditor(c)
		out[i] = &cc
	}
	return out
}

func (c *Creditor) Model() models.Creditor {
	return models.Creditor(*c)
}

func FromDebtEdges(es []models.DebtEdge) []*Transfer {
	out := make([]*Transfer, len(es))
	for i, e := range es {
		t := Transfer(e)
		out[i] = &t
	}
	return out
}

func (t *Transfer) Model() models.DebtEdge {
	return models.DebtEdge(*t)
}

func FromReceipt(r *models.Receipt) *Receipt {
	return &Receipt{
		TxID:         r.TxID,
		Op:           r.Op,
		Caller:       r.Caller,
		GroupID:      r.GroupID,
		Status:       string(r.Status),
		ResultID:     r.ResultID,
		ErrorCode:    r.ErrorCode,
		ErrorMessage: r.ErrorMessage,
		Height:       r.Height,
		SubmittedAt:  r.SubmittedAt,
		ConfirmedAt:  r.ConfirmedAt,
	}
}

func (r *Receipt) Model() *models.Receipt {
	return &models.Receipt{
		TxID:         r.TxID,
		Op:           r.Op,
		Caller:       r.Caller,
		GroupID:      r.GroupID,
		Status:       models.TxStatus(r.Status),
		ResultID:     r.ResultID,
		ErrorCode:    r.ErrorCode,
		ErrorMessage: r.ErrorMessage,
		Height:       r.Height,
		SubmittedAt:  r.SubmittedAt,
		ConfirmedAt:  r.ConfirmedAt,
	}
}
