package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/kindnest/internal/ledger"
)

type createGroupCmd struct {
	nickname string
}

func (*createGroupCmd) Name() string     { return "create-group" }
func (*createGroupCmd) Synopsis() string { return "create a group with yourself as creator" }
func (*createGroupCmd) Usage() string {
	return `kindnest create-group -nick <nickname> <name>

  Creates a group and joins it as its first member.
`
}

func (c *createGroupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.nickname, "nick", "", "Your nickname in the group.")
}

func (c *createGroupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.nickname == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.CreateGroup{GroupName: f.Arg(0), Nickname: c.nickname})
}

type addMemberCmd struct {
	nickname string
}

func (*addMemberCmd) Name() string     { return "add-member" }
func (*addMemberCmd) Synopsis() string { return "add an address to a group" }
func (*addMemberCmd) Usage() string {
	return `kindnest add-member -nick <nickname> <group> <address>

  Adds a member. A removed member is reactivated at their old position.
`
}

func (c *addMemberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.nickname, "nick", "", "Nickname of the new member.")
}

func (c *addMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil || f.NArg() != 2 || c.nickname == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.AddMember{GroupID: groupID, Address: f.Arg(1), Nickname: c.nickname})
}

type removeMemberCmd struct{}

func (*removeMemberCmd) Name() string     { return "remove-member" }
func (*removeMemberCmd) Synopsis() string { return "deactivate a member with no open balances" }
func (*removeMemberCmd) Usage() string {
	return "kindnest remove-member <group> <address>\n"
}
func (*removeMemberCmd) SetFlags(*flag.FlagSet) {}

func (c *removeMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil || f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.RemoveMember{GroupID: groupID, Address: f.Arg(1)})
}

type pauseCmd struct{}

func (*pauseCmd) Name() string           { return "pause" }
func (*pauseCmd) Synopsis() string       { return "freeze new members and expenses in a group" }
func (*pauseCmd) Usage() string          { return "kindnest pause <group>\n" }
func (*pauseCmd) SetFlags(*flag.FlagSet) {}

func (c *pauseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.PauseGroup{GroupID: groupID})
}

type unpauseCmd struct{}

func (*unpauseCmd) Name() string           { return "unpause" }
func (*unpauseCmd) Synopsis() string       { return "reopen a paused group" }
func (*unpauseCmd) Usage() string          { return "kindnest unpause <group>\n" }
func (*unpauseCmd) SetFlags(*flag.FlagSet) {}

func (c *unpauseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.UnpauseGroup{GroupID: groupID})
}

type addExpenseCmd struct {
	amount       int64
	description  string
	participants string
	receipt      string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense you paid" }
func (*addExpenseCmd) Usage() string {
	return `kindnest add-expense -amount <n> -desc <text> [-with <addr,addr,...>] [-receipt <hex>] <group>

  Splits the amount equally between the participants; the first
  participants absorb the remainder. Without -with, every active member
  participates.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.amount, "amount", 0, "Total amount in minor units.")
	f.StringVar(&c.description, "desc", "", "What the expense was for.")
	f.StringVar(&c.participants, "with", "", "Comma-separated participant addresses.")
	f.StringVar(&c.receipt, "receipt", "", "Hash of a receipt document.")
}

func (c *addExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil || c.description == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}

	participants := splitList(c.participants)
	if len(participants) == 0 {
		members, err := a.remote.GetGroupMembers(ctx, groupID)
		if err != nil {
			return fail(err)
		}
		for _, m := range members {
			if m.Active {
				participants = append(participants, m.Address)
			}
		}
	}

	return a.submit(ctx, ledger.AddExpense{
		GroupID:      groupID,
		Description:  c.description,
		Amount:       c.amount,
		Participants: participants,
		ReceiptHash:  c.receipt,
	})
}

type settleCmd struct {
	creditor string
	amount   int64
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "pay back a creditor" }
func (*settleCmd) Usage() string {
	return `kindnest settle [-to <address>] [-amount <n>] <group>

  Transfers funds from your account to a creditor and reduces your debt.
  Without -to, pays the creditor you owe the most. Without -amount, pays
  the full debt.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.creditor, "to", "", "Creditor address.")
	f.Int64Var(&c.amount, "amount", 0, "Amount in minor units.")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}

	creditor, amount := c.creditor, c.amount
	if creditor == "" {
		creditors, err := a.remote.GetUserCreditors(ctx, groupID, a.address)
		if err != nil {
			return fail(err)
		}
		if len(creditors) == 0 {
			fmt.Println("nothing to settle")
			return subcommands.ExitSuccess
		}
		// Creditors come largest first
		creditor = creditors[0].Address
		if amount == 0 {
			amount = creditors[0].Amount
		}
	}
	if amount == 0 {
		owed, err := a.remote.GetBalance(ctx, groupID, a.address, creditor)
		if err != nil {
			return fail(err)
		}
		amount = owed
	}

	return a.submit(ctx, ledger.SettleDebt{GroupID: groupID, Creditor: creditor, Amount: amount})
}

type depositCmd struct {
	amount int64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "mint funds into your account (faucet nodes only)" }
func (*depositCmd) Usage() string {
	return "kindnest deposit -amount <n>\n"
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.amount, "amount", 0, "Amount in minor units.")
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	return a.submit(ctx, ledger.Deposit{Amount: c.amount})
}
