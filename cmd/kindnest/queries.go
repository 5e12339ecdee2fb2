package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func formatTime(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).Format(time.DateTime)
}

// queryCmd is a read-only command over one group.
type queryCmd struct {
	name, synopsis, usage string
	run                   func(ctx context.Context, a *app, groupID uint64, args []string) error
}

func (c *queryCmd) Name() string           { return c.name }
func (c *queryCmd) Synopsis() string       { return c.synopsis }
func (c *queryCmd) Usage() string          { return c.usage }
func (c *queryCmd) SetFlags(*flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupID, err := groupArg(f.Args())
	if err != nil {
		fmt.Fprint(os.Stderr, c.usage)
		return subcommands.ExitUsageError
	}
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}
	if err := c.run(ctx, a, groupID, f.Args()[1:]); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// addressArg returns args[i] if present, otherwise the address of the local key.
func addressArg(args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	a, err := newApp(true)
	if err != nil {
		return "", err
	}
	return a.address, nil
}

func newGroupCmd() *queryCmd {
	return &queryCmd{
		name:     "group",
		synopsis: "show a group and its counters",
		usage:    "kindnest group <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			g, err := a.remote.GetGroup(ctx, groupID)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintf(w, "id\t%d\n", g.ID)
			fmt.Fprintf(w, "name\t%s\n", g.Name)
			fmt.Fprintf(w, "creator\t%s\n", g.Creator)
			fmt.Fprintf(w, "created at height\t%d\n", g.CreatedAt)
			fmt.Fprintf(w, "paused\t%t\n", g.Paused)
			fmt.Fprintf(w, "members\t%d\n", g.MemberCount)
			fmt.Fprintf(w, "expenses\t%d\n", g.ExpenseCount)
			fmt.Fprintf(w, "settlements\t%d\n", g.SettlementCount)
			return w.Flush()
		},
	}
}

func newMembersCmd() *queryCmd {
	return &queryCmd{
		name:     "members",
		synopsis: "list the members of a group with their totals",
		usage:    "kindnest members <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			members, err := a.remote.GetGroupMembers(ctx, groupID)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "#\tNICKNAME\tADDRESS\tOWED\tOWING\tNET\tACTIVE")
			for _, m := range members {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%t\n",
					m.Index, m.Nickname, m.Address, m.TotalOwed, m.TotalOwing, m.NetBalance(), m.Active)
			}
			return w.Flush()
		},
	}
}

func newBalanceCmd() *queryCmd {
	return &queryCmd{
		name:     "balance",
		synopsis: "show what a debtor owes a creditor, or a member's net position",
		usage: `kindnest balance <group> [<address>]
kindnest balance <group> <debtor> <creditor>

  With one address (default: yours), prints its net balance: positive
  when owed money. With two, prints the pairwise debt.
`,
		run: func(ctx context.Context, a *app, groupID uint64, args []string) error {
			if len(args) >= 2 {
				owed, err := a.remote.GetBalance(ctx, groupID, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Println(owed)
				return nil
			}
			address, err := addressArg(args, 0)
			if err != nil {
				return err
			}
			net, err := a.remote.GetNetBalance(ctx, groupID, address)
			if err != nil {
				return err
			}
			fmt.Println(net)
			return nil
		},
	}
}

func newCreditorsCmd() *queryCmd {
	return &queryCmd{
		name:     "creditors",
		synopsis: "list who a member owes, largest first",
		usage:    "kindnest creditors <group> [<address>]\n",
		run: func(ctx context.Context, a *app, groupID uint64, args []string) error {
			address, err := addressArg(args, 0)
			if err != nil {
				return err
			}
			creditors, err := a.remote.GetUserCreditors(ctx, groupID, address)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "NICKNAME\tADDRESS\tAMOUNT")
			for _, c := range creditors {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.Nickname, c.Address, c.Amount)
			}
			return w.Flush()
		},
	}
}

func newExpensesCmd() *queryCmd {
	return &queryCmd{
		name:     "expenses",
		synopsis: "list the expenses of a group",
		usage:    "kindnest expenses <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			expenses, err := a.remote.ListExpenses(ctx, groupID)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tDESCRIPTION\tAMOUNT\tPAYER\tPARTICIPANTS\tSETTLED\tAT")
			for _, e := range expenses {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%t\t%s\n",
					e.ID, e.Description, e.TotalAmount, e.Payer, len(e.Participants), e.Settled, formatTime(e.Timestamp))
			}
			return w.Flush()
		},
	}
}

func newSettlementsCmd() *queryCmd {
	return &queryCmd{
		name:     "settlements",
		synopsis: "list the settlements of a group",
		usage:    "kindnest settlements <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			settlements, err := a.remote.GetAllSettlements(ctx, groupID)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tDEBTOR\tCREDITOR\tAMOUNT\tAT")
			for _, s := range settlements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", s.ID, s.Debtor, s.Creditor, s.Amount, formatTime(s.Timestamp))
			}
			return w.Flush()
		},
	}
}

func newStatsCmd() *queryCmd {
	return &queryCmd{
		name:     "stats",
		synopsis: "show the counters of a group",
		usage:    "kindnest stats <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			s, err := a.remote.GetGroupStats(ctx, groupID)
			if err != nil {
				return err
			}
			fmt.Printf("members %d, expenses %d, settlements %d, paused %t\n",
				s.MemberCount, s.TotalExpenses, s.TotalSettlements, s.Paused)
			return nil
		},
	}
}

func newSuggestCmd() *queryCmd {
	return &queryCmd{
		name:     "suggest",
		synopsis: "propose a short list of payments that clears the group",
		usage:    "kindnest suggest <group>\n",
		run: func(ctx context.Context, a *app, groupID uint64, _ []string) error {
			plan, err := a.remote.SuggestSettlements(ctx, groupID)
			if err != nil {
				return err
			}
			if len(plan) == 0 {
				fmt.Println("all square")
				return nil
			}
			w := newTable()
			fmt.Fprintln(w, "FROM\tTO\tAMOUNT")
			for _, t := range plan {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.From, t.To, t.Amount)
			}
			return w.Flush()
		},
	}
}

type groupsCmd struct{}

func (*groupsCmd) Name() string           { return "groups" }
func (*groupsCmd) Synopsis() string       { return "list the groups an address belongs to" }
func (*groupsCmd) Usage() string          { return "kindnest groups [<address>]\n" }
func (*groupsCmd) SetFlags(*flag.FlagSet) {}

func (*groupsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}
	address, err := addressArg(f.Args(), 0)
	if err != nil {
		return fail(err)
	}
	ids, err := a.remote.GetUserGroups(ctx, address)
	if err != nil {
		return fail(err)
	}
	total, err := a.remote.GetTotalGroups(ctx)
	if err != nil {
		return fail(err)
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	fmt.Printf("%s (of %d groups)\n", strings.Join(parts, " "), total)
	return subcommands.ExitSuccess
}

type accountCmd struct{}

func (*accountCmd) Name() string           { return "account" }
func (*accountCmd) Synopsis() string       { return "show the spendable balance of an address" }
func (*accountCmd) Usage() string          { return "kindnest account [<address>]\n" }
func (*accountCmd) SetFlags(*flag.FlagSet) {}

func (*accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}
	address, err := addressArg(f.Args(), 0)
	if err != nil {
		return fail(err)
	}
	balance, err := a.remote.GetAccount(ctx, address)
	if err != nil {
		return fail(err)
	}
	fmt.Println(balance)
	return subcommands.ExitSuccess
}

type txCmd struct {
	wait bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "show the receipt of a submitted transaction" }
func (*txCmd) Usage() string {
	return "kindnest tx [-wait] <tx-id>\n"
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.wait, "wait", false, "Wait for the transaction to resolve.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}

	r, err := a.remote.Receipt(ctx, f.Arg(0))
	if err == nil && c.wait && !r.Final() {
		var waitErr error
		if r, waitErr = a.watcher.Wait(ctx, f.Arg(0)); r == nil {
			err = waitErr
		}
	}
	if err != nil {
		return fail(err)
	}

	w := newTable()
	fmt.Fprintf(w, "tx\t%s\n", r.TxID)
	fmt.Fprintf(w, "op\t%s\n", r.Op)
	fmt.Fprintf(w, "caller\t%s\n", r.Caller)
	fmt.Fprintf(w, "status\t%s\n", r.Status)
	if r.GroupID != 0 {
		fmt.Fprintf(w, "group\t%d\n", r.GroupID)
	}
	if r.ResultID != 0 {
		fmt.Fprintf(w, "result\t%d\n", r.ResultID)
	}
	if r.ErrorCode != "" {
		fmt.Fprintf(w, "error\t[%s] %s\n", r.ErrorCode, r.ErrorMessage)
	}
	fmt.Fprintf(w, "height\t%d\n", r.Height)
	fmt.Fprintf(w, "submitted\t%s\n", formatTime(r.SubmittedAt))
	fmt.Fprintf(w, "confirmed\t%s\n", formatTime(r.ConfirmedAt))
	w.Flush()
	return subcommands.ExitSuccess
}

type heightCmd struct{}

func (*heightCmd) Name() string           { return "height" }
func (*heightCmd) Synopsis() string       { return "print the number of applied operations" }
func (*heightCmd) Usage() string          { return "kindnest height\n" }
func (*heightCmd) SetFlags(*flag.FlagSet) {}

func (*heightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}
	height, err := a.remote.Height(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Println(height)
	return subcommands.ExitSuccess
}
