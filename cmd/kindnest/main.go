// Command kindnest is the command-line client of a kindnest node.
//
// It keeps an ed25519 key (KINDNEST_KEY_FILE) and a cached session token
// next to it. Mutating commands submit an operation and wait for it to be
// confirmed; queries are read directly.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/kindnest/pkg/logging"
)

func main() {
	logging.Setup()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// register adds every command to commander.
func register(commander *subcommands.Commander) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&keygenCmd{}, "identity")
	commander.Register(&loginCmd{}, "identity")
	commander.Register(&whoamiCmd{}, "identity")

	commander.Register(&createGroupCmd{}, "groups")
	commander.Register(&addMemberCmd{}, "groups")
	commander.Register(&removeMemberCmd{}, "groups")
	commander.Register(&pauseCmd{}, "groups")
	commander.Register(&unpauseCmd{}, "groups")

	commander.Register(&addExpenseCmd{}, "money")
	commander.Register(&settleCmd{}, "money")
	commander.Register(&depositCmd{}, "money")

	commander.Register(newGroupCmd(), "queries")
	commander.Register(&groupsCmd{}, "queries")
	commander.Register(newMembersCmd(), "queries")
	commander.Register(newBalanceCmd(), "queries")
	commander.Register(newCreditorsCmd(), "queries")
	commander.Register(newExpensesCmd(), "queries")
	commander.Register(newSettlementsCmd(), "queries")
	commander.Register(newStatsCmd(), "queries")
	commander.Register(newSuggestCmd(), "queries")
	commander.Register(&accountCmd{}, "queries")
	commander.Register(&txCmd{}, "queries")
	commander.Register(&heightCmd{}, "queries")
}
