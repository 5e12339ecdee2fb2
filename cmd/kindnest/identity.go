package main

import (
	"context"
	"crypto/ed25519"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/kindnest/internal/auth"
)

type keygenCmd struct {
	force bool
}

func (*keygenCmd) Name() string     { return "keygen" }
func (*keygenCmd) Synopsis() string { return "create a signing key and print its address" }
func (*keygenCmd) Usage() string {
	return `kindnest keygen [-force]

  Writes a new ed25519 key to KINDNEST_KEY_FILE. The address derived from
  it identifies you in every group.
`
}

func (c *keygenCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Overwrite an existing key.")
}

func (c *keygenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(false)
	if err != nil {
		return fail(err)
	}
	if _, err := os.Stat(a.keyPath); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: key %s already exists; use -force to replace it\n", a.keyPath)
		return subcommands.ExitFailure
	}

	key, err := auth.GenerateKey()
	if err != nil {
		return fail(err)
	}
	if err := auth.SaveKey(a.keyPath, key); err != nil {
		return fail(err)
	}
	os.Remove(tokenPath(a.keyPath))

	fmt.Println(auth.AddressFromPublicKey(key.Public().(ed25519.PublicKey)))
	return subcommands.ExitSuccess
}

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in to the node and cache a session token" }
func (*loginCmd) Usage() string {
	return `kindnest login

  Signs a challenge from the node with your key. Mutating commands renew
  the session automatically when it expires.
`
}

func (*loginCmd) SetFlags(*flag.FlagSet) {}

func (*loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	if err := a.login(ctx); err != nil {
		return fail(err)
	}
	fmt.Printf("logged in as %s\n", a.address)
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string           { return "whoami" }
func (*whoamiCmd) Synopsis() string       { return "print the address of your key" }
func (*whoamiCmd) Usage() string          { return "kindnest whoami\n" }
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (*whoamiCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(true)
	if err != nil {
		return fail(err)
	}
	fmt.Println(a.address)
	return subcommands.ExitSuccess
}
