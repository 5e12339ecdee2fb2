package main

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/client"
	"github.com/mmynk/kindnest/internal/config"
	"github.com/mmynk/kindnest/internal/ledger"
)

// app is the state shared by every command.
type app struct {
	cfg     config.CLI
	keyPath string
	key     ed25519.PrivateKey
	address string
	remote  *client.Remote
	watcher *client.Watcher
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

func tokenPath(keyPath string) string { return keyPath + ".token" }

// newApp loads the configuration. With withKey it also loads the signing
// key and any cached session token.
func newApp(withKey bool) (*app, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}
	keyPath, err := expandHome(cfg.KeyFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, keyPath: keyPath}
	a.remote = client.New(http.DefaultClient, cfg.URL)
	a.watcher = client.NewWatcher(a.remote, cfg.Wait)

	if !withKey {
		return a, nil
	}
	a.key, err = auth.LoadKey(keyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no key at %s; run 'kindnest keygen' first", keyPath)
	}
	if err != nil {
		return nil, err
	}
	a.address = auth.AddressFromPublicKey(a.key.Public().(ed25519.PublicKey))

	if token, err := os.ReadFile(tokenPath(keyPath)); err == nil {
		a.remote.SetToken(strings.TrimSpace(string(token)))
	}
	return a, nil
}

// login signs in with the key and caches the token.
func (a *app) login(ctx context.Context) error {
	token, _, err := a.remote.Login(ctx, a.key)
	if err != nil {
		return err
	}
	return os.WriteFile(tokenPath(a.keyPath), []byte(token+"\n"), 0600)
}

// submit sends op and waits for its confirmation. A rejected session is
// renewed once.
func (a *app) submit(ctx context.Context, op ledger.Op) subcommands.ExitStatus {
	txID, err := a.remote.Submit(ctx, op)
	if errors.Is(err, ledger.ErrAuthenticationRequired) {
		if err = a.login(ctx); err == nil {
			txID, err = a.remote.Submit(ctx, op)
		}
	}
	if err != nil {
		return fail(err)
	}
	fmt.Printf("submitted %s (%s)\n", op.Name(), txID)

	receipt, err := a.watcher.Wait(ctx, txID)
	if errors.Is(err, ledger.ErrStillPending) {
		fmt.Fprintf(os.Stderr, "still pending after %s; check with 'kindnest tx %s'\n", a.cfg.Wait, txID)
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}

	fmt.Printf("confirmed at height %d", receipt.Height)
	if receipt.ResultID != 0 {
		fmt.Printf(", id %d", receipt.ResultID)
	}
	fmt.Println()
	return subcommands.ExitSuccess
}

// fail prints err with its ledger code and returns a failure status.
func fail(err error) subcommands.ExitStatus {
	if code := ledger.Code(err); code != ledger.CodeInternal {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}

// groupArg reads the group ID from the first positional argument.
func groupArg(args []string) (uint64, error) {
	if len(args) < 1 {
		return 0, errors.New("missing group id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid group id %q", args[0])
	}
	return id, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
