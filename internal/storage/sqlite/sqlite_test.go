package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/kindnest/internal/models"
	"github.com/mmynk/kindnest/internal/storage"
	"github.com/mmynk/kindnest/internal/storage/storagetest"
)

func newTestStore(t *testing.T, dbPath string) *SQLiteStore {
	t.Helper()
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	})
}

func TestSQLiteStore_Persistence(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "kindnest-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "ledger.db")
	ctx := context.Background()

	store := newTestStore(t, dbPath)
	err = store.Update(ctx, func(tx storage.Tx) error {
		if err := tx.SetHeight(3); err != nil {
			return err
		}
		if err := tx.PutGroup(&models.Group{ID: 1, Name: "Trip", Creator: "X", CreatedAt: 1, MemberCount: 1}); err != nil {
			return err
		}
		if err := tx.PutMember(&models.Member{GroupID: 1, Address: "X", Nickname: "Alice", Active: true, TotalOwed: 150}); err != nil {
			return err
		}
		return tx.PutAccount("X", 42)
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening runs migrations again and keeps the data
	store = newTestStore(t, dbPath)
	defer store.Close()

	err = store.View(ctx, func(tx storage.ReadTx) error {
		h, err := tx.Height()
		if err != nil {
			return err
		}
		if h != 3 {
			t.Errorf("height = %d, want 3", h)
		}
		m, err := tx.GetMember(1, "X")
		if err != nil {
			return err
		}
		if m.Nickname != "Alice" || m.TotalOwed != 150 || !m.Active {
			t.Errorf("unexpected member after reopen: %+v", m)
		}
		if a, _ := tx.GetAccount("X"); a != 42 {
			t.Errorf("account = %d, want 42", a)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
}

func TestSQLiteStore_ForeignKeys(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "fk.db"))
	defer store.Close()

	// Members require their group
	err := store.Update(context.Background(), func(tx storage.Tx) error {
		return tx.PutMember(&models.Member{GroupID: 9, Address: "X", Nickname: "X", Active: true})
	})
	if err == nil {
		t.Error("expected member without group to be rejected")
	}
}
