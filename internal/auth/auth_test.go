package auth

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAddressFromPublicKey(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	pub := priv.Public().(ed25519.PublicKey)

	addr := AddressFromPublicKey(pub)
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
		t.Errorf("unexpected address format %q", addr)
	}
	if AddressFromPublicKey(pub) != addr {
		t.Error("address derivation is not deterministic")
	}

	other, _ := GenerateKey()
	if AddressFromPublicKey(other.Public().(ed25519.PublicKey)) == addr {
		t.Error("distinct keys derived the same address")
	}
}

func TestAddressFromPublicKey_KnownVector(t *testing.T) {
	// Keccak-256 of 32 zero bytes
	addr := AddressFromPublicKey(make(ed25519.PublicKey, ed25519.PublicKeySize))
	if addr != "0x88386fc84ba6bc95484008f6362f93160ef3e563" {
		t.Errorf("address = %s", addr)
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "id")
	priv, _ := GenerateKey()

	if err := SaveKey(path, priv); err != nil {
		t.Fatalf("SaveKey failed: %v", err)
	}
	loaded, err := LoadKey(path)
	if err != nil {
		t.Fatalf("LoadKey failed: %v", err)
	}
	if !loaded.Equal(priv) {
		t.Error("loaded key differs")
	}

	pub, err := DecodePublicKey(hex.EncodeToString(priv.Public().(ed25519.PublicKey)))
	if err != nil {
		t.Fatalf("DecodePublicKey failed: %v", err)
	}
	if !pub.Equal(priv.Public()) {
		t.Error("decoded public key differs")
	}
	if _, err := DecodePublicKey("abcd"); !errors.Is(err, ErrMalformedKey) {
		t.Errorf("expected ErrMalformedKey, got %v", err)
	}
}

func TestKeyAuthenticator(t *testing.T) {
	ctx := context.Background()
	priv, _ := GenerateKey()
	pub := priv.Public().(ed25519.PublicKey)
	addr := AddressFromPublicKey(pub)

	t.Run("valid signature", func(t *testing.T) {
		a := NewKeyAuthenticator(time.Minute)
		nonce, expiresAt, err := a.Challenge(ctx, addr)
		if err != nil {
			t.Fatalf("Challenge failed: %v", err)
		}
		if !expiresAt.After(time.Now()) {
			t.Error("challenge already expired")
		}
		sig := ed25519.Sign(priv, ChallengeMessage(nonce))
		if err := a.Authenticate(ctx, addr, pub, nonce, sig); err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		// Challenges are single-use
		if err := a.Authenticate(ctx, addr, pub, nonce, sig); !errors.Is(err, ErrUnknownChallenge) {
			t.Errorf("replay: expected ErrUnknownChallenge, got %v", err)
		}
	})

	t.Run("wrong signer", func(t *testing.T) {
		a := NewKeyAuthenticator(time.Minute)
		nonce, _, _ := a.Challenge(ctx, addr)
		other, _ := GenerateKey()
		sig := ed25519.Sign(other, ChallengeMessage(nonce))
		if err := a.Authenticate(ctx, addr, pub, nonce, sig); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("key for another address", func(t *testing.T) {
		a := NewKeyAuthenticator(time.Minute)
		other, _ := GenerateKey()
		otherPub := other.Public().(ed25519.PublicKey)
		nonce, _, _ := a.Challenge(ctx, addr)
		sig := ed25519.Sign(other, ChallengeMessage(nonce))
		if err := a.Authenticate(ctx, addr, otherPub, nonce, sig); !errors.Is(err, ErrAddressMismatch) {
			t.Errorf("expected ErrAddressMismatch, got %v", err)
		}
	})

	t.Run("expired challenge", func(t *testing.T) {
		a := NewKeyAuthenticator(time.Minute)
		base := time.Now()
		a.now = func() time.Time { return base }
		nonce, _, _ := a.Challenge(ctx, addr)

		a.now = func() time.Time { return base.Add(2 * time.Minute) }
		sig := ed25519.Sign(priv, ChallengeMessage(nonce))
		if err := a.Authenticate(ctx, addr, pub, nonce, sig); !errors.Is(err, ErrUnknownChallenge) {
			t.Errorf("expected ErrUnknownChallenge, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, expiresAt, err := m.Generate("0xabc")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token expires in the past")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Address != "0xabc" || claims.Subject != "0xabc" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: expected ErrInvalidToken, got %v", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	stale, _, _ := expired.Generate("0xabc")
	if _, err := m.Validate(stale); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}
}

func TestValidAddress(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0x88386fc84ba6bc95484008f6362f93160ef3e563", true},
		{"0x88386FC84BA6BC95484008F6362F93160EF3E563", true},
		{"88386fc84ba6bc95484008f6362f93160ef3e563", false},
		{"0x88386fc84ba6bc95484008f6362f93160ef3e5", false},
		{"0xzz386fc84ba6bc95484008f6362f93160ef3e563", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidAddress(tt.in); got != tt.want {
				t.Errorf("ValidAddress(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
