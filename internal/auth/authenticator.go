package auth

import (
	"context"
	"crypto/ed25519"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownChallenge = errors.New("unknown or expired challenge")
	ErrInvalidSignature = errors.New("signature does not verify")
	ErrAddressMismatch  = errors.New("public key does not match address")
)

// Authenticator proves control of an address.
// This abstraction allows swapping the proof scheme without changing the
// service layer code.
type Authenticator interface {
	// Challenge issues a single-use nonce the caller must sign.
	Challenge(ctx context.Context, address string) (nonce string, expiresAt time.Time, err error)

	// Authenticate checks that signature is pub's signature over the
	// challenge message for nonce, and that pub derives address.
	Authenticate(ctx context.Context, address string, pub ed25519.PublicKey, nonce string, signature []byte) error
}

// ChallengeMessage is the exact byte string signed to answer a challenge.
func ChallengeMessage(nonce string) []byte {
	return []byte("kindnest login: " + nonce)
}

type challenge struct {
	address   string
	expiresAt time.Time
}

// KeyAuthenticator implements challenge/response login with ed25519 keys.
// Outstanding challenges live in memory; a restart invalidates them.
type KeyAuthenticator struct {
	mu         sync.Mutex
	ttl        time.Duration
	challenges map[string]challenge
	now        func() time.Time
}

// NewKeyAuthenticator creates an authenticator whose challenges expire after ttl.
func NewKeyAuthenticator(ttl time.Duration) *KeyAuthenticator {
	return &KeyAuthenticator{
		ttl:        ttl,
		challenges: make(map[string]challenge),
		now:        time.Now,
	}
}

// Challenge issues a new nonce for address.
func (a *KeyAuthenticator) Challenge(ctx context.Context, address string) (string, time.Time, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	for nonce, c := range a.challenges {
		if now.After(c.expiresAt) {
			delete(a.challenges, nonce)
		}
	}

	nonce := uuid.New().String()
	expiresAt := now.Add(a.ttl)
	a.challenges[nonce] = challenge{address: address, expiresAt: expiresAt}
	return nonce, expiresAt, nil
}

// Authenticate consumes the challenge whether or not verification succeeds.
func (a *KeyAuthenticator) Authenticate(ctx context.Context, address string, pub ed25519.PublicKey, nonce string, signature []byte) error {
	a.mu.Lock()
	c, ok := a.challenges[nonce]
	delete(a.challenges, nonce)
	a.mu.Unlock()

	if !ok || c.address != address || a.now().After(c.expiresAt) {
		return ErrUnknownChallenge
	}
	if len(pub) != ed25519.PublicKeySize {
		return ErrMalformedKey
	}
	if AddressFromPublicKey(pub) != address {
		return ErrAddressMismatch
	}
	if !ed25519.Verify(pub, ChallengeMessage(nonce), signature) {
		return ErrInvalidSignature
	}
	return nil
}
