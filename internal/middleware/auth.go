package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/pkg/api"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// AddressKey is the context key for storing the authenticated caller address.
const AddressKey contextKey = "address"

// GetAddress extracts the caller address from the context.
// Returns empty string if the request is unauthenticated.
func GetAddress(ctx context.Context) string {
	address, _ := ctx.Value(AddressKey).(string)
	return address
}

// WithAddress returns a copy of ctx carrying address.
func WithAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, AddressKey, address)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func unauthenticated() error {
	return api.NewError(ledger.ErrAuthenticationRequired)
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// The verified address is added to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, unauthenticated()
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, unauthenticated()
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, unauthenticated()
			}

			return next(WithAddress(ctx, claims.Address), req)
		}
	}
}

// OptionalAuth returns a middleware that validates JWT tokens if present, but allows
// requests without authentication. Queries are public; the address only
// tags log lines.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Invalid tokens are ignored
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithAddress(ctx, claims.Address)
				}
			}

			return next(ctx, req)
		}
	}
}
