package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Challenge issues a nonce for the address to sign.
func (s *AuthService) Challenge(ctx context.Context, req *connect.Request[api.ChallengeRequest]) (*connect.Response[api.ChallengeResponse], error) {
	s.logger.Info("Challenge request", "address", req.Msg.Address)

	if !auth.ValidAddress(req.Msg.Address) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("malformed address %q", req.Msg.Address))
	}

	nonce, expiresAt, err := s.authenticator.Challenge(ctx, req.Msg.Address)
	if err != nil {
		s.logger.Error("Failed to issue challenge", "address", req.Msg.Address, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ChallengeResponse{
		Nonce:     nonce,
		Message:   string(auth.ChallengeMessage(nonce)),
		ExpiresAt: expiresAt.Unix(),
	}), nil
}

// Login verifies a signed challenge and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "address", req.Msg.Address)

	pub, err := auth.DecodePublicKey(req.Msg.PublicKey)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	signature, err := hex.DecodeString(req.Msg.Signature)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("malformed signature: %w", err))
	}

	if err := s.authenticator.Authenticate(ctx, req.Msg.Address, pub, req.Msg.Nonce, signature); err != nil {
		s.logger.Warn("Login failed", "address", req.Msg.Address, "error", err)
		if errors.Is(err, auth.ErrMalformedKey) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	token, expiresAt, err := s.jwtManager.Generate(req.Msg.Address)
	if err != nil {
		s.logger.Error("Failed to generate token", "address", req.Msg.Address, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Logged in", "address", req.Msg.Address)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		Address:   req.Msg.Address,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}
