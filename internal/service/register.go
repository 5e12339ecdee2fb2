package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/middleware"
	"github.com/mmynk/kindnest/pkg/api/apiconnect"
)

// Register mounts the auth, ledger and query services on mux. Mutations
// require a session token; queries accept one.
func Register(mux *http.ServeMux, l *ledger.Ledger, s Submitter, authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) {
	logging := middleware.LoggingInterceptor()

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, logger),
		connect.WithInterceptors(logging),
	)
	mux.Handle(authPath, authHandler)

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(
		NewLedgerService(s),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), logging),
	)
	mux.Handle(ledgerPath, ledgerHandler)

	queryPath, queryHandler := apiconnect.NewQueryServiceHandler(
		NewQueryService(l, s),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager), logging),
	)
	mux.Handle(queryPath, queryHandler)
}
