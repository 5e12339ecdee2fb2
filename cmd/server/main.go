package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/kindnest/internal/auth"
	"github.com/mmynk/kindnest/internal/config"
	"github.com/mmynk/kindnest/internal/ledger"
	"github.com/mmynk/kindnest/internal/metrics"
	"github.com/mmynk/kindnest/internal/sequencer"
	"github.com/mmynk/kindnest/internal/service"
	"github.com/mmynk/kindnest/internal/storage/sqlite"
	"github.com/mmynk/kindnest/pkg/api"
	"github.com/mmynk/kindnest/pkg/logging"
)

// challengeTTL bounds how long a login nonce stays valid.
const challengeTTL = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogFormat, logging.LevelFromEnv())
	slog.SetDefault(logger)
	if cfg.Dev {
		slog.Warn("Dev mode: tokens may be signed with the built-in secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	l := ledger.New(store, cfg.Policy())
	seq := sequencer.New(l, m, cfg.QueueSize)

	// Resolve submissions a previous process accepted but never applied
	if err := seq.Recover(ctx); err != nil {
		return err
	}

	applierDone := make(chan error, 1)
	go func() {
		applierDone <- seq.Run(ctx)
	}()

	mux := http.NewServeMux()
	service.Register(mux, l, seq,
		auth.NewKeyAuthenticator(challengeTTL),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		logger,
	)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Add logging and CORS middleware
	handler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr, "faucet", cfg.Faucet)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			stop()
			<-applierDone
			return err
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Graceful shutdown failed", "error", err)
	}

	stop()
	if err := <-applierDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Server stopped")
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+api.ErrorCodeHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
