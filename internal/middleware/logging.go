package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kindnest/pkg/api"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC.
// Ledger rejections are expected traffic and log at Warn; errors without a
// ledger code (storage failures, panics turned into Internal) log at Error.
// Install it after the auth interceptor so the caller address is known.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"address", GetAddress(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			slog.Log(ctx, rpcLevel(err), rpcMessage(err), append(attrs, rpcErrorAttrs(err)...)...)
			return resp, err
		}
	}
}

func rpcLevel(err error) slog.Level {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return slog.LevelInfo
	case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func rpcMessage(err error) string {
	if err == nil {
		return "RPC ok"
	}
	return "RPC error"
}

func rpcErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return []any{"error", err}
	}
	attrs := []any{"code", connectErr.Code(), "error", connectErr.Message()}
	if code := connectErr.Meta().Get(api.ErrorCodeHeader); code != "" {
		attrs = append(attrs, "ledger_code", code)
	}
	return attrs
}
