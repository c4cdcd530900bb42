package api

import (
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/streamroles/internal/logging"
)

// HTTPLoggingMiddleware logs HTTP requests with log levels keyed off the
// response status code.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	method := ctx.Method()
	path := ctx.URL().Path
	query := ctx.URL().RawQuery

	logAttrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query != "" {
		logAttrs = append(logAttrs, slog.String("query", query))
	}
	if ua := ctx.Header("User-Agent"); ua != "" {
		logAttrs = append(logAttrs, slog.String("user_agent", ua))
	}

	next(ctx)

	status := ctx.Status()
	logAttrs = append(logAttrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	message := "HTTP request completed"
	switch {
	case method == "OPTIONS":
		// CORS preflight noise
		logger.LogAttrs(ctx.Context(), slog.LevelDebug, message, logAttrs...)
	case status >= 500:
		logger.LogAttrs(ctx.Context(), slog.LevelError, message, logAttrs...)
	case status >= 400:
		logger.LogAttrs(ctx.Context(), slog.LevelWarn, message, logAttrs...)
	default:
		logger.LogAttrs(ctx.Context(), slog.LevelInfo, message, logAttrs...)
	}
}
