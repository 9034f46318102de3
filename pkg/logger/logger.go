// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// Logger middleware stored for the current request, already tagged with the
// request ID, so every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order materialized", "transaction_id", txID)
//	// → time=... level=INFO msg="order materialized" request_id=a1b2... transaction_id=pi_...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the process-wide base logger. Init replaces it.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Options selects the base handler. Production gets JSON at info level;
// everything else gets text at debug level unless Level says otherwise.
type Options struct {
	Env    string
	Level  string
	Output io.Writer // defaults to stdout
}

// Init installs the base logger as L and as the slog default. Extra
// handlers, such as a MongoHandler, receive every record too.
func Init(opts Options, extra ...slog.Handler) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if production(opts.Env) {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level, slog.LevelInfo)})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level, slog.LevelDebug)})
	}
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

// ParseLevel maps a level name to its slog.Level, or fallback.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	var l slog.Level
	if name == "" || l.UnmarshalText([]byte(name)) != nil {
		return fallback
	}
	return l
}

func production(env string) bool {
	switch strings.ToLower(env) {
	case "production", "prod":
		return true
	}
	return false
}

type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
