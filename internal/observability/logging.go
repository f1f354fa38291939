// Package observability provides structured logging for the client.
package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	GlobalLogger = newLogger(slog.LevelInfo)
}

func newLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// SetLevel replaces the global logger with one at the named level
// ("debug", "info", "warn", "error"). Unknown names keep info.
func SetLevel(name string) {
	level := slog.LevelInfo
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	GlobalLogger = newLogger(level)
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID identifies one user-initiated operation across the
// request, the state transition, and any cache traffic it causes.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// ActionLogger provides structured logging for action-layer operations.
type ActionLogger struct {
	action string
	logger *Logger
}

// NewActionLogger creates a new ActionLogger for the given action name.
func NewActionLogger(action string) *ActionLogger {
	return &ActionLogger{
		action: action,
		logger: GlobalLogger,
	}
}

// LogStart logs the beginning of an action.
func (l *ActionLogger) LogStart(ctx context.Context, fields map[string]interface{}) {
	attrs := []any{
		slog.String("action", l.action),
		slog.String("phase", "start"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.DebugContext(ctx, "action started", attrs...)
}

// LogSuccess logs a completed action.
func (l *ActionLogger) LogSuccess(ctx context.Context, fields map[string]interface{}) {
	attrs := []any{
		slog.String("action", l.action),
		slog.String("phase", "success"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "action completed", attrs...)
}

// LogRollback logs that an optimistic update was reverted.
func (l *ActionLogger) LogRollback(ctx context.Context, err error, fields map[string]interface{}) {
	attrs := []any{
		slog.String("action", l.action),
		slog.String("phase", "rollback"),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.WarnContext(ctx, "optimistic update rolled back", attrs...)
}

// LogError logs an action failure.
func (l *ActionLogger) LogError(ctx context.Context, err error) {
	l.logger.ErrorContext(ctx, "action failed",
		slog.String("action", l.action),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// RequestLogger provides structured logging for outbound HTTP requests.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new RequestLogger.
func NewRequestLogger() *RequestLogger {
	return &RequestLogger{logger: GlobalLogger}
}

// LogRequest logs an outbound request and its outcome.
func (l *RequestLogger) LogRequest(ctx context.Context, method, path string, status int, err error) {
	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.WarnContext(ctx, "api request failed", attrs...)
		return
	}
	l.logger.DebugContext(ctx, "api request", attrs...)
}
