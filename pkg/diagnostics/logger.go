package diagnostics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// Logger writes entries to a slog.Logger at debug level.
type Logger struct {
	log *slog.Logger
}

func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default().With(logger.Component("diagnostics"))
	}
	return &Logger{log: l}
}

func (l *Logger) Collect(ctx context.Context, e Entry) {
	attrs := make([]any, 0, 4+len(e.Header))
	attrs = append(attrs,
		logger.RequestID(e.ID),
		slog.String("method", e.Method),
		logger.URL(e.URL),
		slog.Time("time", e.Time),
	)
	for name, values := range e.Header {
		attrs = append(attrs, slog.String("header."+strings.ToLower(name), strings.Join(values, ", ")))
	}
	l.log.DebugContext(ctx, "outgoing request", attrs...)
}
