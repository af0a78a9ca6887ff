// Package logger builds *slog.Logger instances with functional options,
// domain attribute helpers and injection of request-scoped values from
// context.Context.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the
// configured Format and wraps it with a decorator that runs every registered
// ContextExtractor before delegating. Helpers in attr.go keep attribute keys
// consistent across packages (host, cookie_name, component and so on).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(logger.ParseLevel("debug")),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithContextExtractors(transport.RequestIDExtractor()),
//	)
//	log.WarnContext(ctx, "set-cookie capture failed", logger.Host(host), logger.Error(err))
//
// Error and Errors return an empty attribute for nil errors, so callers need
// no nil check.
package logger
