package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// Capture forwards the Set-Cookie headers of every response to sink for the
// request host. Capture never fails the response: sink errors and panics are
// logged and dropped.
func Capture(sink CookieSink, l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default().With(logger.Component("transport"))
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp == nil {
				return resp, err
			}
			if values := resp.Header.Values("Set-Cookie"); len(values) > 0 {
				capture(sink, l, req, values)
			}
			return resp, nil
		})
	}
}

func capture(sink CookieSink, l *slog.Logger, req *http.Request, values []string) {
	ctx := req.Context()
	host := req.URL.Hostname()
	defer func() {
		if r := recover(); r != nil {
			l.ErrorContext(ctx, "panic while capturing response cookies",
				logger.Host(host),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	if err := sink.SaveFromResponse(ctx, host, values); err != nil {
		l.WarnContext(ctx, "failed to capture response cookies",
			logger.Host(host),
			logger.Count(len(values)),
			logger.Error(err),
		)
	}
}
