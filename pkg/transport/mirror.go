package transport

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
)

// Mirror hands a redacted copy of each outgoing request to c. The request
// itself is passed on untouched.
func Mirror(c diagnostics.Collector, now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = RequestIDFromContext(req.Context())
			}
			c.Collect(req.Context(), diagnostics.Entry{
				ID:     id,
				Method: req.Method,
				URL:    req.URL.String(),
				Header: diagnostics.Redact(req.Header),
				Time:   now(),
			})
			return next.RoundTrip(req)
		})
	}
}
