package diagnostics

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/cookiesync/pkg/cookieheader"
)

const redacted = "***"

// Entry is one mirrored outgoing request.
type Entry struct {
	ID     string
	Method string
	URL    string
	Header http.Header
	Time   time.Time
}

// Collector receives mirrored requests. Implementations must not block.
type Collector interface {
	Collect(ctx context.Context, e Entry)
}

// CollectorFunc adapts a function to Collector.
type CollectorFunc func(ctx context.Context, e Entry)

func (f CollectorFunc) Collect(ctx context.Context, e Entry) { f(ctx, e) }

// Multi fans an entry out to every collector in order.
func Multi(collectors ...Collector) Collector {
	return CollectorFunc(func(ctx context.Context, e Entry) {
		for _, c := range collectors {
			c.Collect(ctx, e)
		}
	})
}

var credentialHeaders = []string{"Authorization", "Proxy-Authorization"}

// Redact returns a copy of h with cookie values and credentials masked.
// Cookie names are kept.
func Redact(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		return http.Header{}
	}
	if values := out.Values("Cookie"); len(values) > 0 {
		masked := make([]string, 0, len(values))
		for _, v := range values {
			m := cookieheader.Parse(v)
			for name := range m.All() {
				m.Set(name, redacted)
			}
			masked = append(masked, cookieheader.Serialize(m))
		}
		out["Cookie"] = masked
	}
	for _, name := range credentialHeaders {
		if out.Get(name) != "" {
			out.Set(name, redacted)
		}
	}
	return out
}
