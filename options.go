package cookiesync

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/browserjar"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
)

type options struct {
	account   account.Provider
	jar       browserjar.Jar
	collector diagnostics.Collector
	base      http.RoundTripper
	clock     func() time.Time
	logger    *slog.Logger
}

type Option func(*options)

// WithAccount sets the account manager. The default is a logged-out
// account.Session reachable through Engine.Account.
func WithAccount(p account.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.account = p
		}
	}
}

// WithJar sets the browsing surface's native jar. The default is an
// in-memory browserjar.Memory.
func WithJar(j browserjar.Jar) Option {
	return func(o *options) {
		if j != nil {
			o.jar = j
		}
	}
}

// WithCollector adds a diagnostics collector next to the configured recorder.
func WithCollector(c diagnostics.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// WithBaseTransport sets the innermost RoundTripper of the client.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// WithClock replaces time.Now in the cookie store.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
