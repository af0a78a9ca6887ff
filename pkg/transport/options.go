package transport

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

type options struct {
	account   account.Provider
	pref      Preference
	live      LiveCookies
	collector diagnostics.Collector
	base      http.RoundTripper
	logger    *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		account: account.Anonymous,
		logger:  slog.Default().With(logger.Component("transport")),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures the pipeline.
type Option func(*options)

// WithAccount sets the account manager. Without one every request is anonymous.
func WithAccount(p account.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.account = p
		}
	}
}

// WithPreference sets the webview cookie preference source.
func WithPreference(p Preference) Option {
	return func(o *options) {
		o.pref = p
	}
}

// WithLiveCookies sets the browsing surface jar read at request time.
func WithLiveCookies(l LiveCookies) Option {
	return func(o *options) {
		o.live = l
	}
}

// WithCollector mirrors outgoing requests into c.
func WithCollector(c diagnostics.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// WithBase sets the innermost RoundTripper.
func WithBase(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
