package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/cookiesync/pkg/cookieheader"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// CookieSource serves the persisted cookie header of a host.
type CookieSource interface {
	CookieHeader(ctx context.Context, host string) (string, error)
}

// CookieSink records response cookies of a host.
type CookieSink interface {
	SaveFromResponse(ctx context.Context, host string, setCookieHeaders []string) error
}

// Store is the cookie store as seen by the pipeline.
type Store interface {
	CookieSource
	CookieSink
}

// Preference serves the webview cookie preference for the active user,
// "" when unset or captured for another account.
type Preference interface {
	Active(ctx context.Context, activeUserID string) (string, error)
}

// LiveCookies reads the browsing surface's cookie for an exact URL.
type LiveCookies interface {
	Cookie(rawURL string) string
}

// Cookies builds the outgoing Cookie header and identity headers.
type Cookies struct {
	store CookieSource
	cfg   Config
	opts  *options
}

// NewCookies creates the cookie interceptor over store.
func NewCookies(store CookieSource, cfg Config, opts ...Option) *Cookies {
	return &Cookies{store: store, cfg: cfg, opts: newOptions(opts)}
}

// Header returns the merged cookie header for req. Sources in ascending
// precedence: the store entry for the request host, the explicit Cookie
// header on req or else the account cookie, the webview preference unless
// stale, and the live surface cookie for the exact URL.
func (c *Cookies) Header(req *http.Request) (string, error) {
	ctx := req.Context()

	stored, err := c.store.CookieHeader(ctx, req.URL.Hostname())
	if err != nil {
		return "", errors.Join(ErrStoreRead, err)
	}

	base := c.opts.account.Cookie()
	if explicit := req.Header.Values("Cookie"); len(explicit) > 0 {
		base = strings.Join(explicit, "; ")
	}

	var pref string
	if c.opts.pref != nil {
		pref, err = c.opts.pref.Active(ctx, c.opts.account.UserID())
		if err != nil {
			return "", errors.Join(ErrPreferenceRead, err)
		}
	}

	var live string
	if c.opts.live != nil {
		live = c.opts.live.Cookie(req.URL.String())
	}

	return cookieheader.MergeHeaders(stored, base, pref, live), nil
}

// Wrap is the Middleware form of c.
func (c *Cookies) Wrap(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		merged, err := c.Header(req)
		if err != nil {
			c.opts.logger.ErrorContext(req.Context(), "failed to build cookie header",
				logger.Host(req.URL.Hostname()),
				logger.Error(err),
			)
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, err
		}

		out := req.Clone(req.Context())
		if c.cfg.UserAgent != "" {
			out.Header.Set("User-Agent", c.cfg.UserAgent)
		}
		if c.cfg.ClientTagHeader != "" && c.cfg.ClientTag != "" {
			out.Header.Set(c.cfg.ClientTagHeader, c.cfg.ClientTag)
		}
		if merged != "" {
			out.Header.Set("Cookie", merged)
		} else {
			out.Header.Del("Cookie")
		}
		return next.RoundTrip(out)
	})
}
