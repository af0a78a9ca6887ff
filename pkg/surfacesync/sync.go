package surfacesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/browserjar"
	"github.com/dmitrymomot/cookiesync/pkg/cookieheader"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// CookieMapper serves a host's live store entries, nil when it has none.
type CookieMapper interface {
	CookieMap(ctx context.Context, host string) (*cookieheader.Map, error)
}

// Preference serves the webview cookie preference for the active user.
type Preference interface {
	Active(ctx context.Context, activeUserID string) (string, error)
}

// Syncer writes reconciled cookies into the browsing surface's jar.
type Syncer struct {
	store   CookieMapper
	jar     browserjar.Jar
	account account.Provider
	pref    Preference
	hosts   []string
	logger  *slog.Logger
}

func New(store CookieMapper, jar browserjar.Jar, opts ...Option) *Syncer {
	s := &Syncer{
		store:   store,
		jar:     jar,
		account: account.Anonymous,
		logger:  slog.Default().With(logger.Component("surfacesync")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a syncer with the hosts of cfg. Options are applied
// after cfg.
func NewFromConfig(store CookieMapper, jar browserjar.Jar, cfg Config, opts ...Option) (*Syncer, error) {
	hosts, err := cfg.KnownHosts()
	if err != nil {
		return nil, err
	}
	return New(store, jar, append([]Option{WithHosts(hosts...)}, opts...)...), nil
}

// Sync prepares the jar for navigation to targetURL. Every host is attempted;
// failures are joined into the returned error. The jar is flushed once when
// all hosts are done.
func (s *Syncer) Sync(ctx context.Context, targetURL string) error {
	base, err := s.base(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, host := range Hosts(targetURL, s.hosts) {
		if err := s.syncHost(ctx, host, base); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.jar.Flush(); err != nil {
		errs = append(errs, errors.Join(ErrJarFlush, err))
	}
	return errors.Join(errs...)
}

// base merges the preference, unless stale, with the account cookie.
func (s *Syncer) base(ctx context.Context) (*cookieheader.Map, error) {
	var pref string
	if s.pref != nil {
		var err error
		pref, err = s.pref.Active(ctx, s.account.UserID())
		if err != nil {
			return nil, errors.Join(ErrPreferenceRead, err)
		}
	}
	return cookieheader.Merge(pref, s.account.Cookie()), nil
}

func (s *Syncer) syncHost(ctx context.Context, host string, base *cookieheader.Map) error {
	baseURL := BaseURL(host)
	merged := base.Clone()

	if u, err := url.Parse(baseURL); err == nil && u.Hostname() != "" {
		stored, err := s.store.CookieMap(ctx, u.Hostname())
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStoreRead, host, err)
		}
		merged.Update(stored)
	}

	if merged.Len() == 0 {
		s.logger.DebugContext(ctx, "no cookies for host", logger.Host(host))
		return nil
	}

	var errs []error
	for name, value := range merged.All() {
		if err := s.jar.SetCookie(baseURL, name+"="+value+"; Path=/"); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrJarWrite, host, err))
		}
	}
	s.logger.DebugContext(ctx, "seeded browsing surface", logger.Host(host), logger.Count(merged.Len()))
	return errors.Join(errs...)
}

// Hosts returns the relevant hosts for targetURL: its hostname first, then
// known with quotes stripped and whitespace trimmed. Empty entries and
// duplicates are dropped.
func Hosts(targetURL string, known []string) []string {
	out := make([]string, 0, len(known)+1)
	seen := make(map[string]struct{}, len(known)+1)
	add := func(h string) {
		if h == "" {
			return
		}
		if _, ok := seen[h]; ok {
			return
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	if u, err := url.Parse(targetURL); err == nil {
		add(u.Hostname())
	}
	for _, h := range known {
		add(strings.TrimSpace(strings.ReplaceAll(h, `"`, "")))
	}
	return out
}

// BaseURL returns host when it already carries a scheme, otherwise the
// https URL of host.
func BaseURL(host string) string {
	if strings.HasPrefix(host, "http") {
		return host
	}
	return "https://" + host
}
