package cookiestore

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/cookiesync/pkg/cookieheader"
	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// Store is the durable per-host cookie cache. Create one per process with
// New and share the pointer with every consumer.
type Store struct {
	mu      sync.Mutex
	storage kv.Storage
	key     string
	now     func() time.Time
	logger  *slog.Logger

	// session holds session-only cookies: host -> name -> value.
	session map[string]map[string]string
}

// New creates a store persisting into storage.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		now:     time.Now,
		logger:  slog.Default().With(logger.Component("cookiestore")),
		session: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a store from cfg. Options are applied after cfg.
func NewFromConfig(storage kv.Storage, cfg Config, opts ...Option) *Store {
	return New(storage, append([]Option{WithKey(cfg.Key)}, opts...)...)
}

// SaveFromResponse records the cookies carried by setCookieHeaders for host.
// Each header holds one cookie assignment plus attributes. Lines that do not
// parse are skipped. Afterwards every expired record in the store is pruned
// and the store is persisted.
func (s *Store) SaveFromResponse(ctx context.Context, host string, setCookieHeaders []string) error {
	if len(setCookieHeaders) == 0 {
		return nil
	}
	if host == "" {
		return ErrEmptyHost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	now := s.now()

	for _, line := range setCookieHeaders {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := parseSetCookie(line)
		if err != nil {
			s.logger.DebugContext(ctx, "skipping unparseable set-cookie", logger.Host(host), logger.Error(err))
			continue
		}
		s.apply(snap, host, recordFromCookie(c, now), now)
	}

	snap.prune(now)
	return s.persist(ctx, snap)
}

// Put writes a single record for host. A zero ExpiresAt with Session set
// stores a session-only cookie; an expired record deletes the name.
func (s *Store) Put(ctx context.Context, host string, rec Record) error {
	if host == "" {
		return ErrEmptyHost
	}
	if rec.Name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	s.apply(snap, host, rec, now)
	snap.prune(now)
	return s.persist(ctx, snap)
}

// Remove deletes name from host, persisted or session-only.
func (s *Store) Remove(ctx context.Context, host, name string) error {
	return s.Put(ctx, host, Record{Name: name})
}

// CookieHeader returns the serialized live cookies for host, or "" when the
// host is unknown or has none. Expired records found for host are pruned and
// the store is persisted.
func (s *Store) CookieHeader(ctx context.Context, host string) (string, error) {
	m, err := s.liveCookies(ctx, host)
	if err != nil {
		return "", err
	}
	return cookieheader.Serialize(m), nil
}

// CookieMap is CookieHeader returning the raw mapping. It returns nil when
// host has no live cookies.
func (s *Store) CookieMap(ctx context.Context, host string) (*cookieheader.Map, error) {
	m, err := s.liveCookies(ctx, host)
	if err != nil || m.Len() == 0 {
		return nil, err
	}
	return m, nil
}

// Records lists the live records of host ordered by name. It never writes.
func (s *Store) Records(ctx context.Context, host string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var out []Record
	jar := snap[host]
	for _, name := range sortedNames(jar) {
		if c := jar[name]; c.live(now) {
			out = append(out, Record{Name: name, Value: c.Value, ExpiresAt: c.expiresAt()})
		}
	}
	sess := s.session[host]
	for _, name := range sortedNames(sess) {
		out = append(out, Record{Name: name, Value: sess[name], Session: true})
	}
	return out, nil
}

// Hosts lists hosts that currently hold live cookies, sorted. It never writes.
func (s *Store) Hosts(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	snap.prune(s.now())

	seen := make(map[string]struct{}, len(snap)+len(s.session))
	for host := range snap {
		seen[host] = struct{}{}
	}
	for host, jar := range s.session {
		if len(jar) > 0 {
			seen[host] = struct{}{}
		}
	}
	return sortedNames(seen), nil
}

// Clear deletes the whole persisted store and all session-only cookies.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = make(map[string]map[string]string)
	return s.storage.Delete(ctx, s.key)
}

func (s *Store) liveCookies(ctx context.Context, host string) (*cookieheader.Map, error) {
	if host == "" {
		return cookieheader.NewMap(0), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	jar := snap[host]
	if pruneJar(jar, now) {
		snap.prune(now)
		if err := s.persist(ctx, snap); err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "pruned expired cookies", logger.Host(host))
	}

	sess := s.session[host]
	m := cookieheader.NewMap(len(jar) + len(sess))
	for _, name := range sortedNames(jar) {
		m.Set(name, jar[name].Value)
	}
	for _, name := range sortedNames(sess) {
		m.Set(name, sess[name])
	}
	return m, nil
}

// apply upserts or deletes rec for host. A name lives either in the
// persisted jar or in the session jar, never both.
func (s *Store) apply(snap snapshot, host string, rec Record, now time.Time) {
	jar := snap[host]
	if jar == nil {
		jar = make(map[string]storedCookie)
		snap[host] = jar
	}
	sess := s.session[host]

	switch {
	case rec.Session:
		delete(jar, rec.Name)
		if sess == nil {
			sess = make(map[string]string)
			s.session[host] = sess
		}
		sess[rec.Name] = rec.Value
	case rec.Expired(now):
		delete(jar, rec.Name)
		delete(sess, rec.Name)
	default:
		delete(sess, rec.Name)
		jar[rec.Name] = storedCookie{
			Name:      rec.Name,
			Value:     rec.Value,
			ExpiresAt: rec.ExpiresAt.UnixMilli(),
		}
	}
}

func (s *Store) load(ctx context.Context) (snapshot, error) {
	blob, err := s.storage.Get(ctx, s.key)
	if err != nil {
		// Sealed storages fail to open tampered blobs; that is corruption, not I/O.
		if errors.Is(err, kv.ErrCorrupt) {
			s.logger.WarnContext(ctx, "discarding undecodable cookie store", logger.Error(errors.Join(ErrCorruptStore, err)))
			return snapshot{}, nil
		}
		return nil, err
	}
	snap, err := decodeSnapshot(blob)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable cookie store", logger.Error(errors.Join(ErrCorruptStore, err)))
	}
	return snap, nil
}

func (s *Store) persist(ctx context.Context, snap snapshot) error {
	blob, err := snap.encode()
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, s.key, blob)
}

// parseSetCookie parses line with the value kept exactly as delivered.
// net/http strips surrounding quotes and rejects values carrying bytes
// outside the RFC 6265 cookie-octet set; only the name is validated here.
func parseSetCookie(line string) (*http.Cookie, error) {
	c, err := http.ParseSetCookie(line)
	if err == nil {
		if c.Quoted {
			c.Value = `"` + c.Value + `"`
			c.Quoted = false
		}
		return c, nil
	}

	pair, attrs, _ := strings.Cut(line, ";")
	name, value, ok := strings.Cut(pair, "=")
	if !ok {
		return nil, err
	}
	stripped := strings.TrimSpace(name) + "="
	if attrs != "" {
		stripped += ";" + attrs
	}
	c, serr := http.ParseSetCookie(stripped)
	if serr != nil {
		return nil, err
	}
	c.Value = strings.TrimSpace(value)
	return c, nil
}

// recordFromCookie resolves the expiry of a parsed Set-Cookie line.
func recordFromCookie(c *http.Cookie, now time.Time) Record {
	rec := Record{Name: c.Name, Value: c.Value}
	switch {
	case c.MaxAge < 0:
		// Max-Age=0 or negative: delete now.
		rec.ExpiresAt = now
	case c.MaxAge > 0:
		rec.ExpiresAt = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		rec.ExpiresAt = c.Expires
	default:
		rec.Session = true
	}
	return rec
}
