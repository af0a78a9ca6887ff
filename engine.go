package cookiesync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/browserjar"
	"github.com/dmitrymomot/cookiesync/pkg/cookiestore"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
	"github.com/dmitrymomot/cookiesync/pkg/preference"
	"github.com/dmitrymomot/cookiesync/pkg/redis"
	"github.com/dmitrymomot/cookiesync/pkg/secrets"
	"github.com/dmitrymomot/cookiesync/pkg/sqlitekv"
	"github.com/dmitrymomot/cookiesync/pkg/surfacesync"
	"github.com/dmitrymomot/cookiesync/pkg/transport"
)

// Engine wires the cookie store to the request pipeline and the surface
// syncer. Create one per process and share it.
type Engine struct {
	backend    kv.Storage
	closer     io.Closer
	store      *cookiestore.Store
	preference *preference.WebviewCookie
	account    account.Provider
	jar        browserjar.Jar
	recorder   *diagnostics.Recorder
	syncer     *surfacesync.Syncer
	client     *http.Client
	logger     *slog.Logger
}

// Open connects the backend selected by cfg.Backend and builds an engine on
// it. Close releases the backend.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	storage, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	e, err := New(storage, cfg, opts...)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	e.closer = closer
	return e, nil
}

// New builds an engine over an already opened storage. When
// cfg.EncryptionKey is set, storage is wrapped so blobs are sealed at rest.
func New(storage kv.Storage, cfg Config, opts ...Option) (*Engine, error) {
	o := &options{
		account: account.NewSession(),
		jar:     browserjar.NewMemory(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	backend := storage
	if cfg.EncryptionKey != "" {
		key, err := secrets.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return nil, errors.Join(ErrInvalidSecretKey, err)
		}
		storage = secrets.NewSealedStorage(storage, key)
	}

	storeOpts := []cookiestore.Option{cookiestore.WithLogger(o.logger.With(logger.Component("cookiestore")))}
	if o.clock != nil {
		storeOpts = append(storeOpts, cookiestore.WithClock(o.clock))
	}
	store := cookiestore.NewFromConfig(storage, cfg.Store, storeOpts...)
	pref := preference.NewFromConfig(storage, cfg.Preference,
		preference.WithLogger(o.logger.With(logger.Component("preference"))),
	)

	syncer, err := surfacesync.NewFromConfig(store, o.jar, cfg.Sync,
		surfacesync.WithAccount(o.account),
		surfacesync.WithPreference(pref),
		surfacesync.WithLogger(o.logger.With(logger.Component("surfacesync"))),
	)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		backend:    backend,
		store:      store,
		preference: pref,
		account:    o.account,
		jar:        o.jar,
		recorder:   diagnostics.NewFromConfig(cfg.Diagnostics),
		syncer:     syncer,
		logger:     o.logger.With(logger.Component("cookiesync")),
	}

	var collectors []diagnostics.Collector
	if e.recorder != nil {
		collectors = append(collectors, e.recorder)
	}
	if o.collector != nil {
		collectors = append(collectors, o.collector)
	}

	transportOpts := []transport.Option{
		transport.WithAccount(o.account),
		transport.WithPreference(pref),
		transport.WithLiveCookies(o.jar),
		transport.WithBase(o.base),
		transport.WithLogger(o.logger.With(logger.Component("transport"))),
	}
	if len(collectors) > 0 {
		transportOpts = append(transportOpts, transport.WithCollector(diagnostics.Multi(collectors...)))
	}
	e.client = transport.NewClient(cfg.Transport, store, transportOpts...)
	return e, nil
}

// Client returns the shared HTTP client running the cookie pipeline.
func (e *Engine) Client() *http.Client { return e.client }

func (e *Engine) Store() *cookiestore.Store { return e.store }

func (e *Engine) Preference() *preference.WebviewCookie { return e.preference }

func (e *Engine) Account() account.Provider { return e.account }

func (e *Engine) Jar() browserjar.Jar { return e.jar }

// Diagnostics returns the request recorder, nil when diagnostics are disabled.
func (e *Engine) Diagnostics() *diagnostics.Recorder { return e.recorder }

// PrepareNavigation seeds the browsing surface before it loads targetURL.
func (e *Engine) PrepareNavigation(ctx context.Context, targetURL string) error {
	return e.syncer.Sync(ctx, targetURL)
}

// Logout clears the cookie store and the webview preference, then logs the
// account out when it supports it. All steps are attempted.
func (e *Engine) Logout(ctx context.Context) error {
	var errs []error
	if err := e.store.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := e.preference.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if l, ok := e.account.(interface{ Logout() }); ok {
		l.Logout()
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrLogout}, errs...)...)
	}
	e.logger.InfoContext(ctx, "logged out, cookie state cleared")
	return nil
}

// Healthcheck probes the backend when it supports probing.
func (e *Engine) Healthcheck(ctx context.Context) error {
	if h, ok := e.backend.(interface{ Healthcheck(context.Context) error }); ok {
		return h.Healthcheck(ctx)
	}
	return nil
}

// Close releases the backend opened by Open.
func (e *Engine) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func openStorage(ctx context.Context, cfg Config) (kv.Storage, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendMemory:
		st := kv.NewMemoryStorage()
		return st, st, nil
	case BackendSQLite:
		st, err := sqlitekv.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, errors.Join(ErrOpenStorage, err)
		}
		return st, st, nil
	case BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, errors.Join(ErrOpenStorage, err)
		}
		st := redis.NewStorageFromConfig(client, cfg.Redis)
		return st, st, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
