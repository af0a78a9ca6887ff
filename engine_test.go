package cookiesync_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesync"
	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/browserjar"
	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
	"github.com/dmitrymomot/cookiesync/pkg/secrets"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Echo-Cookie", r.Header.Get("Cookie"))
		if r.URL.Path == "/login" {
			w.Header().Add("Set-Cookie", "sid=server; Max-Age=3600; Path=/")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fetch(t *testing.T, e *cookiesync.Engine, rawURL string) *http.Response {
	t.Helper()
	resp, err := e.Client().Get(rawURL)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	return resp
}

func hostname(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Hostname()
}

func TestEngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	host := hostname(t, srv.URL)

	session := account.NewSession()
	require.NoError(t, session.Login("U1", "ngaPassportUid=U1"))
	jar := browserjar.NewMemory()

	cfg := cookiesync.DefaultConfig()
	cfg.Sync.Hosts = nil
	e, err := cookiesync.New(kv.NewMemoryStorage(), cfg,
		cookiesync.WithAccount(session),
		cookiesync.WithJar(jar),
		cookiesync.WithLogger(logger.Nop()),
	)
	require.NoError(t, err)

	fetch(t, e, srv.URL+"/login")
	header, err := e.Store().CookieHeader(ctx, host)
	require.NoError(t, err)
	assert.Equal(t, "sid=server", header)

	resp := fetch(t, e, srv.URL+"/next")
	assert.Equal(t, "sid=server; ngaPassportUid=U1", resp.Header.Get("Echo-Cookie"))

	require.NoError(t, e.PrepareNavigation(ctx, srv.URL+"/page"))
	assert.Equal(t, "ngaPassportUid=U1; sid=server", jar.Cookie("https://"+host+"/"))
	assert.Equal(t, 1, jar.Flushes())
}

func TestEngineLogout(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	host := hostname(t, srv.URL)

	e, err := cookiesync.New(kv.NewMemoryStorage(), cookiesync.DefaultConfig(), cookiesync.WithLogger(logger.Nop()))
	require.NoError(t, err)

	session, ok := e.Account().(*account.Session)
	require.True(t, ok)
	require.NoError(t, session.Login("U1", "sid=acc"))
	require.NoError(t, e.Preference().Save(ctx, "ngaPassportUid=U1; wv=1"))
	fetch(t, e, srv.URL+"/login")

	require.NoError(t, e.Logout(ctx))

	header, err := e.Store().CookieHeader(ctx, host)
	require.NoError(t, err)
	assert.Empty(t, header)
	raw, err := e.Preference().Raw(ctx)
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.False(t, session.LoggedIn())

	resp := fetch(t, e, srv.URL+"/next")
	assert.Empty(t, resp.Header.Get("Echo-Cookie"))
}

func TestEngineEncryption(t *testing.T) {
	ctx := context.Background()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)

	raw := kv.NewMemoryStorage()
	cfg := cookiesync.DefaultConfig()
	cfg.EncryptionKey = base64.StdEncoding.EncodeToString(key)

	e, err := cookiesync.New(raw, cfg, cookiesync.WithLogger(logger.Nop()))
	require.NoError(t, err)
	require.NoError(t, e.Store().SaveFromResponse(ctx, "a.test", []string{"secretname=secretvalue; Max-Age=60"}))

	blob, err := raw.Get(ctx, cfg.Store.Key)
	require.NoError(t, err)
	require.NotEmpty(t, blob)
	assert.NotContains(t, string(blob), "secretname")

	header, err := e.Store().CookieHeader(ctx, "a.test")
	require.NoError(t, err)
	assert.Equal(t, "secretname=secretvalue", header)

	cfg.EncryptionKey = "not base64!"
	_, err = cookiesync.New(raw, cfg)
	assert.ErrorIs(t, err, cookiesync.ErrInvalidSecretKey)
}

func TestEngineDiagnostics(t *testing.T) {
	srv := newServer(t)

	cfg := cookiesync.DefaultConfig()
	cfg.Diagnostics.Enabled = true
	e, err := cookiesync.New(kv.NewMemoryStorage(), cfg, cookiesync.WithLogger(logger.Nop()))
	require.NoError(t, err)

	fetch(t, e, srv.URL+"/a")
	fetch(t, e, srv.URL+"/b")

	entries := e.Diagnostics().Recent(0)
	require.Len(t, entries, 2)
	assert.Equal(t, srv.URL+"/b", entries[0].URL)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		e, err := cookiesync.Open(ctx, cookiesync.DefaultConfig(), cookiesync.WithLogger(logger.Nop()))
		require.NoError(t, err)
		assert.NoError(t, e.Close())
	})

	t.Run("sqlite survives reopen", func(t *testing.T) {
		cfg := cookiesync.DefaultConfig()
		cfg.Backend = cookiesync.BackendSQLite
		cfg.SQLite.Path = filepath.Join(t.TempDir(), "cookies.db")

		e, err := cookiesync.Open(ctx, cfg, cookiesync.WithLogger(logger.Nop()))
		require.NoError(t, err)
		require.NoError(t, e.Store().SaveFromResponse(ctx, "a.test", []string{"sid=1; Max-Age=3600"}))
		require.NoError(t, e.Close())

		e, err = cookiesync.Open(ctx, cfg, cookiesync.WithLogger(logger.Nop()))
		require.NoError(t, err)
		defer e.Close()
		require.NoError(t, e.Healthcheck(ctx))
		header, err := e.Store().CookieHeader(ctx, "a.test")
		require.NoError(t, err)
		assert.Equal(t, "sid=1", header)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := cookiesync.DefaultConfig()
		cfg.Backend = "etcd"
		_, err := cookiesync.Open(ctx, cfg)
		assert.ErrorIs(t, err, cookiesync.ErrUnknownBackend)
	})

	t.Run("redis without url", func(t *testing.T) {
		cfg := cookiesync.DefaultConfig()
		cfg.Backend = cookiesync.BackendRedis
		_, err := cookiesync.Open(ctx, cfg)
		assert.ErrorIs(t, err, cookiesync.ErrOpenStorage)
	})
}
