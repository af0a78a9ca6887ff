package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/browserjar"
	"github.com/dmitrymomot/cookiesync/pkg/cookiestore"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
	"github.com/dmitrymomot/cookiesync/pkg/preference"
	"github.com/dmitrymomot/cookiesync/pkg/transport"
)

// echoServer reflects request headers as Echo-<Name> response headers and the
// request body as the response body. Set-Cookie values from the query are
// returned verbatim.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, values := range r.Header {
			w.Header()["Echo-"+name] = values
		}
		if _, ok := r.Header["Cookie"]; ok {
			w.Header().Set("Echo-Has-Cookie", "true")
		}
		for _, c := range r.URL.Query()["set"] {
			w.Header().Add("Set-Cookie", c)
		}
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func hostOf(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Hostname()
}

func newStore() *cookiestore.Store {
	return cookiestore.New(kv.NewMemoryStorage(), cookiestore.WithLogger(logger.Nop()))
}

func get(t *testing.T, client *http.Client, rawURL string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	return resp
}

func TestCookiePrecedence(t *testing.T) {
	ctx := context.Background()
	srv := echoServer(t)
	host := hostOf(t, srv.URL)

	t.Run("account cookie overrides store", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.SaveFromResponse(ctx, host, []string{"sid=abc; Max-Age=3600"}))

		client := transport.NewClient(transport.DefaultConfig(), store,
			transport.WithAccount(account.Static{ID: "U1", Header: "sid=zzz"}),
			transport.WithLogger(logger.Nop()),
		)
		resp := get(t, client, srv.URL+"/thread", nil)
		assert.Equal(t, "sid=zzz", resp.Header.Get("Echo-Cookie"))
	})

	t.Run("live surface cookie wins", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.SaveFromResponse(ctx, host, []string{"sid=abc; Max-Age=3600", "keep=1; Max-Age=3600"}))
		jar := browserjar.NewMemory()
		require.NoError(t, jar.SetCookie(srv.URL, "sid=live; Path=/"))

		client := transport.NewClient(transport.DefaultConfig(), store,
			transport.WithAccount(account.Static{ID: "U1", Header: "sid=zzz"}),
			transport.WithLiveCookies(jar),
			transport.WithLogger(logger.Nop()),
		)
		resp := get(t, client, srv.URL+"/thread", nil)
		assert.Equal(t, "keep=1; sid=live", resp.Header.Get("Echo-Cookie"))
	})

	t.Run("explicit header replaces account cookie", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.SaveFromResponse(ctx, host, []string{"sid=abc; Max-Age=3600"}))

		client := transport.NewClient(transport.DefaultConfig(), store,
			transport.WithAccount(account.Static{ID: "U1", Header: "acc=1; sid=zzz"}),
			transport.WithLogger(logger.Nop()),
		)
		resp := get(t, client, srv.URL, http.Header{"Cookie": {"sid=explicit", "x=2"}})
		assert.Equal(t, "sid=explicit; x=2", resp.Header.Get("Echo-Cookie"))
	})

	t.Run("stale preference is discarded", func(t *testing.T) {
		pref := preference.New(kv.NewMemoryStorage(), preference.WithLogger(logger.Nop()))
		require.NoError(t, pref.Save(ctx, "ngaPassportUid=U2; pref=old"))

		client := transport.NewClient(transport.DefaultConfig(), newStore(),
			transport.WithAccount(account.Static{ID: "U1", Header: "ngaPassportUid=U1; sid=zzz"}),
			transport.WithPreference(pref),
			transport.WithLogger(logger.Nop()),
		)
		resp := get(t, client, srv.URL, nil)
		got := resp.Header.Get("Echo-Cookie")
		assert.Equal(t, "ngaPassportUid=U1; sid=zzz", got)
		assert.NotContains(t, got, "pref")
		assert.NotContains(t, got, "U2")
	})

	t.Run("matching preference overrides account", func(t *testing.T) {
		pref := preference.New(kv.NewMemoryStorage(), preference.WithLogger(logger.Nop()))
		require.NoError(t, pref.Save(ctx, "ngaPassportUid=U1; sid=pref"))

		client := transport.NewClient(transport.DefaultConfig(), newStore(),
			transport.WithAccount(account.Static{ID: "U1", Header: "sid=zzz"}),
			transport.WithPreference(pref),
			transport.WithLogger(logger.Nop()),
		)
		resp := get(t, client, srv.URL, nil)
		assert.Equal(t, "sid=pref; ngaPassportUid=U1", resp.Header.Get("Echo-Cookie"))
	})

	t.Run("empty merge removes the header", func(t *testing.T) {
		client := transport.NewClient(transport.DefaultConfig(), newStore(), transport.WithLogger(logger.Nop()))
		resp := get(t, client, srv.URL, http.Header{"Cookie": {"  "}})
		assert.Empty(t, resp.Header.Get("Echo-Has-Cookie"))
	})
}

func TestIdentityHeaders(t *testing.T) {
	srv := echoServer(t)

	cfg := transport.DefaultConfig()
	cfg.UserAgent = "test-agent/1.0"
	client := transport.NewClient(cfg, newStore(), transport.WithLogger(logger.Nop()))

	resp := get(t, client, srv.URL, http.Header{"User-Agent": {"overridden"}})
	assert.Equal(t, "test-agent/1.0", resp.Header.Get("Echo-User-Agent"))
	assert.Equal(t, transport.DefaultClientTag, resp.Header.Get("Echo-X-User-Agent"))
}

func TestCaptureResponseCookies(t *testing.T) {
	ctx := context.Background()
	srv := echoServer(t)
	host := hostOf(t, srv.URL)

	store := newStore()
	client := transport.NewClient(transport.DefaultConfig(), store, transport.WithLogger(logger.Nop()))

	q := url.Values{"set": {"sid=new; Max-Age=60; Path=/", "tmp=1"}}
	get(t, client, srv.URL+"/login?"+q.Encode(), nil)

	header, err := store.CookieHeader(ctx, host)
	require.NoError(t, err)
	assert.Equal(t, "sid=new; tmp=1", header)

	resp := get(t, client, srv.URL+"/next", nil)
	assert.Equal(t, "sid=new; tmp=1", resp.Header.Get("Echo-Cookie"))
}

type brokenStore struct {
	readErr error
	panics  bool
}

func (b brokenStore) CookieHeader(context.Context, string) (string, error) {
	return "", b.readErr
}

func (b brokenStore) SaveFromResponse(context.Context, string, []string) error {
	if b.panics {
		panic("boom")
	}
	return errors.New("disk full")
}

func TestCaptureNeverFailsResponse(t *testing.T) {
	srv := echoServer(t)
	q := url.Values{"set": {"sid=new; Max-Age=60"}}

	for name, store := range map[string]brokenStore{"error": {}, "panic": {panics: true}} {
		t.Run(name, func(t *testing.T) {
			client := transport.NewClient(transport.DefaultConfig(), store, transport.WithLogger(logger.Nop()))
			resp := get(t, client, srv.URL+"/?"+q.Encode(), nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestCaptureKeepsRawValues(t *testing.T) {
	ctx := context.Background()
	srv := echoServer(t)
	host := hostOf(t, srv.URL)

	store := newStore()
	client := transport.NewClient(transport.DefaultConfig(), store, transport.WithLogger(logger.Nop()))

	q := url.Values{"set": {`q="quoted"; Max-Age=60`, `r=x"y; Max-Age=60; Path=/`}}
	get(t, client, srv.URL+"/?"+q.Encode(), nil)

	header, err := store.CookieHeader(ctx, host)
	require.NoError(t, err)
	assert.Equal(t, `q="quoted"; r=x"y`, header)

	resp := get(t, client, srv.URL+"/next", nil)
	assert.Equal(t, `q="quoted"; r=x"y`, resp.Header.Get("Echo-Cookie"))
}

func TestRequestIDInLogs(t *testing.T) {
	srv := echoServer(t)
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelDebug),
		logger.WithContextExtractors(transport.RequestIDExtractor()),
	)

	client := transport.NewClient(transport.DefaultConfig(), brokenStore{},
		transport.WithLogger(log),
		transport.WithCollector(diagnostics.NewLogger(log)),
	)
	q := url.Values{"set": {"sid=new; Max-Age=60"}}
	get(t, client, srv.URL+"/?"+q.Encode(), http.Header{"X-Request-Id": {"trace-42"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	msgs := make([]string, 0, len(lines))
	for _, line := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "trace-42", rec["request_id"], line)
		assert.Equal(t, 1, strings.Count(line, `"request_id"`), line)
		msgs = append(msgs, rec["msg"].(string))
	}
	assert.Equal(t, []string{"outgoing request", "failed to capture response cookies"}, msgs)
}

func TestStoreReadErrorFailsRequest(t *testing.T) {
	srv := echoServer(t)
	boom := errors.New("disk on fire")

	client := transport.NewClient(transport.DefaultConfig(), brokenStore{readErr: boom}, transport.WithLogger(logger.Nop()))
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrStoreRead)
	assert.ErrorIs(t, err, boom)
}

func TestRequestID(t *testing.T) {
	srv := echoServer(t)
	client := transport.NewClient(transport.DefaultConfig(), newStore(), transport.WithLogger(logger.Nop()))

	t.Run("generated", func(t *testing.T) {
		resp := get(t, client, srv.URL, nil)
		_, err := uuid.Parse(resp.Header.Get("Echo-X-Request-Id"))
		assert.NoError(t, err)
	})

	t.Run("kept when valid", func(t *testing.T) {
		resp := get(t, client, srv.URL, http.Header{"X-Request-Id": {"abc-123"}})
		assert.Equal(t, "abc-123", resp.Header.Get("Echo-X-Request-Id"))
	})

	t.Run("replaced when invalid", func(t *testing.T) {
		resp := get(t, client, srv.URL, http.Header{"X-Request-Id": {"bad id!"}})
		assert.NotEqual(t, "bad id!", resp.Header.Get("Echo-X-Request-Id"))
	})

	t.Run("taken from context", func(t *testing.T) {
		var seen string
		rt := transport.Chain(transport.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			seen = transport.RequestIDFromContext(req.Context())
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
		}), transport.RequestID())

		ctx := transport.WithRequestID(context.Background(), "ctx-id")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://a.test", nil)
		require.NoError(t, err)
		_, err = rt.RoundTrip(req)
		require.NoError(t, err)
		assert.Equal(t, "ctx-id", seen)
	})
}

func post(t *testing.T, client *http.Client, rawURL, body string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Post(rawURL, "application/x-www-form-urlencoded", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(got)
}

func TestCharset(t *testing.T) {
	srv := echoServer(t)
	client := transport.NewClient(transport.DefaultConfig(), newStore(), transport.WithLogger(logger.Nop()))

	t.Run("gbk form is re-encoded", func(t *testing.T) {
		// 你 is E4 BD A0 in UTF-8 and C4 E3 in GBK.
		resp, body := post(t, client, srv.URL, "charset=gbk&title=%E4%BD%A0&flag")
		assert.Equal(t, "charset=gbk&title=%C4%E3&flag", body)
		assert.Equal(t, "application/x-www-form-urlencoded;charset=GBK", resp.Header.Get("Echo-Content-Type"))
	})

	t.Run("utf-8 form is untouched", func(t *testing.T) {
		resp, body := post(t, client, srv.URL, "charset=utf-8&title=%E4%BD%A0")
		assert.Equal(t, "charset=utf-8&title=%E4%BD%A0", body)
		assert.Equal(t, "application/x-www-form-urlencoded", resp.Header.Get("Echo-Content-Type"))
	})

	t.Run("no charset is untouched", func(t *testing.T) {
		_, body := post(t, client, srv.URL, "title=hello")
		assert.Equal(t, "title=hello", body)
	})

	t.Run("malformed body passes through", func(t *testing.T) {
		_, body := post(t, client, srv.URL, "charset=gbk&title=%zz")
		assert.Equal(t, "charset=gbk&title=%zz", body)
	})

	t.Run("unknown charset passes through", func(t *testing.T) {
		_, body := post(t, client, srv.URL, "charset=klingon&a=b")
		assert.Equal(t, "charset=klingon&a=b", body)
	})
}

func TestMirror(t *testing.T) {
	srv := echoServer(t)
	rec := diagnostics.NewRecorder(10)

	client := transport.NewClient(transport.DefaultConfig(), newStore(),
		transport.WithAccount(account.Static{ID: "U1", Header: "sid=secret"}),
		transport.WithCollector(rec),
		transport.WithLogger(logger.Nop()),
	)
	resp := get(t, client, srv.URL+"/path", nil)
	assert.Equal(t, "sid=secret", resp.Header.Get("Echo-Cookie"), "mirroring does not alter the request")

	entries := rec.Recent(0)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, http.MethodGet, e.Method)
	assert.Equal(t, srv.URL+"/path", e.URL)
	assert.Equal(t, "sid=***", e.Header.Get("Cookie"))
	assert.Equal(t, resp.Header.Get("Echo-X-Request-Id"), e.ID)
	assert.False(t, e.Time.IsZero())
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) transport.Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return transport.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	base := transport.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
	})

	rt := transport.Chain(base, mark("a"), nil, mark("b"))
	req, err := http.NewRequest(http.MethodGet, "http://a.test", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "base"}, order)
}
