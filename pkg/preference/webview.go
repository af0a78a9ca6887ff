package preference

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/cookiesync/pkg/cookieheader"
	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

// WebviewCookie reads and writes the preference string in a kv.Storage.
type WebviewCookie struct {
	storage kv.Storage
	key     string
	marker  string
	logger  *slog.Logger
}

func New(storage kv.Storage, opts ...Option) *WebviewCookie {
	w := &WebviewCookie{
		storage: storage,
		key:     DefaultKey,
		marker:  DefaultMarker,
		logger:  slog.Default().With(logger.Component("preference")),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewFromConfig(storage kv.Storage, cfg Config, opts ...Option) *WebviewCookie {
	base := []Option{WithKey(cfg.Key), WithMarker(cfg.Marker)}
	return New(storage, append(base, opts...)...)
}

// Marker returns the identity cookie name.
func (w *WebviewCookie) Marker() string {
	return w.marker
}

// Raw returns the stored string, "" when unset or undecodable.
func (w *WebviewCookie) Raw(ctx context.Context) (string, error) {
	raw, err := kv.GetString(ctx, w.storage, w.key)
	if errors.Is(err, kv.ErrCorrupt) {
		w.logger.WarnContext(ctx, "discarding undecodable webview cookie", logger.Error(err))
		return "", nil
	}
	return raw, err
}

// Active returns the stored string unless it belongs to another account than
// activeUserID, in which case it returns "".
func (w *WebviewCookie) Active(ctx context.Context, activeUserID string) (string, error) {
	raw, err := w.Raw(ctx)
	if err != nil || raw == "" {
		return "", err
	}
	if IsStale(raw, activeUserID, w.marker) {
		w.logger.DebugContext(ctx, "discarding stale webview cookie",
			logger.CookieName(w.marker),
		)
		return "", nil
	}
	return raw, nil
}

// Save replaces the stored string. An empty header clears it.
func (w *WebviewCookie) Save(ctx context.Context, header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return w.Clear(ctx)
	}
	return kv.SetString(ctx, w.storage, w.key, header)
}

func (w *WebviewCookie) Clear(ctx context.Context) error {
	return w.storage.Delete(ctx, w.key)
}

// IsStale reports whether header was captured for a different account than
// activeUserID. Without an active user or without a marker cookie in header
// nothing can disagree, so the header is not stale.
func IsStale(header, activeUserID, marker string) bool {
	if activeUserID == "" {
		return false
	}
	uid, ok := cookieheader.Parse(header).Get(marker)
	if !ok || uid == "" {
		return false
	}
	return uid != activeUserID
}
