package preference

import "log/slog"

type Option func(*WebviewCookie)

func WithKey(key string) Option {
	return func(w *WebviewCookie) {
		if key != "" {
			w.key = key
		}
	}
}

func WithMarker(name string) Option {
	return func(w *WebviewCookie) {
		if name != "" {
			w.marker = name
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *WebviewCookie) {
		if l != nil {
			w.logger = l
		}
	}
}
