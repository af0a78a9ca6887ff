package transport

import "net/http"

// NewRoundTripper assembles the full pipeline over store.
func NewRoundTripper(cfg Config, store Store, opts ...Option) http.RoundTripper {
	o := newOptions(opts)
	cookies := &Cookies{store: store, cfg: cfg, opts: o}

	mws := []Middleware{
		RequestID(),
		cookies.Wrap,
		Charset(o.logger),
	}
	if o.collector != nil {
		mws = append(mws, Mirror(o.collector, nil))
	}
	mws = append(mws, Capture(store, o.logger))
	return Chain(o.base, mws...)
}

// NewClient returns an http.Client using the pipeline. The client has no
// cookie jar; cookies are reconciled by the pipeline alone.
func NewClient(cfg Config, store Store, opts ...Option) *http.Client {
	return &http.Client{
		Transport: NewRoundTripper(cfg, store, opts...),
		Timeout:   cfg.Timeout,
	}
}
