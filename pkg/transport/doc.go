// Package transport is the outgoing HTTP pipeline: a chain of
// http.RoundTripper middlewares that reconcile cookies on every API call.
//
// The chain, outermost first:
//
//	RequestID   assigns X-Request-ID and puts it in the request context
//	Cookies     merges store, explicit or account, preference and live jar
//	            cookies into one Cookie header; sets User-Agent and X-User-Agent
//	Charset     re-encodes form bodies that declare a non UTF-8 charset
//	Mirror      hands a redacted copy of the request to a diagnostics collector
//	Capture     forwards response Set-Cookie headers to the cookie store
//
// NewClient assembles the chain over http.DefaultTransport:
//
//	client := transport.NewClient(cfg, store,
//		transport.WithAccount(session),
//		transport.WithPreference(pref),
//		transport.WithLiveCookies(jar),
//	)
//
// The client has no http.CookieJar; cookie state lives in the store.
package transport
