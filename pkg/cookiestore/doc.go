// Package cookiestore keeps a durable, host-scoped, expiration-aware cookie
// cache on top of a kv.Storage blob.
//
// The whole store is one JSON document under a single key:
//
//	{"bbs.example.test": {"sid": {"name": "sid", "value": "abc", "expiresAt": 1767225600000}}}
//
// expiresAt is Unix milliseconds. Every operation loads the document, mutates
// or prunes it, and writes it back while holding one store-wide lock, so
// writes that finish before a read on the same host are visible to it.
//
// Hosts match by exact string equality. Records whose expiry is at or before
// the current time are never returned and are physically removed on the next
// mutation or pruning read.
//
// # Set-Cookie handling
//
// SaveFromResponse parses one cookie per header value. Max-Age takes
// precedence over Expires. An expiry in the past (including Max-Age=0) is a
// deletion signal. A cookie with neither attribute is session-only: it is
// served for its host for the lifetime of the Store value but never written
// to the blob.
//
// # Failure semantics
//
// A blob that cannot be decoded is treated as an empty store and the error
// is only logged. Storage I/O errors are returned to the caller unchanged.
package cookiestore
