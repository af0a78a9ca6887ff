// Package diagnostics collects a mirror of outgoing requests for debugging.
//
// Entries carry the method, URL, headers and a timestamp. Cookie values and
// credentials are redacted before an entry reaches any Collector, so the
// mirror is safe to display or log.
//
// Recorder keeps the most recent entries in memory, addressable by request
// id. Logger writes every entry to a slog.Logger at debug level.
package diagnostics
