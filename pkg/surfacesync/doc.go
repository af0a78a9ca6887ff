// Package surfacesync seeds the browsing surface's native cookie jar right
// before it navigates.
//
// A base mapping is built from the webview preference (dropped when it
// belongs to another account) overlaid with the account cookie. For the
// navigation target's host and every configured first-party host, the base
// is overlaid with that host's Cookie Store entries, so the store wins here,
// the reverse of the outgoing request pipeline. Each non-empty result is
// written as "name=value; Path=/" for the host's base URL, and the jar is
// flushed once at the end.
//
// Known hosts come from Config.Hosts (a comma separated environment list) or
// a YAML file:
//
//	hosts:
//	  - bbs.nga.cn
//	  - "https://ngabbs.com"
package surfacesync
