// Package preference keeps the legacy "webview cookie" string: a cookie
// header captured from the browsing surface and replayed on API requests.
//
// The value embeds the passport id of the account it was captured for. Active
// hides the value when that id disagrees with the currently logged-in user, so
// a previous account's session never leaks into the next one.
package preference
