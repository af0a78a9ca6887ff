// Package browserjar describes the browsing surface's native cookie jar and
// ships an in-process implementation.
//
// The embedded surface owns its cookies; this module only writes
// "name=value; Path=/" assignments into it, flushes it, and reads the live
// Cookie header for a URL. Memory backs those calls with net/http/cookiejar
// and the public suffix list so domain scoping matches a real browser.
package browserjar
