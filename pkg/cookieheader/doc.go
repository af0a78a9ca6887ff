// Package cookieheader parses, merges and serializes cookie headers of the
// form "name=value; name=value".
//
// The package is pure: no state, no I/O. Malformed segments are dropped
// rather than reported, so every input produces a usable Map.
//
// # Precedence
//
// Merge writes each header into one accumulating Map in argument order.
// When two headers define the same name the later argument wins, which makes
// the argument list an explicit precedence list, lowest first:
//
//	m := cookieheader.Merge(storeHeader, sessionHeader, liveHeader)
//	req.Header.Set("Cookie", cookieheader.Serialize(m))
//
// A Map keeps first-insertion order for its names. Overwriting an existing
// name changes the value and keeps the position.
package cookieheader
