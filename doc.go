// Package cookiesync keeps one coherent cookie state across an HTTP API
// client and an embedded browsing surface.
//
// An Engine owns the durable Cookie Store and wires it to the pieces that
// read and write it:
//
//   - Client returns an http.Client whose transport merges stored, account,
//     preference and live surface cookies into every request and captures
//     Set-Cookie headers from every response.
//   - PrepareNavigation seeds the surface's native jar for the target host
//     and the known first-party hosts before it navigates.
//   - Logout clears the store, the webview preference and the account.
//
// Open builds an engine from Config, choosing the backing key-value store
// (memory, sqlite or redis) and optionally sealing the persisted blobs:
//
//	var cfg cookiesync.Config
//	config.MustLoad(&cfg)
//	engine, err := cookiesync.Open(ctx, cfg, cookiesync.WithAccount(session))
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	resp, err := engine.Client().Get("https://bbs.nga.cn/thread.php?fid=7")
package cookiesync
