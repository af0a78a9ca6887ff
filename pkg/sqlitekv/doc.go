// Package sqlitekv implements kv.Storage on a local SQLite file using the
// pure-Go modernc.org/sqlite driver, so persisted blobs survive process
// restarts without cgo.
//
// All values live in a single table:
//
//	CREATE TABLE kv_blobs (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at DATETIME NOT NULL)
//
// Usage:
//
//	st, err := sqlitekv.Open(ctx, sqlitekv.Config{Path: "data/cookies.db"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
package sqlitekv
