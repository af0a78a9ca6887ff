// Package secrets encrypts persisted blobs at rest.
//
// A 32-byte master key is combined with a scope (for sealed storages, the
// blob key) through HKDF-SHA-256. The derived key drives AES-256-GCM; the
// nonce is prepended to the ciphertext so every sealed value is
// self-contained. Because the scope feeds key derivation, a blob copied
// under a different key fails to open.
//
// # Usage
//
//	key, _ := secrets.GenerateKey()
//	st := secrets.NewSealedStorage(sqliteStorage, key)
//	store := cookiestore.New(st)
//
// # Error Handling
//
// Failures wrap a sentinel such as ErrDecryptionFailed or
// ErrInvalidCiphertext; match them with errors.Is. The cookie store treats a
// blob that fails to open like any other undecodable blob: as empty.
package secrets
