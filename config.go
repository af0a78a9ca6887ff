package cookiesync

import (
	"github.com/dmitrymomot/cookiesync/pkg/cookiestore"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
	"github.com/dmitrymomot/cookiesync/pkg/preference"
	"github.com/dmitrymomot/cookiesync/pkg/redis"
	"github.com/dmitrymomot/cookiesync/pkg/sqlitekv"
	"github.com/dmitrymomot/cookiesync/pkg/surfacesync"
	"github.com/dmitrymomot/cookiesync/pkg/transport"
)

// Storage backends accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config aggregates the settings of every component.
type Config struct {
	Backend string `env:"STORE_BACKEND" envDefault:"sqlite"`
	// EncryptionKey is a base64 encoded 32 byte key. When set, every blob is
	// sealed before it reaches the backend.
	EncryptionKey string `env:"STORE_ENCRYPTION_KEY"`

	Store       cookiestore.Config
	Preference  preference.Config
	Transport   transport.Config
	Sync        surfacesync.Config
	Diagnostics diagnostics.Config
	SQLite      sqlitekv.Config
	Redis       redis.Config
}

// DefaultConfig mirrors the envDefault tags with an in-memory backend.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendMemory,
		Store:       cookiestore.DefaultConfig(),
		Preference:  preference.DefaultConfig(),
		Transport:   transport.DefaultConfig(),
		Sync:        surfacesync.DefaultConfig(),
		Diagnostics: diagnostics.DefaultConfig(),
	}
}
