package sqlitekv

import "time"

// Config describes the database file.
type Config struct {
	Path        string        `env:"SQLITE_PATH" envDefault:"cookiesync.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
}
