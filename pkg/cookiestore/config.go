package cookiestore

// DefaultKey is the blob key used when none is configured.
const DefaultKey = "http_cookie_store_v1"

// Config holds cookie store configuration.
type Config struct {
	// Key names the blob in the backing storage.
	Key string `env:"STORE_KEY" envDefault:"http_cookie_store_v1"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Key: DefaultKey}
}
