package preference

// DefaultKey is the kv key holding the preference string.
const DefaultKey = "pref_webview_cookie"

// DefaultMarker is the cookie name that carries the account's passport id.
const DefaultMarker = "ngaPassportUid"

type Config struct {
	Key    string `env:"PREFERENCE_KEY" envDefault:"pref_webview_cookie"`
	Marker string `env:"IDENTITY_COOKIE" envDefault:"ngaPassportUid"`
}

func DefaultConfig() Config {
	return Config{Key: DefaultKey, Marker: DefaultMarker}
}
