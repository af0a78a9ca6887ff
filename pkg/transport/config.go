package transport

import "time"

const (
	DefaultUserAgent       = "Nga_Official"
	DefaultClientTagHeader = "X-User-Agent"
	DefaultClientTag       = "Nga_Official"
)

type Config struct {
	UserAgent       string        `env:"USER_AGENT" envDefault:"Nga_Official"`
	ClientTagHeader string        `env:"CLIENT_TAG_HEADER" envDefault:"X-User-Agent"`
	ClientTag       string        `env:"CLIENT_TAG" envDefault:"Nga_Official"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

func DefaultConfig() Config {
	return Config{
		UserAgent:       DefaultUserAgent,
		ClientTagHeader: DefaultClientTagHeader,
		ClientTag:       DefaultClientTag,
		Timeout:         30 * time.Second,
	}
}
