package browserjar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/publicsuffix"
)

// Jar is the native cookie jar of the browsing surface.
type Jar interface {
	// SetCookie stores one Set-Cookie style assignment for baseURL.
	SetCookie(baseURL, cookie string) error
	// Flush makes previous writes durable and visible to the surface.
	Flush() error
	// Cookie returns the Cookie header the surface would send to rawURL.
	Cookie(rawURL string) string
}

// Memory is a Jar held in process memory. It stands in for the real
// surface jar in tests and the CLI; the public suffix list only keeps
// Domain attributes from widening a cookie past a registrable domain.
type Memory struct {
	mu      sync.RWMutex
	jar     *cookiejar.Jar
	flushes atomic.Int64
}

// NewMemory creates an empty jar.
func NewMemory() *Memory {
	// cookiejar.New only fails on invalid options.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &Memory{jar: jar}
}

func (m *Memory) SetCookie(baseURL, cookie string) error {
	u, err := parseURL(baseURL)
	if err != nil {
		return err
	}
	parsed := (&http.Response{Header: http.Header{"Set-Cookie": {cookie}}}).Cookies()
	if len(parsed) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidCookie, cookie)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jar.SetCookies(u, parsed)
	return nil
}

// Flush is a no-op for an in-memory jar; it only counts calls.
func (m *Memory) Flush() error {
	m.flushes.Add(1)
	return nil
}

// Flushes returns how many times Flush was called.
func (m *Memory) Flushes() int {
	return int(m.flushes.Load())
}

func (m *Memory) Cookie(rawURL string) string {
	u, err := parseURL(rawURL)
	if err != nil {
		return ""
	}

	m.mu.RLock()
	cookies := m.jar.Cookies(u)
	m.mu.RUnlock()

	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}
	return u, nil
}
