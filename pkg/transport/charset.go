package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/dmitrymomot/cookiesync/pkg/logger"
)

const formContentType = "application/x-www-form-urlencoded"

// Charset re-encodes POST form bodies that declare a non UTF-8 charset.
// A body whose decoded text contains charset=<name> has every key and value
// converted to that encoding and percent-escaped again, and its Content-Type
// becomes application/x-www-form-urlencoded;charset=<NAME>. When anything
// fails the original request proceeds unchanged.
func Charset(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default().With(logger.Component("transport"))
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodPost || req.Body == nil || req.Body == http.NoBody {
				return next.RoundTrip(req)
			}

			body, err := io.ReadAll(req.Body)
			_ = req.Body.Close()
			if err != nil {
				return nil, err
			}

			out := req.Clone(req.Context())
			encoded, name, err := transcodeForm(body)
			switch {
			case err != nil:
				l.WarnContext(req.Context(), "charset transcoding skipped", logger.URL(req.URL.String()), logger.Error(err))
				setBody(out, body)
			case name == "":
				setBody(out, body)
			default:
				setBody(out, encoded)
				out.Header.Set("Content-Type", formContentType+";charset="+strings.ToUpper(name))
			}
			return next.RoundTrip(out)
		})
	}
}

var errMalformedForm = errors.New("malformed form body")

// transcodeForm returns the re-encoded body and the declared charset name,
// or an empty name when body needs no transcoding.
func transcodeForm(body []byte) ([]byte, string, error) {
	decoded, err := url.QueryUnescape(string(body))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errMalformedForm, err)
	}
	name := declaredCharset(decoded)
	if name == "" {
		return nil, "", nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, "", err
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, "", nil
	}

	var buf bytes.Buffer
	for i, pair := range strings.Split(string(body), "&") {
		if i > 0 {
			buf.WriteByte('&')
		}
		key, value, hasValue := strings.Cut(pair, "=")
		k, err := reencode(enc, key)
		if err != nil {
			return nil, "", err
		}
		buf.WriteString(k)
		if !hasValue {
			continue
		}
		v, err := reencode(enc, value)
		if err != nil {
			return nil, "", err
		}
		buf.WriteByte('=')
		buf.WriteString(v)
	}
	return buf.Bytes(), name, nil
}

func reencode(enc encoding.Encoding, escaped string) (string, error) {
	plain, err := url.QueryUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errMalformedForm, err)
	}
	converted, err := enc.NewEncoder().String(plain)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(converted), nil
}

// declaredCharset finds charset=<name> in decoded form text.
func declaredCharset(decoded string) string {
	lower := strings.ToLower(decoded)
	idx := strings.Index(lower, "charset=")
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len("charset="):]
	end := strings.IndexAny(rest, "&; \t\r\n")
	if end >= 0 {
		rest = rest[:end]
	}
	return strings.Trim(rest, `"'`)
}

func setBody(req *http.Request, body []byte) {
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
}
