package domain

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

// ParseSourceURL validates a word list URL before any network call.
// Only absolute http(s) URLs with a host are accepted. The value is taken
// verbatim: whitespace anywhere in it makes the URL invalid.
func ParseSourceURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, NewInvalidURLError(errors.New("empty URL"))
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return nil, NewInvalidURLError(errors.New("URL contains whitespace"))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, NewInvalidURLError(err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, NewInvalidURLError(errors.New("URL must be absolute: " + raw))
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, NewInvalidURLError(errors.New("unsupported scheme: " + u.Scheme))
	}
}
