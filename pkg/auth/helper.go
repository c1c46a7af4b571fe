package auth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// trimTrailingSlash removes exactly one trailing slash.
func trimTrailingSlash(s string) string {
	return strings.TrimSuffix(s, "/")
}

// parseAbsoluteURL checks that s is an absolute URL with a host.
func parseAbsoluteURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("'%s' is not an absolute URL", s)
	}
	return u, nil
}

// parseUnsignedID parses a decimal id in [0, 2^32-1].
func parseUnsignedID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// valueOr returns *p, or fallback when p is nil.
func valueOr(p *string, fallback string) (string, bool) {
	if p == nil {
		return fallback, false
	}
	return *p, true
}
