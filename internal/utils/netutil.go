package utils

import (
	"net/url"
	"strings"
)

// ResolveLink makes href absolute against base and drops its fragment.
// Unparsable input is returned trimmed and unchanged.
func ResolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil || href == "" {
		return href
	}
	if !u.IsAbs() && base != "" {
		bu, err := url.Parse(strings.TrimSpace(base))
		if err != nil {
			return href
		}
		u = bu.ResolveReference(u)
	}
	u.Fragment = ""
	return u.String()
}
