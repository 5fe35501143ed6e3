// Package scope decides which targets a run is authorized to touch and pulls
// candidate targets out of raw command lines.
package scope

import (
	"net/netip"
	"strings"
)

// Scope is an ordered list of authorization patterns. Each entry is one of
// a wildcard domain suffix (*.example.com), a CIDR block (10.0.0.0/8) or a
// literal that must appear somewhere in the target.
type Scope []string

// Parse splits comma separated scope input. Blank entries are dropped.
func Parse(raw string) Scope {
	var out Scope
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s Scope) String() string {
	return strings.Join(s, ", ")
}

// Contains reports whether target is authorized by s.
func (s Scope) Contains(target string) bool {
	return InScope(target, s)
}

// InScope checks target against every entry in order, first match wins.
// Wildcards compare suffixes only; CIDR entries need target to parse as an
// IP; anything else is a plain substring test. Blank entries never match.
func InScope(target string, s Scope) bool {
	for _, item := range s {
		if strings.TrimSpace(item) == "" {
			continue
		}
		switch {
		case strings.HasPrefix(item, "*."):
			if strings.HasSuffix(target, item[2:]) {
				return true
			}
		case strings.Contains(item, "/"):
			if matchCIDR(target, item) {
				return true
			}
		default:
			if strings.Contains(target, item) {
				return true
			}
		}
	}
	return false
}

// matchCIDR treats an unparsable network or target as a non-match.
// Host bits in the network are ignored.
func matchCIDR(target, cidr string) bool {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(target)
	if err != nil {
		return false
	}
	return prefix.Masked().Contains(addr.Unmap())
}
