package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanLLMText strips markdown fences and stray backticks that models wrap
// around single-line answers.
func CleanLLMText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop a language tag such as ```bash
		if i := strings.IndexAny(s, "\r\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(strings.Trim(s, "`"))
}

// SplitCommaList turns "a, b, ,c" into [a b c]. Malformed or empty input
// yields an empty list rather than an error.
func SplitCommaList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Truncate cuts s to at most limit bytes plus "...", never splitting a rune.
// A negative limit disables truncation.
func Truncate(s string, limit int) string {
	if limit < 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
