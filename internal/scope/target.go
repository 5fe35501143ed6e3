package scope

import (
	"regexp"
	"strings"
)

// CommandSeparator chains independent sub-commands inside one planner command.
const CommandSeparator = "&&"

// Leftmost match of: http(s) URL, dotted hostname with a 2+ letter TLD, IPv4 literal.
var targetRe = regexp.MustCompile(`(https?://[^\s/$.?#].[^\s]*|[\w.-]+\.[a-zA-Z]{2,}|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)

// ExtractTarget returns the first target-looking token in command. It is a
// heuristic; flags and arguments are not told apart.
func ExtractTarget(command string) (string, bool) {
	m := targetRe.FindStringSubmatch(command)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SplitCommands splits command on CommandSeparator, trimming each part.
// Order is preserved and empty parts are kept so they fail target extraction.
func SplitCommands(command string) []string {
	parts := strings.Split(command, CommandSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
