package scenario

import (
	"path/filepath"
	"strings"
)

// Filter matches scenario names against a user pattern
type Filter struct{}

func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches pattern. Matching is case-insensitive.
// Supports patterns like "TC00?*", "*login*" or a plain substring such as "purchase".
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	name = strings.ToLower(name)
	pattern = strings.ToLower(pattern)

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// filepath.Match stops "*" at separators; fall back to ordered parts.
	if strings.Contains(pattern, "?") {
		return false
	}
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		found = true
	}
	return found
}
