package discovery

import (
	"path"
	"strings"

	"syci/internal/domain"
)

// Filter filters test units by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps units whose name matches pattern, preserving order.
// Supports patterns like "functional/*" or "*while*"; a pattern without
// wildcards is a substring match.
func (f *Filter) FilterByName(units []domain.TestUnit, pattern string) []domain.TestUnit {
	if pattern == "" {
		return units
	}

	var filtered []domain.TestUnit
	for _, unit := range units {
		if matchName(unit.Name, pattern) {
			filtered = append(filtered, unit)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	// Try the full relative name, then just the last element
	for _, candidate := range []string{name, path.Base(name)} {
		if matched, err := path.Match(pattern, candidate); err == nil && matched {
			return true
		}
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Fall back to ordered substring matching for patterns like "*while*"
	// that path.Match rejects because of separators in the name
	parts := strings.Split(pattern, "*")
	rest := name
	matchedAny := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
