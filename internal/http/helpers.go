package http

import (
	"strings"
)

// sanitizeInput trims whitespace and drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// splitList splits a comma-separated parameter, dropping empty items.
// Repeated parameters (?id=a&id=b) are accepted too.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = sanitizeInput(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
