// Package moderation screens free text against a blocked-term list. It is a
// best-effort lexical filter, not a guarantee.
package moderation

import "strings"

// Filter rejects text containing any blocked term, case-insensitively.
// The list is swappable without touching the write path.
type Filter struct {
	terms []string
}

// DefaultBlockedTerms mirrors the production word list.
var DefaultBlockedTerms = []string{
	"คำหยาบ1", "คำต้องห้าม2", "badword3", "inappropriate_phrase",
}

// NewFilter builds a filter over the given terms. Terms are matched as
// lowercase substrings.
func NewFilter(terms []string) *Filter {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			lowered = append(lowered, strings.ToLower(t))
		}
	}
	return &Filter{terms: lowered}
}

// Blocked reports whether any of the given texts contains a blocked term.
func (f *Filter) Blocked(texts ...string) bool {
	for _, text := range texts {
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		for _, term := range f.terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
