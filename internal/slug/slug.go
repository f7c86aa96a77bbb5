// Package slug maps file names and heading text to URL and anchor identifiers.
//
// Two slug classes exist and they are not interchangeable: file slugs identify
// directories and files in URLs, text slugs identify in-page anchors.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// Text lowercases s and collapses every run of characters outside [a-z0-9]
// into a single hyphen. Leading and trailing hyphens are kept so anchors
// generated from the same heading stay stable.
func Text(s string) string {
	return nonAlnumRun.ReplaceAllString(strings.ToLower(s), "-")
}

// File replaces every whitespace run in name with a single hyphen and, when
// foldCase is set, lowercases the result. Other punctuation is kept.
func File(name string, foldCase bool) string {
	out := spaceRun.ReplaceAllString(name, "-")
	if foldCase {
		out = strings.ToLower(out)
	}
	return out
}

// Testament returns the URL segment for a testament name ("Old Testament" -> "old-testament").
func Testament(name string) string {
	return File(name, true)
}

// Lookup returns the first name whose file slug equals want.
func Lookup(names []string, want string, foldCase bool) (string, bool) {
	for _, name := range names {
		if File(name, foldCase) == want {
			return name, true
		}
	}
	return "", false
}

// Registry hands out anchor ids that are unique within one document.
// The first occurrence of a slug is returned unchanged; later occurrences get
// "-1", "-2", ... appended, skipping ids that are already taken.
type Registry struct {
	used map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[string]int)}
}

// Unique registers base and returns the id to use for it.
func (r *Registry) Unique(base string) string {
	n, seen := r.used[base]
	if !seen {
		r.used[base] = 0
		return base
	}
	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := r.used[candidate]; !taken {
			r.used[base] = n
			r.used[candidate] = 0
			return candidate
		}
	}
}
