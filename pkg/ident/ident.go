// Package ident mints stable, collision-free identifiers from human names.
package ident

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Generator derives identifiers by slugifying a name and appending a
// monotonically increasing counter, so repeated identical names within a
// session never collide. Not safe for concurrent use; the application is
// single-threaded with respect to tree mutations.
type Generator struct {
	next uint64
}

// NewGenerator returns a generator whose counter starts at 1.
func NewGenerator() *Generator {
	return &Generator{next: 1}
}

// Bump advances the counter so the next identifier's suffix is greater
// than n. Callers use it to resume over a tree whose identifiers were
// minted by an earlier process.
func (g *Generator) Bump(n uint64) {
	if n >= g.next {
		g.next = n + 1
	}
}

// Suffix extracts the numeric counter suffix of an identifier produced by
// Generate. ok is false for identifiers of any other shape.
func Suffix(id string) (uint64, bool) {
	i := strings.LastIndex(id, "-")
	n, err := strconv.ParseUint(id[i+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Generate returns a fresh identifier for the given name. The slug part may
// be empty (a name of only punctuation normalizes away); the counter suffix
// alone still yields a valid non-empty identifier.
func (g *Generator) Generate(name string) string {
	n := g.next
	g.next++

	slug := Slugify(name)
	if slug == "" {
		return strconv.FormatUint(n, 10)
	}
	return slug + "-" + strconv.FormatUint(n, 10)
}

// Slugify normalizes a name: lower-case, strip characters outside
// [a-z0-9\s-], collapse whitespace runs to single hyphens, collapse repeated
// hyphens, trim leading and trailing hyphens. May return "".
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
