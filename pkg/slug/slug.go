// Package slug derives URL-safe public identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9_-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Make converts arbitrary text into a lowercase ASCII slug: accented
// characters are decomposed and their combining marks stripped, whitespace
// runs become single hyphens, and everything outside [a-z0-9_-] is dropped.
// Deterministic and pure. The result may be empty; callers must handle that.
func Make(text string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		// Malformed input; slug from the raw text instead.
		folded = text
	}

	s := strings.ToLower(strings.TrimSpace(folded))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExistsFunc reports whether a candidate slug is already taken. The check is
// an external call and may fail.
type ExistsFunc func(candidate string) (bool, error)

// Unique probes base, then base-1, base-2, ... until exists reports false,
// and returns the first free candidate. There is no attempt cap; the loop is
// bounded in practice by how many sibling slugs exist.
//
// Two concurrent creations with the same base can both pass the check before
// either commits. The probe loop is only an optimization; the storage layer's
// uniqueness constraint is the authoritative guard and violations surface as
// a conflict there.
func Unique(base string, exists ExistsFunc) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
