package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s_-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Slugify converts a title to a URL slug: accents are folded to ASCII, anything
// other than letters, digits, underscores and hyphens is dropped, and runs of
// whitespace or hyphens collapse to a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = slugInvalidChars.ReplaceAllString(folded, "")
	folded = slugSeparators.ReplaceAllString(strings.TrimSpace(folded), "-")
	return strings.Trim(folded, "-_")
}

// IsValidSlug reports whether s is a non-empty slug
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
