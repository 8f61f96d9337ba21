// Package normalize canonicalizes free-text names into stable lookup keys.
//
// Every surface spelling of an artist ("  Drake ", "DRAKE", "drake") must
// resolve to the same image pool, so the same normalization runs on both the
// write path (associating an upload with an artist) and the read path
// (resolving a display name or URL segment back to an artist).
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// ArtistKey converts a raw artist name to its canonical lookup key:
// NUL bytes stripped, whitespace trimmed, lowercased.
//
// ArtistKey is idempotent: ArtistKey(ArtistKey(s)) == ArtistKey(s).
func ArtistKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(sanitizeString(raw)))
}

// Slugify converts a string to a URL-safe slug.
// "Kendrick Lamar" -> "kendrick-lamar".
// "Sigur Rós" -> "sigur-ros".
func Slugify(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)

	// Replace non-alphanumeric runs with hyphens.
	s = nonAlphanumeric.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// sanitizeString removes NUL bytes, which can cause issues in databases and
// JSON parsing. Some upstream chart feeds include NUL terminators in strings.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1 // drop it
		}
		return r
	}, s)
}
