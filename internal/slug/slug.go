// Package slug derives URL-safe identifiers from human-readable names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	apostrophes     = regexp.MustCompile(`['` + "`" + `’]`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Make converts a name to a slug.
// "Al-Qur'an Custom!!" -> "al-quran-custom".
// "Kopi & Teh" -> "kopi-teh".
func Make(s string) string {
	// Decompose accented characters, then drop anything non-ASCII.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	// Apostrophes vanish instead of becoming hyphens: "qur'an" -> "quran".
	s = apostrophes.ReplaceAllString(s, "")
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}
