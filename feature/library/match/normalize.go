package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	glyphs = strings.NewReplacer("™", "", "®", "", "©", "")

	// Qualifiers must follow at least one separator so that titles which start
	// with one of the words ("Ultimate Chicken Horse") are left alone.
	editionQualifier = regexp.MustCompile(`[\s\-–—:,(\[]+(?:game of the year(?: edition)?|goty(?: edition)?|definitive(?: edition)?|remastered|gold(?: edition)?|deluxe(?: edition)?|ultimate(?: edition)?|complete edition|anniversary edition)\b[)\]]?`)

	whitespace         = regexp.MustCompile(`\s+`)
	trailingSeparators = regexp.MustCompile(`[\s\-–—:,]+$`)

	lower = cases.Lower(language.Und)
)

// Normalize reduces a game title to the form used for name comparison:
// NFC, lowercase, no trademark glyphs, no edition qualifiers, single spaces.
func Normalize(name string) string {
	s := norm.NFC.String(name)
	s = lower.String(s)
	s = glyphs.Replace(s)
	s = editionQualifier.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingSeparators.ReplaceAllString(s, "")
	return s
}
