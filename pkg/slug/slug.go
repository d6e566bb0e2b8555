package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// accentReplacer transliterates common accented characters found in dish and
// cuisine names to their ASCII equivalents.
var accentReplacer = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ß", "ss",
)

// Generate creates a URL-friendly slug from the given title.
//
// Examples:
//   - "Crème Brûlée" → "creme-brulee"
//   - "Spaghetti alla Carbonara" → "spaghetti-alla-carbonara"
//   - "Hello   World!" → "hello-world"
func Generate(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = accentReplacer.Replace(s)

	// Replace any remaining non-alphanumeric runs with single hyphens.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
