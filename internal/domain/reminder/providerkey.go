package reminder

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after canonical decomposition, folding
// accented letters to their base form (ç→c, ş→s, ğ→g, ü→u, ö→o, İ→i).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeProviderKey maps a free-text institution name to its canonical
// matching key: lowercase, Turkish diacritics folded to base Latin letters,
// interior whitespace collapsed, leading/trailing whitespace removed.
//
// The function is pure and idempotent; empty input yields an empty key.
// The dotless ı (U+0131) has no decomposition, so it is mapped explicitly.
func NormalizeProviderKey(raw string) string {
	lowered := strings.ToLower(raw)

	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		folded = lowered
	}
	folded = strings.ReplaceAll(folded, "ı", "i")

	return strings.Join(strings.Fields(folded), " ")
}
