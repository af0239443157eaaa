// Package normalize standardizes free-text Colombian street addresses so
// dataset and query addresses compare reliably.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// replacements maps street-type and cardinal-direction words to the
// abbreviations the cadastral dataset uses. Applied sequentially, in this
// order, over the partially transformed string: later entries see the output
// of earlier ones ("este" must run before "oeste"), so reordering the table
// changes results.
var replacements = [][2]string{
	{"calle", "cl"},
	{"carrera", "kr"},
	{"avenida", "av"},
	{"diagonal", "dg"},
	{"transversal", "tv"},
	{"sur", "s"},
	{"norte", "n"},
	{"este", "e"},
	{"oeste", "o"},
	{"no.", ""},
	{"numero", ""},
	{"#", ""},
	{"-", " "},
}

var multiSpaceRe = regexp.MustCompile(`\s+`)

// foldAccents strips combining marks so "número" and "numero" normalize the
// same way.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Address normalizes a free-text address for matching:
//  1. Lower-case
//  2. Collapse whitespace runs and trim
//  3. Fold diacritics
//  4. Apply the ordered abbreviation table
//  5. Collapse whitespace again (hyphen removal can leave double spaces)
//
// The function is total, deterministic and idempotent.
func Address(raw string) string {
	addr := strings.ToLower(raw)
	addr = strings.TrimSpace(multiSpaceRe.ReplaceAllString(addr, " "))

	if folded, _, err := transform.String(foldAccents, addr); err == nil {
		addr = folded
	}

	for _, r := range replacements {
		addr = strings.ReplaceAll(addr, r[0], r[1])
	}

	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(addr, " "))
}
