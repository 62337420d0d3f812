package docxconv

import (
	"strings"

	"golang.org/x/text/width"
)

// CleanText normalizes raw text: runs of whitespace (including newlines
// and tabs) collapse to single spaces, the ends are trimmed, and
// full-width digits are folded to ASCII. Empty input yields "".
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(narrowDigit, s)
	return strings.Join(strings.Fields(s), " ")
}

// narrowDigit folds full-width digits to their ASCII form, leaving every
// other rune (including full-width kana and punctuation) untouched.
func narrowDigit(r rune) rune {
	if r >= '０' && r <= '９' {
		if n := width.LookupRune(r).Narrow(); n != 0 {
			return n
		}
	}
	return r
}
