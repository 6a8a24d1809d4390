// Package correlate matches record names that differ by a small typo or
// inflection and resolves cross-references between catalogs.
package correlate

import "unicode"

// Correlate reports whether a and b are likely the same name. Lengths may
// differ by at most two runes. The strings must agree case-insensitively on
// a prefix of at least two runes, and that prefix plus a matching suffix
// must cover the whole of one of them.
func Correlate(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la-lb >= 3 || lb-la >= 3 {
		return false
	}

	count := 0
	for count < la && count < lb && fold(ra[count]) == fold(rb[count]) {
		count++
	}
	if count == la && count == lb {
		return true
	}
	if count <= 1 || la == lb {
		return false
	}

	for i := 1; count < la && count < lb && fold(ra[la-i]) == fold(rb[lb-i]); i++ {
		count++
	}
	return count == la || count == lb
}

func fold(r rune) rune { return unicode.ToLower(r) }
