package locality

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the comparison key for a name.
// Input is trimmed and NFC-normalized first so that composed and decomposed
// spellings of the same name compare equal.
func Fold(s string) string {
	// cases.Caser is stateful, one per call
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// EqualFold reports whether a and b are the same name ignoring case.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
