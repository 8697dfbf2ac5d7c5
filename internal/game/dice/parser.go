package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange parses an inclusive range string into a Range.
// Supported forms: "18-25", "10 - 35", "7" (a single fixed value).
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a Range with 0 <= Min <= Max or a descriptive error.
func ParseRange(expr string) (Range, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return Range{}, fmt.Errorf("dice: empty range")
	}

	loStr, hiStr, found := strings.Cut(s, "-")
	if !found {
		hiStr = loStr
	}

	lo, err := strconv.Atoi(strings.TrimSpace(loStr))
	if err != nil {
		return Range{}, fmt.Errorf("dice: invalid range min in %q: %w", expr, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hiStr))
	if err != nil {
		return Range{}, fmt.Errorf("dice: invalid range max in %q: %w", expr, err)
	}

	r, err := NewRange(lo, hi)
	if err != nil {
		return Range{}, fmt.Errorf("dice: invalid range %q: %w", expr, err)
	}
	return r, nil
}

// MustParseRange parses expr and panics on error. Useful for package-level defaults.
//
// Precondition: expr must be a valid range expression.
func MustParseRange(expr string) Range {
	r, err := ParseRange(expr)
	if err != nil {
		panic("dice: MustParseRange failed for range " + expr + ": " + err.Error())
	}
	return r
}
