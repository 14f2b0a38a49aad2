package calc

import (
	"strconv"
	"unicode"
)

// FormatValue renders v the way results are printed: the shortest decimal
// representation with no exponent.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBeginName(r rune) bool {
	return unicode.IsLetter(r)
}
