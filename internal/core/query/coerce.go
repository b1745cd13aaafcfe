package query

import (
	"math"
	"strconv"
	"strings"
)

// Coercer turns a clause literal into the value bound to its placeholder.
type Coercer func(string) any

// LegacyCoerce reproduces the query form's historical rule: the literal is
// read as a leading integer ("3abc" -> 3, "2.5" -> 2, "  7" -> 7, "0x10" -> 16)
// and kept as text when no digits lead it or the integer is zero ("0" -> "0").
//
// This is known to disagree with the declared type of REAL columns for
// fractional literals. StrictCoerce is the corrected policy; switch with
// WithCoercer once the intended behavior is confirmed.
func LegacyCoerce(s string) any {
	n, ok := leadingInt(s)
	if !ok || n == 0 {
		return s
	}
	return n
}

// StrictCoerce binds a number only when the whole literal is a finite float.
func StrictCoerce(s string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n\f\v")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base, isDigit := 10, isDecimal
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit = 16, isHex
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
