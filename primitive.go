package scan

import (
	"math"
	"strconv"
	"strings"
)

// The primitive matchers below follow the user-matcher convention: they
// take the input and a start offset, return the number of bytes consumed
// and return 0 for "no match". Capturing primitives write through their
// out pointer only when they match. The caller must keep start within
// [0, len(input)].

// Skip matches text verbatim at start and returns its length, 0 otherwise.
func Skip(input, text string, start int) int {
	if strings.HasPrefix(input[start:], text) {
		return len(text)
	}
	return 0
}

// ParseInt parses a decimal integer with an optional leading sign. A value
// beyond the host int range is a non-match, not a wrapped result.
func ParseInt(input string, out *int, start int) int {
	i := start
	neg := false
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		neg = input[i] == '-'
		i++
	}
	x := 0
	j := i
	for j < len(input) && input[j] >= '0' && input[j] <= '9' {
		d := int(input[j] - '0')
		if x > (math.MaxInt-d)/10 {
			return 0
		}
		x = x*10 + d
		j++
	}
	if j == i {
		return 0
	}
	if neg {
		x = -x
	}
	*out = x
	return j - start
}

// ParseBin parses a binary integer with an optional 0b prefix.
func ParseBin(input string, out *int, start int) int {
	return parseBase(input, out, start, 2, 'b')
}

// ParseOct parses an octal integer with an optional 0o prefix.
func ParseOct(input string, out *int, start int) int {
	return parseBase(input, out, start, 8, 'o')
}

// ParseHex parses a hexadecimal integer with an optional 0x prefix.
func ParseHex(input string, out *int, start int) int {
	return parseBase(input, out, start, 16, 'x')
}

// parseBase parses a maximal digit run in the given base. The two byte
// prefix (0b, 0o, 0x, case insensitive) is consumed only when a digit of
// the base follows it. Overflow of the host int is a non-match.
func parseBase(input string, out *int, start, base int, marker byte) int {
	i := start
	if i+2 < len(input) && input[i] == '0' && input[i+1]|0x20 == marker &&
		digitValue(input[i+2]) < base {
		i += 2
	}
	x := 0
	j := i
	for j < len(input) {
		d := digitValue(input[j])
		if d >= base {
			break
		}
		if x > (math.MaxInt-d)/base {
			return 0
		}
		x = x*base + d
		j++
	}
	if j == i {
		return 0
	}
	*out = x
	return j - start
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// ParseFloat parses a decimal float literal: an optional sign, digits, an
// optional fraction and an optional exponent. An incomplete fraction or
// exponent tail is left unconsumed.
func ParseFloat(input string, out *float64, start int) int {
	i := start
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		i++
	}
	j := i
	for j < len(input) && input[j] >= '0' && input[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	if j < len(input) && input[j] == '.' {
		k := j + 1
		for k < len(input) && input[k] >= '0' && input[k] <= '9' {
			k++
		}
		if k > j+1 {
			j = k
		}
	}
	if j < len(input) && input[j]|0x20 == 'e' {
		k := j + 1
		if k < len(input) && (input[k] == '+' || input[k] == '-') {
			k++
		}
		d := k
		for k < len(input) && input[k] >= '0' && input[k] <= '9' {
			k++
		}
		if k > d {
			j = k
		}
	}
	x, err := strconv.ParseFloat(input[start:j], 64)
	if err != nil {
		return 0
	}
	*out = x
	return j - start
}

// ParseIdent matches an identifier: a letter or underscore followed by
// letters, digits and underscores.
func ParseIdent(input string, out *string, start int) int {
	if start >= len(input) || !isIdentStart(input[start]) {
		return 0
	}
	i := start + 1
	for i < len(input) && isIdentCont(input[i]) {
		i++
	}
	*out = input[start:i]
	return i - start
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// SkipWhitespace consumes a possibly empty run of whitespace. Zero is not
// a failure for this primitive; it is used as an unconditional skip.
func SkipWhitespace(input string, start int) int {
	i := start
	for i < len(input) && isSpace(input[i]) {
		i++
	}
	return i - start
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// ParseUntil captures text up to the first occurrence of stop, or to the
// end of input when stop is empty or absent. The capture is written even
// when it is empty; requiring at least one consumed byte is the caller's
// business (it is what tells $+ from $*).
func ParseUntil(input string, out *string, stop string, start int) int {
	end := len(input)
	if stop != "" {
		if k := strings.Index(input[start:], stop); k >= 0 {
			end = start + k
		}
	}
	*out = input[start:end]
	return end - start
}
