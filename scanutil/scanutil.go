// Package scanutil provides ready-made user matchers for the scan package.
//
// Following categories of matchers are provided:
//
//	Skips (Spaces, Sep, Digit)
//	Captures (Digits, Rest, UntilAny)
//	Addresses (IPv4, MAC)
//	Adapters (Into, RegisterAll)
//
// All matchers follow the scan user-matcher convention: they return the
// number of bytes consumed and 0 for "no match".
package scanutil

import (
	"github.com/hucsmn/scan"
)

// RegisterAll installs the named matchers of this package into the given
// compiler, making directives like $[sep], ${digits(4)}, ${ipv4} or
// ${rest} available in its format strings.
func RegisterAll(c *scan.Compiler) error {
	named := map[string]any{
		"spaces": scan.SkipFunc(Spaces),
		"sep":    scan.SkipFunc(Sep),
		"digit":  scan.SkipFunc(Digit),
		"digits": scan.CaptureIntFunc(Digits),
		"rest":   scan.CaptureFunc(Rest),
		"ipv4":   scan.CaptureFunc(IPv4),
		"mac":    scan.CaptureFunc(MAC),
	}
	for name, m := range named {
		if err := c.Register(name, m); err != nil {
			return err
		}
	}
	return nil
}

// Spaces skips a possibly empty whitespace run. Use it with $[spaces];
// under ${...} or Call it would fail on zero length.
func Spaces(input string, start int, args ...any) int {
	return scan.SkipWhitespace(input, start)
}

// Sep skips a possibly empty run of separator and whitespace characters.
// The default separator set ";,-." can be overridden with a string
// argument, as in $[sep("|")].
func Sep(input string, start int, args ...any) int {
	seps := ";,-."
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			seps = s
		}
	}
	i := start
	for i < len(input) {
		c := input[i]
		if !isSep(seps, c) && !isSpace(c) {
			break
		}
		i++
	}
	return i - start
}

// Digit matches a single decimal digit.
func Digit(input string, start int, args ...any) int {
	if start < len(input) && input[start] >= '0' && input[start] <= '9' {
		return 1
	}
	return 0
}

// Digits captures a decimal digit run as an integer. With an integer
// argument, as in ${digits(4)}, it consumes exactly that many digits and
// fails when fewer are available. Overflow of the host int is a non-match.
func Digits(input string, out *int, start int, args ...any) int {
	count := 0
	if len(args) > 0 {
		if n, ok := args[0].(int); ok {
			count = n
		}
	}
	i := start
	x := 0
	for i < len(input) && input[i] >= '0' && input[i] <= '9' {
		if count > 0 && i-start == count {
			break
		}
		d := int(input[i] - '0')
		if x > (maxInt-d)/10 {
			return 0
		}
		x = x*10 + d
		i++
	}
	n := i - start
	if n == 0 || (count > 0 && n != count) {
		return 0
	}
	*out = x
	return n
}

// Rest captures everything up to the end of input. At the end of input the
// capture would be empty, which ${rest} treats as a non-match.
func Rest(input string, out *string, start int, args ...any) int {
	*out = input[start:]
	return len(input) - start
}

// Into adapts a capture matcher for grammar use: the returned skip matcher
// writes through dst on every successful call.
func Into(fn scan.CaptureFunc, dst *string) scan.SkipFunc {
	return func(input string, start int, args ...any) int {
		return fn(input, dst, start, args...)
	}
}

const maxInt = int(^uint(0) >> 1)

func isSep(seps string, c byte) bool {
	for i := 0; i < len(seps); i++ {
		if seps[i] == c {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
