package scanutil

import (
	"github.com/hucsmn/scan"
)

// Address grammars, built from the library's own combinators and exposed
// as capture matchers.
var (
	hexDigit = scan.Range('0', '9', 'a', 'f', 'A', 'F')

	// Dot-decimal IPv4 address: four octets in [0, 255].
	ipv4Grammar = scan.Grammar(
		scan.Call(octet),
		scan.RepN(3, scan.Seq(scan.Lit("."), scan.Call(octet))))

	// 48-bit hardware address: six colon or dash separated hex pairs.
	macGrammar = scan.Grammar(
		scan.RepN(2, hexDigit),
		scan.RepN(5, scan.Seq(scan.Set(":-"), scan.RepN(2, hexDigit))))
)

// IPv4 captures a dot-decimal IPv4 address.
func IPv4(input string, out *string, start int, args ...any) int {
	return capture(ipv4Grammar, input, out, start)
}

// MAC captures a 48-bit hardware address like "00:1b:44:11:3a:b7".
func MAC(input string, out *string, start int, args ...any) int {
	return capture(macGrammar, input, out, start)
}

func capture(pat *scan.Pattern, input string, out *string, start int) int {
	pos := start
	if !pat.MatchAt(input, &pos) {
		return 0
	}
	*out = input[start:pos]
	return pos - start
}

// octet matches up to three decimal digits valued at most 255. A sign is
// not part of an address, and a longer digit run is not an octet.
func octet(input string, start int, args ...any) int {
	if start < len(input) && (input[start] == '+' || input[start] == '-') {
		return 0
	}
	var v int
	n := scan.ParseInt(input, &v, start)
	if n == 0 || n > 3 || v > 255 {
		return 0
	}
	return n
}
