package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMany(t *testing.T) {
	// *E never fails, it consumes what it can and reports true.
	for _, input := range []string{"", "y", "x", "xxxy"} {
		pos := 0
		assert.True(t, Match(input, &pos, Many(Ch('x'))), "input %q", input)
	}
	pos := 0
	assert.True(t, Match("xxxy", &pos, Many(Ch('x'))))
	assert.Equal(t, 3, pos)
}

func TestMany1(t *testing.T) {
	pos := 0
	assert.False(t, Match("", &pos, Many1(Ch('x'))))
	pos = 0
	assert.False(t, Match("yx", &pos, Many1(Ch('x'))))
	pos = 0
	assert.True(t, Match("xxy", &pos, Many1(Ch('x'))))
	assert.Equal(t, 2, pos)
}

func TestOpt(t *testing.T) {
	pos := 0
	assert.True(t, Match("ab", &pos, Opt(Ch('a')), Ch('b')))
	assert.Equal(t, 2, pos)
	pos = 0
	assert.True(t, Match("b", &pos, Opt(Ch('a')), Ch('b')))
	assert.Equal(t, 1, pos)
}

func TestOr(t *testing.T) {
	alt := Or(Ch('a'), Ch('b'))
	pos := 0
	assert.True(t, Match("a", &pos, alt))
	pos = 0
	assert.True(t, Match("b", &pos, alt))
	pos = 0
	assert.False(t, Match("c", &pos, alt))
}

func TestSeqConsumesOnFailure(t *testing.T) {
	// A failing branch keeps what it consumed before the failure; the
	// cursor never moves backwards.
	pos := 0
	assert.False(t, Match("  q", &pos, Seq(Many(Set(" ")), Ch('x'))))
	assert.Equal(t, 2, pos)
}

func TestNot(t *testing.T) {
	// ~E succeeds where E would fail, and keeps E's consumption rule:
	// one byte here, since the condition is single byte.
	pos := 0
	assert.True(t, Match("WZ", &pos, Not(Ch('U')), Ch('Z')))
	assert.Equal(t, 2, pos)

	pos = 0
	assert.False(t, Match("UZ", &pos, Not(Ch('U'))))
	assert.Equal(t, 0, pos)

	// At the end of input there is no 'U' to reject.
	pos = 0
	assert.True(t, Match("", &pos, Not(Ch('U'))))
	assert.Equal(t, 0, pos)
}

func TestNotLiteral(t *testing.T) {
	// A literal that is absent reports zero length, so its negation
	// consumes nothing: a negative lookahead.
	pos := 0
	assert.True(t, Match("xb", &pos, Not(Lit("ab")), Lit("xb")))
	assert.Equal(t, 2, pos)

	pos = 0
	assert.False(t, Match("abx", &pos, Not(Lit("ab"))))
	assert.Equal(t, 0, pos)
}

func TestPred(t *testing.T) {
	pos := 0
	assert.True(t, Match("abc", &pos, Pred(Lit("ab")), Lit("abc")))
	assert.Equal(t, 3, pos, "pred looks ahead without consuming")

	pos = 0
	assert.False(t, Match("xbc", &pos, Pred(Lit("ab"))))
	assert.Equal(t, 0, pos)
}

func TestRep(t *testing.T) {
	pos := 0
	assert.True(t, Match("aaa", &pos, RepN(3, Ch('a'))))
	assert.Equal(t, 3, pos)

	pos = 0
	assert.False(t, Match("aa", &pos, RepN(3, Ch('a'))))

	// {1,3} takes at most three.
	pos = 0
	assert.True(t, Match("aaaa", &pos, Rep(1, 3, Ch('a'))))
	assert.Equal(t, 3, pos)

	pos = 0
	assert.True(t, Match("a", &pos, Rep(1, 3, Ch('a'))))
	assert.Equal(t, 1, pos)
}

func TestSepBy(t *testing.T) {
	list := SepBy1(Many1(Range('0', '9')), Ch(','))
	pos := 0
	assert.True(t, Match("1,22,333", &pos, list))
	assert.Equal(t, 8, pos)

	pos = 0
	assert.False(t, Match("", &pos, list))

	empty := SepBy(Many1(Range('0', '9')), Ch(','))
	pos = 0
	assert.True(t, Match("", &pos, empty))
}

func TestBindFiresPerOccurrence(t *testing.T) {
	var got []byte
	collect := func(input string, pos int) { got = append(got, input[pos]) }

	pos := 0
	assert.True(t, Match("abc1", &pos, Bind(Many1(Range('a', 'z')), collect)))
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 3, pos)
}

func TestBindNilAction(t *testing.T) {
	pos := 0
	assert.True(t, Match("a", &pos, Bind(Ch('a'), nil)))
}

func TestZeroProgressRepetitionTerminates(t *testing.T) {
	// A sub-pattern that succeeds without consuming would loop forever;
	// the repetition stops as soon as the cursor stands still.
	pos := 0
	assert.True(t, Match("ab", &pos, Many(Pred(Ch('a')))))
	assert.Equal(t, 0, pos)

	pos = 0
	assert.True(t, Match("ab", &pos, Rep(0, 5, Pred(Ch('a')))))
	assert.Equal(t, 0, pos)
}

func TestConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { Opt(Many(Ch('x'))) })
	assert.Panics(t, func() { Or(Many(Ch('x')), Ch('y')) })
	assert.Panics(t, func() { Or(Ch('y'), Many(Ch('x'))) })
	assert.Panics(t, func() { Not(Seq(Ch('a'), Ch('b'))) })
	assert.Panics(t, func() { Pred(Seq(Ch('a'), Ch('b'))) })
	assert.Panics(t, func() { Rep(-1, 2, Ch('a')) })
	assert.Panics(t, func() { Rep(3, 2, Ch('a')) })
	assert.Panics(t, func() { Call(nil) })
	assert.Panics(t, func() { Range('a', 'z', 'A') })
}

func TestSetAndRange(t *testing.T) {
	pos := 0
	assert.True(t, Match("-", &pos, Set(":-")))
	pos = 0
	assert.False(t, Match("x", &pos, Set(":-")))

	hex := Range('0', '9', 'a', 'f', 'A', 'F')
	for _, input := range []string{"7", "c", "E"} {
		pos = 0
		assert.True(t, Match(input, &pos, hex), "input %q", input)
	}
	pos = 0
	assert.False(t, Match("g", &pos, hex))
	pos = 0
	assert.False(t, Match("", &pos, hex))
}

func TestCallClampsNegative(t *testing.T) {
	bogus := Call(func(string, int, ...any) int { return -3 })
	pos := 0
	assert.False(t, Match("abc", &pos, bogus))
	assert.Equal(t, 0, pos)
}

func TestNodeStrings(t *testing.T) {
	assert.Equal(t, "'x'", Ch('x').String())
	assert.Equal(t, `"ab"`, Lit("ab").String())
	assert.Equal(t, "*'x'", Many(Ch('x')).String())
	assert.Equal(t, "+'x'", Many1(Ch('x')).String())
	assert.Equal(t, "?'x'", Opt(Ch('x')).String())
	assert.Equal(t, "~'x'", Not(Ch('x')).String())
	assert.Equal(t, "('a' | 'b')", Or(Ch('a'), Ch('b')).String())
	assert.Equal(t, "'a'{3}", RepN(3, Ch('a')).String())
	assert.Equal(t, "'a'{1,3}", Rep(1, 3, Ch('a')).String())
}
