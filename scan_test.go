package scan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarWordRun(t *testing.T) {
	var word []byte
	letter := func(input string, pos int) { word = append(word, input[pos]) }

	input := "foobar x x  x   xWZ"
	pos := 0
	ok := Match(input, &pos,
		Bind(Many1(Range('a', 'z')), letter),
		Many(Seq(Many(Set(" \t")), Lit("x"))),
		Not(Ch('U')),
		Lit("Z"))
	assert.True(t, ok)
	assert.Equal(t, "foobar", string(word))
	assert.Equal(t, len(input), pos)
}

func TestGrammarCountedDigits(t *testing.T) {
	digit := Call(func(input string, start int, _ ...any) int {
		if start < len(input) && input[start] >= '0' && input[start] <= '9' {
			return 1
		}
		return 0
	})
	total := 0
	accumulate := func(input string, pos int) {
		total = total*10 + int(input[pos]-'0')
	}

	pos := 0
	ok := Match("201655-8-9", &pos,
		Bind(Rep(4, 6, digit), accumulate),
		Lit("-8"), Lit("-9"))
	assert.True(t, ok)
	assert.Equal(t, 201655, total)
	assert.Equal(t, 10, pos)

	// With too few digits the mandatory copies fail.
	total = 0
	pos = 0
	ok = Match("201-8-9", &pos,
		Bind(Rep(4, 6, digit), accumulate),
		Lit("-8"), Lit("-9"))
	assert.False(t, ok)
}

func TestMatchResumesAtCursor(t *testing.T) {
	input := "ab12cd"
	pos := 0
	require.True(t, Match(input, &pos, Lit("ab")))
	require.Equal(t, 2, pos)

	var n int
	require.True(t, Match(input, &pos, Call(func(in string, start int, _ ...any) int {
		return ParseInt(in, &n, start)
	})))
	assert.Equal(t, 4, pos)
	assert.Equal(t, 12, n)

	require.True(t, Match(input, &pos, Lit("cd")))
	assert.Equal(t, len(input), pos)
}

func TestMatchAtBounds(t *testing.T) {
	p := Grammar(Lit("x"))
	pos := -1
	assert.False(t, p.MatchAt("x", &pos))
	pos = 2
	assert.False(t, p.MatchAt("x", &pos))
	pos = 1
	assert.False(t, p.MatchAt("x", &pos), "at end of input")
	assert.Equal(t, 1, pos)
}

func TestCursorNeverMovesBackwards(t *testing.T) {
	patterns := [][]Node{
		{Lit("ab"), Lit("zz")},
		{Many(Set("ab")), Ch('q')},
		{Not(Ch('a'))},
		{Rep(2, 4, Range('a', 'z')), Lit("!")},
	}
	inputs := []string{"", "a", "ab", "abab", "zq", "aaaa!"}
	for _, nodes := range patterns {
		for _, input := range inputs {
			for start := 0; start <= len(input); start++ {
				pos := start
				Match(input, &pos, nodes...)
				assert.GreaterOrEqual(t, pos, start,
					"input %q start %d", input, start)
				assert.LessOrEqual(t, pos, len(input),
					"input %q start %d", input, start)
			}
		}
	}
}

func TestFullMatchEquivalence(t *testing.T) {
	// pattern$. accepts exactly the inputs pattern accepts while also
	// consuming them entirely.
	formats := []string{"$i", "$w$s$i", "abc$*;"}
	inputs := []string{"", "12", "12x", "a 1", "a 1 ", "abc;", "abcx;y"}
	for _, format := range formats {
		for _, input := range inputs {
			var n int
			var s string
			slots := make([]Slot, 0, 2)
			for _, c := range format {
				switch c {
				case 'i':
					slots = append(slots, Int(&n))
				case 'w', '*':
					slots = append(slots, Text(&s))
				}
			}
			p, err := Compile(format, slots...)
			require.NoError(t, err)
			pf, err := Compile(format+"$.", slots...)
			require.NoError(t, err)

			pos := 0
			ok := p.MatchAt(input, &pos)
			assert.Equal(t, ok && pos == len(input), pf.Match(input),
				"format %q input %q", format, input)
		}
	}
}

func TestPatternReuse(t *testing.T) {
	var n int
	p := MustCompile("$i", Int(&n))
	assert.True(t, p.Match("7"))
	assert.Equal(t, 7, n)
	assert.True(t, p.Match("42x"))
	assert.Equal(t, 42, n)
	assert.False(t, p.Match("x"))
}

func TestPatternSharedAcrossGoroutines(t *testing.T) {
	// A pattern with no captures keeps all state in the caller's cursor.
	p := Grammar(Many1(Range('a', 'z')), Lit("!"))
	inputs := []string{"abc!", "q!", "zzzz!", "nope", "x!"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, input := range inputs {
				pos := 0
				want := len(input) > 1 && input[len(input)-1] == '!'
				assert.Equal(t, want, p.MatchAt(input, &pos), "input %q", input)
			}
		}()
	}
	wg.Wait()
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("$q") })
}

func TestPatternString(t *testing.T) {
	var n int
	p := MustCompile("$i of $w", Int(&n), Text(new(string)))
	assert.Equal(t, "$i of $w", p.String())

	g := Grammar(Ch('a'), Many(Ch('b')))
	assert.Equal(t, "'a', *'b'", g.String())
}
