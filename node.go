package scan

import (
	"fmt"
	"strings"
)

// Running state of one pattern evaluation. The cursor only moves forward;
// nothing a step did is undone when a later step fails.
type context struct {
	input string
	pos   int
}

func (ctx *context) consume(n int) {
	ctx.pos += n
}

type (
	// Node is one grammar node of a combinator pattern.
	Node interface {
		// exec runs the node's setup, tests its condition and, on
		// success only, consumes text and fires side effects.
		exec(ctx *context) bool

		// conditional reports whether the node can fail at all. Many
		// and Opt always succeed and are not conditional.
		conditional() bool

		String() string
	}

	// atom is a node whose condition is separable from its consumption:
	// probe computes the would-be consumed length and the condition
	// without touching the cursor, commit performs the consumption.
	// Negation and predication are only defined over atoms.
	atom interface {
		Node
		probe(ctx *context) (n int, ok bool)
		commit(ctx *context, n int)
	}
)

// Underlying atom types.
type (
	chNode struct {
		c byte
	}

	setNode struct {
		chars string
		has   [256]bool
	}

	rangeNode struct {
		ranges []struct {
			lo, hi byte
		}
	}

	litNode struct {
		text string
	}

	callNode struct {
		fn   SkipFunc
		args []any
	}

	predNode struct {
		sub atom
	}
)

// Ch matches a single byte.
func Ch(c byte) Node {
	return &chNode{c}
}

// Set matches a single byte contained in chars.
func Set(chars string) Node {
	pat := &setNode{chars: chars}
	for i := 0; i < len(chars); i++ {
		pat.has[chars[i]] = true
	}
	return pat
}

// Range matches a single byte inside any of the given inclusive range
// pairs, e.g. Range('a', 'z', 'A', 'Z').
func Range(lo, hi byte, rest ...byte) Node {
	if len(rest)%2 != 0 {
		panic(errorf("byte ranges must come in pairs"))
	}
	pat := &rangeNode{ranges: make([]struct{ lo, hi byte }, 1+len(rest)/2)}
	pat.ranges[0].lo = lo
	pat.ranges[0].hi = hi
	for i := 1; i < len(pat.ranges); i++ {
		pat.ranges[i].lo = rest[(i-1)*2]
		pat.ranges[i].hi = rest[(i-1)*2+1]
	}
	return pat
}

// Lit matches text verbatim.
func Lit(text string) Node {
	return &litNode{text}
}

// Call matches by invoking a user matcher at the cursor; the matcher's
// returned length decides success (0 means no match) and how far the
// cursor advances. Extra args are passed through on every invocation.
func Call(fn SkipFunc, args ...any) Node {
	if fn == nil {
		panic(errorf("call of a nil matcher"))
	}
	return &callNode{fn: fn, args: args}
}

// Pred turns a pattern into a pure test: it succeeds iff the wrapped atom
// would match, consuming nothing.
func Pred(e Node) Node {
	a, ok := e.(atom)
	if !ok {
		panic(errorf("predicate applied to a non-condition pattern: %s", e))
	}
	return &predNode{a}
}

// Shared exec shape of all atoms.
func execAtom(a atom, ctx *context) bool {
	n, ok := a.probe(ctx)
	if !ok {
		return false
	}
	a.commit(ctx, n)
	return true
}

// Matches one exact byte.
func (pat *chNode) probe(ctx *context) (int, bool) {
	if ctx.pos >= len(ctx.input) {
		return 0, false
	}
	return 1, ctx.input[ctx.pos] == pat.c
}

func (pat *chNode) commit(ctx *context, n int) { ctx.consume(n) }
func (pat *chNode) exec(ctx *context) bool     { return execAtom(pat, ctx) }
func (pat *chNode) conditional() bool          { return true }

// Matches one byte in set.
func (pat *setNode) probe(ctx *context) (int, bool) {
	if ctx.pos >= len(ctx.input) {
		return 0, false
	}
	return 1, pat.has[ctx.input[ctx.pos]]
}

func (pat *setNode) commit(ctx *context, n int) { ctx.consume(n) }
func (pat *setNode) exec(ctx *context) bool     { return execAtom(pat, ctx) }
func (pat *setNode) conditional() bool          { return true }

// Matches one byte in range.
func (pat *rangeNode) probe(ctx *context) (int, bool) {
	if ctx.pos >= len(ctx.input) {
		return 0, false
	}
	c := ctx.input[ctx.pos]
	for _, pair := range pat.ranges {
		if c >= pair.lo && c <= pair.hi {
			return 1, true
		}
	}
	return 1, false
}

func (pat *rangeNode) commit(ctx *context, n int) { ctx.consume(n) }
func (pat *rangeNode) exec(ctx *context) bool     { return execAtom(pat, ctx) }
func (pat *rangeNode) conditional() bool          { return true }

// Matches text verbatim.
func (pat *litNode) probe(ctx *context) (int, bool) {
	n := Skip(ctx.input, pat.text, ctx.pos)
	return n, n > 0 || len(pat.text) == 0
}

func (pat *litNode) commit(ctx *context, n int) { ctx.consume(n) }
func (pat *litNode) exec(ctx *context) bool     { return execAtom(pat, ctx) }
func (pat *litNode) conditional() bool          { return len(pat.text) > 0 }

// Invokes the user matcher.
func (pat *callNode) probe(ctx *context) (int, bool) {
	n := pat.fn(ctx.input, ctx.pos, pat.args...)
	if n < 0 {
		n = 0
	}
	return n, n > 0
}

func (pat *callNode) commit(ctx *context, n int) { ctx.consume(n) }
func (pat *callNode) exec(ctx *context) bool     { return execAtom(pat, ctx) }
func (pat *callNode) conditional() bool          { return true }

// Tests the wrapped atom without consuming.
func (pat *predNode) probe(ctx *context) (int, bool) {
	_, ok := pat.sub.probe(ctx)
	return 0, ok
}

func (pat *predNode) commit(ctx *context, n int) {}

func (pat *predNode) exec(ctx *context) bool {
	_, ok := pat.sub.probe(ctx)
	return ok
}

func (pat *predNode) conditional() bool { return true }

func (pat *chNode) String() string {
	return fmt.Sprintf("%q", pat.c)
}

func (pat *setNode) String() string {
	return fmt.Sprintf("{%q}", pat.chars)
}

func (pat *rangeNode) String() string {
	strs := make([]string, len(pat.ranges))
	for i := range pat.ranges {
		strs[i] = fmt.Sprintf("%q..%q", pat.ranges[i].lo, pat.ranges[i].hi)
	}
	return fmt.Sprintf("{%s}", strings.Join(strs, ", "))
}

func (pat *litNode) String() string {
	return fmt.Sprintf("%q", pat.text)
}

func (pat *callNode) String() string {
	if len(pat.args) == 0 {
		return fmt.Sprintf("call_%p", pat.fn)
	}
	strs := make([]string, len(pat.args))
	for i := range pat.args {
		strs[i] = fmt.Sprint(pat.args[i])
	}
	return fmt.Sprintf("call_%p(%s)", pat.fn, strings.Join(strs, ", "))
}

func (pat *predNode) String() string {
	return fmt.Sprintf("pred(%s)", pat.sub)
}
