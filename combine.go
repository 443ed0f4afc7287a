package scan

import (
	"fmt"
	"strings"
)

// Underlying composite node types.
type (
	seqNode struct {
		subs []Node
	}

	orNode struct {
		a, b Node
	}

	manyNode struct {
		sub Node
	}

	many1Node struct {
		sub Node
	}

	optNode struct {
		sub Node
	}

	notNode struct {
		sub atom
	}

	repNode struct {
		min, max int
		sub      Node
	}

	boundAtom struct {
		sub atom
		act Action
	}

	boundNode struct {
		sub Node
		act Action
	}
)

// Seq matches the given nodes in order, short-circuiting at the first
// failure. A failed element keeps whatever text the earlier elements and
// its own partial progress consumed. With a single node it is a
// transparent passthrough.
func Seq(nodes ...Node) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return &seqNode{nodes}
}

// Or tries a first and runs b only when a's condition failed. Both
// operands must be conditional. Since the branch decision is internal, Or
// composes as an ordinary sequence element but exposes no condition to
// negate or test; use it in terminal position of a choice.
func Or(a, b Node) Node {
	if !a.conditional() || !b.conditional() {
		panic(errorf("alternation applied to a non-condition pattern: %s | %s", a, b))
	}
	return &orNode{a, b}
}

// Many matches e repeatedly, greedily, while input remains and e keeps
// matching. It never fails itself: zero repetitions is a success. Text
// consumed by the final failing attempt is kept (no backtracking).
func Many(e Node) Node {
	return &manyNode{e}
}

// Many1 requires one occurrence of e, then matches like Many(e).
func Many1(e Node) Node {
	return &many1Node{e}
}

// Opt matches e if it matches and succeeds either way. The operand must be
// conditional.
func Opt(e Node) Node {
	if !e.conditional() {
		panic(errorf("optional applied to a non-condition pattern: %s", e))
	}
	return &optNode{e}
}

// Not inverts the condition of an atomic pattern, keeping its consumption:
// when the wrapped atom does not match, Not succeeds and advances by the
// length the atom reported (one byte for single-byte atoms, zero at end of
// input). Only atoms have a separable condition to invert.
func Not(e Node) Node {
	a, ok := e.(atom)
	if !ok {
		panic(errorf("negation applied to a non-condition pattern: %s", e))
	}
	return &notNode{a}
}

// Rep matches e at least min and at most max times: min mandatory copies
// followed by max-min optional ones.
func Rep(min, max int, e Node) Node {
	if min < 0 || max < min {
		panic(errorf("invalid repetition bounds {%d,%d}", min, max))
	}
	return &repNode{min: min, max: max, sub: e}
}

// RepN matches exactly n copies of e.
func RepN(n int, e Node) Node {
	return Rep(n, n, e)
}

// SepBy matches zero or more items separated by sep:
// it is shorthand for Opt(Seq(item, Many(Seq(sep, item)))).
func SepBy(item, sep Node) Node {
	return Opt(SepBy1(item, sep))
}

// SepBy1 matches one or more items separated by sep.
func SepBy1(item, sep Node) Node {
	return Seq(item, Many(Seq(sep, item)))
}

// Bind attaches an action to e, to run right after e consumed its text and
// only on e's success. On a quantified node the action distributes to the
// repeated unit, so it fires once per consumed occurrence.
func Bind(e Node, act Action) Node {
	if act == nil {
		return e
	}
	switch pat := e.(type) {
	case *manyNode:
		return &manyNode{Bind(pat.sub, act)}
	case *many1Node:
		return &many1Node{Bind(pat.sub, act)}
	case *repNode:
		return &repNode{min: pat.min, max: pat.max, sub: Bind(pat.sub, act)}
	case *optNode:
		return &optNode{Bind(pat.sub, act)}
	case atom:
		return &boundAtom{sub: pat, act: act}
	default:
		return &boundNode{sub: e, act: act}
	}
}

// Matches if all sub-patterns match in order.
func (pat *seqNode) exec(ctx *context) bool {
	for _, sub := range pat.subs {
		if !sub.exec(ctx) {
			return false
		}
	}
	return true
}

func (pat *seqNode) conditional() bool {
	for _, sub := range pat.subs {
		if sub.conditional() {
			return true
		}
	}
	return false
}

// Runs the first branch whose condition holds.
func (pat *orNode) exec(ctx *context) bool {
	return pat.a.exec(ctx) || pat.b.exec(ctx)
}

func (pat *orNode) conditional() bool { return true }

// Greedy zero-or-more loop. An iteration that succeeds without making
// progress would repeat forever; the loop stops instead.
func matchMany(sub Node, ctx *context) {
	for ctx.pos < len(ctx.input) {
		start := ctx.pos
		if !sub.exec(ctx) {
			break
		}
		if ctx.pos == start {
			break
		}
	}
}

func (pat *manyNode) exec(ctx *context) bool {
	matchMany(pat.sub, ctx)
	return true
}

func (pat *manyNode) conditional() bool { return false }

// One mandatory occurrence, then the greedy loop.
func (pat *many1Node) exec(ctx *context) bool {
	if !pat.sub.exec(ctx) {
		return false
	}
	matchMany(pat.sub, ctx)
	return true
}

func (pat *many1Node) conditional() bool { return pat.sub.conditional() }

func (pat *optNode) exec(ctx *context) bool {
	pat.sub.exec(ctx)
	return true
}

func (pat *optNode) conditional() bool { return false }

// Inverted condition, consumption kept.
func (pat *notNode) exec(ctx *context) bool {
	n, ok := pat.sub.probe(ctx)
	if ok {
		return false
	}
	pat.sub.commit(ctx, n)
	return true
}

func (pat *notNode) conditional() bool { return true }

// min mandatory copies, then max-min optional ones. An optional copy that
// leaves the cursor where it was decides nothing new, so the loop stops.
func (pat *repNode) exec(ctx *context) bool {
	for i := 0; i < pat.min; i++ {
		if !pat.sub.exec(ctx) {
			return false
		}
	}
	for i := pat.min; i < pat.max; i++ {
		start := ctx.pos
		pat.sub.exec(ctx)
		if ctx.pos == start {
			break
		}
	}
	return true
}

func (pat *repNode) conditional() bool { return pat.min > 0 }

// Atom with an action: still an atom, so negation and predication stay
// available on it.
func (pat *boundAtom) probe(ctx *context) (int, bool) {
	return pat.sub.probe(ctx)
}

func (pat *boundAtom) commit(ctx *context, n int) {
	start := ctx.pos
	pat.sub.commit(ctx, n)
	pat.act(ctx.input, start)
}

func (pat *boundAtom) exec(ctx *context) bool { return execAtom(pat, ctx) }
func (pat *boundAtom) conditional() bool      { return pat.sub.conditional() }

func (pat *boundNode) exec(ctx *context) bool {
	start := ctx.pos
	if !pat.sub.exec(ctx) {
		return false
	}
	pat.act(ctx.input, start)
	return true
}

func (pat *boundNode) conditional() bool { return pat.sub.conditional() }

func (pat *seqNode) String() string {
	strs := make([]string, len(pat.subs))
	for i, sub := range pat.subs {
		strs[i] = sub.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(strs, ", "))
}

func (pat *orNode) String() string {
	return fmt.Sprintf("(%s | %s)", pat.a, pat.b)
}

func (pat *manyNode) String() string {
	return fmt.Sprintf("*%s", pat.sub)
}

func (pat *many1Node) String() string {
	return fmt.Sprintf("+%s", pat.sub)
}

func (pat *optNode) String() string {
	return fmt.Sprintf("?%s", pat.sub)
}

func (pat *notNode) String() string {
	return fmt.Sprintf("~%s", pat.sub)
}

func (pat *repNode) String() string {
	if pat.min == pat.max {
		return fmt.Sprintf("%s{%d}", pat.sub, pat.min)
	}
	return fmt.Sprintf("%s{%d,%d}", pat.sub, pat.min, pat.max)
}

func (pat *boundAtom) String() string {
	return fmt.Sprintf("%s -> action", pat.sub)
}

func (pat *boundNode) String() string {
	return fmt.Sprintf("%s -> action", pat.sub)
}
