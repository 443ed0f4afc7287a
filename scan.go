// Package scan implements typed pattern matching on strings.
//
// The package provides two complementary notations compiled into the same
// execution model: a scanf-style format string matcher and a small set of
// PEG-like combinators. Both translate a pattern into an ordered list of
// match steps which are evaluated against an input string in a single
// forward pass. There is no backtracking: once a step has consumed text or
// written a captured value, that effect stands even if a later step fails.
//
// Format strings
//
// The format notation binds directives to caller supplied output slots:
//
//	ok, err := scan.Scanf("abc:: xyz 89  33.25", "$w$s::$s$w$s$i  $f",
//		scan.Text(&key), scan.Text(&val), scan.Int(&num), scan.Float(&f))
//
// Available directives are:
//
//	$b $o $i $h  integer in base 2, 8, 10, 16 (binds an Int slot)
//	$f           decimal float (binds a Float slot)
//	$w           identifier [A-Za-z_][A-Za-z0-9_]* (binds a Text slot)
//	$s           skips whitespace, never fails (binds nothing)
//	$$           matches a literal dollar sign
//	$.           requires the whole input to be consumed; only valid at
//	             the very end of the pattern
//	$* $+        capture until the literal text following the directive;
//	             $* accepts an empty capture, $+ requires at least one
//	             character (binds a Text slot)
//	${name(..)}  calls a registered capture matcher (binds a slot of the
//	             matcher's type)
//	$[name(..)]  calls a registered skip matcher and advances by whatever
//	             it consumed, zero included; it never fails
//
// Any other directive, an unmatched bracket or a misplaced $. is rejected
// by Compile before any input is scanned, as is a type mismatch between a
// directive and its slot.
//
// Grammar combinators
//
// The combinator notation builds a pattern from atoms and operators:
//
//	idx := 0
//	ok := scan.Match(input, &idx,
//		scan.Bind(scan.Many1(scan.Range('a', 'z')), capture),
//		scan.Many(scan.Seq(scan.Many(scan.Set(" \t")), scan.Lit("x"))),
//		scan.Not(scan.Ch('U')),
//		scan.Lit("Z"))
//
// Atoms are Ch, Set, Range, Lit, Call and Pred; operators are Seq, Or,
// Many, Many1, Opt, Not, Rep, RepN, SepBy, SepBy1 and Bind. The top level
// argument list of Match or Grammar is an implicit sequence. Misuse of an
// operator (Opt or Or on an operand that cannot fail, Not on a composite
// pattern, invalid repetition bounds) panics at construction time, before
// any input is scanned.
//
// Greedy, non-backtracking repetition
//
// Many and its relatives are greedy and never give text back. A pattern
// like Seq(Many(digit), digit) can therefore never match: the repetition
// swallows the last digit. Likewise a failed branch inside a sequence
// keeps whatever it consumed before failing; the final cursor position
// after a failed match is observable through the pos parameter and tells
// how far scanning got.
//
// User matchers
//
// Both front ends are extended through plain functions. A skip matcher has
// the shape func(input string, start int, args ...any) int, a capture
// matcher additionally takes a pointer it writes through before returning
// the consumed length. Returning 0 means "no match". The primitives in
// this package (ParseInt, ParseIdent, ...) follow the same convention and
// can be used as reference implementations.
package scan

import "strings"

type (
	// Pattern is a compiled pattern: an ordered list of match steps,
	// immutable after compilation. Matching touches only the cursor and
	// whatever output slots or actions the pattern was built with, so a
	// Pattern that writes nothing may be shared between goroutines;
	// concurrent matches that capture need their own slots and hence
	// their own compilation.
	Pattern struct {
		steps []step
		full  bool
		src   string
	}

	// step is one unit of matching work. It runs its setup, tests its
	// condition and, only on success, advances the cursor and performs
	// side effects.
	step func(ctx *context) bool

	// Slot is a typed output binding for a format directive. The pointer
	// stays owned by the caller; matching only ever writes through it.
	Slot struct {
		kind slotKind
		ip   *int
		fp   *float64
		sp   *string
	}

	slotKind int

	// Action is a side effect bound to a grammar node with Bind. It runs
	// right after the node consumed its text; pos is the offset of the
	// first consumed element, so input[pos] is the element the step
	// started at.
	Action func(input string, pos int)

	// SkipFunc is a skip-only user matcher.
	SkipFunc func(input string, start int, args ...any) int

	// CaptureFunc is a user matcher capturing text.
	CaptureFunc func(input string, out *string, start int, args ...any) int

	// CaptureIntFunc is a user matcher capturing an integer.
	CaptureIntFunc func(input string, out *int, start int, args ...any) int

	// CaptureFloatFunc is a user matcher capturing a float.
	CaptureFloatFunc func(input string, out *float64, start int, args ...any) int
)

const (
	slotInt slotKind = iota
	slotFloat
	slotText
)

func (k slotKind) String() string {
	switch k {
	case slotInt:
		return "integer"
	case slotFloat:
		return "float"
	default:
		return "text"
	}
}

// Int binds an integer output slot.
func Int(p *int) Slot {
	return Slot{kind: slotInt, ip: p}
}

// Float binds a floating-point output slot.
func Float(p *float64) Slot {
	return Slot{kind: slotFloat, fp: p}
}

// Text binds a text output slot.
func Text(p *string) Slot {
	return Slot{kind: slotText, sp: p}
}

// Scanf compiles format with the default compiler and matches it against
// input. A malformed pattern is reported as an error; an ordinary
// non-match is (false, nil).
func Scanf(input, format string, slots ...Slot) (bool, error) {
	pat, err := Compile(format, slots...)
	if err != nil {
		return false, err
	}
	return pat.Match(input), nil
}

// Compile compiles a format string with the default compiler, binding its
// directives to the given output slots in order.
func Compile(format string, slots ...Slot) (*Pattern, error) {
	return defaultCompiler.Compile(format, slots...)
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(format string, slots ...Slot) *Pattern {
	pat, err := Compile(format, slots...)
	if err != nil {
		panic(err)
	}
	return pat
}

// Match runs the given grammar nodes as an implicit sequence against
// input, starting at *pos. On return *pos reflects the consumed length
// whether or not the whole match succeeded.
func Match(input string, pos *int, nodes ...Node) bool {
	return Grammar(nodes...).MatchAt(input, pos)
}

// Grammar compiles grammar nodes into a reusable Pattern. The node list is
// an implicit sequence.
func Grammar(nodes ...Node) *Pattern {
	steps := make([]step, len(nodes))
	strs := make([]string, len(nodes))
	for i, node := range nodes {
		steps[i] = node.exec
		strs[i] = node.String()
	}
	return &Pattern{steps: steps, src: strings.Join(strs, ", ")}
}

// Match reports whether the pattern matches at the start of input.
func (p *Pattern) Match(input string) bool {
	pos := 0
	return p.MatchAt(input, &pos)
}

// MatchAt matches the pattern against input starting at *pos. Steps run
// strictly in order and a step only runs if all prior steps succeeded. On
// return *pos is advanced by the total consumed length, also when the
// match failed partway.
func (p *Pattern) MatchAt(input string, pos *int) bool {
	if *pos < 0 || *pos > len(input) {
		return false
	}
	ctx := context{input: input, pos: *pos}
	ok := true
	for _, st := range p.steps {
		if !st(&ctx) {
			ok = false
			break
		}
	}
	*pos = ctx.pos
	if ok && p.full && ctx.pos != len(input) {
		ok = false
	}
	return ok
}

func (p *Pattern) String() string {
	return p.src
}
