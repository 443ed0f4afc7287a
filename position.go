package scan

import (
	"fmt"
	"sort"
)

// Position locates an offset in some input as 1-based line and column
// numbers. Columns count bytes, like everything else in this package.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate computes the position of offset within input. Use a Locator for
// repeated queries over the same input.
func Locate(input string, offset int) Position {
	return (&Locator{input: input}).Locate(offset)
}

// Locator answers repeated position queries over one input, caching the
// line starts found so far. Recognized line endings are "\n", "\r" and
// "\r\n".
type Locator struct {
	input  string
	cached int
	starts []int // offsets where line 2, 3, ... begin
}

func NewLocator(input string) *Locator {
	return &Locator{input: input}
}

// Locate computes the position of offset, clamped to [0, len(input)].
func (l *Locator) Locate(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.input) {
		offset = len(l.input)
	}
	l.scanTo(offset)

	ln := sort.SearchInts(l.starts, offset+1)
	lnstart := 0
	if ln > 0 {
		lnstart = l.starts[ln-1]
	}
	return Position{
		Offset: offset,
		Line:   ln + 1,
		Column: offset - lnstart + 1,
	}
}

func (l *Locator) scanTo(offset int) {
	for ; l.cached < offset; l.cached++ {
		switch l.input[l.cached] {
		case '\n':
			l.starts = append(l.starts, l.cached+1)
		case '\r':
			// A bare carriage return ends a line; "\r\n" is recorded
			// at its "\n".
			if l.cached+1 >= len(l.input) || l.input[l.cached+1] != '\n' {
				l.starts = append(l.starts, l.cached+1)
			}
		}
	}
}
