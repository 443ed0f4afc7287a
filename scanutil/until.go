package scanutil

import (
	"github.com/coregx/ahocorasick"

	"github.com/hucsmn/scan"
)

// UntilAny returns a capture matcher that consumes input up to the
// earliest occurrence of any of the given stop tokens, leaving the token
// itself unconsumed. It is the multi-token relative of scan.ParseUntil:
// the stop tokens are compiled into an Aho-Corasick automaton once, so a
// single left-to-right search finds the earliest stop regardless of how
// many tokens there are.
//
// No stop token in the remaining input is a non-match, as is a stop token
// sitting directly at the cursor (nothing would be captured).
//
// Panics when no tokens are given or the automaton cannot be built; like
// malformed grammar operands this is a construction-time programmer error.
func UntilAny(stops ...string) scan.CaptureFunc {
	if len(stops) == 0 {
		panic("scanutil: UntilAny needs at least one stop token")
	}
	builder := ahocorasick.NewBuilder()
	for _, stop := range stops {
		builder.AddPattern([]byte(stop))
	}
	auto, err := builder.Build()
	if err != nil {
		panic("scanutil: UntilAny: " + err.Error())
	}
	return func(input string, out *string, start int, args ...any) int {
		m := auto.Find([]byte(input), start)
		if m == nil || m.Start == start {
			return 0
		}
		*out = input[start:m.Start]
		return m.Start - start
	}
}
