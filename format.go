package scan

import (
	"strconv"
	"strings"
)

// Compiler translates format strings into Patterns and resolves the
// ${name} and $[name] directives against its registered user matchers.
type Compiler struct {
	matchers map[string]any
}

var defaultCompiler = NewCompiler()

// NewCompiler returns an empty Compiler.
func NewCompiler() *Compiler {
	return &Compiler{matchers: make(map[string]any)}
}

// Register installs a user matcher into the package's default compiler.
func Register(name string, m any) error {
	return defaultCompiler.Register(name, m)
}

// Register installs a user matcher under the given name. The matcher must
// have one of the SkipFunc, CaptureFunc, CaptureIntFunc or
// CaptureFloatFunc shapes; its shape decides which directives may call it
// and which slot type ${name} binds.
func (c *Compiler) Register(name string, m any) error {
	var out string
	if ParseIdent(name, &out, 0) != len(name) || len(name) == 0 {
		return errorf("invalid matcher name %q", name)
	}
	switch fn := m.(type) {
	case SkipFunc:
		c.matchers[name] = fn
	case func(string, int, ...any) int:
		c.matchers[name] = SkipFunc(fn)
	case CaptureFunc:
		c.matchers[name] = fn
	case func(string, *string, int, ...any) int:
		c.matchers[name] = CaptureFunc(fn)
	case CaptureIntFunc:
		c.matchers[name] = fn
	case func(string, *int, int, ...any) int:
		c.matchers[name] = CaptureIntFunc(fn)
	case CaptureFloatFunc:
		c.matchers[name] = fn
	case func(string, *float64, int, ...any) int:
		c.matchers[name] = CaptureFloatFunc(fn)
	default:
		return errorf("matcher %q has unsupported type %T", name, m)
	}
	return nil
}

// Compile translates a format string into a Pattern, binding its
// directives to the given output slots in order. All pattern errors
// (unknown directive, unmatched bracket, misplaced $., slot count or type
// mismatch, unknown matcher) are reported here, before any input is
// scanned.
func (c *Compiler) Compile(format string, slots ...Slot) (*Pattern, error) {
	p := &Pattern{src: format}
	next := 0

	takeSlot := func(pos int, directive string, kind slotKind) (Slot, error) {
		if next >= len(slots) {
			return Slot{}, patternErrorf(format, pos,
				"no output slot left for %s", directive)
		}
		s := slots[next]
		if s.kind != kind {
			return Slot{}, patternErrorf(format, pos,
				"%s needs an %s slot, slot %d is %s", directive, kind, next, s.kind)
		}
		next++
		return s, nil
	}

	i := 0
	for i < len(format) {
		if format[i] != '$' {
			j := i + 1
			for j < len(format) && format[j] != '$' {
				j++
			}
			p.steps = append(p.steps, stepLiteral(format[i:j]))
			i = j
			continue
		}

		pos := i
		if i+1 >= len(format) {
			return nil, patternErrorf(format, pos, "missing directive after $")
		}
		switch d := format[i+1]; d {
		case '$':
			p.steps = append(p.steps, stepLiteral("$"))
			i += 2

		case 's':
			p.steps = append(p.steps, func(ctx *context) bool {
				ctx.consume(SkipWhitespace(ctx.input, ctx.pos))
				return true
			})
			i += 2

		case '.':
			if i+2 != len(format) {
				return nil, patternErrorf(format, pos,
					"$. is only valid at the end of the pattern")
			}
			p.full = true
			i += 2

		case 'b', 'o', 'i', 'h':
			slot, err := takeSlot(pos, "$"+string(d), slotInt)
			if err != nil {
				return nil, err
			}
			parse := ParseInt
			switch d {
			case 'b':
				parse = ParseBin
			case 'o':
				parse = ParseOct
			case 'h':
				parse = ParseHex
			}
			p.steps = append(p.steps, func(ctx *context) bool {
				n := parse(ctx.input, slot.ip, ctx.pos)
				if n == 0 {
					return false
				}
				ctx.consume(n)
				return true
			})
			i += 2

		case 'f':
			slot, err := takeSlot(pos, "$f", slotFloat)
			if err != nil {
				return nil, err
			}
			p.steps = append(p.steps, func(ctx *context) bool {
				n := ParseFloat(ctx.input, slot.fp, ctx.pos)
				if n == 0 {
					return false
				}
				ctx.consume(n)
				return true
			})
			i += 2

		case 'w':
			slot, err := takeSlot(pos, "$w", slotText)
			if err != nil {
				return nil, err
			}
			p.steps = append(p.steps, func(ctx *context) bool {
				n := ParseIdent(ctx.input, slot.sp, ctx.pos)
				if n == 0 {
					return false
				}
				ctx.consume(n)
				return true
			})
			i += 2

		case '*', '+':
			slot, err := takeSlot(pos, "$"+string(d), slotText)
			if err != nil {
				return nil, err
			}
			// The stop token is the literal text following the
			// directive, up to the next $ or the end of the pattern.
			// It stays unconsumed so the literal step after this one
			// matches it.
			k := i + 2
			for k < len(format) && format[k] != '$' {
				k++
			}
			stop := format[i+2 : k]
			atLeastOne := d == '+'
			p.steps = append(p.steps, func(ctx *context) bool {
				n := ParseUntil(ctx.input, slot.sp, stop, ctx.pos)
				if atLeastOne && n == 0 {
					return false
				}
				ctx.consume(n)
				return true
			})
			i += 2

		case '{', '[':
			closer := byte('}')
			if d == '[' {
				closer = ']'
			}
			end := strings.IndexByte(format[i+2:], closer)
			if end < 0 {
				return nil, patternErrorf(format, pos, "unmatched $%c", d)
			}
			expr := format[i+2 : i+2+end]
			name, args, err := parseCallExpr(expr)
			if err != nil {
				return nil, patternErrorf(format, pos, "%s", err)
			}
			m, ok := c.matchers[name]
			if !ok {
				return nil, patternErrorf(format, pos, "unknown matcher %q", name)
			}
			st, err := c.matcherStep(format, pos, d, expr, m, takeSlot, args)
			if err != nil {
				return nil, err
			}
			p.steps = append(p.steps, st)
			i += 2 + end + 1

		default:
			return nil, patternErrorf(format, pos, "unknown directive $%c", d)
		}
	}

	if next != len(slots) {
		return nil, patternErrorf(format, len(format),
			"%d output slots supplied, only %d bound", len(slots), next)
	}
	return p, nil
}

func stepLiteral(text string) step {
	return func(ctx *context) bool {
		n := Skip(ctx.input, text, ctx.pos)
		if n == 0 {
			return false
		}
		ctx.consume(n)
		return true
	}
}

// matcherStep builds the step for a ${expr} or $[expr] directive. A
// $[expr] skip never fails: it advances by whatever the matcher consumed,
// zero included, which is what makes it usable for optional separators. A
// ${expr} capture is gated on a non-zero consumed length.
func (c *Compiler) matcherStep(
	format string, pos int, d byte, expr string, m any,
	takeSlot func(int, string, slotKind) (Slot, error), args []any,
) (step, error) {
	if d == '[' {
		fn, ok := m.(SkipFunc)
		if !ok {
			return nil, patternErrorf(format, pos,
				"$[%s] needs a skip matcher, not %T", expr, m)
		}
		return func(ctx *context) bool {
			if n := fn(ctx.input, ctx.pos, args...); n > 0 {
				ctx.consume(n)
			}
			return true
		}, nil
	}

	directive := "${" + expr + "}"
	switch fn := m.(type) {
	case CaptureFunc:
		slot, err := takeSlot(pos, directive, slotText)
		if err != nil {
			return nil, err
		}
		return func(ctx *context) bool {
			n := fn(ctx.input, slot.sp, ctx.pos, args...)
			if n <= 0 {
				return false
			}
			ctx.consume(n)
			return true
		}, nil
	case CaptureIntFunc:
		slot, err := takeSlot(pos, directive, slotInt)
		if err != nil {
			return nil, err
		}
		return func(ctx *context) bool {
			n := fn(ctx.input, slot.ip, ctx.pos, args...)
			if n <= 0 {
				return false
			}
			ctx.consume(n)
			return true
		}, nil
	case CaptureFloatFunc:
		slot, err := takeSlot(pos, directive, slotFloat)
		if err != nil {
			return nil, err
		}
		return func(ctx *context) bool {
			n := fn(ctx.input, slot.fp, ctx.pos, args...)
			if n <= 0 {
				return false
			}
			ctx.consume(n)
			return true
		}, nil
	default:
		return nil, patternErrorf(format, pos,
			"%s needs a capture matcher, not %T", directive, m)
	}
}

// parseCallExpr parses "name" or "name(arg, ...)" where each argument is
// an integer literal or a quoted string.
func parseCallExpr(expr string) (name string, args []any, err error) {
	s := strings.TrimSpace(expr)
	var ident string
	n := ParseIdent(s, &ident, 0)
	if n == 0 {
		return "", nil, errorf("expected a matcher name in %q", expr)
	}
	name = ident
	rest := strings.TrimSpace(s[n:])
	if rest == "" {
		return name, nil, nil
	}
	if rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", nil, errorf("malformed matcher call %q", expr)
	}
	inner := strings.TrimSpace(rest[1 : len(rest)-1])
	for inner != "" {
		var tok string
		if inner[0] == '"' || inner[0] == '\'' {
			q := inner[0]
			k := 1
			for k < len(inner) && inner[k] != q {
				if inner[k] == '\\' {
					k++
				}
				k++
			}
			if k >= len(inner) {
				return "", nil, errorf("unterminated string argument in %q", expr)
			}
			tok = inner[:k+1]
			inner = inner[k+1:]
			v, uerr := strconv.Unquote(tok)
			if uerr != nil {
				return "", nil, errorf("bad string argument %s in %q", tok, expr)
			}
			args = append(args, v)
		} else {
			k := strings.IndexByte(inner, ',')
			if k < 0 {
				tok, inner = inner, ""
			} else {
				tok, inner = inner[:k], inner[k:]
			}
			tok = strings.TrimSpace(tok)
			v, aerr := strconv.Atoi(tok)
			if aerr != nil {
				return "", nil, errorf("bad argument %q in %q (want an integer or a quoted string)", tok, expr)
			}
			args = append(args, v)
		}
		inner = strings.TrimSpace(inner)
		if inner != "" {
			if inner[0] != ',' {
				return "", nil, errorf("malformed argument list in %q", expr)
			}
			inner = strings.TrimSpace(inner[1:])
			if inner == "" {
				return "", nil, errorf("trailing comma in %q", expr)
			}
		}
	}
	return name, args, nil
}
