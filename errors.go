package scan

import (
	"fmt"
)

type scanError struct {
	value string
}

func errorf(format string, v ...interface{}) error {
	return &scanError{fmt.Sprintf(format, v...)}
}

func (err *scanError) Error() string {
	return "scan: " + err.value
}

// PatternError describes a malformed format pattern. It is returned by
// Compile before any input is scanned.
type PatternError struct {
	Format string // the offending format string
	Pos    int    // byte offset of the error within Format
	Msg    string
}

func (err *PatternError) Error() string {
	return fmt.Sprintf("scan: bad pattern %q at %d: %s", err.Format, err.Pos, err.Msg)
}

func patternErrorf(format string, pos int, msg string, v ...interface{}) error {
	return &PatternError{
		Format: format,
		Pos:    pos,
		Msg:    fmt.Sprintf(msg, v...),
	}
}
