package rational

import (
	"fmt"
	"io"
	"unicode"
)

// Scan implements fmt.Scanner for the verbs %s and %v, reading a fraction
// in the "a" or "a/b" form.
//
// A malformed token fails with ErrInvalidFormat and a zero denominator with
// ErrDivisionByZero. Exhausted input reports io.EOF, which fmt surfaces as
// io.ErrUnexpectedEOF. The receiver is left unchanged on failure.
func (r *Rat) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 's', 'v':
	default:
		return fmt.Errorf("rational: unsupported scan verb %%%c", verb)
	}

	state.SkipSpace()
	tok, err := state.Token(false, func(c rune) bool { return !unicode.IsSpace(c) })
	if err != nil {
		return err
	}
	if len(tok) == 0 {
		return io.EOF
	}

	v, err := Parse(string(tok))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
