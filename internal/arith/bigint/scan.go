package bigint

import (
	"fmt"
	"io"
	"unicode"
)

// Scan implements fmt.Scanner for the verbs %d, %s and %v.
//
// Leading space is skipped and the next whitespace-delimited token is parsed
// with Parse. A malformed token fails with ErrInvalidFormat; exhausted input
// reports io.EOF, which fmt surfaces as io.ErrUnexpectedEOF. On failure the
// receiver is left unchanged.
func (x *Int) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'd', 's', 'v':
	default:
		return fmt.Errorf("bigint: unsupported scan verb %%%c", verb)
	}

	state.SkipSpace()
	tok, err := state.Token(false, notSpace)
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
	*x = v
	return nil
}

func notSpace(r rune) bool {
	return !unicode.IsSpace(r)
}
