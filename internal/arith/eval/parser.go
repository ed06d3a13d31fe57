package eval

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
)

// parser walks whitespace-free source with a cursor that only moves
// forward.
type parser struct {
	src string
	pos int
}

func newParser(input string) *parser {
	return &parser{src: StripSpace(input)}
}

// StripSpace removes every Unicode whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func (p *parser) done() bool {
	return p.pos >= len(p.src)
}

// value parses the value starting at the cursor.
func (p *parser) value() (*Node, error) {
	if p.done() {
		return nil, parseError("empty value", p.pos)
	}
	switch p.src[p.pos] {
	case '{':
		return p.object()
	case '"':
		start := p.pos
		text, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return p.literal(text, start)
	default:
		return p.number()
	}
}

// object parses {"op":OP,"left":VALUE,"right":VALUE}. Keys are searched
// forward from the cursor and must lie inside the object's braces.
func (p *parser) object() (*Node, error) {
	end, err := p.matchBrace(p.pos)
	if err != nil {
		return nil, err
	}
	p.pos++

	if err := p.seekKey("op", end); err != nil {
		return nil, err
	}
	if p.done() || p.src[p.pos] != '"' {
		return nil, parseError("operator must be a string", p.pos)
	}
	opText, err := p.quoted()
	if err != nil {
		return nil, err
	}
	op, err := parseOp(opText)
	if err != nil {
		return nil, err
	}

	if err := p.seekKey("left", end); err != nil {
		return nil, err
	}
	left, err := p.value()
	if err != nil {
		return nil, err
	}

	if err := p.seekKey("right", end); err != nil {
		return nil, err
	}
	right, err := p.value()
	if err != nil {
		return nil, err
	}

	if p.pos > end {
		return nil, parseError("value overruns object", p.pos)
	}
	p.pos = end + 1
	return &Node{Op: op, Left: left, Right: right}, nil
}

// seekKey moves the cursor just past `"key":`, failing if the key does not
// occur before limit. Only keys of the current object count: nested objects
// and quoted text are skipped whole.
func (p *parser) seekKey(key string, limit int) error {
	needle := `"` + key + `":`
	for i := p.pos; i < limit; i++ {
		switch p.src[i] {
		case '"':
			if strings.HasPrefix(p.src[i:], needle) {
				p.pos = i + len(needle)
				return nil
			}
			end, err := p.closingQuote(i)
			if err != nil {
				return err
			}
			i = end
		case '{':
			end, err := p.matchBrace(i)
			if err != nil {
				return err
			}
			i = end
		}
	}
	return apperrors.WithMetadata(apperrors.CodeParseError, "missing key", map[string]string{
		"Reason": "missing key " + strconv.Quote(key),
		"Offset": strconv.Itoa(p.pos),
	})
}

// closingQuote returns the index of the unescaped quote ending the string
// that opens at open.
func (p *parser) closingQuote(open int) (int, error) {
	for i := open + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '"':
			return i, nil
		}
	}
	return 0, parseError("unterminated string", open)
}

// quoted returns the text between the quote at the cursor and the next
// unescaped quote, and moves the cursor past the closing quote.
func (p *parser) quoted() (string, error) {
	end, err := p.closingQuote(p.pos)
	if err != nil {
		return "", err
	}
	text := p.src[p.pos+1 : end]
	p.pos = end + 1
	return text, nil
}

// number consumes the maximal run of digits, '-' and '.' at the cursor.
// Everything from the first '.' on is dropped.
func (p *parser) number() (*Node, error) {
	start := p.pos
	for !p.done() && isNumberByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, parseError("empty value", start)
	}
	text := p.src[start:p.pos]
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}
	return p.literal(text, start)
}

func (p *parser) literal(text string, offset int) (*Node, error) {
	v, err := bigint.Parse(text)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, "invalid literal", map[string]string{
			"Input":  text,
			"Offset": strconv.Itoa(offset),
		}, err)
	}
	return &Node{Value: v}, nil
}

// matchBrace returns the index of the '}' closing the '{' at open. Quoted
// sections are skipped.
func (p *parser) matchBrace(open int) (int, error) {
	depth := 0
	inString := false
	for i := open; i < len(p.src); i++ {
		c := p.src[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, parseError("unbalanced braces", open)
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '.'
}

func parseError(reason string, offset int) error {
	return apperrors.WithMetadata(apperrors.CodeParseError, reason, map[string]string{
		"Reason": reason,
		"Offset": strconv.Itoa(offset),
	})
}
