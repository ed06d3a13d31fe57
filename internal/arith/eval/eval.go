// Package eval evaluates integer expression trees written in a narrow
// JSON-like notation:
//
//	{"op":"+","left":123,"right":{"op":"*","left":"2","right":3}}
//
// A value is a quoted integer, a bare numeric literal, or an operator object
// whose keys must appear in the order op, left, right. Whitespace anywhere
// in the input is ignored, including inside quotes. Bare literals may carry
// a fractional part, which is truncated.
package eval

import (
	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
)

var (
	// ErrParse indicates input that does not follow the expression grammar.
	ErrParse = apperrors.New(apperrors.CodeParseError, "malformed expression")
	// ErrUnknownOperator indicates an op other than + - * / %.
	ErrUnknownOperator = apperrors.New(apperrors.CodeUnknownOperator, "unknown operator")
)

// Op is a binary integer operator.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpQuo Op = "/"
	OpRem Op = "%"
)

func parseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpAdd, OpSub, OpMul, OpQuo, OpRem:
		return op, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeUnknownOperator, "unknown operator", map[string]string{
			"Operator": s,
		})
	}
}

func (op Op) apply(x, y bigint.Int) (bigint.Int, error) {
	switch op {
	case OpAdd:
		return x.Add(y), nil
	case OpSub:
		return x.Sub(y), nil
	case OpMul:
		return x.Mul(y), nil
	case OpQuo:
		return x.Quo(y)
	case OpRem:
		return x.Rem(y)
	default:
		return bigint.Int{}, ErrUnknownOperator
	}
}

// Node is a parsed expression. A leaf holds a Value and has an empty Op.
type Node struct {
	Op    Op
	Value bigint.Int
	Left  *Node
	Right *Node
}

// IsLeaf reports whether n is a literal.
func (n *Node) IsLeaf() bool {
	return n.Op == ""
}

// Eval computes the value of the tree, children first. Division and
// remainder errors from the integer core are returned unchanged.
func (n *Node) Eval() (bigint.Int, error) {
	if n.IsLeaf() {
		return n.Value, nil
	}
	left, err := n.Left.Eval()
	if err != nil {
		return bigint.Int{}, err
	}
	right, err := n.Right.Eval()
	if err != nil {
		return bigint.Int{}, err
	}
	return n.Op.apply(left, right)
}

// Depth returns the number of operator levels in the tree.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// Digits returns the total number of decimal digits across the leaves.
func (n *Node) Digits() int {
	if n.IsLeaf() {
		return n.Value.Len()
	}
	return n.Left.Digits() + n.Right.Digits()
}

// Parse parses input into an expression tree without evaluating it.
func Parse(input string) (*Node, error) {
	p := newParser(input)
	if p.done() {
		return nil, parseError("empty expression", 0)
	}
	node, err := p.value()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, parseError("unexpected trailing input", p.pos)
	}
	return node, nil
}

// Eval parses and evaluates input.
func Eval(input string) (bigint.Int, error) {
	node, err := Parse(input)
	if err != nil {
		return bigint.Int{}, err
	}
	return node.Eval()
}
