package eval

import (
	"errors"
	"testing"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
)

func TestEval(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare numbers",
			input: `{"op":"+","left":123,"right":456}`,
			want:  "579",
		},
		{
			name:  "fraction truncated",
			input: `{"op":"+","left":123,"right":456.001}`,
			want:  "579",
		},
		{
			name:  "fraction truncated not rounded",
			input: `{"op":"+","left":0,"right":9.999}`,
			want:  "9",
		},
		{
			name: "nested",
			input: `{
				"op":"+",
				"left": 123,
				"right": {
					"op":"*",
					"left": "12345678901234567890",
					"right": {"op":"%","left":"34","right":1}
				}
			}`,
			want: "123",
		},
		{
			name: "whitespace inside quotes",
			input: `{
				"op":" + ",
				"left":  123  ,
				"right": {
					"op":"    *",
					"left": "       12345678901234567890",
					"right": {
						"op":"%    ",
						"left":"34            ",
						"right":   1
					}
				}
			}`,
			want: "123",
		},
		{
			name: "both sides nested",
			input: `{
				"op":"+",
				"left": {"op":"-","left":"1000","right":"200"},
				"right": {"op":"/","left":"123456","right":"123"}
			}`,
			want: "1803",
		},
		{
			name:  "negative literals truncate toward zero",
			input: `{"op":"/","left":"-10","right":3}`,
			want:  "-3",
		},
		{
			name:  "remainder keeps dividend sign",
			input: `{"op":"%","left":-10,"right":"3"}`,
			want:  "-1",
		},
		{
			name:  "big product",
			input: `{"op":"*","left":"99999999999999999999","right":"99999999999999999999"}`,
			want:  "9999999999999999999800000000000000000001",
		},
		{
			name:  "single literal",
			input: ` "42" `,
			want:  "42",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.input)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("Eval = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "   ", ErrParse},
		{"unbalanced braces", `{"op":"+","left":1,"right":2`, ErrParse},
		{"missing op", `{"left":1,"right":2}`, ErrParse},
		{"missing right", `{"op":"+","left":1}`, ErrParse},
		{"keys out of order", `{"left":1,"op":"+","right":2}`, ErrParse},
		{"op only in child", `{"left":{"op":"+","left":1,"right":2},"right":3}`, ErrParse},
		{"right before left", `{"op":"+","right":{"op":"*","left":2,"right":3},"left":100}`, ErrParse},
		{"right only in child", `{"op":"+","left":1,"extra":{"right":2}}`, ErrParse},
		{"unterminated string", `{"op":"+","left":"12,"right":2}`, ErrParse},
		{"empty value", `{"op":"+","left":,"right":2}`, ErrParse},
		{"trailing input", `{"op":"+","left":1,"right":2}}`, ErrParse},
		{"unknown operator", `{"op":"^","left":1,"right":2}`, ErrUnknownOperator},
		{"bad literal", `{"op":"+","left":"1x","right":2}`, bigint.ErrInvalidFormat},
		{"division by zero", `{"op":"/","left":1,"right":{"op":"-","left":5,"right":5}}`, bigint.ErrDivisionByZero},
		{"remainder by zero", `{"op":"%","left":1,"right":0}`, bigint.ErrDivisionByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Eval(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("Eval error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseBuildsTree(t *testing.T) {
	node, err := Parse(`{"op":"-","left":{"op":"*","left":2,"right":3},"right":"1"}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Op != OpSub || node.IsLeaf() {
		t.Fatalf("root op = %q, want %q", node.Op, OpSub)
	}
	if node.Left.Op != OpMul || !node.Right.IsLeaf() || node.Right.Value.String() != "1" {
		t.Fatalf("unexpected children: %+v %+v", node.Left, node.Right)
	}
	if node.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", node.Depth())
	}
	if node.Digits() != 3 {
		t.Fatalf("Digits = %d, want 3", node.Digits())
	}
	got, err := node.Eval()
	if err != nil || got.String() != "5" {
		t.Fatalf("Eval = %s, %v", got, err)
	}
}

func TestDigitsCountsLeaves(t *testing.T) {
	node, err := Parse(`{"op":"+","left":"-000120","right":{"op":"*","left":0,"right":"99999"}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// -120, 0 and 99999 after canonicalization.
	if got := node.Digits(); got != 9 {
		t.Fatalf("Digits = %d, want 9", got)
	}
}

func TestParseDoesNotEvaluate(t *testing.T) {
	node, err := Parse(`{"op":"/","left":1,"right":0}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := node.Eval(); !errors.Is(err, bigint.ErrDivisionByZero) {
		t.Fatalf("Eval error = %v, want division by zero", err)
	}
}

func TestStripSpace(t *testing.T) {
	if got := StripSpace(" {\"op\" :\t\"+\"\n} "); got != `{"op":"+"}` {
		t.Fatalf("StripSpace = %q", got)
	}
}
