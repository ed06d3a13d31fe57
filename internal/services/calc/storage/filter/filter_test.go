package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestParseEvaluationFilter_ResultEquals(t *testing.T) {
	cond, err := ParseEvaluationFilter(`result = "42"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "result = ?" {
		t.Fatalf("Clause = %q, want %q", cond.Clause, "result = ?")
	}
	if !reflect.DeepEqual(cond.Params, []any{"42"}) {
		t.Fatalf("Params = %v", cond.Params)
	}
}

func TestParseEvaluationFilter_Empty(t *testing.T) {
	cond, err := ParseEvaluationFilter("  ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if !cond.Empty() || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseEvaluationFilter_AndOr(t *testing.T) {
	cond, err := ParseEvaluationFilter(`result = "0" AND evaluation_id != "abc"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(result = ? AND id != ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"0", "abc"}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseEvaluationFilter(`result = "1" OR result = "2"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(result = ? OR result = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseEvaluationFilter_Not(t *testing.T) {
	cond, err := ParseEvaluationFilter(`NOT result = "0"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "NOT (result = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseEvaluationFilter_CreatedAt(t *testing.T) {
	cond, err := ParseEvaluationFilter(`created_at >= timestamp("2026-01-02T03:04:05Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "created_at >= ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).UnixMilli()
	if len(cond.Params) != 1 || cond.Params[0] != want {
		t.Fatalf("Params = %v, want [%d]", cond.Params, want)
	}
}

func TestParseEvaluationFilter_InvalidField(t *testing.T) {
	if _, err := ParseEvaluationFilter(`seq = "1"`); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseEvaluationFilter_InvalidSyntax(t *testing.T) {
	if _, err := ParseEvaluationFilter(`result = `); err == nil {
		t.Fatal("expected error for incomplete filter")
	}
}

func TestParseEvaluationFilter_InvalidValueFunc(t *testing.T) {
	if _, err := ParseEvaluationFilter(`created_at = duration("1h")`); err == nil {
		t.Fatal("expected error for unsupported value function")
	}
}

func TestParseEvaluationFilter_InvalidTimestamp(t *testing.T) {
	if _, err := ParseEvaluationFilter(`created_at = timestamp("yesterday")`); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}
