package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	"github.com/louisbranch/bignumbers/internal/arith/rational"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request and response field names.
const (
	fieldExpression    = "expression"
	fieldResult        = "result"
	fieldEvaluationID  = "evaluation_id"
	fieldEvaluation    = "evaluation"
	fieldEvaluations   = "evaluations"
	fieldCached        = "cached"
	fieldCreatedAt     = "created_at"
	fieldPageSize      = "page_size"
	fieldPageToken     = "page_token"
	fieldOrderBy       = "order_by"
	fieldFilter        = "filter"
	fieldNextPageToken = "next_page_token"
	fieldValue         = "value"
	fieldRoot          = "root"
	fieldSqrt          = "sqrt"
	fieldPrime         = "prime"
	fieldRounds        = "rounds"
	fieldSeed          = "seed"
	fieldSeedUsed      = "seed_used"
	fieldSeedSource    = "seed_source"
	fieldBase          = "base"
	fieldExponent      = "exponent"
	fieldModulus       = "modulus"
	fieldLow           = "low"
	fieldHigh          = "high"
	fieldOp            = "op"
	fieldLeft          = "left"
	fieldRight         = "right"
	fieldCmp           = "cmp"
)

// maxExactFloat is the largest integer a float64 field carries exactly.
const maxExactFloat = 1 << 53

// stringField returns a field as text. Integral numbers are accepted so
// small operands can be sent as JSON numbers.
func stringField(in *structpb.Struct, name string) (string, bool, error) {
	value, ok := in.GetFields()[name]
	if !ok {
		return "", false, nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		return strings.TrimSpace(kind.StringValue), true, nil
	case *structpb.Value_NumberValue:
		n, err := exactInt(name, kind.NumberValue)
		if err != nil {
			return "", true, err
		}
		return strconv.FormatInt(n, 10), true, nil
	case *structpb.Value_NullValue:
		return "", false, nil
	default:
		return "", true, fieldError(name, "must be a string")
	}
}

// intField returns a field as an int64. Decimal strings are accepted so
// values above 2^53 survive the JSON number round trip.
func intField(in *structpb.Struct, name string) (int64, bool, error) {
	value, ok := in.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n, err := exactInt(name, kind.NumberValue)
		return n, true, err
	case *structpb.Value_StringValue:
		text := strings.TrimSpace(kind.StringValue)
		if text == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, true, fieldError(name, "must be a 64-bit integer")
		}
		return n, true, nil
	case *structpb.Value_NullValue:
		return 0, false, nil
	default:
		return 0, true, fieldError(name, "must be a number")
	}
}

func exactInt(name string, v float64) (int64, error) {
	if v != math.Trunc(v) || math.Abs(v) > maxExactFloat {
		return 0, fieldError(name, "must be an integer below 2^53, send larger values as strings")
	}
	return int64(v), nil
}

// intOperand parses a required integer field of at most maxDigits digits.
func intOperand(in *structpb.Struct, name string, maxDigits int) (bigint.Int, error) {
	text, ok, err := stringField(in, name)
	if err != nil {
		return bigint.Int{}, err
	}
	if !ok || text == "" {
		return bigint.Int{}, fieldError(name, "is required")
	}
	// Sign plus digits; leading zeros count against the bound.
	if len(text) > maxDigits+1 {
		return bigint.Int{}, digitLimitError(name, maxDigits)
	}
	x, err := bigint.Parse(text)
	if err != nil {
		return bigint.Int{}, apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, name+": invalid number format", map[string]string{"Input": text, "Field": name}, err)
	}
	if x.Len() > maxDigits {
		return bigint.Int{}, digitLimitError(name, maxDigits)
	}
	return x, nil
}

// ratOperand parses a required rational field whose numerator and
// denominator each have at most maxDigits digits.
func ratOperand(in *structpb.Struct, name string, maxDigits int) (rational.Rat, error) {
	text, ok, err := stringField(in, name)
	if err != nil {
		return rational.Rat{}, err
	}
	if !ok || text == "" {
		return rational.Rat{}, fieldError(name, "is required")
	}
	// Checked before parsing so reduction never runs on oversized input.
	if len(text) > 2*(maxDigits+1)+1 {
		return rational.Rat{}, digitLimitError(name, maxDigits)
	}
	r, err := rational.Parse(text)
	if err != nil {
		return rational.Rat{}, err
	}
	if r.Num().Len() > maxDigits || r.Den().Len() > maxDigits {
		return rational.Rat{}, digitLimitError(name, maxDigits)
	}
	return r, nil
}

func digitLimitError(name string, maxDigits int) error {
	return fieldError(name, "must have at most "+strconv.Itoa(maxDigits)+" digits")
}

func fieldError(name, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument, name+" "+reason, map[string]string{
		"Reason": name + " " + reason,
	})
}
