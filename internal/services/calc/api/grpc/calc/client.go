package calc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed wrapper over the calculator service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client that issues calls on cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// EvaluateResult is the outcome of Evaluate.
type EvaluateResult struct {
	Result       string
	EvaluationID string
	Cached       bool
}

// Evaluation is one history record as returned by the service.
type Evaluation struct {
	ID         string
	Expression string
	Result     string
	CreatedAt  time.Time
}

// EvaluationPage is one page of ListEvaluations.
type EvaluationPage struct {
	Evaluations   []Evaluation
	NextPageToken string
}

// SqrtResult is the outcome of IntegerSqrt. Sqrt is only set when HasSqrt is
// true, which is the case when the value fits a float64.
type SqrtResult struct {
	Root    string
	Sqrt    float64
	HasSqrt bool
}

// PrimeResult is the outcome of IsPrime.
type PrimeResult struct {
	Prime      bool
	Rounds     int
	SeedUsed   string
	SeedSource string
}

// RandomResult is the outcome of RandomRange.
type RandomResult struct {
	Value      string
	SeedUsed   string
	SeedSource string
}

// RationalResult is the outcome of Rational. Which field is meaningful
// depends on the operation: Cmp for "cmp", Sqrt for "sqrt", Result otherwise.
type RationalResult struct {
	Result string
	Cmp    int
	Sqrt   float64
}

// Evaluate evaluates an expression tree.
func (c *Client) Evaluate(ctx context.Context, expression string, opts ...grpc.CallOption) (EvaluateResult, error) {
	out, err := c.invoke(ctx, EvaluateFullMethodName, map[string]any{fieldExpression: expression}, opts)
	if err != nil {
		return EvaluateResult{}, err
	}
	return EvaluateResult{
		Result:       stringValue(out, fieldResult),
		EvaluationID: stringValue(out, fieldEvaluationID),
		Cached:       out.GetFields()[fieldCached].GetBoolValue(),
	}, nil
}

// GetEvaluation fetches one stored evaluation.
func (c *Client) GetEvaluation(ctx context.Context, id string, opts ...grpc.CallOption) (Evaluation, error) {
	out, err := c.invoke(ctx, GetEvaluationFullMethodName, map[string]any{fieldEvaluationID: id}, opts)
	if err != nil {
		return Evaluation{}, err
	}
	return evaluationFromStruct(out.GetFields()[fieldEvaluation].GetStructValue())
}

// ListEvaluations fetches one page of history. An empty orderBy lists the
// newest evaluations first and an empty filterExpr matches every record.
func (c *Client) ListEvaluations(ctx context.Context, pageSize int, pageToken, orderBy, filterExpr string, opts ...grpc.CallOption) (EvaluationPage, error) {
	out, err := c.invoke(ctx, ListEvaluationsFullMethodName, map[string]any{
		fieldPageSize:  pageSize,
		fieldPageToken: pageToken,
		fieldOrderBy:   orderBy,
		fieldFilter:    filterExpr,
	}, opts)
	if err != nil {
		return EvaluationPage{}, err
	}
	page := EvaluationPage{NextPageToken: stringValue(out, fieldNextPageToken)}
	for _, item := range out.GetFields()[fieldEvaluations].GetListValue().GetValues() {
		evaluation, err := evaluationFromStruct(item.GetStructValue())
		if err != nil {
			return EvaluationPage{}, err
		}
		page.Evaluations = append(page.Evaluations, evaluation)
	}
	return page, nil
}

// IntegerSqrt returns the integer and floating-point square roots of value.
func (c *Client) IntegerSqrt(ctx context.Context, value string, opts ...grpc.CallOption) (SqrtResult, error) {
	out, err := c.invoke(ctx, IntegerSqrtFullMethodName, map[string]any{fieldValue: value}, opts)
	if err != nil {
		return SqrtResult{}, err
	}
	result := SqrtResult{Root: stringValue(out, fieldRoot)}
	if v, ok := out.GetFields()[fieldSqrt]; ok {
		result.Sqrt = v.GetNumberValue()
		result.HasSqrt = true
	}
	return result, nil
}

// IsPrime tests value for primality. A zero rounds uses the server default;
// a nil seed lets the server pick cryptographic witnesses.
func (c *Client) IsPrime(ctx context.Context, value string, rounds int, seed *int64, opts ...grpc.CallOption) (PrimeResult, error) {
	in := map[string]any{fieldValue: value}
	if rounds != 0 {
		in[fieldRounds] = rounds
	}
	if seed != nil {
		in[fieldSeed] = strconv.FormatInt(*seed, 10)
	}
	out, err := c.invoke(ctx, IsPrimeFullMethodName, in, opts)
	if err != nil {
		return PrimeResult{}, err
	}
	return PrimeResult{
		Prime:      out.GetFields()[fieldPrime].GetBoolValue(),
		Rounds:     int(out.GetFields()[fieldRounds].GetNumberValue()),
		SeedUsed:   stringValue(out, fieldSeedUsed),
		SeedSource: stringValue(out, fieldSeedSource),
	}, nil
}

// ModPow returns base^exponent mod modulus.
func (c *Client) ModPow(ctx context.Context, base, exponent, modulus string, opts ...grpc.CallOption) (string, error) {
	out, err := c.invoke(ctx, ModPowFullMethodName, map[string]any{
		fieldBase:     base,
		fieldExponent: exponent,
		fieldModulus:  modulus,
	}, opts)
	if err != nil {
		return "", err
	}
	return stringValue(out, fieldResult), nil
}

// RandomRange draws a uniform integer in [low, high].
func (c *Client) RandomRange(ctx context.Context, low, high string, seed *int64, opts ...grpc.CallOption) (RandomResult, error) {
	in := map[string]any{fieldLow: low, fieldHigh: high}
	if seed != nil {
		in[fieldSeed] = strconv.FormatInt(*seed, 10)
	}
	out, err := c.invoke(ctx, RandomRangeFullMethodName, in, opts)
	if err != nil {
		return RandomResult{}, err
	}
	return RandomResult{
		Value:      stringValue(out, fieldValue),
		SeedUsed:   stringValue(out, fieldSeedUsed),
		SeedSource: stringValue(out, fieldSeedSource),
	}, nil
}

// Rational applies a fraction operation. right is ignored by unary
// operations.
func (c *Client) Rational(ctx context.Context, op, left, right string, opts ...grpc.CallOption) (RationalResult, error) {
	in := map[string]any{fieldOp: op, fieldLeft: left}
	if right != "" {
		in[fieldRight] = right
	}
	out, err := c.invoke(ctx, RationalFullMethodName, in, opts)
	if err != nil {
		return RationalResult{}, err
	}
	fields := out.GetFields()
	return RationalResult{
		Result: stringValue(out, fieldResult),
		Cmp:    int(fields[fieldCmp].GetNumberValue()),
		Sqrt:   fields[fieldSqrt].GetNumberValue(),
	}, nil
}

func (c *Client) invoke(ctx context.Context, method string, fields map[string]any, opts []grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func stringValue(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func evaluationFromStruct(s *structpb.Struct) (Evaluation, error) {
	evaluation := Evaluation{
		ID:         stringValue(s, fieldEvaluationID),
		Expression: stringValue(s, fieldExpression),
		Result:     stringValue(s, fieldResult),
	}
	if text := stringValue(s, fieldCreatedAt); text != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return Evaluation{}, fmt.Errorf("decode created_at: %w", err)
		}
		evaluation.CreatedAt = createdAt
	}
	return evaluation, nil
}
