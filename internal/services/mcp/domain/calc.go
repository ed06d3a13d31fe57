package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	calcservice "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/calc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// CalcClient is the subset of the calculator client used by MCP tools.
type CalcClient interface {
	Evaluate(ctx context.Context, expression string, opts ...grpc.CallOption) (calcservice.EvaluateResult, error)
	ListEvaluations(ctx context.Context, pageSize int, pageToken, orderBy, filterExpr string, opts ...grpc.CallOption) (calcservice.EvaluationPage, error)
	IntegerSqrt(ctx context.Context, value string, opts ...grpc.CallOption) (calcservice.SqrtResult, error)
	IsPrime(ctx context.Context, value string, rounds int, seed *int64, opts ...grpc.CallOption) (calcservice.PrimeResult, error)
	ModPow(ctx context.Context, base, exponent, modulus string, opts ...grpc.CallOption) (string, error)
	RandomRange(ctx context.Context, low, high string, seed *int64, opts ...grpc.CallOption) (calcservice.RandomResult, error)
	Rational(ctx context.Context, op, left, right string, opts ...grpc.CallOption) (calcservice.RationalResult, error)
}

// EvaluateInput represents the MCP tool input for expression evaluation.
type EvaluateInput struct {
	Expression string `json:"expression" jsonschema:"expression tree of op/left/right objects with quoted integer leaves"`
}

// EvaluateResult represents the MCP tool output for expression evaluation.
type EvaluateResult struct {
	Result       string `json:"result" jsonschema:"decimal result"`
	EvaluationID string `json:"evaluation_id" jsonschema:"history identifier of the expression"`
	Cached       bool   `json:"cached" jsonschema:"whether the result came from history"`
}

// ListEvaluationsInput represents the MCP tool input for browsing history.
type ListEvaluationsInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum number of evaluations to return"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	OrderBy   string `json:"order_by,omitempty" jsonschema:"created_at desc (default) or created_at asc"`
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over evaluation_id, expression, result and created_at"`
}

// EvaluationSummary is one history record.
type EvaluationSummary struct {
	EvaluationID string `json:"evaluation_id" jsonschema:"history identifier"`
	Expression   string `json:"expression" jsonschema:"expression as first submitted"`
	Result       string `json:"result" jsonschema:"decimal result"`
	CreatedAt    string `json:"created_at" jsonschema:"RFC 3339 timestamp"`
}

// ListEvaluationsResult represents the MCP tool output for browsing history.
type ListEvaluationsResult struct {
	Evaluations   []EvaluationSummary `json:"evaluations" jsonschema:"evaluations on this page"`
	NextPageToken string              `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last one"`
}

// IntegerSqrtInput represents the MCP tool input for square roots.
type IntegerSqrtInput struct {
	Value string `json:"value" jsonschema:"non-negative decimal integer"`
}

// IntegerSqrtResult represents the MCP tool output for square roots.
type IntegerSqrtResult struct {
	Root string   `json:"root" jsonschema:"floor of the square root"`
	Sqrt *float64 `json:"sqrt,omitempty" jsonschema:"floating point square root when the value fits a float64"`
}

// IsPrimeInput represents the MCP tool input for primality tests.
type IsPrimeInput struct {
	Value  string `json:"value" jsonschema:"decimal integer to test"`
	Rounds int    `json:"rounds,omitempty" jsonschema:"Miller-Rabin rounds, server default when omitted"`
	Seed   *int64 `json:"seed,omitempty" jsonschema:"optional seed for reproducible witnesses"`
}

// IsPrimeResult represents the MCP tool output for primality tests.
type IsPrimeResult struct {
	Prime      bool   `json:"prime" jsonschema:"whether the value is probably prime"`
	Rounds     int    `json:"rounds" jsonschema:"rounds performed"`
	SeedUsed   string `json:"seed_used,omitempty" jsonschema:"seed used for witnesses"`
	SeedSource string `json:"seed_source" jsonschema:"request or crypto"`
}

// ModPowInput represents the MCP tool input for modular exponentiation.
type ModPowInput struct {
	Base     string `json:"base" jsonschema:"decimal integer base"`
	Exponent string `json:"exponent" jsonschema:"non-negative decimal integer exponent"`
	Modulus  string `json:"modulus" jsonschema:"non-zero decimal integer modulus"`
}

// ModPowResult represents the MCP tool output for modular exponentiation.
type ModPowResult struct {
	Result string `json:"result" jsonschema:"base^exponent mod modulus"`
}

// RandomRangeInput represents the MCP tool input for random draws.
type RandomRangeInput struct {
	Low  string `json:"low" jsonschema:"inclusive lower bound"`
	High string `json:"high" jsonschema:"inclusive upper bound"`
	Seed *int64 `json:"seed,omitempty" jsonschema:"optional seed to replay a draw"`
}

// RandomRangeResult represents the MCP tool output for random draws.
type RandomRangeResult struct {
	Value      string `json:"value" jsonschema:"drawn value"`
	SeedUsed   string `json:"seed_used" jsonschema:"seed that replays this draw"`
	SeedSource string `json:"seed_source" jsonschema:"request or generated"`
}

// RationalInput represents the MCP tool input for fraction arithmetic.
type RationalInput struct {
	Op    string `json:"op" jsonschema:"one of add, sub, mul, quo, cmp, neg, abs, sqrt, isqrt"`
	Left  string `json:"left" jsonschema:"fraction written as a or a/b"`
	Right string `json:"right,omitempty" jsonschema:"second fraction for binary operations"`
}

// RationalResult represents the MCP tool output for fraction arithmetic.
type RationalResult struct {
	Result string   `json:"result,omitempty" jsonschema:"reduced fraction or integer result"`
	Cmp    *int     `json:"cmp,omitempty" jsonschema:"comparison result for cmp: -1, 0 or 1"`
	Sqrt   *float64 `json:"sqrt,omitempty" jsonschema:"floating point square root for sqrt"`
}

// EvaluateTool defines the MCP tool schema for expression evaluation.
func EvaluateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "evaluate",
		Description: "Evaluates an arbitrary-precision integer expression tree",
	}
}

// ListEvaluationsTool defines the MCP tool schema for browsing history.
func ListEvaluationsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_evaluations",
		Description: "Lists previously evaluated expressions",
	}
}

// IntegerSqrtTool defines the MCP tool schema for square roots.
func IntegerSqrtTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "integer_sqrt",
		Description: "Computes the integer square root of a large integer",
	}
}

// IsPrimeTool defines the MCP tool schema for primality tests.
func IsPrimeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "is_prime",
		Description: "Runs a Miller-Rabin probabilistic primality test",
	}
}

// ModPowTool defines the MCP tool schema for modular exponentiation.
func ModPowTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "mod_pow",
		Description: "Computes base^exponent mod modulus for large integers",
	}
}

// RandomRangeTool defines the MCP tool schema for random draws.
func RandomRangeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "random_range",
		Description: "Draws a uniform random integer from an inclusive range",
	}
}

// RationalTool defines the MCP tool schema for fraction arithmetic.
func RationalTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rational",
		Description: "Applies an exact fraction operation",
	}
}

// EvaluateHandler evaluates an expression through the calculator.
func EvaluateHandler(client CalcClient) mcp.ToolHandlerFor[EvaluateInput, EvaluateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, EvaluateResult, error) {
		if strings.TrimSpace(input.Expression) == "" {
			return nil, EvaluateResult{}, fmt.Errorf("expression is required")
		}
		result, response, err := callCalc(ctx, grpcCallTimeout, "evaluate", func(ctx context.Context, opts ...grpc.CallOption) (calcservice.EvaluateResult, error) {
			return client.Evaluate(ctx, input.Expression, opts...)
		})
		if err != nil {
			return nil, EvaluateResult{}, err
		}
		return result, EvaluateResult{
			Result:       response.Result,
			EvaluationID: response.EvaluationID,
			Cached:       response.Cached,
		}, nil
	}
}

// ListEvaluationsHandler lists evaluation history.
func ListEvaluationsHandler(client CalcClient) mcp.ToolHandlerFor[ListEvaluationsInput, ListEvaluationsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListEvaluationsInput) (*mcp.CallToolResult, ListEvaluationsResult, error) {
		result, page, err := callCalc(ctx, grpcCallTimeout, "list evaluations", func(ctx context.Context, opts ...grpc.CallOption) (calcservice.EvaluationPage, error) {
			return client.ListEvaluations(ctx, input.PageSize, input.PageToken, input.OrderBy, input.Filter, opts...)
		})
		if err != nil {
			return nil, ListEvaluationsResult{}, err
		}
		out := ListEvaluationsResult{
			Evaluations:   make([]EvaluationSummary, 0, len(page.Evaluations)),
			NextPageToken: page.NextPageToken,
		}
		for _, evaluation := range page.Evaluations {
			out.Evaluations = append(out.Evaluations, EvaluationSummary{
				EvaluationID: evaluation.ID,
				Expression:   evaluation.Expression,
				Result:       evaluation.Result,
				CreatedAt:    evaluation.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return result, out, nil
	}
}

// IntegerSqrtHandler computes square roots through the calculator.
func IntegerSqrtHandler(client CalcClient) mcp.ToolHandlerFor[IntegerSqrtInput, IntegerSqrtResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input IntegerSqrtInput) (*mcp.CallToolResult, IntegerSqrtResult, error) {
		result, response, err := callCalc(ctx, grpcLongCallTimeout, "integer sqrt", func(ctx context.Context, opts ...grpc.CallOption) (calcservice.SqrtResult, error) {
			return client.IntegerSqrt(ctx, input.Value, opts...)
		})
		if err != nil {
			return nil, IntegerSqrtResult{}, err
		}
		out := IntegerSqrtResult{Root: response.Root}
		if response.HasSqrt {
			sqrt := response.Sqrt
			out.Sqrt = &sqrt
		}
		return result, out, nil
	}
}

// IsPrimeHandler runs a primality test through the calculator.
func IsPrimeHandler(client CalcClient) mcp.ToolHandlerFor[IsPrimeInput, IsPrimeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input IsPrimeInput) (*mcp.CallToolResult, IsPrimeResult, error) {
		result, response, err := callCalc(ctx, grpcLongCallTimeout, "primality test", func(ctx context.Context, opts ...grpc.CallOption) (calcservice.PrimeResult, error) {
			return client.IsPrime(ctx, input.Value, input.Rounds, input.Seed, opts...)
		})
		if err != nil {
			return nil, IsPrimeResult{}, err
		}
		return result, IsPrimeResult{
			Prime:      response.Prime,
			Rounds:     response.Rounds,
			SeedUsed:   response.SeedUsed,
			SeedSource: response.SeedSource,
		}, nil
	}
}

// ModPowHandler computes modular powers through the calculator.
func ModPowHandler(client CalcClient) mcp.ToolHandlerFor[ModPowInput, ModPowResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ModPowInput) (*mcp.CallToolResult, ModPowResult, error) {
		result, response, err := callCalc(ctx, grpcLongCallTimeout, "mod pow", func(ctx context.Context, opts ...grpc.CallOption) (string, error) {
			return client.ModPow(ctx, input.Base, input.Exponent, input.Modulus, opts...)
		})
		if err != nil {
			return nil, ModPowResult{}, err
		}
		return result, ModPowResult{Result: response}, nil
	}
}

// RandomRangeHandler draws random values through the calculator.
func RandomRangeHandler(client CalcClient) mcp.ToolHandlerFor[RandomRangeInput, RandomRangeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RandomRangeInput) (*mcp.CallToolResult, RandomRangeResult, error) {
		result, response, err := callCalc(ctx, grpcCallTimeout, "random range", func(ctx context.Context, opts ...grpc.CallOption) (calcservice.RandomResult, error) {
			return client.RandomRange(ctx, input.Low, input.High, input.Seed, opts...)
		})
		if err != nil {
			return nil, RandomRangeResult{}, err
		}
		return result, RandomRangeResult{
			Value:      response.Value,
			SeedUsed:   response.SeedUsed,
			SeedSource: response.SeedSource,
		}, nil
	}
}

// RationalHandler applies fraction operations through the calculator.
func RationalHandler(client CalcClient) mcp.ToolHandlerFor[RationalInput, RationalResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RationalInput) (*mcp.CallToolResult, RationalResult, error) {
		op := strings.ToLower(strings.TrimSpace(input.Op))
		result, response, err := callCalc(ctx, grpcCallTimeout, "rational "+op, func(ctx context.Context, opts ...grpc.CallOption) (calcservice.RationalResult, error) {
			return client.Rational(ctx, op, input.Left, input.Right, opts...)
		})
		if err != nil {
			return nil, RationalResult{}, err
		}
		out := RationalResult{}
		switch op {
		case "cmp":
			cmp := response.Cmp
			out.Cmp = &cmp
		case "sqrt":
			sqrt := response.Sqrt
			out.Sqrt = &sqrt
		default:
			out.Result = response.Result
		}
		return result, out, nil
	}
}

// callCalc runs one calculator call with a request ID and timeout, and
// returns a tool result carrying the correlation metadata.
func callCalc[T any](ctx context.Context, timeout time.Duration, action string, call func(context.Context, ...grpc.CallOption) (T, error)) (*mcp.CallToolResult, T, error) {
	var zero T
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	callCtx, callMeta, err := NewOutgoingContext(runCtx)
	if err != nil {
		return nil, zero, fmt.Errorf("create request metadata: %w", err)
	}

	var header metadata.MD
	response, err := call(callCtx, grpc.Header(&header))
	if err != nil {
		return nil, zero, fmt.Errorf("%s failed: %w", action, userError(err))
	}
	return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), response, nil
}

// userError prefers the localized message the calculator attaches to
// domain errors over the raw status text.
func userError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok && localized.GetMessage() != "" {
			return errors.New(localized.GetMessage())
		}
	}
	return err
}
