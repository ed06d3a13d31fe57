// Package calc exposes the arbitrary-precision engine as the
// bignumbers.calc.v1.CalculatorService gRPC API.
package calc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	"github.com/louisbranch/bignumbers/internal/arith/eval"
	"github.com/louisbranch/bignumbers/internal/arith/prime"
	"github.com/louisbranch/bignumbers/internal/arith/rational"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
	"github.com/louisbranch/bignumbers/internal/platform/grpc/pagination"
	"github.com/louisbranch/bignumbers/internal/random"
	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage/filter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultListEvaluationsPageSize = 10
	maxListEvaluationsPageSize     = 50

	// DefaultPrimeRounds is used when neither the request nor the server
	// configuration sets a Miller-Rabin round count.
	DefaultPrimeRounds = 20
	maxPrimeRounds     = 100

	// Default request limits. Multiplication and division are quadratic in
	// the digit count and ModPow is cubic, so modular operands get the
	// tighter bound.
	DefaultMaxDigits          = 1000
	DefaultMaxModularDigits   = 100
	DefaultMaxDepth           = 64
	DefaultMaxExpressionBytes = 64 << 10

	orderNewestFirst = "created_at desc"
	orderOldestFirst = "created_at asc"
)

// Seed sources reported by IsPrime and RandomRange.
const (
	SeedSourceRequest   = "request"
	SeedSourceGenerated = "generated"
	SeedSourceCrypto    = "crypto"
)

// Config tunes a Service. Fields below one take the package defaults.
type Config struct {
	// PrimeRounds is the Miller-Rabin round count used when a request
	// sets none. It is capped at the per-request maximum.
	PrimeRounds int
	// MaxDigits bounds every integer or rational operand, and the digits
	// of all literals in one expression.
	MaxDigits int
	// MaxModularDigits bounds IsPrime values and ModPow operands.
	MaxModularDigits int
	// MaxDepth bounds the operator nesting of an expression.
	MaxDepth int
	// MaxExpressionBytes bounds the raw expression text.
	MaxExpressionBytes int
}

func (c Config) withDefaults() Config {
	if c.PrimeRounds < 1 {
		c.PrimeRounds = DefaultPrimeRounds
	}
	c.PrimeRounds = min(c.PrimeRounds, maxPrimeRounds)
	if c.MaxDigits < 1 {
		c.MaxDigits = DefaultMaxDigits
	}
	if c.MaxModularDigits < 1 {
		c.MaxModularDigits = DefaultMaxModularDigits
	}
	if c.MaxDepth < 1 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxExpressionBytes < 1 {
		c.MaxExpressionBytes = DefaultMaxExpressionBytes
	}
	return c
}

// Service implements CalculatorServer on top of the arithmetic packages.
// A nil store disables evaluation history; Evaluate still works.
type Service struct {
	store   storage.EvaluationStore
	limits  Config
	primes  prime.Tester
	clock   func() time.Time
	newSeed func() (int64, error)
}

// NewService creates a calculator service bounded by cfg.
func NewService(store storage.EvaluationStore, cfg Config) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		store:   store,
		limits:  cfg,
		primes:  prime.Tester{Rounds: cfg.PrimeRounds},
		clock:   time.Now,
		newSeed: random.NewSeed,
	}
}

// EvaluationID returns the history key for an expression: the hex SHA-256 of
// the expression with all whitespace removed.
func EvaluationID(expression string) string {
	sum := sha256.Sum256([]byte(eval.StripSpace(expression)))
	return hex.EncodeToString(sum[:])
}

// Evaluate computes an expression tree. Results are stored by EvaluationID
// and repeated expressions are answered from history.
func (s *Service) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	expression, _, err := stringField(in, fieldExpression)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if expression == "" {
		return nil, s.fail(ctx, fieldError(fieldExpression, "is required"))
	}
	if len(expression) > s.limits.MaxExpressionBytes {
		return nil, s.fail(ctx, fieldError(fieldExpression, "must be at most "+strconv.Itoa(s.limits.MaxExpressionBytes)+" bytes"))
	}

	id := EvaluationID(expression)
	if s.store != nil {
		record, err := s.store.GetEvaluation(ctx, id)
		switch {
		case err == nil:
			return respond(map[string]any{
				fieldResult:       record.Result,
				fieldEvaluationID: record.ID,
				fieldCached:       true,
			})
		case !errors.Is(err, storage.ErrNotFound):
			return nil, status.Errorf(codes.Internal, "get evaluation: %v", err)
		}
	}

	node, err := eval.Parse(expression)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if node.Depth() > s.limits.MaxDepth {
		return nil, s.fail(ctx, fieldError(fieldExpression, "must nest at most "+strconv.Itoa(s.limits.MaxDepth)+" operators deep"))
	}
	if node.Digits() > s.limits.MaxDigits {
		return nil, s.fail(ctx, digitLimitError(fieldExpression, s.limits.MaxDigits))
	}
	value, err := node.Eval()
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	record := storage.Evaluation{
		ID:         id,
		Expression: expression,
		Result:     value.String(),
		CreatedAt:  s.now(),
	}
	if s.store != nil {
		if err := s.store.PutEvaluation(ctx, record); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return nil, status.Errorf(codes.Internal, "put evaluation: %v", err)
		}
	}
	return respond(map[string]any{
		fieldResult:       record.Result,
		fieldEvaluationID: record.ID,
		fieldCached:       false,
	})
}

// GetEvaluation returns one stored evaluation.
func (s *Service) GetEvaluation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.store == nil {
		return nil, status.Error(codes.FailedPrecondition, "evaluation history is not configured")
	}
	id, _, err := stringField(in, fieldEvaluationID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if id == "" {
		return nil, s.fail(ctx, fieldError(fieldEvaluationID, "is required"))
	}
	record, err := s.store.GetEvaluation(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, s.fail(ctx, err)
		}
		return nil, status.Errorf(codes.Internal, "get evaluation: %v", err)
	}
	return respond(map[string]any{fieldEvaluation: evaluationFields(record)})
}

// ListEvaluations returns a page of stored evaluations, newest first unless
// order_by is "created_at asc". An AIP-160 filter narrows the rows, for
// example `result = "0" AND created_at > timestamp("2026-01-01T00:00:00Z")`.
func (s *Service) ListEvaluations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.store == nil {
		return nil, status.Error(codes.FailedPrecondition, "evaluation history is not configured")
	}
	size, _, err := intField(in, fieldPageSize)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	pageSize := pagination.ClampPageSize(int32(min(max(size, 0), math.MaxInt32)), pagination.PageSizeConfig{
		Default: defaultListEvaluationsPageSize,
		Max:     maxListEvaluationsPageSize,
	})

	orderText, _, err := stringField(in, fieldOrderBy)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	orderBy, err := pagination.NormalizeOrderBy(orderText, pagination.OrderByConfig{
		Default: orderNewestFirst,
		Allowed: []string{orderNewestFirst, orderOldestFirst},
	})
	if err != nil {
		return nil, s.fail(ctx, fieldError(fieldOrderBy, "must be one of \""+orderNewestFirst+"\" or \""+orderOldestFirst+"\""))
	}
	order := storage.NewestFirst
	if orderBy == orderOldestFirst {
		order = storage.OldestFirst
	}

	pageToken, _, err := stringField(in, fieldPageToken)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if _, err := pagination.DecodeCursor(pageToken); err != nil {
		return nil, s.fail(ctx, fieldError(fieldPageToken, "is invalid"))
	}

	filterText, _, err := stringField(in, fieldFilter)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	cond, err := filter.ParseEvaluationFilter(filterText)
	if err != nil {
		return nil, s.fail(ctx, fieldError(fieldFilter, "is invalid: "+err.Error()))
	}

	page, err := s.store.ListEvaluations(ctx, pageSize, pageToken, order, cond)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list evaluations: %v", err)
	}
	items := make([]any, 0, len(page.Evaluations))
	for _, record := range page.Evaluations {
		items = append(items, evaluationFields(record))
	}
	return respond(map[string]any{
		fieldEvaluations:   items,
		fieldNextPageToken: page.NextPageToken,
	})
}

// IntegerSqrt returns floor(sqrt(value)) and, when value fits a float64, the
// floating-point square root.
func (s *Service) IntegerSqrt(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	x, err := intOperand(in, fieldValue, s.limits.MaxDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	root, err := x.ISqrt()
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	fields := map[string]any{fieldRoot: root.String()}
	if approx, err := x.Sqrt(); err == nil {
		fields[fieldSqrt] = approx
	} else if !errors.Is(err, bigint.ErrOverflow) {
		return nil, s.fail(ctx, err)
	}
	return respond(fields)
}

// IsPrime runs a Miller-Rabin test. A request seed makes the witnesses
// reproducible; without one they come from crypto/rand.
func (s *Service) IsPrime(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	n, err := intOperand(in, fieldValue, s.limits.MaxModularDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	rounds, ok, err := intField(in, fieldRounds)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if !ok || rounds == 0 {
		rounds = int64(s.primes.Rounds)
	}
	if rounds < 1 || rounds > maxPrimeRounds {
		return nil, s.fail(ctx, fieldError(fieldRounds, "must be between 1 and "+strconv.Itoa(maxPrimeRounds)))
	}

	seed, seeded, err := intField(in, fieldSeed)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	fields := map[string]any{fieldRounds: rounds}
	tester := s.primes
	tester.Rounds = int(rounds)
	if seeded {
		tester.Source = random.NewSource(seed)
		fields[fieldSeedUsed] = strconv.FormatInt(seed, 10)
		fields[fieldSeedSource] = SeedSourceRequest
	} else {
		tester.Source = random.NewCryptoSource()
		fields[fieldSeedSource] = SeedSourceCrypto
	}

	isPrime, err := tester.Test(n)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	fields[fieldPrime] = isPrime
	return respond(fields)
}

// ModPow returns base^exponent mod modulus.
func (s *Service) ModPow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	base, err := intOperand(in, fieldBase, s.limits.MaxModularDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	exponent, err := intOperand(in, fieldExponent, s.limits.MaxModularDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	modulus, err := intOperand(in, fieldModulus, s.limits.MaxModularDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	result, err := prime.ModPow(base, exponent, modulus)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return respond(map[string]any{fieldResult: result.String()})
}

// RandomRange draws a uniform integer in [low, high]. The seed is always
// reported so a draw can be replayed.
func (s *Service) RandomRange(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	low, err := intOperand(in, fieldLow, s.limits.MaxDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	high, err := intOperand(in, fieldHigh, s.limits.MaxDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	seed, seeded, err := intField(in, fieldSeed)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	source := SeedSourceRequest
	if !seeded {
		seed, err = s.newSeed()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "generate seed: %v", err)
		}
		source = SeedSourceGenerated
	}

	value, err := prime.RandomRange(random.NewSource(seed), low, high)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return respond(map[string]any{
		fieldValue:      value.String(),
		fieldSeedUsed:   strconv.FormatInt(seed, 10),
		fieldSeedSource: source,
	})
}

// Rational applies one fraction operation. Binary operations read both left
// and right; unary ones read only left.
func (s *Service) Rational(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	opText, _, err := stringField(in, fieldOp)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	op := strings.ToLower(opText)
	left, err := ratOperand(in, fieldLeft, s.limits.MaxDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	switch op {
	case "neg":
		return respond(map[string]any{fieldResult: left.Neg().String()})
	case "abs":
		return respond(map[string]any{fieldResult: left.Abs().String()})
	case "sqrt":
		approx, err := left.Sqrt()
		if err != nil {
			return nil, s.fail(ctx, err)
		}
		return respond(map[string]any{fieldSqrt: approx})
	case "isqrt":
		root, err := left.ISqrt()
		if err != nil {
			return nil, s.fail(ctx, err)
		}
		return respond(map[string]any{fieldResult: root.String()})
	case "add", "sub", "mul", "quo", "cmp":
	default:
		return nil, s.fail(ctx, apperrors.WithMetadata(apperrors.CodeUnknownOperator, "unknown rational operation", map[string]string{
			"Operator": opText,
		}))
	}

	right, err := ratOperand(in, fieldRight, s.limits.MaxDigits)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	var result rational.Rat
	switch op {
	case "add":
		result = left.Add(right)
	case "sub":
		result = left.Sub(right)
	case "mul":
		result = left.Mul(right)
	case "quo":
		result, err = left.Quo(right)
		if err != nil {
			return nil, s.fail(ctx, err)
		}
	case "cmp":
		return respond(map[string]any{fieldCmp: left.Cmp(right)})
	}
	return respond(map[string]any{fieldResult: result.String()})
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// fail converts err into a gRPC status localized for the caller.
func (s *Service) fail(ctx context.Context, err error) error {
	return apperrors.HandleError(err, grpcmeta.LocaleFromContext(ctx))
}

func evaluationFields(record storage.Evaluation) map[string]any {
	return map[string]any{
		fieldEvaluationID: record.ID,
		fieldExpression:   record.Expression,
		fieldResult:       record.Result,
		fieldCreatedAt:    record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func respond(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

var _ CalculatorServer = (*Service)(nil)
