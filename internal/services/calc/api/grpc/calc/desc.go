package calc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bignumbers.calc.v1.CalculatorService"

// Full method names, as they appear in grpc.UnaryServerInfo.FullMethod.
const (
	EvaluateFullMethodName        = "/" + ServiceName + "/Evaluate"
	GetEvaluationFullMethodName   = "/" + ServiceName + "/GetEvaluation"
	ListEvaluationsFullMethodName = "/" + ServiceName + "/ListEvaluations"
	IntegerSqrtFullMethodName     = "/" + ServiceName + "/IntegerSqrt"
	IsPrimeFullMethodName         = "/" + ServiceName + "/IsPrime"
	ModPowFullMethodName          = "/" + ServiceName + "/ModPow"
	RandomRangeFullMethodName     = "/" + ServiceName + "/RandomRange"
	RationalFullMethodName        = "/" + ServiceName + "/Rational"
)

// CalculatorServer is the server API for the calculator service. Requests and
// responses are structpb.Struct messages keyed by snake_case field names.
type CalculatorServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEvaluation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvaluations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IntegerSqrt(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IsPrime(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ModPow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RandomRange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Rational(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(CalculatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc describes the calculator service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: unaryHandler(EvaluateFullMethodName, CalculatorServer.Evaluate)},
		{MethodName: "GetEvaluation", Handler: unaryHandler(GetEvaluationFullMethodName, CalculatorServer.GetEvaluation)},
		{MethodName: "ListEvaluations", Handler: unaryHandler(ListEvaluationsFullMethodName, CalculatorServer.ListEvaluations)},
		{MethodName: "IntegerSqrt", Handler: unaryHandler(IntegerSqrtFullMethodName, CalculatorServer.IntegerSqrt)},
		{MethodName: "IsPrime", Handler: unaryHandler(IsPrimeFullMethodName, CalculatorServer.IsPrime)},
		{MethodName: "ModPow", Handler: unaryHandler(ModPowFullMethodName, CalculatorServer.ModPow)},
		{MethodName: "RandomRange", Handler: unaryHandler(RandomRangeFullMethodName, CalculatorServer.RandomRange)},
		{MethodName: "Rational", Handler: unaryHandler(RationalFullMethodName, CalculatorServer.Rational)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bignumbers/calc/v1/calc.proto",
}

// RegisterCalculatorServer registers srv with s.
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CalculatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
