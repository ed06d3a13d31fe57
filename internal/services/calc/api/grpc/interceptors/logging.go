// Package interceptors holds the unary interceptors shared by the calculator
// server.
package interceptors

import (
	"context"
	"log"
	"time"

	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Logf matches log.Printf.
type Logf func(format string, args ...any)

// LoggingInterceptor logs one line per unary call with its method, status
// code, duration, request ID and, when a span is recording, the trace ID.
func LoggingInterceptor(logf Logf) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		line := "grpc %s code=%s duration=%s request_id=%s"
		args := []any{info.FullMethod, code, time.Since(start).Round(time.Microsecond), grpcmeta.RequestIDFromContext(ctx)}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			line += " trace_id=%s"
			args = append(args, sc.TraceID().String())
		}
		if err != nil {
			line += " error=%v"
			args = append(args, err)
		}
		logf(line, args...)
		return resp, err
	}
}
