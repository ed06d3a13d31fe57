package interceptors

import (
	"context"
	"fmt"
	"strings"
	"testing"

	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func captureLogf(lines *[]string) Logf {
	return func(format string, args ...any) {
		*lines = append(*lines, fmt.Sprintf(format, args...))
	}
}

func TestLoggingInterceptorSuccess(t *testing.T) {
	var lines []string
	interceptor := LoggingInterceptor(captureLogf(&lines))
	ctx := grpcmeta.WithRequestID(context.Background(), "req-7")

	resp, err := interceptor(ctx, "in", &grpc.UnaryServerInfo{FullMethod: "/calc/Evaluate"}, func(ctx context.Context, req any) (any, error) {
		return "out", nil
	})
	if err != nil || resp != "out" {
		t.Fatalf("unexpected result %v, %v", resp, err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d", len(lines))
	}
	for _, want := range []string{"/calc/Evaluate", "code=OK", "request_id=req-7"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("log line %q missing %q", lines[0], want)
		}
	}
	if strings.Contains(lines[0], "trace_id=") {
		t.Fatalf("did not expect trace id without a span: %q", lines[0])
	}
}

func TestLoggingInterceptorErrorAndTrace(t *testing.T) {
	var lines []string
	interceptor := LoggingInterceptor(captureLogf(&lines))

	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{0x01}})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/calc/ModPow"}, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "zero modulus")
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	for _, want := range []string{"code=InvalidArgument", "trace_id=" + traceID.String(), "zero modulus"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("log line %q missing %q", lines[0], want)
		}
	}
}
