package metadata

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeTransportStream struct {
	header metadata.MD
}

func (s *fakeTransportStream) Method() string { return "/bignumbers.calc.v1.CalculatorService/Evaluate" }

func (s *fakeTransportStream) SetHeader(md metadata.MD) error {
	s.header = metadata.Join(s.header, md)
	return nil
}

func (s *fakeTransportStream) SendHeader(md metadata.MD) error { return s.SetHeader(md) }

func (s *fakeTransportStream) SetTrailer(metadata.MD) error { return nil }

func TestRequestIDContextHelpers(t *testing.T) {
	if RequestIDFromContext(nil) != "" {
		t.Fatal("expected empty request id for nil context")
	}

	ctx := WithRequestID(nil, "req-1")
	if RequestIDFromContext(ctx) != "req-1" {
		t.Fatalf("expected request id req-1, got %s", RequestIDFromContext(ctx))
	}
}

func TestIsPrintableASCII(t *testing.T) {
	if IsPrintableASCII("") {
		t.Fatal("expected empty string to be non-printable")
	}
	if !IsPrintableASCII("pt-BR") {
		t.Fatal("expected printable ascii to be accepted")
	}
	if IsPrintableASCII("line\n") {
		t.Fatal("expected newline to be non-printable")
	}
}

func TestFirstMetadataValue(t *testing.T) {
	md := metadata.MD{
		"X-Bignumbers-Request-Id": {"\n", "req-1"},
	}
	if got := FirstMetadataValue(md, RequestIDHeader); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := FirstMetadataValue(nil, RequestIDHeader); got != "" {
		t.Fatalf("expected empty value for nil metadata, got %q", got)
	}
}

func TestLocaleFromContext(t *testing.T) {
	if LocaleFromContext(context.Background()) != "" {
		t.Fatal("expected empty locale without metadata")
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, "pt-BR,pt;q=0.9"))
	if got := LocaleFromContext(ctx); got != "pt-BR,pt;q=0.9" {
		t.Fatalf("locale = %q", got)
	}
}

func TestUnaryServerInterceptorGeneratesID(t *testing.T) {
	stream := &fakeTransportStream{}
	ctx := grpc.NewContextWithServerTransportStream(context.Background(), stream)
	interceptor := UnaryServerInterceptor(func() (string, error) { return "generated", nil })

	var seen string
	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if seen != "generated" {
		t.Fatalf("handler saw request id %q", seen)
	}
	if got := stream.header.Get(RequestIDHeader); len(got) != 1 || got[0] != "generated" {
		t.Fatalf("response header = %v", got)
	}
}

func TestUnaryServerInterceptorKeepsCallerID(t *testing.T) {
	stream := &fakeTransportStream{}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "caller-1"))
	ctx = grpc.NewContextWithServerTransportStream(ctx, stream)
	interceptor := UnaryServerInterceptor(func() (string, error) {
		t.Fatal("generator should not run when the caller sends an id")
		return "", nil
	})

	var seen string
	if _, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	}); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if seen != "caller-1" {
		t.Fatalf("handler saw request id %q", seen)
	}
}

func TestUnaryServerInterceptorGeneratorFailure(t *testing.T) {
	interceptor := UnaryServerInterceptor(func() (string, error) { return "", errors.New("boom") })
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not run")
		return nil, nil
	})
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestNewRequestIDIsUnique(t *testing.T) {
	a, _ := NewRequestID()
	b, _ := NewRequestID()
	if a == "" || a == b {
		t.Fatalf("expected distinct ids, got %q and %q", a, b)
	}
}
