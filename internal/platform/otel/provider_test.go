package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/bignumbers/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("BIGNUMBERS_OTEL_ENDPOINT", "")
	t.Setenv("BIGNUMBERS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "calc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("BIGNUMBERS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("BIGNUMBERS_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "calc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupRejectsSampleRatioOutOfRange(t *testing.T) {
	t.Setenv("BIGNUMBERS_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("BIGNUMBERS_OTEL_ENABLED", "")
	t.Setenv("BIGNUMBERS_OTEL_SAMPLE_RATIO", "2")

	if _, err := otel.Setup(context.Background(), "calc"); err == nil {
		t.Fatal("expected sample ratio error")
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported before shutdown.
	t.Setenv("BIGNUMBERS_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("BIGNUMBERS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "calc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
