package discovery

import "testing"

func TestDefaultAddrs(t *testing.T) {
	if got := DefaultGRPCAddr(ServiceCalc); got != "localhost:8090" {
		t.Fatalf("DefaultGRPCAddr(calc) = %q, want localhost:8090", got)
	}
	if got := DefaultHTTPAddr(ServiceMCP); got != "localhost:8091" {
		t.Fatalf("DefaultHTTPAddr(mcp) = %q, want localhost:8091", got)
	}
	if got := DefaultGRPCPort(" calc "); got != 8090 {
		t.Fatalf("DefaultGRPCPort(calc) = %d, want 8090", got)
	}
	if got := DefaultGRPCAddr("unknown"); got != "" {
		t.Fatalf("DefaultGRPCAddr(unknown) = %q, want empty", got)
	}
	if got := DefaultHTTPAddr(ServiceCalc); got != "" {
		t.Fatalf("calc has no HTTP address, got %q", got)
	}
}

func TestOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
		got   func(string, string) string
		svc   string
		want  string
	}{
		{name: "grpc explicit", value: " calc.internal:9000 ", got: OrDefaultGRPCAddr, svc: ServiceCalc, want: "calc.internal:9000"},
		{name: "grpc fallback", value: "", got: OrDefaultGRPCAddr, svc: ServiceCalc, want: "localhost:8090"},
		{name: "http explicit", value: "0.0.0.0:9001", got: OrDefaultHTTPAddr, svc: ServiceMCP, want: "0.0.0.0:9001"},
		{name: "http fallback", value: "  ", got: OrDefaultHTTPAddr, svc: ServiceMCP, want: "localhost:8091"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(tt.value, tt.svc); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
