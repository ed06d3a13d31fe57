package calc

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("BIGNUMBERS_CALC_PORT", "")
	t.Setenv("BIGNUMBERS_CALC_ADDR", "")
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8090 {
		t.Fatalf("expected default port 8090, got %d", cfg.Port)
	}
	if cfg.Addr != "" {
		t.Fatalf("expected empty addr, got %q", cfg.Addr)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("BIGNUMBERS_CALC_PORT", "9100")
	t.Setenv("BIGNUMBERS_CALC_ADDR", "127.0.0.1:9200")

	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 || cfg.Addr != "127.0.0.1:9200" {
		t.Fatalf("expected env values, got %+v", cfg)
	}

	fs = flag.NewFlagSet("calc", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-port", "9300", "-addr", "localhost:9400"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9300 || cfg.Addr != "localhost:9400" {
		t.Fatalf("expected flag values, got %+v", cfg)
	}
}

func TestParseConfigRejectsBadPort(t *testing.T) {
	t.Setenv("BIGNUMBERS_CALC_PORT", "nope")
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected invalid port to fail")
	}
}
