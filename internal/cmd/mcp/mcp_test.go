package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("BIGNUMBERS_MCP_CALC_ADDR", "")
	t.Setenv("BIGNUMBERS_MCP_LOCALE", "")
	t.Setenv("BIGNUMBERS_MCP_HTTP_ADDR", "")
	t.Setenv("BIGNUMBERS_MCP_TRANSPORT", "")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8090" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.HTTPAddr != "localhost:8091" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.Locale != "" {
		t.Fatalf("expected empty locale, got %q", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("BIGNUMBERS_MCP_CALC_ADDR", "env-calc:1")
	t.Setenv("BIGNUMBERS_MCP_LOCALE", "pt-BR")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "flag-calc:2", "-transport", "http", "-http-addr", "flag-http:3"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "flag-calc:2" {
		t.Fatalf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.Transport != "http" || cfg.HTTPAddr != "flag-http:3" {
		t.Fatalf("expected flag transport settings, got %+v", cfg)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected env locale, got %q", cfg.Locale)
	}
}
