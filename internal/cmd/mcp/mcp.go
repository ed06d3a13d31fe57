// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/bignumbers/internal/platform/cmd"
	"github.com/louisbranch/bignumbers/internal/platform/discovery"
	mcpservice "github.com/louisbranch/bignumbers/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"BIGNUMBERS_MCP_CALC_ADDR"`
	HTTPAddr  string `env:"BIGNUMBERS_MCP_HTTP_ADDR"`
	Transport string `env:"BIGNUMBERS_MCP_TRANSPORT" envDefault:"stdio"`
	Locale    string `env:"BIGNUMBERS_MCP_LOCALE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "calc server address")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for calculator error messages, e.g. pt-BR")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceCalc)
	cfg.HTTPAddr = discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceMCP)
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			CalcAddr:  cfg.Addr,
			Transport: cfg.Transport,
			HTTPAddr:  cfg.HTTPAddr,
			Locale:    cfg.Locale,
		})
	})
}
