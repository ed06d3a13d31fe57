// Package service hosts the MCP server that exposes calculator tools and
// forwards every call to the calculator gRPC API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	platformgrpc "github.com/louisbranch/bignumbers/internal/platform/grpc"
	"github.com/louisbranch/bignumbers/internal/platform/timeouts"
	calcservice "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/calc"
	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	"github.com/louisbranch/bignumbers/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	serverName    = "bignumbers-mcp"
	serverVersion = "0.1.0"
)

// Transport kinds accepted by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config configures the MCP server.
type Config struct {
	CalcAddr string
	// Transport is stdio (default) or http.
	Transport string
	// HTTPAddr is the listen address for the http transport.
	HTTPAddr string
	// Locale is sent as accept-language so calculator errors come back
	// localized. Empty keeps the server default.
	Locale string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New dials the calculator and creates an MCP server bound to it.
func New(ctx context.Context, cfg Config) (*Server, error) {
	conn, err := dialCalcGRPC(ctx, cfg)
	if err != nil {
		return nil, err
	}
	server := newServer(calcservice.NewClient(conn))
	server.conn = conn
	return server, nil
}

// newServer registers every calculator tool against client.
func newServer(client domain.CalcClient) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.EvaluateTool(), domain.EvaluateHandler(client))
	mcp.AddTool(mcpServer, domain.ListEvaluationsTool(), domain.ListEvaluationsHandler(client))
	mcp.AddTool(mcpServer, domain.IsPrimeTool(), domain.IsPrimeHandler(client))
	mcp.AddTool(mcpServer, domain.IntegerSqrtTool(), domain.IntegerSqrtHandler(client))
	mcp.AddTool(mcpServer, domain.ModPowTool(), domain.ModPowHandler(client))
	mcp.AddTool(mcpServer, domain.RandomRangeTool(), domain.RandomRangeHandler(client))
	mcp.AddTool(mcpServer, domain.RationalTool(), domain.RationalHandler(client))
	return &Server{mcpServer: mcpServer}
}

// Run dials the calculator and serves MCP on the configured transport until
// ctx ends or the client disconnects.
func Run(ctx context.Context, cfg Config) error {
	transport := strings.ToLower(strings.TrimSpace(cfg.Transport))
	if transport == "" {
		transport = TransportStdio
	}

	switch transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP session and closes the gRPC connection on
// the way out.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func dialCalcGRPC(ctx context.Context, cfg Config) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	addr := strings.TrimSpace(cfg.CalcAddr)
	if addr == "" {
		return nil, fmt.Errorf("calc address is required")
	}
	logf := func(format string, args ...any) {
		log.Printf("calc %s", fmt.Sprintf(format, args...))
	}
	dialOpts := platformgrpc.DefaultClientDialOptions()
	if locale := strings.TrimSpace(cfg.Locale); locale != "" {
		dialOpts = append(dialOpts, grpc.WithChainUnaryInterceptor(localeUnaryClientInterceptor(locale)))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, addr, timeouts.GRPCDial, logf, dialOpts...)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to calc server at %s: %w", addr, dialErr.Err)
		}
		return nil, fmt.Errorf("wait for calc server at %s: %w", addr, err)
	}
	return conn, nil
}

// localeUnaryClientInterceptor adds accept-language to outgoing calls.
func localeUnaryClientInterceptor(locale string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, grpcmeta.LocaleHeader, locale)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
