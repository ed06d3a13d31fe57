package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/louisbranch/bignumbers/internal/platform/discovery"
	"github.com/louisbranch/bignumbers/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const (
	// healthCheckInterval is how often the http transport checks the calc
	// connection.
	healthCheckInterval = 30 * time.Second
	healthCheckTimeout  = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// runWithHTTPTransport dials the calculator and serves streamable MCP over
// HTTP until ctx ends.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	httpAddr := discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceMCP)

	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer server.Close()

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", httpAddr, err)
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go server.monitorHealth(healthCtx, healthCheckInterval)

	return server.serveHTTP(ctx, listener)
}

// httpHandler returns the streamable MCP handler; every HTTP session shares
// the same tool set.
func (s *Server) httpHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// serveHTTP serves MCP on listener and shuts down gracefully when ctx ends.
func (s *Server) serveHTTP(ctx context.Context, listener net.Listener) error {
	if s == nil || s.mcpServer == nil {
		_ = listener.Close()
		return fmt.Errorf("MCP server is not configured")
	}
	httpServer := &http.Server{
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("MCP HTTP transport listening at %s", listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			// Long-lived SSE streams can outlast the grace period.
			log.Printf("MCP HTTP shutdown: %v", err)
			_ = httpServer.Close()
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}

// monitorHealth logs when the calc connection stops reporting SERVING. The
// HTTP server keeps running; individual tool calls surface the failure.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				log.Printf("calc connection is nil, health check skipped")
				continue
			}
			healthClient := grpc_health_v1.NewHealthClient(s.conn)
			callCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: ""})
			cancel()

			if err != nil {
				log.Printf("calc health check failed: %v", err)
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				log.Printf("calc health check status: %s", response.GetStatus().String())
			}
		}
	}
}
