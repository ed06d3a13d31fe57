// Package server wires the calculator runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/bignumbers/internal/platform/config"
	calcservice "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/calc"
	"github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	calcsqlite "github.com/louisbranch/bignumbers/internal/services/calc/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath             string `env:"BIGNUMBERS_CALC_DB_PATH"`
	PrimeRounds        int    `env:"BIGNUMBERS_PRIME_ROUNDS" envDefault:"20"`
	MaxConns           int    `env:"BIGNUMBERS_CALC_MAX_CONNS" envDefault:"256"`
	MaxDigits          int    `env:"BIGNUMBERS_CALC_MAX_DIGITS" envDefault:"1000"`
	MaxModularDigits   int    `env:"BIGNUMBERS_CALC_MAX_MODULAR_DIGITS" envDefault:"100"`
	MaxDepth           int    `env:"BIGNUMBERS_CALC_MAX_DEPTH" envDefault:"64"`
	MaxExpressionBytes int    `env:"BIGNUMBERS_CALC_MAX_EXPRESSION_BYTES" envDefault:"65536"`
}

func (e serverEnv) serviceConfig() calcservice.Config {
	return calcservice.Config{
		PrimeRounds:        e.PrimeRounds,
		MaxDigits:          e.MaxDigits,
		MaxModularDigits:   e.MaxModularDigits,
		MaxDepth:           e.MaxDepth,
		MaxExpressionBytes: e.MaxExpressionBytes,
	}
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "calc.db")
	}
	return cfg, nil
}

// Server hosts the calculator gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *calcsqlite.Store
}

// New creates a configured calculator server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured calculator server for the provided
// address.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, fmt.Errorf("load calc env: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if env.MaxConns > 0 {
		listener = netutil.LimitListener(listener, env.MaxConns)
	}

	store, err := openCalcStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			interceptors.LoggingInterceptor(log.Printf),
		),
	)
	healthServer := health.NewServer()
	calcservice.RegisterCalculatorServer(grpcServer, calcservice.NewService(store, env.serviceConfig()))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(calcservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a calculator server until context cancellation.
func Run(ctx context.Context, addr string) error {
	server, err := NewWithAddr(addr)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("calc server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases calculator server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close calc store: %v", err)
		}
	}
}

func openCalcStore(path string) (*calcsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := calcsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open calc sqlite store: %w", err)
	}
	return store, nil
}
