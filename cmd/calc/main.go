// Package main starts the calculator gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	calccmd "github.com/louisbranch/bignumbers/internal/cmd/calc"
	entrypoint "github.com/louisbranch/bignumbers/internal/platform/cmd"
	"github.com/louisbranch/bignumbers/internal/platform/config"
)

func main() {
	cfg, err := calccmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceCalc))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := calccmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
