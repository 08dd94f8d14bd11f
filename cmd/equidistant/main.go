// Package main computes the equidistant boundary-point probability by
// simulation and exact integration, and reports whether the two agree.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	equidistantcmd "github.com/louisbranch/equidistant/internal/cmd/equidistant"
)

func main() {
	cfg, err := equidistantcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[EQUIDISTANT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := equidistantcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("failed to compute: %v", err)
	}
}
