// Package main provides the corpusprep command line tool.
//
// Usage:
//
//	corpusprep [--env .env] prepare [--datasets datasets.yaml] [--run-id id] [--push]
//	corpusprep formats
//
// Configuration is read from the environment (optionally seeded from a .env
// file); see internal/config for the variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
