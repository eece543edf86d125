package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "lifo",
		Usage: "Drive a singly-linked LIFO stack of 32-bit integers",
		Flags: getGlobalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogging(cmd.String("log-level"), cmd.String("log-file"))
		},
		Commands: getCommands(),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
