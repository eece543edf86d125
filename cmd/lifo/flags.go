package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mholzen/lifo/pkg/collections"
)

func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level: debug, info, warn, error",
			Sources: cli.EnvVars("LIFO_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Append logs to this file instead of stderr",
			Sources: cli.EnvVars("LIFO_LOG_FILE"),
		},
	}
}

func getVariantFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "variant",
		Value: "linked",
		Usage: "Stack implementation: linked (pointer chain) or arena (indexed slots)",
	}
}

func getFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: text or json",
	}
}

func getExposeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "expose",
		Value: "all",
		Usage: "Tools to expose: read, write, all, or comma-separated tool names",
	}
}

func newStack(variant string) (collections.LIFO, error) {
	switch variant {
	case "linked":
		return collections.NewStack(), nil
	case "arena":
		return collections.NewArenaStack(), nil
	}
	return nil, fmt.Errorf("variant must be 'linked' or 'arena'")
}

func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("format must be 'text' or 'json'")
	}
	return nil
}
