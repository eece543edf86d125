package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mholzen/lifo/pkg/mcp"
	"github.com/mholzen/lifo/pkg/script"
)

func getCommands() []*cli.Command {
	return []*cli.Command{
		getScenarioCommand(),
		getRunCommand(),
		getTeardownCommand(),
		getMcpCommand(),
		getServeCommand(),
		getVersionCommand(),
	}
}

func getScenarioCommand() *cli.Command {
	return &cli.Command{
		Name:      "scenario",
		Usage:     "Run the reference push/pop scenario",
		UsageText: "lifo scenario [options]",
		Flags:     []cli.Flag{getVariantFlag(), getFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runScript(cmd, strings.NewReader(script.ReferenceScenario))
		},
	}
}

func getRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a script of push, pop and drop operations",
		UsageText: "lifo run [<file>] [options]",
		Description: `Each line holds one operation:
  push <int> [<int>...]   push values in order
  pop                     pop once and print the value or "none"
  drop                    release every element

Blank lines and text after '#' are ignored. Reads stdin when no file or "-" is given.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "file",
				UsageText: "<file> (default: stdin)",
			},
		},
		Flags: []cli.Flag{getVariantFlag(), getFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.StringArg("file")
			if path == "" || path == "-" {
				return runScript(cmd, cmd.Root().Reader)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("cannot open script: %w", err)
			}
			defer f.Close()
			return runScript(cmd, f)
		},
	}
}

func runScript(cmd *cli.Command, r io.Reader) error {
	format := cmd.String("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	stack, err := newStack(cmd.String("variant"))
	if err != nil {
		return err
	}
	defer stack.Drop()

	ops, err := script.Parse(r)
	if err != nil {
		return fmt.Errorf("cannot parse script: %w", err)
	}

	steps := script.Run(stack, ops)
	return printSteps(cmd.Root().Writer, steps, format)
}

func getTeardownCommand() *cli.Command {
	return &cli.Command{
		Name:      "teardown",
		Usage:     "Build a deep stack and time its teardown",
		UsageText: "lifo teardown [options]",
		Flags: []cli.Flag{
			getVariantFlag(),
			getFormatFlag(),
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   100_000,
				Usage:   "Number of elements to push before teardown",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := validateFormat(format); err != nil {
				return err
			}

			count := cmd.Int("count")
			if count < 0 {
				return fmt.Errorf("count must not be negative")
			}

			variant := cmd.String("variant")
			stack, err := newStack(variant)
			if err != nil {
				return err
			}

			for i := 0; i < count; i++ {
				stack.Push(int32(i))
			}

			start := time.Now()
			released := stack.Drop()
			report := TeardownReport{
				Variant:  variant,
				Count:    count,
				Released: released,
				Elapsed:  time.Since(start),
			}
			slog.Info("teardown complete", "variant", variant, "released", released, "elapsed", report.Elapsed)

			if format == "json" {
				return printJSONToWriter(cmd.Root().Writer, report)
			}
			fmt.Fprintln(cmd.Root().Writer, report.String())
			return nil
		},
	}
}

func getMcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Run as MCP server (stdio transport)",
		UsageText: "lifo mcp [options]",
		Description: `Start an MCP server holding one stack for the whole session.

Tool groups:
  read   stack_is_empty
  write  stack_push, stack_pop, stack_drop
  all    All available tools (default)

Examples:
  lifo mcp                    # All tools
  lifo mcp --expose=read      # Only inspect the stack
  lifo mcp --expose=push,pop  # Specific tools only`,
		Flags: []cli.Flag{getExposeFlag(), getVariantFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			session, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer session.Drop()

			return mcp.RunServer(ctx, mcp.Config{
				Expose:  cmd.String("expose"),
				Version: version,
				Session: session,
			})
		},
	}
}

func getServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Run as MCP server (streamable HTTP transport)",
		UsageText: "lifo serve [options]",
		Flags: []cli.Flag{
			getExposeFlag(),
			getVariantFlag(),
			&cli.StringFlag{
				Name:    "addr",
				Value:   "localhost:8080",
				Usage:   "Address to listen on",
				Sources: cli.EnvVars("LIFO_ADDR"),
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Value: "/mcp",
				Usage: "Path of the MCP endpoint",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			session, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer session.Drop()

			return mcp.RunHTTPServer(ctx, mcp.HTTPConfig{
				Config: mcp.Config{
					Expose:  cmd.String("expose"),
					Version: version,
					Session: session,
				},
				Addr:         cmd.String("addr"),
				EndpointPath: cmd.String("endpoint"),
			})
		},
	}
}

func newSession(cmd *cli.Command) (*mcp.Session, error) {
	stack, err := newStack(cmd.String("variant"))
	if err != nil {
		return nil, err
	}
	return mcp.NewSession(stack), nil
}

func getVersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "lifo version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			fmt.Fprintf(w, "lifo version %s\n", version)
			fmt.Fprintf(w, "commit: %s\n", commit)
			fmt.Fprintf(w, "built: %s\n", date)
			return nil
		},
	}
}
