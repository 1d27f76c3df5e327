package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ironsheep/camber-tools-mcp/internal/config"
	"github.com/ironsheep/camber-tools-mcp/internal/pipeline"
	"github.com/ironsheep/camber-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "camber-mcp %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "camber-mcp: %v\n", err)
		return 2
	}

	// Logs go to stderr; stdout carries the MCP protocol or analysis results.
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "camber-mcp: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(logger, pipeline.WithProcessedDir(cfg.Output.ProcessedDir))

	if len(args) > 0 {
		switch args[0] {
		case "analyze":
			return analyze(ctx, logger, p, args[1:], stdout)
		default:
			fmt.Fprintf(stderr, "camber-mcp: unknown command %q (see --help)\n", args[0])
			return 2
		}
	}

	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("camber MCP server starting")

	srv := server.New(logger, p, Version)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}

// analyze runs the pipeline over each path and prints one JSON result per
// line. Every path is attempted; the exit status is 1 if any failed.
func analyze(ctx context.Context, logger zerolog.Logger, p *pipeline.Pipeline, paths []string, stdout io.Writer) int {
	if len(paths) == 0 {
		logger.Error().Msg("analyze needs at least one image path")
		return 2
	}

	enc := json.NewEncoder(stdout)
	status := 0
	for _, path := range paths {
		res, err := p.Process(ctx, path)
		if err != nil {
			logger.Error().Err(err).Str("input", path).Msg("analysis failed")
			status = 1
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if err := enc.Encode(res); err != nil {
			logger.Error().Err(err).Msg("failed to write result")
			return 1
		}
	}
	return status
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "camber-mcp - measure the camber of a sail's stripe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  camber-mcp                      Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  camber-mcp analyze <image>...   Analyse images and print one JSON result per line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Annotated images are written to a 'processed' directory next to each input.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=<file>     YAML config (logging.level, logging.format, output.processedDir)\n", config.EnvConfigPath)
	fmt.Fprintf(w, "  %s=debug   Override the log level\n", config.EnvLogLevel)
}
