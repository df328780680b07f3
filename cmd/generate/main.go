// Command generate produces a batch of synthetic users once and prints them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"usertables-generator/cmd/api/app"
	"usertables-generator/cmd/api/di"
	"usertables-generator/cmd/api/server"
	"usertables-generator/internal/adapter/output"
	"usertables-generator/internal/config"
	"usertables-generator/internal/usecase/generator"
)

func main() {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}
}

// options are the command line flags.
type options struct {
	count      int
	format     string
	source     string
	configPath string
}

func parseFlags(args []string) (options, error) {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)

	var opts options
	fs.IntVarP(&opts.count, "count", "n", 10, "number of users to generate")
	fs.StringVarP(&opts.format, "format", "f", output.FormatTable, "output format ("+strings.Join(output.Formats, "|")+")")
	fs.StringVarP(&opts.source, "source", "s", "", "generator source (api|local); overrides GENERATOR_SOURCE")
	fs.StringVar(&opts.configPath, "config", envOr("CONFIG_PATH", "."), "directory holding app.env")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.count < 1 {
		return options{}, fmt.Errorf("count must be at least 1, got %d", opts.count)
	}
	if !slices.Contains(output.Formats, opts.format) {
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.source != "" {
		cfg.App.GeneratorSource = strings.ToLower(opts.source)
	}
	// stdout carries the users
	if cfg.Logger.OutputPath == "stdout" || cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = "stderr"
	}

	l, err := app.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	return generate(ctx, cfg, opts, stdout, l)
}

func generate(ctx context.Context, cfg *config.Config, opts options, stdout io.Writer, l *zap.Logger) error {
	c, err := di.NewGeneratorContainer(cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			l.Warn("failed to close resources", zap.Error(err))
		}
	}()

	users, err := generator.GenerateBatch(ctx, c.Generator, opts.count)
	if err != nil {
		// print what was generated before the failure
		if len(users) > 0 {
			_ = output.Write(stdout, opts.format, users)
		}
		return err
	}

	l.Info("users generated",
		zap.Int("count", len(users)),
		zap.Bool("persisted", c.Store != nil),
	)

	return output.Write(stdout, opts.format, users)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
