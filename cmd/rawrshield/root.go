package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Keksclan/goRawrShield/config"
	"github.com/Keksclan/goRawrShield/internal/logging"
	"github.com/Keksclan/goRawrShield/tracing"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// app carries the state shared by all subcommands once the root pre-run has
// loaded configuration.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	tp     *sdktrace.TracerProvider
}

// tracing returns the tracing configuration, or nil when --trace is off.
func (a *app) tracing() *tracing.Config {
	if a.tp == nil {
		return nil
	}
	return &tracing.Config{TracerProvider: a.tp}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		logLevel string
		noColor  bool
		trace    bool
	)

	root := &cobra.Command{
		Use:           "rawrshield",
		Short:         "Client-side resilience toolkit",
		Long:          "rawrshield probes connectivity and fetches through a TTL cache with linear-backoff retries and fallback values. Settings come from RAWR_* environment variables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(os.Stderr, level, noColor)
			slog.SetDefault(a.logger)

			if trace {
				exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
				if err != nil {
					return fmt.Errorf("create stdout exporter: %w", err)
				}
				a.tp = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.tp == nil {
				return nil
			}
			return a.tp.Shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error); overrides RAWR_LOG_LEVEL")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "print OpenTelemetry spans to stderr")

	root.AddCommand(newProbeCmd(a))
	root.AddCommand(newFetchCmd(a))
	root.AddCommand(newServeCmd(a))

	return root
}
