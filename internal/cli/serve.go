package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/internal/server"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

type serveFlags struct {
	addr         string
	logFormat    string
	logLevel     string
	maxBodyBytes int64
}

func newServeCommand(info BuildInfo) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversion and table linting over HTTP",
		Long: `Start an HTTP service exposing the converter and the table lint engine.

Endpoints:
  GET  /healthz       liveness probe
  POST /v1/convert    LaTeX body in, canonical JSON document out
  POST /v1/lint       LaTeX body in, per-table warnings out

The service uses the same configuration as the lint command. It stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags, info)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "",
		"listen address (default from config, "+config.DefaultServeAddr+")")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", logging.FormatLogfmt,
		"request log format: text, json, logfmt")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info",
		"request log level: debug, info, warn, error")
	cmd.Flags().Int64Var(&flags.maxBodyBytes, "max-body-bytes", server.DefaultMaxBodyBytes,
		"largest accepted document in bytes")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags, info BuildInfo) error {
	if !logging.IsFormat(flags.logFormat) {
		return fmt.Errorf("%w: unknown log format %q", ErrUsage, flags.logFormat)
	}

	cliCfg := &config.Config{}
	if flags.addr != "" {
		cliCfg.Serve.Addr = flags.addr
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat)

	srv := server.New(server.Options{
		Pipeline:     lint.NewPipelineFromConfig(lint.DefaultRegistry, cfg),
		Logger:       logger,
		MaxBodyBytes: flags.maxBodyBytes,
		Version:      info.Version,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening",
		logging.FieldAddr, cfg.Serve.Addr,
		logging.FieldVersion, info.Version,
		logging.FieldCommit, info.Commit,
		logging.FieldBuilt, info.Date,
		logging.FieldMaxDepth, cfg.MaxDepth,
	)

	if err := srv.ListenAndServe(ctx, cfg.Serve.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	if ctx.Err() != nil && cmd.Context().Err() == nil {
		logger.Info("shut down")
	}
	return nil
}
