package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &AppFlags{}

	root := &cobra.Command{
		Use:           "jsmon",
		Short:         "Watch JavaScript assets for changes and report them to chat channels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd, flags)
		},
	}
	registerPersistentFlags(root, flags)
	registerRunFlags(root, flags)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Check every endpoint once and notify about changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd, flags)
		},
	}
	registerRunFlags(runCmd, flags)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved HTML diffs over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	serveCmd.Flags().StringVar(&flags.ServeAddr, "addr", "", "Listen address (default "+config.DefaultArtifactServeAddr+")")

	historyCmd := &cobra.Command{
		Use:   "history [endpoint]",
		Short: "Print recorded fingerprints for one endpoint or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, flags, args)
		},
	}

	root.AddCommand(runCmd, serveCmd, historyCmd)
	return root
}

// loadConfig loads, overrides and validates the configuration, then builds the logger.
// Validation failures are returned as *common.ConfigurationError.
func loadConfig(cmd *cobra.Command, flags *AppFlags, validate func(*config.GlobalConfig) error) (*config.GlobalConfig, zerolog.Logger, error) {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadGlobalConfig(flags.ConfigFile, bootstrap)
	if err != nil {
		return nil, bootstrap, common.WrapError(err, "could not load configuration")
	}
	applyFlags(cmd, flags, cfg)

	if err := validate(cfg); err != nil {
		var cfgErr *common.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, bootstrap, err
		}
		return nil, bootstrap, common.WrapError(err, "configuration validation failed")
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, bootstrap, common.WrapError(err, "could not initialize logger")
	}
	return cfg, zLogger, nil
}
