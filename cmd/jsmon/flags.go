package main

import (
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/spf13/cobra"
)

// AppFlags holds command line overrides for the loaded configuration.
type AppFlags struct {
	ConfigFile     string
	TargetsDir     string
	DiffTarget     string
	DiffsBaseURL   string
	NotifyOnErrors bool
	ServeAddr      string
}

func registerPersistentFlags(cmd *cobra.Command, flags *AppFlags) {
	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the YAML/JSON configuration file (default: $"+config.ConfigPathEnvVar+", then config.yaml or config.json)")
	cmd.PersistentFlags().StringVar(&flags.DiffTarget, "diff-target", "", "Directory where HTML diffs are saved")
	cmd.PersistentFlags().StringVar(&flags.DiffsBaseURL, "diffs-base-url", "", "Public base URL under which saved diffs are reachable")
}

func registerRunFlags(cmd *cobra.Command, flags *AppFlags) {
	cmd.Flags().StringVarP(&flags.TargetsDir, "targets", "t", "", "Directory of text files listing endpoints to monitor")
	cmd.Flags().BoolVar(&flags.NotifyOnErrors, "notify-on-errors", false, "Also send notifications for fetch and storage errors")
}

// applyFlags copies flags that were set on the command line over cfg.
func applyFlags(cmd *cobra.Command, flags *AppFlags, cfg *config.GlobalConfig) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("targets") {
		cfg.MonitorConfig.TargetsDir = flags.TargetsDir
	}
	if changed("diff-target") {
		cfg.ArtifactConfig.Dir = flags.DiffTarget
	}
	if changed("diffs-base-url") {
		cfg.ArtifactConfig.BaseURL = flags.DiffsBaseURL
	}
	if changed("notify-on-errors") {
		cfg.NotificationConfig.NotifyOnErrors = flags.NotifyOnErrors
	}
	if changed("addr") {
		cfg.ArtifactConfig.ServeAddr = flags.ServeAddr
	}
}
