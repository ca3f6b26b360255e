package main

import (
	"context"
	"errors"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/datastore"
	"github.com/aleister1102/jsmon/internal/differ"
	"github.com/aleister1102/jsmon/internal/extractor"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/aleister1102/jsmon/internal/monitor"
	"github.com/aleister1102/jsmon/internal/notifier"
	"github.com/aleister1102/jsmon/internal/reporter"
	"github.com/aleister1102/jsmon/internal/urlhandler"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func runMonitor(cmd *cobra.Command, flags *AppFlags) error {
	cfg, zLogger, err := loadConfig(cmd, flags, config.ValidateConfig)
	if err != nil {
		return err
	}

	endpoints, err := urlhandler.LoadEndpoints(cfg.MonitorConfig.TargetsDir, zLogger)
	if err != nil {
		return common.WrapError(err, "could not load endpoints")
	}
	if len(endpoints) == 0 {
		zLogger.Warn().Str("dir", cfg.MonitorConfig.TargetsDir).Msg("No endpoints to monitor")
	}

	store, err := datastore.NewHistoryStore(cfg.StorageConfig, zLogger)
	if err != nil {
		return common.WrapError(err, "could not open history store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Error().Err(err).Msg("Failed to close history store")
		}
	}()

	m, err := buildMonitor(cfg, store, zLogger)
	if err != nil {
		return err
	}

	summary, err := m.Run(cmd.Context(), endpoints)
	if errors.Is(err, context.Canceled) {
		zLogger.Warn().Int("skipped", summary.Counts[models.CheckSkipped]).Msg("Run interrupted")
		return nil
	}
	return err
}

// buildMonitor wires every component named in the configuration around store.
func buildMonitor(cfg *config.GlobalConfig, store datastore.HistoryStore, zLogger zerolog.Logger) (*monitor.Monitor, error) {
	dispatcher, err := notifier.NewDispatcherFromConfig(cfg.NotificationConfig, zLogger)
	if err != nil {
		return nil, err
	}
	zLogger.Info().Strs("notifiers", dispatcher.Notifiers()).Msg("Notification channels ready")

	client, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithMonitorConfig(cfg.MonitorConfig).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "could not create HTTP client")
	}

	renderer, err := reporter.NewHTMLDiffRenderer()
	if err != nil {
		return nil, err
	}
	contentDiffer, err := differ.NewContentDifferBuilder(zLogger).
		WithDiffConfig(cfg.DiffConfig).
		WithBlobReader(store).
		WithRenderer(renderer).
		Build()
	if err != nil {
		return nil, err
	}

	builder := monitor.NewMonitorBuilder(zLogger).
		WithHistoryStore(store).
		WithFetcher(httpclient.NewFetcher(client, zLogger)).
		WithDiffEngine(contentDiffer).
		WithDispatcher(dispatcher).
		WithNotificationConfig(cfg.NotificationConfig).
		WithMetrics(monitor.NewRunMetrics(), cfg.MetricsConfig.TextfilePath)

	if sink := reporter.NewArtifactSink(cfg.ArtifactConfig.Dir, cfg.ArtifactConfig.BaseURL, zLogger); sink != nil {
		builder.WithArtifactSaver(sink)
	}
	if cfg.ExtractorConfig.Enabled {
		builder.WithURLExtractor(extractor.NewJSluiceAnalyzer(cfg.ExtractorConfig, zLogger))
	}
	if cfg.ArchiveConfig.Enabled {
		archiver, err := datastore.NewRunArchiveBuilder(zLogger).WithArchiveConfig(cfg.ArchiveConfig).Build()
		if err != nil {
			return nil, err
		}
		builder.WithArchiver(archiver)
	}

	return builder.Build()
}
