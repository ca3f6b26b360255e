package monitor

import (
	"context"
	"net/url"
	"time"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/datastore"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/aleister1102/jsmon/internal/notifier"
	"github.com/rs/zerolog"
)

// ContentFetcher retrieves the current content of one endpoint.
type ContentFetcher interface {
	Fetch(ctx context.Context, endpoint string) (*httpclient.FetchResult, error)
}

// DiffEngine compares two stored versions.
type DiffEngine interface {
	Diff(oldDigest, newDigest, contentType string) (*models.DiffArtifact, error)
}

// EventDispatcher delivers notification events.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event models.NotificationEvent) notifier.DeliveryReport
}

// ArtifactSaver persists diff documents and returns a shareable link.
type ArtifactSaver interface {
	Save(document []byte) (path string, link string, err error)
}

// URLExtractor lists URLs introduced by a new script version.
type URLExtractor interface {
	NewURLs(oldContent, newContent []byte, base *url.URL) ([]string, int)
}

// RunArchiver stores a finished run summary.
type RunArchiver interface {
	Write(ctx context.Context, summary *models.RunSummary) (string, error)
}

// Monitor runs one sequential pass over a list of endpoints.
type Monitor struct {
	store       datastore.HistoryStore
	fetcher     ContentFetcher
	differ      DiffEngine
	dispatcher  EventDispatcher
	sink        ArtifactSaver
	extractor   URLExtractor
	archiver    RunArchiver
	metrics     *RunMetrics
	metricsPath string
	notifyCfg   config.NotificationConfig
	now         func() time.Time
	logger      zerolog.Logger
}

// MonitorBuilder provides a fluent interface for creating a Monitor
type MonitorBuilder struct {
	store       datastore.HistoryStore
	fetcher     ContentFetcher
	differ      DiffEngine
	dispatcher  EventDispatcher
	sink        ArtifactSaver
	extractor   URLExtractor
	archiver    RunArchiver
	metrics     *RunMetrics
	metricsPath string
	notifyCfg   config.NotificationConfig
	now         func() time.Time
	logger      zerolog.Logger
}

// NewMonitorBuilder creates a new builder
func NewMonitorBuilder(logger zerolog.Logger) *MonitorBuilder {
	return &MonitorBuilder{
		notifyCfg: config.NewDefaultNotificationConfig(),
		now:       time.Now,
		logger:    logger,
	}
}

// WithHistoryStore sets the fingerprint ledger
func (b *MonitorBuilder) WithHistoryStore(store datastore.HistoryStore) *MonitorBuilder {
	b.store = store
	return b
}

// WithFetcher sets the content fetcher
func (b *MonitorBuilder) WithFetcher(fetcher ContentFetcher) *MonitorBuilder {
	b.fetcher = fetcher
	return b
}

// WithDiffEngine sets the diff engine
func (b *MonitorBuilder) WithDiffEngine(differ DiffEngine) *MonitorBuilder {
	b.differ = differ
	return b
}

// WithDispatcher sets the notification dispatcher
func (b *MonitorBuilder) WithDispatcher(dispatcher EventDispatcher) *MonitorBuilder {
	b.dispatcher = dispatcher
	return b
}

// WithNotificationConfig sets which event kinds are forwarded
func (b *MonitorBuilder) WithNotificationConfig(cfg config.NotificationConfig) *MonitorBuilder {
	b.notifyCfg = cfg
	return b
}

// WithArtifactSaver enables persisting diff documents
func (b *MonitorBuilder) WithArtifactSaver(sink ArtifactSaver) *MonitorBuilder {
	b.sink = sink
	return b
}

// WithURLExtractor enables the New URLs field on change notifications
func (b *MonitorBuilder) WithURLExtractor(extractor URLExtractor) *MonitorBuilder {
	b.extractor = extractor
	return b
}

// WithArchiver enables the per-run archive
func (b *MonitorBuilder) WithArchiver(archiver RunArchiver) *MonitorBuilder {
	b.archiver = archiver
	return b
}

// WithMetrics sets the metrics collector and, when path is not empty, the textfile written after the run
func (b *MonitorBuilder) WithMetrics(metrics *RunMetrics, path string) *MonitorBuilder {
	b.metrics = metrics
	b.metricsPath = path
	return b
}

// WithClock overrides time.Now
func (b *MonitorBuilder) WithClock(now func() time.Time) *MonitorBuilder {
	b.now = now
	return b
}

// Build creates a new Monitor instance
func (b *MonitorBuilder) Build() (*Monitor, error) {
	if b.store == nil {
		return nil, common.NewValidationError("history_store", nil, "history store cannot be nil")
	}
	if b.fetcher == nil {
		return nil, common.NewValidationError("fetcher", nil, "fetcher cannot be nil")
	}
	if b.differ == nil {
		return nil, common.NewValidationError("diff_engine", nil, "diff engine cannot be nil")
	}
	if b.dispatcher == nil {
		return nil, common.NewValidationError("dispatcher", nil, "dispatcher cannot be nil")
	}

	metrics := b.metrics
	if metrics == nil {
		metrics = NewRunMetrics()
	}

	return &Monitor{
		store:       b.store,
		fetcher:     b.fetcher,
		differ:      b.differ,
		dispatcher:  b.dispatcher,
		sink:        b.sink,
		extractor:   b.extractor,
		archiver:    b.archiver,
		metrics:     metrics,
		metricsPath: b.metricsPath,
		notifyCfg:   b.notifyCfg,
		now:         b.now,
		logger:      b.logger.With().Str("component", "Monitor").Logger(),
	}, nil
}

// Run checks every endpoint in order. Per-endpoint failures are recorded in the summary and
// never stop the pass. When ctx is cancelled the remaining endpoints are marked skipped and
// the context error is returned with the partial summary.
func (m *Monitor) Run(ctx context.Context, endpoints []string) (*models.RunSummary, error) {
	summary := models.NewRunSummary(m.now())
	m.logger.Info().Int("endpoints", len(endpoints)).Msg("Starting monitor run")

	var runErr error
	for i, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			m.logger.Warn().Int("remaining", len(endpoints)-i).Msg("Run interrupted, skipping remaining endpoints")
			for _, rest := range endpoints[i:] {
				skipped := models.CheckResult{Endpoint: rest, State: models.CheckSkipped, CheckedAt: m.now(), Error: err.Error()}
				summary.Add(skipped)
				m.metrics.ObserveCheck(skipped)
			}
			runErr = err
			break
		}

		result := m.CheckEndpoint(ctx, endpoint)
		summary.Add(result)
		m.metrics.ObserveCheck(result)
	}

	summary.FinishedAt = m.now()
	m.finish(context.WithoutCancel(ctx), summary)
	return summary, runErr
}

func (m *Monitor) finish(ctx context.Context, summary *models.RunSummary) {
	m.metrics.ObserveRun(summary)

	if m.metricsPath != "" {
		if err := m.metrics.WriteTextfile(m.metricsPath); err != nil {
			m.logger.Error().Err(err).Msg("Failed to write metrics textfile")
		}
	}

	if m.archiver != nil {
		if path, err := m.archiver.Write(ctx, summary); err != nil {
			m.logger.Error().Err(err).Msg("Failed to archive run")
		} else {
			m.logger.Info().Str("path", path).Msg("Run archived")
		}
	}

	event := m.logger.Info().
		Int("total", summary.Total()).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt))
	for _, s := range models.AllCheckStates {
		if n := summary.Counts[s]; n > 0 {
			event = event.Int(s.String(), n)
		}
	}
	event.Msg("Monitor run finished")
}
