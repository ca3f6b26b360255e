package monitor

import (
	"context"
	"errors"
	"net/url"

	"github.com/aleister1102/jsmon/internal/differ"
	"github.com/aleister1102/jsmon/internal/fingerprint"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/aleister1102/jsmon/internal/urlhandler"
)

// CheckEndpoint runs the fetch, compare, persist, diff and notify sequence for one endpoint.
// History is always written before any change notification goes out.
func (m *Monitor) CheckEndpoint(ctx context.Context, endpoint string) (result models.CheckResult) {
	start := m.now()
	result = models.CheckResult{Endpoint: endpoint, CheckedAt: start}
	defer func() { result.Duration = m.now().Sub(start) }()

	log := m.logger.With().Str("endpoint", endpoint).Logger()

	if err := urlhandler.ValidateEndpoint(endpoint); err != nil {
		result.State = models.CheckInvalid
		result.Error = err.Error()
		log.Warn().Err(err).Msg("Invalid endpoint, not fetching")
		m.warn(ctx, &result, "Invalid endpoint: "+err.Error(), nil)
		return result
	}

	last, found, err := m.store.LastFingerprint(endpoint)
	if err != nil {
		result.State = models.CheckStoreFailed
		result.Error = err.Error()
		log.Error().Err(err).Msg("Failed to read history")
		m.fail(ctx, &result, "Failed to read history: "+err.Error(), nil)
		return result
	}
	if found {
		result.OldDigest = last
	}

	fetched, err := m.fetcher.Fetch(ctx, endpoint)
	if err != nil && ctx.Err() != nil {
		result.State = models.CheckSkipped
		result.Error = ctx.Err().Error()
		log.Warn().Msg("Fetch interrupted")
		return result
	}
	if err != nil {
		result.State = models.CheckFetchFailed
		result.Error = err.Error()

		var fields []models.Field
		var fetchErr *httpclient.FetchError
		if errors.As(err, &fetchErr) {
			result.StatusCode = fetchErr.StatusCode
			fields = errorFields(fetchErr)
		}
		log.Warn().Err(err).Msg("Fetch failed, history left untouched")
		m.fail(ctx, &result, err.Error(), fields)
		return result
	}

	result.StatusCode = fetched.StatusCode
	result.ContentType = fetched.ContentType
	result.NewSize = fetched.Size()

	digest := fingerprint.Of(fetched.Body)
	result.NewDigest = digest

	if found && digest == last {
		result.State = models.CheckUnchanged
		log.Debug().Str("fingerprint", digest).Msg("Content unchanged")
		return result
	}

	content := []byte(fetched.Body)
	if err := m.store.Append(endpoint, digest, content); err != nil {
		result.State = models.CheckStoreFailed
		result.Error = err.Error()
		log.Error().Err(err).Str("fingerprint", digest).Msg("Failed to record new version")
		m.fail(ctx, &result, "Failed to record new version: "+err.Error(), nil)
		return result
	}

	if !found {
		result.State = models.CheckEnrolled
		log.Info().Str("fingerprint", digest).Int64("size", result.NewSize).Msg("New endpoint enrolled")
		return result
	}

	if info, err := m.store.BlobStat(last); err == nil {
		result.OldSize = info.Size
	}

	artifact, err := m.differ.Diff(last, digest, fetched.ContentType)
	if err != nil {
		result.State = models.CheckDiffFailed
		result.Error = err.Error()
		log.Error().Err(err).Str("old_fingerprint", last).Str("new_fingerprint", digest).Msg("Diff failed; stored history may be inconsistent")
		m.fail(ctx, &result, "Diff failed: "+err.Error(), []models.Field{
			{Label: "Previous Hash", Value: last, Style: models.FieldCode},
			{Label: "New Hash", Value: digest, Style: models.FieldCode},
		})
		return result
	}

	result.State = models.CheckChanged
	result.LinesAdded = artifact.LinesAdded
	result.LinesDeleted = artifact.LinesDeleted
	log.Info().
		Str("old_fingerprint", last).
		Str("new_fingerprint", digest).
		Int("lines_added", artifact.LinesAdded).
		Int("lines_deleted", artifact.LinesDeleted).
		Msg("Content changed")

	result.ArtifactLink = m.saveArtifact(ctx, &result, artifact)
	newURLs, truncated := m.newURLs(endpoint, last, content, fetched.ContentType)

	event := models.NotificationEvent{
		Endpoint: endpoint,
		Kind:     models.EventChange,
		Message:  "Endpoint content changed",
		Fields:   changeFields(result, newURLs, truncated),
	}
	if m.notifyCfg.AttachDiff && len(artifact.Document) > 0 {
		event.Attachment = &models.Attachment{
			Filename:    diffAttachmentName,
			ContentType: "text/html",
			Data:        artifact.Document,
		}
	}
	m.dispatch(ctx, &result, event)
	return result
}

func (m *Monitor) saveArtifact(ctx context.Context, result *models.CheckResult, artifact *models.DiffArtifact) string {
	if m.sink == nil || len(artifact.Document) == 0 {
		return ""
	}
	path, link, err := m.sink.Save(artifact.Document)
	if err != nil {
		m.logger.Warn().Err(err).Str("endpoint", result.Endpoint).Msg("Failed to save diff, notifying without link")
		m.warn(ctx, result, "Failed to save diff: "+err.Error(), nil)
		return ""
	}
	m.logger.Debug().Str("endpoint", result.Endpoint).Str("path", path).Msg("Diff saved")
	return link
}

// newURLs runs the extractor over the previous and current script versions.
func (m *Monitor) newURLs(endpoint, oldDigest string, newContent []byte, contentType string) ([]string, int) {
	if m.extractor == nil || !differ.IsScriptLike(contentType) {
		return nil, 0
	}
	oldContent, err := m.store.ReadBlob(oldDigest)
	if err != nil {
		m.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("Previous version unavailable for URL extraction")
		return nil, 0
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, 0
	}
	return m.extractor.NewURLs(oldContent, newContent, base)
}
