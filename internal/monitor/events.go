package monitor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
)

const diffAttachmentName = "diff.html"

func changeFields(result models.CheckResult, newURLs []string, truncated int) []models.Field {
	fields := []models.Field{
		{Label: "Previous Hash", Value: result.OldDigest, Style: models.FieldCode},
		{Label: "New Hash", Value: result.NewDigest, Style: models.FieldCode},
		{Label: "Previous Size", Value: formatSize(result.OldSize)},
		{Label: "New Size", Value: formatSize(result.NewSize)},
		{Label: "Lines Added", Value: strconv.Itoa(result.LinesAdded)},
		{Label: "Lines Removed", Value: strconv.Itoa(result.LinesDeleted)},
	}
	if len(newURLs) > 0 {
		value := strings.Join(newURLs, "\n")
		if truncated > 0 {
			value += fmt.Sprintf("\n(+%d more)", truncated)
		}
		fields = append(fields, models.Field{Label: "New URLs", Value: value, Style: models.FieldBlock})
	}
	if result.ArtifactLink != "" {
		fields = append(fields, models.Field{Label: "Diff Link", Value: result.ArtifactLink, Style: models.FieldLink})
	}
	return fields
}

func errorFields(err *httpclient.FetchError) []models.Field {
	fields := []models.Field{{Label: "Error Type", Value: err.Kind.String()}}
	if err.StatusCode > 0 {
		fields = append(fields, models.Field{Label: "Status Code", Value: strconv.Itoa(err.StatusCode)})
	}
	return fields
}

func formatSize(n int64) string {
	return fmt.Sprintf("%d Bytes", n)
}

// fail forwards an error event when error notifications are enabled.
func (m *Monitor) fail(ctx context.Context, result *models.CheckResult, message string, fields []models.Field) {
	if !m.notifyCfg.NotifyOnErrors {
		return
	}
	m.dispatch(ctx, result, models.NotificationEvent{
		Endpoint: result.Endpoint,
		Kind:     models.EventError,
		Message:  message,
		Fields:   fields,
	})
}

// warn forwards a warning event when warning notifications are enabled.
func (m *Monitor) warn(ctx context.Context, result *models.CheckResult, message string, fields []models.Field) {
	if !m.notifyCfg.NotifyOnWarnings {
		return
	}
	m.dispatch(ctx, result, models.NotificationEvent{
		Endpoint: result.Endpoint,
		Kind:     models.EventWarning,
		Message:  message,
		Fields:   fields,
	})
}

func (m *Monitor) dispatch(ctx context.Context, result *models.CheckResult, event models.NotificationEvent) {
	report := m.dispatcher.Dispatch(ctx, event)
	result.NotifiedOK += len(report.Delivered)
	result.NotifiedFailed += len(report.Failed)
	if !report.AllDelivered() {
		m.logger.Warn().
			Str("endpoint", event.Endpoint).
			Str("kind", event.Kind.String()).
			Strs("failed", report.Failed).
			Msg("Some notifications were not delivered")
	}
}
