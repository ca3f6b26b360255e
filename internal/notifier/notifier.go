package notifier

import (
	"context"

	"github.com/aleister1102/jsmon/internal/models"
)

// Notifier delivers change, error and warning events to one backend.
// Each call makes a single delivery attempt and reports success; failures are logged by the
// implementation and never returned as errors.
type Notifier interface {
	Name() string
	NotifyChange(ctx context.Context, endpoint string, fields []models.Field, attachment *models.Attachment) bool
	NotifyError(ctx context.Context, endpoint, message string, fields []models.Field) bool
	NotifyWarning(ctx context.Context, endpoint, message string, fields []models.Field) bool
}
