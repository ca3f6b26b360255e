package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DeliveryReport lists which notifiers accepted an event, in registration order.
type DeliveryReport struct {
	Delivered []string
	Failed    []string
}

// AllDelivered reports whether every notifier succeeded.
func (r DeliveryReport) AllDelivered() bool {
	return len(r.Failed) == 0
}

// Dispatcher fans one event out to every configured notifier.
type Dispatcher struct {
	notifiers  []Notifier
	concurrent bool
	logger     zerolog.Logger
}

// NewDispatcher creates a dispatcher. When concurrent is set notifiers are invoked in parallel.
func NewDispatcher(notifiers []Notifier, concurrent bool, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifiers:  notifiers,
		concurrent: concurrent,
		logger:     logger.With().Str("component", "NotificationDispatcher").Logger(),
	}
}

// Notifiers returns the names of the registered notifiers.
func (d *Dispatcher) Notifiers() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Dispatch delivers event to every notifier. A failing or panicking notifier never prevents
// delivery to the others.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.NotificationEvent) DeliveryReport {
	results := make([]bool, len(d.notifiers))

	if d.concurrent && len(d.notifiers) > 1 {
		var g errgroup.Group
		var mu sync.Mutex
		for i, n := range d.notifiers {
			i, n := i, n
			g.Go(func() error {
				ok := d.invoke(ctx, n, event)
				mu.Lock()
				results[i] = ok
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, n := range d.notifiers {
			results[i] = d.invoke(ctx, n, event)
		}
	}

	var report DeliveryReport
	for i, n := range d.notifiers {
		if results[i] {
			report.Delivered = append(report.Delivered, n.Name())
		} else {
			report.Failed = append(report.Failed, n.Name())
		}
	}

	d.logger.Debug().
		Str("endpoint", event.Endpoint).
		Str("kind", event.Kind.String()).
		Strs("delivered", report.Delivered).
		Strs("failed", report.Failed).
		Msg("Notification dispatched")
	return report
}

func (d *Dispatcher) invoke(ctx context.Context, n Notifier, event models.NotificationEvent) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("notifier", n.Name()).
				Str("endpoint", event.Endpoint).
				Str("panic", fmt.Sprint(r)).
				Msg("Notifier panicked")
			ok = false
		}
	}()

	switch event.Kind {
	case models.EventChange:
		return n.NotifyChange(ctx, event.Endpoint, event.Fields, event.Attachment)
	case models.EventError:
		return n.NotifyError(ctx, event.Endpoint, event.Message, event.Fields)
	case models.EventWarning:
		return n.NotifyWarning(ctx, event.Endpoint, event.Message, event.Fields)
	default:
		d.logger.Warn().Int("kind", int(event.Kind)).Msg("Unknown notification kind")
		return false
	}
}
