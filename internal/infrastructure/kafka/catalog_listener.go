package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/muyuda/khaya/internal/domain/event"
	pkgkafka "github.com/muyuda/khaya/pkg/kafka"
)

// CatalogInvalidator drops a locally cached catalog.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// NewCatalogUpdateHandler returns a consumer handler that invalidates the
// catalog cache whenever any instance announces a catalog update. Other
// events on the topic are ignored.
func NewCatalogUpdateHandler(invalidator CatalogInvalidator, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		if msg.Headers["event_type"] != event.TypeBankCatalogUpdated {
			return nil
		}
		invalidator.Invalidate(ctx)
		logger.InfoContext(ctx, "catalog cache invalidated",
			"bank_id", string(msg.Key),
			"event_id", msg.Headers["event_id"],
		)
		return nil
	}
}

// healthyRun is how long a consumer must stay up before its restart delay
// starts over from the initial interval.
const healthyRun = time.Minute

// NewRestartBackOff is the restart policy for the catalog listener: one
// second doubling up to a minute, retried until the context ends.
func NewRestartBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// KeepConsuming runs start until ctx is done, restarting it after every
// failure with the delays policy hands out. It returns nil once ctx is done
// or start stops cleanly, and start's last error when policy gives up.
func KeepConsuming(
	ctx context.Context,
	start func(context.Context) error,
	policy backoff.BackOff,
	logger *slog.Logger,
) error {
	policy.Reset()
	for attempt := 1; ; attempt++ {
		began := time.Now()
		err := start(ctx)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		if time.Since(began) >= healthyRun {
			policy.Reset()
		}

		wait := policy.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		logger.WarnContext(ctx, "catalog consumer failed, restarting",
			"error", err,
			"attempt", attempt,
			"retry_in", wait,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
