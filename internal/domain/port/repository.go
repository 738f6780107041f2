package port

import (
	"context"
	"errors"
	"time"

	"github.com/muyuda/khaya/internal/domain/event"
	"github.com/muyuda/khaya/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// BankCatalogRepository persists and retrieves the partner bank catalog.
// FindByID returns model.ErrBankNotFound for unknown ids.
type BankCatalogRepository interface {
	List(ctx context.Context) ([]model.Bank, error)
	FindByID(ctx context.Context, id string) (model.Bank, error)
	Save(ctx context.Context, bank model.Bank) error
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// ErrCacheMiss is returned by CatalogCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CatalogCache stores serialized catalog snapshots.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// SimulationRecorder receives engine activity for observability.
type SimulationRecorder interface {
	RecordSimulation(ctx context.Context, mode string, months int)
	RecordComparison(ctx context.Context, mode string, candidates int)
}
