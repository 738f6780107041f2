package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/port"
)

// CatalogKey is the cache key holding the serialized catalog.
const CatalogKey = "kpr:catalog:v1"

type cachedProduct struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	FixedYears int     `json:"fixed_years"`
}

type cachedBank struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	LogoURL      string          `json:"logo_url"`
	Requirements []string        `json:"requirements,omitempty"`
	Products     []cachedProduct `json:"products"`
}

// CachedCatalog decorates a BankCatalogRepository with a read-through cache
// of the whole catalog. Cache failures are logged and fall through to the
// repository.
type CachedCatalog struct {
	next   port.BankCatalogRepository
	cache  port.CatalogCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog wraps next.
func NewCachedCatalog(next port.BankCatalogRepository, cache port.CatalogCache, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) List(ctx context.Context) ([]model.Bank, error) {
	data, err := c.cache.Get(ctx, CatalogKey)
	switch {
	case err == nil:
		banks, decodeErr := decodeCatalog(data)
		if decodeErr == nil {
			return banks, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable catalog cache entry", "error", decodeErr)
	case !errors.Is(err, port.ErrCacheMiss):
		c.logger.WarnContext(ctx, "catalog cache read failed", "error", err)
	}

	banks, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err = encodeCatalog(banks)
	if err != nil {
		c.logger.WarnContext(ctx, "encode catalog for cache failed", "error", err)
		return banks, nil
	}
	if err := c.cache.Set(ctx, CatalogKey, data, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "error", err)
	}
	return banks, nil
}

// FindByID is served from the cached catalog.
func (c *CachedCatalog) FindByID(ctx context.Context, id string) (model.Bank, error) {
	banks, err := c.List(ctx)
	if err != nil {
		return model.Bank{}, err
	}
	for _, b := range banks {
		if b.ID() == id {
			return b, nil
		}
	}
	return model.Bank{}, fmt.Errorf("%w: %s", model.ErrBankNotFound, id)
}

// Save writes through to the repository and drops the cached catalog.
func (c *CachedCatalog) Save(ctx context.Context, bank model.Bank) error {
	if err := c.next.Save(ctx, bank); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

// Invalidate drops the cached catalog.
func (c *CachedCatalog) Invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, CatalogKey); err != nil {
		c.logger.WarnContext(ctx, "catalog cache invalidation failed", "error", err)
	}
}

func encodeCatalog(banks []model.Bank) ([]byte, error) {
	out := make([]cachedBank, 0, len(banks))
	for _, b := range banks {
		cb := cachedBank{
			ID:           b.ID(),
			Name:         b.Name(),
			LogoURL:      b.LogoURL(),
			Requirements: b.Requirements(),
		}
		for _, p := range b.Products() {
			cb.Products = append(cb.Products, cachedProduct(p))
		}
		out = append(out, cb)
	}
	return json.Marshal(out)
}

func decodeCatalog(data []byte) ([]model.Bank, error) {
	var in []cachedBank
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	banks := make([]model.Bank, 0, len(in))
	for _, cb := range in {
		products := make([]model.Product, 0, len(cb.Products))
		for _, p := range cb.Products {
			products = append(products, model.Product(p))
		}
		bank, err := model.NewBank(cb.ID, cb.Name, cb.LogoURL, cb.Requirements, products)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, nil
}
