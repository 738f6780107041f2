package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/infrastructure/cache"
	"github.com/muyuda/khaya/internal/infrastructure/persistence/memory"
)

// countingRepo counts calls reaching the underlying repository.
type countingRepo struct {
	*memory.CatalogRepo
	lists int
}

func (r *countingRepo) List(ctx context.Context) ([]model.Bank, error) {
	r.lists++
	return r.CatalogRepo.List(ctx)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingCache) Delete(context.Context, ...string) error {
	return errors.New("connection refused")
}

func newRepo(t *testing.T) *countingRepo {
	t.Helper()
	seeded, err := memory.NewSeededCatalogRepo()
	require.NoError(t, err)
	return &countingRepo{CatalogRepo: seeded}
}

func TestCachedCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		repo := newRepo(t)
		catalog := cache.NewCachedCatalog(repo, cache.NewMemoryCache(), time.Minute, nil)

		first, err := catalog.List(ctx)
		require.NoError(t, err)
		second, err := catalog.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.lists)
		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, first[i].ID(), second[i].ID())
			assert.Equal(t, first[i].Products(), second[i].Products())
			assert.Equal(t, first[i].Requirements(), second[i].Requirements())
		}

		bank, err := catalog.FindByID(ctx, "btn")
		require.NoError(t, err)
		assert.Equal(t, "BTN", bank.Name())
		assert.Equal(t, 1, repo.lists)

		_, err = catalog.FindByID(ctx, "hsbc")
		assert.ErrorIs(t, err, model.ErrBankNotFound)
	})

	t.Run("save invalidates the cached catalog", func(t *testing.T) {
		repo := newRepo(t)
		catalog := cache.NewCachedCatalog(repo, cache.NewMemoryCache(), time.Minute, nil)

		_, err := catalog.List(ctx)
		require.NoError(t, err)

		bank, err := model.NewBank("bca", "BCA Syariah", "", nil, []model.Product{{ID: "x", Name: "X", Rate: 4}})
		require.NoError(t, err)
		require.NoError(t, catalog.Save(ctx, bank))

		got, err := catalog.FindByID(ctx, "bca")
		require.NoError(t, err)
		assert.Equal(t, "BCA Syariah", got.Name())
		assert.Equal(t, 2, repo.lists)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		repo := newRepo(t)
		catalog := cache.NewCachedCatalog(repo, cache.NewMemoryCache(), time.Minute, nil)

		_, _ = catalog.List(ctx)
		catalog.Invalidate(ctx)
		_, _ = catalog.List(ctx)

		assert.Equal(t, 2, repo.lists)
	})

	t.Run("falls through when the cache is down", func(t *testing.T) {
		repo := newRepo(t)
		catalog := cache.NewCachedCatalog(repo, failingCache{}, time.Minute, nil)

		banks, err := catalog.List(ctx)
		require.NoError(t, err)
		assert.Len(t, banks, 10)

		bank, err := model.NewBank("bsi", "BSI", "", nil, []model.Product{{ID: "b", Name: "B", Rate: 4.65}})
		require.NoError(t, err)
		assert.NoError(t, catalog.Save(ctx, bank))
	})

	t.Run("discards a corrupt cache entry", func(t *testing.T) {
		repo := newRepo(t)
		mem := cache.NewMemoryCache()
		require.NoError(t, mem.Set(ctx, cache.CatalogKey, []byte("{not json"), time.Minute))
		catalog := cache.NewCachedCatalog(repo, mem, time.Minute, nil)

		banks, err := catalog.List(ctx)
		require.NoError(t, err)
		assert.Len(t, banks, 10)
		assert.Equal(t, 1, repo.lists)
	})
}
