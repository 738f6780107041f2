package memory

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/muyuda/khaya/internal/domain/model"
)

//go:embed catalog.yaml
var seedCatalog []byte

type catalogFile struct {
	Banks []bankRecord `yaml:"banks"`
}

type bankRecord struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	LogoURL      string          `yaml:"logo_url"`
	Requirements []string        `yaml:"requirements"`
	Products     []productRecord `yaml:"products"`
}

type productRecord struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Rate       float64 `yaml:"rate"`
	FixedYears int     `yaml:"fixed_years"`
}

// ParseCatalog decodes a YAML catalog document into validated banks.
func ParseCatalog(data []byte) ([]model.Bank, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	banks := make([]model.Bank, 0, len(file.Banks))
	seen := make(map[string]bool, len(file.Banks))
	for _, rec := range file.Banks {
		products := make([]model.Product, 0, len(rec.Products))
		for _, p := range rec.Products {
			products = append(products, model.Product{
				ID:         p.ID,
				Name:       p.Name,
				Rate:       p.Rate,
				FixedYears: p.FixedYears,
			})
		}
		bank, err := model.NewBank(rec.ID, rec.Name, rec.LogoURL, rec.Requirements, products)
		if err != nil {
			return nil, fmt.Errorf("bank %q: %w", rec.ID, err)
		}
		if seen[bank.ID()] {
			return nil, fmt.Errorf("%w: duplicate bank %q", model.ErrInvalidBank, bank.ID())
		}
		seen[bank.ID()] = true
		banks = append(banks, bank)
	}
	return banks, nil
}

// SeedBanks returns the partner banks shipped with the service.
func SeedBanks() ([]model.Bank, error) {
	return ParseCatalog(seedCatalog)
}

// CatalogRepo is a BankCatalogRepository held in process memory. Banks keep
// their insertion order; saving an existing id replaces it in place.
type CatalogRepo struct {
	mu    sync.RWMutex
	banks []model.Bank
}

// NewCatalogRepo returns a repository holding banks.
func NewCatalogRepo(banks []model.Bank) *CatalogRepo {
	return &CatalogRepo{banks: slices.Clone(banks)}
}

// NewSeededCatalogRepo returns a repository holding the shipped catalog.
func NewSeededCatalogRepo() (*CatalogRepo, error) {
	banks, err := SeedBanks()
	if err != nil {
		return nil, err
	}
	return NewCatalogRepo(banks), nil
}

func (r *CatalogRepo) List(_ context.Context) ([]model.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.banks), nil
}

func (r *CatalogRepo) FindByID(_ context.Context, id string) (model.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.banks {
		if b.ID() == id {
			return b, nil
		}
	}
	return model.Bank{}, fmt.Errorf("%w: %s", model.ErrBankNotFound, id)
}

func (r *CatalogRepo) Save(_ context.Context, bank model.Bank) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.banks, func(b model.Bank) bool { return b.ID() == bank.ID() })
	if i >= 0 {
		r.banks[i] = bank
		return nil
	}
	r.banks = append(r.banks, bank)
	return nil
}
