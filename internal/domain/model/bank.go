package model

import (
	"fmt"
	"math"
	"strings"
)

// ---------------------------------------------------------------------------
// Bank aggregate (KPR partner catalog)
// ---------------------------------------------------------------------------

// Product is one mortgage offer of a bank: a nominal rate held fixed for
// FixedYears, floating afterwards.
type Product struct {
	ID         string
	Name       string
	Rate       float64
	FixedYears int
}

// Plan converts the product into a BankPlan for a loan of tenureMonths. A
// fixed period longer than the tenure is cut to the tenure, so such a loan
// never floats.
func (p Product) Plan(floatingRate float64, tenureMonths int) BankPlan {
	return BankPlan{
		FixedRate:         p.Rate,
		FixedPeriodMonths: min(p.FixedYears*12, tenureMonths),
		FloatingRate:      floatingRate,
	}
}

// Catalog rates are stored as NUMERIC(6,3): at most three decimals, and
// nothing a bank would quote comes near the column's upper bound.
const (
	MaxProductRate   = 100.0
	productRateScale = 1000.0
)

func validProductRate(rate float64) bool {
	if !validRate(rate) || rate > MaxProductRate {
		return false
	}
	scaled := rate * productRateScale
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

// Bank is a catalog entry. It is immutable once built.
type Bank struct {
	id           string
	name         string
	logoURL      string
	requirements []string
	products     []Product
}

// NewBank validates and builds a Bank.
func NewBank(id, name, logoURL string, requirements []string, products []Product) (Bank, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Bank{}, fmt.Errorf("%w: bank id is required", ErrInvalidBank)
	}
	if name == "" {
		return Bank{}, fmt.Errorf("%w: bank name is required", ErrInvalidBank)
	}
	if len(products) == 0 {
		return Bank{}, fmt.Errorf("%w: bank %s offers no products", ErrInvalidBank, id)
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return Bank{}, fmt.Errorf("%w: product id is required", ErrInvalidBank)
		}
		if _, dup := seen[p.ID]; dup {
			return Bank{}, fmt.Errorf("%w: duplicate product %s", ErrInvalidBank, p.ID)
		}
		seen[p.ID] = struct{}{}
		if !validProductRate(p.Rate) {
			return Bank{}, fmt.Errorf("%w: product %s rate %v", ErrInvalidBank, p.ID, p.Rate)
		}
		if p.FixedYears < 0 {
			return Bank{}, fmt.Errorf("%w: product %s fixed years %d", ErrInvalidBank, p.ID, p.FixedYears)
		}
	}

	return Bank{
		id:           id,
		name:         name,
		logoURL:      logoURL,
		requirements: append([]string(nil), requirements...),
		products:     append([]Product(nil), products...),
	}, nil
}

func (b Bank) ID() string      { return b.id }
func (b Bank) Name() string    { return b.name }
func (b Bank) LogoURL() string { return b.logoURL }

// Requirements returns a copy of the documents the bank asks for.
func (b Bank) Requirements() []string { return append([]string(nil), b.requirements...) }

// Products returns a copy of the bank's products in catalog order.
func (b Bank) Products() []Product { return append([]Product(nil), b.products...) }

// Product looks up one product by id.
func (b Bank) Product(productID string) (Product, error) {
	for _, p := range b.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s/%s", ErrProductNotFound, b.id, productID)
}
