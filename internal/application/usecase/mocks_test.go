package usecase_test

import (
	"context"

	"github.com/muyuda/khaya/internal/domain/event"
	"github.com/muyuda/khaya/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Catalog repository mock
// ---------------------------------------------------------------------------

type mockCatalog struct {
	listFunc     func(ctx context.Context) ([]model.Bank, error)
	findByIDFunc func(ctx context.Context, id string) (model.Bank, error)
	saveFunc     func(ctx context.Context, bank model.Bank) error
	savedBanks   []model.Bank
}

func (m *mockCatalog) List(ctx context.Context) ([]model.Bank, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) FindByID(ctx context.Context, id string) (model.Bank, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Bank{}, model.ErrBankNotFound
}

func (m *mockCatalog) Save(ctx context.Context, bank model.Bank) error {
	m.savedBanks = append(m.savedBanks, bank)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, bank)
	}
	return nil
}

// catalogOf serves a fixed list of banks.
func catalogOf(banks ...model.Bank) *mockCatalog {
	return &mockCatalog{
		listFunc: func(context.Context) ([]model.Bank, error) { return banks, nil },
		findByIDFunc: func(_ context.Context, id string) (model.Bank, error) {
			for _, b := range banks {
				if b.ID() == id {
					return b, nil
				}
			}
			return model.Bank{}, model.ErrBankNotFound
		},
	}
}

// ---------------------------------------------------------------------------
// Event publisher mock
// ---------------------------------------------------------------------------

type mockPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Metrics recorder mock
// ---------------------------------------------------------------------------

type mockRecorder struct {
	simulations []int
	comparisons []int
}

func (m *mockRecorder) RecordSimulation(_ context.Context, _ string, months int) {
	m.simulations = append(m.simulations, months)
}

func (m *mockRecorder) RecordComparison(_ context.Context, _ string, candidates int) {
	m.comparisons = append(m.comparisons, candidates)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func mustBank(id, name string, products ...model.Product) model.Bank {
	b, err := model.NewBank(id, name, "https://placehold.co/100x50?text="+id, nil, products)
	if err != nil {
		panic(err)
	}
	return b
}

func testCatalog() *mockCatalog {
	return catalogOf(
		mustBank("bca", "BCA",
			model.Product{ID: "bca_1", Name: "KPR Fix 3 Thn", Rate: 3.75, FixedYears: 3},
			model.Product{ID: "bca_2", Name: "KPR Fix 5 Thn", Rate: 4.5, FixedYears: 5},
		),
		mustBank("maybank", "Maybank",
			model.Product{ID: "maybank_1", Name: "KPR Floating", Rate: 9.0, FixedYears: 0},
		),
		mustBank("mandiri", "Mandiri",
			model.Product{ID: "man_1", Name: "KPR Milenial", Rate: 3.88, FixedYears: 3},
		),
	)
}
