package usecase

import (
	"context"
	"fmt"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/port"
	"github.com/muyuda/khaya/internal/domain/service"
	"github.com/muyuda/khaya/internal/domain/valueobject"
	"github.com/muyuda/khaya/pkg/money"
)

// CompareProductsUseCase ranks catalog products or custom plans by their
// estimated first-month payment.
type CompareProductsUseCase struct {
	catalog  port.BankCatalogRepository
	engine   *service.ComparisonEngine
	recorder port.SimulationRecorder
	settings EngineSettings
}

// NewCompareProductsUseCase wires dependencies. A nil recorder disables
// metrics.
func NewCompareProductsUseCase(
	catalog port.BankCatalogRepository,
	engine *service.ComparisonEngine,
	recorder port.SimulationRecorder,
	settings EngineSettings,
) *CompareProductsUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &CompareProductsUseCase{
		catalog:  catalog,
		engine:   engine,
		recorder: recorder,
		settings: settings,
	}
}

// Execute builds the candidate list for req.Mode and ranks it. In custom mode
// the bank filter does not apply; without plans the starter template is
// compared.
func (uc *CompareProductsUseCase) Execute(
	ctx context.Context,
	req dto.CompareRequest,
) (dto.ComparisonResponse, error) {
	mode, err := valueobject.NewCalcMode(req.Mode)
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("parse mode: %w", err)
	}
	sortKey, err := valueobject.NewSortKey(req.SortKey)
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("parse sort key: %w", err)
	}
	houseValue, err := parseHouseValue(req.HouseValue)
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("parse house value: %w", err)
	}
	downPayment, err := parseDownPayment(req.DownPayment)
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("parse down payment: %w", err)
	}
	tenureMonths, err := uc.settings.tenureMonths(req.TenureYears)
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("parse tenure: %w", err)
	}
	principal := downPayment.LoanAmount(houseValue)

	filter := req.Filter
	if filter == "" {
		filter = service.FilterAll
	}

	var candidates []service.Candidate
	if mode.Equal(valueobject.CalcModeCustom) {
		candidates, err = customCandidates(req.CustomPlans, tenureMonths)
		filter = service.FilterAll
	} else {
		candidates, err = uc.bankCandidates(ctx, tenureMonths)
	}
	if err != nil {
		return dto.ComparisonResponse{}, fmt.Errorf("build candidates: %w", err)
	}

	entries := uc.engine.Rank(candidates, principal, tenureMonths, sortKey, filter)
	uc.recorder.RecordComparison(ctx, mode.String(), len(entries))

	resp := dto.ComparisonResponse{
		Mode:         mode.String(),
		SortKey:      sortKey.String(),
		Filter:       filter,
		LoanAmount:   money.Rupiah(principal).Amount(),
		TenureMonths: tenureMonths,
		Entries:      make([]dto.ComparisonEntryDTO, 0, len(entries)),
	}
	for _, e := range entries {
		payment := money.Rupiah(e.FirstMonthPayment)
		resp.Entries = append(resp.Entries, dto.ComparisonEntryDTO{
			ID:                       e.Candidate.ID,
			Tag:                      e.Candidate.Tag,
			Name:                     e.Candidate.Name,
			Label:                    e.Candidate.Label,
			NominalRate:              e.NominalRate,
			FirstMonthPayment:        payment.Amount(),
			FirstMonthPaymentDisplay: payment.String(),
		})
	}
	return resp, nil
}

func (uc *CompareProductsUseCase) bankCandidates(ctx context.Context, tenureMonths int) ([]service.Candidate, error) {
	banks, err := uc.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	var candidates []service.Candidate
	for _, b := range banks {
		for _, p := range b.Products() {
			candidates = append(candidates, service.Candidate{
				ID:    p.ID,
				Tag:   b.ID(),
				Name:  b.Name(),
				Label: p.Name,
				Plan:  p.Plan(uc.settings.FloatingRate, tenureMonths),
			})
		}
	}
	return candidates, nil
}

func customCandidates(plans []dto.CustomPlanDTO, tenureMonths int) ([]service.Candidate, error) {
	products := make([]model.CustomProduct, 0, len(plans))
	for i, p := range plans {
		product, err := toCustomProduct(p)
		if err != nil {
			return nil, fmt.Errorf("custom plan %d: %w", i+1, err)
		}
		products = append(products, product)
	}
	if len(products) == 0 {
		products = append(products, model.NewCustomProduct("", tenureMonths))
	}

	candidates := make([]service.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, service.Candidate{
			ID:    p.ID(),
			Tag:   service.CustomTag,
			Name:  p.Name(),
			Label: "Custom",
			Plan:  p.Plan(),
		})
	}
	return candidates, nil
}
