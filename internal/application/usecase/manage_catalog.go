package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/event"
	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/port"
)

// ListBanksUseCase returns the partner bank catalog.
type ListBanksUseCase struct {
	catalog port.BankCatalogRepository
}

// NewListBanksUseCase wires dependencies.
func NewListBanksUseCase(catalog port.BankCatalogRepository) *ListBanksUseCase {
	return &ListBanksUseCase{catalog: catalog}
}

// Execute returns every bank in catalog order.
func (uc *ListBanksUseCase) Execute(ctx context.Context) (dto.BankListResponse, error) {
	banks, err := uc.catalog.List(ctx)
	if err != nil {
		return dto.BankListResponse{}, fmt.Errorf("list banks: %w", err)
	}
	resp := dto.BankListResponse{Banks: make([]dto.BankResponse, 0, len(banks))}
	for _, b := range banks {
		resp.Banks = append(resp.Banks, toBankResponse(b))
	}
	return resp, nil
}

// GetBankUseCase retrieves one bank by ID.
type GetBankUseCase struct {
	catalog port.BankCatalogRepository
}

// NewGetBankUseCase wires dependencies.
func NewGetBankUseCase(catalog port.BankCatalogRepository) *GetBankUseCase {
	return &GetBankUseCase{catalog: catalog}
}

// Execute returns the bank with the given ID.
func (uc *GetBankUseCase) Execute(ctx context.Context, bankID string) (dto.BankResponse, error) {
	bank, err := uc.catalog.FindByID(ctx, bankID)
	if err != nil {
		return dto.BankResponse{}, fmt.Errorf("find bank: %w", err)
	}
	return toBankResponse(bank), nil
}

// UpsertBankUseCase creates or replaces a catalog entry.
type UpsertBankUseCase struct {
	catalog   port.BankCatalogRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUpsertBankUseCase wires dependencies.
func NewUpsertBankUseCase(
	catalog port.BankCatalogRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UpsertBankUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpsertBankUseCase{catalog: catalog, publisher: publisher, logger: logger}
}

// Execute validates and persists the bank, then announces the change so
// other instances drop their cached catalog.
func (uc *UpsertBankUseCase) Execute(
	ctx context.Context,
	req dto.UpsertBankRequest,
) (dto.BankResponse, error) {
	products := make([]model.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, model.Product{
			ID:         p.ID,
			Name:       p.Name,
			Rate:       p.Rate,
			FixedYears: p.FixedYears,
		})
	}

	bank, err := model.NewBank(req.ID, req.Name, req.LogoURL, req.Requirements, products)
	if err != nil {
		return dto.BankResponse{}, fmt.Errorf("create bank: %w", err)
	}

	if err := uc.catalog.Save(ctx, bank); err != nil {
		return dto.BankResponse{}, fmt.Errorf("save bank: %w", err)
	}

	evt := event.NewBankCatalogUpdated(bank.ID(), bank.Name(), len(products), req.UpdatedBy, time.Now().UTC())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.WarnContext(ctx, "publish catalog update failed",
			"bank_id", bank.ID(), "error", err)
	}

	return toBankResponse(bank), nil
}
