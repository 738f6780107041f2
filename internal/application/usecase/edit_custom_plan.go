package usecase

import (
	"context"
	"fmt"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/model"
)

// Custom plan editing actions.
const (
	ActionNewPlan    = "new"
	ActionAppendTier = "append_tier"
	ActionRemoveTier = "remove_tier"
	ActionRename     = "rename"
)

// EditCustomPlanUseCase applies editor actions to a custom plan. Plans live
// with the caller; the service only transforms them.
type EditCustomPlanUseCase struct {
	settings EngineSettings
}

// NewEditCustomPlanUseCase wires dependencies.
func NewEditCustomPlanUseCase(settings EngineSettings) *EditCustomPlanUseCase {
	return &EditCustomPlanUseCase{settings: settings}
}

// Execute returns the plan after req.Action.
func (uc *EditCustomPlanUseCase) Execute(
	_ context.Context,
	req dto.EditCustomPlanRequest,
) (dto.CustomPlanDTO, error) {
	tenureMonths, err := uc.settings.tenureMonths(req.TenureYears)
	if err != nil {
		return dto.CustomPlanDTO{}, fmt.Errorf("parse tenure: %w", err)
	}

	if req.Action == ActionNewPlan {
		return toCustomPlanDTO(model.NewCustomProduct(req.Name, tenureMonths)), nil
	}

	if req.Plan == nil {
		return dto.CustomPlanDTO{}, fmt.Errorf("%w: plan is required for %q", model.ErrInvalidRatePlan, req.Action)
	}
	product, err := toCustomProduct(*req.Plan)
	if err != nil {
		return dto.CustomPlanDTO{}, fmt.Errorf("parse plan: %w", err)
	}

	switch req.Action {
	case ActionAppendTier:
		product = product.AppendTier(tenureMonths)
	case ActionRemoveTier:
		product, err = product.RemoveTier(req.TierIndex)
	case ActionRename:
		product, err = product.Rename(req.Name)
	default:
		return dto.CustomPlanDTO{}, fmt.Errorf("%w: unknown action %q", model.ErrInvalidRatePlan, req.Action)
	}
	if err != nil {
		return dto.CustomPlanDTO{}, fmt.Errorf("%s: %w", req.Action, err)
	}

	return toCustomPlanDTO(product), nil
}
