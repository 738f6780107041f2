package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/port"
	"github.com/muyuda/khaya/internal/domain/valueobject"
)

// SimulateLoanUseCase runs a full amortization schedule for either a catalog
// product or a custom tier plan.
type SimulateLoanUseCase struct {
	catalog   port.BankCatalogRepository
	publisher port.EventPublisher
	recorder  port.SimulationRecorder
	settings  EngineSettings
	logger    *slog.Logger
}

// NewSimulateLoanUseCase wires dependencies. A nil recorder disables metrics.
func NewSimulateLoanUseCase(
	catalog port.BankCatalogRepository,
	publisher port.EventPublisher,
	recorder port.SimulationRecorder,
	settings EngineSettings,
	logger *slog.Logger,
) *SimulateLoanUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulateLoanUseCase{
		catalog:   catalog,
		publisher: publisher,
		recorder:  recorder,
		settings:  settings,
		logger:    logger,
	}
}

// Execute builds the rate plan, runs the schedule and summarizes it.
func (uc *SimulateLoanUseCase) Execute(
	ctx context.Context,
	req dto.SimulateRequest,
) (dto.SimulationResponse, error) {
	now := time.Now().UTC()

	// 1. Parse the loan parameters.
	mode, err := valueobject.NewCalcMode(req.Mode)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("parse mode: %w", err)
	}
	houseValue, err := parseHouseValue(req.HouseValue)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("parse house value: %w", err)
	}
	downPayment, err := parseDownPayment(req.DownPayment)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("parse down payment: %w", err)
	}
	tenureMonths, err := uc.settings.tenureMonths(req.TenureYears)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("parse tenure: %w", err)
	}

	input := model.SimulationInput{
		Mode:         mode,
		HouseValue:   houseValue,
		DownPayment:  downPayment,
		TenureMonths: tenureMonths,
		Tolerance:    uc.settings.GroupingTolerance,
	}

	// 2. Resolve the rate plan.
	var planName string
	if mode.Equal(valueobject.CalcModeCustom) {
		if req.CustomPlan == nil {
			return dto.SimulationResponse{}, fmt.Errorf("resolve plan: %w: custom plan is required", model.ErrInvalidRatePlan)
		}
		product, err := toCustomProduct(*req.CustomPlan)
		if err != nil {
			return dto.SimulationResponse{}, fmt.Errorf("resolve plan: %w", err)
		}
		input.ProductID = product.ID()
		input.Plan = product.Plan()
		planName = product.Name()
	} else {
		bank, err := uc.catalog.FindByID(ctx, req.BankID)
		if err != nil {
			return dto.SimulationResponse{}, fmt.Errorf("find bank: %w", err)
		}
		product, err := bank.Product(req.ProductID)
		if err != nil {
			return dto.SimulationResponse{}, fmt.Errorf("find product: %w", err)
		}
		input.BankID = bank.ID()
		input.ProductID = product.ID
		input.Plan = product.Plan(uc.settings.FloatingRate, tenureMonths)
		planName = bank.Name() + " " + product.Name
	}

	// 3. Run the engine.
	sim, err := model.NewSimulation(input, now)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("run simulation: %w", err)
	}
	uc.recorder.RecordSimulation(ctx, mode.String(), len(sim.Schedule()))

	// 4. Publish domain events. A simulation is read-only, so delivery
	// failures do not fail the request.
	if err := uc.publisher.Publish(ctx, sim.DomainEvents()...); err != nil {
		uc.logger.WarnContext(ctx, "publish simulation events failed",
			"simulation_id", sim.ID(), "error", err)
	}

	return toSimulationResponse(sim, planName), nil
}

func toSimulationResponse(sim model.Simulation, planName string) dto.SimulationResponse {
	in := sim.Input()
	return dto.SimulationResponse{
		ID:           sim.ID(),
		Mode:         in.Mode.String(),
		BankID:       in.BankID,
		ProductID:    in.ProductID,
		PlanName:     planName,
		TenureMonths: in.TenureMonths,
		Totals:       toTotalsDTO(sim.Totals()),
		Summary:      toPeriodsDTO(sim.Summary()),
		Schedule:     toScheduleDTO(sim.Schedule()),
		CreatedAt:    sim.CreatedAt(),
	}
}
