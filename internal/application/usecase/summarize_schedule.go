package usecase

import (
	"context"
	"fmt"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/model"
)

// SummarizeScheduleUseCase groups caller-supplied schedule rows into payment
// periods.
type SummarizeScheduleUseCase struct {
	settings EngineSettings
}

// NewSummarizeScheduleUseCase wires dependencies.
func NewSummarizeScheduleUseCase(settings EngineSettings) *SummarizeScheduleUseCase {
	return &SummarizeScheduleUseCase{settings: settings}
}

// Execute returns the payment periods of req.Rows.
func (uc *SummarizeScheduleUseCase) Execute(
	_ context.Context,
	req dto.SummarizeRequest,
) (dto.SummaryResponse, error) {
	tolerance := uc.settings.GroupingTolerance
	if req.Tolerance != nil {
		if *req.Tolerance < 0 {
			return dto.SummaryResponse{}, fmt.Errorf("%w: negative tolerance", model.ErrInvalidLoanRequest)
		}
		tolerance = *req.Tolerance
	}

	periods := model.SummarizePaymentPeriodsWithTolerance(toScheduleRows(req.Rows), tolerance)
	return dto.SummaryResponse{Periods: toPeriodsDTO(periods)}, nil
}
