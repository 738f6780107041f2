package usecase

import (
	"context"
	"fmt"

	"github.com/muyuda/khaya/internal/domain/model"
)

// EngineSettings are the tunables shared by the KPR use cases.
type EngineSettings struct {
	// FloatingRate is the annual rate applied after a bank product's fixed
	// period.
	FloatingRate float64
	// GroupingTolerance is the payment drift allowed inside one summary
	// period, in whole rupiah.
	GroupingTolerance int64
	// MaxTenureYears caps the tenure a caller may ask for.
	MaxTenureYears int
}

// DefaultEngineSettings mirrors the published calculator.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		FloatingRate:      11.0,
		GroupingTolerance: model.DefaultGroupingTolerance,
		MaxTenureYears:    30,
	}
}

func (s EngineSettings) tenureMonths(years int) (int, error) {
	if years < 1 || years > s.MaxTenureYears {
		return 0, fmt.Errorf("%w: tenure must be 1..%d years, got %d",
			model.ErrInvalidLoanRequest, s.MaxTenureYears, years)
	}
	return years * 12, nil
}

type noopRecorder struct{}

func (noopRecorder) RecordSimulation(context.Context, string, int) {}
func (noopRecorder) RecordComparison(context.Context, string, int) {}
