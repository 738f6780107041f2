package model

import (
	"fmt"
	"math"
)

// LoanRequest is the immutable input to a simulation.
type LoanRequest struct {
	principal    float64
	tenureMonths int
	plan         RatePlan
}

// NewLoanRequest validates the simulation preconditions. The engine assumes
// a positive principal, a positive tenure and a well-formed plan; callers
// must go through this constructor rather than build requests by hand.
func NewLoanRequest(principal float64, tenureMonths int, plan RatePlan) (LoanRequest, error) {
	if !(principal > 0) || math.IsInf(principal, 0) {
		return LoanRequest{}, fmt.Errorf("%w: principal must be positive", ErrInvalidLoanRequest)
	}
	if tenureMonths <= 0 {
		return LoanRequest{}, fmt.Errorf("%w: tenure must be positive", ErrInvalidLoanRequest)
	}
	if plan == nil {
		return LoanRequest{}, fmt.Errorf("%w: rate plan is required", ErrInvalidLoanRequest)
	}
	if err := plan.validate(tenureMonths); err != nil {
		return LoanRequest{}, err
	}
	return LoanRequest{
		principal:    principal,
		tenureMonths: tenureMonths,
		plan:         plan,
	}, nil
}

// Principal returns the financed amount.
func (r LoanRequest) Principal() float64 { return r.principal }

// TenureMonths returns the number of scheduled months.
func (r LoanRequest) TenureMonths() int { return r.tenureMonths }

// Plan returns the rate plan.
func (r LoanRequest) Plan() RatePlan { return r.plan }
