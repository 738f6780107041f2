package valueobject

import (
	"fmt"
	"math"
)

// DefaultDownPaymentPercent is applied when a caller supplies no down payment.
const DefaultDownPaymentPercent = 20.0

const (
	downPaymentPercent = "percent"
	downPaymentAmount  = "amount"
)

// DownPayment is the buyer's own contribution, expressed either as a share of
// the house value or as an absolute amount.
type DownPayment struct {
	mode  string
	value float64
}

// NewDownPayment creates a DownPayment from a raw mode and value. An empty
// mode means percent.
func NewDownPayment(mode string, value float64) (DownPayment, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return DownPayment{}, fmt.Errorf("%w: down payment %v", ErrInvalidValue, value)
	}
	switch mode {
	case "", downPaymentPercent:
		return DownPaymentPercent(value), nil
	case downPaymentAmount:
		if value < 0 {
			return DownPayment{}, fmt.Errorf("%w: negative down payment amount", ErrInvalidValue)
		}
		return DownPaymentAmount(value), nil
	default:
		return DownPayment{}, fmt.Errorf("%w: down payment mode %q", ErrInvalidValue, mode)
	}
}

// DownPaymentPercent returns a percent-of-house-value down payment. The
// percent is clamped to 0..100.
func DownPaymentPercent(percent float64) DownPayment {
	return DownPayment{mode: downPaymentPercent, value: math.Min(100, math.Max(0, percent))}
}

// DownPaymentAmount returns an absolute down payment.
func DownPaymentAmount(amount float64) DownPayment {
	return DownPayment{mode: downPaymentAmount, value: amount}
}

// Mode returns "percent" or "amount".
func (d DownPayment) Mode() string {
	if d.mode == "" {
		return downPaymentPercent
	}
	return d.mode
}

// Amount resolves the down payment against a house value.
func (d DownPayment) Amount(houseValue float64) float64 {
	if d.Mode() == downPaymentAmount {
		return d.value
	}
	return houseValue * (d.value / 100)
}

// Percent resolves the down payment as a share of a house value.
func (d DownPayment) Percent(houseValue float64) float64 {
	if houseValue == 0 {
		return 0
	}
	return d.Amount(houseValue) / houseValue * 100
}

// LoanAmount is the house value left to finance, never negative.
func (d DownPayment) LoanAmount(houseValue float64) float64 {
	return math.Max(0, houseValue-d.Amount(houseValue))
}
