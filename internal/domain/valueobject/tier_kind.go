package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// TierKind – immutable value object
// ---------------------------------------------------------------------------

// TierKind tells whether a custom tier is a fixed or a floating period.
type TierKind struct {
	value string
}

const (
	tierKindFixed    = "Fixed"
	tierKindFloating = "Floating"
)

var (
	TierKindFixed    = TierKind{value: tierKindFixed}
	TierKindFloating = TierKind{value: tierKindFloating}
)

var validTierKinds = map[string]TierKind{
	tierKindFixed:    TierKindFixed,
	tierKindFloating: TierKindFloating,
}

// NewTierKind creates a TierKind from a raw string.
func NewTierKind(s string) (TierKind, error) {
	v, ok := validTierKinds[s]
	if !ok {
		return TierKind{}, fmt.Errorf("%w: tier kind %q", ErrInvalidValue, s)
	}
	return v, nil
}

// String returns the string representation of the kind.
func (k TierKind) String() string { return k.value }

// IsZero returns true if the kind has not been initialised.
func (k TierKind) IsZero() bool { return k.value == "" }

// Equal returns true when both kinds carry the same value.
func (k TierKind) Equal(other TierKind) bool { return k.value == other.value }

// ---------------------------------------------------------------------------
// PaymentMode – immutable value object
// ---------------------------------------------------------------------------

// PaymentMode tells whether a tier's payment comes from the annuity formula
// or from an amount the user typed in.
type PaymentMode struct {
	value string
}

const (
	paymentModeRate    = "Rate"
	paymentModePayment = "Payment"
)

var (
	PaymentModeRateDriven   = PaymentMode{value: paymentModeRate}
	PaymentModeFixedPayment = PaymentMode{value: paymentModePayment}
)

var validPaymentModes = map[string]PaymentMode{
	paymentModeRate:    PaymentModeRateDriven,
	paymentModePayment: PaymentModeFixedPayment,
}

// NewPaymentMode creates a PaymentMode from a raw string. An empty string
// means rate driven.
func NewPaymentMode(s string) (PaymentMode, error) {
	if s == "" {
		return PaymentModeRateDriven, nil
	}
	v, ok := validPaymentModes[s]
	if !ok {
		return PaymentMode{}, fmt.Errorf("%w: payment mode %q", ErrInvalidValue, s)
	}
	return v, nil
}

// String returns the string representation of the mode.
func (m PaymentMode) String() string { return m.value }

// Equal returns true when both modes carry the same value.
func (m PaymentMode) Equal(other PaymentMode) bool { return m.value == other.value }
