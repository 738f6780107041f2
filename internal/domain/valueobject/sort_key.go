package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is wrapped by every parse error in this package.
var ErrInvalidValue = errors.New("invalid value")

// ---------------------------------------------------------------------------
// SortKey – immutable value object
// ---------------------------------------------------------------------------

// SortKey selects how comparison entries are ordered.
type SortKey struct {
	value string
}

const (
	sortKeyDefault       = "default"
	sortKeyLowestRate    = "lowestRate"
	sortKeyLowestPayment = "lowestPayment"
)

var (
	SortKeyDefault       = SortKey{value: sortKeyDefault}
	SortKeyLowestRate    = SortKey{value: sortKeyLowestRate}
	SortKeyLowestPayment = SortKey{value: sortKeyLowestPayment}
)

var validSortKeys = map[string]SortKey{
	sortKeyDefault:       SortKeyDefault,
	sortKeyLowestRate:    SortKeyLowestRate,
	sortKeyLowestPayment: SortKeyLowestPayment,
}

// NewSortKey creates a SortKey from a raw string. An empty string selects
// insertion order.
func NewSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortKeyDefault, nil
	}
	v, ok := validSortKeys[s]
	if !ok {
		return SortKey{}, fmt.Errorf("%w: sort key %q", ErrInvalidValue, s)
	}
	return v, nil
}

// String returns the string representation of the key.
func (k SortKey) String() string {
	if k.value == "" {
		return sortKeyDefault
	}
	return k.value
}

// Equal returns true when both keys carry the same value.
func (k SortKey) Equal(other SortKey) bool { return k.String() == other.String() }

// ---------------------------------------------------------------------------
// CalcMode – immutable value object
// ---------------------------------------------------------------------------

// CalcMode selects between catalog products and user-defined tier plans.
type CalcMode struct {
	value string
}

const (
	calcModeBank   = "bank"
	calcModeCustom = "custom"
)

var (
	CalcModeBank   = CalcMode{value: calcModeBank}
	CalcModeCustom = CalcMode{value: calcModeCustom}
)

// NewCalcMode creates a CalcMode from a raw string. An empty string selects
// bank mode.
func NewCalcMode(s string) (CalcMode, error) {
	switch s {
	case "", calcModeBank:
		return CalcModeBank, nil
	case calcModeCustom:
		return CalcModeCustom, nil
	default:
		return CalcMode{}, fmt.Errorf("%w: calculation mode %q", ErrInvalidValue, s)
	}
}

// String returns the string representation of the mode.
func (m CalcMode) String() string { return m.value }

// Equal returns true when both modes carry the same value.
func (m CalcMode) Equal(other CalcMode) bool { return m.value == other.value }
