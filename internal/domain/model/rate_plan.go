package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/muyuda/khaya/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RatePlan
// ---------------------------------------------------------------------------

// RatePlan governs the interest and payment rules of a loan. It is either a
// BankPlan or a CustomPlan.
type RatePlan interface {
	validate(tenureMonths int) error
	isRatePlan()
}

// BankPlan is the two-phase plan banks advertise: FixedRate for the first
// FixedPeriodMonths, FloatingRate afterwards.
type BankPlan struct {
	FixedRate         float64
	FixedPeriodMonths int
	FloatingRate      float64
}

func (BankPlan) isRatePlan() {}

func (p BankPlan) validate(tenureMonths int) error {
	if !validRate(p.FixedRate) || !validRate(p.FloatingRate) {
		return fmt.Errorf("%w: rates must be non-negative", ErrInvalidRatePlan)
	}
	if p.FixedPeriodMonths < 0 || p.FixedPeriodMonths > tenureMonths {
		return fmt.Errorf("%w: fixed period %d outside 0..%d months",
			ErrInvalidRatePlan, p.FixedPeriodMonths, tenureMonths)
	}
	return nil
}

// RateForMonth returns the annual rate in effect for a 1-based month.
func (p BankPlan) RateForMonth(month int) float64 {
	if month > p.FixedPeriodMonths {
		return p.FloatingRate
	}
	return p.FixedRate
}

// ---------------------------------------------------------------------------
// Tier rules
// ---------------------------------------------------------------------------

// TierRule decides the rate and payment of a custom tier. The concrete rules
// are FixedRateRule, FixedPaymentRule and FloatingRateRule; a floating tier
// with a user-supplied payment cannot be expressed.
type TierRule interface {
	AnnualRate() float64
	Kind() valueobject.TierKind
	PaymentMode() valueobject.PaymentMode
	isTierRule()
}

// FixedRateRule is a fixed period whose payment follows the annuity formula.
type FixedRateRule struct {
	Rate float64
}

// FixedPaymentRule is a fixed period with a user-supplied payment. Rate is
// still used to accrue interest.
type FixedPaymentRule struct {
	Rate   float64
	Amount float64
}

// FloatingRateRule is a floating period; its payment always follows the
// annuity formula.
type FloatingRateRule struct {
	Rate float64
}

func (r FixedRateRule) AnnualRate() float64                { return r.Rate }
func (FixedRateRule) Kind() valueobject.TierKind           { return valueobject.TierKindFixed }
func (FixedRateRule) PaymentMode() valueobject.PaymentMode { return valueobject.PaymentModeRateDriven }
func (FixedRateRule) isTierRule()                          {}

func (r FixedPaymentRule) AnnualRate() float64                { return r.Rate }
func (FixedPaymentRule) Kind() valueobject.TierKind           { return valueobject.TierKindFixed }
func (FixedPaymentRule) PaymentMode() valueobject.PaymentMode { return valueobject.PaymentModeFixedPayment }
func (FixedPaymentRule) isTierRule()                          {}

func (r FloatingRateRule) AnnualRate() float64                { return r.Rate }
func (FloatingRateRule) Kind() valueobject.TierKind           { return valueobject.TierKindFloating }
func (FloatingRateRule) PaymentMode() valueobject.PaymentMode { return valueobject.PaymentModeRateDriven }
func (FloatingRateRule) isTierRule()                          {}

// NewTierRule builds a rule from the loosely typed kind/mode pair used on
// the wire. Floating tiers with a fixed payment are rejected. A fixed
// payment tier without a positive amount falls back to a fixed-rate annuity.
func NewTierRule(
	kind valueobject.TierKind,
	mode valueobject.PaymentMode,
	rate float64,
	amount float64,
) (TierRule, error) {
	if !validRate(rate) {
		return nil, fmt.Errorf("%w: rate %v", ErrInvalidRatePlan, rate)
	}

	switch {
	case kind.Equal(valueobject.TierKindFloating):
		if mode.Equal(valueobject.PaymentModeFixedPayment) {
			return nil, fmt.Errorf("%w: floating tiers are always rate driven", ErrInvalidRatePlan)
		}
		return FloatingRateRule{Rate: rate}, nil
	case kind.Equal(valueobject.TierKindFixed):
		if mode.Equal(valueobject.PaymentModeFixedPayment) {
			if math.IsInf(amount, 0) {
				return nil, fmt.Errorf("%w: fixed payment %v", ErrInvalidRatePlan, amount)
			}
			if !(amount > 0) {
				return FixedRateRule{Rate: rate}, nil
			}
			return FixedPaymentRule{Rate: rate, Amount: amount}, nil
		}
		return FixedRateRule{Rate: rate}, nil
	default:
		return nil, fmt.Errorf("%w: unknown tier kind %q", ErrInvalidRatePlan, kind.String())
	}
}

// ---------------------------------------------------------------------------
// CustomPlan
// ---------------------------------------------------------------------------

// Tier is an inclusive, 1-based month range governed by one rule.
type Tier struct {
	StartMonth int
	EndMonth   int
	Rule       TierRule
}

// Contains reports whether month falls inside the tier.
func (t Tier) Contains(month int) bool {
	return month >= t.StartMonth && month <= t.EndMonth
}

// CustomPlan is an arbitrary sequence of tiers. Gaps, overlaps, tiers
// starting at month 0 and inverted ranges are all allowed; see ActiveTier
// for how months are resolved.
type CustomPlan struct {
	Tiers []Tier
}

func (CustomPlan) isRatePlan() {}

func (p CustomPlan) validate(_ int) error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: custom plan needs at least one tier", ErrInvalidRatePlan)
	}
	for i, t := range p.Tiers {
		if t.Rule == nil {
			return fmt.Errorf("%w: tier %d has no rule", ErrInvalidRatePlan, i+1)
		}
		if !validRate(t.Rule.AnnualRate()) {
			return fmt.Errorf("%w: tier %d rate %v", ErrInvalidRatePlan, i+1, t.Rule.AnnualRate())
		}
	}
	return nil
}

// Sorted returns a copy of the plan with tiers ordered by StartMonth. Tiers
// sharing a start month keep their declared order.
func (p CustomPlan) Sorted() CustomPlan {
	tiers := make([]Tier, len(p.Tiers))
	copy(tiers, p.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].StartMonth < tiers[j].StartMonth
	})
	return CustomPlan{Tiers: tiers}
}

// ActiveTier returns the first tier containing month. When no tier does, the
// last tier wins. The plan is expected to be sorted and non-empty.
func (p CustomPlan) ActiveTier(month int) Tier {
	for _, t := range p.Tiers {
		if t.Contains(month) {
			return t
		}
	}
	return p.Tiers[len(p.Tiers)-1]
}

// LeadTier is the tier used for quick comparisons: the one declared to start
// at month 1, else the first declared tier.
func (p CustomPlan) LeadTier() (Tier, bool) {
	if len(p.Tiers) == 0 {
		return Tier{}, false
	}
	for _, t := range p.Tiers {
		if t.StartMonth == 1 {
			return t, true
		}
	}
	return p.Tiers[0], true
}

func validRate(rate float64) bool {
	return rate >= 0 && !math.IsInf(rate, 0)
}
