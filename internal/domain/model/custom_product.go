package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Defaults used when a user starts or extends a custom plan.
const (
	DefaultCustomFixedMonths  = 36
	DefaultCustomFixedRate    = 5.0
	DefaultCustomFloatingRate = 10.0
	appendedTierMinMonths     = 12
)

// ErrLastTier is returned when removing the only tier of a plan.
var ErrLastTier = errors.New("a custom plan needs at least one tier")

// CustomProduct is a user-named custom plan. Edits return a new copy.
type CustomProduct struct {
	id   string
	name string
	plan CustomPlan
}

// NewCustomProduct returns the starter template: a 36-month fixed tier at 5%
// followed by a floating tier at 10% up to the end of the tenure.
func NewCustomProduct(name string, tenureMonths int) CustomProduct {
	if strings.TrimSpace(name) == "" {
		name = "Custom KPR"
	}
	fixedEnd := min(DefaultCustomFixedMonths, tenureMonths)
	tiers := []Tier{{StartMonth: 1, EndMonth: fixedEnd, Rule: FixedRateRule{Rate: DefaultCustomFixedRate}}}
	if fixedEnd < tenureMonths {
		tiers = append(tiers, Tier{
			StartMonth: fixedEnd + 1,
			EndMonth:   tenureMonths,
			Rule:       FloatingRateRule{Rate: DefaultCustomFloatingRate},
		})
	}
	return CustomProduct{id: uuid.New().String(), name: name, plan: CustomPlan{Tiers: tiers}}
}

// ReconstructCustomProduct rebuilds a product from caller-held state.
func ReconstructCustomProduct(id, name string, plan CustomPlan) CustomProduct {
	if id == "" {
		id = uuid.New().String()
	}
	return CustomProduct{id: id, name: name, plan: CustomPlan{Tiers: append([]Tier(nil), plan.Tiers...)}}
}

func (c CustomProduct) ID() string   { return c.id }
func (c CustomProduct) Name() string { return c.name }

// Plan returns a copy of the product's tiers.
func (c CustomProduct) Plan() CustomPlan {
	return CustomPlan{Tiers: append([]Tier(nil), c.plan.Tiers...)}
}

// Rename returns a copy with a new display name.
func (c CustomProduct) Rename(name string) (CustomProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, fmt.Errorf("%w: name is required", ErrInvalidRatePlan)
	}
	next := c
	next.name = name
	next.plan = c.Plan()
	return next, nil
}

// AppendTier adds a floating tier after the last declared tier, running to
// the end of the tenure. When the last tier already reaches the end it is
// shortened by up to a year to make room.
func (c CustomProduct) AppendTier(tenureMonths int) CustomProduct {
	tiers := c.Plan().Tiers
	if len(tiers) == 0 {
		return NewCustomProduct(c.name, tenureMonths)
	}

	last := &tiers[len(tiers)-1]
	if last.EndMonth >= tenureMonths {
		last.EndMonth = max(last.StartMonth, tenureMonths-appendedTierMinMonths)
	}
	start := last.EndMonth + 1
	end := max(start, tenureMonths)

	tiers = append(tiers, Tier{
		StartMonth: start,
		EndMonth:   end,
		Rule:       FloatingRateRule{Rate: DefaultCustomFloatingRate},
	})

	next := c
	next.plan = CustomPlan{Tiers: tiers}
	return next
}

// RemoveTier drops the tier at index. The last remaining tier cannot be
// removed.
func (c CustomProduct) RemoveTier(index int) (CustomProduct, error) {
	if len(c.plan.Tiers) <= 1 {
		return c, ErrLastTier
	}
	if index < 0 || index >= len(c.plan.Tiers) {
		return c, fmt.Errorf("%w: tier index %d out of range", ErrInvalidRatePlan, index)
	}
	tiers := make([]Tier, 0, len(c.plan.Tiers)-1)
	tiers = append(tiers, c.plan.Tiers[:index]...)
	tiers = append(tiers, c.plan.Tiers[index+1:]...)

	next := c
	next.plan = CustomPlan{Tiers: tiers}
	return next, nil
}
