package service

import (
	"sort"

	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/valueobject"
)

// FilterAll disables tag filtering.
const FilterAll = "all"

// CustomTag is the tag carried by user-defined candidates.
const CustomTag = "custom"

// ---------------------------------------------------------------------------
// ComparisonEngine – ranks rate plans by a first-month estimate
// ---------------------------------------------------------------------------

// Candidate is one plan offered for comparison. Tag identifies its origin,
// a bank id for catalog products or CustomTag for user plans.
type Candidate struct {
	ID    string
	Tag   string
	Name  string
	Label string
	Plan  model.RatePlan
}

// ComparisonEntry is a candidate with its estimated first payment and the
// rate used to rank it.
type ComparisonEntry struct {
	Candidate         Candidate
	FirstMonthPayment float64
	NominalRate       float64
}

// ComparisonEngine estimates and orders candidates. It never runs the full
// schedule: estimates come from the annuity formula over the whole tenure.
type ComparisonEngine struct{}

// NewComparisonEngine returns a new engine instance.
func NewComparisonEngine() *ComparisonEngine {
	return &ComparisonEngine{}
}

// Rank filters candidates by tag and orders them by sortKey. Default order is
// the input order; ties keep their input order too. Candidates without a
// usable plan are left out.
func (e *ComparisonEngine) Rank(
	candidates []Candidate,
	principal float64,
	tenureMonths int,
	sortKey valueobject.SortKey,
	filterTag string,
) []ComparisonEntry {
	entries := make([]ComparisonEntry, 0, len(candidates))
	for _, c := range candidates {
		if filterTag != "" && filterTag != FilterAll && c.Tag != filterTag {
			continue
		}
		entry, ok := estimate(c, principal, tenureMonths)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	switch {
	case sortKey.Equal(valueobject.SortKeyLowestRate):
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].NominalRate < entries[j].NominalRate
		})
	case sortKey.Equal(valueobject.SortKeyLowestPayment):
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].FirstMonthPayment < entries[j].FirstMonthPayment
		})
	}

	return entries
}

// RankCandidates is a convenience wrapper around ComparisonEngine.Rank.
func RankCandidates(
	candidates []Candidate,
	principal float64,
	tenureMonths int,
	sortKey valueobject.SortKey,
	filterTag string,
) []ComparisonEntry {
	return NewComparisonEngine().Rank(candidates, principal, tenureMonths, sortKey, filterTag)
}

func estimate(c Candidate, principal float64, tenureMonths int) (ComparisonEntry, bool) {
	switch plan := c.Plan.(type) {
	case model.BankPlan:
		return ComparisonEntry{
			Candidate:         c,
			NominalRate:       plan.FixedRate,
			FirstMonthPayment: model.MonthlyAnnuityPayment(principal, plan.FixedRate, tenureMonths),
		}, true
	case model.CustomPlan:
		lead, ok := plan.LeadTier()
		if !ok || lead.Rule == nil {
			return ComparisonEntry{}, false
		}
		rate := lead.Rule.AnnualRate()
		payment := model.MonthlyAnnuityPayment(principal, rate, tenureMonths)
		if fp, isFixed := lead.Rule.(model.FixedPaymentRule); isFixed {
			payment = fp.Amount
		}
		return ComparisonEntry{Candidate: c, NominalRate: rate, FirstMonthPayment: payment}, true
	default:
		return ComparisonEntry{}, false
	}
}
