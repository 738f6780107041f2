package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/service"
	"github.com/muyuda/khaya/internal/domain/valueobject"
)

const (
	principal = 800_000_000.0
	tenure    = 180
)

func bankCandidate(tag, id string, rate float64, fixedYears int) service.Candidate {
	p := model.Product{ID: id, Name: id, Rate: rate, FixedYears: fixedYears}
	return service.Candidate{ID: id, Tag: tag, Name: tag, Label: p.Name, Plan: p.Plan(11, tenure)}
}

func candidates() []service.Candidate {
	return []service.Candidate{
		bankCandidate("bca", "bca_2", 4.5, 5),
		bankCandidate("bca", "bca_1", 3.75, 3),
		bankCandidate("maybank", "maybank_1", 9, 0),
		bankCandidate("mandiri", "man_1", 3.88, 3),
	}
}

func ids(entries []service.ComparisonEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Candidate.ID)
	}
	return out
}

func TestComparisonEngine_Rank(t *testing.T) {
	engine := service.NewComparisonEngine()

	t.Run("default keeps insertion order", func(t *testing.T) {
		entries := engine.Rank(candidates(), principal, tenure, valueobject.SortKeyDefault, "")
		assert.Equal(t, []string{"bca_2", "bca_1", "maybank_1", "man_1"}, ids(entries))
	})

	t.Run("lowest rate", func(t *testing.T) {
		entries := engine.Rank(candidates(), principal, tenure, valueobject.SortKeyLowestRate, service.FilterAll)
		assert.Equal(t, []string{"bca_1", "man_1", "bca_2", "maybank_1"}, ids(entries))
	})

	t.Run("lowest payment", func(t *testing.T) {
		entries := engine.Rank(candidates(), principal, tenure, valueobject.SortKeyLowestPayment, "")
		assert.Equal(t, []string{"bca_1", "man_1", "bca_2", "maybank_1"}, ids(entries))
		for i := 1; i < len(entries); i++ {
			assert.LessOrEqual(t, entries[i-1].FirstMonthPayment, entries[i].FirstMonthPayment)
		}
	})

	t.Run("filter by tag", func(t *testing.T) {
		entries := engine.Rank(candidates(), principal, tenure, valueobject.SortKeyLowestRate, "bca")
		assert.Equal(t, []string{"bca_1", "bca_2"}, ids(entries))
	})

	t.Run("unknown tag", func(t *testing.T) {
		assert.Empty(t, engine.Rank(candidates(), principal, tenure, valueobject.SortKeyDefault, "hsbc"))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		in := []service.Candidate{
			bankCandidate("a", "a_1", 5, 3),
			bankCandidate("b", "b_1", 5, 5),
		}
		entries := engine.Rank(in, principal, tenure, valueobject.SortKeyLowestRate, "")
		assert.Equal(t, []string{"a_1", "b_1"}, ids(entries))
	})
}

func TestComparisonEngine_BankEstimateUsesNominalRate(t *testing.T) {
	// A product without a fixed period is still estimated at its own rate,
	// not at the floating rate the schedule would apply.
	entries := service.RankCandidates(candidates()[2:3], principal, tenure, valueobject.SortKeyDefault, "")
	require.Len(t, entries, 1)

	assert.Equal(t, 9.0, entries[0].NominalRate)
	assert.Equal(t, model.MonthlyAnnuityPayment(principal, 9, tenure), entries[0].FirstMonthPayment)
}

func TestComparisonEngine_EstimateIndependentOfSchedule(t *testing.T) {
	c := candidates()[1]

	before := service.RankCandidates([]service.Candidate{c}, principal, tenure, valueobject.SortKeyDefault, "")

	req, err := model.NewLoanRequest(principal, tenure, c.Plan)
	require.NoError(t, err)
	_ = model.RunSchedule(req)

	after := service.RankCandidates([]service.Candidate{c}, principal, tenure, valueobject.SortKeyDefault, "")
	assert.Equal(t, before[0].FirstMonthPayment, after[0].FirstMonthPayment)
}

func TestComparisonEngine_CustomCandidates(t *testing.T) {
	annuity := service.Candidate{ID: "cp_1", Tag: service.CustomTag, Name: "Rencana Bebas", Plan: model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 37, EndMonth: 180, Rule: model.FloatingRateRule{Rate: 11}},
		{StartMonth: 1, EndMonth: 36, Rule: model.FixedRateRule{Rate: 4.5}},
	}}}
	fixedPayment := service.Candidate{ID: "cp_2", Tag: service.CustomTag, Name: "Cicilan Tetap", Plan: model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 24, Rule: model.FixedPaymentRule{Rate: 6, Amount: 3_000_000}},
		{StartMonth: 25, EndMonth: 180, Rule: model.FloatingRateRule{Rate: 11}},
	}}}
	empty := service.Candidate{ID: "cp_3", Tag: service.CustomTag, Plan: model.CustomPlan{}}

	entries := service.RankCandidates(
		[]service.Candidate{annuity, fixedPayment, empty},
		principal, tenure, valueobject.SortKeyLowestPayment, service.CustomTag,
	)
	require.Len(t, entries, 2, "plans without tiers are skipped")

	assert.Equal(t, "cp_2", entries[0].Candidate.ID)
	assert.Equal(t, 3_000_000.0, entries[0].FirstMonthPayment)
	assert.Equal(t, 6.0, entries[0].NominalRate)

	assert.Equal(t, "cp_1", entries[1].Candidate.ID)
	assert.Equal(t, 4.5, entries[1].NominalRate, "lead tier starts at month one")
	assert.Equal(t, model.MonthlyAnnuityPayment(principal, 4.5, tenure), entries[1].FirstMonthPayment)
}
