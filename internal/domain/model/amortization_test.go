package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muyuda/khaya/internal/domain/model"
)

const floatingRate = 11.0

func mustRequest(t *testing.T, principal float64, tenure int, plan model.RatePlan) model.LoanRequest {
	t.Helper()
	req, err := model.NewLoanRequest(principal, tenure, plan)
	require.NoError(t, err)
	return req
}

func TestMonthlyAnnuityPayment(t *testing.T) {
	t.Run("standard annuity", func(t *testing.T) {
		// 800M at 6% over 15 years.
		got := model.MonthlyAnnuityPayment(800_000_000, 6, 180)
		want := 800_000_000 * 0.005 / (1 - math.Pow(1.005, -180))
		assert.InDelta(t, want, got, 1e-6)
		assert.InDelta(t, 6_750_855, got, 1)
	})

	t.Run("zero rate is linear", func(t *testing.T) {
		assert.Equal(t, 1_000_000.0, model.MonthlyAnnuityPayment(120_000_000, 0, 120))
	})
}

func TestRunSchedule_BankPlanFlatRate(t *testing.T) {
	plan := model.BankPlan{FixedRate: 6, FixedPeriodMonths: 180, FloatingRate: floatingRate}
	schedule := model.RunSchedule(mustRequest(t, 800_000_000, 180, plan))

	require.Len(t, schedule, 180)

	first := schedule[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, int64(4_000_000), first.Interest, "month-1 interest is principal * 6%/12")
	assert.InDelta(t, 6_750_855, first.Payment, 1)
	assert.Equal(t, first.Payment, first.Interest+first.PrincipalPaid)
	assert.Equal(t, 6.0, first.Rate)

	last := schedule[len(schedule)-1]
	assert.Equal(t, 180, last.Month)
	assert.Equal(t, int64(0), last.EndingBalance)
}

func TestRunSchedule_BankPlanFixedToFloating(t *testing.T) {
	plan := model.BankPlan{FixedRate: 3.75, FixedPeriodMonths: 36, FloatingRate: floatingRate}
	schedule := model.RunSchedule(mustRequest(t, 800_000_000, 180, plan))

	require.Len(t, schedule, 180)

	for _, row := range schedule[:36] {
		assert.Equal(t, 3.75, row.Rate, "month %d should be fixed", row.Month)
	}
	for _, row := range schedule[36:] {
		assert.Equal(t, floatingRate, row.Rate, "month %d should be floating", row.Month)
	}

	// The payment is level inside each phase and recomputed exactly once.
	fixedPayment := schedule[0].Payment
	for _, row := range schedule[:36] {
		assert.Equal(t, fixedPayment, row.Payment)
	}
	floatingPayment := schedule[36].Payment
	assert.Greater(t, floatingPayment, fixedPayment)
	for _, row := range schedule[36:] {
		assert.Equal(t, floatingPayment, row.Payment)
	}

	assert.Equal(t, int64(0), schedule[179].EndingBalance)
}

func TestRunSchedule_BankPlanMonotonicBalance(t *testing.T) {
	plan := model.BankPlan{FixedRate: 4.5, FixedPeriodMonths: 60, FloatingRate: floatingRate}
	schedule := model.RunSchedule(mustRequest(t, 1_000_000_000, 240, plan))

	prev := int64(math.MaxInt64)
	for _, row := range schedule {
		require.Greater(t, row.Payment, row.Interest)
		assert.LessOrEqual(t, row.EndingBalance, prev, "month %d", row.Month)
		prev = row.EndingBalance
	}
}

func TestRunSchedule_BankPlanNoFixedPeriod(t *testing.T) {
	plan := model.BankPlan{FixedRate: 9, FixedPeriodMonths: 0, FloatingRate: floatingRate}
	schedule := model.RunSchedule(mustRequest(t, 500_000_000, 120, plan))

	require.Len(t, schedule, 120)
	for _, row := range schedule {
		assert.Equal(t, floatingRate, row.Rate)
	}
	assert.InDelta(t, model.MonthlyAnnuityPayment(500_000_000, floatingRate, 120), float64(schedule[0].Payment), 1)
}

func TestRunSchedule_ZeroRateLinearity(t *testing.T) {
	t.Run("bank plan", func(t *testing.T) {
		plan := model.BankPlan{FixedRate: 0, FixedPeriodMonths: 120, FloatingRate: 0}
		schedule := model.RunSchedule(mustRequest(t, 120_000_000, 120, plan))

		for _, row := range schedule {
			assert.Equal(t, int64(0), row.Interest)
			assert.Equal(t, int64(1_000_000), row.PrincipalPaid)
		}
		assert.Equal(t, int64(0), schedule[len(schedule)-1].EndingBalance)
	})

	t.Run("custom plan", func(t *testing.T) {
		plan := model.CustomPlan{Tiers: []model.Tier{
			{StartMonth: 1, EndMonth: 120, Rule: model.FixedRateRule{Rate: 0}},
		}}
		schedule := model.RunSchedule(mustRequest(t, 120_000_000, 120, plan))

		require.Len(t, schedule, 120)
		for _, row := range schedule {
			assert.Equal(t, int64(0), row.Interest)
			assert.Equal(t, int64(1_000_000), row.PrincipalPaid)
		}
	})
}

func TestRunSchedule_CustomPlanFallbackTier(t *testing.T) {
	plan := model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 36, Rule: model.FixedRateRule{Rate: 5}},
		{StartMonth: 37, EndMonth: 200, Rule: model.FloatingRateRule{Rate: 9}},
	}}
	schedule := model.RunSchedule(mustRequest(t, 500_000_000, 240, plan))

	require.Len(t, schedule, 240)
	for _, row := range schedule[200:] {
		assert.Equal(t, 9.0, row.Rate, "month %d should use the last tier", row.Month)
	}
	assert.Equal(t, int64(0), schedule[239].EndingBalance)
}

func TestRunSchedule_CustomPlanLooseTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []model.Tier
	}{
		{
			name: "tier from month zero",
			tiers: []model.Tier{
				{StartMonth: 0, EndMonth: 36, Rule: model.FixedRateRule{Rate: 5}},
				{StartMonth: 37, EndMonth: 240, Rule: model.FloatingRateRule{Rate: 10}},
			},
		},
		{
			name: "inverted tier falls back to last",
			tiers: []model.Tier{
				{StartMonth: 1, EndMonth: 36, Rule: model.FixedRateRule{Rate: 5}},
				{StartMonth: 240, EndMonth: 37, Rule: model.FloatingRateRule{Rate: 10}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := model.RunSchedule(mustRequest(t, 800_000_000, 240, model.CustomPlan{Tiers: tt.tiers}))

			require.Len(t, schedule, 240)
			assert.Equal(t, 5.0, schedule[0].Rate)
			assert.Equal(t, 5.0, schedule[35].Rate)
			assert.Equal(t, 10.0, schedule[36].Rate)
			assert.Equal(t, 10.0, schedule[239].Rate)
			assert.Equal(t, int64(0), schedule[239].EndingBalance)
		})
	}
}

func TestRunSchedule_ZeroAmountPaymentIsAnnuity(t *testing.T) {
	payment := model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 12, Rule: model.FixedPaymentRule{Rate: 6}},
		{StartMonth: 13, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 9}},
	}}
	annuity := model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 12, Rule: model.FixedRateRule{Rate: 6}},
		{StartMonth: 13, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 9}},
	}}

	got := model.RunSchedule(mustRequest(t, 500_000_000, 120, payment))
	want := model.RunSchedule(mustRequest(t, 500_000_000, 120, annuity))

	require.Len(t, got, 120)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(0), got[119].EndingBalance)
}

func TestRunSchedule_CustomPlanSortsTiers(t *testing.T) {
	tiers := []model.Tier{
		{StartMonth: 13, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 8}},
		{StartMonth: 1, EndMonth: 12, Rule: model.FixedRateRule{Rate: 4}},
	}
	schedule := model.RunSchedule(mustRequest(t, 300_000_000, 120, model.CustomPlan{Tiers: tiers}))

	assert.Equal(t, 4.0, schedule[0].Rate)
	assert.Equal(t, 8.0, schedule[12].Rate)
	assert.Equal(t, 13, tiers[0].StartMonth, "input must not be reordered")
}

func TestRunSchedule_CustomPlanFixedPayment(t *testing.T) {
	t.Run("pays exact amount", func(t *testing.T) {
		plan := model.CustomPlan{Tiers: []model.Tier{
			{StartMonth: 1, EndMonth: 12, Rule: model.FixedPaymentRule{Rate: 6, Amount: 5_000_000}},
			{StartMonth: 13, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 8}},
		}}
		schedule := model.RunSchedule(mustRequest(t, 500_000_000, 120, plan))

		require.Len(t, schedule, 120)
		for _, row := range schedule[:12] {
			assert.Equal(t, int64(5_000_000), row.Payment, "month %d", row.Month)
			assert.Equal(t, 6.0, row.Rate)
		}
		assert.Equal(t, int64(2_500_000), schedule[0].Interest)
		assert.Equal(t, int64(0), schedule[119].EndingBalance)
	})

	t.Run("negative amortization is kept", func(t *testing.T) {
		plan := model.CustomPlan{Tiers: []model.Tier{
			{StartMonth: 1, EndMonth: 12, Rule: model.FixedPaymentRule{Rate: 12, Amount: 4_000_000}},
			{StartMonth: 13, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 8}},
		}}
		schedule := model.RunSchedule(mustRequest(t, 500_000_000, 120, plan))

		first := schedule[0]
		assert.Equal(t, int64(4_000_000), first.Payment)
		assert.Equal(t, int64(5_000_000), first.Interest)
		assert.Equal(t, int64(-1_000_000), first.PrincipalPaid)
		assert.Equal(t, int64(501_000_000), first.EndingBalance)
		assert.Greater(t, schedule[11].EndingBalance, schedule[0].EndingBalance)
		assert.Equal(t, int64(0), schedule[119].EndingBalance)
	})
}

func TestRunSchedule_CustomPlanEarlyPayoff(t *testing.T) {
	// A fixed payment large enough to clear the loan in month 2.
	plan := model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 60, Rule: model.FixedPaymentRule{Rate: 0, Amount: 50_000_000}},
	}}
	schedule := model.RunSchedule(mustRequest(t, 100_000_000, 60, plan))

	require.Len(t, schedule, 2)
	assert.Equal(t, int64(0), schedule[1].EndingBalance)
}

func TestRunSchedule_FinalMonthClearsBalance(t *testing.T) {
	plan := model.CustomPlan{Tiers: []model.Tier{
		{StartMonth: 1, EndMonth: 24, Rule: model.FixedPaymentRule{Rate: 7, Amount: 3_000_000}},
	}}
	schedule := model.RunSchedule(mustRequest(t, 100_000_000, 24, plan))

	require.Len(t, schedule, 24)
	last := schedule[23]
	assert.Equal(t, int64(0), last.EndingBalance)
	assert.Greater(t, last.Payment, int64(3_000_000), "last month absorbs the residual balance")
	assert.InDelta(t, last.Interest+last.PrincipalPaid, last.Payment, 1)
}

func TestRunSchedule_FullPayoff(t *testing.T) {
	plans := map[string]model.RatePlan{
		"bank":        model.BankPlan{FixedRate: 3.88, FixedPeriodMonths: 36, FloatingRate: floatingRate},
		"bank fixed":  model.BankPlan{FixedRate: 5, FixedPeriodMonths: 120, FloatingRate: floatingRate},
		"custom":      model.CustomPlan{Tiers: []model.Tier{{StartMonth: 1, EndMonth: 36, Rule: model.FixedRateRule{Rate: 4.5}}, {StartMonth: 37, EndMonth: 120, Rule: model.FloatingRateRule{Rate: 11}}}},
		"custom gaps": model.CustomPlan{Tiers: []model.Tier{{StartMonth: 1, EndMonth: 10, Rule: model.FixedRateRule{Rate: 4}}, {StartMonth: 50, EndMonth: 60, Rule: model.FloatingRateRule{Rate: 10}}}},
	}

	for name, plan := range plans {
		t.Run(name, func(t *testing.T) {
			schedule := model.RunSchedule(mustRequest(t, 750_000_000, 120, plan))
			require.NotEmpty(t, schedule)
			assert.Equal(t, int64(0), schedule[len(schedule)-1].EndingBalance)
		})
	}
}

func TestRunSchedule_Deterministic(t *testing.T) {
	plan := model.BankPlan{FixedRate: 4.25, FixedPeriodMonths: 60, FloatingRate: floatingRate}
	req := mustRequest(t, 900_000_000, 300, plan)

	assert.Equal(t, model.RunSchedule(req), model.RunSchedule(req))
}
