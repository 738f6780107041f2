package model

import "math"

// payoffTolerance is the remaining balance below which a custom plan counts
// as repaid.
const payoffTolerance = 0.01

// ScheduleRow is an immutable value object representing one simulated month.
// Monetary fields are rounded to whole currency units.
type ScheduleRow struct {
	Month         int
	Interest      int64
	PrincipalPaid int64
	EndingBalance int64
	Payment       int64
	Rate          float64
}

// RunSchedule walks a loan month by month and returns its amortization
// schedule.
//
// The running balance is carried unrounded between months; only the
// emitted rows are rounded. The schedule may be shorter than the tenure when
// the balance is cleared early.
func RunSchedule(req LoanRequest) []ScheduleRow {
	switch plan := req.plan.(type) {
	case BankPlan:
		return runBankSchedule(req.principal, req.tenureMonths, plan)
	case CustomPlan:
		return runCustomSchedule(req.principal, req.tenureMonths, plan)
	default:
		return nil
	}
}

// runBankSchedule computes the annuity once over the whole tenure at the
// fixed rate and recomputes it exactly once, on the first floating month,
// from the balance left and the months left.
func runBankSchedule(principal float64, tenureMonths int, plan BankPlan) []ScheduleRow {
	schedule := make([]ScheduleRow, 0, tenureMonths)
	balance := principal
	rate := plan.FixedRate
	payment := MonthlyAnnuityPayment(principal, rate, tenureMonths)

	for month := 1; month <= tenureMonths; month++ {
		if month == plan.FixedPeriodMonths+1 {
			rate = plan.FloatingRate
			payment = MonthlyAnnuityPayment(balance, rate, tenureMonths-month+1)
		}

		interest := balance * monthlyRate(rate)
		principalPart := payment - interest
		balance -= principalPart

		schedule = append(schedule, newScheduleRow(month, interest, principalPart, balance, payment, rate))

		if balance <= 0 {
			break
		}
	}

	return schedule
}

// runCustomSchedule re-derives the payment every month from the balance and
// the months left, so the loan clears at the end of the tenure wherever the
// tier boundaries fall. Fixed-payment tiers pay their amount verbatim, even
// when it does not cover the interest.
func runCustomSchedule(principal float64, tenureMonths int, plan CustomPlan) []ScheduleRow {
	if len(plan.Tiers) == 0 {
		return nil
	}

	sorted := plan.Sorted()
	schedule := make([]ScheduleRow, 0, tenureMonths)
	balance := principal

	for month := 1; month <= tenureMonths; month++ {
		tier := sorted.ActiveTier(month)
		rate := tier.Rule.AnnualRate()

		var payment float64
		if rule, ok := tier.Rule.(FixedPaymentRule); ok && rule.Amount > 0 {
			payment = rule.Amount
		} else {
			payment = MonthlyAnnuityPayment(balance, rate, tenureMonths-month+1)
		}

		interest := balance * monthlyRate(rate)
		principalPart := payment - interest

		// Last month clears whatever is left.
		if month == tenureMonths {
			principalPart = balance
			payment = principalPart + interest
		}

		balance -= principalPart

		schedule = append(schedule, newScheduleRow(month, interest, principalPart, balance, payment, rate))

		if balance <= payoffTolerance {
			balance = 0
			if month < tenureMonths {
				break
			}
		}
	}

	return schedule
}

func newScheduleRow(month int, interest, principalPart, balance, payment, rate float64) ScheduleRow {
	return ScheduleRow{
		Month:         month,
		Interest:      roundUnits(interest),
		PrincipalPaid: roundUnits(principalPart),
		EndingBalance: roundUnits(math.Max(0, balance)),
		Payment:       roundUnits(payment),
		Rate:          rate,
	}
}

func roundUnits(v float64) int64 {
	return int64(math.Round(v))
}
