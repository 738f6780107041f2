package model

// DefaultGroupingTolerance is the payment drift, in whole currency units,
// tolerated inside one payment period.
const DefaultGroupingTolerance int64 = 100

// PaymentPeriodSummary collapses a contiguous run of schedule rows that share
// a rate and a roughly constant payment.
type PaymentPeriodSummary struct {
	MonthStart     int
	MonthEnd       int
	Rate           float64
	MonthlyPayment int64
	TotalPayment   int64
	TotalInterest  int64
}

// Months returns the number of months the period spans.
func (s PaymentPeriodSummary) Months() int {
	return s.MonthEnd - s.MonthStart + 1
}

// SummarizePaymentPeriods groups a schedule using DefaultGroupingTolerance.
func SummarizePaymentPeriods(rows []ScheduleRow) []PaymentPeriodSummary {
	return SummarizePaymentPeriodsWithTolerance(rows, DefaultGroupingTolerance)
}

// SummarizePaymentPeriodsWithTolerance groups a schedule into payment
// periods. A new period opens when the rate changes or when a row's payment
// differs from the period's first payment by more than tolerance.
func SummarizePaymentPeriodsWithTolerance(rows []ScheduleRow, tolerance int64) []PaymentPeriodSummary {
	if len(rows) == 0 {
		return nil
	}

	var summaries []PaymentPeriodSummary
	current := openPeriod(rows[0])

	for i, row := range rows {
		rateChanged := row.Rate != current.Rate
		paymentChanged := abs64(row.Payment-current.MonthlyPayment) > tolerance

		if i > 0 && (rateChanged || paymentChanged) {
			summaries = append(summaries, current)
			current = openPeriod(row)
		}

		current.TotalInterest += row.Interest
		current.TotalPayment += row.Payment
		current.MonthEnd = row.Month
	}

	return append(summaries, current)
}

func openPeriod(row ScheduleRow) PaymentPeriodSummary {
	return PaymentPeriodSummary{
		MonthStart:     row.Month,
		MonthEnd:       row.Month,
		Rate:           row.Rate,
		MonthlyPayment: row.Payment,
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
