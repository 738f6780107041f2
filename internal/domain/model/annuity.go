package model

import "math"

// MonthlyAnnuityPayment returns the level monthly payment that amortizes
// principal over termMonths at annualRatePercent.
//
//	r       = annualRatePercent / 100 / 12
//	payment = P * r / (1 - (1+r)^-n)
//
// A zero rate degrades to a straight-line split of the principal.
func MonthlyAnnuityPayment(principal, annualRatePercent float64, termMonths int) float64 {
	n := float64(termMonths)
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / n
	}
	return principal * r / (1 - math.Pow(1+r, -n))
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}
