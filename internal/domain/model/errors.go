package model

import "errors"

var (
	// ErrInvalidLoanRequest is returned when a simulation precondition is violated.
	ErrInvalidLoanRequest = errors.New("invalid loan request")

	// ErrInvalidRatePlan is returned when a rate plan or tier is malformed.
	ErrInvalidRatePlan = errors.New("invalid rate plan")

	// ErrInvalidBank is returned when a catalog entry fails validation.
	ErrInvalidBank = errors.New("invalid bank")

	// ErrBankNotFound is returned when a bank id is not in the catalog.
	ErrBankNotFound = errors.New("bank not found")

	// ErrProductNotFound is returned when a product id is not offered by a bank.
	ErrProductNotFound = errors.New("product not found")
)
