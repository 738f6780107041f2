package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Shared shapes
// ---------------------------------------------------------------------------

// DownPaymentInput is a down payment given as a percent of the house value or
// as an amount. Mode is "percent" (default) or "amount".
type DownPaymentInput struct {
	Mode  string          `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

// TierDTO is one custom tier on the wire. Kind is "Fixed" or "Floating";
// PaymentMode is "Rate" (default) or "Payment".
type TierDTO struct {
	StartMonth   int             `json:"start_month"`
	EndMonth     int             `json:"end_month"`
	Kind         string          `json:"kind"`
	PaymentMode  string          `json:"payment_mode,omitempty"`
	Rate         float64         `json:"rate"`
	FixedPayment decimal.Decimal `json:"fixed_payment"`
}

// CustomPlanDTO is a named list of tiers.
type CustomPlanDTO struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Tiers []TierDTO `json:"tiers"`
}

// ProductDTO is a bank product.
type ProductDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	FixedYears int     `json:"fixed_years"`
}

// ScheduleRowDTO is one month of a schedule.
type ScheduleRowDTO struct {
	Month         int             `json:"month"`
	Interest      decimal.Decimal `json:"interest"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
	Payment       decimal.Decimal `json:"payment"`
	Rate          float64         `json:"rate"`
}

// PaymentPeriodDTO is one summarized payment period.
type PaymentPeriodDTO struct {
	MonthStart     int             `json:"month_start"`
	MonthEnd       int             `json:"month_end"`
	Months         int             `json:"months"`
	Rate           float64         `json:"rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Display        string          `json:"display"`
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SimulateRequest asks for a full schedule. Mode "bank" uses BankID and
// ProductID; mode "custom" uses CustomPlan.
type SimulateRequest struct {
	Mode        string            `json:"mode"`
	HouseValue  decimal.Decimal   `json:"house_value"`
	DownPayment *DownPaymentInput `json:"down_payment,omitempty"`
	TenureYears int               `json:"tenure_years"`
	BankID      string            `json:"bank_id,omitempty"`
	ProductID   string            `json:"product_id,omitempty"`
	CustomPlan  *CustomPlanDTO    `json:"custom_plan,omitempty"`
}

// SummarizeRequest groups caller-supplied schedule rows. Tolerance overrides
// the configured grouping tolerance when set.
type SummarizeRequest struct {
	Rows      []ScheduleRowDTO `json:"rows"`
	Tolerance *int64           `json:"tolerance,omitempty"`
}

// CompareRequest ranks bank products or custom plans for one loan.
type CompareRequest struct {
	Mode        string            `json:"mode"`
	HouseValue  decimal.Decimal   `json:"house_value"`
	DownPayment *DownPaymentInput `json:"down_payment,omitempty"`
	TenureYears int               `json:"tenure_years"`
	SortKey     string            `json:"sort_key,omitempty"`
	Filter      string            `json:"filter,omitempty"`
	CustomPlans []CustomPlanDTO   `json:"custom_plans,omitempty"`
}

// EditCustomPlanRequest applies one editing action to a custom plan.
// Action is one of "new", "append_tier", "remove_tier" or "rename".
type EditCustomPlanRequest struct {
	Action      string         `json:"action"`
	TenureYears int            `json:"tenure_years"`
	Plan        *CustomPlanDTO `json:"plan,omitempty"`
	TierIndex   int            `json:"tier_index,omitempty"`
	Name        string         `json:"name,omitempty"`
}

// UpsertBankRequest replaces a catalog entry.
type UpsertBankRequest struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	LogoURL      string       `json:"logo_url"`
	Requirements []string     `json:"requirements,omitempty"`
	Products     []ProductDTO `json:"products"`
	// UpdatedBy is filled from the caller's token, never from the body.
	UpdatedBy string `json:"-"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// TotalsDTO carries the headline figures with their display strings.
type TotalsDTO struct {
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	DownPaymentAmount  decimal.Decimal `json:"down_payment_amount"`
	DownPaymentPercent decimal.Decimal `json:"down_payment_percent"`
	InitialPayment     decimal.Decimal `json:"initial_payment"`
	InitialRate        float64         `json:"initial_rate"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalPayment       decimal.Decimal `json:"total_payment"`

	LoanAmountDisplay     string `json:"loan_amount_display"`
	LoanAmountShort       string `json:"loan_amount_short"`
	InitialPaymentDisplay string `json:"initial_payment_display"`
	TotalInterestDisplay  string `json:"total_interest_display"`
	TotalPaymentDisplay   string `json:"total_payment_display"`
}

// SimulationResponse is a complete simulation.
type SimulationResponse struct {
	ID           string             `json:"id"`
	Mode         string             `json:"mode"`
	BankID       string             `json:"bank_id,omitempty"`
	ProductID    string             `json:"product_id,omitempty"`
	PlanName     string             `json:"plan_name"`
	TenureMonths int                `json:"tenure_months"`
	Totals       TotalsDTO          `json:"totals"`
	Summary      []PaymentPeriodDTO `json:"summary"`
	Schedule     []ScheduleRowDTO   `json:"schedule"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SummaryResponse lists payment periods.
type SummaryResponse struct {
	Periods []PaymentPeriodDTO `json:"periods"`
}

// ComparisonEntryDTO is one ranked candidate.
type ComparisonEntryDTO struct {
	ID                       string          `json:"id"`
	Tag                      string          `json:"tag"`
	Name                     string          `json:"name"`
	Label                    string          `json:"label"`
	NominalRate              float64         `json:"nominal_rate"`
	FirstMonthPayment        decimal.Decimal `json:"first_month_payment"`
	FirstMonthPaymentDisplay string          `json:"first_month_payment_display"`
}

// ComparisonResponse lists ranked candidates for one loan.
type ComparisonResponse struct {
	Mode         string               `json:"mode"`
	SortKey      string               `json:"sort_key"`
	Filter       string               `json:"filter"`
	LoanAmount   decimal.Decimal      `json:"loan_amount"`
	TenureMonths int                  `json:"tenure_months"`
	Entries      []ComparisonEntryDTO `json:"entries"`
}

// BankResponse is the external representation of a catalog bank.
type BankResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	LogoURL      string       `json:"logo_url"`
	Requirements []string     `json:"requirements"`
	Products     []ProductDTO `json:"products"`
}

// BankListResponse wraps the catalog.
type BankListResponse struct {
	Banks []BankResponse `json:"banks"`
}
