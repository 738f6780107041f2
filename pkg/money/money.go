package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IDR is the Indonesian rupiah. It has no minor unit in practice.
var IDR = MustCurrency("IDR")

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// Money represents an immutable monetary amount with currency.
// Fields are unexported to enforce immutability.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Rupiah creates an IDR amount rounded to whole rupiah.
func Rupiah(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount).Round(0), currency: IDR}
}

// RupiahInt creates an IDR amount from whole rupiah.
func RupiahInt(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount), currency: IDR}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns the sum of m and other. Returns an error if the currencies do not match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats IDR amounts the Indonesian way ("Rp 2.500.000.000") and
// anything else as "<amount> <currency>".
func (m Money) String() string {
	if m.currency != IDR {
		return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency.Code())
	}
	return FormatIDR(m.amount)
}

// FormatIDR renders an amount as whole rupiah with dot thousands separators.
func FormatIDR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "Rp " + groupThousands(rounded.String())
}

// AbbreviateIDR shortens large amounts for cards and chart labels:
// "Rp 2,5 M" for billions (miliar) and "Rp 500 Jt" for millions (juta).
// Smaller amounts fall back to FormatIDR.
func AbbreviateIDR(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(billion):
		v := amount.Div(billion).Round(1).String()
		intPart, frac, _ := strings.Cut(v, ".")
		out := "Rp " + groupThousands(intPart)
		if frac != "" {
			out += "," + frac
		}
		return out + " M"
	case amount.GreaterThanOrEqual(million):
		return "Rp " + groupThousands(amount.Div(million).Round(0).String()) + " Jt"
	default:
		return FormatIDR(amount)
	}
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
