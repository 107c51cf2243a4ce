package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TaxRate is the storefront's fixed sales tax rate
const TaxRate = 0.08

// Tolerance is the largest absolute deviation accepted between a displayed
// and a computed amount
const Tolerance = 0.01

// Labels printed in front of the checkout overview amounts
const (
	SubtotalLabel = "Item total:"
	TaxLabel      = "Tax:"
	TotalLabel    = "Total:"
)

// ErrUnexpectedFormat is returned when displayed text is not a labeled currency amount
var ErrUnexpectedFormat = errors.New("unexpected amount format")

// CheckoutTotals holds the amounts shown on the checkout overview
type CheckoutTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ParseAmount strips the label and currency symbol from displayed text such
// as "Item total: $29.99" and returns the amount
func ParseAmount(text, label string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(trimmed, label)
	if !ok {
		return 0, fmt.Errorf("%w: %q does not start with %q", ErrUnexpectedFormat, text, label)
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "$")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no currency symbol", ErrUnexpectedFormat, text)
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(rest, ",", ""), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUnexpectedFormat, text)
	}
	return amount, nil
}

// ParseCheckoutTotals parses the three displayed overview amounts
func ParseCheckoutTotals(subtotalText, taxText, totalText string) (CheckoutTotals, error) {
	var totals CheckoutTotals
	var err error
	if totals.Subtotal, err = ParseAmount(subtotalText, SubtotalLabel); err != nil {
		return totals, err
	}
	if totals.Tax, err = ParseAmount(taxText, TaxLabel); err != nil {
		return totals, err
	}
	if totals.Total, err = ParseAmount(totalText, TotalLabel); err != nil {
		return totals, err
	}
	return totals, nil
}

// ExpectedTax returns the tax owed on a subtotal
func ExpectedTax(subtotal float64) float64 {
	return subtotal * TaxRate
}

// ExpectedTotal returns the subtotal plus tax
func ExpectedTotal(subtotal float64) float64 {
	return subtotal + ExpectedTax(subtotal)
}

// WithinTolerance reports whether actual is strictly closer than Tolerance to expected
func WithinTolerance(actual, expected float64) bool {
	return math.Abs(actual-expected) < Tolerance
}

// Consistent returns true if the displayed tax and total match the subtotal
func (t CheckoutTotals) Consistent() bool {
	return WithinTolerance(t.Tax, ExpectedTax(t.Subtotal)) &&
		WithinTolerance(t.Total, ExpectedTotal(t.Subtotal))
}

// FormatAmount formats an amount as dollars with two decimals
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
