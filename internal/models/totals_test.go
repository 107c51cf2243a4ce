package models

import (
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		label   string
		want    float64
		wantErr bool
	}{
		{name: "subtotal", text: "Item total: $29.99", label: SubtotalLabel, want: 29.99},
		{name: "tax", text: "Tax: $2.40", label: TaxLabel, want: 2.40},
		{name: "total with surrounding space", text: "  Total: $32.39 \n", label: TotalLabel, want: 32.39},
		{name: "thousands separator", text: "Total: $1,032.39", label: TotalLabel, want: 1032.39},
		{name: "wrong label", text: "Tax: $2.40", label: TotalLabel, wantErr: true},
		{name: "missing currency symbol", text: "Tax: 2.40", label: TaxLabel, wantErr: true},
		{name: "not a number", text: "Tax: $abc", label: TaxLabel, wantErr: true},
		{name: "empty", text: "", label: TaxLabel, wantErr: true},
		{name: "NaN", text: "Tax: $NaN", label: TaxLabel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.text, tt.label)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnexpectedFormat) {
					t.Errorf("Expected ErrUnexpectedFormat, got %v", err)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseCheckoutTotals(t *testing.T) {
	totals, err := ParseCheckoutTotals("Item total: $29.97", "Tax: $2.40", "Total: $32.37")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if totals.Subtotal != 29.97 || totals.Tax != 2.40 || totals.Total != 32.37 {
		t.Errorf("Unexpected totals: %+v", totals)
	}

	if _, err := ParseCheckoutTotals("Item total: $29.97", "Tax 2.40", "Total: $32.37"); !errors.Is(err, ErrUnexpectedFormat) {
		t.Errorf("Expected ErrUnexpectedFormat, got %v", err)
	}
}

func TestExpectedAmounts(t *testing.T) {
	if got := ExpectedTax(29.97); math.Abs(got-2.3976) > 1e-9 {
		t.Errorf("Expected tax 2.3976, got %v", got)
	}
	if got := ExpectedTotal(29.97); math.Abs(got-32.3676) > 1e-9 {
		t.Errorf("Expected total 32.3676, got %v", got)
	}
}

func TestCheckoutTotals_Consistent(t *testing.T) {
	tests := []struct {
		name   string
		totals CheckoutTotals
		want   bool
	}{
		{name: "displayed amounts rounded to cents", totals: CheckoutTotals{Subtotal: 29.97, Tax: 2.40, Total: 32.37}, want: true},
		{name: "tax off by ten cents", totals: CheckoutTotals{Subtotal: 29.97, Tax: 2.50, Total: 32.37}, want: false},
		{name: "total off by ten cents", totals: CheckoutTotals{Subtotal: 29.97, Tax: 2.40, Total: 32.47}, want: false},
		{name: "deviation just inside tolerance", totals: CheckoutTotals{Subtotal: 10, Tax: 0.809, Total: 10.809}, want: true},
		{name: "deviation just outside tolerance", totals: CheckoutTotals{Subtotal: 10, Tax: 0.811, Total: 10.8}, want: false},
		{name: "empty cart", totals: CheckoutTotals{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.totals.Consistent(); got != tt.want {
				t.Errorf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(2.3976); got != "$2.40" {
		t.Errorf("Expected $2.40, got %s", got)
	}
}
