package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "$0.00"},
		{"small", decimal.NewFromInt(42), "$42.00"},
		{"thousands", decimal.NewFromInt(25000), "$25,000.00"},
		{"millions", decimal.NewFromFloat(1234567.89), "$1,234,567.89"},
		{"negative", decimal.NewFromInt(-37500), "-$37,500.00"},
		{"cents only", decimal.NewFromFloat(0.5), "$0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.amount); got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatKm(t *testing.T) {
	tests := []struct {
		name string
		km   float64
		want string
	}{
		{"short hop", 480, "480 km"},
		{"long haul", 6823.4, "6,823 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatKm(tt.km); got != tt.want {
				t.Errorf("FormatKm(%v) = %q, want %q", tt.km, got, tt.want)
			}
		})
	}
}
