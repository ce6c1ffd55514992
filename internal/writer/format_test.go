package writer

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"millions", 1234567, 0, "1.234.567 EUR"},
		{"thousands with decimals", 1234.567, 2, "1.234,57 EUR"},
		{"exact thousand", 1000, 0, "1.000 EUR"},
		{"below thousand", 999, 0, "999 EUR"},
		{"negative", -1234567, 0, "-1.234.567 EUR"},
		{"rounded", 2500000.4, 0, "2.500.000 EUR"},
		{"zero", 0, 0, "0 EUR"},
		{"NaN", math.NaN(), 0, "0 EUR"},
		{"infinity", math.Inf(1), 0, "0 EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("FormatCurrency(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{15.5, "15,5%"},
		{10, "10,0%"},
		{-2.26, "-2,3%"},
		{1234.5, "1234,5%"},
		{math.NaN(), "0%"},
	}

	for _, tt := range tests {
		got := FormatPercentage(tt.value, 1)
		if got != tt.want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatVariation(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{3.2, "+3,2%"},
		{0, "+0,0%"},
		{-1, "-1,0%"},
		{-12.34, "-12,3%"},
		{math.Inf(-1), "0%"},
	}

	for _, tt := range tests {
		got := FormatVariation(tt.value, 1)
		if got != tt.want {
			t.Errorf("FormatVariation(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.8512); got != "1,85" {
		t.Errorf("FormatRatio(1.8512) = %q, want %q", got, "1,85")
	}
	if got := FormatRatio(math.NaN()); got != "0,00" {
		t.Errorf("FormatRatio(NaN) = %q, want %q", got, "0,00")
	}
}
