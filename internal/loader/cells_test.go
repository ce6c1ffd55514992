package loader

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"1234.5", 1234.5, true},
		{"-200000", -200000, true},
		{"1.5E3", 1500, true},
		{"1.234.567,89", 1234567.89, true},
		{"1,234,567.89", 1234567.89, true},
		{"1234,5", 1234.5, true},
		{"(2.500)", -2500, true},
		{"-15.000 €", -15000, true},
		{"15.000 EUR", 15000, true},
		{"1.000-", -1000, true},
		{"+42", 42, true},
		{"1 234,00", 1234, true},
		{"", 0, false},
		{"-", 0, false},
		{"Importe neto", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseAmount(tt.input, RawNumbers)
			if ok != tt.wantOK {
				t.Fatalf("parseAmount(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_LocaleNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"-200.000", -200000},
		{"200.000", 200000},
		{"1.234", 1234},
		{"1.234.567", 1234567},
		{"1.234,5", 1234.5},
		{"1234.5", 1234.5},
		{"-200000", -200000},
		{"(2.500)", -2500},
		{"15.000 €", 15000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseAmount(tt.input, LocaleNumbers)
			if !ok {
				t.Fatalf("parseAmount(%q) not parsed", tt.input)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_RawNumbersKeepFractions(t *testing.T) {
	// Raw workbook values carry a dot only as the decimal point.
	if got, _ := parseAmount("1.234", RawNumbers); got != 1.234 {
		t.Errorf("parseAmount(\"1.234\") = %v, want 1.234", got)
	}
}

func TestIsLabelText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1. Importe neto de la cifra de negocios", true},
		{"Ventas", true},
		{"Total", false},
		{"12345678", false},
		{"1.234,56", false},
		{"Año fiscal", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isLabelText(tt.input); got != tt.want {
				t.Errorf("isLabelText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
