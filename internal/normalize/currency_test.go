package normalize

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		filename string
		expected string
	}{
		{"$10.50", "", "USD"},
		{"10.50", "", "USD"},
		{"", "statement.pdf", "USD"},
		{"€25.00", "", "EUR"},
		{"£25.00", "", "GBP"},
		{"₹1,500.00", "", "INR"},
		{"INR 1,500.00", "", "INR"},
		// Shared ¥ disambiguates via filename hints, defaulting to JPY.
		{"¥1000", "citic_statement.pdf", "CNY"},
		{"¥1000", "mufg_statement_2024.pdf", "JPY"},
		{"¥1000", "", "JPY"},
		{"CNY 1000", "", "CNY"},
		{"1000 YEN", "", "JPY"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount, tt.filename); got != tt.expected {
			t.Errorf("Currency(%q, %q): got %s, want %s", tt.amount, tt.filename, got, tt.expected)
		}
	}
}
