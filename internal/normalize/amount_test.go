package normalize

import (
	"errors"
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10.50", "10.5"},
		{"$1,234.56", "1234.56"},
		{"-$458.40", "-458.4"},
		{"+25.00", "25"},
		{"(45.00)", "-45"},
		{"123.45CR", "123.45"},
		{"123.45 CR", "123.45"},
		{"123.45 DR", "-123.45"},
		{"123.45 DEBIT", "-123.45"},
		{"500.00 BF", "500"},
		{"-500.00 BF", "-500"},
		// European and Indian grouping
		{"1.234,56", "1234.56"},
		{"€1.234,56", "1234.56"},
		{"₹12,34,567.89", "1234567.89"},
		{"1 234,56", "1234.56"},
		{"1234,56", "1234.56"},
		// CR overrides an explicit leading sign
		{"-100.00 CR", "100"},
	}

	for _, tt := range tests {
		got, err := Amount(tt.input)
		if err != nil {
			t.Errorf("Amount(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.expected {
			t.Errorf("Amount(%q): got %s, want %s", tt.input, got, tt.expected)
		}
	}
}

// Parsing is idempotent through rendering: re-parsing a parsed amount's
// canonical form yields the same value.
func TestAmountRoundTrip(t *testing.T) {
	inputs := []string{
		"10.50", "$1,234.56", "-$458.40", "+25.00", "(45.00)",
		"123.45CR", "123.45 DR", "500.00 BF", "-500.00 BF",
		"1.234,56", "€1.234,56", "₹12,34,567.89", "1 234,56",
		"-100.00 CR", "(100.00 DR)",
	}
	for _, input := range inputs {
		first, err := Amount(input)
		if err != nil {
			t.Errorf("Amount(%q): unexpected error: %v", input, err)
			continue
		}
		again, err := Amount(first.StringFixed(2))
		if err != nil {
			t.Errorf("Amount(%q) re-parse: unexpected error: %v", first.StringFixed(2), err)
			continue
		}
		if !again.Equal(first) {
			t.Errorf("Amount(%q): %s re-parsed to %s", input, first, again)
		}
	}
}

// Sign conventions compete on real statements. DR must beat parentheses,
// parentheses must beat CR, and CR must beat a bare leading sign.
func TestAmountSignPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(100.00 DR)", "-100"},
		{"($100.00 CR)", "-100"},
		{"(100.00) CR", "-100"},
		{"-100.00 CR", "100"},
		{"100.00 DR", "-100"},
	}

	for _, tt := range tests {
		got, err := Amount(tt.input)
		if err != nil {
			t.Errorf("Amount(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.expected {
			t.Errorf("Amount(%q): got %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestAmountDetail(t *testing.T) {
	_, det, err := AmountWithDetail("(123.45) CR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !det.HasParentheses || !det.HasCredit {
		t.Errorf("expected parentheses and credit flags, got %+v", det)
	}

	_, det, err = AmountWithDetail("-42.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !det.HasExplicitSign || det.HasCredit || det.HasDebit {
		t.Errorf("expected only explicit sign flag, got %+v", det)
	}
}

func TestAmountErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "CR", "9999999999999.00"} {
		if _, err := Amount(input); !errors.Is(err, ErrUnparsable) {
			t.Errorf("Amount(%q): expected ErrUnparsable, got %v", input, err)
		}
	}
}

func TestNumberSeparators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"12,34,567.89", "1234567.89"},
		{"1,234", "1234"},
		{"1.234", "1234"},
		{"10.5", "10.5"},
		{"0.01", "0.01"},
	}

	for _, tt := range tests {
		got, err := Number(tt.input)
		if err != nil {
			t.Errorf("Number(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.expected {
			t.Errorf("Number(%q): got %s, want %s", tt.input, got, tt.expected)
		}
	}
}
