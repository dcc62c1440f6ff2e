package normalize

import (
	"errors"
	"testing"
	"time"
)

var dateNow = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

func TestDateExplicitYear(t *testing.T) {
	tests := []struct {
		input      string
		monthFirst bool
		expected   string
	}{
		{"2024-01-17", true, "2024-01-17"},
		{"2024-01-17", false, "2024-01-17"},
		{"01/15/2024", true, "2024-01-15"},
		{"15/01/2024", false, "2024-01-15"},
		{"1/5/24", true, "2024-01-05"},
		{"Jan 15, 2024", true, "2024-01-15"},
		{"15 Jan 2024", false, "2024-01-15"},
		// YY-MM-DD left by an upstream truncation of a 4-digit ISO year
		{"24-01-17", true, "2024-01-17"},
		{"24-01-17", false, "2024-01-17"},
	}

	for _, tt := range tests {
		got, err := Date(tt.input, tt.monthFirst, 0, dateNow)
		if err != nil {
			t.Errorf("Date(%q, monthFirst=%v): unexpected error: %v", tt.input, tt.monthFirst, err)
			continue
		}
		if got.Format("2006-01-02") != tt.expected {
			t.Errorf("Date(%q, monthFirst=%v): got %s, want %s", tt.input, tt.monthFirst, got.Format("2006-01-02"), tt.expected)
		}
	}
}

func TestDateMissingYear(t *testing.T) {
	// Inferred year wins when plausible.
	got, err := Date("10/12", true, 2024, dateNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format("2006-01-02") != "2024-10-12" {
		t.Errorf("got %s, want 2024-10-12", got.Format("2006-01-02"))
	}

	// Without an inferred year, a month far past now steps back a year:
	// a December transaction seen in March belongs to last December.
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got, err = Date("12/20", true, 0, march)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2023 {
		t.Errorf("got year %d, want 2023", got.Year())
	}

	// One month ahead is still the current year.
	got, err = Date("5/10", true, 0, march)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2024 {
		t.Errorf("got year %d, want 2024", got.Year())
	}
}

func TestDateImplausibleYearFallsBack(t *testing.T) {
	got, err := Date("01/15/1999", true, 2024, dateNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("got %s, want 2024-01-15", got.Format("2006-01-02"))
	}
}

func TestDateErrors(t *testing.T) {
	for _, input := range []string{"", "13/13", "02/30/2024", "not a date", "99/99/99"} {
		if _, err := Date(input, true, 2024, dateNow); !errors.Is(err, ErrUnparsable) {
			t.Errorf("Date(%q): expected ErrUnparsable, got %v", input, err)
		}
	}
}
