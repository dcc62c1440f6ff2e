package pattern

import (
	"testing"
	"time"
)

func testCtx() *Context {
	return &Context{
		MonthFirst:   true,
		InferredYear: 2024,
		Now:          time.Date(2024, 10, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestDateDescAmountLine(t *testing.T) {
	lines := []string{"10/12     85C BAKERY CAFE USA BELLEVUE WA 10.50"}

	m, consumed := TryAll(lines, 0, testCtx())
	if !m.Matched {
		t.Fatal("expected a match")
	}
	if m.Recognizer != "date_desc_amount" {
		t.Errorf("recognizer: got %s, want date_desc_amount", m.Recognizer)
	}
	if consumed != 1 {
		t.Errorf("consumed: got %d, want 1", consumed)
	}
	if m.Fields["date"] != "10/12" {
		t.Errorf("date: got %q", m.Fields["date"])
	}
	if m.Fields["description"] != "85C BAKERY CAFE USA BELLEVUE WA" {
		t.Errorf("description: got %q", m.Fields["description"])
	}
	if m.Fields["amount"] != "10.50" {
		t.Errorf("amount: got %q", m.Fields["amount"])
	}
	if m.Confidence != 1.0 {
		t.Errorf("confidence: got %v, want 1.0", m.Confidence)
	}
}

func TestTwoDatesPostingDateWins(t *testing.T) {
	lines := []string{"10/12  10/14  GROCERY MART SEATTLE  45.67"}

	m, _ := TryAll(lines, 0, testCtx())
	if !m.Matched {
		t.Fatal("expected a match")
	}
	if m.Recognizer != "two_dates" {
		t.Errorf("recognizer: got %s, want two_dates", m.Recognizer)
	}
	if m.Fields["date"] != "10/14" {
		t.Errorf("posting date should win: got %q", m.Fields["date"])
	}
}

func TestPrefixedDate(t *testing.T) {
	lines := []string{"AUTOPAY 10/15 ONLINE PAYMENT RECEIVED $25.00"}

	m, _ := TryAll(lines, 0, testCtx())
	if !m.Matched {
		t.Fatal("expected a match")
	}
	if m.Recognizer != "prefixed_date" {
		t.Errorf("recognizer: got %s, want prefixed_date", m.Recognizer)
	}
	if m.Fields["date"] != "10/15" {
		t.Errorf("date: got %q", m.Fields["date"])
	}
}

func TestPrefixedDateRejectsPercentLines(t *testing.T) {
	lines := []string{"Earn 5% cash back until 12/31 on purchases up to 1,500.00"}

	m, _ := TryAll(lines, 0, testCtx())
	if m.Matched && m.Recognizer == "prefixed_date" {
		t.Errorf("promotional percent line must not match prefixed_date")
	}
}

func TestCardSuffixLayout(t *testing.T) {
	lines := []string{"1234  10/12  10/13  ABC123XYZ  COFFEE SHOP  SEATTLE WA  8.75"}

	m, _ := TryAll(lines, 0, testCtx())
	if !m.Matched {
		t.Fatal("expected a match")
	}
	if m.Recognizer != "card_suffix" {
		t.Errorf("recognizer: got %s, want card_suffix", m.Recognizer)
	}
	if m.Fields["date"] != "10/12" {
		t.Errorf("date: got %q", m.Fields["date"])
	}
	if m.Fields["amount"] != "8.75" {
		t.Errorf("amount: got %q", m.Fields["amount"])
	}
}

func TestBareTrailingIntegerRejected(t *testing.T) {
	// "2024" here is a year fragment, not an amount.
	lines := []string{"10/12  MEMBERSHIP RENEWAL 2024"}

	m, _ := TryAll(lines, 0, testCtx())
	if m.Matched {
		t.Errorf("expected no match, got %s with %v", m.Recognizer, m.Fields)
	}
}

func TestHeaderLineNotMatched(t *testing.T) {
	lines := []string{"Date      Description      Amount"}

	m, _ := TryAll(lines, 0, testCtx())
	if m.Matched {
		t.Errorf("column header must not match, got %s", m.Recognizer)
	}
}

func TestBoilerplateLineNotMatched(t *testing.T) {
	lines := []string{"Statement Date: 10/20/2024  New Balance  $1,250.75"}

	m, _ := TryAll(lines, 0, testCtx())
	if m.Matched {
		t.Errorf("summary line must not match, got %s", m.Recognizer)
	}
}
