// Package normalize converts heterogeneous amount/date text into canonical
// decimal amounts and calendar dates. All functions are pure and stateless;
// compiled patterns are shared read-only.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparsable is returned when input cannot be interpreted as an amount
// or date. Callers must never substitute zero/epoch for a failed parse.
var ErrUnparsable = errors.New("unparsable value")

var (
	maxAmount = decimal.RequireFromString("999999999999.99")
	minAmount = maxAmount.Neg()
)

// currencyStripper removes currency symbols and ISO codes before numeric
// parsing. Codes first so "USD" is not left half-stripped by "$".
var currencyStripper = strings.NewReplacer(
	"USD", "", "EUR", "", "GBP", "", "JPY", "", "INR", "", "CNY", "",
	"$", "", "€", "", "£", "", "¥", "", "₹", "",
	" ", " ",
)

// AmountDetail reports which sign conventions were present in the raw text.
// The engine needs this to decide credit-card sign reversal: an explicit
// CR/DR indicator overrides the account-type default.
type AmountDetail struct {
	HasCredit       bool // trailing CR / CREDIT
	HasDebit        bool // trailing DR / DEBIT
	HasParentheses  bool
	HasExplicitSign bool // leading - or +
}

// Amount parses a monetary string into a signed decimal.
//
// Sign conventions compete; precedence is fixed: DR forces negative,
// parentheses force negative (even combined with CR), CR forces
// non-negative, otherwise an explicit leading sign applies.
func Amount(s string) (decimal.Decimal, error) {
	d, _, err := AmountWithDetail(s)
	return d, err
}

// AmountWithDetail is Amount plus the sign-convention flags observed.
func AmountWithDetail(s string) (decimal.Decimal, AmountDetail, error) {
	var det AmountDetail

	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, det, fmt.Errorf("empty amount: %w", ErrUnparsable)
	}

	// Parentheses may enclose the whole amount including a CR/DR suffix.
	if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
		det.HasParentheses = true
		t = strings.TrimSpace(t[1 : len(t)-1])
	}

	t, det.HasCredit, det.HasDebit = trimIndicator(t)

	// Parentheses again, for "($123.45) CR" style input.
	if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
		det.HasParentheses = true
		t = strings.TrimSpace(t[1 : len(t)-1])
	}

	negative := false
	t = strings.TrimSpace(currencyStripper.Replace(t))
	if strings.HasPrefix(t, "-") {
		det.HasExplicitSign = true
		negative = true
		t = strings.TrimSpace(t[1:])
	} else if strings.HasPrefix(t, "+") {
		det.HasExplicitSign = true
		t = strings.TrimSpace(t[1:])
	}
	// Currency symbol may follow the sign ("-$458.40" leaves nothing here,
	// but "- $458.40" leaves a space already trimmed).
	t = strings.TrimSpace(currencyStripper.Replace(t))

	d, err := Number(t)
	if err != nil {
		return decimal.Zero, det, err
	}
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return decimal.Zero, det, fmt.Errorf("amount %s out of range: %w", d, ErrUnparsable)
	}

	switch {
	case det.HasDebit:
		d = d.Abs().Neg()
	case det.HasParentheses:
		d = d.Abs().Neg()
	case det.HasCredit:
		d = d.Abs()
	case negative:
		d = d.Neg()
	}
	return d, det, nil
}

// trimIndicator strips a trailing CR/DR/BF style marker. BF (brought
// forward) is sign-neutral.
func trimIndicator(t string) (rest string, credit, debit bool) {
	upper := strings.ToUpper(t)
	for _, ind := range []struct {
		suffix string
		credit bool
		debit  bool
	}{
		{"CREDIT", true, false},
		{"DEBIT", false, true},
		{"CR", true, false},
		{"DR", false, true},
		{"BF", false, false},
	} {
		if strings.HasSuffix(upper, ind.suffix) {
			head := t[:len(t)-len(ind.suffix)]
			// Require a non-alphanumeric boundary so "123.45CR" matches but
			// a code like "EUR" is not split into "EU"+"R".
			trimmed := strings.TrimSpace(head)
			if trimmed == "" {
				return t, false, false
			}
			last := trimmed[len(trimmed)-1]
			if last >= 'A' && last <= 'Z' || last >= 'a' && last <= 'z' {
				continue
			}
			return trimmed, ind.credit, ind.debit
		}
	}
	return t, false, false
}

// Number normalizes thousands/decimal separator conventions and parses the
// result. Handles US "1,234.56", European "1.234,56", Indian "12,34,567.89"
// and space grouping "1 234,56". A comma or period within the last three
// characters is treated as the decimal separator; repeated groups of three
// digits are treated as thousands separators.
func Number(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, fmt.Errorf("empty number: %w", ErrUnparsable)
	}
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, " ", "")

	hasComma := strings.Contains(t, ",")
	hasPeriod := strings.Contains(t, ".")

	switch {
	case hasComma && hasPeriod:
		if strings.LastIndex(t, ",") > strings.LastIndex(t, ".") {
			// European: 1.234,56
			t = strings.ReplaceAll(t, ".", "")
			t = strings.ReplaceAll(t, ",", ".")
		} else {
			// US or Indian: 1,234.56 / 12,34,567.89
			t = strings.ReplaceAll(t, ",", "")
		}
	case hasComma:
		last := strings.LastIndex(t, ",")
		if len(t)-last <= 3 {
			// Comma near the end acts as decimal separator: 1234,56
			head := strings.ReplaceAll(t[:last], ",", "")
			t = head + "." + t[last+1:]
		} else {
			t = strings.ReplaceAll(t, ",", "")
		}
	case hasPeriod:
		last := strings.LastIndex(t, ".")
		if len(t)-last > 3 || strings.Count(t, ".") > 1 && len(t)-last == 4 {
			// Period used for grouping: 1.234
			t = strings.ReplaceAll(t, ".", "")
		}
	}

	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, ErrUnparsable)
	}
	return d, nil
}
