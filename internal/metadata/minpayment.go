package metadata

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy/statement-engine/internal/normalize"
	"github.com/budgetbuddy/statement-engine/internal/pattern"
)

var minPaymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bminimum\s+payment\s+due\b\s*:?\s*(` + pattern.AmountExpr + `)`),
	regexp.MustCompile(`(?i)\bminimum\s+(?:amount\s+)?due\b\s*:?\s*(` + pattern.AmountExpr + `)`),
	regexp.MustCompile(`(?i)\btotal\s+minimum\s+payment\b\s*:?\s*(` + pattern.AmountExpr + `)`),
	regexp.MustCompile(`(?i)\bminimum\s+payment\b\s*:?\s*(` + pattern.AmountExpr + `)`),
}

// MinimumPayment returns the first labelled minimum-payment amount that
// parses to a non-negative value. Statements occasionally print a credit
// position as "$0.00" or a negative; a negative minimum is never real.
func MinimumPayment(text string) *decimal.Decimal {
	for _, re := range minPaymentPatterns {
		for _, m := range re.FindAllStringSubmatch(text, 5) {
			v, err := normalize.Amount(m[1])
			if err != nil || v.IsNegative() {
				continue
			}
			return &v
		}
	}
	return nil
}
