package metadata

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy/statement-engine/internal/normalize"
	"github.com/budgetbuddy/statement-engine/internal/pattern"
)

var cashBackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcash\s*back\s+(?:rewards?\s+)?balance\b\s*:?\s*(` + pattern.AmountExpr + `)`),
	regexp.MustCompile(`(?i)\btotal\s+cash\s*back\b\s*:?\s*(` + pattern.AmountExpr + `)`),
	regexp.MustCompile(`(?i)\bcash\s*back\s+earned\b\s*:?\s*(` + pattern.AmountExpr + `)`),
}

// CashBack returns the cash-back rewards amount, if the statement reports
// one. Unlike points this is a currency figure.
func CashBack(text string) *decimal.Decimal {
	for _, re := range cashBackPatterns {
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
