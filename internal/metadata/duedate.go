package metadata

import (
	"regexp"
	"time"

	"github.com/budgetbuddy/statement-engine/internal/normalize"
)

// Due-date label phrasings in priority order. The most explicit labels win
// over generic "due by" wording that also appears in marketing copy.
var dueDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpayment\s+due\s+date\b\s*:?\s*` + dateTokenExpr),
	regexp.MustCompile(`(?i)\bminimum\s+payment\s+due\s+(?:date|by)\b\s*:?\s*` + dateTokenExpr),
	regexp.MustCompile(`(?i)\bpayment\s+due\s+(?:by|on)\b\s*:?\s*` + dateTokenExpr),
	regexp.MustCompile(`(?i)\bdue\s+date\b\s*:?\s*` + dateTokenExpr),
	regexp.MustCompile(`(?i)\bplease\s+pay\s+by\b\s*:?\s*` + dateTokenExpr),
	regexp.MustCompile(`(?i)\bdue\s+by\b\s*:?\s*` + dateTokenExpr),
}

// DueDate returns the payment due date, or nil when no label yields a
// parseable date. Patterns are tried in priority order and the first hit
// for each pattern is taken.
func DueDate(text string, monthFirst bool, now time.Time) *time.Time {
	for _, re := range dueDatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, 5) {
			d, err := normalize.Date(m[1], monthFirst, 0, now)
			if err != nil {
				continue
			}
			return &d
		}
	}
	return nil
}
