package pattern

import (
	"strings"

	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/normalize"
)

// Prefixes that legitimately precede a transaction date mid-line
// (promotional cashback wording); anything else before the date marks the
// line as boilerplate.
var benignPrefixes = []string{
	"1%", "2%", "3%", "4%", "5%",
	"cashback", "cash back", "reward", "bonus",
}

// Fuzzy extracts date and amount tokens independently when no structural
// recognizer matched. Amount spans overlapping a date span are discarded;
// the chosen amount must follow the date and end within the trailing
// window of the line; the date must sit at the line start or behind a
// benign prefix only.
func Fuzzy(rawLine string, ctx *Context) (models.CandidateMatch, int) {
	const id = "fuzzy"
	line := normalizeLine(strings.TrimSpace(rawLine))
	if line == "" {
		return noMatch(id), 0
	}

	dates := findDateSpans(line)
	if len(dates) == 0 {
		return noMatch(id), 0
	}
	dateSpan := dates[0]

	var amountSpan *span
	for _, a := range findAmountSpans(line) {
		overlapsDate := false
		for _, d := range dates {
			if a.overlaps(d) {
				overlapsDate = true
				break
			}
		}
		if overlapsDate {
			continue
		}
		// Rightmost surviving amount wins.
		s := a
		amountSpan = &s
	}
	if amountSpan == nil {
		return noMatch(id), 0
	}

	window := ctx.TrailingWindow
	if window <= 0 {
		window = 50
	}
	// Amount after date, near the end of the line. Free-floating
	// informational amounts that share a line with an unrelated date fail
	// one of these.
	if amountSpan.start <= dateSpan.start {
		return noMatch(id), 0
	}
	if amountSpan.end < len(line)-window {
		return noMatch(id), 0
	}

	if dateSpan.start > 0 {
		prefix := strings.ToLower(strings.TrimSpace(line[:dateSpan.start]))
		if !hasBenignPrefix(prefix) {
			return noMatch(id), 0
		}
	}

	dateStr := line[dateSpan.start:dateSpan.end]
	amountStr := strings.TrimSpace(line[amountSpan.start:amountSpan.end])
	desc := fuzzyDescription(line, dateSpan, *amountSpan)

	if _, err := normalize.Date(dateStr, ctx.MonthFirst, ctx.InferredYear, ctx.Now); err != nil {
		return noMatch(id), 0
	}
	if _, err := normalize.Amount(amountStr); err != nil {
		return noMatch(id), 0
	}
	if !validDescription(desc) {
		return noMatch(id), 0
	}

	// Base 0.6 for a fuzzy match plus 0.1 per validated component; all
	// three are validated by the time we get here.
	conf := 0.9

	return models.CandidateMatch{
		Matched: true,
		Fields: map[string]string{
			"date":        dateStr,
			"description": desc,
			"amount":      amountStr,
		},
		Confidence: conf,
		Recognizer: id,
	}, 1
}

func hasBenignPrefix(prefix string) bool {
	for _, p := range benignPrefixes {
		if strings.Contains(prefix, p) {
			return true
		}
	}
	return false
}

// fuzzyDescription takes the text between date and amount, collapses
// whitespace and strips stray leading date fragments to a fixpoint.
func fuzzyDescription(line string, dateSpan, amountSpan span) string {
	desc := line[dateSpan.end:amountSpan.start]
	desc = strings.Join(strings.Fields(desc), " ")
	for {
		next := leadingDateFragment.ReplaceAllString(desc, "")
		next = strings.TrimSpace(next)
		if next == desc {
			break
		}
		desc = next
	}
	// Stray one/two-digit date remnants at either edge.
	desc = strings.TrimSpace(edgeDigitFragment.ReplaceAllString(desc, ""))
	return desc
}
