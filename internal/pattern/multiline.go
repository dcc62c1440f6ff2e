package pattern

import (
	"strings"

	"github.com/budgetbuddy/statement-engine/internal/models"
)

// Marker glyph some card layouts print after a trailing amount.
const trailingMarker = "⧫"

// multiLine reconstructs a transaction whose description and amount span
// several lines: line 1 begins with a date and partial description, the
// following lines carry continuation text, and the first line that is
// entirely an amount (or ends in one) terminates the group and supplies
// the amount. A line that itself begins with a new date aborts the
// lookahead; it belongs to the next transaction.
type multiLine struct{}

func (multiLine) ID() string { return "multi_line" }

func (r multiLine) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	first := normalizeLine(strings.TrimSpace(lines[i]))
	dm := leadingDatePattern.FindStringSubmatch(first)
	if dm == nil {
		return noMatch(r.ID()), 0
	}
	dateStr := dm[1]
	descParts := []string{strings.TrimSpace(first[len(dm[0]):])}

	lookahead := ctx.Lookahead
	if lookahead <= 0 {
		lookahead = 7
	}
	limit := ctx.BeforeAmountLimit
	if limit <= 0 {
		limit = 50
	}

	for j := i + 1; j < len(lines) && j <= i+lookahead; j++ {
		line := normalizeLine(strings.TrimSpace(lines[j]))
		if line == "" {
			continue
		}
		if leadingDatePattern.MatchString(line) {
			// Next transaction starts here; this group has no amount.
			return noMatch(r.ID()), 0
		}

		stripped := strings.TrimSpace(strings.TrimSuffix(line, trailingMarker))

		if amountOnlyPattern.MatchString(stripped) {
			return r.finish(dateStr, descParts, stripped, i, j, ctx)
		}

		if before, amountStr, ok := splitTrailingAmount(stripped); ok {
			trimmedBefore := strings.TrimSpace(before)
			if len(trimmedBefore) <= limit || endsWithSeparator(trimmedBefore) {
				descParts = append(descParts, trimmedBefore)
				return r.finish(dateStr, descParts, amountStr, i, j, ctx)
			}
		}

		descParts = append(descParts, stripped)
	}
	return noMatch(r.ID()), 0
}

func (r multiLine) finish(dateStr string, descParts []string, amountStr string, start, end int, ctx *Context) (models.CandidateMatch, int) {
	desc := strings.TrimSpace(strings.Join(nonEmpty(descParts), " "))
	c, _ := buildCandidate(r.ID(), dateStr, desc, amountStr, 0.85, ctx)
	if !c.Matched {
		return noMatch(r.ID()), 0
	}
	// Consume every line of the group so the outer scan skips them.
	return c, end - start + 1
}

// splitTrailingAmount splits "text AMOUNT" when the line ends in an amount
// token that is not glued to other digits.
func splitTrailingAmount(line string) (before, amount string, ok bool) {
	spans := findAmountSpans(line)
	if len(spans) == 0 {
		return "", "", false
	}
	last := spans[len(spans)-1]
	if strings.TrimSpace(line[last.end:]) != "" {
		return "", "", false
	}
	return line[:last.start], strings.TrimSpace(line[last.start:last.end]), true
}

func endsWithSeparator(s string) bool {
	return strings.HasSuffix(s, "-") || strings.HasSuffix(s, "–") ||
		strings.HasSuffix(s, ":") || strings.HasSuffix(s, "|")
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
