// Package pattern implements the layout recognizer library: an ordered set
// of structural matchers tried most-specific-first over statement lines,
// with a fuzzy token-based fallback. Every recognizer is a pure function
// from lines to candidate fields; compiled patterns are package-level and
// read-only, so concurrent parses share them safely.
package pattern

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Context carries per-document parameters into the recognizers.
type Context struct {
	MonthFirst   bool
	InferredYear int
	Now          time.Time

	// Lookahead bounds the multi-line reconstruction window.
	Lookahead int
	// BeforeAmountLimit caps how much descriptive text may precede a
	// trailing amount on a continuation line.
	BeforeAmountLimit int
	// TrailingWindow bounds how far from the line end a fuzzy-matched
	// amount may sit.
	TrailingWindow int
}

// Regex building blocks shared by the structural recognizers. The amount
// expression mirrors the statement formats seen in the wild: parentheses
// negatives, sign-before-currency, currency-first, bare signed numbers and
// bare decimals; CR/DR/BF indicators may trail any of the currency forms.
const (
	flexWS        = `\s+`
	dateComponent = `(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)`
	descComponent = `(.+?)`

	// AmountExpr is exported for metadata extractors that anchor amounts
	// after label text.
	AmountExpr = `(?:` +
		`\(\s*[$€£¥₹]?\s*\d{1,9}(?:[,\s]\d{3})*\.\d{1,2}\s*(?:CR|DR|BF|CREDIT|DEBIT)?\s*\)|` +
		`[-+]\s*[$€£¥₹]\s*\d{1,9}(?:[,\s]\d{3})*\.\d{1,2}\s*(?:CR|DR|BF|CREDIT|DEBIT)?|` +
		`[$€£¥₹]\s*[-+]?\s*\d{1,9}(?:[,\s]\d{3})*\.\d{1,2}\s*(?:CR|DR|BF|CREDIT|DEBIT)?|` +
		`[-+]\s*\d{1,9}(?:[,\s]\d{3})*(?:\.\d{1,2})?\s*(?:CR|DR|BF|CREDIT|DEBIT)?|` +
		`\d{1,9}(?:[,\s]\d{3})*\.\d{1,2}\s*(?:CR|DR|BF|CREDIT|DEBIT)?` +
		`)`
)

var (
	amountTokenPattern = regexp.MustCompile(`(?i)` + AmountExpr)
	amountOnlyPattern  = regexp.MustCompile(`(?i)^` + AmountExpr + `$`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`),
		regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),
		regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{2,4})`),
	}
	leadingDatePattern = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`)
	edgeDigitFragment  = regexp.MustCompile(`^\d{1,2}\s+|\s+\d{1,2}$`)

	// Contexts in which a numeric token is not an amount.
	zipPlus4Pattern   = regexp.MustCompile(`\b\d{5}-\d{4}\b`)
	phoneSpanPattern  = regexp.MustCompile(`\b\d{1,3}-\d{3}-\d{3,4}(?:-\d{4})?\b`)
	dayRangePattern   = regexp.MustCompile(`(?i)\b\d+\s*-\s*\d+\s+days?\b`)
	accountRunPattern = regexp.MustCompile(`\b\d{10,}\b`)
)

// span is a half-open [start, end) byte range inside a line.
type span struct {
	start, end int
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// findAmountSpans returns all amount-shaped token spans in a line. Go's
// regexp has no lookaround, so the word-boundary guard from the pattern is
// enforced here: a match flanked by a word character is a fragment of a
// longer token (phone number, account number) and is dropped, as is any
// match inside a ZIP+4, phone, day-range or long digit-run context.
func findAmountSpans(line string) []span {
	raw := amountTokenPattern.FindAllStringIndex(line, -1)
	if raw == nil {
		return nil
	}
	var excluded []span
	for _, re := range []*regexp.Regexp{zipPlus4Pattern, phoneSpanPattern, dayRangePattern, accountRunPattern} {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			excluded = append(excluded, span{loc[0], loc[1]})
		}
	}

	var out []span
	for _, loc := range raw {
		s := span{loc[0], loc[1]}
		if s.start > 0 && isWordByte(line[s.start-1]) {
			continue
		}
		if s.end < len(line) && isWordByte(line[s.end]) {
			continue
		}
		bad := false
		for _, ex := range excluded {
			if s.overlaps(ex) {
				bad = true
				break
			}
		}
		if !bad {
			out = append(out, s)
		}
	}
	return out
}

// findDateSpans returns all date-shaped token spans that pass component
// validation (month in range, no zero components, plausible year).
func findDateSpans(line string) []span {
	var out []span
	for _, re := range datePatterns {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if validDateToken(line[loc[0]:loc[1]]) {
				out = append(out, span{loc[0], loc[1]})
			}
		}
	}
	return out
}

var numericDateToken = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)

// validDateToken rejects matches whose components cannot form a date:
// a zero month/day, either leading component over 31, or an embedded year
// outside 2000-2100.
func validDateToken(tok string) bool {
	m := numericDateToken.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		// Month-name form; the text month cannot be out of range.
		return true
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	if first == 0 || second == 0 {
		return false
	}
	if first > 31 && !(len(m[1]) == 4 && first >= 2000 && first <= 2100) {
		return false
	}
	if second > 31 {
		return false
	}
	if m[3] != "" {
		y, _ := strconv.Atoi(m[3])
		if y > 99 && (y < 2000 || y > 2100) {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// normalizeLine collapses runs of whitespace (including non-breaking and
// typographic spaces) into single spaces.
func normalizeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	space := false
	for _, r := range line {
		if r == ' ' || r == '\t' || r == ' ' || (r >= ' ' && r <= '​') {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
