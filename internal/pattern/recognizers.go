package pattern

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/normalize"
)

// Structural layouts, most constrained first. Each is a full-line match;
// recognizers never partially match.
var (
	// 1: date description amount, date anchored at line start.
	reDateDescAmount = regexp.MustCompile(`(?i)^` + dateComponent + flexWS + descComponent + flexWS + `(` + AmountExpr + `)$`)
	// 2: arbitrary prefix before the date (promotional text on the line).
	rePrefixedDate = regexp.MustCompile(`(?i)^.*?` + dateComponent + flexWS + descComponent + flexWS + `(` + AmountExpr + `)$`)
	// 3: date posting-date description amount; posting date authoritative.
	reTwoDates = regexp.MustCompile(`(?i)^` + dateComponent + flexWS + dateComponent + flexWS + descComponent + flexWS + `(` + AmountExpr + `)$`)
	// 4: card-suffix date posting-date txn-id description LOCATION amount.
	reCardSuffix = regexp.MustCompile(`(?i)^(\d{4})` + flexWS + dateComponent + flexWS + dateComponent + flexWS + `([A-Z0-9]+)` + flexWS + descComponent + flexWS + `([A-Z][A-Z\s]{1,20})` + flexWS + `(` + AmountExpr + `)$`)
	// 5: date posting-date merchant LOCATION amount.
	reMerchantLocation = regexp.MustCompile(`(?i)^` + dateComponent + flexWS + dateComponent + flexWS + descComponent + flexWS + `([A-Z][A-Z\s]{1,20})` + flexWS + `(` + AmountExpr + `)$`)

	leadingDateFragment = regexp.MustCompile(`^\s*\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\s+`)
)

// Recognizer attempts to match one structural layout at lines[i] and emit
// transaction fields with a confidence score. consumed reports how many
// lines the match spans (zero when unmatched).
type Recognizer interface {
	ID() string
	Match(lines []string, i int, ctx *Context) (m models.CandidateMatch, consumed int)
}

// Recognizers returns the library in trial order, most structurally
// constrained first, ending with the multi-line reconstruction. The fuzzy
// fallback is separate: it only runs when the whole library missed.
func Recognizers() []Recognizer {
	return []Recognizer{
		dateDescAmount{},
		cardSuffix{},
		twoDates{},
		merchantLocation{},
		prefixedDate{},
		multiLine{},
	}
}

type dateDescAmount struct{}

func (dateDescAmount) ID() string { return "date_desc_amount" }

func (r dateDescAmount) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	line := normalizeLine(strings.TrimSpace(lines[i]))
	m := reDateDescAmount.FindStringSubmatch(line)
	if m == nil {
		return noMatch(r.ID()), 0
	}
	dateStr, desc, amountStr := m[1], m[2], m[3]

	// A second date opening the description means this is really a
	// transaction/posting date pair; those layouts own the line.
	if leadingDateFragment.MatchString(desc) {
		return noMatch(r.ID()), 0
	}

	// A bare decimal here could be a date fragment; demand a currency
	// symbol, parentheses, sign or indicator unless the token has the
	// unmistakable cents shape.
	if !plausibleTrailingAmount(amountStr) {
		return noMatch(r.ID()), 0
	}
	return buildCandidate(r.ID(), dateStr, desc, amountStr, 1.0, ctx)
}

type prefixedDate struct{}

func (prefixedDate) ID() string { return "prefixed_date" }

func (r prefixedDate) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	line := normalizeLine(strings.TrimSpace(lines[i]))
	// Percentage lines are promotional summaries, not transactions.
	if strings.Contains(line, "%") {
		return noMatch(r.ID()), 0
	}
	if leadingDatePattern.MatchString(line) {
		// No prefix present; recognizer 1 owns this shape.
		return noMatch(r.ID()), 0
	}
	m := rePrefixedDate.FindStringSubmatch(line)
	if m == nil {
		return noMatch(r.ID()), 0
	}
	return buildCandidate(r.ID(), m[1], m[2], m[3], 0.9, ctx)
}

type twoDates struct{}

func (twoDates) ID() string { return "two_dates" }

func (r twoDates) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	line := normalizeLine(strings.TrimSpace(lines[i]))
	m := reTwoDates.FindStringSubmatch(line)
	if m == nil {
		return noMatch(r.ID()), 0
	}
	// m[1] is the transaction date, m[2] the posting date; posting wins.
	return buildCandidate(r.ID(), m[2], m[3], m[4], 0.95, ctx)
}

type cardSuffix struct{}

func (cardSuffix) ID() string { return "card_suffix" }

func (r cardSuffix) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	line := normalizeLine(strings.TrimSpace(lines[i]))
	m := reCardSuffix.FindStringSubmatch(line)
	if m == nil {
		return noMatch(r.ID()), 0
	}
	desc := leadingDateFragment.ReplaceAllString(m[5], "")
	full := strings.TrimSpace(desc + " " + strings.TrimSpace(m[6]))
	c, n := buildCandidate(r.ID(), m[2], full, m[7], 0.9, ctx)
	if c.Matched {
		c.Fields["location"] = strings.TrimSpace(m[6])
	}
	return c, n
}

type merchantLocation struct{}

func (merchantLocation) ID() string { return "merchant_location" }

func (r merchantLocation) Match(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	line := normalizeLine(strings.TrimSpace(lines[i]))
	m := reMerchantLocation.FindStringSubmatch(line)
	if m == nil {
		return noMatch(r.ID()), 0
	}
	merchant := leadingDateFragment.ReplaceAllString(m[3], "")
	full := strings.TrimSpace(merchant + " " + strings.TrimSpace(m[4]))
	c, n := buildCandidate(r.ID(), m[2], full, m[5], 0.9, ctx)
	if c.Matched {
		c.Fields["merchant"] = strings.TrimSpace(merchant)
		c.Fields["location"] = strings.TrimSpace(m[4])
	}
	return c, n
}

// TryAll classifies the line, runs the structural library in order and
// returns the best candidate by confidence. Returns a zero candidate when
// the line is not transaction-shaped.
func TryAll(lines []string, i int, ctx *Context) (models.CandidateMatch, int) {
	if Classify(lines[i]) != ClassCandidate {
		return models.CandidateMatch{}, 0
	}

	best := models.CandidateMatch{}
	bestConsumed := 0
	for _, r := range Recognizers() {
		c, consumed := r.Match(lines, i, ctx)
		if c.Matched && c.Confidence > best.Confidence {
			best = c
			bestConsumed = consumed
		}
	}
	if best.Matched {
		return best, bestConsumed
	}
	return Fuzzy(lines[i], ctx)
}

// buildCandidate validates the extracted fields and assembles the match.
// All required fields or none: a failed validation rejects the whole match.
func buildCandidate(id, dateStr, desc, amountStr string, scale float64, ctx *Context) (models.CandidateMatch, int) {
	desc = strings.TrimSpace(desc)
	amountStr = strings.TrimSpace(amountStr)

	date, err := normalize.Date(dateStr, ctx.MonthFirst, ctx.InferredYear, ctx.Now)
	if err != nil {
		return noMatch(id), 0
	}
	amount, err := normalize.Amount(amountStr)
	if err != nil {
		return noMatch(id), 0
	}
	if !validDescription(desc) {
		return noMatch(id), 0
	}

	conf := confidence(date, amount, desc, ctx) * scale
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

func noMatch(id string) models.CandidateMatch {
	return models.CandidateMatch{Recognizer: id}
}

// plausibleTrailingAmount guards recognizer 1 against date fragments: the
// token must carry a currency symbol, parentheses, sign, indicator suffix,
// or an explicit cents decimal.
func plausibleTrailingAmount(amountStr string) bool {
	t := strings.TrimSpace(amountStr)
	upper := strings.ToUpper(t)
	if strings.ContainsAny(t, "$€£¥₹") ||
		strings.HasPrefix(t, "(") ||
		strings.HasPrefix(t, "-") || strings.HasPrefix(t, "+") ||
		strings.HasSuffix(upper, "CR") || strings.HasSuffix(upper, "DR") || strings.HasSuffix(upper, "BF") {
		return true
	}
	return strings.Contains(t, ".")
}

// confidence starts at 1.0 and is reduced for dates far from now, for
// near-zero amounts and for degenerate description lengths.
func confidence(date time.Time, amount decimal.Decimal, desc string, ctx *Context) float64 {
	conf := 1.0

	days := ctx.Now.Sub(date.UTC()).Hours() / 24
	if days > 365*5 || days < -365*5 {
		conf *= 0.8
	}
	if amount.Abs().LessThan(decimal.RequireFromString("0.01")) {
		conf *= 0.5
	}
	switch n := len(strings.TrimSpace(desc)); {
	case n < 3:
		conf *= 0.7
	case n > 200:
		conf *= 0.8
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}
