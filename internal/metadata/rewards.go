package metadata

import (
	"regexp"
	"strconv"
	"strings"
)

const maxRewardPoints = 100_000_000

// Points figure: an optionally comma-grouped integer. The digit run is
// capped at the bound's width; partOfDigitRun rejects captures that split a
// longer run instead of letting the capture truncate it.
const pointsExpr = `(\d{1,7}(?:,\d{3})*)`

// Same-line whitespace. The registry must not read a value from a later
// line; that is the split form's job, with its stricter grouping rule.
const (
	rws0 = `[^\S\n]*`
	rws1 = `[^\S\n]+`
)

// Date tokens accepted inside "as of <date>" reward labels.
const rewardDateExpr = `(?:[A-Za-z]{3,9}\.?` + rws1 + `\d{1,2},?` + rws1 + `\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})`

// Reward-balance labels as a priority registry. Higher priority wins over
// an earlier position; within one priority the first occurrence wins.
type rewardRule struct {
	priority int
	re       *regexp.Regexp
}

var rewardRules = []rewardRule{
	{100, regexp.MustCompile(`(?i)\b(?:rewards?` + rws1 + `)?points?(?:` + rws1 + `balance)?` + rws1 + `as` + rws1 + `of` + rws1 + rewardDateExpr + rws0 + `:?` + rws0 + pointsExpr)},
	{95, regexp.MustCompile(`(?i)\btotal` + rws1 + `points?` + rws1 + `transferred` + rws1 + `to\b[^:\n]*:?` + rws0 + pointsExpr)},
	{90, regexp.MustCompile(`(?i)\b(?:points?` + rws1 + `)?available` + rws1 + `for` + rws1 + `redemption\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{88, regexp.MustCompile(`(?i)` + pointsExpr + rws1 + `points?` + rws1 + `available` + rws1 + `for` + rws1 + `redemption\b`)},
	{85, regexp.MustCompile(`(?i)\brewards?` + rws1 + `points?` + rws1 + `balance\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{80, regexp.MustCompile(`(?i)\bpoints?` + rws1 + `balance\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{75, regexp.MustCompile(`(?i)\btotal` + rws1 + `(?:rewards?` + rws1 + `)?points?\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{70, regexp.MustCompile(`(?i)\bpoints?` + rws1 + `earned\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{65, regexp.MustCompile(`(?i)\bavailable` + rws1 + `points?\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{60, regexp.MustCompile(`(?i)\brewards?` + rws1 + `balance\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{55, regexp.MustCompile(`(?i)\bpoints?\b` + rws0 + `:` + rws0 + pointsExpr)},
	{50, regexp.MustCompile(`(?i)\b(?:total` + rws1 + `)?miles` + rws1 + `(?:balance|earned)\b` + rws0 + `:?` + rws0 + pointsExpr)},
	{45, regexp.MustCompile(`(?i)\bmiles\b` + rws0 + `:` + rws0 + pointsExpr)},
}

var (
	rewardLabelLine = regexp.MustCompile(`(?i)^\s*(?:rewards?\s+)?points?\s+balance\s*:?\s*$|^\s*rewards?\s+balance\s*:?\s*$`)
	// The split-form value line must carry comma grouping; a bare digit run
	// on its own line is an account suffix or reference, not a points figure.
	groupedIntLine = regexp.MustCompile(`^\s*(\d{1,3}(?:,\d{3})+)\s*$`)
)

// Rewards returns the statement's rewards-point balance. Single-line
// label-and-value forms are tried first through the priority registry;
// when a label sits alone on its own line a comma-grouped value may follow
// within the next two lines (statement layouts often split label and
// figure).
func Rewards(text string) *int64 {
	bestPriority := -1
	bestPos := -1
	var bestValue int64

	for _, rule := range rewardRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			raw := text[loc[2]:loc[3]]
			if partOfDate(text, loc[3]) || partOfDigitRun(text, loc[2], loc[3]) {
				continue
			}
			v, ok := parsePoints(raw)
			if !ok {
				continue
			}
			if rule.priority > bestPriority || (rule.priority == bestPriority && loc[0] < bestPos) {
				bestPriority, bestPos, bestValue = rule.priority, loc[0], v
			}
		}
	}
	if bestPriority >= 0 {
		return &bestValue
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !rewardLabelLine.MatchString(line) {
			continue
		}
		for j := i + 1; j <= i+2 && j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			m := groupedIntLine.FindStringSubmatch(next)
			if m == nil {
				break
			}
			if v, ok := parsePoints(m[1]); ok {
				return &v
			}
			break
		}
	}
	return nil
}

// partOfDate rejects captures that continue as a date, e.g. the "12" in
// "Points balance as of 12/31/2024".
func partOfDate(text string, end int) bool {
	if end+1 >= len(text) {
		return false
	}
	c := text[end]
	return (c == '/' || c == '-') && text[end+1] >= '0' && text[end+1] <= '9'
}

// partOfDigitRun rejects captures flanked by further digits: the figure
// was longer than the capture could hold and must not be read piecemeal.
func partOfDigitRun(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return true
	}
	return end < len(text) && isDigit(text[end])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parsePoints(raw string) (int64, bool) {
	v, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
	if err != nil || v < 0 || v > maxRewardPoints {
		return 0, false
	}
	return v, true
}
