// Package locale decides the date-order convention (month-first vs
// day-first) and the missing statement year from document signals.
package locale

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerScanLimit bounds the locale scan to the document header region.
const headerScanLimit = 5000

// Institutions whose presence marks a month-first (US convention) document.
var domesticInstitutions = []string{
	"american express", "amex", "chase", "bank of america", "wells fargo",
	"citibank", "citi card", "capital one", "discover", "us bank",
	"u.s. bank", "pnc bank", "truist", "synchrony",
}

var (
	zipStatePattern = regexp.MustCompile(`\b(?:A[KLRZ]|C[AOT]|D[CE]|FL|GA|HI|I[ADLN]|K[SY]|LA|M[ADEINOST]|N[CDEHJMVY]|O[HKR]|PA|RI|S[CD]|T[NX]|UT|V[AT]|W[AIVY])\s+\d{5}(?:-\d{4})?\b`)
	usPhonePattern  = regexp.MustCompile(`(?:\+1[\s.-]?\d{3}|\b1-\d{3}-\d{3}-\d{4}\b|\(\d{3}\)\s?\d{3}-\d{4})`)
)

// InferMonthFirst scans the header region for currency markers, US
// address/ZIP conventions, +1 phone shapes and known domestic institution
// names. Any hit short-circuits to month-first dates; absence defaults to
// day-first.
func InferMonthFirst(text string) bool {
	header := text
	if len(header) > headerScanLimit {
		header = header[:headerScanLimit]
	}

	if strings.Contains(header, "$") || strings.Contains(header, "USD") {
		return true
	}
	if zipStatePattern.MatchString(header) {
		return true
	}
	if usPhonePattern.MatchString(header) {
		return true
	}
	lower := strings.ToLower(header)
	for _, inst := range domesticInstitutions {
		if strings.Contains(lower, inst) {
			return true
		}
	}
	return false
}

// Year-bearing label patterns, one per inference stage.
var (
	closingDatePattern = regexp.MustCompile(`(?i)(?:closing|statement)\s+date[:\s]*(\d{1,2})[/-]\d{1,2}[/-](\d{2,4})`)
	closingTextPattern = regexp.MustCompile(`(?i)(?:closing|statement)\s+date[:\s]*(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+(\d{2,4})`)
	dateRangePattern   = regexp.MustCompile(`(?i)(?:open(?:ing)?(?:\s*/\s*|\s+to\s+|\s+)clos(?:e|ing)|opening)\s+date[s]?[:\s]*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*(?:-|–|to|through)\s*\d{1,2}[/-]\d{1,2}[/-](\d{2,4})`)
	dueDatePattern     = regexp.MustCompile(`(?i)(?:payment\s+)?due\s+date[:\s]*(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	periodPattern      = regexp.MustCompile(`(?i)(?:statement|billing)\s+period[:\s]*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*(?:-|–|to|through)\s*\d{1,2}[/-]\d{1,2}[/-](\d{2,4})`)
	filenameYearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
)

// InferYear resolves the statement year through a strict priority chain:
// closing/statement date, opening-closing range (second date wins), payment
// due date with the December/January step-back rule, statement period, a
// four-digit year in the filename, then the current year. Each stage is
// independent; an out-of-range candidate falls through to the next stage.
func InferYear(text, filename string, now time.Time) int {
	for _, loc := range closingDatePattern.FindAllStringSubmatchIndex(text, 4) {
		// "Opening/Closing Date" ranges belong to the range stage, where the
		// second date carries the year.
		if partOfRangeLabel(text, loc[0]) {
			continue
		}
		if y, ok := expandYear(text[loc[4]:loc[5]]); ok {
			return y
		}
	}
	if m := closingTextPattern.FindStringSubmatch(text); m != nil {
		if y, ok := expandYear(m[1]); ok {
			return y
		}
	}
	if m := dateRangePattern.FindStringSubmatch(text); m != nil {
		if y, ok := expandYear(m[1]); ok {
			return y
		}
	}
	if m := dueDatePattern.FindStringSubmatch(text); m != nil {
		if y, ok := expandYear(m[3]); ok {
			// A January due date on a statement that talks about December
			// belongs to the closing year, one less than the due year. The
			// month may sit in either component depending on locale: it is
			// the first when that reads 1, or the second when the first can
			// only be a day.
			first, _ := strconv.Atoi(m[1])
			second, _ := strconv.Atoi(m[2])
			january := first == 1 || (second == 1 && first > 12)
			if january && strings.Contains(strings.ToLower(text), "december") {
				y--
			}
			if y >= 2000 && y <= 2100 {
				return y
			}
		}
	}
	if m := periodPattern.FindStringSubmatch(text); m != nil {
		if y, ok := expandYear(m[1]); ok {
			return y
		}
	}
	if m := filenameYearRe.FindStringSubmatch(filename); m != nil {
		if y, ok := expandYear(m[1]); ok {
			return y
		}
	}
	return now.Year()
}

func partOfRangeLabel(text string, start int) bool {
	from := start - 12
	if from < 0 {
		from = 0
	}
	prefix := strings.TrimRight(strings.ToLower(text[from:start]), " \t")
	return strings.HasSuffix(prefix, "/") ||
		strings.HasSuffix(prefix, "opening") ||
		strings.HasSuffix(prefix, " to")
}

// expandYear turns a 2- or 4-digit year string into a validated 4-digit
// year. Two-digit years always land in 2000-2099.
func expandYear(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if y <= 99 {
		y += 2000
	}
	if y < 2000 || y > 2100 {
		return 0, false
	}
	return y, true
}
