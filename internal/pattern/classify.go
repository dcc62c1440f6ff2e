package pattern

import (
	"regexp"
	"strings"
)

// LineClass tags what kind of line the classifier saw. Recognizers consult
// one shared classification pass instead of re-implementing the filters.
type LineClass int

const (
	ClassCandidate LineClass = iota // may hold a transaction
	ClassBlank
	ClassBoilerplate // section headers, disclosures, agreement text
	ClassPhoneNumber // a line that is only a phone number
	ClassAddress     // PO box / street + ZIP shapes
	ClassHeader      // column header row
)

// Section-header and disclosure phrases that carry dates or amounts but are
// never transactions.
var boilerplatePhrases = []string{
	"closing date", "statement date",
	"pay over time", "cash advances", "cash advance",
	"balance transfers", "balance transfer",
	"interest charges", "interest charge",
	"fees charged", "fee charged",
	"minimum payment", "credit limit", "available credit",
	"payment information", "account summary", "transaction details",
	"rewards summary", "statement period", "billing period",
	"operator relay", "we accept", "customer service",
	"relay calls", "relay call",
	"agreement for details", "cardmember agreement", "cardholder agreement",
	"send general inquiries", "general inquiries",
	"late payment", "new balance",
	"rewards balance", "balance as of",
	"open to close date",
	"chart will be shown",
	"account ending in",
}

var (
	standalonePhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,3}-\d{3}-\d{3}-\d{4}$`),
		regexp.MustCompile(`^\d{1,3}-\d{3}-\d{4}-\d{4}$`),
		regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
	}
	embeddedPhonePattern = regexp.MustCompile(`\d{1,3}-\d{3}-\d{3,4}-?\d{0,4}`)

	pageFooterPattern = regexp.MustCompile(`(?i)page\s+\d+\s+of\s+\d+`)
	poBoxPattern      = regexp.MustCompile(`(?i)\bp\.?o\.?\s+box\s+\d+`)
	zipLinePattern    = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}(?:-\d{4})?\s*$`)

	dateRangeLine    = regexp.MustCompile(`(?i)\d{1,2}/\d{1,2}/\d{2,4}\s+(?:through|to|-)\s+\d{1,2}/\d{1,2}/\d{2,4}`)
	pointsBalanceRun = regexp.MustCompile(`\d{1,3}(?:,\d{3})+\s*\d{1,2}/\d{1,2}/\d{2,4}`)
	asOfPrefix       = regexp.MustCompile(`(?i)^as of\s+\d{1,2}/\d{1,2}/\d{2,4}`)
	refThenDateName  = regexp.MustCompile(`(?i)^\d{3,}\s+\d{1,2}/\d{1,2}/\d{2,4}[a-z]+$`)
	repeatedRefs     = regexp.MustCompile(`^\d{3,}\s+\d{3,}$`)
	repeatedNumDate  = regexp.MustCompile(`(\d+\.\d{2})\s+\d+\.\d{2}\s+\d{1,2}/\d{1,2}/\d{2,4}`)
)

// Classify tags a line before any recognizer runs. The checks trade recall
// for precision in the same order the production filters did: a line that
// still says "Candidate" afterwards may yet fail per-recognizer validation.
func Classify(line string) LineClass {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ClassBlank
	}
	lower := strings.ToLower(trimmed)

	for _, re := range standalonePhonePatterns {
		if re.MatchString(lower) {
			return ClassPhoneNumber
		}
	}

	if IsHeaderLine(trimmed) {
		return ClassHeader
	}

	if poBoxPattern.MatchString(lower) {
		return ClassAddress
	}

	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return ClassBoilerplate
		}
	}

	// Phone directory lines ("Pay by phone 1-800-436-7958",
	// "International 800-436-7958") but keep phone numbers inside
	// merchant descriptions.
	if (strings.Contains(lower, "pay by phone") || strings.Contains(lower, "international")) &&
		embeddedPhonePattern.MatchString(lower) {
		return ClassBoilerplate
	}

	switch {
	case pageFooterPattern.MatchString(lower):
		return ClassBoilerplate
	case lower == "payment":
		return ClassBoilerplate
	case pointsBalanceRun.MatchString(lower):
		return ClassBoilerplate
	case asOfPrefix.MatchString(lower):
		return ClassBoilerplate
	case refThenDateName.MatchString(lower):
		return ClassBoilerplate
	case repeatedRefs.MatchString(lower):
		return ClassBoilerplate
	case repeatedNumDate.MatchString(lower):
		return ClassBoilerplate
	case dateRangeLine.MatchString(lower) && !strings.Contains(lower, "$"):
		// A bare date range is a period header; with a $ it may still be a
		// transaction whose description quotes a range.
		return ClassBoilerplate
	}

	return ClassCandidate
}

// validDescription applies the minimal post-match filter: recognizers
// already demand a valid date and amount, so only guaranteed false
// positives are rejected here.
func validDescription(desc string) bool {
	trimmed := strings.TrimSpace(desc)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)

	for _, re := range standalonePhonePatterns {
		if re.MatchString(lower) {
			return false
		}
	}
	if pageFooterPattern.MatchString(lower) {
		return false
	}
	if strings.Contains(lower, "open to close date") {
		return false
	}
	if strings.Contains(lower, "agreement for details") ||
		strings.Contains(lower, "cardmember agreement") ||
		strings.Contains(lower, "cardholder agreement") {
		return false
	}
	return true
}
