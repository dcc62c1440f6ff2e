package segment

import (
	"regexp"
	"strings"
)

var (
	titleWordPattern = regexp.MustCompile(`^[A-Z][a-z']*(?:-[A-Z][a-z']*)*\.?$`)
	capsWordPattern  = regexp.MustCompile(`^[A-Z][A-Z']*(?:-[A-Z][A-Z']*)*\.?$`)
	digitPattern     = regexp.MustCompile(`\d`)

	// Lines that look like an address or a masked account number. A name
	// printed directly above one of these is almost always the cardholder.
	addressLinePattern = regexp.MustCompile(`(?i)\b\d{5}(?:-\d{4})?\s*$|\bP\.?O\.?\s+BOX\b|\b(?:ST|AVE|RD|DR|LN|BLVD|WAY|CT|STREET|AVENUE|ROAD|DRIVE|LANE|COURT)\b\.?\s*$`)
	accountLinePattern = regexp.MustCompile(`(?i)(?:account|card|ending)\D{0,20}\d{4}|[x*]{2,}\s*\d{4}`)
)

// Words that never start a person's name. They catch imperative marketing
// copy ("Pay your balance...") and column labels in title case.
var rejectedFirstWords = map[string]bool{
	"pay": true, "paying": true, "paid": true, "make": true, "making": true,
	"view": true, "visit": true, "call": true, "contact": true, "see": true,
	"check": true, "go": true, "use": true, "sign": true, "log": true,
	"payment": true, "payments": true, "balance": true, "account": true,
	"total": true, "amount": true, "interest": true, "credit": true,
	"debit": true, "minimum": true, "new": true, "late": true, "annual": true,
	"and": true, "or": true, "but": true, "for": true, "with": true,
	"from": true, "to": true, "the": true, "a": true, "an": true,
	"your": true, "thank": true, "please": true, "questions": true,
	"important": true, "notice": true, "if": true, "as": true, "at": true,
	"by": true, "of": true, "on": true, "in": true,
}

// Standalone words that disqualify a candidate regardless of position.
var excludedNameWords = map[string]bool{
	"summary": true, "transactions": true, "transaction": true,
	"details": true, "activity": true, "rewards": true, "points": true,
	"statement": true, "period": true, "date": true, "description": true,
	"purchases": true, "fees": true, "charges": true, "customer": true,
	"service": true, "member": true, "cardmember": true, "cardholder": true,
	"agreement": true, "information": true, "page": true, "continued": true,
	"posted": true, "reference": true, "merchant": true, "location": true,
	"beginning": true, "ending": true, "previous": true, "current": true,
	"available": true, "deposits": true, "withdrawals": true, "checks": true,
	"inquiries": true, "disclosures": true, "fargo": true, "chase": true,
	"citibank": true, "discover": true, "amex": true,
}

var institutionNames = []string{
	"bank of america", "wells fargo", "american express", "capital one",
	"us bank", "pnc bank", "metro bank", "td bank", "navy federal",
	"credit union", "national association",
}

var stateAbbrs = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// IsValidName reports whether the trimmed line could plausibly be a
// person's name: one to five words, all title case or all capitals, no
// digits or symbols, and none of the words commonly printed on statements.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || digitPattern.MatchString(s) {
		return false
	}
	if strings.ContainsAny(s, "$%#@&:;/\\()") {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 1 || len(words) > 5 {
		return false
	}
	lowered := strings.ToLower(s)
	for _, inst := range institutionNames {
		if containsWord(lowered, inst) {
			return false
		}
	}
	if rejectedFirstWords[strings.ToLower(words[0])] {
		return false
	}
	allCaps, allTitle := true, true
	for _, w := range words {
		bare := strings.TrimSuffix(w, ".")
		if excludedNameWords[strings.ToLower(bare)] {
			return false
		}
		if len(words) == 1 && stateAbbrs[bare] {
			return false
		}
		if !capsWordPattern.MatchString(w) {
			allCaps = false
		}
		if !titleWordPattern.MatchString(w) {
			allTitle = false
		}
	}
	return allCaps || allTitle
}

func containsWord(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		before := idx == 0 || !isLetter(haystack[idx-1])
		afterIdx := idx + len(needle)
		after := afterIdx >= len(haystack) || !isLetter(haystack[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// MatchesHolder reports whether a candidate name refers to the given
// account holder. Matching is token-wise and case-insensitive; a
// single-letter token (with or without a trailing period) matches any
// holder token it abbreviates, so "J. Smith" matches "John Smith".
func MatchesHolder(candidate, holder string) bool {
	if candidate == "" || holder == "" {
		return false
	}
	candTokens := strings.Fields(strings.ToLower(candidate))
	holderTokens := strings.Fields(strings.ToLower(holder))
	if len(candTokens) == 0 || len(holderTokens) == 0 {
		return false
	}
	used := make([]bool, len(holderTokens))
	for _, ct := range candTokens {
		ct = strings.TrimSuffix(ct, ".")
		matched := false
		for i, ht := range holderTokens {
			if used[i] {
				continue
			}
			ht = strings.TrimSuffix(ht, ".")
			if ct == ht ||
				(len(ct) == 1 && strings.HasPrefix(ht, ct)) ||
				(len(ht) == 1 && strings.HasPrefix(ct, ht)) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

type nameCandidate struct {
	name    string
	allCaps bool
	boosted bool
	dist    int
}

// AttributeUser walks up to window lines above the transaction at index
// target looking for a cardholder name. When holder is non-empty only
// candidates matching it are considered. All-capital candidates win over
// title-case ones, and a candidate printed directly above an address or
// account line wins over one that is not.
func AttributeUser(lines []string, target int, holder string, window int) string {
	if window <= 0 {
		window = 6
	}
	var candidates []nameCandidate
	for d := 1; d <= window && target-d >= 0; d++ {
		line := strings.TrimSpace(lines[target-d])
		if line == "" {
			continue
		}
		if !IsValidName(line) {
			continue
		}
		if holder != "" && !MatchesHolder(line, holder) {
			continue
		}
		candidates = append(candidates, nameCandidate{
			name:    line,
			allCaps: line == strings.ToUpper(line),
			boosted: contextBoost(lines, target-d),
			dist:    d,
		})
	}
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if rankName(c) > rankName(best) {
			best = c
		}
	}
	return best.name
}

func rankName(c nameCandidate) int {
	r := 0
	if c.boosted {
		r += 4
	}
	if c.allCaps {
		r += 2
	}
	// Closer is better; window never exceeds single digits.
	return r - c.dist
}

func contextBoost(lines []string, nameIdx int) bool {
	for d := 1; d <= 2 && nameIdx+d < len(lines); d++ {
		next := strings.TrimSpace(lines[nameIdx+d])
		if next == "" {
			continue
		}
		if addressLinePattern.MatchString(next) || accountLinePattern.MatchString(next) {
			return true
		}
	}
	return false
}
