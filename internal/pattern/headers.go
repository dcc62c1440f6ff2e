package pattern

import "strings"

// Known transaction-table column header phrase sets. A line is a header
// only when every phrase of some set is present and at least three columns
// can be extracted from it.
var headerPhraseSets = [][]string{
	{"trans date", "post date", "description", "amount"},
	{"transaction date", "posting date", "description", "amount"},
	{"posted date", "description", "amount"},
	{"date", "user", "description", "amount"},
	{"date", "description", "debit", "credit"},
	{"date", "payee", "amount"},
	{"date", "merchant", "amount"},
	{"date", "description", "amount"},
}

// HeaderColumns returns the matched column phrases when the line is a
// transaction-table header, or nil. Sets are tried most specific first so
// "Trans Date  Post Date  Description  Amount" yields four columns, not
// the generic three.
func HeaderColumns(line string) []string {
	lower := strings.ToLower(line)
	for _, set := range headerPhraseSets {
		all := true
		for _, phrase := range set {
			if !strings.Contains(lower, phrase) {
				all = false
				break
			}
		}
		if all && len(set) >= 3 {
			return set
		}
	}
	return nil
}

// IsHeaderLine reports whether the line matches a known column header set.
func IsHeaderLine(line string) bool {
	return HeaderColumns(line) != nil
}
