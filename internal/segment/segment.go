// Package segment locates transaction-table headers, delimits the sections
// they open, and attributes cardholder names to rows on multi-user
// statements.
package segment

import (
	"strings"

	"github.com/budgetbuddy/statement-engine/internal/pattern"
)

// Section is one transaction table: the header line that opens it, the
// column phrases matched, and the exclusive end index (next header or EOF).
type Section struct {
	HeaderIndex int
	Columns     []string
	End         int
}

// Segment scans the lines for known column-header phrase sets and returns
// the sections they delimit, in document order.
func Segment(lines []string) []Section {
	var sections []Section
	for i, line := range lines {
		cols := pattern.HeaderColumns(strings.TrimSpace(line))
		if cols == nil {
			continue
		}
		if n := len(sections); n > 0 {
			sections[n-1].End = i
		}
		sections = append(sections, Section{HeaderIndex: i, Columns: cols, End: len(lines)})
	}
	return sections
}
