package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

// Spreadsheet exports rarely exceed a few thousand rows; the engine caps
// output anyway, so reading more is wasted work.
const maxSpreadsheetRows = 12000

// ExtractXLS converts a legacy Excel statement export into line-oriented
// text, one row per line with cells joined by double spaces so the column
// gaps survive into the recognizers.
func ExtractXLS(data []byte) (string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return "", fmt.Errorf("open xls: %w", err)
	}

	rows := workbook.ReadAllCells(maxSpreadsheetRows)
	if len(rows) == 0 {
		return "", fmt.Errorf("xls contains no rows")
	}

	var b strings.Builder
	for _, row := range rows {
		var cells []string
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("xls contains no text")
	}
	return b.String(), nil
}
