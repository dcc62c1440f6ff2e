package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/budgetbuddy/statement-engine/internal/models"
)

// CSVWriter writes a parse result to CSV format.
type CSVWriter struct {
	IncludeMetadata bool
}

// WriteToFile writes the parse result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, res *models.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the parse result in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, res *models.ParseResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Statement-level metadata as comment rows ahead of the table
	if w.IncludeMetadata {
		md := res.Metadata
		if md.PaymentDueDate != nil {
			writer.Write([]string{"# Payment Due Date", md.PaymentDueDate.Format("2006-01-02")})
		}
		if md.MinimumPaymentDue != nil {
			writer.Write([]string{"# Minimum Payment Due", md.MinimumPaymentDue.StringFixed(2)})
		}
		if md.Balance != nil {
			writer.Write([]string{"# Balance", md.Balance.StringFixed(2)})
		}
		if md.RewardPoints != nil {
			writer.Write([]string{"# Reward Points", fmt.Sprintf("%d", *md.RewardPoints)})
		}
		if md.CashBack != nil {
			writer.Write([]string{"# Cash Back", md.CashBack.StringFixed(2)})
		}
	}

	header := []string{"Date", "Description", "User", "Amount", "Currency"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range res.Transactions {
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.UserName,
			txn.Amount.StringFixed(2),
			txn.Currency,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if res.Truncated {
		writer.Write([]string{"# Truncated", "transaction limit reached"})
	}

	return nil
}
