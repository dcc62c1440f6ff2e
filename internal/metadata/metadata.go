// Package metadata extracts statement-level facts that are not tied to a
// single transaction row: the payment due date, the minimum payment, the
// rewards points balance, the statement balance and cash back earned.
// Every extractor is independent and returns nil when nothing matches.
package metadata

import (
	"time"

	"github.com/budgetbuddy/statement-engine/internal/models"
)

// Date tokens accepted after a metadata label: "April 25, 2024",
// "04/25/2024", "2024-04-25".
const dateTokenExpr = `([A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})`

// Extract runs every statement-level extractor over the raw document text.
func Extract(text string, account *models.AccountContext, monthFirst bool, now time.Time) models.StatementMetadata {
	return models.StatementMetadata{
		PaymentDueDate:    DueDate(text, monthFirst, now),
		MinimumPaymentDue: MinimumPayment(text),
		RewardPoints:      Rewards(text),
		Balance:           Balance(text, account),
		CashBack:          CashBack(text),
	}
}
