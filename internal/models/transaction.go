package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single reconstructed statement transaction.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	UserName    string          `json:"userName,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
	Currency    string          `json:"currency"`
	ParseMethod string          `json:"parseMethod,omitempty"` // debug: which recognizer matched
}

// CandidateMatch is the output of a single recognizer attempt. Only the
// highest-confidence matching candidate per line (or line group) is kept.
type CandidateMatch struct {
	Matched    bool
	Fields     map[string]string // date, description, amount, optional location
	Confidence float64
	Recognizer string
}

// ParsedRow is the intermediate, pre-normalization form of one recognized
// row: raw date and amount text plus the cleaned description. Build it
// through NewParsedRow only; a row that fails construction was never a
// transaction.
type ParsedRow struct {
	DateText     string
	Description  string
	AmountText   string
	UserName     string
	InferredYear int
}

var standalonePhoneText = regexp.MustCompile(`^\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)

// NewParsedRow validates the raw fields before the row enters
// normalization. Date and amount text must carry digits; the description
// must be non-empty and not a bare phone number.
func NewParsedRow(dateText, description, amountText string, inferredYear int) (ParsedRow, error) {
	dateText = strings.TrimSpace(dateText)
	description = strings.TrimSpace(description)
	amountText = strings.TrimSpace(amountText)
	if dateText == "" || !containsDigit(dateText) {
		return ParsedRow{}, errors.New("row has no date text")
	}
	if amountText == "" || !containsDigit(amountText) {
		return ParsedRow{}, errors.New("row has no amount text")
	}
	if description == "" {
		return ParsedRow{}, errors.New("row has no description")
	}
	if standalonePhoneText.MatchString(description) {
		return ParsedRow{}, errors.New("description is a bare phone number")
	}
	return ParsedRow{
		DateText:     dateText,
		Description:  description,
		AmountText:   amountText,
		InferredYear: inferredYear,
	}, nil
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// AccountContext is optional caller-supplied context from a prior
// account-detection step.
type AccountContext struct {
	Type       string
	Subtype    string
	HolderName string
}

// IsCreditCard reports whether the detected account is a credit card.
func (c *AccountContext) IsCreditCard() bool {
	if c == nil {
		return false
	}
	t := strings.ToLower(c.Type)
	return t == "creditcard" || t == "credit_card" || t == "credit" || strings.Contains(t, "card")
}

// IsDepository reports whether the detected account is a checking/savings
// style account.
func (c *AccountContext) IsDepository() bool {
	if c == nil {
		return false
	}
	t := strings.ToLower(c.Type)
	return t == "checking" || t == "savings" || t == "moneymarket" ||
		t == "money_market" || t == "depository" || t == "bank"
}

// RowError records a line or group skipped during parsing and why.
// Row errors are soft: they never abort the overall parse.
type RowError struct {
	Line   int    `json:"line"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason"`
}

// StatementMetadata holds statement-level facts not tied to a single row.
// Every field is independently optional and independently sourced.
type StatementMetadata struct {
	PaymentDueDate    *time.Time       `json:"paymentDueDate,omitempty"`
	MinimumPaymentDue *decimal.Decimal `json:"minimumPaymentDue,omitempty"`
	RewardPoints      *int64           `json:"rewardPoints,omitempty"`
	Balance           *decimal.Decimal `json:"balance,omitempty"`
	CashBack          *decimal.Decimal `json:"cashBack,omitempty"`
}

// BalanceMatch is one label-anchored balance candidate found in a document.
type BalanceMatch struct {
	Value    decimal.Decimal
	Label    string
	Position int
}

// ParseResult is the complete output of one parse invocation. Ownership
// transfers to the caller; no engine-held state survives the call.
type ParseResult struct {
	Transactions []Transaction     `json:"transactions"`
	Metadata     StatementMetadata `json:"metadata"`
	RowErrors    []RowError        `json:"rowErrors,omitempty"`
	Truncated    bool              `json:"truncated,omitempty"`
}
