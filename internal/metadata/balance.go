package metadata

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/normalize"
	"github.com/budgetbuddy/statement-engine/internal/pattern"
)

// Depository statements print their balance summary at the top; matches
// further down are running balances in the transaction table.
const depositoryScanLimit = 2000

// Label lists, canonical spellings first. Selection is by earliest document
// position; the list order only breaks ties when two labels match at the
// same offset.
var (
	creditCardLabels = []string{
		"new balance",
		"statement balance",
		"total balance",
		"balance due",
		"total amount due",
		"amount due",
		"current balance",
		"outstanding balance",
		"closing balance",
		"saldo nuevo",
		"nouveau solde",
	}
	depositoryLabels = []string{
		"ending balance",
		"ending daily balance",
		"closing balance",
		"new balance",
		"current balance",
		"available balance",
	}
)

var (
	newBalanceFastPath = regexp.MustCompile(`(?i)\bnew\s+balance\s*:\s*(` + pattern.AmountExpr + `)`)

	creditCardBalanceRes = compileBalanceRes(creditCardLabels)
	depositoryBalanceRes = compileBalanceRes(depositoryLabels)
)

func compileBalanceRes(labels []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		res[i] = regexp.MustCompile(`(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(label), ` `, `\s+`) + `\b\s*:?\s*(` + pattern.AmountExpr + `)`)
	}
	return res
}

// Balance extracts the statement balance. Credit-card statements get a
// fast path on the first "New Balance:" occurrence, covering running-total
// layouts that repeat the label with stale values. Without account context
// the credit-card scan runs first and the depository scan is the fallback.
func Balance(text string, account *models.AccountContext) *decimal.Decimal {
	if account.IsDepository() {
		return depositoryBalance(text)
	}
	if v := creditCardBalance(text); v != nil {
		return v
	}
	if !account.IsCreditCard() {
		return depositoryBalance(text)
	}
	return nil
}

func creditCardBalance(text string) *decimal.Decimal {
	if m := newBalanceFastPath.FindStringSubmatch(text); m != nil {
		if v, err := normalize.Amount(m[1]); err == nil {
			return &v
		}
	}
	return bestBalance(text, creditCardLabels, creditCardBalanceRes)
}

func depositoryBalance(text string) *decimal.Decimal {
	if len(text) > depositoryScanLimit {
		text = text[:depositoryScanLimit]
	}
	return bestBalance(text, depositoryLabels, depositoryBalanceRes)
}

func bestBalance(text string, labels []string, res []*regexp.Regexp) *decimal.Decimal {
	matches := collectBalances(text, labels, res)
	if len(matches) == 0 {
		return nil
	}
	best := selectBest(matches, labels)
	return &best.Value
}

func collectBalances(text string, labels []string, res []*regexp.Regexp) []models.BalanceMatch {
	var out []models.BalanceMatch
	for i, label := range labels {
		for _, loc := range res[i].FindAllStringSubmatchIndex(text, -1) {
			v, err := normalize.Amount(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			out = append(out, models.BalanceMatch{Value: v, Label: label, Position: loc[0]})
		}
	}
	return out
}

// selectBest ranks candidates by earliest position; at equal positions the
// more canonical label spelling wins.
func selectBest(matches []models.BalanceMatch, labels []string) models.BalanceMatch {
	rank := func(m models.BalanceMatch) int {
		for i, l := range labels {
			if l == m.Label {
				return i
			}
		}
		return len(labels)
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Position < best.Position || (m.Position == best.Position && rank(m) < rank(best)) {
			best = m
		}
	}
	return best
}
