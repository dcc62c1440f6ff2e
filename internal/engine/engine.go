// Package engine orchestrates a full statement parse: locale and year
// inference, line-by-line recognition, multi-user attribution, sign
// conventions and the statement-level metadata pass.
package engine

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/budgetbuddy/statement-engine/internal/locale"
	"github.com/budgetbuddy/statement-engine/internal/metadata"
	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/normalize"
	"github.com/budgetbuddy/statement-engine/internal/pattern"
	"github.com/budgetbuddy/statement-engine/internal/segment"
)

// ErrEmptyDocument is returned when the extracted text is blank. It is the
// only fatal parse condition; everything else degrades to row errors.
var ErrEmptyDocument = errors.New("document contains no text")

// Payments on Wells Fargo card statements carry a long reference token and
// all-caps "PAYMENT - THANK YOU" wording. They are credits even though the
// statement prints them without a CR indicator.
var cardPaymentPattern = regexp.MustCompile(`[A-Z0-9]{16,}\s+(?:AUTOMATIC|CHECK|CASH|TRANSFER|PHONE|CALL|RECEIVED)\s+PAYMENT\s*-\s*THANK\s+YOU`)

// Options tune the recognition windows and limits. Zero fields take the
// defaults from DefaultOptions.
type Options struct {
	// Lookahead bounds the multi-line reconstruction window.
	Lookahead int
	// BeforeAmountLimit caps descriptive text before a trailing amount on
	// a continuation line.
	BeforeAmountLimit int
	// TrailingWindow bounds how far from the line end a fuzzy amount may sit.
	TrailingWindow int
	// AttributionWindow bounds the upward scan for a cardholder name.
	AttributionWindow int
	// MaxTransactions caps the result; the parse truncates past it.
	MaxTransactions int
	// MinConfidence drops candidates scored below it as row errors.
	MinConfidence float64
	// Now overrides the wall clock for year inference. Zero means time.Now.
	Now time.Time
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		Lookahead:         7,
		BeforeAmountLimit: 50,
		TrailingWindow:    50,
		AttributionWindow: 6,
		MaxTransactions:   10000,
		MinConfidence:     0.5,
	}
}

// Document is one statement to parse: the extracted text plus optional
// hints from upstream (source filename, detected account).
type Document struct {
	Text     string
	Filename string
	Account  *models.AccountContext
}

// Engine is a stateless parser; one instance serves concurrent calls.
type Engine struct {
	opts Options
	log  *log.Logger
}

// New builds an engine. A nil logger falls back to the package default.
func New(opts Options, logger *log.Logger) *Engine {
	def := DefaultOptions()
	if opts.Lookahead <= 0 {
		opts.Lookahead = def.Lookahead
	}
	if opts.BeforeAmountLimit <= 0 {
		opts.BeforeAmountLimit = def.BeforeAmountLimit
	}
	if opts.TrailingWindow <= 0 {
		opts.TrailingWindow = def.TrailingWindow
	}
	if opts.AttributionWindow <= 0 {
		opts.AttributionWindow = def.AttributionWindow
	}
	if opts.MaxTransactions <= 0 {
		opts.MaxTransactions = def.MaxTransactions
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = def.MinConfidence
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{opts: opts, log: logger}
}

// Parse runs the full pipeline over one document. The result is owned by
// the caller; the engine keeps no state between calls.
func (e *Engine) Parse(doc Document) (*models.ParseResult, error) {
	text := strings.ReplaceAll(doc.Text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	now := e.opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	monthFirst := locale.InferMonthFirst(text)
	year := locale.InferYear(text, doc.Filename, now)
	e.log.Debug("locale inferred", "monthFirst", monthFirst, "year", year)

	pctx := &pattern.Context{
		MonthFirst:        monthFirst,
		InferredYear:      year,
		Now:               now,
		Lookahead:         e.opts.Lookahead,
		BeforeAmountLimit: e.opts.BeforeAmountLimit,
		TrailingWindow:    e.opts.TrailingWindow,
	}

	lines := strings.Split(text, "\n")
	sections := segment.Segment(lines)
	holder := ""
	if doc.Account != nil {
		holder = doc.Account.HolderName
	}
	creditCard := doc.Account.IsCreditCard()

	res := &models.ParseResult{}
	for i := 0; i < len(lines); {
		cand, consumed := pattern.TryAll(lines, i, pctx)
		if consumed < 1 {
			consumed = 1
		}
		if !cand.Matched {
			i += consumed
			continue
		}
		if cand.Confidence < e.opts.MinConfidence {
			res.RowErrors = append(res.RowErrors, models.RowError{
				Line: i + 1, Text: strings.TrimSpace(lines[i]), Reason: "confidence below threshold",
			})
			i += consumed
			continue
		}
		tx, rowErr := e.buildTransaction(cand, lines, i, pctx, sections, holder, creditCard, doc.Filename)
		if rowErr != nil {
			res.RowErrors = append(res.RowErrors, *rowErr)
			i += consumed
			continue
		}
		if len(res.Transactions) >= e.opts.MaxTransactions {
			res.Truncated = true
			res.RowErrors = append(res.RowErrors, models.RowError{
				Line: i + 1, Reason: "transaction limit reached",
			})
			e.log.Warn("parse truncated", "limit", e.opts.MaxTransactions)
			break
		}
		res.Transactions = append(res.Transactions, tx)
		i += consumed
	}

	res.Metadata = metadata.Extract(text, doc.Account, monthFirst, now)
	e.log.Info("parse complete",
		"transactions", len(res.Transactions),
		"rowErrors", len(res.RowErrors),
		"truncated", res.Truncated)
	return res, nil
}

func (e *Engine) buildTransaction(cand models.CandidateMatch, lines []string, i int, pctx *pattern.Context, sections []segment.Section, holder string, creditCard bool, filename string) (models.Transaction, *models.RowError) {
	row, err := models.NewParsedRow(cand.Fields["date"], cand.Fields["description"], cand.Fields["amount"], pctx.InferredYear)
	if err != nil {
		return models.Transaction{}, &models.RowError{Line: i + 1, Text: strings.TrimSpace(lines[i]), Reason: err.Error()}
	}
	date, err := normalize.Date(row.DateText, pctx.MonthFirst, row.InferredYear, pctx.Now)
	if err != nil {
		return models.Transaction{}, &models.RowError{Line: i + 1, Text: strings.TrimSpace(lines[i]), Reason: "unparseable date"}
	}
	amount, detail, err := normalize.AmountWithDetail(row.AmountText)
	if err != nil {
		return models.Transaction{}, &models.RowError{Line: i + 1, Text: strings.TrimSpace(lines[i]), Reason: "unparseable amount"}
	}
	if amount.Abs().LessThan(decimal.RequireFromString("0.01")) {
		return models.Transaction{}, &models.RowError{Line: i + 1, Text: strings.TrimSpace(lines[i]), Reason: "zero amount, informational row"}
	}

	desc := row.Description
	if creditCard {
		amount = applyCardConvention(amount, detail, desc)
	}

	user := segment.AttributeUser(lines, i, holder, e.opts.AttributionWindow)
	if user == "" {
		// A name printed just above a table header covers the whole section.
		if sec := sectionFor(sections, i); sec != nil {
			user = segment.AttributeUser(lines, sec.HeaderIndex, holder, e.opts.AttributionWindow)
		}
	}
	if user != "" {
		row.UserName = user
		desc = stripUserPrefix(desc, user)
	}

	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		UserName:    row.UserName,
		Merchant:    cand.Fields["merchant"],
		Currency:    normalize.Currency(row.AmountText, filename),
		ParseMethod: cand.Recognizer,
	}, nil
}

func sectionFor(sections []segment.Section, i int) *segment.Section {
	for idx := range sections {
		if i > sections[idx].HeaderIndex && i < sections[idx].End {
			return &sections[idx]
		}
	}
	return nil
}

// applyCardConvention flips bare positive amounts on card statements:
// printed without any sign indicator they are charges, i.e. money out.
// Explicit CR/DR, parentheses or a sign already encode direction, and
// "PAYMENT - THANK YOU" lines are credits despite the bare figure.
func applyCardConvention(amount decimal.Decimal, detail normalize.AmountDetail, desc string) decimal.Decimal {
	if detail.HasCredit || detail.HasDebit || detail.HasParentheses || detail.HasExplicitSign {
		return amount
	}
	if !amount.IsPositive() {
		return amount
	}
	if cardPaymentPattern.MatchString(desc) {
		return amount
	}
	return amount.Neg()
}

// stripUserPrefix removes an attributed cardholder name echoed at the start
// of the description, when a clean word boundary follows it.
func stripUserPrefix(desc, user string) string {
	if !strings.HasPrefix(strings.ToUpper(desc), strings.ToUpper(user)) {
		return desc
	}
	rest := desc[len(user):]
	if rest == "" {
		return desc
	}
	switch rest[0] {
	case ' ', ',', '\t':
		return strings.TrimLeft(rest, " ,\t")
	}
	return desc
}
