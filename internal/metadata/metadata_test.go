package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy/statement-engine/internal/models"
)

var metaNow = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

func TestDueDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"numeric", "Payment Due Date: 05/15/2024", "2024-05-15"},
		{"month name", "Payment Due Date: May 15, 2024", "2024-05-15"},
		{"iso", "Due Date: 2024-05-15", "2024-05-15"},
		{"pay by", "Please pay by 05/15/2024 to avoid fees", "2024-05-15"},
	}

	for _, tt := range tests {
		got := DueDate(tt.text, true, metaNow)
		require.NotNil(t, got, tt.name)
		assert.Equal(t, tt.expected, got.Format("2006-01-02"), tt.name)
	}

	assert.Nil(t, DueDate("no dates here", true, metaNow))
}

func TestDueDateLabelPriority(t *testing.T) {
	// The explicit label wins over a generic "due by" mention elsewhere.
	text := "Autopay due by 05/01/2024\nPayment Due Date: 05/15/2024"
	got := DueDate(text, true, metaNow)
	require.NotNil(t, got)
	assert.Equal(t, "2024-05-15", got.Format("2006-01-02"))
}

func TestMinimumPayment(t *testing.T) {
	got := MinimumPayment("Minimum Payment Due: $35.00")
	require.NotNil(t, got)
	assert.Equal(t, "35.00", got.StringFixed(2))

	// Negative minimums are credit positions, not payments due.
	got = MinimumPayment("Minimum Payment Due: -$10.00\nMinimum Amount Due: $25.00")
	require.NotNil(t, got)
	assert.Equal(t, "25.00", got.StringFixed(2))

	assert.Nil(t, MinimumPayment("nothing labelled"))
}

func TestRewards(t *testing.T) {
	got := Rewards("Rewards Points Balance: 12,345")
	require.NotNil(t, got)
	assert.Equal(t, int64(12345), *got)

	// Higher-priority label wins regardless of position.
	got = Rewards("Points: 100\nRewards Points Balance: 2,000")
	require.NotNil(t, got)
	assert.Equal(t, int64(2000), *got)

	// A date following the label is not a points figure.
	assert.Nil(t, Rewards("Points: 12/31/2024"))

	// Values beyond the sanity bound are rejected.
	assert.Nil(t, Rewards("Points: 999,999,999"))
}

func TestRewardsSplitForm(t *testing.T) {
	text := "Rewards Balance\n\n45,210\n"
	got := Rewards(text)
	require.NotNil(t, got)
	assert.Equal(t, int64(45210), *got)
}

func TestRewardsSplitFormRejectsBareDigits(t *testing.T) {
	// A bare digit run under the label is an account suffix or reference
	// number; only a comma-grouped figure counts.
	assert.Nil(t, Rewards("Rewards Balance\n1234\n"))
}

func TestRewardsAsOfDateForm(t *testing.T) {
	got := Rewards("Points as of 12/31/2024: 45,000")
	require.NotNil(t, got)
	assert.Equal(t, int64(45000), *got)

	got = Rewards("Rewards points balance as of Dec. 31, 2024 45,000")
	require.NotNil(t, got)
	assert.Equal(t, int64(45000), *got)

	// The as-of form outranks every plain label.
	got = Rewards("Total Points: 99\nPoints as of 12/31/2024: 45,000")
	require.NotNil(t, got)
	assert.Equal(t, int64(45000), *got)
}

func TestRewardsTransferRedemptionAndMiles(t *testing.T) {
	got := Rewards("Total points transferred to Ultimate Rewards: 12,500")
	require.NotNil(t, got)
	assert.Equal(t, int64(12500), *got)

	got = Rewards("Points available for redemption: 8,750")
	require.NotNil(t, got)
	assert.Equal(t, int64(8750), *got)

	got = Rewards("22,340 points available for redemption")
	require.NotNil(t, got)
	assert.Equal(t, int64(22340), *got)

	got = Rewards("Miles balance: 60,120")
	require.NotNil(t, got)
	assert.Equal(t, int64(60120), *got)
}

func TestRewardsUngroupedValue(t *testing.T) {
	// A figure without comma grouping is read whole, never clipped to its
	// leading digits.
	got := Rewards("Points: 1500")
	require.NotNil(t, got)
	assert.Equal(t, int64(1500), *got)

	got = Rewards("Points Balance: 45210")
	require.NotNil(t, got)
	assert.Equal(t, int64(45210), *got)

	// A run too long for any plausible figure is not read piecemeal.
	assert.Nil(t, Rewards("Points: 12345678901"))
}

func TestBalanceCreditCardFastPath(t *testing.T) {
	text := "New Balance: $1,250.75\nNew Balance: $999.99"
	card := &models.AccountContext{Type: "creditcard"}
	got := Balance(text, card)
	require.NotNil(t, got)
	assert.Equal(t, "1250.75", got.StringFixed(2))
}

func TestBalanceEarliestPositionWins(t *testing.T) {
	// "Amount Due" appears before the more canonical "Statement Balance";
	// document position decides, label spelling only breaks ties.
	text := "Amount Due $500.00\nStatement Balance $1,250.75"
	got := Balance(text, &models.AccountContext{Type: "creditcard"})
	require.NotNil(t, got)
	assert.Equal(t, "500.00", got.StringFixed(2))
}

func TestBalanceWithoutAccountContext(t *testing.T) {
	// No account hint: credit-card labels first, then the depository scan.
	got := Balance("Ending Balance $777.77", nil)
	require.NotNil(t, got)
	assert.Equal(t, "777.77", got.StringFixed(2))

	got = Balance("Statement Balance $1,250.75\nEnding Balance $777.77", nil)
	require.NotNil(t, got)
	assert.Equal(t, "1250.75", got.StringFixed(2))

	assert.Nil(t, Balance("no balances here", nil))
}

func TestBalanceDepositoryWindow(t *testing.T) {
	// Depository balances outside the header window are running balances.
	padding := make([]byte, depositoryScanLimit)
	for i := range padding {
		padding[i] = 'x'
	}
	text := string(padding) + "\nEnding Balance $777.77"
	assert.Nil(t, Balance(text, &models.AccountContext{Type: "checking"}))

	text = "Ending Balance $777.77\n" + string(padding)
	got := Balance(text, &models.AccountContext{Type: "checking"})
	require.NotNil(t, got)
	assert.Equal(t, "777.77", got.StringFixed(2))
}

func TestCashBack(t *testing.T) {
	got := CashBack("Total Cash Back: $52.10")
	require.NotNil(t, got)
	assert.Equal(t, "52.10", got.StringFixed(2))

	assert.Nil(t, CashBack("no rewards here"))
}

func TestExtract(t *testing.T) {
	text := `ACME CARD SERVICES
Statement Closing Date: 04/20/2024
New Balance: $1,250.75
Minimum Payment Due: $35.00
Payment Due Date: 05/15/2024
Rewards Points Balance: 12,345
Total Cash Back: $52.10
`
	md := Extract(text, &models.AccountContext{Type: "creditcard"}, true, metaNow)
	require.NotNil(t, md.PaymentDueDate)
	assert.Equal(t, "2024-05-15", md.PaymentDueDate.Format("2006-01-02"))
	require.NotNil(t, md.MinimumPaymentDue)
	assert.Equal(t, "35.00", md.MinimumPaymentDue.StringFixed(2))
	require.NotNil(t, md.Balance)
	assert.Equal(t, "1250.75", md.Balance.StringFixed(2))
	require.NotNil(t, md.RewardPoints)
	assert.Equal(t, int64(12345), *md.RewardPoints)
	require.NotNil(t, md.CashBack)
	assert.Equal(t, "52.10", md.CashBack.StringFixed(2))
}
