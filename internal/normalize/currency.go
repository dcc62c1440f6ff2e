package normalize

import "strings"

// Filename hints used to disambiguate the shared ¥ symbol.
var (
	cnyHints = []string{"CNY", "YUAN", "CITIC", "CHINA", "CHINESE", "UNIONPAY"}
	jpyHints = []string{"JPY", "YEN", "JAPAN", "JAPANESE", "MUFG", "JCB"}
)

// Currency detects the currency of an amount string, consulting the source
// filename for context. Defaults to USD.
func Currency(amountText, filename string) string {
	if strings.TrimSpace(amountText) == "" {
		return "USD"
	}
	upper := strings.ToUpper(amountText)
	fileUpper := strings.ToUpper(filename)

	switch {
	case strings.Contains(amountText, "₹") || strings.Contains(upper, "RS") || strings.Contains(upper, "INR"):
		return "INR"
	case strings.Contains(amountText, "$") || strings.Contains(upper, "USD"):
		return "USD"
	case strings.Contains(amountText, "€") || strings.Contains(upper, "EUR"):
		return "EUR"
	case strings.Contains(amountText, "£") || strings.Contains(upper, "GBP"):
		return "GBP"
	}

	if strings.Contains(amountText, "¥") || strings.Contains(upper, "CNY") ||
		strings.Contains(upper, "JPY") || strings.Contains(upper, "YUAN") ||
		strings.Contains(upper, "YEN") {
		if containsAnyUpper(upper, []string{"CNY", "YUAN"}) || containsAnyUpper(fileUpper, cnyHints) {
			return "CNY"
		}
		if containsAnyUpper(upper, []string{"JPY", "YEN"}) || containsAnyUpper(fileUpper, jpyHints) {
			return "JPY"
		}
		// ¥ with no context is more commonly JPY.
		return "JPY"
	}

	return "USD"
}

func containsAnyUpper(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
