package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatMoney renders an amount for customers: "$55" for USD, "TZS 55,000" otherwise.
func FormatMoney(currency string, amount int64) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "USD" {
		return "$" + humanize.Comma(amount)
	}
	return fmt.Sprintf("%s %s", currency, humanize.Comma(amount))
}

// NormalizePhone strips the WhatsApp JID suffix and a leading plus.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "+")
}

// FormatMoneyRange renders "$55 - $100", or a single amount when both ends match.
func FormatMoneyRange(currency string, min, max int64) string {
	if min == max {
		return FormatMoney(currency, min)
	}
	return FormatMoney(currency, min) + " - " + FormatMoney(currency, max)
}
