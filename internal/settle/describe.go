package settle

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// Locale selects the language of rendered settlement instructions.
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// Describe renders a settlement as a human-readable payment instruction in
// the group's default currency (EUR).
func Describe(s Settlement, locale Locale) string {
	return DescribeIn(s, locale, money.EUR)
}

// DescribeIn renders a settlement as a payment instruction with the amount
// formatted in the given ISO 4217 currency code. Unknown locales fall back
// to English.
func DescribeIn(s Settlement, locale Locale, currency string) string {
	amount := money.New(int64(math.Round(s.Amount*100)), currency).Display()

	switch locale {
	case LocaleES:
		return fmt.Sprintf("%s debe pagar %s a %s", s.From.Name, amount, s.To.Name)
	default:
		return fmt.Sprintf("%s must pay %s to %s", s.From.Name, amount, s.To.Name)
	}
}
