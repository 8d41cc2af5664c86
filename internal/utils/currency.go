// internal/utils/currency.go
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"CDF": "FC",
}

// FormatCurrency renders an amount as "<symbol> <grouped-number>", e.g.
// "$ 1,234.5". Unknown currency codes are printed as their own symbol.
func FormatCurrency(amount decimal.Decimal, code string) string {
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}
	return symbol + " " + groupThousands(amount)
}

func groupThousands(d decimal.Decimal) string {
	s := d.String()

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = strings.TrimRight(s[i+1:], "0")
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}
