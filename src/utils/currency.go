package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.Indonesian)

// currencySymbols maps ISO codes to the prefix used in descriptions.
var currencySymbols = map[string]string{
	"IDR": "Rp",
	"USD": "$",
	"EUR": "€",
	"SGD": "S$",
}

// FormatCurrency renders amount with id-ID grouping and the symbol of code,
// e.g. "Rp 150.000" for IDR.
// Negative amounts get a leading minus sign before the symbol.
func FormatCurrency(amount int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + " " + currencyPrinter.Sprintf("%d", amount)
}
