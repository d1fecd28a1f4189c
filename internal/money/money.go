// Package money provides pure currency conversion and display
// formatting for ledger amounts. Conversion keeps full decimal
// precision; rounding to two places happens only when formatting.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
)

var (
	// USD figures use en-US grouping ("1,234.56"), Bs figures use
	// es-VE grouping ("1.234,56"), matching the two sides of the UI.
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
	bsPrinter  = message.NewPrinter(language.MustParse("es-VE"))
)

// Convert translates amt from its native currency into the display
// currency using rate (Bs per 1 USD). Same-currency conversion is the
// identity. The rate store guarantees rates are positive; a zero rate
// here is an invariant violation upstream.
func Convert(amt decimal.Decimal, native, display models.Currency, rate decimal.Decimal) decimal.Decimal {
	if native == display {
		return amt
	}
	if native == models.CurrencyUSD {
		return amt.Mul(rate)
	}
	return amt.Div(rate)
}

// Format renders an amount with two decimal places and the locale
// grouping of the given currency, without a currency symbol.
func Format(cur models.Currency, amt decimal.Decimal) string {
	p := bsPrinter
	if cur == models.CurrencyUSD {
		p = usdPrinter
	}
	f, _ := amt.Float64()
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatWithSymbol renders an amount with its currency marker:
// "$ 1,234.56" for USD, "1.234,56 Bs" for Bs.
func FormatWithSymbol(cur models.Currency, amt decimal.Decimal) string {
	if cur == models.CurrencyUSD {
		return "$ " + Format(cur, amt)
	}
	return Format(cur, amt) + " Bs"
}

// FormatSigned is FormatWithSymbol with a leading '-' for expenses.
func FormatSigned(cur models.Currency, amt decimal.Decimal, txType models.TransactionType) string {
	s := FormatWithSymbol(cur, amt)
	if txType == models.TransactionTypeOut {
		return "-" + s
	}
	return s
}
