package money

import (
	"testing"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
)

func TestConvert(t *testing.T) {
	rate := decimal.NewFromFloat(36.5)

	t.Run("same_currency_is_identity", func(t *testing.T) {
		amt := decimal.NewFromFloat(123.45)
		got := Convert(amt, models.CurrencyUSD, models.CurrencyUSD, rate)
		if !got.Equal(amt) {
			t.Errorf("expected %s, got %s", amt, got)
		}
	})

	t.Run("usd_to_bs_multiplies", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(100), models.CurrencyUSD, models.CurrencyBS, rate)
		want := decimal.NewFromInt(3650)
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("bs_to_usd_divides", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(3650), models.CurrencyBS, models.CurrencyUSD, rate)
		want := decimal.NewFromInt(100)
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("round_trip_within_tolerance", func(t *testing.T) {
		rates := []float64{0.01, 1, 36.5, 38.75, 1234.567}
		amt := decimal.NewFromFloat(57.31)
		tolerance := decimal.NewFromFloat(0.01)

		for _, r := range rates {
			rd := decimal.NewFromFloat(r)
			there := Convert(amt, models.CurrencyUSD, models.CurrencyBS, rd)
			back := Convert(there, models.CurrencyBS, models.CurrencyUSD, rd)
			if back.Sub(amt).Abs().GreaterThan(tolerance) {
				t.Errorf("rate %v: round trip %s -> %s -> %s exceeds tolerance", r, amt, there, back)
			}
		}
	})
}

func TestFormat(t *testing.T) {
	t.Run("usd_grouping", func(t *testing.T) {
		got := Format(models.CurrencyUSD, decimal.NewFromFloat(3650))
		if got != "3,650.00" {
			t.Errorf("expected 3,650.00, got %s", got)
		}
	})

	t.Run("bs_grouping", func(t *testing.T) {
		got := Format(models.CurrencyBS, decimal.NewFromFloat(3650))
		if got != "3.650,00" {
			t.Errorf("expected 3.650,00, got %s", got)
		}
	})

	t.Run("with_symbol", func(t *testing.T) {
		if got := FormatWithSymbol(models.CurrencyUSD, decimal.NewFromInt(5)); got != "$ 5.00" {
			t.Errorf("expected $ 5.00, got %s", got)
		}
		if got := FormatWithSymbol(models.CurrencyBS, decimal.NewFromInt(5)); got != "5,00 Bs" {
			t.Errorf("expected 5,00 Bs, got %s", got)
		}
	})

	t.Run("signed_prefixes_expenses", func(t *testing.T) {
		got := FormatSigned(models.CurrencyUSD, decimal.NewFromInt(5), models.TransactionTypeOut)
		if got != "-$ 5.00" {
			t.Errorf("expected -$ 5.00, got %s", got)
		}
		got = FormatSigned(models.CurrencyUSD, decimal.NewFromInt(5), models.TransactionTypeIn)
		if got != "$ 5.00" {
			t.Errorf("expected $ 5.00, got %s", got)
		}
	})
}
