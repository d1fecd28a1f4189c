package models

import "github.com/shopspring/decimal"

// TransactionType distinguishes income from expense movements.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

// Currency is the native denomination of a transaction amount.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBS  Currency = "BS"
)

// Other returns the opposite display currency.
func (c Currency) Other() Currency {
	if c == CurrencyUSD {
		return CurrencyBS
	}
	return CurrencyUSD
}

// DefaultCategory is used when a transaction carries no category.
const DefaultCategory = "Otros"

// Transaction is a single ledger entry. Amounts are immutable once
// created and always denominated in the transaction's own currency;
// conversion happens at display time only.
type Transaction struct {
	// ID is the creation timestamp in Unix milliseconds, bumped on
	// collision so it stays unique and monotonically increasing.
	ID        int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date      string          `gorm:"not null" json:"date"` // DD/MM/YYYY
	Month     *int            `json:"month,omitempty"`      // 0-11; nil on legacy rows
	Year      *int            `json:"year,omitempty"`       // nil on legacy rows
	Desc      string          `gorm:"column:description;not null" json:"desc"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amt"`
	Type      TransactionType `gorm:"not null" json:"type"`
	Currency  Currency        `gorm:"not null" json:"curr"`
	Category  string          `json:"cat"`
}

// DisplayCategory returns the category, or DefaultCategory when blank.
func (t *Transaction) DisplayCategory() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// Signed returns the amount with expense entries negated.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeOut {
		return t.Amount.Neg()
	}
	return t.Amount
}
