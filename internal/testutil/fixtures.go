package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"patrimonio/internal/models"
)

// counter provides unique transaction ids across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TransactionFixture describes a transaction to insert directly,
// bypassing the ledger service. Zero values get sensible defaults.
type TransactionFixture struct {
	ID       int64
	Date     string
	Month    *int
	Year     *int
	Desc     string
	Amount   string // decimal string, e.g. "100" or "57.31"
	Type     models.TransactionType
	Currency models.Currency
	Category string
}

// CreateTestTransaction inserts a transaction row from the fixture.
func CreateTestTransaction(t *testing.T, db *gorm.DB, f TransactionFixture) *models.Transaction {
	t.Helper()

	if f.ID == 0 {
		f.ID = nextID()
	}
	if f.Desc == "" {
		f.Desc = fmt.Sprintf("Test transaction %d", f.ID)
	}
	if f.Amount == "" {
		f.Amount = "10"
	}
	if f.Type == "" {
		f.Type = models.TransactionTypeIn
	}
	if f.Currency == "" {
		f.Currency = models.CurrencyUSD
	}
	if f.Date == "" {
		f.Date = "15/06/2024"
	}

	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", f.Amount, err)
	}

	tx := &models.Transaction{
		ID:       f.ID,
		Date:     f.Date,
		Month:    f.Month,
		Year:     f.Year,
		Desc:     f.Desc,
		Amount:   amount,
		Type:     f.Type,
		Currency: f.Currency,
		Category: f.Category,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// Period returns month/year pointers for fixture literals.
func Period(month, year int) (*int, *int) {
	return &month, &year
}
