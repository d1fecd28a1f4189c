package services

import (
	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/ratesync"
)

// LedgerServicer defines the contract for the transaction ledger.
type LedgerServicer interface {
	Add(desc string, amount decimal.Decimal, txType models.TransactionType, currency models.Currency, category string) (*models.Transaction, error)
	Remove(id int64) error
	All() ([]models.Transaction, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// RateServicer defines the contract for the rate store.
type RateServicer interface {
	Current() models.RateSet
	Rate(key models.RateKey) decimal.Decimal
	Apply(quotes ratesync.Quotes, fetchErr error) models.RateSet
	Status() models.SyncStatus
}

// MonthlyTotals aggregates one calendar month in the display currency.
// In and Out are positive magnitudes; Net = In - Out.
type MonthlyTotals struct {
	In  decimal.Decimal
	Out decimal.Decimal
	Net decimal.Decimal
}

// GlobalTotals are the signed running totals per native currency,
// never currency-converted.
type GlobalTotals struct {
	USD decimal.Decimal
	BS  decimal.Decimal
}

// Row is the projected view-model for one visible transaction.
type Row struct {
	ID        int64                  `json:"id"`
	Date      string                 `json:"date"`
	Desc      string                 `json:"desc"`
	Category  string                 `json:"cat"`
	Type      models.TransactionType `json:"type"`
	TypeLabel string                 `json:"type_label"` // INGRESO / GASTO
	Amount    decimal.Decimal        `json:"amt"`
	Currency  models.Currency        `json:"curr"`
	Primary   string                 `json:"primary"`   // fixed amount in the native currency
	Secondary string                 `json:"secondary"` // converted into the other currency
}

// ReportServicer derives monthly aggregates, global totals, and the
// visible row projection from the stored ledger. Pure reads; nothing
// here mutates stored data.
type ReportServicer interface {
	MonthlyTotals(month, year int, displayMode models.Currency, rate decimal.Decimal) (MonthlyTotals, error)
	GlobalTotals() (GlobalTotals, error)
	VisibleRows(month, year int, displayMode models.Currency, rate decimal.Decimal, query string) ([]Row, error)
}

// ExportServicer serializes the full ledger to CSV.
type ExportServicer interface {
	CSV() (filename string, data []byte, err error)
}

// ViewState is a snapshot of the transient filter state.
type ViewState struct {
	DisplayMode   models.Currency `json:"display_mode"`
	ActiveRateKey models.RateKey  `json:"active_rate_key"`
	Month         int             `json:"month"` // 0-11
	Year          int             `json:"year"`
	MonthLabel    string          `json:"month_label"` // e.g. "ENERO 2026"
	SearchQuery   string          `json:"search_query"`
}

// ViewStateServicer owns the transient filter state. It is never
// persisted and resets to defaults on restart.
type ViewStateServicer interface {
	Snapshot() ViewState
	SetMode(mode models.Currency)
	SetRateKey(key models.RateKey)
	SetQuery(query string)
	ShiftMonth(delta int) ViewState
}
