package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/money"
)

// reportService derives monthly aggregates and the visible row
// projection from the stored ledger. Filtering happens in memory:
// legacy rows resolve their calendar period by parsing the date
// string, which SQL cannot express, and ledgers stay at personal
// scale.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// effectivePeriod resolves the calendar (month, year) a transaction is
// attributed to. Explicit fields win; legacy rows parse the date as
// DD/MM/YYYY; anything unparseable falls back to the current month so
// the record still appears somewhere rather than vanishing.
func effectivePeriod(t *models.Transaction) (month, year int) {
	if t.Month != nil && t.Year != nil {
		return *t.Month, *t.Year
	}

	parts := strings.Split(t.Date, "/")
	if len(parts) == 3 {
		m, errM := strconv.Atoi(parts[1])
		y, errY := strconv.Atoi(parts[2])
		if errM == nil && errY == nil && m >= 1 && m <= 12 {
			return m - 1, y
		}
	}

	now := time.Now()
	return int(now.Month()) - 1, now.Year()
}

// MonthlyTotals filters the ledger to the given calendar month and
// sums income and expenses, converting each amount into the display
// currency at the given rate. In and Out are positive magnitudes;
// Net = In - Out. No rounding happens here.
func (s *reportService) MonthlyTotals(month, year int, displayMode models.Currency, rate decimal.Decimal) (MonthlyTotals, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return MonthlyTotals{}, err
	}

	var totals MonthlyTotals
	for i := range transactions {
		t := &transactions[i]
		m, y := effectivePeriod(t)
		if m != month || y != year {
			continue
		}

		val := money.Convert(t.Amount, t.Currency, displayMode, rate)
		if t.Type == models.TransactionTypeIn {
			totals.In = totals.In.Add(val)
		} else {
			totals.Out = totals.Out.Add(val)
		}
	}
	totals.Net = totals.In.Sub(totals.Out)
	return totals, nil
}

// GlobalTotals sums the whole ledger into one signed running total per
// native currency. Independent of month, rate, and display mode.
func (s *reportService) GlobalTotals() (GlobalTotals, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return GlobalTotals{}, err
	}

	var totals GlobalTotals
	for i := range transactions {
		t := &transactions[i]
		if t.Currency == models.CurrencyUSD {
			totals.USD = totals.USD.Add(t.Signed())
		} else {
			totals.BS = totals.BS.Add(t.Signed())
		}
	}
	return totals, nil
}

// VisibleRows projects the transactions matching the active month,
// display currency, and search query into row view-models, most
// recently created first. The query is a case-insensitive substring
// match over description and category. Stored data is never mutated;
// the projection is recomputed in full on every call.
func (s *reportService) VisibleRows(month, year int, displayMode models.Currency, rate decimal.Decimal, query string) ([]Row, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	rows := make([]Row, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		m, y := effectivePeriod(t)
		if m != month || y != year {
			continue
		}
		if t.Currency != displayMode {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Desc), query) &&
			!strings.Contains(strings.ToLower(t.Category), query) {
			continue
		}
		rows = append(rows, projectRow(t, displayMode, rate))
	}

	// ID is unique, so this order is total.
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func projectRow(t *models.Transaction, displayMode models.Currency, rate decimal.Decimal) Row {
	label := "INGRESO"
	if t.Type == models.TransactionTypeOut {
		label = "GASTO"
	}

	other := displayMode.Other()
	converted := money.Convert(t.Amount, t.Currency, other, rate)

	return Row{
		ID:        t.ID,
		Date:      t.Date,
		Desc:      t.Desc,
		Category:  t.DisplayCategory(),
		Type:      t.Type,
		TypeLabel: label,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Primary:   money.FormatSigned(t.Currency, t.Amount, t.Type),
		Secondary: money.FormatSigned(other, converted, t.Type),
	}
}

func (s *reportService) allTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
