package services

import (
	"testing"
	"time"

	"patrimonio/internal/models"
	"patrimonio/internal/testutil"
)

func TestMonthlyTotals(t *testing.T) {
	rate := dec(36.5)

	t.Run("only_reflects_matching_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		janM, janY := testutil.Period(0, 2024)
		febM, febY := testutil.Period(1, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: janM, Year: janY, Amount: "100", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: janM, Year: janY, Amount: "40", Type: models.TransactionTypeOut, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: febM, Year: febY, Amount: "999", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})

		totals, err := svc.MonthlyTotals(0, 2024, models.CurrencyUSD, rate)
		testutil.AssertNoError(t, err)

		if !totals.In.Equal(dec(100)) {
			t.Errorf("expected monthIn 100, got %s", totals.In)
		}
		if !totals.Out.Equal(dec(40)) {
			t.Errorf("expected monthOut 40, got %s", totals.Out)
		}
		if !totals.Net.Equal(dec(60)) {
			t.Errorf("expected monthNet 60, got %s", totals.Net)
		}
		if !totals.Net.Equal(totals.In.Sub(totals.Out)) {
			t.Error("expected net to equal in minus out")
		}
	})

	t.Run("converts_into_display_mode", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(0, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Amount: "100", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})

		usd, err := svc.MonthlyTotals(0, 2024, models.CurrencyUSD, rate)
		testutil.AssertNoError(t, err)
		if !usd.In.Equal(dec(100)) {
			t.Errorf("expected monthIn 100 in USD mode, got %s", usd.In)
		}

		bs, err := svc.MonthlyTotals(0, 2024, models.CurrencyBS, rate)
		testutil.AssertNoError(t, err)
		if !bs.In.Equal(dec(3650)) {
			t.Errorf("expected monthIn 3650 in BS mode, got %s", bs.In)
		}
	})

	t.Run("mixed_currencies_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(5, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Amount: "10", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Amount: "365", Type: models.TransactionTypeIn, Currency: models.CurrencyBS,
		})

		totals, err := svc.MonthlyTotals(5, 2024, models.CurrencyUSD, rate)
		testutil.AssertNoError(t, err)
		// 10 USD + 365 Bs / 36.5 = 20 USD
		if !totals.In.Equal(dec(20)) {
			t.Errorf("expected monthIn 20, got %s", totals.In)
		}
	})

	t.Run("legacy_rows_parse_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Date: "05/03/2023", Amount: "50", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})

		totals, err := svc.MonthlyTotals(2, 2023, models.CurrencyUSD, rate)
		testutil.AssertNoError(t, err)
		if !totals.In.Equal(dec(50)) {
			t.Errorf("expected legacy row in March 2023, got monthIn %s", totals.In)
		}
	})

	t.Run("unparseable_date_falls_back_to_current_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Date: "whenever", Amount: "50", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})

		now := time.Now()
		totals, err := svc.MonthlyTotals(int(now.Month())-1, now.Year(), models.CurrencyUSD, rate)
		testutil.AssertNoError(t, err)
		if !totals.In.Equal(dec(50)) {
			t.Errorf("expected unparseable row in current month, got monthIn %s", totals.In)
		}
	})
}

func TestGlobalTotals(t *testing.T) {
	t.Run("signed_per_native_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		janM, janY := testutil.Period(0, 2024)
		decM, decY := testutil.Period(11, 2023)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: janM, Year: janY, Amount: "100", Type: models.TransactionTypeIn, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: decM, Year: decY, Amount: "30", Type: models.TransactionTypeOut, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: janM, Year: janY, Amount: "500", Type: models.TransactionTypeIn, Currency: models.CurrencyBS,
		})

		totals, err := svc.GlobalTotals()
		testutil.AssertNoError(t, err)

		if !totals.USD.Equal(dec(70)) {
			t.Errorf("expected nUSD 70, got %s", totals.USD)
		}
		if !totals.BS.Equal(dec(500)) {
			t.Errorf("expected nBS 500, got %s", totals.BS)
		}
	})
}

func TestVisibleRows(t *testing.T) {
	rate := dec(36.5)

	t.Run("month_navigation_isolates_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		janM, janY := testutil.Period(0, 2024)
		febM, febY := testutil.Period(1, 2024)
		a := testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			ID: 1, Month: janM, Year: janY, Desc: "A", Currency: models.CurrencyUSD,
		})
		b := testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			ID: 2, Month: febM, Year: febY, Desc: "B", Currency: models.CurrencyUSD,
		})

		feb, err := svc.VisibleRows(1, 2024, models.CurrencyUSD, rate, "")
		testutil.AssertNoError(t, err)
		if len(feb) != 1 || feb[0].ID != b.ID {
			t.Fatalf("expected only tx B in February, got %v", feb)
		}

		jan, err := svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "")
		testutil.AssertNoError(t, err)
		if len(jan) != 1 || jan[0].ID != a.ID {
			t.Fatalf("expected only tx A in January, got %v", jan)
		}
	})

	t.Run("native_currency_must_match_display_mode", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(0, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Currency: models.CurrencyBS,
		})

		rows, err := svc.VisibleRows(0, 2024, models.CurrencyBS, rate, "")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 BS row, got %d", len(rows))
		}
		if rows[0].Currency != models.CurrencyBS {
			t.Errorf("expected BS row, got %s", rows[0].Currency)
		}
	})

	t.Run("sorted_by_id_descending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(0, 2024)
		for i := int64(1); i <= 4; i++ {
			testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
				ID: i * 100, Month: m, Year: y, Currency: models.CurrencyUSD,
			})
		}

		rows, err := svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "")
		testutil.AssertNoError(t, err)
		for i := 1; i < len(rows); i++ {
			if rows[i-1].ID <= rows[i].ID {
				t.Fatalf("expected descending ids, got %d before %d", rows[i-1].ID, rows[i].ID)
			}
		}
	})

	t.Run("search_matches_description_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(0, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Desc: "Lunch downtown", Category: "Food", Currency: models.CurrencyUSD,
		})
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Desc: "Taxi", Category: "Transport", Currency: models.CurrencyUSD,
		})

		// Query matching only the category must still surface the row.
		rows, err := svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "FOOD")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 || rows[0].Category != "Food" {
			t.Fatalf("expected the Food row, got %v", rows)
		}

		rows, err = svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "lunch")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row for desc match, got %d", len(rows))
		}

		rows, err = svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "nothing")
		testutil.AssertNoError(t, err)
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	})

	t.Run("projects_display_strings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		m, y := testutil.Period(0, 2024)
		testutil.CreateTestTransaction(t, db, testutil.TransactionFixture{
			Month: m, Year: y, Desc: "Groceries", Amount: "100",
			Type: models.TransactionTypeOut, Currency: models.CurrencyUSD,
		})

		rows, err := svc.VisibleRows(0, 2024, models.CurrencyUSD, rate, "")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}

		row := rows[0]
		if row.TypeLabel != "GASTO" {
			t.Errorf("expected label GASTO, got %s", row.TypeLabel)
		}
		if row.Primary != "-$ 100.00" {
			t.Errorf("expected primary -$ 100.00, got %s", row.Primary)
		}
		if row.Secondary != "-3.650,00 Bs" {
			t.Errorf("expected secondary -3.650,00 Bs, got %s", row.Secondary)
		}
		if row.Category != "Otros" {
			t.Errorf("expected default category Otros, got %s", row.Category)
		}
	})
}
