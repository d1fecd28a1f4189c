package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
	"patrimonio/internal/ratesync"
	"patrimonio/internal/testutil"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

var defaultOffset = decimal.NewFromFloat(0.25)

func TestRateServiceLoad(t *testing.T) {
	t.Run("defaults_when_nothing_persisted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		current := svc.Current()
		if !current.Official.Equal(dec(36.5)) {
			t.Errorf("expected default official 36.5, got %s", current.Official)
		}
		if !current.Euro.Equal(dec(39.27)) {
			t.Errorf("expected default euro 39.27, got %s", current.Euro)
		}
		if !current.Alternate.Equal(dec(37.8)) {
			t.Errorf("expected default alternate 37.8, got %s", current.Alternate)
		}
		if !current.Parallel.Equal(dec(38.5)) {
			t.Errorf("expected default parallel 38.5, got %s", current.Parallel)
		}
		if svc.Status().State != models.SyncStatePending {
			t.Errorf("expected pending status, got %s", svc.Status().State)
		}
	})

	t.Run("persisted_rates_win_over_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		record := models.RateRecord{
			ID:        1,
			Official:  dec(40),
			Euro:      dec(42),
			Alternate: dec(43.75),
			Parallel:  dec(44),
		}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("failed to seed rates: %v", err)
		}

		svc := NewRateService(db, defaultOffset)
		if !svc.Current().Official.Equal(dec(40)) {
			t.Errorf("expected persisted official 40, got %s", svc.Current().Official)
		}
	})
}

func TestRateServiceApply(t *testing.T) {
	t.Run("refresh_computes_all_four_rates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		got := svc.Apply(ratesync.Quotes{
			Official:  decPtr(37.0),
			Parallel:  decPtr(39.0),
			EurPerUSD: decPtr(1.08),
		}, nil)

		if !got.Official.Equal(dec(37.0)) {
			t.Errorf("expected official 37.0, got %s", got.Official)
		}
		if !got.Parallel.Equal(dec(39.0)) {
			t.Errorf("expected parallel 39.0, got %s", got.Parallel)
		}
		if !got.Alternate.Equal(dec(38.75)) {
			t.Errorf("expected alternate 38.75, got %s", got.Alternate)
		}
		wantEuro := dec(37.0).Div(dec(1.08))
		if !got.Euro.Equal(wantEuro) {
			t.Errorf("expected euro %s, got %s", wantEuro, got.Euro)
		}
		if got.Euro.Round(2).String() != "34.26" {
			t.Errorf("expected euro to round to 34.26, got %s", got.Euro.Round(2))
		}
		if svc.Status().State != models.SyncStateLive {
			t.Errorf("expected live status, got %s", svc.Status().State)
		}
	})

	t.Run("missing_quotes_keep_previous_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		got := svc.Apply(ratesync.Quotes{Parallel: decPtr(39.0)}, nil)

		if !got.Official.Equal(dec(36.5)) {
			t.Errorf("expected official to stay 36.5, got %s", got.Official)
		}
		if !got.Euro.Equal(dec(39.27)) {
			t.Errorf("expected euro to stay 39.27, got %s", got.Euro)
		}
		if !got.Alternate.Equal(dec(38.75)) {
			t.Errorf("expected alternate 38.75, got %s", got.Alternate)
		}
	})

	t.Run("fetch_failure_keeps_rates_and_goes_offline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		before := svc.Current()
		got := svc.Apply(ratesync.Quotes{}, errors.New("connection refused"))

		if !got.Official.Equal(before.Official) || !got.Parallel.Equal(before.Parallel) {
			t.Error("expected rates to be unchanged after failed fetch")
		}
		status := svc.Status()
		if status.State != models.SyncStateOffline {
			t.Errorf("expected offline status, got %s", status.State)
		}
		if status.Reason == "" {
			t.Error("expected offline reason to be recorded")
		}
	})

	t.Run("successful_refresh_is_persisted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		svc.Apply(ratesync.Quotes{Official: decPtr(37.0), Parallel: decPtr(39.0)}, nil)

		// A fresh service instance must see the persisted rates.
		again := NewRateService(db, defaultOffset)
		if !again.Current().Official.Equal(dec(37.0)) {
			t.Errorf("expected reloaded official 37.0, got %s", again.Current().Official)
		}
	})

	t.Run("zero_eur_rate_leaves_euro_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, defaultOffset)

		zero := decimal.Zero
		got := svc.Apply(ratesync.Quotes{Official: decPtr(37.0), EurPerUSD: &zero}, nil)
		if !got.Euro.Equal(dec(39.27)) {
			t.Errorf("expected euro to stay 39.27, got %s", got.Euro)
		}
	})

	t.Run("configurable_offset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, dec(0.5))

		got := svc.Apply(ratesync.Quotes{Parallel: decPtr(40.0)}, nil)
		if !got.Alternate.Equal(dec(39.5)) {
			t.Errorf("expected alternate 39.5, got %s", got.Alternate)
		}
	})
}

func TestRateSetRate(t *testing.T) {
	set := models.RateSet{
		Official:  dec(36.5),
		Euro:      dec(39.27),
		Alternate: dec(37.8),
		Parallel:  dec(38.5),
	}

	cases := []struct {
		key  models.RateKey
		want decimal.Decimal
	}{
		{models.RateKeyOfficial, dec(36.5)},
		{models.RateKeyEuro, dec(39.27)},
		{models.RateKeyAlternate, dec(37.8)},
		{models.RateKeyParallel, dec(38.5)},
	}
	for _, c := range cases {
		if got := set.Rate(c.key); !got.Equal(c.want) {
			t.Errorf("Rate(%s): expected %s, got %s", c.key, c.want, got)
		}
	}
}
