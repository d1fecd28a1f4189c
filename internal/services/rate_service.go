package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"patrimonio/internal/logger"
	"patrimonio/internal/models"
	"patrimonio/internal/ratesync"
)

// rateRecordID is the primary key of the single persisted rate row.
const rateRecordID = 1

// rateService holds the current exchange rates in memory and persists
// them on every successful refresh. Reads never block on the network;
// until the first sync completes callers see the persisted or default
// rates with a "pending" status.
type rateService struct {
	db     *gorm.DB
	offset decimal.Decimal

	mu      sync.RWMutex
	current models.RateSet
	status  models.SyncStatus
}

// NewRateService loads the persisted rates (or the hardcoded defaults)
// and returns a RateServicer. alternateOffset is subtracted from the
// parallel rate to derive the alternate-market rate.
func NewRateService(db *gorm.DB, alternateOffset decimal.Decimal) RateServicer {
	s := &rateService{
		db:     db,
		offset: alternateOffset,
		status: models.SyncStatus{State: models.SyncStatePending, UpdatedAt: time.Now()},
	}
	s.current = s.load()
	return s
}

// load returns the persisted RateSet, falling back to defaults when no
// row exists or the read fails.
func (s *rateService) load() models.RateSet {
	var record models.RateRecord
	if err := s.db.First(&record, rateRecordID).Error; err != nil {
		return models.DefaultRates()
	}
	return record.Set()
}

// Current returns the active RateSet.
func (s *rateService) Current() models.RateSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Rate returns the rate for the given key.
func (s *rateService) Rate(key models.RateKey) decimal.Decimal {
	return s.Current().Rate(key)
}

// Apply folds a sync outcome into the rate store. On fetch failure the
// previous rates are kept and the status flips to offline; this is the
// normal offline path, not an error. On success each missing quote
// keeps its previous value, the euro rate is derived from the official
// rate, the alternate rate from the parallel rate, and the result is
// persisted.
func (s *rateService) Apply(quotes ratesync.Quotes, fetchErr error) models.RateSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fetchErr != nil {
		logger.Get().Warnw("rate sync failed, staying on stored rates", "error", fetchErr.Error())
		s.status = models.SyncStatus{
			State:     models.SyncStateOffline,
			Reason:    fetchErr.Error(),
			UpdatedAt: time.Now(),
		}
		return s.current
	}

	next := s.current
	if quotes.Official != nil {
		next.Official = *quotes.Official
	}
	if quotes.Parallel != nil {
		next.Parallel = *quotes.Parallel
	}
	if quotes.EurPerUSD != nil && !quotes.EurPerUSD.IsZero() {
		next.Euro = next.Official.Div(*quotes.EurPerUSD)
	}
	next.Alternate = next.Parallel.Sub(s.offset)

	s.current = next
	s.status = models.SyncStatus{State: models.SyncStateLive, UpdatedAt: time.Now()}
	s.persist(next)

	return next
}

// persist upserts the single rate row. A write failure is logged and
// tolerated; the in-memory rates stay authoritative for the session.
func (s *rateService) persist(set models.RateSet) {
	record := models.RateRecord{
		ID:        rateRecordID,
		Official:  set.Official,
		Euro:      set.Euro,
		Alternate: set.Alternate,
		Parallel:  set.Parallel,
	}
	if err := s.db.Save(&record).Error; err != nil {
		logger.Get().Errorw("failed to persist rates", "error", err.Error())
	}
}

// Status reports whether the current rates came from a live fetch.
func (s *rateService) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
