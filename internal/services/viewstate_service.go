package services

import (
	"fmt"
	"sync"
	"time"

	"patrimonio/internal/models"
)

// monthNames are the Spanish month headers shown by the client.
var monthNames = [12]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// viewStateService owns the transient filter state: display mode,
// active rate key, calendar window, and search query. It is never
// persisted; a restart resets it to the current month with USD mode
// and the official rate.
type viewStateService struct {
	mu      sync.Mutex
	mode    models.Currency
	rateKey models.RateKey
	month   int // 0-11
	year    int
	query   string
}

// NewViewStateService creates a ViewStateServicer positioned on the
// current calendar month.
func NewViewStateService() ViewStateServicer {
	now := time.Now()
	return &viewStateService{
		mode:    models.CurrencyUSD,
		rateKey: models.RateKeyOfficial,
		month:   int(now.Month()) - 1,
		year:    now.Year(),
	}
}

// Snapshot returns a copy of the current state.
func (s *viewStateService) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *viewStateService) snapshotLocked() ViewState {
	return ViewState{
		DisplayMode:   s.mode,
		ActiveRateKey: s.rateKey,
		Month:         s.month,
		Year:          s.year,
		MonthLabel:    fmt.Sprintf("%s %d", monthNames[s.month], s.year),
		SearchQuery:   s.query,
	}
}

// SetMode switches the primary display currency.
func (s *viewStateService) SetMode(mode models.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetRateKey switches the rate driving conversions.
func (s *viewStateService) SetRateKey(key models.RateKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateKey = key
}

// SetQuery updates the search text.
func (s *viewStateService) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// ShiftMonth moves the calendar window by delta months, wrapping
// across year boundaries, and returns the resulting state.
func (s *viewStateService) ShiftMonth(delta int) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.month += delta
	for s.month > 11 {
		s.month -= 12
		s.year++
	}
	for s.month < 0 {
		s.month += 12
		s.year--
	}
	return s.snapshotLocked()
}
