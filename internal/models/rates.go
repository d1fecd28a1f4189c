package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateKey selects which exchange rate drives display conversions.
type RateKey string

const (
	RateKeyOfficial  RateKey = "official"
	RateKeyEuro      RateKey = "euro"
	RateKeyAlternate RateKey = "alternate"
	RateKeyParallel  RateKey = "parallel"
)

// RateSet holds the four current exchange rates, each expressed as
// local-currency units (Bs) per one foreign-currency unit. All four
// values are always defined and positive.
type RateSet struct {
	Official  decimal.Decimal `json:"official"`
	Euro      decimal.Decimal `json:"euro"`
	Alternate decimal.Decimal `json:"alternate"`
	Parallel  decimal.Decimal `json:"parallel"`
}

// DefaultRates returns the hardcoded fallback rates used when nothing
// has been persisted yet.
func DefaultRates() RateSet {
	return RateSet{
		Official:  decimal.NewFromFloat(36.5),
		Euro:      decimal.NewFromFloat(39.27),
		Alternate: decimal.NewFromFloat(37.8),
		Parallel:  decimal.NewFromFloat(38.5),
	}
}

// ParseRateKey validates a rate key string. The boolean reports
// whether the key names one of the four rates.
func ParseRateKey(s string) (RateKey, bool) {
	switch key := RateKey(s); key {
	case RateKeyOfficial, RateKeyEuro, RateKeyAlternate, RateKeyParallel:
		return key, true
	default:
		return "", false
	}
}

// Rate returns the rate for the given key. Unknown keys fall back to
// the official rate.
func (r RateSet) Rate(key RateKey) decimal.Decimal {
	switch key {
	case RateKeyEuro:
		return r.Euro
	case RateKeyAlternate:
		return r.Alternate
	case RateKeyParallel:
		return r.Parallel
	default:
		return r.Official
	}
}

// RateRecord is the single persisted row backing the rate store.
type RateRecord struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	Official  decimal.Decimal `gorm:"type:numeric;not null" json:"official"`
	Euro      decimal.Decimal `gorm:"type:numeric;not null" json:"euro"`
	Alternate decimal.Decimal `gorm:"type:numeric;not null" json:"alternate"`
	Parallel  decimal.Decimal `gorm:"type:numeric;not null" json:"parallel"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Set converts the record into a RateSet.
func (r *RateRecord) Set() RateSet {
	return RateSet{Official: r.Official, Euro: r.Euro, Alternate: r.Alternate, Parallel: r.Parallel}
}

// SyncState reports whether the current rates came from a live fetch.
type SyncState string

const (
	SyncStatePending SyncState = "pending"
	SyncStateLive    SyncState = "live"
	SyncStateOffline SyncState = "offline"
)

// SyncStatus is the user-visible indicator distinguishing live rates
// from persisted/default fallbacks.
type SyncStatus struct {
	State     SyncState `json:"state"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
