package valuation

import (
	"context"
	"strings"
	"time"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/pricestats"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// CacheEntry is the serialized result of one component valuation. Entries
// outlive their logical expiry in storage so a failed live fetch can still
// serve last-known-good numbers.
type CacheEntry struct {
	Kind       enums.ComponentKind       `json:"kind"`
	Query      string                    `json:"query"`
	BestPrice  float64                   `json:"best_price"`
	Method     pricestats.EstimateMethod `json:"method"`
	Confidence float64                   `json:"confidence"`
	Level      enums.ConfidenceLevel     `json:"level"`
	SampleSize int                       `json:"sample_size"`
	Statistics pricestats.Statistics     `json:"statistics"`
	FetchedAt  time.Time                 `json:"fetched_at"`
	ExpiresAt  time.Time                 `json:"expires_at"`
}

// Fresh reports whether the entry is still inside its logical TTL.
func (e CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// CacheStore is the slice of the Redis client the valuer needs.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	ValuationKey(kind, normalizedQuery string) string
	ValuationLockKey(kind, normalizedQuery string) string
}

// NormalizeQuery folds a raw component string into the canonical cache form:
// lowercase with runs of whitespace collapsed to single spaces.
func NormalizeQuery(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
