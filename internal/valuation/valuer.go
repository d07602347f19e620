package valuation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/pricestats"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/relevance"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/search"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/metrics"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/redis"
)

// ErrNoComparableData means the search returned nothing usable for the
// component, fresh or stale.
var ErrNoComparableData = errors.New(errors.CodeDependency, "no comparable sales data for component")

// lockRetryDelay is how long to wait before re-reading the cache when
// another worker holds the fetch lock for the same key.
const lockRetryDelay = 200 * time.Millisecond

// Result is a valuation plus provenance: whether it was served from cache
// and whether the entry had already passed its logical expiry.
type Result struct {
	CacheEntry
	CacheHit bool `json:"cache_hit"`
	Stale    bool `json:"stale"`
}

// Valuer prices a single component by searching comparable sales, filtering
// for relevance, and reducing the survivors to a robust estimate. Results
// are cached per normalized query with a stale-fallback read path.
type Valuer struct {
	search  search.Client
	cache   CacheStore
	metrics *metrics.ValuationMetrics
	cfg     config.ValuationConfig
	log     *logger.Logger
}

func NewValuer(searchClient search.Client, cache CacheStore, vm *metrics.ValuationMetrics, cfg config.ValuationConfig, log *logger.Logger) *Valuer {
	return &Valuer{
		search:  searchClient,
		cache:   cache,
		metrics: vm,
		cfg:     cfg,
		log:     log,
	}
}

// Appraise returns the market value of one extracted component string.
func (v *Valuer) Appraise(ctx context.Context, kind enums.ComponentKind, rawQuery string) (*Result, error) {
	query := NormalizeQuery(rawQuery)
	if query == "" {
		return nil, errors.New(errors.CodeValidation, "component query is empty")
	}
	ctx = v.log.WithComponent(v.log.WithQuery(ctx, query), kind.String())

	key := v.cache.ValuationKey(kind.String(), query)
	now := time.Now().UTC()

	if entry, ok := v.readEntry(ctx, key); ok && entry.Fresh(now) {
		v.metrics.IncCacheHit(kind.String())
		return &Result{CacheEntry: *entry, CacheHit: true}, nil
	}
	v.metrics.IncCacheMiss(kind.String())

	lockKey := v.cache.ValuationLockKey(kind.String(), query)
	acquired, err := v.cache.SetNX(ctx, lockKey, "1", v.cfg.LockTTL)
	if err != nil {
		// Lock failures degrade to duplicate work, not wrong answers.
		v.log.Warn(ctx, "valuation lock unavailable, fetching without it")
		acquired = true
	} else if acquired {
		defer func() {
			if delErr := v.cache.Del(context.WithoutCancel(ctx), lockKey); delErr != nil {
				v.log.Warn(ctx, "releasing valuation lock failed")
			}
		}()
	}

	if !acquired {
		// Another worker is already fetching this key. Give it a moment,
		// then take whatever landed in the cache before fetching ourselves.
		select {
		case <-time.After(lockRetryDelay):
		case <-ctx.Done():
			return nil, errors.Wrap(errors.CodeDependency, ctx.Err(), "valuation canceled while waiting on lock")
		}
		if entry, ok := v.readEntry(ctx, key); ok && entry.Fresh(time.Now().UTC()) {
			v.metrics.IncCacheHit(kind.String())
			return &Result{CacheEntry: *entry, CacheHit: true}, nil
		}
	}

	entry, liveErr := v.fetchLive(ctx, kind, query, now)
	if liveErr == nil {
		v.writeEntry(ctx, key, entry)
		return &Result{CacheEntry: *entry}, nil
	}

	// Live fetch failed. An expired entry beats no answer.
	if stale, ok := v.readEntry(ctx, key); ok {
		v.metrics.IncStaleServe(kind.String())
		v.log.Warn(ctx, "serving stale valuation after failed live fetch")
		return &Result{CacheEntry: *stale, CacheHit: true, Stale: true}, nil
	}
	return nil, liveErr
}

func (v *Valuer) fetchLive(ctx context.Context, kind enums.ComponentKind, query string, now time.Time) (*CacheEntry, error) {
	kindCfg := relevance.ConfigFor(kind)
	filters := search.Filters{
		CategoryHints: []string{kind.String()},
	}
	if kindCfg.MinPrice > 0 {
		min := kindCfg.MinPrice
		filters.PriceMin = &min
	}
	if kindCfg.MaxPrice > 0 {
		max := kindCfg.MaxPrice
		filters.PriceMax = &max
	}

	start := time.Now()
	items, err := v.search.Search(ctx, query, filters)
	v.metrics.ObserveSearchDuration(kind.String(), time.Since(start))
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "searching comparable sales")
	}

	filtered := relevance.Filter(items, query, kind, relevance.Options{MaxResults: v.cfg.MaxFilteredItems})
	if len(filtered) == 0 {
		return nil, ErrNoComparableData
	}

	samples := make([]pricestats.Sample, len(filtered))
	for i, item := range filtered {
		samples[i] = pricestats.Sample{Price: item.Price, Relevance: item.RelevanceScore}
	}
	estimate, err := pricestats.EstimatePrice(samples)
	if err != nil {
		return nil, ErrNoComparableData
	}

	return &CacheEntry{
		Kind:       kind,
		Query:      query,
		BestPrice:  estimate.Value,
		Method:     estimate.Method,
		Confidence: estimate.Confidence,
		Level:      estimate.Level,
		SampleSize: estimate.SampleSize,
		Statistics: estimate.Statistics,
		FetchedAt:  now,
		ExpiresAt:  now.Add(v.cfg.CacheTTL),
	}, nil
}

func (v *Valuer) readEntry(ctx context.Context, key string) (*CacheEntry, bool) {
	raw, err := v.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsNotFound(err) {
			v.log.Warn(ctx, "valuation cache read failed, treating as miss")
		}
		return nil, false
	}
	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		v.log.Warn(ctx, "corrupt valuation cache entry, treating as miss")
		return nil, false
	}
	return &entry, true
}

func (v *Valuer) writeEntry(ctx context.Context, key string, entry *CacheEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		v.log.Error(ctx, "encoding valuation cache entry", err)
		return
	}
	// Physical retention is a multiple of the logical TTL so the stale
	// fallback has something to read after expiry.
	if err := v.cache.Set(ctx, key, string(payload), v.cfg.StaleWindow()); err != nil {
		v.log.Warn(ctx, "valuation cache write failed")
	}
}
