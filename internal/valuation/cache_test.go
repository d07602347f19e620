package valuation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/pricestats"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

func TestCacheEntryFresh(t *testing.T) {
	now := time.Now().UTC()
	entry := CacheEntry{ExpiresAt: now.Add(time.Hour)}
	require.True(t, entry.Fresh(now))
	require.False(t, entry.Fresh(now.Add(2*time.Hour)))
	require.False(t, entry.Fresh(entry.ExpiresAt), "expiry instant is no longer fresh")
}

func TestCacheEntryJSONRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	entry := CacheEntry{
		Kind:       enums.ComponentGPU,
		Query:      "rtx 3080",
		BestPrice:  642.5,
		Method:     pricestats.MethodWeightedAverage,
		Confidence: 0.82,
		Level:      enums.ConfidenceHigh,
		SampleSize: 17,
		Statistics: pricestats.Statistics{Mean: 640, Median: 645, Count: 17},
		FetchedAt:  now,
		ExpiresAt:  now.Add(24 * time.Hour),
	}

	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded CacheEntry
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, entry, decoded)
}
