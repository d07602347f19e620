// Package pricestats reduces noisy comparable-sale prices into a robust
// point estimate with a confidence grade.
package pricestats

import (
	"errors"
	"math"
	"sort"
)

// Sample pairs one surviving comparable's price with its relevance score.
type Sample struct {
	Price     float64 `json:"price"`
	Relevance float64 `json:"relevance"`
}

// Statistics summarizes one price list.
type Statistics struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	TrimmedMean  float64 `json:"trimmed_mean"`
	StdDev       float64 `json:"std_dev"`
	Variance     float64 `json:"variance"`
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
	IQR          float64 `json:"iqr"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Count        int     `json:"count"`
	OutlierCount int     `json:"outlier_count"`
}

// ErrEmptySample is returned when there are no prices to reduce.
var ErrEmptySample = errors.New("pricestats: empty price list")

// Calculate computes the full summary for a list of positive prices.
func Calculate(prices []float64) (Statistics, error) {
	if len(prices) == 0 {
		return Statistics{}, ErrEmptySample
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	stats := Statistics{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean(sorted),
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
	}
	stats.IQR = stats.Q3 - stats.Q1
	stats.TrimmedMean = trimmedMean(sorted, 0.10)
	stats.Variance = populationVariance(sorted, stats.Mean)
	stats.StdDev = math.Sqrt(stats.Variance)
	stats.OutlierCount = countIQROutliers(sorted, stats.Q1, stats.Q3, defaultIQRMultiplier)

	return stats, nil
}

// quantile interpolates linearly at index (n-1)*p over sorted input.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	index := float64(len(sorted)-1) * p
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	fraction := index - float64(lower)
	return sorted[lower] + fraction*(sorted[upper]-sorted[lower])
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// trimmedMean drops floor(n*fraction) values from each end before averaging.
func trimmedMean(sorted []float64, fraction float64) float64 {
	drop := int(math.Floor(float64(len(sorted)) * fraction))
	trimmed := sorted[drop : len(sorted)-drop]
	if len(trimmed) == 0 {
		return mean(sorted)
	}
	return mean(trimmed)
}

func populationVariance(values []float64, mu float64) float64 {
	total := 0.0
	for _, v := range values {
		delta := v - mu
		total += delta * delta
	}
	return total / float64(len(values))
}

func countIQROutliers(sorted []float64, q1, q3, k float64) int {
	iqr := q3 - q1
	lower := q1 - k*iqr
	upper := q3 + k*iqr
	count := 0
	for _, v := range sorted {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}
