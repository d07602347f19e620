package pricestats

import (
	"math"
	"sort"
)

const (
	defaultIQRMultiplier = 1.5

	// Modified z-score constants for the MAD fallback.
	madScale  = 0.6745
	madCutoff = 3.5

	// meanADScale substitutes when the MAD itself degenerates to zero.
	meanADScale = 0.7979
)

// RemoveOutliers drops samples whose price is an outlier. IQR fencing is
// used when the sample is large enough and has spread; otherwise it falls
// back to MAD-based modified z-scores, which stay stable when most prices
// are near-identical.
func RemoveOutliers(samples []Sample) []Sample {
	if len(samples) == 0 {
		return nil
	}

	sorted := sortedPrices(samples)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	if len(samples) >= 4 && iqr > 0 {
		return removeByIQRFence(samples, q1, q3, defaultIQRMultiplier)
	}
	return removeByMAD(samples, sorted)
}

func removeByIQRFence(samples []Sample, q1, q3, k float64) []Sample {
	lower := q1 - k*(q3-q1)
	upper := q3 + k*(q3-q1)

	kept := make([]Sample, 0, len(samples))
	for _, sample := range samples {
		if sample.Price >= lower && sample.Price <= upper {
			kept = append(kept, sample)
		}
	}
	return kept
}

func removeByMAD(samples []Sample, sorted []float64) []Sample {
	med := quantile(sorted, 0.5)

	deviations := make([]float64, len(sorted))
	for i, price := range sorted {
		deviations[i] = math.Abs(price - med)
	}
	sort.Float64s(deviations)
	mad := quantile(deviations, 0.5)

	scale := madScale
	spread := mad
	if mad == 0 {
		// Over half the sample sits exactly on the median. Fall back to the
		// mean absolute deviation so a lone extreme value still gets caught.
		spread = mean(deviations)
		scale = meanADScale
		if spread == 0 {
			// Truly identical prices; nothing to reject.
			return samples
		}
	}

	kept := make([]Sample, 0, len(samples))
	for _, sample := range samples {
		z := scale * (sample.Price - med) / spread
		if math.Abs(z) <= madCutoff {
			kept = append(kept, sample)
		}
	}
	return kept
}

func sortedPrices(samples []Sample) []float64 {
	prices := make([]float64, len(samples))
	for i, sample := range samples {
		prices[i] = sample.Price
	}
	sort.Float64s(prices)
	return prices
}
