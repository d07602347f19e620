package pricestats

import (
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// EstimateMethod names the reduction that produced the point estimate.
type EstimateMethod string

const (
	MethodWeightedAverage EstimateMethod = "weighted_average"
	MethodMedianBlend     EstimateMethod = "median_weighted_blend"
	MethodMedian          EstimateMethod = "median"
)

// Coefficient-of-variation tiers for picking the estimate method. A tight
// sample can trust the relevance-weighted mean; a noisy one only the median.
const (
	cvWeightedCeiling = 0.25
	cvBlendCeiling    = 0.40
)

// Estimate is the robust price reduction of one filtered sample.
type Estimate struct {
	Value           float64               `json:"value"`
	Method          EstimateMethod        `json:"method"`
	Confidence      float64               `json:"confidence"`
	Level           enums.ConfidenceLevel `json:"level"`
	SampleSize      int                   `json:"sample_size"`
	OutliersRemoved int                   `json:"outliers_removed"`
	MeanRelevance   float64               `json:"mean_relevance"`
	Statistics      Statistics            `json:"statistics"`
}

// EstimatePrice removes outliers, reduces the survivors to a point estimate
// chosen by the sample's coefficient of variation, and grades confidence.
func EstimatePrice(samples []Sample) (Estimate, error) {
	if len(samples) == 0 {
		return Estimate{}, ErrEmptySample
	}

	trimmed := RemoveOutliers(samples)
	if len(trimmed) == 0 {
		// MAD/IQR can only shrink the set, never empty it, but guard the
		// invariant anyway.
		trimmed = samples
	}

	prices := make([]float64, len(trimmed))
	for i, sample := range trimmed {
		prices[i] = sample.Price
	}
	stats, err := Calculate(prices)
	if err != nil {
		return Estimate{}, err
	}

	cv := 0.0
	if stats.Mean > 0 {
		cv = stats.StdDev / stats.Mean
	}

	var value float64
	var method EstimateMethod
	switch {
	case cv <= cvWeightedCeiling:
		value = weightedAverage(trimmed)
		method = MethodWeightedAverage
	case cv <= cvBlendCeiling:
		value = (stats.Median + weightedAverage(trimmed)) / 2
		method = MethodMedianBlend
	default:
		value = stats.Median
		method = MethodMedian
	}

	meanRelevance := meanRelevance(trimmed)
	outliersRemoved := len(samples) - len(trimmed)
	outlierRatio := float64(outliersRemoved) / float64(len(samples))
	confidence := confidenceScore(len(trimmed), meanRelevance, cv, outlierRatio)

	return Estimate{
		Value:           value,
		Method:          method,
		Confidence:      confidence,
		Level:           confidenceLevel(confidence, len(trimmed)),
		SampleSize:      len(trimmed),
		OutliersRemoved: outliersRemoved,
		MeanRelevance:   meanRelevance,
		Statistics:      stats,
	}, nil
}

// weightedAverage weights each price by its relevance score. A sample with
// no usable weights degrades to the plain mean.
func weightedAverage(samples []Sample) float64 {
	totalWeight := 0.0
	weightedSum := 0.0
	for _, sample := range samples {
		if sample.Relevance <= 0 {
			continue
		}
		totalWeight += sample.Relevance
		weightedSum += sample.Price * sample.Relevance
	}
	if totalWeight == 0 {
		sum := 0.0
		for _, sample := range samples {
			sum += sample.Price
		}
		return sum / float64(len(samples))
	}
	return weightedSum / totalWeight
}

func meanRelevance(samples []Sample) float64 {
	total := 0.0
	for _, sample := range samples {
		total += sample.Relevance
	}
	return total / float64(len(samples))
}

// confidenceScore sums four graded signals into [0,1]: sample size, mean
// relevance, price dispersion, and how much of the raw sample was outliers.
func confidenceScore(sampleSize int, meanRelevance, cv, outlierRatio float64) float64 {
	score := 0.0

	switch {
	case sampleSize >= 15:
		score += 0.35
	case sampleSize >= 8:
		score += 0.25
	case sampleSize >= 4:
		score += 0.15
	default:
		score += 0.05
	}

	score += 0.25 * clamp01(meanRelevance)

	switch {
	case cv <= 0.15:
		score += 0.25
	case cv <= 0.30:
		score += 0.15
	case cv <= 0.50:
		score += 0.08
	}

	switch {
	case outlierRatio <= 0.10:
		score += 0.15
	case outlierRatio <= 0.25:
		score += 0.08
	}

	return clamp01(score)
}

// confidenceLevel buckets the numeric score. Fewer than three surviving
// samples is INSUFFICIENT no matter how clean they look.
func confidenceLevel(score float64, sampleSize int) enums.ConfidenceLevel {
	if sampleSize < 3 {
		return enums.ConfidenceInsufficient
	}
	switch {
	case score >= 0.75:
		return enums.ConfidenceHigh
	case score >= 0.50:
		return enums.ConfidenceMedium
	case score >= 0.30:
		return enums.ConfidenceLow
	default:
		return enums.ConfidenceInsufficient
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
