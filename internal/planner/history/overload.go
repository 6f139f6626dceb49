package history

import "math"

const (
	MinOverloadFactor     = 1.05
	MaxOverloadFactor     = 1.10
	DefaultOverloadFactor = 1.075

	loadRoundingStep = 0.5
)

// RecommendLoad returns the next-cycle working load for an exercise whose
// historical max is maxWeight. The result is rounded to the nearest 0.5 and
// always falls within [1.05, 1.10] x maxWeight. Non-positive input yields 0.
func RecommendLoad(maxWeight float64) float64 {
	if maxWeight <= 0 {
		return 0
	}

	recommended := math.Round(maxWeight*DefaultOverloadFactor/loadRoundingStep) * loadRoundingStep
	return clampLoad(recommended, maxWeight)
}

// OverloadTarget picks the load for a proposed exercise. A proposed weight
// already within the overload range of the history max is kept, anything else
// is replaced with RecommendLoad.
func OverloadTarget(proposed *float64, maxWeight float64) float64 {
	if maxWeight <= 0 {
		if proposed != nil {
			return *proposed
		}
		return 0
	}

	if proposed != nil &&
		*proposed >= maxWeight*MinOverloadFactor &&
		*proposed <= maxWeight*MaxOverloadFactor {
		return *proposed
	}

	return RecommendLoad(maxWeight)
}

func clampLoad(load, maxWeight float64) float64 {
	lo, hi := maxWeight*MinOverloadFactor, maxWeight*MaxOverloadFactor
	return math.Max(lo, math.Min(hi, load))
}
