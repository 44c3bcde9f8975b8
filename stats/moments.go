package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MomentsResult holds population moments of a sample.
type MomentsResult struct {
	N        int
	Mean     float64
	Variance float64 // Σ(x-mean)²/n
	StdDev   float64
	Skewness float64 // [Σ(x-mean)³/n] / StdDev³
}

// Moments computes population (not Bessel-corrected) moments of x.
// Returns nil for an empty slice. Skewness is NaN or ±Inf when StdDev is 0.
func Moments(x []float64) *MomentsResult {
	n := len(x)
	if n == 0 {
		return nil
	}

	mean, variance := stat.PopMeanVariance(x, nil)
	std := math.Sqrt(variance)
	m3 := stat.Moment(3, x, nil)

	return &MomentsResult{
		N:        n,
		Mean:     mean,
		Variance: variance,
		StdDev:   std,
		Skewness: m3 / (std * std * std),
	}
}
