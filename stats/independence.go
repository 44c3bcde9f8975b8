package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinIndependenceSamples is the smallest sample size LjungBox accepts.
const MinIndependenceSamples = 10

// Autocorrelation returns the sample autocorrelation of x for lags 0 to maxLag.
// Returns nil when x is empty or has zero variance.
func Autocorrelation(x []float64, maxLag int) []float64 {
	n := len(x)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(x, nil)
	denom := 0.0
	for _, v := range x {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (x[i] - mean) * (x[i-k] - mean)
		}
		acf[k] = sum / denom
	}
	return acf
}

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
}

// Independent reports whether the test fails to reject independence at alpha.
func (r *LjungBoxResult) Independent(alpha float64) bool {
	return r.PValue >= alpha
}

// LjungBox tests the null hypothesis that x has no autocorrelation up to lag
// lags. Returns nil for fewer than MinIndependenceSamples values, a
// non-positive lag count or a constant sample.
func LjungBox(x []float64, lags int) *LjungBoxResult {
	n := len(x)
	if n < MinIndependenceSamples || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := Autocorrelation(x, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	chi := distuv.ChiSquared{K: float64(lags)}
	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi.Survival(q),
		Lags:      lags,
	}
}

// IndependenceLags picks the Ljung-Box lag count for n samples: n/4, at least
// 1 and at most 10.
func IndependenceLags(n int) int {
	return min(max(n/4, 1), 10)
}
