// Package stats provides the numerical building blocks of the extreme-value
// analysis: population moments, a dense linear solver, polynomial
// least-squares smoothing and a serial independence check.
//
// # Moments
//
// Moments uses population (divide by n) estimators, matching the method of
// moments used by the Pearson Type III fit:
//
//	m := stats.Moments([]float64{10, 20, 30})
//	fmt.Printf("mean=%.1f std=%.4f skew=%.1f\n", m.Mean, m.StdDev, m.Skewness)
//	// mean=20.0 std=8.1650 skew=0.0
//
// # Polynomial Smoothing
//
// PolyFit fits a polynomial of the given degree against the sample index
// 0..n-1 and returns the fitted curve:
//
//	res, err := stats.PolyFit(values, stats.DefaultSmoothDegree, stats.MethodQR)
//	if errors.Is(err, stats.ErrSingular) {
//	    // degree too high for the data, or the system is ill-conditioned
//	}
//
// Two solvers are available. MethodQR (default) rescales the index to [-1, 1]
// and solves the Vandermonde system by QR factorization, which stays usable at
// degree 20. MethodNormal forms the normal equations XᵀX·c = Xᵀy, equilibrates
// the diagonal and solves them with SolveGaussian. It is exact for low degrees
// and fails loudly with ErrSingular when conditioning breaks down.
//
// Degrees at or above the number of points are rejected; CapDegree lowers a
// requested degree to what a series can support.
//
// # Independence
//
// The method of moments assumes independent extremes. LjungBox tests the
// sample sequence for autocorrelation:
//
//	if lb := stats.LjungBox(samples, stats.IndependenceLags(len(samples))); lb != nil && !lb.Independent(0.05) {
//	    log.Printf("extremes look serially dependent (p=%.3f)", lb.PValue)
//	}
package stats
