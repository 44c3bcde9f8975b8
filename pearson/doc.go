// Package pearson fits a Pearson Type III distribution to extreme samples by
// the method of moments and evaluates return-period design values.
//
// # Fitting
//
// Fit uses population moments (divide by n) and needs at least three
// samples:
//
//	params, err := pearson.Fit(extreme.Values(samples))
//	if errors.Is(err, pearson.ErrInsufficientData) {
//	    // fewer than 3 periods
//	}
//
// A sample set with zero spread is rejected with ErrDegenerate.
//
// # Return Periods
//
// For a return period of T years the exceedance probability is p = 1/T and the
// Gumbel reduced variate is
//
//	z = -ln(-ln(1 - p))
//
// The frequency factor applies a Cornish-Fisher correction for skewness Cs:
//
//	K = z + (Cs/6)(z²-1) + (Cs²/36)(z³-6z) + (Cs³/216)(2z³-9z)
//
// with K = z when |Cs| < 0.001. The design value is mean + K·stdDev.
//
//	table, _ := params.Table(pearson.StandardReturnPeriods)
//	for _, r := range table {
//	    fmt.Printf("%3.0f-year: %.3f\n", r.Period, r.Value)
//	}
//
// Return periods must be greater than one year.
package pearson
