// Package extreme extracts annual or monthly extremes from a station series.
//
// # Grouping
//
// Observations are bucketed by the calendar fields of their timestamps,
// without timezone normalization:
//
//	samples := extreme.Group(series, extreme.Year, extreme.Max)
//	for _, s := range samples {
//	    fmt.Printf("%s  %.2f  (%d readings)\n", s.Period, s.Value, s.Count)
//	}
//
// Missing readings (NaN) are ignored. A period with no valid reading is
// dropped rather than reported as zero.
//
// # Ordering
//
// Periods are keyed by the numeric (year, month) pair, so "2022-09" always
// precedes "2022-10". String() zero-pads the month for display.
//
// The sample values feed the Pearson Type III fit:
//
//	params, err := pearson.Fit(extreme.Values(samples))
package extreme
