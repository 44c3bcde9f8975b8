// Package goextreme provides extreme-value analysis for coastal station records.
//
// GoExtreme turns long records of wave height, tide level or water temperature
// into design values: the level expected to be reached or exceeded once every
// T years. It extracts annual or monthly extremes, fits a Pearson Type III
// distribution by the method of moments and evaluates return periods with the
// Cornish-Fisher frequency factor.
//
// # Features
//
//   - Annual and monthly maximum/minimum extraction with missing-value handling
//   - Pearson Type III fit (mean, population standard deviation, skewness)
//   - Return-period values for 5, 10, 20, 25, 50 and 100 years, or any T > 1
//   - Ljung-Box independence check on the extreme samples
//   - Polynomial least-squares trend lines (QR or normal equations)
//   - Trailing moving averages
//   - CSV and XLSX input; text, CSV, JSON, XLSX and Parquet reports
//
// # Quick Start
//
// Analyze one field:
//
//	frame, _ := timeseries.LoadCSV("station.csv", timeseries.DefaultCSVOptions())
//	series, _ := frame.Series("wave_height")
//	result, _ := analysis.Analyze(series, analysis.DefaultConfig())
//	for _, rv := range result.ReturnValues {
//	    fmt.Printf("%3.0f-year: %.2f\n", rv.Period, rv.Value)
//	}
//
// Work with the building blocks directly:
//
//	samples := extreme.Group(series, extreme.Month, extreme.Min)
//	params, err := pearson.Fit(extreme.Values(samples))
//	value, _ := params.ReturnValue(50)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Station records, CSV/XLSX loading and moving averages
//   - extreme: Period grouping and extreme extraction
//   - pearson: Pearson Type III fit and return-period values
//   - stats: Moments, linear solver, polynomial fit and independence test
//   - analysis: End-to-end pipeline over series and frames
//
// The goextreme command (cmd/goextreme) wraps the pipeline in a CLI.
//
// # References
//
//   - Chow, V. T., Maidment, D. R., & Mays, L. W. (1988). Applied Hydrology
//   - Kite, G. W. (1977). Frequency and Risk Analyses in Hydrology
package goextreme
