// Package analysis runs the extreme-value analysis of station fields.
//
// Analyze chains the pieces together: period extremes from package extreme,
// a Pearson Type III fit from package pearson and an optional polynomial
// trend over the sample sequence from package stats.
//
//	cfg := analysis.DefaultConfig()
//	cfg.Granularity = extreme.Month
//	result, err := analysis.Analyze(series, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Fitted() {
//	    fmt.Println(result.Message)
//	}
//	for _, rv := range result.ReturnValues {
//	    fmt.Printf("%3.0f-year: %.3f\n", rv.Period, rv.Value)
//	}
//
// A sample set that cannot be fitted is not an error: the result carries the
// samples together with a status and a message for display.
//
// AnalyzeFrame analyzes several fields of a frame concurrently, bounded by
// Config.Workers.
package analysis
