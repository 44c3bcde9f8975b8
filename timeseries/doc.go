// Package timeseries provides station record structures and loaders.
//
// A Series is a sequence of observations (timestamp + value). Missing
// readings are carried as NaN so that downstream grouping can skip them
// instead of failing.
//
// # Creating a Series
//
//	values := []float64{1.2, 1.8, math.NaN(), 2.4}
//	series, err := timeseries.NewWithTimestamps(timestamps, values)
//
// # Loading Station Records
//
// A Frame holds one date column and several numeric fields:
//
//	frame, err := timeseries.LoadCSV("station.csv", nil)
//	waves, err := frame.Series("wave_height")
//
// Spreadsheets are read the same way:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.Sheet = "hourly"
//	frame, err := timeseries.LoadXLSX("station.xlsx", opts)
//
// Cells such as "", "NA", "null" or anything that does not parse as a number
// become missing readings.
//
// # Smoothing
//
//	ma := series.MovingAverage(24) // trailing 24-point window
//
// The window trails the current index and shrinks at the start of the
// series, so the smoothed series lines up point for point with the input.
package timeseries
