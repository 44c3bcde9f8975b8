package analysis

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goextreme/stats"
	"github.com/sartorproj/goextreme/timeseries"
)

// SmoothOptions selects the smoothers applied by Smooth.
type SmoothOptions struct {
	Degree int             // Polynomial degree, < 0 to skip the polynomial fit
	Method stats.FitMethod // Polynomial solver
	Window int             // Moving-average window, <= 0 to skip
}

// DefaultSmoothOptions returns the polynomial smoother at the default degree
// with no moving average.
func DefaultSmoothOptions() SmoothOptions {
	return SmoothOptions{
		Degree: stats.DefaultSmoothDegree,
		Method: stats.MethodQR,
	}
}

// SmoothResult holds the smoothed curves of one field.
type SmoothResult struct {
	Field string

	// Valid observations the curves are computed on
	Series *timeseries.Series

	Poly       *stats.PolyFitResult
	PolyStatus string

	MovingAverage *timeseries.Series
}

// Smooth drops missing values from the series and applies the requested
// smoothers. A failed polynomial fit is reported in PolyStatus.
func Smooth(series *timeseries.Series, opts SmoothOptions) (*SmoothResult, error) {
	if series == nil {
		return nil, errors.New("series must not be nil")
	}
	if opts.Degree < 0 && opts.Window <= 0 {
		return nil, errors.New("no smoother selected")
	}

	compact := series.Compact()
	result := &SmoothResult{
		Field:  series.Name,
		Series: compact,
	}

	if opts.Degree >= 0 {
		switch {
		case compact.Len() == 0:
			result.PolyStatus = "skipped: no valid values"
		default:
			degree := stats.CapDegree(opts.Degree, compact.Len())
			fit, err := stats.PolyFit(compact.Values, degree, opts.Method)
			if err != nil {
				result.PolyStatus = fmt.Sprintf("degree %d: %v", degree, err)
			} else {
				result.Poly = fit
				result.PolyStatus = "ok"
			}
		}
	}

	if opts.Window > 0 {
		result.MovingAverage = compact.MovingAverage(opts.Window)
	}
	return result, nil
}
