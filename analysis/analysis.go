package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goextreme/extreme"
	"github.com/sartorproj/goextreme/pearson"
	"github.com/sartorproj/goextreme/stats"
	"github.com/sartorproj/goextreme/timeseries"
)

// Config holds configuration for an extreme-value analysis.
type Config struct {
	Granularity   extreme.Granularity // Period bucket (default: Year)
	Selector      extreme.Selector    // Per-period extreme (default: Max)
	ReturnPeriods []float64           // Return periods in years (default: 5, 10, 20, 25, 50, 100)
	Trend         bool                // Fit a polynomial trend over the samples
	TrendDegree   int                 // Trend degree, capped at samples-1 (default: 20)
	TrendMethod   stats.FitMethod     // Trend solver (default: QR)
	Workers       int                 // Concurrent fields in AnalyzeFrame, <= 0 for no limit
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() *Config {
	periods := make([]float64, len(pearson.StandardReturnPeriods))
	copy(periods, pearson.StandardReturnPeriods)
	return &Config{
		Granularity:   extreme.Year,
		Selector:      extreme.Max,
		ReturnPeriods: periods,
		Trend:         false,
		TrendDegree:   stats.DefaultSmoothDegree,
		TrendMethod:   stats.MethodQR,
		Workers:       4,
	}
}

// Validate checks the return periods before any data is touched.
func (c *Config) Validate() error {
	for _, t := range c.ReturnPeriods {
		if _, err := pearson.ReducedVariate(t); err != nil {
			return err
		}
	}
	if c.TrendDegree < 0 {
		return fmt.Errorf("trend degree must be non-negative, got %d", c.TrendDegree)
	}
	return nil
}

// Status describes whether the distribution could be fitted.
type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
	StatusDegenerate       Status = "degenerate"
)

// Result represents the analysis of one field.
type Result struct {
	Field       string
	Granularity extreme.Granularity
	Selector    extreme.Selector

	// Extreme samples in chronological order
	Samples []extreme.Sample

	// Fit outcome. Params and ReturnValues are nil unless Status is StatusOK.
	Status       Status
	Message      string
	Params       *pearson.Params
	ReturnValues []pearson.ReturnValue

	// Ljung-Box test on the samples; nil below stats.MinIndependenceSamples
	Independence *stats.LjungBoxResult

	// Polynomial trend over the sample sequence, when requested
	Trend       *stats.PolyFitResult
	TrendStatus string
}

// Fitted reports whether a distribution was fitted.
func (r *Result) Fitted() bool {
	return r.Status == StatusOK
}

// Analyzer runs analyses with a shared configuration and logger.
type Analyzer struct {
	config *Config
	logger *slog.Logger
	clock  clockwork.Clock
}

// NewAnalyzer creates an analyzer. A nil config uses DefaultConfig and a nil
// logger discards output.
func NewAnalyzer(config *Config, logger *slog.Logger) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		config: config,
		logger: logger,
		clock:  clockwork.NewRealClock(),
	}
}

// WithClock replaces the clock used to time analyses.
func (a *Analyzer) WithClock(clock clockwork.Clock) *Analyzer {
	a.clock = clock
	return a
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// Analyze groups the series into period extremes, fits a Pearson Type III
// distribution and evaluates the configured return periods.
//
// Too few samples or a degenerate sample set are reported through
// Result.Status, not as an error. An error is returned only for an invalid
// configuration.
func Analyze(series *timeseries.Series, config *Config) (*Result, error) {
	return NewAnalyzer(config, nil).Analyze(series)
}

// Analyze runs the analysis for one series.
func (a *Analyzer) Analyze(series *timeseries.Series) (*Result, error) {
	if err := a.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if series == nil {
		return nil, errors.New("series must not be nil")
	}

	start := a.clock.Now()
	result := &Result{
		Field:       series.Name,
		Granularity: a.config.Granularity,
		Selector:    a.config.Selector,
	}

	result.Samples = extreme.Group(series, a.config.Granularity, a.config.Selector)
	values := extreme.Values(result.Samples)

	params, err := pearson.Fit(values)
	switch {
	case errors.Is(err, pearson.ErrInsufficientData):
		result.Status = StatusInsufficientData
		result.Message = fmt.Sprintf("cannot fit: %d samples, need at least %d", len(values), pearson.MinSamples)
	case errors.Is(err, pearson.ErrDegenerate):
		result.Status = StatusDegenerate
		result.Message = "cannot fit: samples have zero spread"
	case err != nil:
		return nil, err
	default:
		table, err := params.Table(a.config.ReturnPeriods)
		if err != nil {
			return nil, err
		}
		result.Status = StatusOK
		result.Params = params
		result.ReturnValues = table
	}

	result.Independence = stats.LjungBox(values, stats.IndependenceLags(len(values)))

	if a.config.Trend {
		a.fitTrend(result, values)
	}

	a.logger.Debug("field analyzed",
		"field", result.Field,
		"samples", len(result.Samples),
		"granularity", result.Granularity.String(),
		"selector", result.Selector.String(),
		"status", string(result.Status),
		"duration", a.clock.Since(start),
	)
	return result, nil
}

func (a *Analyzer) fitTrend(result *Result, values []float64) {
	if len(values) < 2 {
		result.TrendStatus = "skipped: fewer than 2 samples"
		return
	}
	degree := stats.CapDegree(a.config.TrendDegree, len(values))
	fit, err := stats.PolyFit(values, degree, a.config.TrendMethod)
	if err != nil {
		result.TrendStatus = err.Error()
		a.logger.Warn("trend fit failed", "field", result.Field, "degree", degree, "error", err)
		return
	}
	result.Trend = fit
	result.TrendStatus = "ok"
}

// AnalyzeFrame analyzes several fields of a frame concurrently. Results follow
// the order of fields. An empty field list analyzes every field.
func AnalyzeFrame(ctx context.Context, frame *timeseries.Frame, fields []string, config *Config) ([]*Result, error) {
	return NewAnalyzer(config, nil).AnalyzeFrame(ctx, frame, fields)
}

// AnalyzeFrame analyzes several fields of a frame concurrently.
func (a *Analyzer) AnalyzeFrame(ctx context.Context, frame *timeseries.Frame, fields []string) ([]*Result, error) {
	if frame == nil {
		return nil, errors.New("frame must not be nil")
	}
	if len(fields) == 0 {
		fields = frame.Fields()
	}

	// Resolve fields before starting workers.
	series := make([]*timeseries.Series, len(fields))
	for i, name := range fields {
		s, err := frame.Series(name)
		if err != nil {
			return nil, err
		}
		series[i] = s
	}

	results := make([]*Result, len(fields))
	g, ctx := errgroup.WithContext(ctx)
	if a.config.Workers > 0 {
		g.SetLimit(a.config.Workers)
	}
	for i := range series {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := a.Analyze(series[i])
			if err != nil {
				return fmt.Errorf("field %q: %w", fields[i], err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("frame analyzed", "fields", len(fields), "records", frame.Len())
	return results, nil
}
