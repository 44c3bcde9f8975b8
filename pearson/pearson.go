package pearson

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goextreme/stats"
)

var (
	// ErrInsufficientData is returned by Fit for fewer than MinSamples values.
	ErrInsufficientData = errors.New("insufficient samples for pearson III fit")
	// ErrDegenerate is returned by Fit when the samples have zero spread.
	ErrDegenerate = errors.New("degenerate sample: standard deviation is zero")
	// ErrInvalidReturnPeriod is returned for return periods <= 1 year.
	ErrInvalidReturnPeriod = errors.New("return period must be greater than 1")
)

// MinSamples is the smallest sample set Fit accepts.
const MinSamples = 3

// symmetricSkew is the |Cs| below which the normal frequency factor is used.
const symmetricSkew = 0.001

// StandardReturnPeriods are the design return periods in years.
var StandardReturnPeriods = []float64{5, 10, 20, 25, 50, 100}

// Params holds a method-of-moments Pearson Type III fit.
type Params struct {
	N        int
	Mean     float64
	StdDev   float64
	Skewness float64
}

// ReturnValue is one row of a return-period table.
type ReturnValue struct {
	Period     float64 // years
	Exceedance float64 // annual exceedance probability, 1/Period
	Factor     float64 // frequency factor K
	Value      float64
}

// Fit estimates Pearson Type III parameters from extreme samples using
// population moments.
func Fit(samples []float64) (*Params, error) {
	if len(samples) < MinSamples {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, len(samples), MinSamples)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite sample at index %d", ErrDegenerate, i)
		}
	}

	m := stats.Moments(samples)
	if m.StdDev == 0 || math.IsNaN(m.StdDev) || math.IsNaN(m.Skewness) || math.IsInf(m.Skewness, 0) {
		return nil, ErrDegenerate
	}

	return &Params{
		N:        m.N,
		Mean:     m.Mean,
		StdDev:   m.StdDev,
		Skewness: m.Skewness,
	}, nil
}

// ReducedVariate returns the Gumbel reduced variate z = -ln(-ln(1-1/T)).
func ReducedVariate(period float64) (float64, error) {
	if !(period > 1) || math.IsInf(period, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidReturnPeriod, period)
	}
	p := 1 / period
	return -math.Log(-math.Log(1 - p)), nil
}

// FrequencyFactor returns K for the given skewness and return period using a
// third-order Cornish-Fisher correction of the reduced variate.
func FrequencyFactor(skew, period float64) (float64, error) {
	z, err := ReducedVariate(period)
	if err != nil {
		return 0, err
	}
	return frequencyFactor(skew, z), nil
}

func frequencyFactor(cs, z float64) float64 {
	if math.Abs(cs) < symmetricSkew {
		return z
	}
	z2 := z * z
	z3 := z2 * z
	return z +
		(cs/6)*(z2-1) +
		(cs*cs/36)*(z3-6*z) +
		(cs*cs*cs/216)*(2*z3-9*z)
}

// ReturnValue returns the design value for a return period in years.
func (p *Params) ReturnValue(period float64) (float64, error) {
	z, err := ReducedVariate(period)
	if err != nil {
		return 0, err
	}
	return p.Mean + frequencyFactor(p.Skewness, z)*p.StdDev, nil
}

// Table evaluates the given return periods, or StandardReturnPeriods when
// periods is empty.
func (p *Params) Table(periods []float64) ([]ReturnValue, error) {
	if len(periods) == 0 {
		periods = StandardReturnPeriods
	}

	rows := make([]ReturnValue, 0, len(periods))
	for _, t := range periods {
		z, err := ReducedVariate(t)
		if err != nil {
			return nil, err
		}
		k := frequencyFactor(p.Skewness, z)
		rows = append(rows, ReturnValue{
			Period:     t,
			Exceedance: 1 / t,
			Factor:     k,
			Value:      p.Mean + k*p.StdDev,
		})
	}
	return rows, nil
}
