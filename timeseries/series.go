// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"

	"github.com/gammazero/deque"
)

// Observation is a single station reading. A missing reading carries NaN.
type Observation struct {
	Time  time.Time
	Value float64
}

// Valid reports whether the observation holds a usable value.
func (o Observation) Valid() bool {
	return IsValid(o.Value)
}

// IsValid reports whether v is a finite number. NaN marks a missing reading.
func IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Missing returns the value used to mark a missing reading.
func Missing() float64 {
	return math.NaN()
}

// Series represents a time series with timestamps and values.
// Timestamps may be nil for purely positional series.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a positional series (no timestamps) from values.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// FromObservations builds a series from a slice of observations.
func FromObservations(name string, obs []Observation) *Series {
	timestamps := make([]time.Time, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		timestamps[i] = o.Time
		values[i] = o.Value
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       name,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value has a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Values) > 0 && len(s.Timestamps) == len(s.Values)
}

// At returns the i-th observation.
func (s *Series) At(i int) Observation {
	o := Observation{Value: s.Values[i]}
	if i < len(s.Timestamps) {
		o.Time = s.Timestamps[i]
	}
	return o
}

// ValidCount returns the number of non-missing values.
func (s *Series) ValidCount() int {
	n := 0
	for _, v := range s.Values {
		if IsValid(v) {
			n++
		}
	}
	return n
}

// Min returns the minimum non-missing value, or NaN if there is none.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if IsValid(v) && (math.IsNaN(min) || v < min) {
			min = v
		}
	}
	return min
}

// Max returns the maximum non-missing value, or NaN if there is none.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if IsValid(v) && (math.IsNaN(max) || v > max) {
			max = v
		}
	}
	return max
}

// Compact returns a copy of the series with missing values removed.
func (s *Series) Compact() *Series {
	out := &Series{Name: s.Name}
	hasTS := s.HasTimestamps()
	for i, v := range s.Values {
		if !IsValid(v) {
			continue
		}
		out.Values = append(out.Values, v)
		if hasTS {
			out.Timestamps = append(out.Timestamps, s.Timestamps[i])
		}
	}
	if out.Values == nil {
		out.Values = []float64{}
	}
	return out
}

// MovingAverage calculates a trailing moving average with the given window.
//
// Index i averages positions max(0, i-window+1) through i, so the first
// window-1 points use a shorter window. The output has the same length and
// timestamps as the input. Missing values inside a window are skipped; a
// window without any valid value yields NaN.
func (s *Series) MovingAverage(window int) *Series {
	if window <= 0 {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values))
	var buf deque.Deque[float64]

	for i, v := range s.Values {
		buf.PushBack(v)
		if buf.Len() > window {
			buf.PopFront()
		}

		sum := 0.0
		count := 0
		for j := 0; j < buf.Len(); j++ {
			if w := buf.At(j); IsValid(w) {
				sum += w
				count++
			}
		}
		if count == 0 {
			result[i] = math.NaN()
			continue
		}
		result[i] = sum / float64(count)
	}

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_ma",
	}
}
