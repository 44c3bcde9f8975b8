package extreme

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sartorproj/goextreme/timeseries"
)

// Granularity is the calendar bucket used for grouping.
type Granularity int

const (
	Year Granularity = iota
	Month
)

// String returns the configuration name of the granularity.
func (g Granularity) String() string {
	if g == Month {
		return "month"
	}
	return "year"
}

// ParseGranularity parses "year" or "month".
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year", "annual":
		return Year, nil
	case "month", "monthly":
		return Month, nil
	}
	return Year, fmt.Errorf("unknown granularity %q", s)
}

// Selector chooses which extreme of a period is kept.
type Selector int

const (
	Max Selector = iota
	Min
)

// String returns the configuration name of the selector.
func (s Selector) String() string {
	if s == Min {
		return "min"
	}
	return "max"
}

// ParseSelector parses "max" or "min".
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximum":
		return Max, nil
	case "min", "minimum":
		return Min, nil
	}
	return Max, fmt.Errorf("unknown selector %q", s)
}

// Period identifies a calendar bucket. Month is 0 for yearly periods.
type Period struct {
	Year  int
	Month int
}

// PeriodOf returns the bucket of t, using its calendar fields as-is.
func PeriodOf(t time.Time, g Granularity) Period {
	if g == Month {
		return Period{Year: t.Year(), Month: int(t.Month())}
	}
	return Period{Year: t.Year()}
}

// String formats the period as "YYYY" or "YYYY-MM".
func (p Period) String() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Before reports whether p is chronologically earlier than q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// Sample is the extreme of one period.
type Sample struct {
	Period Period
	Value  float64
	Count  int // valid observations in the period
}

// Group buckets the series by period and returns one sample per period that
// has at least one valid value, in chronological order. Missing values are
// ignored and periods without valid values are dropped. A series without
// timestamps yields no samples.
func Group(series *timeseries.Series, g Granularity, sel Selector) []Sample {
	samples := []Sample{}
	if series == nil || !series.HasTimestamps() {
		return samples
	}

	buckets := make(map[Period]*Sample)
	for i, v := range series.Values {
		if !timeseries.IsValid(v) {
			continue
		}
		key := PeriodOf(series.Timestamps[i], g)
		b, ok := buckets[key]
		if !ok {
			buckets[key] = &Sample{Period: key, Value: v, Count: 1}
			continue
		}
		b.Count++
		if (sel == Max && v > b.Value) || (sel == Min && v < b.Value) {
			b.Value = v
		}
	}

	for _, b := range buckets {
		samples = append(samples, *b)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Period.Before(samples[j].Period)
	})
	return samples
}

// Values returns the sample values in order.
func Values(samples []Sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return values
}
