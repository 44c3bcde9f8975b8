package timeseries

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownField is returned when a frame has no column with the requested name.
var ErrUnknownField = errors.New("unknown field")

// Frame holds station records: one date column and any number of named
// numeric fields (wave height, tide level, water temperature, ...).
type Frame struct {
	Timestamps []time.Time
	fields     []string
	columns    map[string][]float64
}

// NewFrame creates an empty frame over the given timestamps.
func NewFrame(timestamps []time.Time) *Frame {
	return &Frame{
		Timestamps: timestamps,
		columns:    make(map[string][]float64),
	}
}

// Len returns the number of records.
func (f *Frame) Len() int {
	return len(f.Timestamps)
}

// Fields returns the field names in load order.
func (f *Frame) Fields() []string {
	out := make([]string, len(f.fields))
	copy(out, f.fields)
	return out
}

// HasField reports whether the frame carries the named field.
func (f *Frame) HasField(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// AddField attaches a column. Its length must match the number of timestamps.
func (f *Frame) AddField(name string, values []float64) error {
	if name == "" {
		return errors.New("field name must not be empty")
	}
	if len(values) != len(f.Timestamps) {
		return fmt.Errorf("field %q has %d values for %d records", name, len(values), len(f.Timestamps))
	}
	if _, ok := f.columns[name]; !ok {
		f.fields = append(f.fields, name)
	}
	f.columns[name] = values
	return nil
}

// Series returns the named field as a series sharing the frame's timestamps.
func (f *Frame) Series(name string) (*Series, error) {
	values, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return &Series{
		Timestamps: f.Timestamps,
		Values:     values,
		Name:       name,
	}, nil
}

// MovingAverage smooths one field with a trailing window.
func (f *Frame) MovingAverage(field string, window int) (*Series, error) {
	s, err := f.Series(field)
	if err != nil {
		return nil, err
	}
	return s.MovingAverage(window), nil
}
