package extreme

import (
	"math"
	"testing"
	"time"

	"github.com/sartorproj/goextreme/timeseries"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSeries(t *testing.T, ts []time.Time, values []float64) *timeseries.Series {
	t.Helper()
	s, err := timeseries.NewWithTimestamps(ts, values)
	if err != nil {
		t.Fatalf("NewWithTimestamps failed: %v", err)
	}
	return s
}

func TestGroupYearMax(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{
			date(2021, 3, 1), date(2019, 1, 5), date(2021, 8, 9),
			date(2020, 6, 1), date(2019, 12, 31), date(2020, 2, 2),
		},
		[]float64{2.1, 1.4, 3.7, 2.2, 1.9, 2.8},
	)

	samples := Group(s, Year, Max)

	expected := []struct {
		period string
		value  float64
		count  int
	}{
		{"2019", 1.9, 2},
		{"2020", 2.8, 2},
		{"2021", 3.7, 2},
	}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(samples))
	}
	for i, e := range expected {
		if samples[i].Period.String() != e.period {
			t.Errorf("Sample %d: expected period %s, got %s", i, e.period, samples[i].Period)
		}
		if samples[i].Value != e.value {
			t.Errorf("Sample %d: expected value %f, got %f", i, e.value, samples[i].Value)
		}
		if samples[i].Count != e.count {
			t.Errorf("Sample %d: expected count %d, got %d", i, e.count, samples[i].Count)
		}
	}
}

func TestGroupYearMin(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{date(2020, 1, 1), date(2020, 5, 1), date(2021, 1, 1)},
		[]float64{-0.4, -1.2, 0.3},
	)

	samples := Group(s, Year, Min)
	if len(samples) != 2 || samples[0].Value != -1.2 || samples[1].Value != 0.3 {
		t.Errorf("Unexpected samples: %+v", samples)
	}
}

func TestGroupDropsMissingOnlyPeriods(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{date(2018, 1, 1), date(2019, 1, 1), date(2019, 6, 1), date(2020, 1, 1)},
		[]float64{1, math.NaN(), math.NaN(), 0},
	)

	samples := Group(s, Year, Max)
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d: %+v", len(samples), samples)
	}
	for _, sm := range samples {
		if sm.Period.Year == 2019 {
			t.Error("Period with only missing values must be absent")
		}
	}
	// A genuine zero is kept.
	if samples[1].Period.Year != 2020 || samples[1].Value != 0 {
		t.Errorf("Expected 2020 sample with value 0, got %+v", samples[1])
	}
}

func TestGroupMonthChronologicalOrder(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{date(2022, 10, 3), date(2022, 9, 30), date(2023, 1, 2), date(2022, 10, 20)},
		[]float64{5, 4, 6, 7},
	)

	samples := Group(s, Month, Max)

	expected := []string{"2022-09", "2022-10", "2023-01"}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(samples))
	}
	for i, p := range expected {
		if samples[i].Period.String() != p {
			t.Errorf("Sample %d: expected %s, got %s", i, p, samples[i].Period)
		}
	}
	if samples[1].Value != 7 {
		t.Errorf("Expected October max 7, got %f", samples[1].Value)
	}
}

func TestGroupUsesCalendarFieldsAsIs(t *testing.T) {
	// 23:30 on Dec 31 in UTC+8 is still 2021 for this station.
	cst := time.FixedZone("CST", 8*3600)
	s := mustSeries(t,
		[]time.Time{time.Date(2021, 12, 31, 23, 30, 0, 0, cst)},
		[]float64{1},
	)

	samples := Group(s, Year, Max)
	if len(samples) != 1 || samples[0].Period.Year != 2021 {
		t.Errorf("Expected 2021 period, got %+v", samples)
	}
}

func TestGroupWithoutTimestamps(t *testing.T) {
	samples := Group(timeseries.New([]float64{1, 2, 3}), Year, Max)
	if len(samples) != 0 {
		t.Errorf("Expected no samples for a positional series, got %d", len(samples))
	}
}

func TestGroupIdempotent(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{date(2020, 1, 1), date(2021, 1, 1), date(2020, 7, 1)},
		[]float64{1.25, 2.5, 3.75},
	)
	a := Group(s, Month, Max)
	b := Group(s, Month, Max)
	if len(a) != len(b) {
		t.Fatal("Different lengths")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Sample %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestValues(t *testing.T) {
	samples := []Sample{{Value: 1}, {Value: 2.5}}
	values := Values(samples)
	if len(values) != 2 || values[1] != 2.5 {
		t.Errorf("Unexpected values: %v", values)
	}
}

func TestParseGranularityAndSelector(t *testing.T) {
	if g, err := ParseGranularity("month"); err != nil || g != Month {
		t.Errorf("Expected Month, got %v (%v)", g, err)
	}
	if _, err := ParseGranularity("week"); err == nil {
		t.Error("Expected error for unknown granularity")
	}
	if s, err := ParseSelector("MIN"); err != nil || s != Min {
		t.Errorf("Expected Min, got %v (%v)", s, err)
	}
	if _, err := ParseSelector("median"); err == nil {
		t.Error("Expected error for unknown selector")
	}
	if Year.String() != "year" || Max.String() != "max" {
		t.Error("Unexpected String() values")
	}
}
