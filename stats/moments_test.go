package stats

import (
	"math"
	"testing"
)

func TestMoments(t *testing.T) {
	m := Moments([]float64{10, 20, 30})
	if m == nil {
		t.Fatal("Expected moments, got nil")
	}

	if m.N != 3 {
		t.Errorf("Expected N=3, got %d", m.N)
	}
	if math.Abs(m.Mean-20) > 1e-10 {
		t.Errorf("Expected mean 20, got %f", m.Mean)
	}
	if math.Abs(m.Variance-200.0/3) > 1e-10 {
		t.Errorf("Expected population variance 66.667, got %f", m.Variance)
	}
	if math.Abs(m.StdDev-8.16496580927726) > 1e-9 {
		t.Errorf("Expected stddev 8.165, got %f", m.StdDev)
	}
	if math.Abs(m.Skewness) > 1e-10 {
		t.Errorf("Expected zero skewness for a symmetric sample, got %f", m.Skewness)
	}
}

func TestMomentsSkewed(t *testing.T) {
	x := []float64{1, 1, 1, 1, 10}
	m := Moments(x)

	// Population definitions computed by hand.
	mean := 14.0 / 5
	var m2, m3 float64
	for _, v := range x {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= 5
	m3 /= 5
	std := math.Sqrt(m2)
	want := m3 / (std * std * std)

	if math.Abs(m.Skewness-want) > 1e-10 {
		t.Errorf("Expected skewness %f, got %f", want, m.Skewness)
	}
	if m.Skewness <= 0 {
		t.Errorf("Expected positive skewness, got %f", m.Skewness)
	}
}

func TestMomentsEmpty(t *testing.T) {
	if Moments(nil) != nil {
		t.Error("Expected nil for empty input")
	}
}

func TestMomentsConstant(t *testing.T) {
	m := Moments([]float64{4, 4, 4})
	if m.StdDev != 0 {
		t.Errorf("Expected zero stddev, got %f", m.StdDev)
	}
	if !math.IsNaN(m.Skewness) && !math.IsInf(m.Skewness, 0) {
		t.Errorf("Expected undefined skewness, got %f", m.Skewness)
	}
}
