package pearson

import (
	"errors"
	"math"
	"testing"
)

func TestFitRefusesSmallSamples(t *testing.T) {
	for _, samples := range [][]float64{nil, {1}, {1, 2}} {
		params, err := Fit(samples)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("n=%d: expected ErrInsufficientData, got %v", len(samples), err)
		}
		if params != nil {
			t.Errorf("n=%d: expected nil params", len(samples))
		}
	}

	params, err := Fit([]float64{1, 2, 4})
	if err != nil {
		t.Fatalf("Fit with exactly 3 samples failed: %v", err)
	}
	if params.N != 3 {
		t.Errorf("Expected N=3, got %d", params.N)
	}
}

func TestFitMoments(t *testing.T) {
	params, err := Fit([]float64{10, 20, 30})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(params.Mean-20) > 1e-12 {
		t.Errorf("Expected mean 20, got %f", params.Mean)
	}
	if math.Abs(params.StdDev-math.Sqrt(200.0/3.0)) > 1e-12 {
		t.Errorf("Expected std %.6f, got %.6f", math.Sqrt(200.0/3.0), params.StdDev)
	}
	if math.Abs(params.Skewness) > 1e-12 {
		t.Errorf("Expected skewness 0, got %f", params.Skewness)
	}
}

func TestFitSkewness(t *testing.T) {
	// deviations -3,-2,-1,0,6: var=10, m3=36
	params, err := Fit([]float64{1, 2, 3, 4, 10})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	want := 36 / math.Pow(10, 1.5)
	if math.Abs(params.Skewness-want) > 1e-12 {
		t.Errorf("Expected skewness %f, got %f", want, params.Skewness)
	}
}

func TestFitDegenerate(t *testing.T) {
	if _, err := Fit([]float64{3, 3, 3, 3}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for constant sample, got %v", err)
	}
	if _, err := Fit([]float64{1, math.NaN(), 3}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for NaN sample, got %v", err)
	}
}

func TestReturnValueSymmetricReduction(t *testing.T) {
	params := &Params{N: 10, Mean: 20, StdDev: 8.165, Skewness: 0.0005}

	for _, period := range StandardReturnPeriods {
		got, err := params.ReturnValue(period)
		if err != nil {
			t.Fatalf("ReturnValue(%v) failed: %v", period, err)
		}
		z := -math.Log(-math.Log(1 - 1/period))
		want := params.Mean + z*params.StdDev
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("T=%v: expected %f, got %f", period, want, got)
		}
	}
}

func TestReducedVariate(t *testing.T) {
	z, err := ReducedVariate(100)
	if err != nil {
		t.Fatalf("ReducedVariate failed: %v", err)
	}
	// -ln(-ln(0.99))
	if math.Abs(z-4.600149226776579) > 1e-12 {
		t.Errorf("Expected z(100)=4.600149226776579, got %.15f", z)
	}
}

func TestFrequencyFactorCorrection(t *testing.T) {
	cs := 0.6
	z, _ := ReducedVariate(50)
	want := z + (cs/6)*(z*z-1) + (cs*cs/36)*(z*z*z-6*z) + (cs*cs*cs/216)*(2*z*z*z-9*z)

	k, err := FrequencyFactor(cs, 50)
	if err != nil {
		t.Fatalf("FrequencyFactor failed: %v", err)
	}
	if math.Abs(k-want) > 1e-12 {
		t.Errorf("Expected K=%f, got %f", want, k)
	}
	if k <= z {
		t.Errorf("Positive skew should raise K above z: K=%f z=%f", k, z)
	}
}

func TestReturnValueMonotonicPositiveSkew(t *testing.T) {
	params, err := Fit([]float64{1, 2, 3, 4, 10})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if params.Skewness <= 0 {
		t.Fatalf("Expected positive skewness, got %f", params.Skewness)
	}

	periods := []float64{2, 5, 10, 20, 25, 50, 100, 200, 1000}
	prev := math.Inf(-1)
	for _, period := range periods {
		v, err := params.ReturnValue(period)
		if err != nil {
			t.Fatalf("ReturnValue(%v) failed: %v", period, err)
		}
		if v < prev {
			t.Errorf("T=%v: value %f below previous %f", period, v, prev)
		}
		prev = v
	}
}

func TestReturnValueInvalidPeriod(t *testing.T) {
	params := &Params{N: 3, Mean: 1, StdDev: 1, Skewness: 0.2}
	for _, period := range []float64{1, 0.5, 0, -10, math.NaN(), math.Inf(1)} {
		if _, err := params.ReturnValue(period); !errors.Is(err, ErrInvalidReturnPeriod) {
			t.Errorf("T=%v: expected ErrInvalidReturnPeriod, got %v", period, err)
		}
	}
}

func TestTable(t *testing.T) {
	params, err := Fit([]float64{2.1, 2.8, 3.7, 2.2, 4.9, 3.1})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	table, err := params.Table(nil)
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	if len(table) != len(StandardReturnPeriods) {
		t.Fatalf("Expected %d rows, got %d", len(StandardReturnPeriods), len(table))
	}
	for i, row := range table {
		if row.Period != StandardReturnPeriods[i] {
			t.Errorf("Row %d: expected period %v, got %v", i, StandardReturnPeriods[i], row.Period)
		}
		if math.Abs(row.Exceedance-1/row.Period) > 1e-15 {
			t.Errorf("Row %d: unexpected exceedance %f", i, row.Exceedance)
		}
		v, _ := params.ReturnValue(row.Period)
		if row.Value != v {
			t.Errorf("Row %d: table value %f differs from ReturnValue %f", i, row.Value, v)
		}
		t.Logf("T=%3.0f K=%.4f value=%.4f", row.Period, row.Factor, row.Value)
	}

	if _, err := params.Table([]float64{10, 1}); !errors.Is(err, ErrInvalidReturnPeriod) {
		t.Errorf("Expected ErrInvalidReturnPeriod, got %v", err)
	}
}

func TestFitIdempotent(t *testing.T) {
	samples := []float64{3.3, 1.2, 5.8, 2.4, 4.4}
	a, _ := Fit(samples)
	b, _ := Fit(samples)
	if *a != *b {
		t.Errorf("Fit not deterministic: %+v vs %+v", a, b)
	}
	va, _ := a.ReturnValue(25)
	vb, _ := b.ReturnValue(25)
	if math.Float64bits(va) != math.Float64bits(vb) {
		t.Error("ReturnValue not deterministic")
	}
}
