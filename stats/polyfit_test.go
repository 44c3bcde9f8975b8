package stats

import (
	"errors"
	"math"
	"testing"
)

func TestPolyFitLinearExact(t *testing.T) {
	y := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	for _, method := range []FitMethod{MethodQR, MethodNormal} {
		t.Run(method.String(), func(t *testing.T) {
			res, err := PolyFit(y, 1, method)
			if err != nil {
				t.Fatalf("PolyFit failed: %v", err)
			}
			if len(res.Fitted) != len(y) {
				t.Fatalf("Expected %d fitted values, got %d", len(y), len(res.Fitted))
			}
			for i, v := range y {
				if math.Abs(res.Fitted[i]-v) > 1e-9 {
					t.Errorf("Index %d: expected %f, got %f", i, v, res.Fitted[i])
				}
			}
		})
	}
}

func TestPolyFitNormalCoefficients(t *testing.T) {
	// y = 2 - 3x + 0.5x²
	y := make([]float64, 12)
	for i := range y {
		x := float64(i)
		y[i] = 2 - 3*x + 0.5*x*x
	}

	res, err := PolyFit(y, 2, MethodNormal)
	if err != nil {
		t.Fatalf("PolyFit failed: %v", err)
	}

	expected := []float64{2, -3, 0.5}
	for j, c := range expected {
		if math.Abs(res.Coeffs[j]-c) > 1e-8 {
			t.Errorf("Coefficient %d: expected %f, got %f", j, c, res.Coeffs[j])
		}
	}
}

func TestPolyFitMethodsAgree(t *testing.T) {
	y := make([]float64, 40)
	for i := range y {
		y[i] = math.Sin(float64(i)/6) + 0.1*float64(i%3)
	}

	qr, err := PolyFit(y, 4, MethodQR)
	if err != nil {
		t.Fatalf("QR fit failed: %v", err)
	}
	normal, err := PolyFit(y, 4, MethodNormal)
	if err != nil {
		t.Fatalf("Normal fit failed: %v", err)
	}

	for i := range y {
		if math.Abs(qr.Fitted[i]-normal.Fitted[i]) > 1e-4 {
			t.Errorf("Index %d: qr=%f normal=%f", i, qr.Fitted[i], normal.Fitted[i])
		}
	}

	// Eval matches the stored curve
	if math.Abs(qr.Eval(7)-qr.Fitted[7]) > 1e-12 {
		t.Errorf("Eval(7)=%f, Fitted[7]=%f", qr.Eval(7), qr.Fitted[7])
	}
}

func TestPolyFitHighDegreeStaysFinite(t *testing.T) {
	n := 300
	y := make([]float64, n)
	for i := range y {
		y[i] = 2 + math.Sin(float64(i)/15) + 0.3*math.Cos(float64(i)/4)
	}

	res, err := PolyFit(y, DefaultSmoothDegree, MethodQR)
	if err != nil {
		t.Fatalf("QR fit at degree %d failed: %v", DefaultSmoothDegree, err)
	}
	for i, v := range res.Fitted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Non-finite fitted value at index %d", i)
		}
		if math.Abs(v-y[i]) > 1 {
			t.Errorf("Index %d: fitted %f far from data %f", i, v, y[i])
		}
	}

	// The normal equations on the raw index are not expected to survive
	// this degree; they must either fail explicitly or stay finite.
	normal, err := PolyFit(y, DefaultSmoothDegree, MethodNormal)
	if err != nil {
		if !errors.Is(err, ErrSingular) {
			t.Errorf("Expected ErrSingular, got %v", err)
		}
		t.Logf("Normal equations at degree %d rejected: %v", DefaultSmoothDegree, err)
		return
	}
	for i, v := range normal.Fitted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Non-finite fitted value at index %d", i)
		}
	}
}

func TestPolyFitSingular(t *testing.T) {
	for _, method := range []FitMethod{MethodQR, MethodNormal} {
		_, err := PolyFit([]float64{1, 2, 3}, 5, method)
		if !errors.Is(err, ErrSingular) {
			t.Errorf("%s: expected ErrSingular for degree >= n, got %v", method, err)
		}
	}
}

func TestPolyFitInvalidInput(t *testing.T) {
	if _, err := PolyFit(nil, 1, MethodQR); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty input, got %v", err)
	}
	if _, err := PolyFit([]float64{1, 2}, -1, MethodQR); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative degree, got %v", err)
	}
	if _, err := PolyFit([]float64{1, math.NaN(), 3}, 1, MethodQR); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for NaN, got %v", err)
	}
}

func TestPolyFitSinglePoint(t *testing.T) {
	res, err := PolyFit([]float64{4.2}, 0, MethodQR)
	if err != nil {
		t.Fatalf("PolyFit failed: %v", err)
	}
	if math.Abs(res.Fitted[0]-4.2) > 1e-12 {
		t.Errorf("Expected 4.2, got %f", res.Fitted[0])
	}
}

func TestPolyFitIdempotent(t *testing.T) {
	y := []float64{3.1, 2.7, 4.4, 5.0, 4.1, 6.3, 7.7, 6.9}
	a, _ := PolyFit(y, 3, MethodQR)
	b, _ := PolyFit(y, 3, MethodQR)
	for i := range a.Fitted {
		if math.Float64bits(a.Fitted[i]) != math.Float64bits(b.Fitted[i]) {
			t.Errorf("Non-deterministic fit at index %d", i)
		}
	}
}

func TestCapDegree(t *testing.T) {
	tests := []struct {
		degree, n, want int
	}{
		{20, 100, 20},
		{20, 8, 7},
		{3, 1, 0},
		{-2, 5, 0},
	}
	for _, tt := range tests {
		if got := CapDegree(tt.degree, tt.n); got != tt.want {
			t.Errorf("CapDegree(%d, %d) = %d, want %d", tt.degree, tt.n, got, tt.want)
		}
	}
}

func TestParseFitMethod(t *testing.T) {
	if m, err := ParseFitMethod("normal"); err != nil || m != MethodNormal {
		t.Errorf("Expected MethodNormal, got %v (%v)", m, err)
	}
	if m, err := ParseFitMethod(""); err != nil || m != MethodQR {
		t.Errorf("Expected MethodQR default, got %v (%v)", m, err)
	}
	if _, err := ParseFitMethod("svd"); err == nil {
		t.Error("Expected error for unknown method")
	}
}
