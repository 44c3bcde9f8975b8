package stats

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultSmoothDegree is the polynomial degree used for chart trend lines.
const DefaultSmoothDegree = 20

// ErrInvalidInput is returned for empty input, negative degree or
// non-finite values.
var ErrInvalidInput = errors.New("invalid polynomial fit input")

// FitMethod selects how the least-squares system is solved.
type FitMethod int

const (
	// MethodQR solves the Vandermonde system by Householder QR on an index
	// rescaled to [-1, 1]. It stays usable at high degree.
	MethodQR FitMethod = iota
	// MethodNormal forms the normal equations AᵗA·c = Aᵗy on the raw index
	// and solves them by Gaussian elimination with partial pivoting.
	MethodNormal
)

// String returns the configuration name of the method.
func (m FitMethod) String() string {
	switch m {
	case MethodNormal:
		return "normal"
	default:
		return "qr"
	}
}

// ParseFitMethod parses "qr" or "normal".
func ParseFitMethod(s string) (FitMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "qr":
		return MethodQR, nil
	case "normal":
		return MethodNormal, nil
	}
	return MethodQR, fmt.Errorf("unknown fit method %q", s)
}

// PolyFitResult is a least-squares polynomial over the positional index.
//
// The polynomial is stored in the variable t = (x - Center) / Scale, where x
// is the 0-based index. MethodNormal uses Center 0 and Scale 1, so Coeffs are
// then plain coefficients of x^j.
type PolyFitResult struct {
	Degree int
	Method FitMethod
	Coeffs []float64
	Center float64
	Scale  float64
	Fitted []float64 // one value per input index
}

// Eval evaluates the polynomial at index x.
func (r *PolyFitResult) Eval(x float64) float64 {
	t := (x - r.Center) / r.Scale
	v := 0.0
	for j := len(r.Coeffs) - 1; j >= 0; j-- {
		v = v*t + r.Coeffs[j]
	}
	return v
}

// CapDegree limits degree so that a fit over n points stays determined.
func CapDegree(degree, n int) int {
	if degree > n-1 {
		degree = n - 1
	}
	if degree < 0 {
		degree = 0
	}
	return degree
}

// PolyFit fits a polynomial of the given degree to y using the index of each
// value as the independent variable, and returns the fitted curve.
//
// Fewer than degree+1 points, a vanishing pivot or an ill-conditioned QR
// solve yield ErrSingular instead of corrupted coefficients.
func PolyFit(y []float64, degree int, method FitMethod) (*PolyFitResult, error) {
	n := len(y)
	if n == 0 || degree < 0 {
		return nil, ErrInvalidInput
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value at index %d", ErrInvalidInput, i)
		}
	}
	if degree >= n {
		return nil, fmt.Errorf("%w: degree %d needs at least %d points, got %d", ErrSingular, degree, degree+1, n)
	}

	var (
		res *PolyFitResult
		err error
	)
	switch method {
	case MethodNormal:
		res, err = fitNormal(y, degree)
	default:
		res, err = fitQR(y, degree)
	}
	if err != nil {
		return nil, err
	}

	for _, c := range res.Coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrSingular
		}
	}

	res.Fitted = make([]float64, n)
	for i := range res.Fitted {
		res.Fitted[i] = res.Eval(float64(i))
		if math.IsNaN(res.Fitted[i]) || math.IsInf(res.Fitted[i], 0) {
			return nil, ErrSingular
		}
	}
	return res, nil
}

// fitNormal builds the normal equations on the raw index. The system is
// symmetrically scaled by its diagonal before elimination so that the pivot
// tolerance is meaningful; the solution is unscaled afterwards.
func fitNormal(y []float64, degree int) (*PolyFitResult, error) {
	k := degree + 1

	ata := make([][]float64, k)
	for i := range ata {
		ata[i] = make([]float64, k)
	}
	aty := make([]float64, k)

	row := make([]float64, k)
	for i, v := range y {
		x := float64(i)
		p := 1.0
		for j := 0; j < k; j++ {
			row[j] = p
			p *= x
		}
		for j := 0; j < k; j++ {
			aty[j] += row[j] * v
			for l := 0; l < k; l++ {
				ata[j][l] += row[j] * row[l]
			}
		}
	}

	d := make([]float64, k)
	for j := 0; j < k; j++ {
		d[j] = math.Sqrt(ata[j][j])
		if d[j] == 0 || math.IsInf(d[j], 0) {
			return nil, ErrSingular
		}
	}
	for j := 0; j < k; j++ {
		aty[j] /= d[j]
		for l := 0; l < k; l++ {
			ata[j][l] /= d[j] * d[l]
		}
	}

	u, err := SolveGaussian(ata, aty)
	if err != nil {
		return nil, err
	}
	coeffs := make([]float64, k)
	for j := range u {
		coeffs[j] = u[j] / d[j]
	}

	return &PolyFitResult{
		Degree: degree,
		Method: MethodNormal,
		Coeffs: coeffs,
		Center: 0,
		Scale:  1,
	}, nil
}

// fitQR solves the least-squares Vandermonde system on t ∈ [-1, 1].
func fitQR(y []float64, degree int) (*PolyFitResult, error) {
	n := len(y)
	k := degree + 1

	center := float64(n-1) / 2
	scale := center
	if scale == 0 {
		scale = 1
	}

	a := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		t := (float64(i) - center) / scale
		p := 1.0
		for j := 0; j < k; j++ {
			a.Set(i, j, p)
			p *= t
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(a)

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	coeffs := make([]float64, k)
	for j := 0; j < k; j++ {
		coeffs[j] = c.AtVec(j)
	}

	return &PolyFitResult{
		Degree: degree,
		Method: MethodQR,
		Coeffs: coeffs,
		Center: center,
		Scale:  scale,
	}, nil
}
