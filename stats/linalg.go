package stats

import (
	"errors"
	"math"
)

// ErrSingular is returned when a linear system has no unique solution or is
// too ill-conditioned to solve reliably.
var ErrSingular = errors.New("singular or ill-conditioned system")

// pivotTolerance is the smallest pivot magnitude accepted by SolveGaussian.
// Callers working with badly scaled systems should equilibrate first.
const pivotTolerance = 1e-12

// SolveGaussian solves a·x = b by Gaussian elimination with partial pivoting
// followed by back-substitution. The inputs are not modified.
func SolveGaussian(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, errors.New("system must be square and match the right-hand side")
	}

	// Augmented matrix [A|b]
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		if len(a[i]) != n {
			return nil, errors.New("system must be square and match the right-hand side")
		}
		aug[i] = make([]float64, n+1)
		copy(aug[i][:n], a[i])
		aug[i][n] = b[i]
	}

	// Forward elimination
	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}
		aug[i], aug[maxRow] = aug[maxRow], aug[i]

		if math.Abs(aug[i][i]) < pivotTolerance || math.IsNaN(aug[i][i]) {
			return nil, ErrSingular
		}

		for k := i + 1; k < n; k++ {
			factor := aug[k][i] / aug[i][i]
			if factor == 0 {
				continue
			}
			for j := i; j <= n; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	// Back-substitution
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, ErrSingular
		}
	}

	return x, nil
}
