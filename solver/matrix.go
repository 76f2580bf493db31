package solver

import (
	"math"

	"github.com/dhamidi/eqsolve/parser"
	"gonum.org/v1/gonum/mat"
)

// Matrix builds the coefficient matrix A and right-hand side B of sys.
// Rows follow equation order and columns follow vars, the sorted distinct
// variable names. Repeated terms for one variable in an equation are summed.
// sys must have at least one equation and one variable.
func Matrix(sys *parser.System) (a *mat.Dense, b *mat.VecDense, vars []string) {
	vars = sys.Variables()
	index := make(map[byte]int, len(vars))
	for i, v := range vars {
		index[v[0]] = i
	}

	rows, cols := len(sys.Equations), len(vars)
	data := make([]float64, rows*cols)
	rhs := make([]float64, rows)
	for i, eq := range sys.Equations {
		for _, t := range eq.Terms {
			data[i*cols+index[t.Variable]] += t.Coefficient
		}
		rhs[i] = eq.Value
	}

	return mat.NewDense(rows, cols, data), mat.NewVecDense(rows, rhs), vars
}

// Residual returns max |A·x − B| for the values in r, or +Inf if r lacks
// a variable of sys.
func (r *Result) Residual(sys *parser.System) float64 {
	worst := 0.0
	for _, eq := range sys.Equations {
		sum := 0.0
		for _, t := range eq.Terms {
			v, ok := r.Values[t.Name()]
			if !ok {
				return math.Inf(1)
			}
			sum += t.Coefficient * v
		}
		worst = math.Max(worst, math.Abs(sum-eq.Value))
	}
	return worst
}
