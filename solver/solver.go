// Package solver computes numeric solutions of parsed linear systems.
//
// Square systems are solved exactly through an LU factorization. When the
// coefficient matrix is singular, or too ill-conditioned for LU to be
// trusted, the solver falls back to the Moore-Penrose pseudo-inverse and
// marks the result as approximate: the values satisfy the system in the
// least-squares sense and are one of possibly infinitely many solutions.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhamidi/eqsolve/parser"
	"github.com/tliron/commonlog"
	"gonum.org/v1/gonum/mat"
)

var log = commonlog.GetLogger("eqsolve.solver")

var (
	// ErrSingular is wrapped by SingularError.
	ErrSingular    = errors.New("singular system")
	ErrEmptySystem = errors.New("system has no equations")
)

// DimensionError reports a system whose equation count differs from its
// number of distinct variables.
type DimensionError struct {
	Equations int
	Unknowns  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("system must have as many equations as unknowns to be solved directly (%d equations, %d unknowns)",
		e.Equations, e.Unknowns)
}

// SingularError is returned instead of an approximate result when the
// solver runs in strict mode.
type SingularError struct {
	Rank     int
	Unknowns int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("%v: rank %d, %d unknowns", ErrSingular, e.Rank, e.Unknowns)
}

func (e *SingularError) Unwrap() error {
	return ErrSingular
}

// Result maps each variable of a system to its value.
type Result struct {
	// Variables lists the names in sorted order.
	Variables []string
	Values    map[string]float64
	// Approximate is set when the pseudo-inverse fallback produced the
	// values.
	Approximate bool
	// Rank is the numerical rank of the coefficient matrix.
	Rank int
}

// Get returns the value of name.
func (r *Result) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// SolverVisitor solves the System it visits. Only System nodes are
// supported.
type SolverVisitor struct {
	parser.BaseVisitor[*Result]

	// Strict turns the singular fallback into a *SingularError.
	Strict bool
}

// Solve solves sys with the default, non-strict solver.
func Solve(sys *parser.System) (*Result, error) {
	return parser.Walk[*Result](SolverVisitor{}, sys)
}

func (s SolverVisitor) VisitSystem(sys *parser.System) (*Result, error) {
	if sys == nil || len(sys.Equations) == 0 {
		return nil, ErrEmptySystem
	}
	rows, cols := len(sys.Equations), len(sys.Variables())
	if rows != cols || cols == 0 {
		return nil, &DimensionError{Equations: rows, Unknowns: cols}
	}
	a, b, vars := Matrix(sys)

	var lu mat.LU
	lu.Factorize(a)
	var x mat.VecDense
	err := lu.SolveVecTo(&x, false, b)
	if err == nil {
		log.Debugf("solved %dx%d system by LU, condition %g", rows, cols, lu.Cond())
		return newResult(vars, &x, false, cols), nil
	}

	var cond mat.Condition
	if !errors.Is(err, mat.ErrSingular) && !errors.As(err, &cond) {
		return nil, fmt.Errorf("lu solve: %w", err)
	}

	px, rank, err := pseudoInverseSolve(a, b)
	if err != nil {
		return nil, err
	}
	if s.Strict {
		return nil, &SingularError{Rank: rank, Unknowns: cols}
	}
	log.Infof("singular system (rank %d of %d), using pseudo-inverse: approximate solution", rank, cols)
	res := newResult(vars, &px, true, rank)
	log.Debugf("least-squares residual %g", res.Residual(sys))
	return res, nil
}

// pseudoInverseSolve returns x = pinv(A)·b using a thin SVD. Singular values
// below max(m,n)·eps·σmax count as zero.
func pseudoInverseSolve(a *mat.Dense, b *mat.VecDense) (mat.VecDense, int, error) {
	var x mat.VecDense
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return x, 0, errors.New("svd factorization failed")
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	m, n := a.Dims()
	tol := 0.0
	if len(values) > 0 {
		tol = float64(max(m, n)) * epsilon * values[0]
	}

	var utb mat.VecDense
	utb.MulVec(u.T(), b)
	rank := 0
	for i, sigma := range values {
		if sigma > tol {
			utb.SetVec(i, utb.AtVec(i)/sigma)
			rank++
		} else {
			utb.SetVec(i, 0)
		}
	}
	x.MulVec(&v, &utb)
	return x, rank, nil
}

var epsilon = math.Nextafter(1, 2) - 1

func newResult(vars []string, x *mat.VecDense, approximate bool, rank int) *Result {
	values := make(map[string]float64, len(vars))
	for i, name := range vars {
		values[name] = x.AtVec(i)
	}
	return &Result{
		Variables:   vars,
		Values:      values,
		Approximate: approximate,
		Rank:        rank,
	}
}
