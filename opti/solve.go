package opti

import (
	"fmt"
	"math"

	"github.com/aerolab/govlm/utils"
)

const (
	maxNewtonIterations = 50
	residualTolerance   = 1.e-10
	rCondFloor          = 1.e-14
)

// Solution is the solved point of an environment. Any Scalar built from the
// environment's variables can be evaluated against it.
type Solution struct {
	o    *Opti
	vals []float64
}

// Value evaluates a Scalar at the solved point. Constants evaluate to
// themselves, so Value is safe to call on already-substituted quantities.
func (sol *Solution) Value(s Scalar) float64 {
	if s.n == nil {
		return s.val
	}
	t := newTape(sol.vals)
	return t.eval(s)
}

// Values returns a copy of the solved variable vector.
func (sol *Solution) Values() []float64 {
	return append([]float64{}, sol.vals...)
}

/*
Solve runs damped Newton iteration on the equality-constraint residuals.

The constraint set must determine the variables - one equality per variable.
Each iteration evaluates the residual vector, assembles the Jacobian by
reverse-mode differentiation into a sparse scatter matrix, densifies it, and
takes an LU step with a backtracking line search. Variable bounds are
enforced by projection. Inequality constraints are verified at the solved
point; a violated inequality fails the solve rather than triggering any
restoration phase.
*/
func (o *Opti) Solve() (sol *Solution, err error) {
	var (
		nVars = len(o.initial)
		eqs   []Scalar
	)
	for _, rel := range o.rels {
		if rel.Kind == RelEqual {
			eqs = append(eqs, rel.LHS.Sub(rel.RHS))
		}
	}
	if len(eqs) != nVars {
		return nil, fmt.Errorf("system is not square: %d variables, %d equality constraints", nVars, len(eqs))
	}
	x := append([]float64{}, o.initial...)
	o.project(x)
	if nVars == 0 {
		return &Solution{o: o, vals: x}, nil
	}

	residual := func(pt []float64) (r utils.Vector) {
		t := newTape(pt)
		r = utils.NewVector(len(eqs))
		for i, e := range eqs {
			r.Set(i, t.eval(e))
		}
		return
	}

	r := residual(x)
	rNorm := r.NormInf()
	tol := residualTolerance * (1 + rNorm)
	converged := rNorm < tol

	for iter := 0; iter < maxNewtonIterations && !converged; iter++ {
		// Jacobian by per-residual reverse sweeps
		J := utils.NewDOK(len(eqs), nVars)
		for i, e := range eqs {
			t := newTape(x)
			t.eval(e)
			grad := make(map[int]float64)
			t.gradient(e, grad)
			for j, v := range grad {
				J.Set(i, j, v)
			}
		}
		delta, rCond, luErr := J.ToDense().LUSolve(r)
		if luErr != nil {
			return nil, fmt.Errorf("constraint Jacobian is singular: %w", luErr)
		}
		if rCond < rCondFloor {
			return nil, fmt.Errorf("constraint Jacobian is ill-conditioned, estimated condition number %.3e", 1/rCond)
		}

		// Backtracking line search on the residual norm
		var (
			lambda   = 1.0
			accepted = false
		)
		for k := 0; k < 12; k++ {
			xTrial := make([]float64, nVars)
			for j := range xTrial {
				xTrial[j] = x[j] - lambda*delta.AtVec(j)
			}
			o.project(xTrial)
			rTrial := residual(xTrial)
			if rtn := rTrial.NormInf(); rtn < rNorm*(1-1.e-4*lambda) || rtn < tol {
				x, r, rNorm = xTrial, rTrial, rtn
				accepted = true
				break
			}
			lambda /= 2
		}
		if !accepted {
			return nil, fmt.Errorf("Newton iteration stalled at residual %.3e after %d iterations", rNorm, iter+1)
		}
		converged = rNorm < tol
	}
	if !converged {
		return nil, fmt.Errorf("failed to converge in %d iterations, residual %.3e", maxNewtonIterations, rNorm)
	}

	sol = &Solution{o: o, vals: x}
	// Inequalities are a verification pass, not a solver feature
	for _, rel := range o.rels {
		var slack float64
		switch rel.Kind {
		case RelAtMost:
			slack = sol.Value(rel.RHS) - sol.Value(rel.LHS)
		case RelAtLeast:
			slack = sol.Value(rel.LHS) - sol.Value(rel.RHS)
		default:
			continue
		}
		if slack < -math.Sqrt(residualTolerance) {
			return nil, fmt.Errorf("inequality constraint violated by %.3e at the solved point", -slack)
		}
	}
	return sol, nil
}
