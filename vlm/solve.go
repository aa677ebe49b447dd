package vlm

import (
	"github.com/aerolab/govlm/opti"
	"github.com/aerolab/govlm/utils"
)

func constValues(xs []opti.Scalar) (vals []float64, ok bool) {
	vals = make([]float64, len(xs))
	for i, x := range xs {
		if vals[i], ok = x.Float(); !ok {
			return nil, false
		}
	}
	return vals, true
}

// solveCirculationDirect solves the flow-tangency system numerically by LU
// factorization. A singular or near-singular matrix is reported as a
// SolverError with the estimated condition number rather than silently
// returning a garbage circulation distribution.
func solveCirculationDirect(aic, rhs []opti.Scalar, n int, rCondFloor float64) (gamma []opti.Scalar, err error) {
	aVals, okA := constValues(aic)
	bVals, okB := constValues(rhs)
	if !okA || !okB {
		return nil, &SolverError{Reason: "direct solve requires a fully numeric system"}
	}
	var (
		a = utils.NewMatrix(n, n, aVals)
		b = utils.NewVector(n, bVals)
	)
	x, rCond, luErr := a.LUSolve(b)
	if luErr != nil {
		return nil, &SolverError{Reason: "singular influence matrix, check for coincident or overlapping panels"}
	}
	if rCond < rCondFloor {
		return nil, &SolverError{
			Reason:          "ill-conditioned influence matrix, check for nearly coincident panels",
			ConditionNumber: 1 / rCond,
		}
	}
	gamma = make([]opti.Scalar, n)
	for i := range gamma {
		gamma[i] = opti.Const(x.V.AtVec(i))
	}
	return gamma, nil
}

// appendCirculationSystem registers the circulation strengths as variables of
// the caller's environment and adds one flow-tangency equality per
// collocation point. The circulations then solve simultaneously with
// whatever else the environment constrains.
func appendCirculationSystem(env *opti.Opti, aic, rhs []opti.Scalar, n int) (gamma []opti.Scalar) {
	gamma = make([]opti.Scalar, n)
	for j := range gamma {
		gamma[j] = env.Variable(0)
	}
	for i := 0; i < n; i++ {
		lhs := opti.Const(0)
		for j := 0; j < n; j++ {
			lhs = lhs.Add(aic[i*n+j].Mul(gamma[j]))
		}
		env.SubjectTo(opti.Equal(lhs, rhs[i]))
	}
	return
}
