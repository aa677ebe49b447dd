package opti

import (
	"fmt"
	"math"
)

/*
Opti is a shared optimization environment: a single accumulator of decision
variables and constraints that one or many analyses append to. It is
append-only - an analysis adds its own variables and governing equations and
never touches entries added by others. Solve finds the point satisfying every
equality constraint; the caller then pushes the solution back through each
participating object with its SubstituteSolution visitor.
*/
type Opti struct {
	initial []float64
	lower   []float64
	upper   []float64
	rels    []Relation
}

type RelKind uint8

const (
	RelEqual RelKind = iota
	RelAtMost
	RelAtLeast
)

type Relation struct {
	LHS, RHS Scalar
	Kind     RelKind
}

func Equal(a, b Scalar) Relation   { return Relation{LHS: a, RHS: b, Kind: RelEqual} }
func AtMost(a, b Scalar) Relation  { return Relation{LHS: a, RHS: b, Kind: RelAtMost} }
func AtLeast(a, b Scalar) Relation { return Relation{LHS: a, RHS: b, Kind: RelAtLeast} }

func New() *Opti {
	return &Opti{}
}

// Variable adds a decision variable with an initial guess and optional
// bounds (lower, or lower and upper).
func (o *Opti) Variable(guess float64, bounds ...float64) Scalar {
	var (
		lb = math.Inf(-1)
		ub = math.Inf(1)
	)
	if len(bounds) > 0 {
		lb = bounds[0]
	}
	if len(bounds) > 1 {
		ub = bounds[1]
	}
	if len(bounds) > 2 {
		panic(fmt.Errorf("Variable accepts at most (guess, lower, upper), got %d bounds", len(bounds)))
	}
	idx := len(o.initial)
	o.initial = append(o.initial, guess)
	o.lower = append(o.lower, lb)
	o.upper = append(o.upper, ub)
	return Scalar{n: &node{op: opVar, idx: idx}}
}

func (o *Opti) NumVariables() int { return len(o.initial) }

func (o *Opti) NumConstraints() int { return len(o.rels) }

// SubjectTo appends constraints to the environment.
func (o *Opti) SubjectTo(rels ...Relation) {
	o.rels = append(o.rels, rels...)
}

func (o *Opti) project(x []float64) {
	for i := range x {
		if x[i] < o.lower[i] {
			x[i] = o.lower[i]
		}
		if x[i] > o.upper[i] {
			x[i] = o.upper[i]
		}
	}
}
