package opti

import (
	"math"
	"sync/atomic"
)

/*
Scalar is the quantity type every aerodynamic computation runs on. A Scalar is
either a concrete constant or a handle to an expression node referencing
environment variables. Arithmetic between two constants folds immediately, so
a fully numeric analysis builds no graph at all; as soon as a variable enters
an expression, the operations record themselves for later evaluation and
differentiation.

All operations are smooth - there is no branching on floating point values,
which keeps every expression differentiable end to end.
*/
type Scalar struct {
	val float64
	n   *node
}

type opKind uint8

const (
	opVar opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opSin
	opCos
	opTan
	opSqrt
	opPow
	opAtan2
)

type node struct {
	op   opKind
	x, y Scalar
	idx  int     // variable index, opVar only
	p    float64 // constant exponent, opPow only
	val  float64 // forward value cache
	adj  float64 // reverse pass accumulator
	mark uint64
}

var epochCounter uint64

func nextEpoch() uint64 { return atomic.AddUint64(&epochCounter, 1) }

func Const(v float64) Scalar { return Scalar{val: v} }

func (s Scalar) IsConstant() bool { return s.n == nil }

// Float returns the concrete value of a constant Scalar. The second return
// is false for a symbolic Scalar, whose value is only defined relative to a
// Solution.
func (s Scalar) Float() (float64, bool) {
	if s.n != nil {
		return 0, false
	}
	return s.val, true
}

// ConstEquals reports whether s is a constant exactly equal to v. Symbolic
// scalars never compare equal - callers use this to decide whether a
// symmetry or zero-value shortcut is provably safe.
func (s Scalar) ConstEquals(v float64) bool {
	return s.n == nil && s.val == v
}

func (s Scalar) Add(a Scalar) Scalar {
	if s.n == nil && a.n == nil {
		return Scalar{val: s.val + a.val}
	}
	return Scalar{n: &node{op: opAdd, x: s, y: a}}
}

func (s Scalar) Sub(a Scalar) Scalar {
	if s.n == nil && a.n == nil {
		return Scalar{val: s.val - a.val}
	}
	return Scalar{n: &node{op: opSub, x: s, y: a}}
}

func (s Scalar) Mul(a Scalar) Scalar {
	if s.n == nil && a.n == nil {
		return Scalar{val: s.val * a.val}
	}
	return Scalar{n: &node{op: opMul, x: s, y: a}}
}

func (s Scalar) Div(a Scalar) Scalar {
	if s.n == nil && a.n == nil {
		return Scalar{val: s.val / a.val}
	}
	return Scalar{n: &node{op: opDiv, x: s, y: a}}
}

func (s Scalar) Neg() Scalar {
	if s.n == nil {
		return Scalar{val: -s.val}
	}
	return Scalar{n: &node{op: opNeg, x: s}}
}

func (s Scalar) Scale(f float64) Scalar { return s.Mul(Const(f)) }

func Sin(s Scalar) Scalar {
	if s.n == nil {
		return Scalar{val: math.Sin(s.val)}
	}
	return Scalar{n: &node{op: opSin, x: s}}
}

func Cos(s Scalar) Scalar {
	if s.n == nil {
		return Scalar{val: math.Cos(s.val)}
	}
	return Scalar{n: &node{op: opCos, x: s}}
}

func Tan(s Scalar) Scalar {
	if s.n == nil {
		return Scalar{val: math.Tan(s.val)}
	}
	return Scalar{n: &node{op: opTan, x: s}}
}

func Sqrt(s Scalar) Scalar {
	if s.n == nil {
		return Scalar{val: math.Sqrt(s.val)}
	}
	return Scalar{n: &node{op: opSqrt, x: s}}
}

// Pow raises s to a constant exponent p.
func Pow(s Scalar, p float64) Scalar {
	if s.n == nil {
		return Scalar{val: math.Pow(s.val, p)}
	}
	return Scalar{n: &node{op: opPow, x: s, p: p}}
}

func Atan2(y, x Scalar) Scalar {
	if y.n == nil && x.n == nil {
		return Scalar{val: math.Atan2(y.val, x.val)}
	}
	return Scalar{n: &node{op: opAtan2, x: y, y: x}}
}

// Substitute replaces s with the constant it evaluates to at the solved
// point. This is the per-entity substitution visitor's leaf operation.
func (s Scalar) Substitute(sol *Solution) Scalar {
	return Const(sol.Value(s))
}

func (s Scalar) childVal() float64 {
	if s.n == nil {
		return s.val
	}
	return s.n.val
}

// tape records post-order evaluation so the reverse pass can run over the
// captured nodes parents-first.
type tape struct {
	order []*node
	epoch uint64
	vals  []float64
}

func newTape(vals []float64) *tape {
	return &tape{epoch: nextEpoch(), vals: vals}
}

func (t *tape) eval(s Scalar) float64 {
	if s.n == nil {
		return s.val
	}
	n := s.n
	if n.mark == t.epoch {
		return n.val
	}
	switch n.op {
	case opVar:
		n.val = t.vals[n.idx]
	case opAdd:
		n.val = t.eval(n.x) + t.eval(n.y)
	case opSub:
		n.val = t.eval(n.x) - t.eval(n.y)
	case opMul:
		n.val = t.eval(n.x) * t.eval(n.y)
	case opDiv:
		n.val = t.eval(n.x) / t.eval(n.y)
	case opNeg:
		n.val = -t.eval(n.x)
	case opSin:
		n.val = math.Sin(t.eval(n.x))
	case opCos:
		n.val = math.Cos(t.eval(n.x))
	case opTan:
		n.val = math.Tan(t.eval(n.x))
	case opSqrt:
		n.val = math.Sqrt(t.eval(n.x))
	case opPow:
		n.val = math.Pow(t.eval(n.x), n.p)
	case opAtan2:
		n.val = math.Atan2(t.eval(n.x), t.eval(n.y))
	}
	n.mark = t.epoch
	t.order = append(t.order, n)
	return n.val
}

// gradient runs the reverse pass from root, accumulating d(root)/d(var) into
// grad keyed by variable index. The tape must have evaluated root already.
func (t *tape) gradient(root Scalar, grad map[int]float64) {
	if root.n == nil {
		return
	}
	for _, n := range t.order {
		n.adj = 0
	}
	root.n.adj = 1
	for i := len(t.order) - 1; i >= 0; i-- {
		n := t.order[i]
		a := n.adj
		if a == 0 {
			continue
		}
		switch n.op {
		case opVar:
			grad[n.idx] += a
		case opAdd:
			addAdj(n.x, a)
			addAdj(n.y, a)
		case opSub:
			addAdj(n.x, a)
			addAdj(n.y, -a)
		case opMul:
			addAdj(n.x, a*n.y.childVal())
			addAdj(n.y, a*n.x.childVal())
		case opDiv:
			yv := n.y.childVal()
			addAdj(n.x, a/yv)
			addAdj(n.y, -a*n.x.childVal()/(yv*yv))
		case opNeg:
			addAdj(n.x, -a)
		case opSin:
			addAdj(n.x, a*math.Cos(n.x.childVal()))
		case opCos:
			addAdj(n.x, -a*math.Sin(n.x.childVal()))
		case opTan:
			c := math.Cos(n.x.childVal())
			addAdj(n.x, a/(c*c))
		case opSqrt:
			addAdj(n.x, a*0.5/n.val)
		case opPow:
			addAdj(n.x, a*n.p*math.Pow(n.x.childVal(), n.p-1))
		case opAtan2:
			xv, yv := n.x.childVal(), n.y.childVal()
			d := xv*xv + yv*yv
			addAdj(n.x, a*yv/d)
			addAdj(n.y, -a*xv/d)
		}
	}
}

func addAdj(s Scalar, a float64) {
	if s.n != nil {
		s.n.adj += a
	}
}
