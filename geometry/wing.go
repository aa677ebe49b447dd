package geometry

import (
	"github.com/aerolab/govlm/opti"
)

// WingXSec is one cross section of a lifting surface. Its leading edge is
// positioned relative to the owning wing's leading edge.
type WingXSec struct {
	XYZLe              Vec3
	Chord              opti.Scalar
	Twist              opti.Scalar // degrees, positive leading edge up
	Airfoil            *Airfoil
	ControlDeflection  opti.Scalar // degrees, trailing edge down positive
	ControlIsSymmetric bool        // deflects the same sign on the mirrored side
}

// Wing is an ordered run of cross sections. A Symmetric wing describes its
// starboard (+y) half only; the port half is generated by mirroring.
type Wing struct {
	Name      string
	XYZLe     Vec3
	XSecs     []*WingXSec
	Symmetric bool
}

// Validate rejects surfaces that cannot be paneled.
func (w *Wing) Validate() error {
	if len(w.XSecs) < 2 {
		return &GeometryError{Surface: w.Name, Reason: "insufficient cross sections, need at least 2"}
	}
	for i, xs := range w.XSecs {
		if xs.Chord.ConstEquals(0) {
			return &GeometryError{Surface: w.Name, Reason: "degenerate panel: zero chord cross section"}
		}
		if xs.Airfoil == nil {
			return &GeometryError{Surface: w.Name, Reason: "cross section missing an airfoil"}
		}
		if i > 0 {
			d := xs.XYZLe.Sub(w.XSecs[i-1].XYZLe)
			if dv, ok := d.Float(); ok && dv[0] == 0 && dv[1] == 0 && dv[2] == 0 {
				return &GeometryError{Surface: w.Name, Reason: "degenerate panel: coincident adjacent cross sections"}
			}
		}
	}
	return nil
}

// segmentWidth is the spanwise (yz-projected) length of the segment between
// cross sections i and i+1.
func (w *Wing) segmentWidth(i int) opti.Scalar {
	d := w.XSecs[i+1].XYZLe.Sub(w.XSecs[i].XYZLe)
	return opti.Sqrt(d.Y.Mul(d.Y).Add(d.Z.Mul(d.Z)))
}

// Span is the summed spanwise segment length, doubled for symmetric wings.
func (w *Wing) Span() (s opti.Scalar) {
	s = opti.Const(0)
	for i := 0; i < len(w.XSecs)-1; i++ {
		s = s.Add(w.segmentWidth(i))
	}
	if w.Symmetric {
		s = s.Scale(2)
	}
	return
}

// Area is the planform area from trapezoidal segments, doubled for
// symmetric wings.
func (w *Wing) Area() (a opti.Scalar) {
	a = opti.Const(0)
	for i := 0; i < len(w.XSecs)-1; i++ {
		cAvg := w.XSecs[i].Chord.Add(w.XSecs[i+1].Chord).Scale(0.5)
		a = a.Add(cAvg.Mul(w.segmentWidth(i)))
	}
	if w.Symmetric {
		a = a.Scale(2)
	}
	return
}

// MeanAerodynamicChord is the area-weighted MAC over the trapezoidal
// segments.
func (w *Wing) MeanAerodynamicChord() opti.Scalar {
	var (
		num  = opti.Const(0)
		area = opti.Const(0)
	)
	for i := 0; i < len(w.XSecs)-1; i++ {
		var (
			c1 = w.XSecs[i].Chord
			c2 = w.XSecs[i+1].Chord
			dw = w.segmentWidth(i)
		)
		segArea := c1.Add(c2).Scale(0.5).Mul(dw)
		// MAC of a trapezoid: (2/3)(c1 + c2 - c1 c2 / (c1 + c2))
		mac := c1.Add(c2).Sub(c1.Mul(c2).Div(c1.Add(c2))).Scale(2. / 3.)
		num = num.Add(mac.Mul(segArea))
		area = area.Add(segArea)
	}
	return num.Div(area)
}

func (w *Wing) AspectRatio() opti.Scalar {
	b := w.Span()
	return b.Mul(b).Div(w.Area())
}

// IsEntirelySymmetric reports whether the wing is provably mirror-symmetric
// about the y=0 plane, including its control deflections. Wings carrying
// symbolic lateral placement are conservatively reported asymmetric.
func (w *Wing) IsEntirelySymmetric() bool {
	for _, xs := range w.XSecs {
		if !(xs.ControlIsSymmetric || xs.ControlDeflection.ConstEquals(0)) {
			return false
		}
	}
	if w.Symmetric {
		return true
	}
	// A non-mirrored wing must lie in the symmetry plane with symmetric
	// sections, e.g. a centered vertical stabilizer.
	if !w.XYZLe.Y.ConstEquals(0) {
		return false
	}
	for _, xs := range w.XSecs {
		if !xs.XYZLe.Y.ConstEquals(0) {
			return false
		}
		if !xs.Twist.ConstEquals(0) {
			return false
		}
		if !xs.Airfoil.IsSymmetric() {
			return false
		}
	}
	return true
}

func (w *Wing) SubstituteSolution(sol *opti.Solution) {
	w.XYZLe = w.XYZLe.Substitute(sol)
	for _, xs := range w.XSecs {
		xs.XYZLe = xs.XYZLe.Substitute(sol)
		xs.Chord = xs.Chord.Substitute(sol)
		xs.Twist = xs.Twist.Substitute(sol)
		xs.ControlDeflection = xs.ControlDeflection.Substitute(sol)
	}
}
