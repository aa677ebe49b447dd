package geometry

import (
	"fmt"

	"github.com/aerolab/govlm/opti"
)

// Airplane is the complete configuration handed to an analysis: lifting
// surfaces, bodies, the moment reference point, and the reference
// quantities used for nondimensionalization.
type Airplane struct {
	Name      string
	XYZRef    Vec3 // moment reference, normally the center of gravity
	Wings     []*Wing
	Fuselages []*Fuselage

	SRef opti.Scalar // reference area
	CRef opti.Scalar // reference chord
	BRef opti.Scalar // reference span
}

// NewAirplane populates missing reference quantities from the first wing,
// mirroring the convention that the main wing is listed first.
func NewAirplane(name string, xyzRef Vec3, wings []*Wing, fuselages []*Fuselage) *Airplane {
	a := &Airplane{
		Name:      name,
		XYZRef:    xyzRef,
		Wings:     wings,
		Fuselages: fuselages,
		SRef:      opti.Const(0),
		CRef:      opti.Const(0),
		BRef:      opti.Const(0),
	}
	if len(wings) > 0 {
		main := wings[0]
		a.SRef = main.Area()
		a.CRef = main.MeanAerodynamicChord()
		a.BRef = main.Span()
	}
	return a
}

func (a *Airplane) Validate() error {
	if len(a.Wings) == 0 {
		return &GeometryError{Reason: "airplane has no lifting surfaces"}
	}
	for _, w := range a.Wings {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsEntirelySymmetric reports whether the configuration is provably
// mirror-symmetric about the y=0 plane, which is a precondition for solving
// the reduced half system.
func (a *Airplane) IsEntirelySymmetric() bool {
	for _, w := range a.Wings {
		if !w.IsEntirelySymmetric() {
			return false
		}
	}
	for _, f := range a.Fuselages {
		if !f.IsCentered() {
			return false
		}
	}
	return true
}

func (a *Airplane) String() string {
	return fmt.Sprintf("Airplane %q (%d wings, %d fuselages)", a.Name, len(a.Wings), len(a.Fuselages))
}

func (a *Airplane) SubstituteSolution(sol *opti.Solution) {
	a.XYZRef = a.XYZRef.Substitute(sol)
	a.SRef = a.SRef.Substitute(sol)
	a.CRef = a.CRef.Substitute(sol)
	a.BRef = a.BRef.Substitute(sol)
	for _, w := range a.Wings {
		w.SubstituteSolution(sol)
	}
	for _, f := range a.Fuselages {
		f.SubstituteSolution(sol)
	}
}
