package geometry

import (
	"github.com/aerolab/govlm/opti"
)

// FuselageXSec is one elliptical cross section of a body, centered on XYZc
// (relative to the fuselage nose) with the given width and height.
type FuselageXSec struct {
	XYZc   Vec3
	Width  opti.Scalar
	Height opti.Scalar
}

// Fuselage is a body of ordered cross sections. Bodies are meshed for
// export and visualization; the lattice solver does not panel them.
type Fuselage struct {
	Name  string
	XYZLe Vec3
	XSecs []*FuselageXSec
}

func (f *Fuselage) Validate() error {
	if len(f.XSecs) < 2 {
		return &GeometryError{Surface: f.Name, Reason: "insufficient cross sections, need at least 2"}
	}
	return nil
}

// IsCentered reports whether the body provably lies on the symmetry plane.
func (f *Fuselage) IsCentered() bool {
	if !f.XYZLe.Y.ConstEquals(0) {
		return false
	}
	for _, xs := range f.XSecs {
		if !xs.XYZc.Y.ConstEquals(0) {
			return false
		}
	}
	return true
}

func (f *Fuselage) SubstituteSolution(sol *opti.Solution) {
	f.XYZLe = f.XYZLe.Substitute(sol)
	for _, xs := range f.XSecs {
		xs.XYZc = xs.XYZc.Substitute(sol)
		xs.Width = xs.Width.Substitute(sol)
		xs.Height = xs.Height.Substitute(sol)
	}
}
