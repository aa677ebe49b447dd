package vlm

import (
	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
)

// Panel is one lattice element: a quadrilateral with a horseshoe vortex whose
// bound leg lies on the quarter-chord line and whose collocation point sits
// at three-quarter chord, mid span.
//
// Corners run front-inner, back-inner, back-outer, front-outer, inner being
// the end nearest the symmetry plane. The unit normal points up (+z) for a
// flat wing at zero twist.
type Panel struct {
	Corners     [4]geometry.Vec3
	VortexA     geometry.Vec3 // bound leg start
	VortexB     geometry.Vec3 // bound leg end, toward +y
	Collocation geometry.Vec3
	Normal      geometry.Vec3
	Area        opti.Scalar
	Chord       opti.Scalar // local strip chord, used for Reynolds number

	// Sectional polar blending state. BlendFraction interpolates from
	// AirfoilInner toward AirfoilOuter across the wing segment.
	AirfoilInner  *geometry.Airfoil
	AirfoilOuter  *geometry.Airfoil
	BlendFraction float64
	Deflection    opti.Scalar // control deflection at this strip, rad

	WingIndex int
	Strip     int // spanwise strip id, shared by chordwise neighbors
	Mirrored  bool

	// HasImage marks panels whose port-side twin is represented by an image
	// vortex instead of a generated panel. Centerline surfaces never carry
	// an image; one coinciding with its own reflection would cancel itself
	// out of the influence system.
	HasImage bool
}

func (p *Panel) BoundMidpoint() geometry.Vec3 {
	return p.VortexA.Lerp(p.VortexB, opti.Const(0.5))
}

func (p *Panel) BoundVector() geometry.Vec3 {
	return p.VortexB.Sub(p.VortexA)
}

// chordwiseDirection is the mean front-to-back unit vector of the panel, used
// to decompose the local velocity into an effective sectional incidence.
func (p *Panel) chordwiseDirection() geometry.Vec3 {
	d := p.Corners[1].Sub(p.Corners[0]).Add(p.Corners[2].Sub(p.Corners[3]))
	return d.Normalize()
}

// applyDeflection tilts the flow-tangency normal about the bound leg axis by
// the effectiveness-scaled control angle, which feeds the deflection into the
// inviscid circulation the way a plain flap changes section lift.
func (p *Panel) applyDeflection() {
	if p.Deflection.ConstEquals(0) {
		return
	}
	var (
		theta = p.Deflection.Scale(geometry.FlapEffectiveness)
		axis  = p.BoundVector().Normalize()
	)
	p.Normal = p.Normal.Scale(opti.Cos(theta)).
		Add(axis.Cross(p.Normal).Scale(opti.Sin(theta)))
}

// mirror reflects the panel across the y=0 plane. Corners keep their
// front-inner..front-outer roles (inner stays nearest the symmetry plane) and
// the normal is the y-reflection of the source normal. The mirrored control
// deflection keeps its sign for flap-type (symmetric) controls and flips for
// aileron-type controls.
func (p *Panel) mirror(symmetricControl bool) *Panel {
	m := &Panel{
		Corners: [4]geometry.Vec3{
			p.Corners[0].MirrorY(),
			p.Corners[1].MirrorY(),
			p.Corners[2].MirrorY(),
			p.Corners[3].MirrorY(),
		},
		// Reversing the bound leg keeps the vortex line running port tip to
		// starboard tip, so mirrored circulations solve with the same sign.
		VortexA:       p.VortexB.MirrorY(),
		VortexB:       p.VortexA.MirrorY(),
		Collocation:   p.Collocation.MirrorY(),
		Normal:        p.Normal.MirrorY(),
		Area:          p.Area,
		Chord:         p.Chord,
		AirfoilInner:  p.AirfoilInner,
		AirfoilOuter:  p.AirfoilOuter,
		BlendFraction: p.BlendFraction,
		Deflection:    p.Deflection,
		WingIndex:     p.WingIndex,
		Strip:         p.Strip + 1,
		Mirrored:      true,
	}
	if !symmetricControl {
		m.Deflection = p.Deflection.Neg()
	}
	return m
}

// IsConstant reports whether every geometric attribute of the panel is a
// concrete number, which enables the parallel numeric fast path.
func (p *Panel) IsConstant() bool {
	for _, c := range p.Corners {
		if !c.IsConstant() {
			return false
		}
	}
	return p.VortexA.IsConstant() && p.VortexB.IsConstant() &&
		p.Collocation.IsConstant() && p.Normal.IsConstant() &&
		p.Area.IsConstant() && p.Chord.IsConstant() && p.Deflection.IsConstant()
}

func (p *Panel) substituteSolution(sol *opti.Solution) {
	for i := range p.Corners {
		p.Corners[i] = p.Corners[i].Substitute(sol)
	}
	p.VortexA = p.VortexA.Substitute(sol)
	p.VortexB = p.VortexB.Substitute(sol)
	p.Collocation = p.Collocation.Substitute(sol)
	p.Normal = p.Normal.Substitute(sol)
	p.Area = p.Area.Substitute(sol)
	p.Chord = p.Chord.Substitute(sol)
	p.Deflection = p.Deflection.Substitute(sol)
}
