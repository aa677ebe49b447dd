package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerolab/govlm/opti"
)

func rectWing(span, chord float64) *Wing {
	af := NewFlatPlate()
	return &Wing{
		Name:      "Main Wing",
		Symmetric: true,
		XSecs: []*WingXSec{
			{XYZLe: NewVec3(0, 0, 0), Chord: opti.Const(chord), Airfoil: af},
			{XYZLe: NewVec3(0, span/2, 0), Chord: opti.Const(chord), Airfoil: af},
		},
	}
}

func TestVec3(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)
	c := a.Cross(b)
	f, ok := c.Float()
	assert.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 1}, f)

	d, _ := a.Dot(b).Float()
	assert.Equal(t, 0., d)

	n, _ := NewVec3(3, 4, 0).Norm().Float()
	assert.InDelta(t, 5, n, 1.e-14)

	m, _ := NewVec3(1, 2, 3).MirrorY().Float()
	assert.Equal(t, [3]float64{1, -2, 3}, m)

	l, _ := a.Lerp(b, opti.Const(0.25)).Float()
	assert.Equal(t, [3]float64{0.75, 0.25, 0}, l)
}

func TestWingReferenceQuantities(t *testing.T) {
	w := rectWing(10, 1)
	span, _ := w.Span().Float()
	assert.InDelta(t, 10, span, 1.e-12)
	area, _ := w.Area().Float()
	assert.InDelta(t, 10, area, 1.e-12)
	mac, _ := w.MeanAerodynamicChord().Float()
	assert.InDelta(t, 1, mac, 1.e-12)
	ar, _ := w.AspectRatio().Float()
	assert.InDelta(t, 10, ar, 1.e-12)
}

func TestTaperedMAC(t *testing.T) {
	af := NewFlatPlate()
	w := &Wing{
		Name:      "Tapered",
		Symmetric: true,
		XSecs: []*WingXSec{
			{XYZLe: NewVec3(0, 0, 0), Chord: opti.Const(2), Airfoil: af},
			{XYZLe: NewVec3(0.5, 4, 0), Chord: opti.Const(1), Airfoil: af},
		},
	}
	// Trapezoid c1=2, c2=1: MAC = (2/3)(3 - 2/3) = 14/9
	mac, _ := w.MeanAerodynamicChord().Float()
	assert.InDelta(t, 14./9., mac, 1.e-12)
}

func TestWingValidation(t *testing.T) {
	af := NewFlatPlate()
	// Too few sections
	w := &Wing{Name: "Stub", XSecs: []*WingXSec{
		{XYZLe: NewVec3(0, 0, 0), Chord: opti.Const(1), Airfoil: af},
	}}
	err := w.Validate()
	assert.Error(t, err)
	var ge *GeometryError
	assert.ErrorAs(t, err, &ge)

	// Zero chord
	w = rectWing(10, 1)
	w.XSecs[1].Chord = opti.Const(0)
	assert.Error(t, w.Validate())

	// Coincident sections
	w = rectWing(10, 1)
	w.XSecs[1].XYZLe = NewVec3(0, 0, 0)
	assert.Error(t, w.Validate())

	// Healthy wing passes
	assert.NoError(t, rectWing(10, 1).Validate())
}

func TestNACA4(t *testing.T) {
	af, err := NewNACA4("naca0012")
	assert.NoError(t, err)
	assert.True(t, af.IsSymmetric())
	cl, ok := af.CLFunction(opti.Const(0.1), opti.Const(1.e6), opti.Const(0), opti.Const(0)).Float()
	assert.True(t, ok)
	assert.InDelta(t, 2*math.Pi*0.1, cl, 1.e-12)

	af, err = NewNACA4("4412")
	assert.NoError(t, err)
	assert.False(t, af.IsSymmetric())
	// Cambered section lifts at zero alpha
	cl, _ = af.CLFunction(opti.Const(0), opti.Const(1.e6), opti.Const(0), opti.Const(0)).Float()
	assert.Greater(t, cl, 0.)

	_, err = NewNACA4("not-a-code")
	assert.Error(t, err)
}

func TestAirplaneReferenceDefaults(t *testing.T) {
	a := NewAirplane("Test Glider", NewVec3(0, 0, 0), []*Wing{rectWing(10, 1)}, nil)
	s, _ := a.SRef.Float()
	b, _ := a.BRef.Float()
	c, _ := a.CRef.Float()
	assert.InDelta(t, 10, s, 1.e-12)
	assert.InDelta(t, 10, b, 1.e-12)
	assert.InDelta(t, 1, c, 1.e-12)
	assert.True(t, a.IsEntirelySymmetric())
	assert.NoError(t, a.Validate())
}

func TestSymmetryPredicate(t *testing.T) {
	// Centered fin with a symmetric airfoil keeps the airplane symmetric
	fin := &Wing{
		Name: "Vertical Stabilizer",
		XSecs: []*WingXSec{
			{XYZLe: NewVec3(0, 0, 0), Chord: opti.Const(0.5), Airfoil: NewFlatPlate()},
			{XYZLe: NewVec3(0.1, 0, 0.8), Chord: opti.Const(0.3), Airfoil: NewFlatPlate()},
		},
	}
	a := NewAirplane("WithFin", NewVec3(0, 0, 0), []*Wing{rectWing(10, 1), fin}, nil)
	assert.True(t, a.IsEntirelySymmetric())

	// Offset fin breaks symmetry
	fin.XYZLe = NewVec3(0, 0.5, 0)
	assert.False(t, a.IsEntirelySymmetric())
	fin.XYZLe = NewVec3(0, 0, 0)

	// Asymmetric (aileron-type) deflection breaks symmetry
	w := rectWing(10, 1)
	w.XSecs[0].ControlDeflection = opti.Const(5)
	w.XSecs[0].ControlIsSymmetric = false
	a = NewAirplane("Aileron", NewVec3(0, 0, 0), []*Wing{w}, nil)
	assert.False(t, a.IsEntirelySymmetric())
}

func TestSubstituteSolution(t *testing.T) {
	o := opti.New()
	chord := o.Variable(1)
	o.SubjectTo(opti.Equal(chord, opti.Const(2)))

	af := NewFlatPlate()
	w := &Wing{
		Name:      "Variable Chord",
		Symmetric: true,
		XSecs: []*WingXSec{
			{XYZLe: NewVec3(0, 0, 0), Chord: chord, Airfoil: af},
			{XYZLe: NewVec3(0, 5, 0), Chord: chord, Airfoil: af},
		},
	}
	a := NewAirplane("Sized", NewVec3(0, 0, 0), []*Wing{w}, nil)
	assert.False(t, a.SRef.IsConstant())

	sol, err := o.Solve()
	assert.NoError(t, err)
	a.SubstituteSolution(sol)
	s, ok := a.SRef.Float()
	assert.True(t, ok)
	assert.InDelta(t, 20, s, 1.e-9)
	c, _ := w.XSecs[0].Chord.Float()
	assert.InDelta(t, 2, c, 1.e-9)
}
