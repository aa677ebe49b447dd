package vlm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
)

func flatWing(span, chord float64) *geometry.Wing {
	af := geometry.NewFlatPlate()
	return &geometry.Wing{
		Name:      "Main Wing",
		Symmetric: true,
		XSecs: []*geometry.WingXSec{
			{XYZLe: geometry.NewVec3(0, 0, 0), Chord: opti.Const(chord), Airfoil: af},
			{XYZLe: geometry.NewVec3(0, span/2, 0), Chord: opti.Const(chord), Airfoil: af},
		},
	}
}

func flatPlane(span, chord float64) *geometry.Airplane {
	return geometry.NewAirplane("Test Wing", geometry.NewVec3(0, 0, 0),
		[]*geometry.Wing{flatWing(span, chord)}, nil)
}

func opAtAlpha(alphaDeg float64) *OperatingPoint {
	op := NewOperatingPoint()
	op.Alpha = opti.Const(alphaDeg)
	return op
}

func solveCL(t *testing.T, airplane *geometry.Airplane, op *OperatingPoint, opts Options) *Coefficients {
	v, err := New(airplane, op, opts, nil)
	assert.NoError(t, err)
	c, err := v.Coefficients()
	assert.NoError(t, err)
	return c
}

func TestPanelGeneration(t *testing.T) {
	var (
		opts = Options{
			SpanwisePanels:  4,
			ChordwisePanels: 2,
			SpanwiseSpacing: LinearSpacing,
			CoreRadius:      1.e-12,
			RCondFloor:      1.e-13,
		}
		airplane = flatPlane(5, 1)
	)
	panels, err := GeneratePanels(airplane, opts, false)
	assert.NoError(t, err)
	assert.Equal(t, 16, len(panels)) // 4 x 2, mirrored

	var (
		areaSum  = 0.
		nMirror  = 0
		firstNrm = floats(t, panels[0].Normal)
	)
	for _, p := range panels {
		a, ok := p.Area.Float()
		assert.True(t, ok)
		areaSum += a
		if p.Mirrored {
			nMirror++
			mid := floats(t, p.BoundMidpoint())
			assert.Less(t, mid[1], 0.)
		}
		// Bound leg points toward +y on both sides
		l := floats(t, p.BoundVector())
		assert.Greater(t, l[1], 0.)
		// Collocation sits aft of the bound leg
		cp := floats(t, p.Collocation)
		va := floats(t, p.VortexA)
		assert.Greater(t, cp[0], va[0])
	}
	assert.Equal(t, 8, nMirror)
	// Panels partition the planform
	assert.InDelta(t, 5, areaSum, 1.e-12)
	// Flat wing normals point straight up
	assert.InDelta(t, 1, firstNrm[2], 1.e-12)

	half, err := GeneratePanels(airplane, opts, true)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(half))
}

func TestFlatPlateLiftRegression(t *testing.T) {
	// AR 5 rectangular flat plate at 5 deg. Helmbold predicts CL 0.371,
	// classical lifting line 0.392; the lattice must land in that band.
	c := solveCL(t, flatPlane(5, 1), opAtAlpha(5), DefaultOptions())

	cl, ok := c.CL.Float()
	assert.True(t, ok)
	assert.Greater(t, cl, 0.33)
	assert.Less(t, cl, 0.43)

	cdi, _ := c.CDInduced.Float()
	assert.Greater(t, cdi, 0.)
	assert.Less(t, cdi, 0.03)
	cdp, _ := c.CDProfile.Float()
	assert.InDelta(t, 0, cdp, 1.e-12) // flat plate polar has no profile drag

	// Symmetric flight: no sideforce, roll or yaw
	cy, _ := c.CY.Float()
	roll, _ := c.Cl.Float()
	yaw, _ := c.Cn.Float()
	assert.InDelta(t, 0, cy, 1.e-9)
	assert.InDelta(t, 0, roll, 1.e-9)
	assert.InDelta(t, 0, yaw, 1.e-9)

	// Lift acts aft of the leading-edge reference, so it pitches nose down
	cm, _ := c.Cm.Float()
	assert.Less(t, cm, 0.)
}

func TestHalfSystemMatchesFull(t *testing.T) {
	var (
		optsHalf = DefaultOptions()
		optsFull = DefaultOptions()
	)
	optsFull.ExploitSymmetry = false

	vHalf, err := New(flatPlane(8, 1), opAtAlpha(4), optsHalf, nil)
	assert.NoError(t, err)
	vFull, err := New(flatPlane(8, 1), opAtAlpha(4), optsFull, nil)
	assert.NoError(t, err)

	assert.True(t, vHalf.HalfSystem)
	assert.False(t, vFull.HalfSystem)
	assert.Equal(t, len(vFull.Panels), 2*len(vHalf.Panels))

	cH, _ := vHalf.Coefficients()
	cF, _ := vFull.Coefficients()
	clH, _ := cH.CL.Float()
	clF, _ := cF.CL.Float()
	cdH, _ := cH.CD.Float()
	cdF, _ := cF.CD.Float()
	assert.InDelta(t, clF, clH, 1.e-9)
	assert.InDelta(t, cdF, cdH, 1.e-9)

	// Sideslip disables the half-system reduction
	op := opAtAlpha(4)
	op.Beta = opti.Const(3)
	vBeta, err := New(flatPlane(8, 1), op, optsHalf, nil)
	assert.NoError(t, err)
	assert.False(t, vBeta.HalfSystem)
}

func TestCenterlineFinInHalfSystem(t *testing.T) {
	// A centered vertical stabilizer must not carry an image vortex: the
	// image of a centerline surface coincides with itself and would cancel
	// its own influence, leaving a singular system.
	plane := func() *geometry.Airplane {
		fin := &geometry.Wing{
			Name: "Vertical Stabilizer",
			XSecs: []*geometry.WingXSec{
				{XYZLe: geometry.NewVec3(2, 0, 0), Chord: opti.Const(0.5), Airfoil: geometry.NewFlatPlate()},
				{XYZLe: geometry.NewVec3(2.1, 0, 0.8), Chord: opti.Const(0.4), Airfoil: geometry.NewFlatPlate()},
			},
		}
		return geometry.NewAirplane("WithFin", geometry.NewVec3(0, 0, 0),
			[]*geometry.Wing{flatWing(5, 1), fin}, nil)
	}

	optsHalf := DefaultOptions()
	optsFull := DefaultOptions()
	optsFull.ExploitSymmetry = false

	vHalf, err := New(plane(), opAtAlpha(5), optsHalf, nil)
	assert.NoError(t, err)
	assert.True(t, vHalf.HalfSystem)
	vFull, err := New(plane(), opAtAlpha(5), optsFull, nil)
	assert.NoError(t, err)

	cH, _ := vHalf.Coefficients()
	cF, _ := vFull.Coefficients()
	clH, _ := cH.CL.Float()
	clF, _ := cF.CL.Float()
	assert.InDelta(t, clF, clH, 1.e-9)
	cy, _ := cH.CY.Float()
	assert.InDelta(t, 0, cy, 1.e-9)
}

func TestLatticeConvergence(t *testing.T) {
	var (
		coarse = DefaultOptions()
		fine   = DefaultOptions()
	)
	coarse.SpanwisePanels, coarse.ChordwisePanels = 6, 6
	fine.SpanwisePanels, fine.ChordwisePanels = 12, 12

	clC, _ := solveCL(t, flatPlane(5, 1), opAtAlpha(5), coarse).CL.Float()
	clF, _ := solveCL(t, flatPlane(5, 1), opAtAlpha(5), fine).CL.Float()
	assert.Less(t, math.Abs(clC-clF)/clF, 0.02)
}

func TestZeroAlphaZeroLift(t *testing.T) {
	c := solveCL(t, flatPlane(5, 1), opAtAlpha(0), DefaultOptions())
	cl, _ := c.CL.Float()
	cd, _ := c.CD.Float()
	cm, _ := c.Cm.Float()
	assert.InDelta(t, 0, cl, 1.e-12)
	assert.InDelta(t, 0, cd, 1.e-12)
	assert.InDelta(t, 0, cm, 1.e-12)
}

func TestSmallAngleLinearity(t *testing.T) {
	cl1, _ := solveCL(t, flatPlane(5, 1), opAtAlpha(1), DefaultOptions()).CL.Float()
	cl2, _ := solveCL(t, flatPlane(5, 1), opAtAlpha(2), DefaultOptions()).CL.Float()
	assert.InDelta(t, 2, cl2/cl1, 0.02)

	// CL is independent of airspeed for an inviscid section
	opFast := opAtAlpha(2)
	opFast.Velocity = opti.Const(40)
	clFast, _ := solveCL(t, flatPlane(5, 1), opFast, DefaultOptions()).CL.Float()
	assert.InDelta(t, cl2, clFast, 1.e-9)
}

func TestControlDeflections(t *testing.T) {
	{ // A symmetric flap raises CL and keeps the configuration symmetric.
		plain := flatPlane(5, 1)
		flapped := flatPlane(5, 1)
		flapped.Wings[0].XSecs[0].ControlDeflection = opti.Const(10)
		flapped.Wings[0].XSecs[0].ControlIsSymmetric = true

		v, err := New(flapped, opAtAlpha(2), DefaultOptions(), nil)
		assert.NoError(t, err)
		assert.True(t, v.HalfSystem)
		cf, _ := v.Coefficients()
		clF, _ := cf.CL.Float()
		clP, _ := solveCL(t, plain, opAtAlpha(2), DefaultOptions()).CL.Float()
		assert.Greater(t, clF, clP+0.1)
	}
	{ // An aileron breaks symmetry and produces a roll moment.
		aileron := flatPlane(5, 1)
		aileron.Wings[0].XSecs[0].ControlDeflection = opti.Const(10)
		aileron.Wings[0].XSecs[0].ControlIsSymmetric = false

		v, err := New(aileron, opAtAlpha(2), DefaultOptions(), nil)
		assert.NoError(t, err)
		assert.False(t, v.HalfSystem)
		c, _ := v.Coefficients()
		roll, _ := c.Cl.Float()
		assert.Greater(t, math.Abs(roll), 1.e-3)
	}
}

func TestEmbeddedAnalysisRoundTrip(t *testing.T) {
	var (
		env  = opti.New()
		op   = NewOperatingPoint()
		opts = DefaultOptions()
	)
	opts.SpanwisePanels, opts.ChordwisePanels = 4, 4
	op.Alpha = env.Variable(5)
	env.SubjectTo(opti.Equal(op.Alpha, opti.Const(5)))

	v, err := New(flatPlane(5, 1), op, opts, env)
	assert.NoError(t, err)
	assert.Equal(t, Solved, v.State())

	c, err := v.Coefficients()
	assert.NoError(t, err)
	assert.False(t, c.CL.IsConstant())

	// Outputs before substitution are symbolic, so plotting data is refused
	_, _, err = v.StripLoading()
	var se *AnalysisStateError
	assert.ErrorAs(t, err, &se)

	sol, err := env.Solve()
	assert.NoError(t, err)
	assert.NoError(t, v.SubstituteSolution(sol))
	assert.Equal(t, Substituted, v.State())

	// Substitution is valid exactly once
	err = v.SubstituteSolution(sol)
	assert.ErrorAs(t, err, &se)

	// The embedded solution matches the standalone one
	clEmb, ok := c.CL.Float()
	assert.True(t, ok)
	clStd, _ := solveCL(t, flatPlane(5, 1), opAtAlpha(5), opts).CL.Float()
	assert.InDelta(t, clStd, clEmb, 1.e-6)
}

func TestErrorTaxonomy(t *testing.T) {
	{ // Invalid options
		opts := DefaultOptions()
		opts.SpanwisePanels = 0
		_, err := New(flatPlane(5, 1), opAtAlpha(0), opts, nil)
		var oe *OptionError
		assert.ErrorAs(t, err, &oe)
		assert.Contains(t, err.Error(), "SpanwisePanels")
	}
	{ // Invalid geometry
		w := flatWing(5, 1)
		w.XSecs = w.XSecs[:1]
		a := geometry.NewAirplane("Broken", geometry.NewVec3(0, 0, 0), []*geometry.Wing{w}, nil)
		_, err := New(a, opAtAlpha(0), DefaultOptions(), nil)
		var ge *geometry.GeometryError
		assert.ErrorAs(t, err, &ge)
	}
	{ // Symbolic inputs without an owning environment
		env := opti.New()
		op := NewOperatingPoint()
		op.Alpha = env.Variable(5)
		_, err := New(flatPlane(5, 1), op, DefaultOptions(), nil)
		var se *AnalysisStateError
		assert.ErrorAs(t, err, &se)
	}
	{ // Coincident lattices make the system singular
		w := flatWing(5, 1)
		a := geometry.NewAirplane("Doubled", geometry.NewVec3(0, 0, 0), []*geometry.Wing{w, w}, nil)
		_, err := New(a, opAtAlpha(5), DefaultOptions(), nil)
		var le *SolverError
		assert.ErrorAs(t, err, &le)
	}
	{ // Zero-value analysis rejects queries
		var v VortexLatticeMethod
		_, err := v.Coefficients()
		var se *AnalysisStateError
		assert.ErrorAs(t, err, &se)
		assert.Contains(t, err.Error(), "Constructed")
	}
}

func TestStripLoadingAndMesh(t *testing.T) {
	v, err := New(flatPlane(5, 1), opAtAlpha(5), DefaultOptions(), nil)
	assert.NoError(t, err)

	y, cl, err := v.StripLoading()
	assert.NoError(t, err)
	assert.Equal(t, v.Options.SpanwisePanels, len(y)) // half system: one side
	for i := 1; i < len(y); i++ {
		assert.Greater(t, y[i], y[i-1])
	}
	// Loading falls off toward the tip
	assert.Greater(t, cl[0], cl[len(cl)-1])
	for _, c := range cl {
		assert.Greater(t, c, 0.)
	}

	m, err := v.PanelMesh()
	assert.NoError(t, err)
	assert.Equal(t, len(v.Panels), len(m.Faces))
	assert.Equal(t, 4*len(v.Panels), len(m.Points))

	assert.NoError(t, v.PlotSpanLoading(false))
}
