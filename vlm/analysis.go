package vlm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/mesher"
	"github.com/aerolab/govlm/opti"
	"github.com/aerolab/govlm/utils"
)

// State tracks the analysis lifecycle. Construction assembles and solves, so
// a successfully built analysis is never observed below Solved; Substituted
// means every attribute has been replaced by its solved numeric value.
type State uint8

const (
	Constructed State = iota
	Building
	Solved
	Substituted
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "Constructed"
	case Building:
		return "Building"
	case Solved:
		return "Solved"
	case Substituted:
		return "Substituted"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// VortexLatticeMethod is a single-configuration, single-point aerodynamic
// analysis. With a nil environment it solves immediately and all outputs are
// numeric. With a caller-owned environment the circulation strengths become
// variables of that environment and every output stays symbolic until the
// caller solves and substitutes.
type VortexLatticeMethod struct {
	Airplane *geometry.Airplane
	OpPoint  *OperatingPoint
	Options  Options

	env         *opti.Opti
	envProvided bool
	state       State

	HalfSystem bool
	Panels     []*Panel
	Gamma      []opti.Scalar

	aic, rhs []opti.Scalar
	coeffs   *Coefficients
}

// New builds, assembles and solves an analysis. The environment argument
// names the optimization environment that owns any symbolic inputs; pass nil
// for a standalone numeric analysis.
func New(airplane *geometry.Airplane, op *OperatingPoint, opts Options, env *opti.Opti) (*VortexLatticeMethod, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := airplane.Validate(); err != nil {
		return nil, err
	}
	if op == nil {
		op = NewOperatingPoint()
	}
	v := &VortexLatticeMethod{
		Airplane:    airplane,
		OpPoint:     op,
		Options:     opts,
		env:         env,
		envProvided: env != nil,
		state:       Constructed,
	}
	if !v.envProvided {
		v.env = opti.New()
	}
	if err := v.build(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *VortexLatticeMethod) build() (err error) {
	v.state = Building
	v.HalfSystem = v.Options.ExploitSymmetry &&
		v.Airplane.IsEntirelySymmetric() && v.OpPoint.IsSymmetric()

	if v.Panels, err = GeneratePanels(v.Airplane, v.Options, v.HalfSystem); err != nil {
		return err
	}
	var (
		n    = len(v.Panels)
		u    = v.OpPoint.FreestreamDirection()
		core = v.Options.CoreRadius
	)
	v.aic = BuildInfluenceMatrix(v.Panels, u, core)
	v.rhs = make([]opti.Scalar, n)
	for i, p := range v.Panels {
		v.rhs[i] = v.OpPoint.LocalVelocity(p.Collocation, v.Airplane.XYZRef).Dot(p.Normal).Neg()
	}

	if v.envProvided {
		v.Gamma = appendCirculationSystem(v.env, v.aic, v.rhs, n)
		v.coeffs = integrateLoads(v.Airplane, v.OpPoint, v.Panels, v.Gamma, u, core)
		v.state = Solved
		return nil
	}

	if _, ok := constValues(v.aic); !ok {
		return &AnalysisStateError{
			Op:     "solve",
			State:  v.state,
			Reason: "symbolic inputs require a caller-owned optimization environment",
		}
	}
	if _, ok := constValues(v.rhs); !ok {
		return &AnalysisStateError{
			Op:     "solve",
			State:  v.state,
			Reason: "symbolic operating point requires a caller-owned optimization environment",
		}
	}
	if v.Gamma, err = solveCirculationDirect(v.aic, v.rhs, n, v.Options.RCondFloor); err != nil {
		return err
	}
	v.coeffs = integrateLoads(v.Airplane, v.OpPoint, v.Panels, v.Gamma, u, core)
	v.state = Substituted
	return nil
}

func (v *VortexLatticeMethod) State() State { return v.state }

// Coefficients returns the analysis outputs. In an embedded analysis the
// fields are symbolic until SubstituteSolution runs.
func (v *VortexLatticeMethod) Coefficients() (*Coefficients, error) {
	if v.state < Solved {
		return nil, &AnalysisStateError{Op: "query coefficients", State: v.state, Reason: "no solution is attached yet"}
	}
	return v.coeffs, nil
}

// SubstituteSolution replaces every symbolic attribute of the analysis, the
// airplane and the operating point with its solved value. Valid exactly once,
// after the owning environment has been solved.
func (v *VortexLatticeMethod) SubstituteSolution(sol *opti.Solution) error {
	switch {
	case v.state < Solved:
		return &AnalysisStateError{Op: "substitute", State: v.state, Reason: "no solution is attached yet"}
	case v.state == Substituted:
		return &AnalysisStateError{Op: "substitute", State: v.state, Reason: "already substituted"}
	}
	for i := range v.Gamma {
		v.Gamma[i] = v.Gamma[i].Substitute(sol)
	}
	for i := range v.aic {
		v.aic[i] = v.aic[i].Substitute(sol)
	}
	for i := range v.rhs {
		v.rhs[i] = v.rhs[i].Substitute(sol)
	}
	for _, p := range v.Panels {
		p.substituteSolution(sol)
	}
	v.coeffs.SubstituteSolution(sol)
	v.OpPoint.SubstituteSolution(sol)
	v.Airplane.SubstituteSolution(sol)
	v.state = Substituted
	return nil
}

// StripLoading returns the spanwise lift distribution of a substituted
// analysis: per-strip lateral station and local lift coefficient
// cl = 2 sum(gamma) / (V c), sorted by station.
func (v *VortexLatticeMethod) StripLoading() (y, cl []float64, err error) {
	if v.state != Substituted {
		return nil, nil, &AnalysisStateError{Op: "strip loading", State: v.state, Reason: "requires numeric circulations"}
	}
	type strip struct {
		y, gamma, chord float64
	}
	strips := map[int]*strip{}
	vel, _ := v.OpPoint.Velocity.Float()
	for i, p := range v.Panels {
		s, ok := strips[p.Strip]
		if !ok {
			s = &strip{}
			ym, _ := p.BoundMidpoint().Float()
			s.y = ym[1]
			s.chord, _ = p.Chord.Float()
			strips[p.Strip] = s
		}
		g, _ := v.Gamma[i].Float()
		s.gamma += g
	}
	ordered := make([]*strip, 0, len(strips))
	for _, s := range strips {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].y < ordered[j].y })
	for _, s := range ordered {
		y = append(y, s.y)
		cl = append(cl, 2*s.gamma/(vel*s.chord))
	}
	return y, cl, nil
}

// PanelMesh exports the lattice quads of a substituted analysis as a surface
// mesh, stacked with any fuselage bodies, for VTK export.
func (v *VortexLatticeMethod) PanelMesh() (m mesher.Mesh, err error) {
	if v.state != Substituted {
		return m, &AnalysisStateError{Op: "mesh", State: v.state, Reason: "requires numeric geometry"}
	}
	for _, p := range v.Panels {
		base := len(m.Points)
		for _, c := range p.Corners {
			pt, _ := c.Float()
			m.Points = append(m.Points, pt)
		}
		m.Faces = append(m.Faces, utils.NewRange(base, base+3))
	}
	for _, f := range v.Airplane.Fuselages {
		fm, fErr := mesher.FuselageMesh(f, 16)
		if fErr != nil {
			return m, fErr
		}
		m = mesher.Stack(m, fm)
	}
	return m, nil
}

// Report prints a summary in the standard banner format.
func (v *VortexLatticeMethod) Report() string {
	var (
		b    = &strings.Builder{}
		mode = "full system"
	)
	if v.HalfSystem {
		mode = "half system with image vortices"
	}
	fmt.Fprintf(b, "%s\n", v.Airplane)
	fmt.Fprintf(b, "lattice: %d panels, %s\n", len(v.Panels), mode)
	if v.state != Substituted {
		fmt.Fprintf(b, "state: %s, solve the owning environment for numeric results\n", v.state)
		return b.String()
	}
	cl, _ := v.coeffs.CL.Float()
	cd, _ := v.coeffs.CD.Float()
	cdi, _ := v.coeffs.CDInduced.Float()
	cdp, _ := v.coeffs.CDProfile.Float()
	cy, _ := v.coeffs.CY.Float()
	rm, _ := v.coeffs.Cl.Float()
	pm, _ := v.coeffs.Cm.Float()
	ym, _ := v.coeffs.Cn.Float()
	fmt.Fprintf(b, "CL  = %9.5f   CD  = %9.5f  (CDi = %.5f, CDp = %.5f)\n", cl, cd, cdi, cdp)
	fmt.Fprintf(b, "CY  = %9.5f   Cl  = %9.5f   Cm = %9.5f   Cn = %9.5f\n", cy, rm, pm, ym)
	return b.String()
}
