package vlm

import (
	"math"

	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
)

// OperatingPoint is the freestream and body-rate state the airplane is
// analyzed at. Angles are in degrees, rates in rad/s, everything else SI.
// Any field may be symbolic when the analysis is embedded in an optimization
// environment.
type OperatingPoint struct {
	Velocity opti.Scalar // true airspeed, m/s
	Rho      opti.Scalar // air density, kg/m^3
	Mu       opti.Scalar // dynamic viscosity, kg/(m s)
	Mach     opti.Scalar
	Alpha    opti.Scalar // angle of attack, deg
	Beta     opti.Scalar // sideslip angle, deg
	P        opti.Scalar // body roll rate about +x, rad/s
	Q        opti.Scalar // body pitch rate about +y, rad/s
	R        opti.Scalar // body yaw rate about +z, rad/s
}

// NewOperatingPoint returns sea-level standard air at rest attitude. Callers
// set the fields they care about.
func NewOperatingPoint() *OperatingPoint {
	return &OperatingPoint{
		Velocity: opti.Const(10),
		Rho:      opti.Const(1.225),
		Mu:       opti.Const(1.81e-5),
		Mach:     opti.Const(0),
		Alpha:    opti.Const(0),
		Beta:     opti.Const(0),
		P:        opti.Const(0),
		Q:        opti.Const(0),
		R:        opti.Const(0),
	}
}

const degToRad = math.Pi / 180

func (op *OperatingPoint) AlphaRad() opti.Scalar { return op.Alpha.Scale(degToRad) }
func (op *OperatingPoint) BetaRad() opti.Scalar  { return op.Beta.Scale(degToRad) }

// FreestreamDirection is the unit vector of the air velocity relative to the
// airplane, in geometry axes. At positive alpha the relative wind points aft
// and up; at positive beta it points toward port.
func (op *OperatingPoint) FreestreamDirection() geometry.Vec3 {
	var (
		a = op.AlphaRad()
		b = op.BetaRad()
	)
	return geometry.Vec3{
		X: opti.Cos(a).Mul(opti.Cos(b)),
		Y: opti.Sin(b).Neg(),
		Z: opti.Sin(a).Mul(opti.Cos(b)),
	}
}

func (op *OperatingPoint) FreestreamVelocity() geometry.Vec3 {
	return op.FreestreamDirection().Scale(op.Velocity)
}

// LocalVelocity is the air velocity seen at a point on the rotating airplane:
// the freestream minus the rotational velocity Omega x r about the reference.
func (op *OperatingPoint) LocalVelocity(pt, ref geometry.Vec3) geometry.Vec3 {
	var (
		omega = geometry.Vec3{X: op.P, Y: op.Q, Z: op.R}
		r     = pt.Sub(ref)
	)
	return op.FreestreamVelocity().Sub(omega.Cross(r))
}

func (op *OperatingPoint) DynamicPressure() opti.Scalar {
	return op.Rho.Scale(0.5).Mul(op.Velocity).Mul(op.Velocity)
}

// IsSymmetric reports whether the operating point is provably symmetric about
// the xz plane. Symbolic sideslip or rates are never provably symmetric.
func (op *OperatingPoint) IsSymmetric() bool {
	return op.Beta.ConstEquals(0) && op.P.ConstEquals(0) && op.R.ConstEquals(0)
}

func (op *OperatingPoint) IsConstant() bool {
	return op.Velocity.IsConstant() && op.Rho.IsConstant() && op.Mu.IsConstant() &&
		op.Mach.IsConstant() && op.Alpha.IsConstant() && op.Beta.IsConstant() &&
		op.P.IsConstant() && op.Q.IsConstant() && op.R.IsConstant()
}

func (op *OperatingPoint) SubstituteSolution(sol *opti.Solution) {
	op.Velocity = op.Velocity.Substitute(sol)
	op.Rho = op.Rho.Substitute(sol)
	op.Mu = op.Mu.Substitute(sol)
	op.Mach = op.Mach.Substitute(sol)
	op.Alpha = op.Alpha.Substitute(sol)
	op.Beta = op.Beta.Substitute(sol)
	op.P = op.P.Substitute(sol)
	op.Q = op.Q.Substitute(sol)
	op.R = op.R.Substitute(sol)
}
