package geometry

import (
	"github.com/aerolab/govlm/opti"
)

// Vec3 is a 3-vector of possibly-symbolic scalars in geometry axes:
// x aft along the fuselage, y out the starboard wing, z up.
type Vec3 struct {
	X, Y, Z opti.Scalar
}

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{opti.Const(x), opti.Const(y), opti.Const(z)}
}

func (v Vec3) Add(a Vec3) Vec3 {
	return Vec3{v.X.Add(a.X), v.Y.Add(a.Y), v.Z.Add(a.Z)}
}

func (v Vec3) Sub(a Vec3) Vec3 {
	return Vec3{v.X.Sub(a.X), v.Y.Sub(a.Y), v.Z.Sub(a.Z)}
}

func (v Vec3) Scale(s opti.Scalar) Vec3 {
	return Vec3{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

func (v Vec3) Dot(a Vec3) opti.Scalar {
	return v.X.Mul(a.X).Add(v.Y.Mul(a.Y)).Add(v.Z.Mul(a.Z))
}

func (v Vec3) Cross(a Vec3) Vec3 {
	return Vec3{
		v.Y.Mul(a.Z).Sub(v.Z.Mul(a.Y)),
		v.Z.Mul(a.X).Sub(v.X.Mul(a.Z)),
		v.X.Mul(a.Y).Sub(v.Y.Mul(a.X)),
	}
}

func (v Vec3) NormSq() opti.Scalar { return v.Dot(v) }

func (v Vec3) Norm() opti.Scalar { return opti.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	return Vec3{v.X.Div(n), v.Y.Div(n), v.Z.Div(n)}
}

// Lerp interpolates from v toward a by fraction t.
func (v Vec3) Lerp(a Vec3, t opti.Scalar) Vec3 {
	return v.Add(a.Sub(v).Scale(t))
}

// MirrorY reflects across the y=0 symmetry plane.
func (v Vec3) MirrorY() Vec3 {
	return Vec3{v.X, v.Y.Neg(), v.Z}
}

// IsConstant reports whether all three components are concrete numbers.
func (v Vec3) IsConstant() bool {
	return v.X.IsConstant() && v.Y.IsConstant() && v.Z.IsConstant()
}

// Float returns the concrete components; ok is false if any is symbolic.
func (v Vec3) Float() (f [3]float64, ok bool) {
	var okX, okY, okZ bool
	f[0], okX = v.X.Float()
	f[1], okY = v.Y.Float()
	f[2], okZ = v.Z.Float()
	return f, okX && okY && okZ
}

func (v Vec3) Substitute(sol *opti.Solution) Vec3 {
	return Vec3{v.X.Substitute(sol), v.Y.Substitute(sol), v.Z.Substitute(sol)}
}
