package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aerolab/govlm/opti"
)

// PolarFunc maps (alpha [rad], Reynolds number, Mach number, control
// deflection [rad]) to a sectional coefficient. Polars must be smooth in all
// four arguments so they can be evaluated on symbolic inputs.
type PolarFunc func(alpha, re, mach, deflection opti.Scalar) opti.Scalar

// Airfoil carries the per-section polar functions the load integrator blends
// spanwise. The default constructors supply thin-airfoil estimates; callers
// with measured polars replace the function fields directly.
type Airfoil struct {
	Name       string
	CLFunction PolarFunc
	CDFunction PolarFunc
	CmFunction PolarFunc
}

// FlapEffectiveness is the thin-airfoil lift gain of a plain trailing-edge
// flap relative to pitching the whole section.
const FlapEffectiveness = 0.75

// NewNACA4 builds an Airfoil from a 4-digit NACA code, e.g. "naca2412".
// Lift slope is thin-airfoil 2*pi with a Prandtl-Glauert subsonic
// correction, zero-lift angle and quarter-chord moment follow the camber
// line, and profile drag is a turbulent flat-plate estimate with a
// lift-dependent term.
func NewNACA4(code string) (af *Airfoil, err error) {
	digits := strings.TrimPrefix(strings.ToLower(code), "naca")
	if len(digits) != 4 {
		return nil, fmt.Errorf("expected a 4-digit NACA code, got %q", code)
	}
	val, err := strconv.Atoi(digits)
	if err != nil || val < 0 {
		return nil, fmt.Errorf("expected a 4-digit NACA code, got %q", code)
	}
	var (
		camber    = float64(val/1000) / 100        // max camber, fraction of chord
		thickness = float64(val%100) / 100         // max thickness, fraction of chord
		alpha0    = -camber * 100 * math.Pi / 180  // thin-airfoil estimate: 1 deg per % camber
		cm0       = -2.5 * camber                  // quarter-chord moment from camber
	)
	af = &Airfoil{
		Name: "naca" + digits,
		CLFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			pg := opti.Pow(opti.Const(1).Sub(mach.Mul(mach)), -0.5)
			aEff := alpha.Add(deflection.Scale(FlapEffectiveness)).Sub(opti.Const(alpha0))
			return aEff.Scale(2 * math.Pi).Mul(pg)
		},
		CDFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			cf := opti.Pow(re, -0.2).Scale(0.074)
			aEff := alpha.Add(deflection.Scale(FlapEffectiveness)).Sub(opti.Const(alpha0))
			cl := aEff.Scale(2 * math.Pi)
			return cf.Scale(2 * (1 + 2*thickness)).Add(cl.Mul(cl).Scale(0.01))
		},
		CmFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			return opti.Const(cm0)
		},
	}
	return
}

// NewFlatPlate is the idealized zero-thickness section: 2*pi lift slope,
// zero profile drag, zero moment. Useful as a pure-inviscid reference.
func NewFlatPlate() *Airfoil {
	return &Airfoil{
		Name: "flat_plate",
		CLFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			return alpha.Add(deflection.Scale(FlapEffectiveness)).Scale(2 * math.Pi)
		},
		CDFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			return opti.Const(0)
		},
		CmFunction: func(alpha, re, mach, deflection opti.Scalar) opti.Scalar {
			return opti.Const(0)
		},
	}
}

// IsSymmetric reports whether the section provably produces no lift or
// moment at zero incidence. Symbolic polars are treated as asymmetric.
func (af *Airfoil) IsSymmetric() bool {
	var (
		zero = opti.Const(0)
		re   = opti.Const(1.e6)
	)
	return af.CLFunction(zero, re, zero, zero).ConstEquals(0) &&
		af.CmFunction(zero, re, zero, zero).ConstEquals(0)
}
