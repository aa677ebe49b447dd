package vlm

import (
	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
)

// Coefficients is the nondimensional result set of an analysis, in wind axes
// for forces and body axes for moments. Fields stay symbolic when the
// analysis is embedded in an optimization environment.
type Coefficients struct {
	CL, CD, CY opti.Scalar // lift, drag, sideforce
	Cl, Cm, Cn opti.Scalar // roll, pitch, yaw moment
	CDInduced  opti.Scalar
	CDProfile  opti.Scalar

	ForceBody  geometry.Vec3 // dimensional, N
	MomentBody geometry.Vec3 // dimensional about XYZRef, N m
	ForceWind  geometry.Vec3
}

func (c *Coefficients) SubstituteSolution(sol *opti.Solution) {
	c.CL = c.CL.Substitute(sol)
	c.CD = c.CD.Substitute(sol)
	c.CY = c.CY.Substitute(sol)
	c.Cl = c.Cl.Substitute(sol)
	c.Cm = c.Cm.Substitute(sol)
	c.Cn = c.Cn.Substitute(sol)
	c.CDInduced = c.CDInduced.Substitute(sol)
	c.CDProfile = c.CDProfile.Substitute(sol)
	c.ForceBody = c.ForceBody.Substitute(sol)
	c.MomentBody = c.MomentBody.Substitute(sol)
	c.ForceWind = c.ForceWind.Substitute(sol)
}

// mirrorCouple reflects a pure moment across the y=0 plane. Moments are
// pseudovectors, so the x and z components flip while y is kept.
func mirrorCouple(m geometry.Vec3) geometry.Vec3 {
	return geometry.Vec3{X: m.X.Neg(), Y: m.Y, Z: m.Z.Neg()}
}

// integrateLoads computes panel forces by the Kutta-Joukowski theorem on the
// bound legs, using the full local velocity (freestream, body rates, and all
// induced contributions) at each bound midpoint. Sectional profile drag and
// pitching moment from the blended airfoil polars are added on top of the
// inviscid loads. A panel whose port twin is an image vortex also books that
// twin's mirrored contribution.
func integrateLoads(airplane *geometry.Airplane, op *OperatingPoint, panels []*Panel, gamma []opti.Scalar, u geometry.Vec3, core float64) *Coefficients {
	var (
		ref    = airplane.XYZRef
		force  = geometry.NewVec3(0, 0, 0)
		moment = geometry.NewVec3(0, 0, 0)
		fProf  = geometry.NewVec3(0, 0, 0)
	)
	for i, p := range panels {
		var (
			mid  = p.BoundMidpoint()
			vLoc = op.LocalVelocity(mid, ref).Add(InducedVelocity(mid, panels, gamma, u, core))
			f    = vLoc.Cross(p.BoundVector()).Scale(op.Rho.Mul(gamma[i]))

			// Effective sectional state from the local flow, measured against
			// the undeflected chord plane. The polars add the flap increment
			// themselves, so the deflection-tilted normal is not used here.
			vMag     = vLoc.Norm()
			cHat     = p.chordwiseDirection()
			nRef     = cHat.Cross(p.BoundVector().Normalize())
			alphaLoc = opti.Atan2(vLoc.Dot(nRef), vLoc.Dot(cHat))
			re       = op.Rho.Mul(vMag).Mul(p.Chord).Div(op.Mu)
			qLocA    = op.Rho.Scale(0.5).Mul(vMag).Mul(vMag).Mul(p.Area)

			bf = opti.Const(p.BlendFraction)
			cd = blend(p.AirfoilInner.CDFunction, p.AirfoilOuter.CDFunction, bf, alphaLoc, re, op.Mach, p.Deflection)
			cm = blend(p.AirfoilInner.CmFunction, p.AirfoilOuter.CmFunction, bf, alphaLoc, re, op.Mach, p.Deflection)

			// Profile drag acts along the local flow; the sectional moment
			// is a couple about the bound leg axis.
			fp     = vLoc.Scale(qLocA.Mul(cd).Div(vMag))
			couple = p.BoundVector().Normalize().Scale(qLocA.Mul(cm).Mul(p.Chord))

			arm = mid.Sub(ref)
		)
		force = force.Add(f).Add(fp)
		fProf = fProf.Add(fp)
		moment = moment.Add(arm.Cross(f.Add(fp))).Add(couple)

		if p.HasImage {
			var (
				fm   = f.Add(fp)
				fMir = geometry.Vec3{X: fm.X, Y: fm.Y.Neg(), Z: fm.Z}
				armM = mid.MirrorY().Sub(ref)
			)
			force = force.Add(fMir)
			fProf = fProf.Add(geometry.Vec3{X: fp.X, Y: fp.Y.Neg(), Z: fp.Z})
			moment = moment.Add(armM.Cross(fMir)).Add(mirrorCouple(couple))
		}
	}

	// Wind axes: x downstream, z up in the plane of symmetry of the flow.
	var (
		xw = u
		yw = geometry.NewVec3(0, 0, 1).Cross(u).Normalize()
		zw = xw.Cross(yw)

		qS  = op.DynamicPressure().Mul(airplane.SRef)
		qSb = qS.Mul(airplane.BRef)
		qSc = qS.Mul(airplane.CRef)
	)
	c := &Coefficients{
		ForceBody:  force,
		MomentBody: moment,
		ForceWind: geometry.Vec3{
			X: force.Dot(xw),
			Y: force.Dot(yw),
			Z: force.Dot(zw),
		},
	}
	c.CL = c.ForceWind.Z.Div(qS)
	c.CD = c.ForceWind.X.Div(qS)
	c.CY = c.ForceWind.Y.Div(qS)
	c.CDProfile = fProf.Dot(xw).Div(qS)
	c.CDInduced = c.CD.Sub(c.CDProfile)
	c.Cl = moment.X.Div(qSb)
	c.Cm = moment.Y.Div(qSc)
	c.Cn = moment.Z.Div(qSb)
	return c
}

func blend(inner, outer geometry.PolarFunc, frac, alpha, re, mach, deflection opti.Scalar) opti.Scalar {
	var (
		ci = inner(alpha, re, mach, deflection)
		co = outer(alpha, re, mach, deflection)
	)
	return ci.Add(co.Sub(ci).Mul(frac))
}
