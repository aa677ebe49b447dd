package vlm

import (
	"math"
	"runtime"
	"sync"

	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
	"github.com/aerolab/govlm/utils"
)

const fourPi = 4 * math.Pi

// invNorm is 1/|v| with a softened radicand, finite at v = 0.
func invNorm(v geometry.Vec3, core float64) opti.Scalar {
	return opti.Pow(v.NormSq().Add(opti.Const(core)), -0.5)
}

// filamentVelocity is the velocity induced at p by a straight vortex filament
// of unit circulation from a to b,
//
//	v = (r1 x r2) / (4 pi |r1 x r2|^2) * r0 . (r1/|r1| - r2/|r2|)
//
// with r1 = p-a, r2 = p-b, r0 = b-a. The softened denominators keep the
// expression finite and branch-free on the filament axis, where the cross
// product vanishes and the true velocity is zero.
func filamentVelocity(p, a, b geometry.Vec3, core float64) geometry.Vec3 {
	var (
		r1    = p.Sub(a)
		r2    = p.Sub(b)
		r0    = b.Sub(a)
		c     = r1.Cross(r2)
		denom = c.NormSq().Add(opti.Const(core)).Scale(fourPi)
		k     = r0.Dot(r1.Scale(invNorm(r1, core)).Sub(r2.Scale(invNorm(r2, core))))
	)
	return c.Scale(k.Div(denom))
}

// trailingVelocity is the velocity induced at p by a semi-infinite filament
// of unit circulation starting at a and extending along the unit direction u,
//
//	v = (u x r1) / (4 pi |u x r1|^2) * (1 + u . r1/|r1|)
func trailingVelocity(p, a, u geometry.Vec3, core float64) geometry.Vec3 {
	var (
		r1    = p.Sub(a)
		c     = u.Cross(r1)
		denom = c.NormSq().Add(opti.Const(core)).Scale(fourPi)
		k     = opti.Const(1).Add(u.Dot(r1).Mul(invNorm(r1, core)))
	)
	return c.Scale(k.Div(denom))
}

// HorseshoeVelocity is the velocity induced at p by a unit-circulation
// horseshoe vortex: trailing leg arriving from downstream infinity to a,
// bound leg a to b, trailing leg departing b to downstream infinity, with
// both trailing legs aligned to the freestream direction u.
func HorseshoeVelocity(p, a, b, u geometry.Vec3, core float64) geometry.Vec3 {
	return filamentVelocity(p, a, b, core).
		Add(trailingVelocity(p, b, u, core)).
		Sub(trailingVelocity(p, a, u, core))
}

// BuildInfluenceMatrix assembles the n x n aerodynamic influence matrix in
// row-major order: entry (i,j) is the normal velocity at collocation point i
// per unit circulation of horseshoe j. Panels flagged HasImage also
// contribute their mirror image carrying the same circulation, which halves
// the system solved for a symmetric airplane.
//
// Fully numeric lattices are assembled row-parallel; symbolic ones serially,
// since graph construction dominates there anyway.
func BuildInfluenceMatrix(panels []*Panel, u geometry.Vec3, core float64) []opti.Scalar {
	var (
		n   = len(panels)
		aic = make([]opti.Scalar, n*n)
		mu  = u.MirrorY()
	)
	row := func(i int) {
		var (
			cp     = panels[i].Collocation
			normal = panels[i].Normal
		)
		for j, pj := range panels {
			v := HorseshoeVelocity(cp, pj.VortexA, pj.VortexB, u, core)
			if pj.HasImage {
				// The image horseshoe is traversed in mirrored order, so its
				// velocity field is the reflection of the original's.
				v = v.Add(HorseshoeVelocity(cp, pj.VortexB.MirrorY(), pj.VortexA.MirrorY(), mu, core))
			}
			aic[i*n+j] = v.Dot(normal)
		}
	}

	numeric := u.IsConstant()
	for _, p := range panels {
		numeric = numeric && p.IsConstant()
	}
	if !numeric {
		for i := 0; i < n; i++ {
			row(i)
		}
		return aic
	}

	var wg sync.WaitGroup
	for _, rng := range utils.Split1D(n, runtime.NumCPU()) {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				row(i)
			}
		}(rng[0], rng[1])
	}
	wg.Wait()
	return aic
}

// InducedVelocity sums the circulation-weighted horseshoe contributions at an
// arbitrary point, including the image vortices of half-system panels.
func InducedVelocity(pt geometry.Vec3, panels []*Panel, gamma []opti.Scalar, u geometry.Vec3, core float64) geometry.Vec3 {
	var (
		v  = geometry.NewVec3(0, 0, 0)
		mu = u.MirrorY()
	)
	for j, pj := range panels {
		h := HorseshoeVelocity(pt, pj.VortexA, pj.VortexB, u, core)
		if pj.HasImage {
			h = h.Add(HorseshoeVelocity(pt, pj.VortexB.MirrorY(), pj.VortexA.MirrorY(), mu, core))
		}
		v = v.Add(h.Scale(gamma[j]))
	}
	return v
}
