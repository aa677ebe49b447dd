package vlm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerolab/govlm/geometry"
)

const testCore = 1.e-12

func vec(x, y, z float64) geometry.Vec3 { return geometry.NewVec3(x, y, z) }

func floats(t *testing.T, v geometry.Vec3) [3]float64 {
	f, ok := v.Float()
	assert.True(t, ok)
	return f
}

func TestFilamentVelocityLimits(t *testing.T) {
	{ // A very long bound filament along +y approaches the 2D vortex
		// Gamma/(2 pi h) at distance h, pointing +x by the right-hand rule.
		v := floats(t, filamentVelocity(vec(0, 0, 1), vec(0, -1.e6, 0), vec(0, 1.e6, 0), testCore))
		assert.InDelta(t, 1/(2*math.Pi), v[0], 1.e-7)
		assert.InDelta(t, 0, v[1], 1.e-12)
		assert.InDelta(t, 0, v[2], 1.e-12)
	}
	{ // On the filament axis the induced velocity is exactly zero, with no
		// singularity thanks to the softened denominators.
		v := floats(t, filamentVelocity(vec(0, 0.25, 0), vec(0, 0, 0), vec(0, 1, 0), testCore))
		assert.Equal(t, [3]float64{0, 0, 0}, v)
	}
}

func TestTrailingVelocityLimit(t *testing.T) {
	// Semi-infinite filament from the origin along +x, evaluated abeam the
	// start point: half the infinite-filament value, Gamma/(4 pi h).
	v := floats(t, trailingVelocity(vec(0, 1, 0), vec(0, 0, 0), vec(1, 0, 0), testCore))
	assert.InDelta(t, 0, v[0], 1.e-12)
	assert.InDelta(t, 0, v[1], 1.e-12)
	assert.InDelta(t, 1/(4*math.Pi), v[2], 1.e-12)

	// Far downstream it doubles to the full 2D value.
	v = floats(t, trailingVelocity(vec(1.e6, 1, 0), vec(0, 0, 0), vec(1, 0, 0), testCore))
	assert.InDelta(t, 1/(2*math.Pi), v[2], 1.e-7)
}

func TestHorseshoeImageSymmetry(t *testing.T) {
	var (
		a  = vec(0.1, 0.2, 0.05)
		b  = vec(0.1, 1.3, 0.1)
		u  = vec(1, 0, 0)
		p  = vec(0.9, 0.7, 0.3)
		pm = vec(0.9, -0.7, 0.3)

		sys = func(at geometry.Vec3) [3]float64 {
			v := HorseshoeVelocity(at, a, b, u, testCore).
				Add(HorseshoeVelocity(at, b.MirrorY(), a.MirrorY(), u, testCore))
			return floats(t, v)
		}
		v1 = sys(p)
		v2 = sys(pm)
	)
	// A horseshoe plus its image induce a mirror-symmetric field.
	assert.InDelta(t, v1[0], v2[0], 1.e-12)
	assert.InDelta(t, -v1[1], v2[1], 1.e-12)
	assert.InDelta(t, v1[2], v2[2], 1.e-12)
}

func TestImageEnforcesWallTangency(t *testing.T) {
	var (
		a = vec(0.1, 0.2, 0.05)
		b = vec(0.1, 1.3, 0.1)
		u = vec(1, 0, 0)
	)
	// On the symmetry plane the combined system has no crossflow.
	for _, p := range []geometry.Vec3{vec(0.5, 0, 0.2), vec(-1, 0, -0.4), vec(2, 0, 1)} {
		v := HorseshoeVelocity(p, a, b, u, testCore).
			Add(HorseshoeVelocity(p, b.MirrorY(), a.MirrorY(), u, testCore))
		f := floats(t, v)
		assert.InDelta(t, 0, f[1], 1.e-12)
	}
}
