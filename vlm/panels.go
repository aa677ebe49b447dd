package vlm

import (
	"github.com/aerolab/govlm/geometry"
	"github.com/aerolab/govlm/opti"
)

// station is one spanwise cut through a wing segment, resolved to absolute
// coordinates.
type station struct {
	le    geometry.Vec3
	chord opti.Scalar
	twist opti.Scalar // rad
}

// point returns the position at chord fraction xc, with twist rotating the
// chord line about the leading edge (positive twist pitches the nose up, so
// the trailing edge drops).
func (s station) point(xc float64) geometry.Vec3 {
	chordDir := geometry.Vec3{
		X: opti.Cos(s.twist),
		Y: opti.Const(0),
		Z: opti.Sin(s.twist).Neg(),
	}
	return s.le.Add(chordDir.Scale(s.chord.Scale(xc)))
}

func stationAt(w *geometry.Wing, seg int, t float64) station {
	var (
		inner = w.XSecs[seg]
		outer = w.XSecs[seg+1]
		tc    = opti.Const(t)
	)
	return station{
		le:    w.XYZLe.Add(inner.XYZLe).Lerp(w.XYZLe.Add(outer.XYZLe), tc),
		chord: inner.Chord.Add(outer.Chord.Sub(inner.Chord).Mul(tc)),
		twist: inner.Twist.Add(outer.Twist.Sub(inner.Twist).Mul(tc)).Scale(degToRad),
	}
}

// GeneratePanels lattices every wing of the airplane: cosine spacing along
// the chord, opts.SpanwiseSpacing along each section segment. Symmetric wings
// get mirrored twin panels unless half is set, in which case only the
// modeled (+y) side is generated and the mirror is accounted for by image
// vortices during influence assembly.
func GeneratePanels(airplane *geometry.Airplane, opts Options, half bool) (panels []*Panel, err error) {
	strip := 0
	for wi, w := range airplane.Wings {
		if err = w.Validate(); err != nil {
			return nil, err
		}
		for seg := 0; seg < len(w.XSecs)-1; seg++ {
			var (
				inner      = w.XSecs[seg]
				deflection = inner.ControlDeflection.Scale(degToRad)
			)
			for si := 0; si < opts.SpanwisePanels; si++ {
				var (
					tIn  = opts.SpanwiseSpacing(float64(si) / float64(opts.SpanwisePanels))
					tOut = opts.SpanwiseSpacing(float64(si+1) / float64(opts.SpanwisePanels))
					sIn  = stationAt(w, seg, tIn)
					sOut = stationAt(w, seg, tOut)
				)
				for ci := 0; ci < opts.ChordwisePanels; ci++ {
					var (
						xcF = CosineSpacing(float64(ci) / float64(opts.ChordwisePanels))
						xcB = CosineSpacing(float64(ci+1) / float64(opts.ChordwisePanels))
					)
					p, pErr := buildPanel(sIn, sOut, xcF, xcB, w.Name)
					if pErr != nil {
						return nil, pErr
					}
					p.WingIndex = wi
					p.Strip = strip
					p.AirfoilInner = inner.Airfoil
					p.AirfoilOuter = w.XSecs[seg+1].Airfoil
					p.BlendFraction = 0.5 * (tIn + tOut)
					p.Deflection = deflection
					if w.Symmetric && !half {
						m := p.mirror(inner.ControlIsSymmetric)
						m.applyDeflection()
						p.applyDeflection()
						panels = append(panels, p, m)
					} else {
						p.HasImage = w.Symmetric && half
						p.applyDeflection()
						panels = append(panels, p)
					}
				}
				if w.Symmetric && !half {
					strip += 2
				} else {
					strip++
				}
			}
		}
	}
	return
}

func buildPanel(sIn, sOut station, xcF, xcB float64, wing string) (*Panel, error) {
	var (
		fi = sIn.point(xcF)  // front inner
		bi = sIn.point(xcB)  // back inner
		bo = sOut.point(xcB) // back outer
		fo = sOut.point(xcF) // front outer

		d1     = bo.Sub(fi)
		d2     = fo.Sub(bi)
		areaN  = d1.Cross(d2)
		area   = areaN.Norm().Scale(0.5)
		quartF = opti.Const(0.25)
		threeF = opti.Const(0.75)
	)
	if av, ok := area.Float(); ok && av < 1.e-14 {
		return nil, &geometry.GeometryError{Surface: wing, Reason: "degenerate panel: vanishing area"}
	}
	p := &Panel{
		Corners:     [4]geometry.Vec3{fi, bi, bo, fo},
		VortexA:     fi.Lerp(bi, quartF),
		VortexB:     fo.Lerp(bo, quartF),
		Collocation: fi.Lerp(bi, threeF).Lerp(fo.Lerp(bo, threeF), opti.Const(0.5)),
		Normal:      areaN.Normalize(),
		Area:        area,
		Chord:       sIn.chord.Add(sOut.chord).Scale(0.5),
	}
	return p, nil
}
