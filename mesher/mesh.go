package mesher

import (
	"math"

	"github.com/pradeep-pyro/triangle"

	"github.com/aerolab/govlm/geometry"
)

// Mesh is the (points, faces) surface format produced for export and
// plotting. Faces index into Points and may mix triangles and quads.
type Mesh struct {
	Points [][3]float64
	Faces  [][]int
}

func NewMesh(points [][3]float64, faces [][]int) Mesh {
	return Mesh{Points: points, Faces: faces}
}

// Stack merges meshes into one, offsetting face indices.
func Stack(meshes ...Mesh) (m Mesh) {
	for _, a := range meshes {
		offset := len(m.Points)
		m.Points = append(m.Points, a.Points...)
		for _, f := range a.Faces {
			face := make([]int, len(f))
			for i, idx := range f {
				face[i] = idx + offset
			}
			m.Faces = append(m.Faces, face)
		}
	}
	return
}

// Triangulated returns a copy with every face fan-split into triangles.
func (m Mesh) Triangulated() (t Mesh) {
	t.Points = m.Points
	for _, f := range m.Faces {
		for i := 1; i < len(f)-1; i++ {
			t.Faces = append(t.Faces, []int{f[0], f[i], f[i+1]})
		}
	}
	return
}

// FuselageMesh builds a body-of-revolution style quad mesh around the
// elliptical cross sections, with Delaunay-triangulated nose and tail caps.
// The fuselage must be numeric (substituted) before meshing.
func FuselageMesh(f *geometry.Fuselage, nTheta int) (m Mesh, err error) {
	if err = f.Validate(); err != nil {
		return
	}
	if nTheta < 3 {
		nTheta = 3
	}
	var (
		nRings = len(f.XSecs)
		rings  = make([][]int, nRings)
	)
	for ri, xs := range f.XSecs {
		center, ok := f.XYZLe.Add(xs.XYZc).Float()
		w, okW := xs.Width.Float()
		h, okH := xs.Height.Float()
		if !ok || !okW || !okH {
			err = &geometry.GeometryError{Surface: f.Name, Reason: "symbolic geometry, substitute a solution before meshing"}
			return
		}
		rings[ri] = make([]int, nTheta)
		for k := 0; k < nTheta; k++ {
			theta := 2 * math.Pi * float64(k) / float64(nTheta)
			rings[ri][k] = len(m.Points)
			m.Points = append(m.Points, [3]float64{
				center[0],
				center[1] + 0.5*w*math.Cos(theta),
				center[2] + 0.5*h*math.Sin(theta),
			})
		}
	}
	for ri := 0; ri < nRings-1; ri++ {
		for k := 0; k < nTheta; k++ {
			k1 := (k + 1) % nTheta
			m.Faces = append(m.Faces, []int{
				rings[ri][k], rings[ri][k1], rings[ri+1][k1], rings[ri+1][k],
			})
		}
	}
	m.Faces = append(m.Faces, capFaces(m.Points, rings[0])...)
	m.Faces = append(m.Faces, capFaces(m.Points, rings[nRings-1])...)
	return
}

// capFaces closes a ring of point indices with a Delaunay triangulation of
// the ring projected onto the yz plane. The triangulation indexes into the
// projected points, which are in ring order, so triangles map straight back.
func capFaces(points [][3]float64, ring []int) (faces [][]int) {
	pts := make([][2]float64, len(ring))
	for i, idx := range ring {
		pts[i] = [2]float64{points[idx][1], points[idx][2]}
	}
	// Delaunay returns triangles as indices into pts, in ring order.
	for _, tri := range triangle.Delaunay(pts) {
		faces = append(faces, []int{ring[tri[0]], ring[tri[1]], ring[tri[2]]})
	}
	return
}
