package mesher

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

// ExportVTK saves the mesh as a legacy binary *.vtk unstructured grid for
// visualization in ParaView and friends.
func ExportVTK(filepath string, m Mesh) error {
	buf, endi := new(bytes.Buffer), binary.BigEndian

	binary.Write(buf, endi, []byte("# vtk DataFile Version 3.0\n"))
	binary.Write(buf, endi, []byte(fmt.Sprintf("Surface mesh: %d vertices, %s\n", len(m.Points), time.Now().Format("2006-01-02 15:04:05"))))
	binary.Write(buf, endi, []byte("BINARY\n"))
	binary.Write(buf, endi, []byte("DATASET UNSTRUCTURED_GRID\n"))

	binary.Write(buf, endi, []byte(fmt.Sprintf("POINTS %d float\n", len(m.Points))))
	for _, p := range m.Points {
		binary.Write(buf, endi, float32(p[0]))
		binary.Write(buf, endi, float32(p[1]))
		binary.Write(buf, endi, float32(p[2]))
	}

	nIdx := 0
	for _, f := range m.Faces {
		nIdx += len(f)
	}
	binary.Write(buf, endi, []byte(fmt.Sprintf("\nCELLS %d %d\n", len(m.Faces), nIdx+len(m.Faces))))
	for _, f := range m.Faces {
		binary.Write(buf, endi, int32(len(f)))
		for _, idx := range f {
			binary.Write(buf, endi, int32(idx))
		}
	}

	binary.Write(buf, endi, []byte(fmt.Sprintf("\nCELL_TYPES %d\n", len(m.Faces))))
	for _, f := range m.Faces {
		switch len(f) {
		case 3:
			binary.Write(buf, endi, int32(5)) // VTK_TRIANGLE
		case 4:
			binary.Write(buf, endi, int32(9)) // VTK_QUAD
		default:
			binary.Write(buf, endi, int32(7)) // VTK_POLYGON
		}
	}

	return os.WriteFile(filepath, buf.Bytes(), 0644)
}
