package model

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes one LOD as a Wavefront OBJ with one group per material.
// Positions, texture coordinates and normals share indices.
func (m *Model) WriteOBJ(w io.Writer, lod int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# flora model, lod %d\n", lod)

	remap := make(map[uint32]int)
	var order []uint32
	for _, r := range m.Ranges {
		if r.LOD != lod {
			continue
		}
		for v := r.StartVertex; v < r.StartVertex+r.VertexCount; v++ {
			remap[uint32(v)] = len(order) + 1
			order = append(order, uint32(v))
		}
	}
	if len(order) == 0 {
		return fmt.Errorf("model has no geometry at lod %d", lod)
	}

	for _, idx := range order {
		p := m.Vertices[idx].Position
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, idx := range order {
		uv := m.Vertices[idx].TexCoord
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, idx := range order {
		n := m.Vertices[idx].Normal
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	for _, r := range m.Ranges {
		if r.LOD != lod {
			continue
		}
		fmt.Fprintf(bw, "g material_%d\nusemtl material_%d\n", r.Material, r.Material)
		tris := m.Indices[r.StartIndex : r.StartIndex+r.IndexCount]
		for k := 0; k+2 < len(tris); k += 3 {
			a, b, c := remap[tris[k]], remap[tris[k+1]], remap[tris[k+2]]
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}
	return bw.Flush()
}
