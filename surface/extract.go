package surface

// Extractor polygonises a Field with one Table in two passes: Count
// classifies every cell and sizes the output, Emit writes the triangles.
// An Extractor holds no per-call state and may be shared.
type Extractor struct {
	table *Table
}

// NewExtractor polygonises fields with t.
func NewExtractor(t *Table) *Extractor {
	return &Extractor{table: t}
}

func (x *Extractor) Table() *Table { return x.table }

// Count returns the number of triangles the field produces at threshold and
// the corner pattern of every cell, in the same order Emit visits them.
func (x *Extractor) Count(f *Field, threshold float32) (int, []uint8) {
	c := f.Cells()
	patterns := make([]uint8, c[0]*c[1]*c[2])
	corners := &x.table.layout.Corners
	total, n := 0, 0
	for k := 0; k < c[2]; k++ {
		for j := 0; j < c[1]; j++ {
			for i := 0; i < c[0]; i++ {
				var p uint8
				for b, o := range corners {
					if f.At(i+int(o[0]), j+int(o[1]), k+int(o[2])) > threshold {
						p |= 1 << b
					}
				}
				patterns[n] = p
				total += len(x.table.entries[p])
				n++
			}
		}
	}
	return total, patterns
}

// Emit writes one triangle per table entry of every cell. Positions are
// divided by the field's largest cell extent.
func (x *Extractor) Emit(f *Field, patterns []uint8, threshold float32) Mesh {
	total := 0
	for _, p := range patterns {
		total += len(x.table.entries[p])
	}
	m := Mesh{Data: make([]float32, 0, total*TriangleStride)}
	if total == 0 {
		return m
	}
	ext := float32(max(f.Extent(), 1))

	c := f.Cells()
	n := 0
	for k := 0; k < c[2]; k++ {
		for j := 0; j < c[1]; j++ {
			for i := 0; i < c[0]; i++ {
				tris := x.table.entries[patterns[n]]
				n++
				for _, tri := range tris {
					for _, e := range tri {
						pos, nrm := x.vertex(f, [3]int{i, j, k}, int(e), threshold)
						m.Data = append(m.Data,
							pos[0]/ext, pos[1]/ext, pos[2]/ext,
							nrm[0], nrm[1], nrm[2])
					}
				}
			}
		}
	}
	return m
}

// Extract runs both passes.
func (x *Extractor) Extract(f *Field, threshold float32) Mesh {
	_, patterns := x.Count(f, threshold)
	return x.Emit(f, patterns, threshold)
}

// vertex places the surface crossing on edge e of cell in lattice units.
// The normal points from the high side of the field to the low side.
func (x *Extractor) vertex(f *Field, cell [3]int, e int, threshold float32) (pos, normal [3]float32) {
	off := x.table.layout.Edges[e]
	axis := -1
	var a [3]int
	for d, v := range off {
		if v == 0 {
			axis = d
		}
		a[d] = cell[d] + (int(v)+1)/2
	}
	pos = [3]float32{float32(a[0]), float32(a[1]), float32(a[2])}
	if axis < 0 {
		g := normalize(f.Gradient(a[0], a[1], a[2]))
		return pos, [3]float32{-g[0], -g[1], -g[2]}
	}

	b := a
	b[axis]++
	va := f.At(a[0], a[1], a[2])
	vb := f.At(b[0], b[1], b[2])
	t := float32(0.5)
	if va != vb {
		t = (threshold - va) / (vb - va)
	}
	pos[axis] += t

	ga := normalize(f.Gradient(a[0], a[1], a[2]))
	gb := normalize(f.Gradient(b[0], b[1], b[2]))
	for d := 0; d < 3; d++ {
		normal[d] = -(ga[d]*(1-t) + gb[d]*t)
	}
	return pos, normalize(normal)
}
