package surface

import "github.com/chewxy/math32"

// Field is a scalar value per lattice point, stored with x varying fastest,
// then y, then z.
type Field struct {
	Dims   [3]int
	Values []float32
}

// NewField allocates a zeroed field of dims lattice points.
func NewField(dims [3]int) *Field {
	n := max(dims[0], 0) * max(dims[1], 0) * max(dims[2], 0)
	return &Field{Dims: dims, Values: make([]float32, n)}
}

// Index is the row-major offset of (x, y, z) in Values, x fastest.
func (f *Field) Index(x, y, z int) int {
	return (z*f.Dims[1]+y)*f.Dims[0] + x
}

func (f *Field) At(x, y, z int) float32 { return f.Values[f.Index(x, y, z)] }

func (f *Field) Set(x, y, z int, v float32) { f.Values[f.Index(x, y, z)] = v }

// Cells is the number of cubes along each axis.
func (f *Field) Cells() [3]int {
	return [3]int{max(f.Dims[0]-1, 0), max(f.Dims[1]-1, 0), max(f.Dims[2]-1, 0)}
}

// CellCount is the number of cubes between lattice points.
func (f *Field) CellCount() int {
	c := f.Cells()
	return c[0] * c[1] * c[2]
}

// Extent is the largest cell count over the three axes.
func (f *Field) Extent() int {
	c := f.Cells()
	return max(c[0], c[1], c[2])
}

// Gradient estimates the field derivative at a lattice point with central
// differences, falling back to one-sided differences on the boundary.
func (f *Field) Gradient(x, y, z int) [3]float32 {
	p := [3]int{x, y, z}
	var g [3]float32
	for d := 0; d < 3; d++ {
		lo, hi := p, p
		if p[d] > 0 {
			lo[d]--
		}
		if p[d] < f.Dims[d]-1 {
			hi[d]++
		}
		if span := hi[d] - lo[d]; span > 0 {
			g[d] = (f.At(hi[0], hi[1], hi[2]) - f.At(lo[0], lo[1], lo[2])) / float32(span)
		}
	}
	return g
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
