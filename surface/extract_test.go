package surface

import (
	"testing"

	"github.com/chewxy/math32"
)

func fieldOf(dims [3]int, fn func(x, y, z int) float32) *Field {
	f := NewField(dims)
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				f.Set(x, y, z, fn(x, y, z))
			}
		}
	}
	return f
}

func TestFieldIndexing(t *testing.T) {
	f := NewField([3]int{4, 3, 2})
	if len(f.Values) != 24 {
		t.Fatalf("len(Values) = %d, want 24", len(f.Values))
	}
	if f.Index(1, 0, 0) != 1 || f.Index(0, 1, 0) != 4 || f.Index(0, 0, 1) != 12 {
		t.Fatalf("x must vary fastest, then y, then z")
	}
	if c := f.Cells(); c != [3]int{3, 2, 1} || f.CellCount() != 6 || f.Extent() != 3 {
		t.Fatalf("cells %v count %d extent %d", c, f.CellCount(), f.Extent())
	}
}

func TestGradientClampsAtBounds(t *testing.T) {
	f := fieldOf([3]int{3, 3, 3}, func(x, y, z int) float32 { return float32(2*x + y*y) })
	if g := f.Gradient(1, 1, 1); g != [3]float32{2, 2, 0} {
		t.Fatalf("interior gradient %v", g)
	}
	if g := f.Gradient(0, 0, 0); g != [3]float32{2, 1, 0} {
		t.Fatalf("boundary gradient %v", g)
	}
	if g := f.Gradient(2, 2, 2); g != [3]float32{2, 3, 0} {
		t.Fatalf("boundary gradient %v", g)
	}
}

func TestConstantFieldIsEmpty(t *testing.T) {
	for _, tab := range Variants() {
		x := NewExtractor(tab)
		for _, v := range []float32{-1, 0.5, 3} {
			f := fieldOf([3]int{5, 4, 6}, func(int, int, int) float32 { return v })
			n, patterns := x.Count(f, 0.5)
			if n != 0 || len(patterns) != 60 {
				t.Fatalf("%s: value %v gives %d triangles over %d cells", tab.Name(), v, n, len(patterns))
			}
			if m := x.Emit(f, patterns, 0.5); m.Triangles() != 0 {
				t.Fatalf("%s: emitted %d triangles", tab.Name(), m.Triangles())
			}
		}
	}
}

func TestPlaneInUnitCube(t *testing.T) {
	for _, tab := range Variants() {
		f := fieldOf([3]int{2, 2, 2}, func(_, _, z int) float32 { return float32(z) - 0.5 })
		m := NewExtractor(tab).Extract(f, 0)
		if m.Triangles() != 2 {
			t.Fatalf("%s: %d triangles, want 2", tab.Name(), m.Triangles())
		}
		for i := 0; i < m.Vertices(); i++ {
			if p := m.Position(i); math32.Abs(p[2]-0.5) > 1e-6 {
				t.Fatalf("%s: vertex %d at %v, want z=0.5", tab.Name(), i, p)
			}
			if n := m.Normal(i); n != [3]float32{0, 0, -1} {
				t.Fatalf("%s: vertex %d normal %v, want (0,0,-1)", tab.Name(), i, n)
			}
		}
		for tri := 0; tri < m.Triangles(); tri++ {
			p0, p1, p2 := m.Position(3*tri), m.Position(3*tri+1), m.Position(3*tri+2)
			n := cross(sub64(p1, p0), sub64(p2, p0))
			if n[2] >= 0 {
				t.Fatalf("%s: triangle %d winds toward the dense side", tab.Name(), tri)
			}
		}
	}
}

func TestPositionsUseLargestExtent(t *testing.T) {
	for _, tab := range Variants() {
		f := fieldOf([3]int{3, 3, 3}, func(_, _, z int) float32 { return float32(z) - 1 })
		m := NewExtractor(tab).Extract(f, 0.25)
		if m.Triangles() != 8 {
			t.Fatalf("%s: %d triangles, want 8", tab.Name(), m.Triangles())
		}
		lo, hi := m.Bounds()
		if lo != [3]float32{0, 0, 0.625} || hi != [3]float32{1, 1, 0.625} {
			t.Fatalf("%s: bounds %v %v", tab.Name(), lo, hi)
		}
	}
}

func TestSphereFacesOutward(t *testing.T) {
	const n = 16
	centre := [3]float32{7.5, 7.5, 7.5}
	f := fieldOf([3]int{n, n, n}, func(x, y, z int) float32 {
		dx, dy, dz := float32(x)-centre[0], float32(y)-centre[1], float32(z)-centre[2]
		return 5 - math32.Sqrt(dx*dx+dy*dy+dz*dz)
	})
	c := [3]float32{centre[0] / (n - 1), centre[1] / (n - 1), centre[2] / (n - 1)}
	for _, tab := range Variants() {
		x := NewExtractor(tab)
		count, patterns := x.Count(f, 0)
		m := x.Emit(f, patterns, 0)
		if count != m.Triangles() || len(m.Data) != count*TriangleStride {
			t.Fatalf("%s: counted %d, emitted %d", tab.Name(), count, m.Triangles())
		}
		if count != 956 {
			t.Fatalf("%s: %d triangles, want 956", tab.Name(), count)
		}
		for i := 0; i < m.Vertices(); i++ {
			p, nrm := m.Position(i), m.Normal(i)
			out := sub64(p, c)
			if dot(vec64(nrm), out) <= 0 {
				t.Fatalf("%s: vertex %d normal %v points inward", tab.Name(), i, nrm)
			}
			l := math32.Sqrt(nrm[0]*nrm[0] + nrm[1]*nrm[1] + nrm[2]*nrm[2])
			if math32.Abs(l-1) > 1e-4 {
				t.Fatalf("%s: vertex %d normal length %v", tab.Name(), i, l)
			}
		}
		for tri := 0; tri < m.Triangles(); tri++ {
			p0, p1, p2 := m.Position(3*tri), m.Position(3*tri+1), m.Position(3*tri+2)
			g := cross(sub64(p1, p0), sub64(p2, p0))
			if dot(g, g) < 1e-14 {
				continue
			}
			centroid := [3]float32{(p0[0] + p1[0] + p2[0]) / 3, (p0[1] + p1[1] + p2[1]) / 3, (p0[2] + p1[2] + p2[2]) / 3}
			if dot(g, sub64(centroid, c)) <= 0 {
				t.Fatalf("%s: triangle %d winds inward", tab.Name(), tri)
			}
		}
	}
}

func TestVertexDegenerateAndCorner(t *testing.T) {
	f := fieldOf([3]int{2, 2, 2}, func(int, int, int) float32 { return 1 })
	x := NewExtractor(Original())
	// Equal endpoint values fall back to the midpoint.
	pos, _ := x.vertex(f, [3]int{0, 0, 0}, 0, 0.5)
	if pos != [3]float32{0.5, 0, 1} {
		t.Fatalf("degenerate edge vertex at %v", pos)
	}

	l := OriginalLayout
	l.Edges[0] = [3]int8{1, -1, 1}
	x = NewExtractor(&Table{name: "corner", layout: l})
	pos, _ = x.vertex(f, [3]int{0, 0, 0}, 0, 0.5)
	if pos != [3]float32{1, 0, 1} {
		t.Fatalf("corner offset vertex at %v", pos)
	}
}

func TestMeshSum64(t *testing.T) {
	a := Mesh{Data: []float32{1, 2, 3}}
	b := Mesh{Data: []float32{1, 2, 3}}
	c := Mesh{Data: []float32{1, 2, 4}}
	if a.Sum64() != b.Sum64() || a.Sum64() == c.Sum64() {
		t.Fatalf("Sum64 does not track buffer contents")
	}
	big := Mesh{Data: make([]float32, 5000)}
	big.Data[4999] = 1
	if big.Sum64() == (Mesh{Data: make([]float32, 5000)}).Sum64() {
		t.Fatalf("Sum64 ignores data past the first block")
	}
}

func sub64(a, b [3]float32) [3]float64 {
	return [3]float64{float64(a[0] - b[0]), float64(a[1] - b[1]), float64(a[2] - b[2])}
}

func vec64(a [3]float32) [3]float64 {
	return [3]float64{float64(a[0]), float64(a[1]), float64(a[2])}
}
