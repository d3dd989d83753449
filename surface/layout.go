package surface

import "fmt"

// Layout fixes the numbering of a unit cube: Corners holds the offset of each
// of the eight corners in {0,1}, Edges the offset of each of the twelve edge
// midpoints in {-1,0,1} (the zero component is the axis the edge runs along).
type Layout struct {
	Corners [8][3]int8
	Edges   [12][3]int8
}

// OriginalLayout numbers the z=1 face first, counter-clockwise from the
// origin, then the z=0 face; edges follow the same faces and then the four
// edges running along z.
var OriginalLayout = Layout{
	Corners: [8][3]int8{
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	},
	Edges: [12][3]int8{
		{0, -1, 1}, {1, 0, 1}, {0, 1, 1}, {-1, 0, 1},
		{0, -1, -1}, {1, 0, -1}, {0, 1, -1}, {-1, 0, -1},
		{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0},
	},
}

// LorensenLayout is the classic numbering of the published 256-case table:
// the y=0 face first, then the y=1 face, then the vertical edges.
var LorensenLayout = Layout{
	Corners: [8][3]int8{
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
		{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1},
	},
	Edges: [12][3]int8{
		{0, -1, -1}, {1, -1, 0}, {0, -1, 1}, {-1, -1, 0},
		{0, 1, -1}, {1, 1, 0}, {0, 1, 1}, {-1, 1, 0},
		{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1},
	},
}

func (l *Layout) validate() error {
	var seen [8]bool
	for i, c := range l.Corners {
		for _, v := range c {
			if v != 0 && v != 1 {
				return fmt.Errorf("corner %d offset %v outside the unit cube", i, c)
			}
		}
		bit := int(c[0]) | int(c[1])<<1 | int(c[2])<<2
		if seen[bit] {
			return fmt.Errorf("corner %d offset %v repeated", i, c)
		}
		seen[bit] = true
	}
	for i, e := range l.Edges {
		zeros := 0
		for _, v := range e {
			if v < -1 || v > 1 {
				return fmt.Errorf("edge %d offset %v outside [-1,1]", i, e)
			}
			if v == 0 {
				zeros++
			}
		}
		if zeros > 1 {
			return fmt.Errorf("edge %d offset %v is not on the cube surface", i, e)
		}
		for j := 0; j < i; j++ {
			if l.Edges[j] == e {
				return fmt.Errorf("edge %d offset %v repeated", i, e)
			}
		}
	}
	return nil
}

func (l *Layout) corner(v [3]int) (int, bool) {
	for i, c := range l.Corners {
		if int(c[0]) == v[0] && int(c[1]) == v[1] && int(c[2]) == v[2] {
			return i, true
		}
	}
	return 0, false
}

func (l *Layout) edge(v [3]int) (int, bool) {
	for i, e := range l.Edges {
		if int(e[0]) == v[0] && int(e[1]) == v[1] && int(e[2]) == v[2] {
			return i, true
		}
	}
	return 0, false
}

// EdgeCorners returns the two corners joined by edge e. For an offset that
// names a corner both results are that corner.
func (l *Layout) EdgeCorners(e int) (int, int) {
	off := l.Edges[e]
	var lo, hi [3]int
	for d, v := range off {
		if v == 0 {
			hi[d] = 1
			continue
		}
		lo[d] = (int(v) + 1) / 2
		hi[d] = lo[d]
	}
	a, _ := l.corner(lo)
	b, _ := l.corner(hi)
	return a, b
}
