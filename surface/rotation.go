package surface

import (
	"fmt"
	"slices"
)

// rotation is an integer 3x3 matrix from the proper rotation group of the
// cube.
type rotation [3][3]int

var identity = rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func (r rotation) mul(o rotation) rotation {
	var out rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += r[i][k] * o[k][j]
			}
		}
	}
	return out
}

func (r rotation) apply(v [3]int) [3]int {
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = r[i][0]*v[0] + r[i][1]*v[1] + r[i][2]*v[2]
	}
	return out
}

// cubeRotations is the closure of quarter turns about x and z. It has 24
// elements, identity first.
var cubeRotations = closure(
	rotation{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	rotation{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
)

func closure(generators ...rotation) []rotation {
	group := []rotation{identity}
	frontier := []rotation{identity}
	for len(frontier) > 0 {
		var next []rotation
		for _, g := range frontier {
			for _, h := range generators {
				n := h.mul(g)
				if !slices.Contains(group, n) {
					group = append(group, n)
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return group
}

// permutation maps every corner and edge of l to where r carries it. Corners
// are rotated about the cube centre by working in doubled coordinates.
func (l *Layout) permutation(r rotation) (corners [8]int, edges [12]int, err error) {
	for i, c := range l.Corners {
		v := r.apply([3]int{2*int(c[0]) - 1, 2*int(c[1]) - 1, 2*int(c[2]) - 1})
		j, ok := l.corner([3]int{(v[0] + 1) / 2, (v[1] + 1) / 2, (v[2] + 1) / 2})
		if !ok {
			return corners, edges, fmt.Errorf("corner %d has no image under rotation %v", i, r)
		}
		corners[i] = j
	}
	for i, e := range l.Edges {
		j, ok := l.edge(r.apply([3]int{int(e[0]), int(e[1]), int(e[2])}))
		if !ok {
			return corners, edges, fmt.Errorf("edge %d has no image under rotation %v", i, r)
		}
		edges[i] = j
	}
	return corners, edges, nil
}

func rotatePattern(p uint8, corners [8]int) uint8 {
	var q uint8
	for b := 0; b < 8; b++ {
		if p>>b&1 == 1 {
			q |= 1 << corners[b]
		}
	}
	return q
}
