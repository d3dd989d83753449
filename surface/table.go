// Package surface turns a sampled scalar field into a triangle mesh of one
// of its level sets using precomputed marching cubes tables.
package surface

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedTable is returned by Build when the canonical data cannot
// produce a complete, consistent table.
var ErrMalformedTable = errors.New("surface: malformed table")

// Triangle is three edge indices of the cube layout.
type Triangle [3]uint8

// Canonical is one source row of a table. Edges holds triangle edge
// indices in groups of three, padded to the table capacity with -1.
type Canonical struct {
	Pattern uint8
	Edges   []int8
}

// Spec describes how to build a Table.
type Spec struct {
	Name     string
	Layout   Layout
	Capacity int  // width of every Canonical.Edges row
	Rotate   bool // expand every row under the 24 cube rotations
	Patterns []Canonical
}

// Table maps each of the 256 corner patterns to the triangles that
// separate inside corners from outside ones. Bit b of a pattern is set when
// corner b lies above the threshold. A Table is immutable.
type Table struct {
	name    string
	layout  Layout
	entries [256][]Triangle
}

// Build expands the canonical rows of src into a full table. Every entry
// written for a pattern p also writes ^p with the triangle winding reversed,
// so complementary patterns always agree.
func Build(src Spec) (*Table, error) {
	if err := src.Layout.validate(); err != nil {
		return nil, fmt.Errorf("build %s table: %v: %w", src.Name, err, ErrMalformedTable)
	}
	group := []rotation{identity}
	if src.Rotate {
		group = cubeRotations
	}
	type perm struct {
		corners [8]int
		edges   [12]int
	}
	perms := make([]perm, len(group))
	for i, r := range group {
		c, e, err := src.Layout.permutation(r)
		if err != nil {
			return nil, fmt.Errorf("build %s table: %v: %w", src.Name, err, ErrMalformedTable)
		}
		perms[i] = perm{c, e}
	}

	t := &Table{name: src.Name, layout: src.Layout}
	var defined [256]bool
	for _, c := range src.Patterns {
		tris, err := parseRow(c.Edges, src.Capacity)
		if err != nil {
			return nil, fmt.Errorf("build %s table: pattern %08b: %v: %w", src.Name, c.Pattern, err, ErrMalformedTable)
		}
		for _, p := range perms {
			q := rotatePattern(c.Pattern, p.corners)
			rotated := make([]Triangle, len(tris))
			flipped := make([]Triangle, len(tris))
			for i, tri := range tris {
				for v, e := range tri {
					rotated[i][v] = uint8(p.edges[e])
				}
				flipped[i] = Triangle{rotated[i][2], rotated[i][1], rotated[i][0]}
			}
			t.entries[q] = rotated
			t.entries[^q] = flipped
			defined[q], defined[^q] = true, true
		}
	}
	for p, ok := range defined {
		if !ok {
			return nil, fmt.Errorf("build %s table: pattern %08b has no entry: %w", src.Name, p, ErrMalformedTable)
		}
	}
	return t, nil
}

// MustBuild is Build for tables compiled into the program.
func MustBuild(src Spec) *Table {
	t, err := Build(src)
	if err != nil {
		panic(err)
	}
	return t
}

func parseRow(row []int8, capacity int) ([]Triangle, error) {
	if capacity <= 0 || len(row) != capacity {
		return nil, fmt.Errorf("row holds %d edges, capacity is %d", len(row), capacity)
	}
	n := slices.Index(row, -1)
	if n < 0 {
		n = len(row)
	}
	for _, v := range row[n:] {
		if v != -1 {
			return nil, fmt.Errorf("edge %d after terminator", v)
		}
	}
	if n%3 != 0 {
		return nil, fmt.Errorf("%d edges do not form whole triangles", n)
	}
	tris := make([]Triangle, n/3)
	for i, v := range row[:n] {
		if v < 0 || v >= 12 {
			return nil, fmt.Errorf("edge index %d out of range", v)
		}
		tris[i/3][i%3] = uint8(v)
	}
	return tris, nil
}

func (t *Table) Name() string { return t.name }

// Layout is the corner and edge numbering the triangles refer to.
func (t *Table) Layout() Layout { return t.layout }

// Triangles returns a copy of the entry for pattern p.
func (t *Table) Triangles(p uint8) []Triangle {
	return slices.Clone(t.entries[p])
}

// Len is the number of triangles emitted for pattern p.
func (t *Table) Len(p uint8) int { return len(t.entries[p]) }

// MaxTriangles is the largest entry in the table.
func (t *Table) MaxTriangles() int {
	m := 0
	for _, e := range t.entries {
		m = max(m, len(e))
	}
	return m
}
