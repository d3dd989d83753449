package surface

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	// VertexStride is position xyz followed by normal xyz.
	VertexStride = 6
	// TriangleStride is the number of floats per triangle.
	TriangleStride = 3 * VertexStride
)

// Mesh is a flat, unindexed triangle buffer.
type Mesh struct {
	Data []float32
}

func (m Mesh) Triangles() int { return len(m.Data) / TriangleStride }

func (m Mesh) Vertices() int { return len(m.Data) / VertexStride }

// Position returns the position of vertex i.
func (m Mesh) Position(i int) [3]float32 {
	o := i * VertexStride
	return [3]float32{m.Data[o], m.Data[o+1], m.Data[o+2]}
}

// Normal returns the unit normal of vertex i.
func (m Mesh) Normal(i int) [3]float32 {
	o := i*VertexStride + 3
	return [3]float32{m.Data[o], m.Data[o+1], m.Data[o+2]}
}

// Bounds returns the axis-aligned box around all vertex positions. An empty
// mesh has zero bounds.
func (m Mesh) Bounds() (lo, hi [3]float32) {
	for i := 0; i < m.Vertices(); i++ {
		p := m.Position(i)
		for d := 0; d < 3; d++ {
			if i == 0 || p[d] < lo[d] {
				lo[d] = p[d]
			}
			if i == 0 || p[d] > hi[d] {
				hi[d] = p[d]
			}
		}
	}
	return lo, hi
}

// Sum64 is an xxhash digest of the raw buffer, used to compare meshes
// bit for bit.
func (m Mesh) Sum64() uint64 {
	d := xxhash.New()
	var buf [4096]byte
	n := 0
	for _, v := range m.Data {
		binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(v))
		n += 4
		if n == len(buf) {
			d.Write(buf[:n])
			n = 0
		}
	}
	d.Write(buf[:n])
	return d.Sum64()
}
