package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/RyanAllcock/SurfaceConstruction/surface"
	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// Vertex is a shaded screen-space vertex.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

var (
	lightDir   = mgl32.Vec3{0.4, 1, 0.3}.Normalize()
	baseColour = mgl32.Vec3{0.56, 0.5, 0.38}
)

const ambient = 0.25

// Viewport maps clip space to pixels.
type Viewport struct {
	Width, Height int
}

func (vp Viewport) aspect() float32 {
	if vp.Height == 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// project returns pixel coordinates and normalized depth, or false when p is
// behind the eye.
func (vp Viewport) project(mvp mgl32.Mat4, p mgl32.Vec3) (x, y, depth float32, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	x = (ndc.X() + 1) * 0.5 * float32(vp.Width)
	y = (1 - ndc.Y()) * 0.5 * float32(vp.Height)
	return x, y, ndc.Z(), true
}

// Triangles projects every mesh triangle and returns them as consecutive
// vertex triples ordered far to near, shaded by their vertex normals.
func Triangles(mesh surface.Mesh, cam *Camera, vp Viewport) []Vertex {
	mvp := cam.ViewProjection(vp.aspect())
	type tri struct {
		v     [3]Vertex
		depth float32
	}
	tris := make([]tri, 0, mesh.Triangles())
	for t := 0; t < mesh.Triangles(); t++ {
		var out tri
		visible := true
		for k := 0; k < 3; k++ {
			i := 3*t + k
			x, y, z, ok := vp.project(mvp, mesh.Position(i))
			if !ok || z < -1 || z > 1 {
				visible = false
				break
			}
			out.v[k] = shade(x, y, mesh.Normal(i))
			out.depth += z
		}
		if visible {
			tris = append(tris, out)
		}
	}
	sort.SliceStable(tris, func(a, b int) bool { return tris[a].depth > tris[b].depth })

	verts := make([]Vertex, 0, 3*len(tris))
	for _, t := range tris {
		verts = append(verts, t.v[:]...)
	}
	return verts
}

func shade(x, y float32, n mgl32.Vec3) Vertex {
	l := ambient + (1-ambient)*max(n.Dot(lightDir), 0)
	return Vertex{X: x, Y: y, R: baseColour[0] * l, G: baseColour[1] * l, B: baseColour[2] * l, A: 1}
}

// Points projects lattice points, brightening those above threshold.
func Points(points []float32, threshold float32, cam *Camera, vp Viewport) []Vertex {
	mvp := cam.ViewProjection(vp.aspect())
	out := make([]Vertex, 0, len(points)/terrain.PointStride)
	for i := 0; i+terrain.PointStride <= len(points); i += terrain.PointStride {
		p := points[i : i+terrain.PointStride]
		x, y, z, ok := vp.project(mvp, mgl32.Vec3{p[0], p[1], p[2]})
		if !ok || z < -1 || z > 1 {
			continue
		}
		c := Vertex{X: x, Y: y, R: 0.2, G: 0.2, B: 0.3, A: 1}
		if p[3] > threshold {
			c.R, c.G, c.B = 0.4, 0.9, 0.4
		}
		out = append(out, c)
	}
	return out
}
