package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/RyanAllcock/SurfaceConstruction/surface"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-3 }

func TestCameraEyeDistance(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0.5, 0.25, 0.5}, 2)
	if d := c.Eye().Sub(c.Target).Len(); !near(d, 2) {
		t.Fatalf("eye is %v from the target", d)
	}
}

func TestTargetProjectsToCentre(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0.5, 0.25, 0.5}, 2)
	vp := Viewport{Width: 800, Height: 600}
	x, y, z, ok := vp.project(c.ViewProjection(vp.aspect()), c.Target)
	if !ok || !near(x, 400) || !near(y, 300) || z <= -1 || z >= 1 {
		t.Fatalf("target at (%v,%v,%v) ok=%v", x, y, z, ok)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 2)
	c.Orbit(0, 10)
	if c.Pitch != maxPitch {
		t.Fatalf("pitch %v, want %v", c.Pitch, maxPitch)
	}
	c.Orbit(0, -20)
	if c.Pitch != -maxPitch {
		t.Fatalf("pitch %v, want %v", c.Pitch, -maxPitch)
	}
	c.Zoom(1e6)
	if c.Distance != c.Far/2 {
		t.Fatalf("distance %v escaped the far plane", c.Distance)
	}
	c.Zoom(1e-6)
	if c.Distance != c.Near*2 {
		t.Fatalf("distance %v crossed the near plane", c.Distance)
	}
}

// triangleAt builds an upward-facing triangle around (x, 0, z).
func triangleAt(x, z float32) []float32 {
	return []float32{
		x, 0, z, 0, 1, 0,
		x + 0.1, 0, z, 0, 1, 0,
		x, 0, z + 0.1, 0, 1, 0,
	}
}

func TestTrianglesFarToNear(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 3)
	c.Yaw, c.Pitch = 0, 0.3 // eye on +z
	far := triangleAt(0, -1)
	front := triangleAt(0, 1)
	mesh := surface.Mesh{Data: append(append([]float32{}, front...), far...)}
	verts := Triangles(mesh, &c, Viewport{Width: 640, Height: 480})
	if len(verts) != 6 {
		t.Fatalf("got %d vertices, want 6", len(verts))
	}
	// The far triangle sits higher on screen when looking down at the plane.
	if verts[0].Y >= verts[3].Y {
		t.Fatalf("near triangle drawn first: y %v then %v", verts[0].Y, verts[3].Y)
	}
	lit := ambient + (1-ambient)*lightDir.Y()
	if !near(verts[0].R, baseColour[0]*lit) || verts[0].A != 1 {
		t.Fatalf("unexpected shading %+v", verts[0])
	}
}

func TestTrianglesBehindEyeAreDropped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 1)
	c.Yaw, c.Pitch = 0, 0
	mesh := surface.Mesh{Data: triangleAt(0, 5)}
	if verts := Triangles(mesh, &c, Viewport{Width: 640, Height: 480}); len(verts) != 0 {
		t.Fatalf("triangle behind the eye produced %d vertices", len(verts))
	}
}

func TestPointsColourByThreshold(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 2)
	pts := []float32{0, 0, 0, 0.5, 0.1, 0, 0, -0.5}
	verts := Points(pts, 0, &c, Viewport{Width: 100, Height: 100})
	if len(verts) != 2 {
		t.Fatalf("got %d points", len(verts))
	}
	if verts[0].G <= verts[1].G {
		t.Fatalf("point above threshold is not highlighted")
	}
}
