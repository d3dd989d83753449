//go:build !(js && wasm)

// Package viewer shows a terrain volume in a desktop window.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/RyanAllcock/SurfaceConstruction/render"
	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

const (
	orbitStep     = 0.03
	zoomStep      = 1.02
	thresholdStep = 0.02
	pointSize     = 2
	// ebiten indexes vertices with uint16.
	maxBatch = 65535 / 4 * 4
)

// Options configures the viewer window.
type Options struct {
	Width, Height int
	Title         string
}

type game struct {
	vol    *terrain.Volume
	cam    render.Camera
	vp     render.Viewport
	points bool
	white  *ebiten.Image
	verts  []ebiten.Vertex
	idx    []uint16
}

// Run opens a window on v and blocks until it is closed or Esc is pressed.
//
// Keys: P next table, T toggle points/triangles, Up/Down threshold,
// WASD or Left/Right orbit, Q/E zoom.
func Run(v *terrain.Volume, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1024, 768
	}
	if opts.Title == "" {
		opts.Title = "SurfaceConstruction"
	}
	ext := v.Extent()
	target := mgl32.Vec3{ext[0] / 2, ext[1] / 2, ext[2] / 2}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	g := &game{
		vol:   v,
		cam:   render.NewCamera(target, 1.6*target.Len()+0.5),
		vp:    render.Viewport{Width: opts.Width, Height: opts.Height},
		white: white,
	}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.vol.CyclingNext()
		fmt.Printf("Table %s: %d triangles\n", g.vol.VariantName(), g.vol.Mesh().Triangles())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.points = !g.points
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.setThreshold(g.vol.Threshold() + thresholdStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.setThreshold(g.vol.Threshold() - thresholdStep)
	}

	var yaw, pitch float32
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		pitch += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		pitch -= orbitStep
	}
	g.cam.Orbit(yaw, pitch)
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.cam.Zoom(zoomStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.cam.Zoom(1 / zoomStep)
	}
	return nil
}

func (g *game) setThreshold(t float32) {
	g.vol.SetThreshold(t)
	fmt.Printf("Threshold %.2f: %d triangles\n", t, g.vol.Mesh().Triangles())
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x14, 0x1c, 0xff})
	if g.points {
		g.drawPoints(screen, render.Points(g.vol.Points(), g.vol.Threshold(), &g.cam, g.vp))
		return
	}
	g.drawTriangles(screen, render.Triangles(g.vol.Mesh(), &g.cam, g.vp))
}

func (g *game) src() *ebiten.Image {
	return g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// drawTriangles submits painter-ordered triangles in batches small enough
// for 16-bit indices.
func (g *game) drawTriangles(screen *ebiten.Image, verts []render.Vertex) {
	const batch = 65535 / 3 * 3
	for start := 0; start < len(verts); start += batch {
		end := min(start+batch, len(verts))
		g.verts, g.idx = g.verts[:0], g.idx[:0]
		for i, v := range verts[start:end] {
			g.verts = append(g.verts, toEbiten(v, 0, 0))
			g.idx = append(g.idx, uint16(i))
		}
		screen.DrawTriangles(g.verts, g.idx, g.src(), &ebiten.DrawTrianglesOptions{})
	}
}

// drawPoints draws every point as a small square.
func (g *game) drawPoints(screen *ebiten.Image, pts []render.Vertex) {
	for start := 0; start < len(pts); start += maxBatch / 4 {
		end := min(start+maxBatch/4, len(pts))
		g.verts, g.idx = g.verts[:0], g.idx[:0]
		for _, p := range pts[start:end] {
			base := uint16(len(g.verts))
			g.verts = append(g.verts,
				toEbiten(p, 0, 0), toEbiten(p, pointSize, 0),
				toEbiten(p, 0, pointSize), toEbiten(p, pointSize, pointSize))
			g.idx = append(g.idx, base, base+1, base+2, base+1, base+3, base+2)
		}
		screen.DrawTriangles(g.verts, g.idx, g.src(), &ebiten.DrawTrianglesOptions{})
	}
}

func toEbiten(v render.Vertex, dx, dy float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: v.X + dx, DstY: v.Y + dy,
		SrcX: 1, SrcY: 1,
		ColorR: v.R, ColorG: v.G, ColorB: v.B, ColorA: v.A,
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.vp = render.Viewport{Width: outsideWidth, Height: outsideHeight}
	}
	return g.vp.Width, g.vp.Height
}
