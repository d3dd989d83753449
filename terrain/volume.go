// Package terrain samples fractal noise over a bounded lattice and keeps a
// triangle mesh of one of its level sets up to date.
package terrain

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/RyanAllcock/SurfaceConstruction/noise"
	"github.com/RyanAllcock/SurfaceConstruction/surface"
)

// PointStride is position xyz followed by the sampled density.
const PointStride = 4

// Volume owns a sampled field and the mesh extracted from it with the
// currently selected table. The field is sampled once; switching tables or
// thresholds only re-runs extraction. A Volume is not safe for concurrent
// mutation.
type Volume struct {
	cfg       Config
	noise     noise.Noise
	field     *surface.Field
	points    []float32
	variants  []*surface.Extractor
	cursor    int
	threshold float32
	mesh      surface.Mesh
}

// New samples the volume described by cfg and extracts its first mesh.
func New(ctx context.Context, cfg Config) (*Volume, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n, err := cfg.Noise()
	if err != nil {
		return nil, fmt.Errorf("build noise: %w", err)
	}
	v := &Volume{
		cfg:       cfg,
		noise:     n,
		field:     surface.NewField(cfg.Dims),
		threshold: cfg.Threshold,
	}
	for _, t := range surface.Variants() {
		v.variants = append(v.variants, surface.NewExtractor(t))
	}
	v.cursor = cfg.Variant % len(v.variants)
	if err := v.sample(ctx); err != nil {
		return nil, err
	}
	v.fillPoints()
	v.extract()
	return v, nil
}

// sample fills the field one z slice per task. Lattice points on the outer
// faces are pinned to 0 so the surface closes at the volume bounds.
func (v *Volume) sample(ctx context.Context) error {
	d := v.field.Dims
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for z := 0; z < d[2]; z++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := make([]int, 3)
			for y := 0; y < d[1]; y++ {
				for x := 0; x < d[0]; x++ {
					val := float32(0)
					if x > 0 && y > 0 && z > 0 && x < d[0]-1 && y < d[1]-1 && z < d[2]-1 {
						p[0], p[1], p[2] = x, y, z
						val = v.noise.At(p)
					}
					v.field.Set(x, y, z, val)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("sample volume: %w", err)
	}
	return nil
}

// fillPoints lays out one point per lattice site, scaled like the mesh so
// both share a frame.
func (v *Volume) fillPoints() {
	d := v.field.Dims
	ext := float32(v.field.Extent())
	v.points = make([]float32, 0, len(v.field.Values)*PointStride)
	for z := 0; z < d[2]; z++ {
		for y := 0; y < d[1]; y++ {
			for x := 0; x < d[0]; x++ {
				v.points = append(v.points,
					float32(x)/ext, float32(y)/ext, float32(z)/ext,
					v.field.At(x, y, z))
			}
		}
	}
}

func (v *Volume) extract() {
	x := v.variants[v.cursor]
	_, patterns := x.Count(v.field, v.threshold)
	v.mesh = x.Emit(v.field, patterns, v.threshold)
}

// CyclingNext selects the next table, wrapping after the last, and
// re-extracts the mesh from the existing field.
func (v *Volume) CyclingNext() {
	v.cursor = (v.cursor + 1) % len(v.variants)
	v.extract()
}

// SetThreshold re-extracts the mesh at a new iso level.
func (v *Volume) SetThreshold(t float32) {
	if t == v.threshold {
		return
	}
	v.threshold = t
	v.extract()
}

func (v *Volume) Threshold() float32 { return v.threshold }

// Mesh is the surface extracted with the active table and threshold.
func (v *Volume) Mesh() surface.Mesh { return v.mesh }

// Points is PointStride floats per lattice site in field order.
func (v *Volume) Points() []float32 { return v.points }

// Field is the sampled density. Callers must not modify it.
func (v *Volume) Field() *surface.Field { return v.field }

func (v *Volume) Config() Config { return v.cfg }

func (v *Volume) Dims() [3]int { return v.field.Dims }

// Variant is the index of the active table in surface.Variants.
func (v *Volume) Variant() int { return v.cursor }

func (v *Volume) VariantCount() int { return len(v.variants) }

func (v *Volume) VariantName() string { return v.variants[v.cursor].Table().Name() }

// Extent is the size of the volume in the normalized frame shared by
// Points and Mesh.
func (v *Volume) Extent() [3]float32 {
	c := v.field.Cells()
	e := float32(v.field.Extent())
	return [3]float32{float32(c[0]) / e, float32(c[1]) / e, float32(c[2]) / e}
}
