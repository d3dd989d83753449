package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanAllcock/SurfaceConstruction/surface"
	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// VariantStats summarises the mesh one table produces for a volume.
type VariantStats struct {
	Name      string
	Triangles int
	Digest    uint64
	Extract   time.Duration
}

// CollectStats samples once and extracts with every table in turn, ending
// on the configured one.
func CollectStats(ctx context.Context, cfg terrain.Config) ([]VariantStats, error) {
	v, err := terrain.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]VariantStats, 0, v.VariantCount())
	for i := 0; i < v.VariantCount(); i++ {
		start := time.Now()
		v.CyclingNext()
		m := v.Mesh()
		out = append(out, VariantStats{Name: v.VariantName(), Triangles: m.Triangles(), Digest: m.Sum64(), Extract: time.Since(start)})
	}
	return out, nil
}

// RunStats prints triangle counts and buffer digests for every table.
func RunStats(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	start := time.Now()
	stats, err := CollectStats(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Volume %dx%dx%d, %s x%d octaves, threshold %v (%d ms)\n",
		cfg.Dims[0], cfg.Dims[1], cfg.Dims[2], cfg.Gradient, cfg.Octaves, cfg.Threshold, time.Since(start).Milliseconds())
	for _, s := range stats {
		fmt.Printf("  %-10s %8d triangles  xxh64 %016x  %d ms\n", s.Name, s.Triangles, s.Digest, s.Extract.Milliseconds())
	}
	return nil
}

// RunTables prints how many patterns of each table produce each triangle
// count.
func RunTables() error {
	for _, t := range surface.Variants() {
		hist := make([]int, t.MaxTriangles()+1)
		for p := 0; p < 256; p++ {
			hist[t.Len(uint8(p))]++
		}
		fmt.Printf("%s:", t.Name())
		for n, c := range hist {
			fmt.Printf(" %d tri x%d", n, c)
		}
		fmt.Println()
	}
	return nil
}
