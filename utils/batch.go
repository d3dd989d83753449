package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// RunGenerateBatch exports amount volumes that differ only in seed, as
// 0.glb..(amount-1).glb in outDir. At most GOMAXPROCS volumes are held at
// once and the first failure cancels the rest. A zero baseSeed derives one
// from the clock.
func RunGenerateBatch(ctx context.Context, configPath string, amount int, baseSeed uint64, outDir string) error {
	if amount < 0 {
		amount = 0
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < amount; i++ {
		g.Go(func() error {
			c := cfg
			c.Seed = batchSeed(baseSeed, i)
			v, err := terrain.New(ctx, c)
			if err != nil {
				return fmt.Errorf("volume %d: %w", i, err)
			}
			path := filepath.Join(outDir, fmt.Sprintf("%d.glb", i))
			if err := writeVolume(v, path, false); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("Generated %d volumes in %d ms\n", amount, time.Since(start).Milliseconds())
	return nil
}

// batchSeed spreads per-file seeds with a Weyl sequence.
func batchSeed(base uint64, i int) int64 {
	const weyl = uint64(0x9e3779b97f4a7c15)
	return int64((base ^ (uint64(i)+1)*weyl) & 0x7fffffffffffffff)
}
