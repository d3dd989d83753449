package terrain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/RyanAllcock/SurfaceConstruction/noise"
)

// ErrConfig marks a configuration that cannot describe a volume.
var ErrConfig = errors.New("terrain: invalid config")

const (
	// MaxOctaves bounds the octave count so the doubled sample frequency
	// cannot overflow a lattice coordinate.
	MaxOctaves = 16
	// seedSpan bounds each axis of the lattice offset chosen by a seed.
	seedSpan = 4096
)

// Config describes the sampled volume and how it is polygonised.
type Config struct {
	Dims        [3]int     `json:"dims"`
	NoiseScale  [3]float32 `json:"noiseScale"`
	Threshold   float32    `json:"threshold"`
	Octaves     int        `json:"octaves"`
	Persistence float32    `json:"persistence"`
	Gradient    string     `json:"gradient"`
	Seed        int64      `json:"seed"`
	Variant     int        `json:"variant"`
}

// DefaultConfig is a 100x50x100 lattice of single-octave implicit-gradient
// noise, one noise cell every quarter of the horizontal extent.
func DefaultConfig() Config {
	dims := [3]int{100, 50, 100}
	return Config{
		Dims:        dims,
		NoiseScale:  [3]float32{float32(dims[0]) / 4, float32(dims[1]) / 2, float32(dims[2]) / 4},
		Threshold:   0.2,
		Octaves:     1,
		Persistence: 0.5,
		Gradient:    noise.AxisImplicit.String(),
		Seed:        1,
	}
}

// LoadConfig reads a JSON config. Keys missing from the file keep their
// DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first field that cannot describe a volume, wrapped
// with ErrConfig.
func (c Config) Validate() error {
	for d, n := range c.Dims {
		if n < 2 {
			return fmt.Errorf("axis %d has %d lattice points, need at least 2: %w", d, n, ErrConfig)
		}
	}
	if c.Octaves < 1 || c.Octaves > MaxOctaves {
		return fmt.Errorf("%d octaves, want 1..%d: %w", c.Octaves, MaxOctaves, ErrConfig)
	}
	if c.Variant < 0 {
		return fmt.Errorf("variant %d: %w", c.Variant, ErrConfig)
	}
	if _, err := noise.ParseGradient(c.Gradient); err != nil {
		return fmt.Errorf("%v: %w", err, ErrConfig)
	}
	return nil
}

// Noise builds the fractal sampled by the volume. Seed picks the lattice
// offset the fractal is sampled at, so every gradient scheme responds to it.
// Octave i is also seeded with Seed+i so sphere gradients differ between
// octaves.
func (c Config) Noise() (noise.Noise, error) {
	g, err := noise.ParseGradient(c.Gradient)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConfig)
	}
	f := noise.NewFractal(c.Persistence)
	for i := 0; i < c.Octaves; i++ {
		layer, err := noise.New(g, c.NoiseScale[:g.Dims()], c.Seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("octave %d: %w", i, err)
		}
		f.Add(layer)
	}
	return noise.Translated{Source: f, Offset: seedOffset(c.Seed)}, nil
}

func seedOffset(seed int64) [3]int {
	r := rand.New(rand.NewSource(seed))
	return [3]int{r.Intn(seedSpan), r.Intn(seedSpan), r.Intn(seedSpan)}
}
