package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// loadConfig reads path, or returns the defaults for "" and "-". The SEED
// environment variable overrides the seed either way.
func loadConfig(path string) (terrain.Config, error) {
	cfg := terrain.DefaultConfig()
	if path != "" && path != "-" {
		var err error
		if cfg, err = terrain.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if s := os.Getenv("SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEED %q: %w", s, err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// LoadConfig is loadConfig for callers outside the package.
func LoadConfig(path string) (terrain.Config, error) { return loadConfig(path) }
