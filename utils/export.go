package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qmuntal/gltf"

	"github.com/RyanAllcock/SurfaceConstruction/api"
	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// RunExport samples the volume described by configPath and writes its
// surface to outPath. A .zst or .zz suffix compresses the .glb.
func RunExport(ctx context.Context, configPath, outPath string, points bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	start := time.Now()
	v, err := terrain.New(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Sampling %dx%dx%d (%s) took %d ms\n", cfg.Dims[0], cfg.Dims[1], cfg.Dims[2], v.VariantName(), time.Since(start).Milliseconds())
	return writeVolume(v, outPath, points)
}

func writeVolume(v *terrain.Volume, outPath string, points bool) error {
	name := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	name = strings.TrimSuffix(name, ".glb")
	doc, err := api.Document(v, api.ExportOptions{Name: name, Points: points})
	if err != nil {
		return err
	}
	comp := api.CompressionForPath(outPath)
	if comp == api.CompNone {
		return gltf.SaveBinary(doc, outPath)
	}
	data, err := api.EncodeGLB(doc)
	if err != nil {
		return err
	}
	start := time.Now()
	packed, err := api.Compress(data, comp)
	if err != nil {
		return err
	}
	fmt.Printf("Compression (%s) %d -> %d bytes took %d ms\n", comp, len(data), len(packed), time.Since(start).Milliseconds())
	return os.WriteFile(outPath, packed, 0o644)
}

// ReadGLB loads a .glb written by RunExport, undoing any compression.
func ReadGLB(path string) (*gltf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = api.Decompress(data, api.CompressionForPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}
