package utils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "volume.json")
	cfg := `{"dims":[10,8,10],"noiseScale":[3,3,3],"threshold":0}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestRunExport(t *testing.T) {
	cfg := writeConfig(t)
	for _, name := range []string{"hill.glb", "hill.glb.zst", "hill.glb.zz"} {
		out := filepath.Join(t.TempDir(), name)
		if err := RunExport(context.Background(), cfg, out, true); err != nil {
			t.Fatalf("RunExport(%s) failed: %v", name, err)
		}
		doc, err := ReadGLB(out)
		if err != nil {
			t.Fatalf("ReadGLB(%s) failed: %v", name, err)
		}
		if len(doc.Meshes) != 2 || doc.Meshes[0].Name != "hill" {
			t.Fatalf("%s: unexpected meshes %d", name, len(doc.Meshes))
		}
		if doc.Meshes[1].Primitives[0].Mode != gltf.PrimitivePoints {
			t.Fatalf("%s: lattice is not a point primitive", name)
		}
	}
}

func TestRunExportMissingConfig(t *testing.T) {
	if err := RunExport(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "out.glb", false); err == nil {
		t.Fatalf("Expected error for missing config, got nil")
	}
}

func TestSeedFromEnvironment(t *testing.T) {
	t.Setenv("SEED", "77")
	cfg, err := loadConfig("-")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Seed != 77 || cfg.Dims != [3]int{100, 50, 100} {
		t.Fatalf("unexpected config %+v", cfg)
	}
	t.Setenv("SEED", "x")
	if _, err := loadConfig(""); err == nil {
		t.Fatalf("Expected error for invalid SEED")
	}
}

func TestRunGenerateBatch(t *testing.T) {
	dir := t.TempDir()
	if err := RunGenerateBatch(context.Background(), writeConfig(t), 3, 12345, dir); err != nil {
		t.Fatalf("RunGenerateBatch failed: %v", err)
	}
	var buffers [][]byte
	for _, name := range []string{"0.glb", "1.glb", "2.glb"} {
		doc, err := ReadGLB(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		if len(doc.Buffers) != 1 {
			t.Fatalf("%s: %d buffers", name, len(doc.Buffers))
		}
		buffers = append(buffers, doc.Buffers[0].Data)
	}
	if bytes.Equal(buffers[0], buffers[1]) || bytes.Equal(buffers[1], buffers[2]) {
		t.Fatalf("batch volumes share the same surface")
	}
	if batchSeed(12345, 0) == batchSeed(12345, 1) || batchSeed(1, 4) < 0 {
		t.Fatalf("batch seeds collide or go negative")
	}
}

func TestRunGenerateBatchReportsFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "1.glb"), 0o755); err != nil {
		t.Fatalf("Failed to create blocking dir: %v", err)
	}
	if err := RunGenerateBatch(context.Background(), writeConfig(t), 3, 12345, dir); err == nil {
		t.Fatalf("Expected error when 1.glb cannot be written")
	}
}

func TestCollectStats(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	a, err := CollectStats(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}
	b, err := CollectStats(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}
	if len(a) != 2 || a[1].Name != "original" {
		t.Fatalf("unexpected stats %+v", a)
	}
	for i := range a {
		if a[i].Triangles == 0 || a[i].Digest != b[i].Digest {
			t.Fatalf("%s: %d triangles, digests %x/%x", a[i].Name, a[i].Triangles, a[i].Digest, b[i].Digest)
		}
	}
}
