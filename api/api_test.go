package api

import (
	"bytes"
	"context"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

func testConfig() terrain.Config {
	cfg := terrain.DefaultConfig()
	cfg.Dims = [3]int{10, 8, 10}
	cfg.NoiseScale = [3]float32{3, 3, 3}
	cfg.Threshold = 0
	return cfg
}

func decode(t *testing.T, b []byte) *gltf.Document {
	t.Helper()
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(b)).Decode(doc); err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	return doc
}

func TestVolumeToGLB(t *testing.T) {
	cfg := testConfig()
	v, err := terrain.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("terrain.New failed: %v", err)
	}
	b, err := VolumeToGLB(context.Background(), cfg, ExportOptions{})
	if err != nil {
		t.Fatalf("VolumeToGLB failed: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("glTF")) {
		t.Fatalf("output is not binary glTF")
	}
	doc := decode(t, b)
	if len(doc.Nodes) != 1 || len(doc.Meshes) != 1 || doc.Meshes[0].Name != "Surface" {
		t.Fatalf("unexpected document layout: %d nodes, %d meshes", len(doc.Nodes), len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]
	if got := int(doc.Accessors[prim.Attributes[gltf.POSITION]].Count); got != v.Mesh().Vertices() {
		t.Fatalf("position accessor holds %d vertices, mesh has %d", got, v.Mesh().Vertices())
	}
	if _, ok := prim.Attributes[gltf.NORMAL]; !ok {
		t.Fatalf("normals missing")
	}
}

func TestDocumentWithPoints(t *testing.T) {
	v, err := terrain.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("terrain.New failed: %v", err)
	}
	doc, err := Document(v, ExportOptions{Name: "Hill", Points: true})
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if len(doc.Nodes) != 2 || doc.Nodes[1].Name != "HillLattice" {
		t.Fatalf("expected surface and lattice nodes, got %d", len(doc.Nodes))
	}
	lattice := doc.Meshes[1].Primitives[0]
	if lattice.Mode != gltf.PrimitivePoints {
		t.Fatalf("lattice primitive mode %v", lattice.Mode)
	}
	if got := int(doc.Accessors[lattice.Attributes[gltf.POSITION]].Count); got != 10*8*10 {
		t.Fatalf("lattice has %d points", got)
	}
}

func TestEmptySurfaceIsAnError(t *testing.T) {
	cfg := testConfig()
	cfg.Threshold = 5
	if _, err := VolumeToGLB(context.Background(), cfg, ExportOptions{}); err == nil {
		t.Fatalf("expected error for an empty surface")
	}
	if _, err := VolumeToGLB(context.Background(), cfg, ExportOptions{Points: true}); err != nil {
		t.Fatalf("points alone should export: %v", err)
	}
}

func TestConfigJSONToGLB(t *testing.T) {
	b, err := ConfigJSONToGLB(context.Background(), []byte(`{"dims":[8,8,8],"noiseScale":[3,3,3],"threshold":0}`), ExportOptions{})
	if err != nil {
		t.Fatalf("ConfigJSONToGLB failed: %v", err)
	}
	decode(t, b)
	if _, err := ConfigJSONToGLB(context.Background(), []byte(`{"dims":`), ExportOptions{}); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestCompression(t *testing.T) {
	data := bytes.Repeat([]byte("surface "), 512)
	for _, c := range []Compression{CompNone, CompZlib, CompZstd} {
		packed, err := Compress(data, c)
		if err != nil {
			t.Fatalf("%v: compress failed: %v", c, err)
		}
		if c != CompNone && len(packed) >= len(data) {
			t.Fatalf("%v: %d bytes did not shrink", c, len(packed))
		}
		out, err := Decompress(packed, c)
		if err != nil {
			t.Fatalf("%v: decompress failed: %v", c, err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("%v: data changed", c)
		}
	}
	if _, err := Compress(data, Compression(9)); err == nil {
		t.Fatalf("expected error for unknown codec")
	}
}

func TestCompressionForPath(t *testing.T) {
	cases := map[string]Compression{
		"out.glb":      CompNone,
		"out.glb.zst":  CompZstd,
		"out.glb.ZSTD": CompZstd,
		"out.glb.zz":   CompZlib,
	}
	for path, want := range cases {
		if got := CompressionForPath(path); got != want {
			t.Fatalf("%s: %v, want %v", path, got, want)
		}
	}
}
