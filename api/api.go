package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/RyanAllcock/SurfaceConstruction/surface"
	"github.com/RyanAllcock/SurfaceConstruction/terrain"
)

// ExportOptions controls what goes into a glTF document besides the
// surface mesh.
type ExportOptions struct {
	Name   string
	Points bool // add the lattice as a point primitive coloured by density
}

// Document builds a glTF document holding the surface (and optionally the
// lattice points) of a volume.
func Document(v *terrain.Volume, opts ExportOptions) (*gltf.Document, error) {
	name := opts.Name
	if name == "" {
		name = "Surface"
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = "SurfaceConstruction " + v.VariantName()

	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{0.56, 0.5, 0.38, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{Name: "Terrain", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque, DoubleSided: true}}

	if prim := meshPrimitive(doc, v.Mesh()); prim != nil {
		addNode(doc, name, prim)
	}
	if opts.Points {
		addNode(doc, name+"Lattice", pointPrimitive(doc, v.Points()))
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("nothing to export: empty surface at threshold %v", v.Threshold())
	}
	return doc, nil
}

func meshPrimitive(doc *gltf.Document, mesh surface.Mesh) *gltf.Primitive {
	n := mesh.Vertices()
	if n == 0 {
		return nil
	}
	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	indices := make([]uint32, n)
	for i := 0; i < n; i++ {
		positions[i] = mesh.Position(i)
		normals[i] = mesh.Normal(i)
		indices[i] = uint32(i)
	}
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	return &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
}

func pointPrimitive(doc *gltf.Document, points []float32) *gltf.Primitive {
	n := len(points) / terrain.PointStride
	positions := make([][3]float32, n)
	colors := make([][4]float32, n)
	lo, hi := float32(0), float32(0)
	for i := 0; i < n; i++ {
		d := points[i*terrain.PointStride+3]
		lo, hi = min(lo, d), max(hi, d)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i := 0; i < n; i++ {
		p := points[i*terrain.PointStride:]
		positions[i] = [3]float32{p[0], p[1], p[2]}
		c := (p[3] - lo) / span
		colors[i] = [4]float32{c, c, c, 1}
	}
	posAccessor := modeler.WritePosition(doc, positions)
	colorAccessor := modeler.WriteColor(doc, colors)
	return &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Mode: gltf.PrimitivePoints,
	}
}

func addNode(doc *gltf.Document, name string, prim *gltf.Primitive) {
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
}

// EncodeGLB serialises a document as binary glTF.
func EncodeGLB(doc *gltf.Document) ([]byte, error) {
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// VolumeToGLB samples the volume described by cfg and returns it as .glb
// bytes.
func VolumeToGLB(ctx context.Context, cfg terrain.Config, opts ExportOptions) ([]byte, error) {
	v, err := terrain.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	doc, err := Document(v, opts)
	if err != nil {
		return nil, err
	}
	return EncodeGLB(doc)
}

// ConfigJSONToGLB is VolumeToGLB for a JSON config; missing keys take their
// default values.
func ConfigJSONToGLB(ctx context.Context, configJSON []byte, opts ExportOptions) ([]byte, error) {
	cfg := terrain.DefaultConfig()
	if len(bytes.TrimSpace(configJSON)) > 0 {
		if err := json.Unmarshal(configJSON, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return VolumeToGLB(ctx, cfg, opts)
}
