package noise

// Fractal sums noise layers as octaves: layer i is sampled at twice the
// frequency of layer i-1 and weighted by persistence^i. The result is
// normalized by the total weight.
type Fractal struct {
	layers      []Noise
	persistence float32
}

// NewFractal returns an empty fractal whose octave weights decay by
// persistence.
func NewFractal(persistence float32) *Fractal {
	return &Fractal{persistence: persistence}
}

// Add appends an octave. The fractal owns the layer from here on.
func (f *Fractal) Add(layer Noise) {
	f.layers = append(f.layers, layer)
}

// Layers is the number of octaves added so far.
func (f *Fractal) Layers() int { return len(f.layers) }

func (f *Fractal) Persistence() float32 { return f.persistence }

// Dims reports the widest layer dimensionality.
func (f *Fractal) Dims() int {
	dims := 0
	for _, l := range f.layers {
		if d := l.Dims(); d > dims {
			dims = d
		}
	}
	return dims
}

// At returns 0 when no layers were added.
func (f *Fractal) At(p []int) float32 {
	if len(f.layers) == 0 {
		return 0
	}
	scaled := make([]int, len(p))
	var total, weight float32
	amplitude := float32(1)
	frequency := 1
	for _, l := range f.layers {
		for d := range p {
			scaled[d] = p[d] * frequency
		}
		total += amplitude * l.At(scaled)
		weight += amplitude
		amplitude *= f.persistence
		frequency *= 2
	}
	if weight == 0 {
		return 0
	}
	return total / weight
}
