package noise

// Translated samples Source at p + Offset. Shifting the sample point moves a
// fixed-hash noise onto a different stretch of its lattice.
type Translated struct {
	Source Noise
	Offset [3]int
}

func (t Translated) Dims() int { return t.Source.Dims() }

// At reads at most three components of p.
func (t Translated) At(p []int) float32 {
	var q [3]int
	n := min(len(p), len(q))
	for d := 0; d < n; d++ {
		q[d] = p[d] + t.Offset[d]
	}
	return t.Source.At(q[:n])
}
