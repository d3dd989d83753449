// Package noise provides coherent gradient noise over integer lattices and
// fractal layering of noise sources.
package noise

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrZeroScale is returned when a noise source is configured with a zero,
	// negative or non-finite scale along some axis.
	ErrZeroScale = errors.New("noise: zero scale")
	// ErrDimensions is returned when the scale vector does not match the
	// dimensionality of the requested gradient scheme.
	ErrDimensions = errors.New("noise: dimension mismatch")
)

// Noise is a deterministic scalar function over an integer coordinate.
// Only the first Dims() components of p are read.
type Noise interface {
	Dims() int
	At(p []int) float32
}

// Gradient selects how lattice gradients are produced.
type Gradient int

const (
	// Hashed2D derives a unit vector in the plane from a 32-bit mix of the
	// lattice coordinate.
	Hashed2D Gradient = iota
	// Sphere looks up one of 256 seeded random unit vectors on the sphere.
	Sphere
	// Axis looks up one of twelve axis-pair directions from a fixed table.
	Axis
	// AxisImplicit evaluates the Axis dot product algebraically.
	AxisImplicit
)

var gradientNames = [...]string{"hashed2d", "sphere", "axis", "implicit"}

func (g Gradient) String() string {
	if g < 0 || int(g) >= len(gradientNames) {
		return fmt.Sprintf("Gradient(%d)", int(g))
	}
	return gradientNames[g]
}

// Dims is the dimensionality of the scheme.
func (g Gradient) Dims() int {
	if g == Hashed2D {
		return 2
	}
	return 3
}

// ParseGradient maps a config name back to a Gradient.
func ParseGradient(s string) (Gradient, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range gradientNames {
		if n == s {
			return Gradient(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gradient scheme %q", s)
}
