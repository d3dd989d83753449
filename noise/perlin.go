package noise

import (
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/chewxy/math32"
)

// permutation is Perlin's reference table, duplicated so chained lookups
// never need to wrap.
var permutation [512]int

func init() {
	base := [256]int{
		151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
		140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
		247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
		57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
		74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
		60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
		65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
		200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
		52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
		207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
		119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
		129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
		218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
		81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
		184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
		222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
	}
	copy(permutation[:256], base[:])
	copy(permutation[256:], base[:])
}

// axisGradients is indexed by the low four bits of the lattice hash. The
// last four rows repeat directions so every index is valid; they are ordered
// to agree with axisProduct.
var axisGradients = [16][3]float32{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {0, -1, 1}, {-1, 1, 0}, {0, -1, -1},
}

// Perlin is gradient noise over a 2D or 3D integer lattice. It is immutable
// after New and safe for concurrent use.
type Perlin struct {
	scheme Gradient
	dims   int
	scale  [3]float32
	sphere *[256][3]float32
}

// New builds a gradient noise source. scale must hold one positive, finite
// entry per dimension of the scheme; seed only affects the Sphere scheme.
func New(g Gradient, scale []float32, seed int64) (*Perlin, error) {
	if g < Hashed2D || g > AxisImplicit {
		return nil, fmt.Errorf("new noise: unknown scheme %d", int(g))
	}
	n := &Perlin{scheme: g, dims: g.Dims()}
	if len(scale) != n.dims {
		return nil, fmt.Errorf("new %s noise: %d scale components for %d dimensions: %w", g, len(scale), n.dims, ErrDimensions)
	}
	for d, s := range scale {
		if !(s > 0) || math32.IsInf(s, 0) {
			return nil, fmt.Errorf("new %s noise: axis %d scale %v: %w", g, d, s, ErrZeroScale)
		}
		n.scale[d] = s
	}
	if g == Sphere {
		n.sphere = sphereGradients(seed)
	}
	return n, nil
}

// sphereGradients draws 256 directions uniformly over the unit sphere.
func sphereGradients(seed int64) *[256][3]float32 {
	r := rand.New(rand.NewSource(seed))
	var out [256][3]float32
	for i := range out {
		theta := math32.Acos(2*r.Float32() - 1)
		phi := 2 * math32.Pi * r.Float32()
		st := math32.Sin(theta)
		out[i] = [3]float32{math32.Cos(phi) * st, math32.Sin(phi) * st, math32.Cos(theta)}
	}
	return &out
}

func (n *Perlin) Dims() int { return n.dims }

// Scheme reports the gradient scheme chosen at construction.
func (n *Perlin) Scheme() Gradient { return n.scheme }

// At samples the noise at c scaled down by the configured scale.
func (n *Perlin) At(c []int) float32 {
	var (
		i0     [3]int
		d0, d1 [3]float32
		s      [3]float32
	)
	for d := 0; d < n.dims; d++ {
		p := float32(c[d]) / n.scale[d]
		f := math32.Floor(p)
		i0[d] = int(f)
		d0[d] = p - f
		d1[d] = d0[d] - 1
		s[d] = n.weight(d0[d])
	}

	corners := 1 << n.dims
	var v [8]float32
	for i := 0; i < corners; i++ {
		var corner [3]int
		var dir [3]float32
		for d := 0; d < n.dims; d++ {
			if i>>d&1 == 1 {
				corner[d] = i0[d] + 1
				dir[d] = d1[d]
			} else {
				corner[d] = i0[d]
				dir[d] = d0[d]
			}
		}
		v[i] = n.product(corner, dir)
	}

	// 2^D corner values collapse one axis at a time.
	for d, inc := 0, 1; d < n.dims; d, inc = d+1, inc<<1 {
		for i := 0; i < corners; i += inc << 1 {
			v[i] = lerp(v[i], v[i+inc], s[d])
		}
	}
	return v[0]
}

func (n *Perlin) weight(t float32) float32 {
	switch n.scheme {
	case Axis, AxisImplicit:
		return ((6*t-15)*t + 10) * t * t * t
	default:
		return (-2*t + 3) * t * t
	}
}

func (n *Perlin) product(c [3]int, dir [3]float32) float32 {
	switch n.scheme {
	case Hashed2D:
		gx, gy := hashAngle(c[0], c[1])
		return dir[0]*gx + dir[1]*gy
	case Sphere:
		g := n.sphere[hash(c)]
		return dir[0]*g[0] + dir[1]*g[1] + dir[2]*g[2]
	case Axis:
		g := axisGradients[hash(c)&15]
		return dir[0]*g[0] + dir[1]*g[1] + dir[2]*g[2]
	default:
		return axisProduct(hash(c)&15, dir)
	}
}

// axisProduct is the dot product with axisGradients[h] without the lookup:
// every direction is a signed pair of unit axes.
func axisProduct(h int, dir [3]float32) float32 {
	u := dir[1]
	if h < 8 {
		u = dir[0]
	}
	v := dir[2]
	if h < 4 {
		v = dir[1]
	} else if h == 12 || h == 14 {
		v = dir[0]
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func hash(c [3]int) int {
	return permutation[permutation[permutation[c[0]&255]+c[1]&255]+c[2]&255]
}

// hashAngle mixes a 2D lattice coordinate into an angle in [0, 2pi) and
// returns the matching unit vector.
func hashAngle(x, y int) (float32, float32) {
	a, b := uint32(x), uint32(y)
	a *= 3284157443
	b ^= bits.RotateLeft32(a, 16)
	b *= 1911520717
	a ^= bits.RotateLeft32(b, 16)
	a *= 2048419325
	angle := float32(a) * (math32.Pi / (1 << 31))
	return math32.Sin(angle), math32.Cos(angle)
}

func lerp(a, b, w float32) float32 {
	return (b-a)*w + a
}
