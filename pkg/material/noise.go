package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-raykernel/pkg/core"
)

const noisePoints = 256

// Noise is a marble-like procedural texture built on gradient noise with
// turbulence. The lattice is generated from a seed so scenes render
// identically from run to run.
type Noise struct {
	Scale     float64
	gradients [noisePoints]core.Vec3
	permX     [noisePoints]int
	permY     [noisePoints]int
	permZ     [noisePoints]int
}

// NewNoise creates a noise texture with the given frequency scale
func NewNoise(scale float64, seed int64) *Noise {
	random := rand.New(rand.NewSource(seed))
	n := &Noise{Scale: scale}
	for i := range n.gradients {
		n.gradients[i] = core.NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		).Normalize()
	}
	n.permX = permutation(random)
	n.permY = permutation(random)
	n.permZ = permutation(random)
	return n
}

func permutation(random *rand.Rand) [noisePoints]int {
	var p [noisePoints]int
	for i, v := range random.Perm(noisePoints) {
		p[i] = v
	}
	return p
}

// Evaluate returns a grey marble value modulated along Z by turbulence
func (n *Noise) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	value := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Turbulence(point, 7)))
	return core.NewVec3(value, value, value)
}

// Turbulence sums octaves of noise with halving weight
func (n *Noise) Turbulence(p core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * n.Value(p)
		weight *= 0.5
		p = p.Multiply(2)
	}
	return math.Abs(accum)
}

// Value returns smoothed gradient noise in roughly [-1, 1]
func (n *Noise) Value(p core.Vec3) float64 {
	fx, fy, fz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	u, v, w := p.X-fx, p.Y-fy, p.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = n.gradients[n.permX[(i+di)&255]^n.permY[(j+dj)&255]^n.permZ[(k+dk)&255]]
			}
		}
	}

	// Hermite smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				fi, fj, fk := float64(di), float64(dj), float64(dk)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}
	return accum
}
