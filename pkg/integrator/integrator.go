package integrator

import (
	"errors"

	"github.com/df07/go-raykernel/pkg/core"
)

// ErrNonFiniteHit is the panic value raised when an aggregate reports a hit
// whose distance is NaN or infinite
var ErrNonFiniteHit = errors.New("hit distance is not finite")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// ComputeColor returns the radiance arriving along ray from world. depth
	// counts the scattering events already on the path; callers start at 0.
	ComputeColor(ray core.Ray, world core.Hitable, depth int, sampler core.Sampler) core.Vec3
}

// Config controls path termination and the miss color
type Config struct {
	MaxDepth   int     // Maximum number of scattering events per path
	TMin       float64 // Lower bound of the hit interval, hides self-intersection
	Background bool    // Misses return the sky gradient instead of black
}

// DefaultConfig returns the integrator defaults
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     1e-3,
	}
}

// SkyGradient returns a vertical white-to-blue blend for the ray direction
func SkyGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1, 1] to [0, 1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return core.NewVec3(1, 1, 1).Multiply(1.0 - t).Add(core.NewVec3(0.5, 0.7, 1.0).Multiply(t))
}
