package material

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// nonEmissive is embedded by materials that do not emit light
type nonEmissive struct{}

// Emitted returns black
func (nonEmissive) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// facingNormal returns the shading normal flipped to the side the ray arrives
// from, and whether the ray hit the outward-facing side
func facingNormal(rayIn core.Ray, hit *core.HitRecord) (core.Vec3, bool) {
	if rayIn.Direction.Dot(hit.ShadingNormal) < 0 {
		return hit.ShadingNormal, true
	}
	return hit.ShadingNormal.Negate(), false
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refract calculates the refraction of a unit vector using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
