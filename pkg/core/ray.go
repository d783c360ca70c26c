package core

import (
	"errors"
	"fmt"
)

// ErrDegenerateRay is returned for rays that cannot be traced
var ErrDegenerateRay = errors.New("degenerate ray")

// Ray represents a ray with an origin, a direction and a timestamp.
// The direction does not need to be unit length; its magnitude is absorbed
// into the parametric distance t.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
}

// NewRay creates a new ray at time zero
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray with a timestamp used for motion blur
func NewRayAtTime(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Validate returns ErrDegenerateRay if the ray has a zero or non-finite
// direction, or a non-finite origin or time.
func (r Ray) Validate() error {
	if !r.Origin.IsFinite() {
		return fmt.Errorf("%w: non-finite origin %v", ErrDegenerateRay, r.Origin)
	}
	if !r.Direction.IsFinite() || r.Direction.IsZero() {
		return fmt.Errorf("%w: invalid direction %v", ErrDegenerateRay, r.Direction)
	}
	if !isFinite(r.Time) {
		return fmt.Errorf("%w: non-finite time %v", ErrDegenerateRay, r.Time)
	}
	return nil
}
