package material

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two textures in a 3D pattern
type Checker struct {
	Odd, Even Texture
	Frequency float64 // Cells per unit along each axis, scaled by pi
}

// NewChecker creates a checker texture from two solid colors
func NewChecker(odd, even core.Vec3, frequency float64) *Checker {
	return &Checker{Odd: NewSolidColor(odd), Even: NewSolidColor(even), Frequency: frequency}
}

// Evaluate picks the odd or even texture from the sign of a product of sines
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Frequency*point.X) * math.Sin(c.Frequency*point.Y) * math.Sin(c.Frequency*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
