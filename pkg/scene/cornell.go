package scene

import (
	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/material"
	"github.com/df07/go-raykernel/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.0,  // Square aspect ratio for Cornell box
		VFov:          40.0, // Field of view
		Aperture:      0.0,  // No depth of field for Cornell box
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// cornellWalls returns the five walls of the box with normals facing inward
func cornellWalls(white core.Material) []core.Hitable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []core.Hitable{
		core.NewFlipNormals(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, red)),   // Left wall
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, green),                            // Right wall
		core.NewFlipNormals(geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white)), // Ceiling
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),                            // Floor
		core.NewFlipNormals(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white)), // Back wall
	}
}

// cornellBlocks returns the short and the tall block, rotated and moved into place
func cornellBlocks(short, tall core.Material) (core.Hitable, core.Hitable) {
	shortBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), short)
	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), tall)

	return geometry.NewTranslate(geometry.NewRotateY(shortBox, -18), core.NewVec3(130, 0, 65)),
		geometry.NewTranslate(geometry.NewRotateY(tallBox, 15), core.NewVec3(265, 0, 295))
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
// and a ceiling light that is importance sampled
func NewCornellScene(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	objects := cornellWalls(white)
	objects = append(objects, core.NewFlipNormals(geometry.NewXZRect(213, 343, 227, 332, 554, light)))

	short, tall := cornellBlocks(white, white)
	objects = append(objects, short, tall)

	s, err := newScene("Cornell Box", cornellCamera(), objects, opts)
	if err != nil {
		return nil, err
	}
	s.LightShape = geometry.NewXZRect(213, 343, 227, 332, 554, material.NewEmpty())
	s.Sampling.SamplesPerPixel = 200
	return s, nil
}

// NewCornellSmokeScene replaces the Cornell blocks with constant-density
// smoke, one white and one black
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	objects := cornellWalls(white)
	objects = append(objects, core.NewFlipNormals(geometry.NewXZRect(113, 443, 127, 432, 554, light)))

	short, tall := cornellBlocks(white, white)
	objects = append(objects,
		geometry.NewVolume(short, 0.01, material.NewIsotropic(material.NewSolidColor(core.NewVec3(1, 1, 1)))),
		geometry.NewVolume(tall, 0.01, material.NewIsotropic(material.NewSolidColor(core.NewVec3(0, 0, 0)))),
	)

	s, err := newScene("Cornell Smoke", cornellCamera(), objects, opts)
	if err != nil {
		return nil, err
	}
	s.LightShape = geometry.NewXZRect(113, 443, 127, 432, 554, material.NewEmpty())
	s.Sampling.SamplesPerPixel = 200
	return s, nil
}
