package scene

import (
	"math/rand"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/loaders"
	"github.com/df07/go-raykernel/pkg/material"
	"github.com/df07/go-raykernel/pkg/renderer"
)

// outdoorCamera is the camera shared by the sphere-field scenes
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// NewThreeSpheresScene creates a diffuse, a metal and a glass sphere on a
// large ground sphere
func NewThreeSpheresScene(opts Options) (*Scene, error) {
	camera := renderer.CameraConfig{
		Center:        core.NewVec3(0, 3, 6),
		LookAt:        core.NewVec3(0, 0, -1.5),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	objects := []core.Hitable{
		geometry.NewSphere(core.NewVec3(0.6, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.75, 0.25, 0.25))),
		geometry.NewSphere(core.NewVec3(-0.6, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.1)),
		geometry.NewSphere(core.NewVec3(0, 0.1, -2), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	s, err := newScene("Three Spheres", camera, objects, opts)
	if err != nil {
		return nil, err
	}
	s.Background = true
	s.Sampling.SamplesPerPixel = 100
	return s, nil
}

// NewRandomSpheresScene creates the classic field of small random spheres
// around three large ones. The small diffuse spheres bounce during the
// shutter interval.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))
	camera := outdoorCamera()

	objects := []core.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.75:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center1, camera.Time0, camera.Time1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64())))
			default:
				// Hollow glass: the inner sphere's negative radius turns its normals inward
				glass := material.NewDielectric(1.5)
				objects = append(objects,
					geometry.NewSphere(center, 0.2, glass),
					geometry.NewSphere(center, -0.19, glass),
				)
			}
		}
	}

	glass := material.NewDielectric(1.5)
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(-2, 1, 0), 1, material.NewLambertian(core.NewVec3(0.75, 0.25, 0.25))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(0, 1, 0), -0.99, glass),
		geometry.NewSphere(core.NewVec3(2, 1, 0), 1, material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.05)),
	)

	s, err := newScene("Random Spheres", camera, objects, opts)
	if err != nil {
		return nil, err
	}
	s.Background = true
	s.Sampling.SamplesPerPixel = 64
	return s, nil
}

// NewMotionBlurScene creates a single bouncing sphere beside a static one
func NewMotionBlurScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))
	camera := outdoorCamera()

	center := core.NewVec3(0.9*random.Float64(), 0.2, 0.9*random.Float64())
	center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
	albedo := core.NewVec3(
		random.Float64()*random.Float64(),
		random.Float64()*random.Float64(),
		random.Float64()*random.Float64(),
	)

	objects := []core.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewMovingSphere(center, center1, camera.Time0, camera.Time1, 0.2, material.NewLambertian(albedo)),
		geometry.NewSphere(core.NewVec3(-2, 1, 0), 1, material.NewLambertian(core.NewVec3(0.75, 0.25, 0.25))),
	}

	s, err := newScene("Motion Blur", camera, objects, opts)
	if err != nil {
		return nil, err
	}
	s.Background = true
	return s, nil
}

// NewEarthScene creates a globe textured with the image at opts.TexturePath,
// or with a checker pattern when no path is given
func NewEarthScene(opts Options) (*Scene, error) {
	texture, err := globeTexture(opts)
	if err != nil {
		return nil, err
	}

	objects := []core.Hitable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)),
	}

	s, err := newScene("Earth", outdoorCamera(), objects, opts)
	if err != nil {
		return nil, err
	}
	s.Background = true
	s.Sampling.SamplesPerPixel = 50
	return s, nil
}

// globeTexture loads the texture for globe-like spheres
func globeTexture(opts Options) (material.Texture, error) {
	if opts.TexturePath == "" {
		return material.NewChecker(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9), 10), nil
	}

	img, err := loaders.LoadImage(opts.TexturePath)
	if err != nil {
		return nil, err
	}
	return img.Texture(), nil
}
