package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/integrator"
	"github.com/df07/go-raykernel/pkg/log"
	"github.com/df07/go-raykernel/pkg/renderer"
)

var logger = log.New("scene")

var (
	// ErrEmptyScene is returned when a scene has nothing to render
	ErrEmptyScene = errors.New("scene has no objects")

	// ErrUnknownScene is returned by Lookup for names that are not registered
	ErrUnknownScene = errors.New("unknown scene")

	// ErrInvalidSampling is returned for non-positive sample or depth limits
	ErrInvalidSampling = errors.New("invalid sampling configuration")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     renderer.CameraConfig
	World      core.Hitable   // Aggregate searched by the integrator
	Objects    []core.Hitable // Top-level objects the aggregate was built from
	LightShape core.Hitable   // Optional shape sampled for direct light, nil for none
	Background bool           // Misses see the sky gradient instead of black
	Sampling   renderer.SamplingConfig
}

// Options controls how builtin scenes are assembled
type Options struct {
	Linear      bool   // Use a linear World instead of a BVH
	MeshPath    string // Optional Wavefront OBJ replacing the builtin mesh
	TexturePath string // Optional image replacing the builtin procedural texture
	Seed        int64  // Seed for randomly placed objects
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{Seed: 42}
}

// Validate reports scenes that cannot be rendered
func (s *Scene) Validate() error {
	if s.World == nil || len(s.Objects) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyScene, s.Name)
	}
	if s.Sampling.SamplesPerPixel <= 0 || s.Sampling.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d samples, depth %d", ErrInvalidSampling, s.Sampling.SamplesPerPixel, s.Sampling.MaxDepth)
	}
	return nil
}

// Integrator returns a path tracer configured for the scene
func (s *Scene) Integrator() *integrator.PathTracer {
	config := integrator.DefaultConfig()
	config.MaxDepth = s.Sampling.MaxDepth
	config.Background = s.Background
	return integrator.NewPathTracer(config, s.LightShape)
}

// PrimitiveCount returns the number of primitives in the scene, counting
// every triangle of a mesh
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// Meshes returns the triangle meshes in the scene, looking through transforms
func (s *Scene) Meshes() []*geometry.TriangleMesh {
	var meshes []*geometry.TriangleMesh
	for _, object := range s.Objects {
		if mesh, ok := unwrap(object).(*geometry.TriangleMesh); ok {
			meshes = append(meshes, mesh)
		}
	}
	return meshes
}

func countPrimitives(object core.Hitable) int {
	switch obj := unwrap(object).(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *core.BVH:
		return obj.Len()
	case *core.World:
		return obj.Len()
	default:
		return 1
	}
}

// unwrap strips transform and normal-flipping adapters
func unwrap(object core.Hitable) core.Hitable {
	for {
		switch obj := object.(type) {
		case *geometry.Translate:
			object = obj.Object
		case *geometry.RotateY:
			object = obj.Object
		case *core.FlipNormals:
			object = obj.Object
		default:
			return object
		}
	}
}

// newScene builds the aggregate over objects and fills in the scene
func newScene(name string, camera renderer.CameraConfig, objects []core.Hitable, opts Options) (*Scene, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyScene, name)
	}

	var world core.Hitable
	if opts.Linear {
		world = core.NewWorld(objects...)
	} else {
		bvh, err := core.NewBVH(objects, camera.Time0, camera.Time1)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
		world = bvh
	}

	logger.Debugf("built scene %q with %d objects", name, len(objects))
	return &Scene{
		Name:     name,
		Camera:   camera,
		World:    world,
		Objects:  objects,
		Sampling: renderer.DefaultSamplingConfig(),
	}, nil
}
