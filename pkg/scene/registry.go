package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a builtin scene
type SceneInfo struct {
	ID          string // Unique identifier used on the command line
	Name        string // Display name
	Description string
	UsesMesh    bool // Honors Options.MeshPath
	UsesTexture bool // Honors Options.TexturePath
}

type builder func(opts Options) (*Scene, error)

type entry struct {
	info  SceneInfo
	build builder
}

var builtins = map[string]entry{
	"three-spheres": {
		info:  SceneInfo{ID: "three-spheres", Name: "Three Spheres", Description: "Diffuse, metal and glass spheres under the sky"},
		build: NewThreeSpheresScene,
	},
	"random-spheres": {
		info:  SceneInfo{ID: "random-spheres", Name: "Random Spheres", Description: "Field of randomly placed spheres, the diffuse ones moving"},
		build: NewRandomSpheresScene,
	},
	"motion-blur": {
		info:  SceneInfo{ID: "motion-blur", Name: "Motion Blur", Description: "A bouncing sphere next to a static one"},
		build: NewMotionBlurScene,
	},
	"earth": {
		info:  SceneInfo{ID: "earth", Name: "Earth", Description: "Image-textured globe", UsesTexture: true},
		build: NewEarthScene,
	},
	"simple-light": {
		info:  SceneInfo{ID: "simple-light", Name: "Simple Light", Description: "Triangle mesh lit by a sphere and a rectangle light", UsesMesh: true},
		build: NewSimpleLightScene,
	},
	"cornell-box": {
		info:  SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with two rotated boxes"},
		build: NewCornellScene,
	},
	"cornell-smoke": {
		info:  SceneInfo{ID: "cornell-smoke", Name: "Cornell Smoke", Description: "Cornell box with two boxes of smoke"},
		build: NewCornellSmokeScene,
	},
	"spheres-in-box": {
		info:  SceneInfo{ID: "spheres-in-box", Name: "Spheres in Box", Description: "Every primitive and material together with fog", UsesTexture: true},
		build: NewSpheresInBoxScene,
	},
}

// Names returns the identifiers of all builtin scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the description of every builtin scene, sorted by identifier
func List() []SceneInfo {
	var infos []SceneInfo
	for _, name := range Names() {
		infos = append(infos, builtins[name].info)
	}
	return infos
}

// Lookup builds the named scene
func Lookup(name string, opts Options) (*Scene, error) {
	e, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s, err := e.build(opts)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("loaded scene %q: %d objects, %d primitives", s.Name, len(s.Objects), s.PrimitiveCount())
	return s, nil
}
