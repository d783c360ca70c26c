package scene

import (
	"math/rand"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/material"
	"github.com/df07/go-raykernel/pkg/renderer"
)

// NewSpheresInBoxScene creates a scene exercising every primitive and
// material: a field of ground blocks, a moving sphere, glass, brushed metal,
// a tinted subsurface volume, global fog, textured spheres, a pyramid mesh
// and a cluster of small spheres in their own BVH
func NewSpheresInBoxScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))

	camera := renderer.CameraConfig{
		Center:        core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	var objects []core.Hitable

	// Ground of blocks with random heights, grouped in their own hierarchy
	const blocksPerSide = 20
	blocks := make([]core.Hitable, 0, blocksPerSide*blocksPerSide)
	for i := 0; i < blocksPerSide; i++ {
		for j := 0; j < blocksPerSide; j++ {
			w := 100.0
			p0 := core.NewVec3(-1000+float64(i)*w, 0, -1000+float64(j)*w)
			p1 := p0.Add(core.NewVec3(w, 100*(random.Float64()+0.01), w))
			blocks = append(blocks, geometry.NewBox(p0, p1, ground))
		}
	}
	groundBVH, err := core.NewBVH(blocks, camera.Time0, camera.Time1)
	if err != nil {
		return nil, err
	}
	objects = append(objects, groundBVH)

	objects = append(objects, geometry.NewXZRect(123, 423, 147, 412, 554, light))

	// Moving sphere
	objects = append(objects, geometry.NewMovingSphere(
		core.NewVec3(400, 400, 200), core.NewVec3(430, 400, 200),
		camera.Time0, camera.Time1, 50,
		material.NewLambertian(core.NewVec3(1.0, 0.1, 0.0)),
	))

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass sphere filled with a blue medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	objects = append(objects,
		boundary,
		geometry.NewVolume(boundary, 0.2, material.NewIsotropic(material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9)))),
	)

	// Thin fog over the whole scene
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	objects = append(objects, geometry.NewVolume(fog, 0.0001, material.NewIsotropic(material.NewSolidColor(core.NewVec3(1, 1, 1)))))

	// Textured spheres
	globe, err := globeTexture(opts)
	if err != nil {
		return nil, err
	}
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globe)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoise(0.1, opts.Seed))),
	)

	// Half-mirror pyramid
	checker := material.NewTexturedLambertian(material.NewChecker(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9), 0.2))
	halfMirror := material.NewMix(checker, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0), 0.5)
	pyramid, err := pyramidMesh(core.NewVec3(120, 200, 20), 90, 110, halfMirror)
	if err != nil {
		return nil, err
	}
	objects = append(objects, pyramid)

	// Cluster of small spheres, rotated and moved as one
	const clusterSize = 1000
	cluster := make([]core.Hitable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		center := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	clusterBVH, err := core.NewBVH(cluster, camera.Time0, camera.Time1)
	if err != nil {
		return nil, err
	}
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	s, err := newScene("Spheres in Box", camera, objects, opts)
	if err != nil {
		return nil, err
	}
	s.LightShape = geometry.NewXZRect(123, 423, 147, 412, 554, material.NewEmpty())
	s.Sampling.SamplesPerPixel = 250
	return s, nil
}

// pyramidMesh creates a square-based pyramid standing on base center
func pyramidMesh(center core.Vec3, baseSize, height float64, mat core.Material) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, 0, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, 0, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, 0, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, 0, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, height, 0)),            // 4: apex
	}

	faces := []int{
		// Base (2 triangles)
		0, 2, 1, 0, 3, 2,
		// Side faces
		0, 1, 4, // back face
		1, 2, 4, // right face
		2, 3, 4, // front face
		3, 0, 4, // left face
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}
