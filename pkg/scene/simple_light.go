package scene

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/loaders"
	"github.com/df07/go-raykernel/pkg/material"
	"github.com/df07/go-raykernel/pkg/renderer"
)

// NewSimpleLightScene creates a mesh on a marble ground, lit only by a
// spherical light above it and a rectangular light behind it. The mesh is
// read from opts.MeshPath when set, otherwise a smooth icosahedron is used.
func NewSimpleLightScene(opts Options) (*Scene, error) {
	camera := renderer.CameraConfig{
		Center:        core.NewVec3(13, 3, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          50.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	mesh, err := simpleLightMesh(opts, red)
	if err != nil {
		return nil, err
	}

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	rectLight := geometry.NewXYRect(3, 5, 1, 3, -2, light)

	objects := []core.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(material.NewNoise(4, opts.Seed))),
		geometry.NewTranslate(geometry.NewRotateY(mesh, 90), core.NewVec3(0, 2, 0)),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		rectLight,
	}

	s, err := newScene("Simple Light", camera, objects, opts)
	if err != nil {
		return nil, err
	}
	s.LightShape = geometry.NewXYRect(3, 5, 1, 3, -2, material.NewEmpty())
	s.Sampling.SamplesPerPixel = 200
	return s, nil
}

// simpleLightMesh loads the OBJ at opts.MeshPath or builds the default mesh
func simpleLightMesh(opts Options, mat core.Material) (*geometry.TriangleMesh, error) {
	if opts.MeshPath == "" {
		return icosahedronMesh(core.NewVec3(0, 0, 0), 1.5, mat)
	}

	data, err := loaders.LoadOBJFile(opts.MeshPath)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d triangles from %s", data.TriangleCount(), opts.MeshPath)
	return data.Mesh(mat)
}

// icosahedronMesh creates an icosahedron with vertex normals pointing away
// from its center, so it shades like a sphere
func icosahedronMesh(center core.Vec3, radius float64, mat core.Material) (*geometry.TriangleMesh, error) {
	phi := (1.0 + math.Sqrt(5.0)) / 2.0

	// 12 vertices of icosahedron
	directions := []core.Vec3{
		core.NewVec3(-1, phi, 0),
		core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0),
		core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi),
		core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi),
		core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1),
		core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1),
		core.NewVec3(-phi, 0, 1),
	}

	vertices := make([]core.Vec3, len(directions))
	normals := make([]core.Vec3, len(directions))
	for i, d := range directions {
		normals[i] = d.Normalize()
		vertices[i] = center.Add(normals[i].Multiply(radius))
	}

	// 20 triangular faces
	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, &geometry.TriangleMeshOptions{Normals: normals})
}
