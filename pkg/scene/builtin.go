package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Every built-in scene sits on this ground sphere
var (
	groundCenter = core.NewVec3(0, -100.5, -1)
	groundRadius = 100.0
)

// NewDemoScene creates diffuse, glass and polished gold spheres on a gray ground
func NewDemoScene() *Scene {
	s := New("demo")
	s.Description = "Red diffuse, glass and gold metal spheres on a gray ground"

	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	return s
}

// NewSimpleScene creates a single diffuse sphere, fast to render
func NewSimpleScene() *Scene {
	s := New("simple")
	s.Description = "One red diffuse sphere on a yellow ground"

	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))

	return s
}

// NewMetalScene shows metal at three fuzz levels
func NewMetalScene() *Scene {
	s := New("metal")
	s.Description = "Fuzzy silver, mirror gold and rough silver spheres"

	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8)))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0))

	return s
}

// NewClassicScene creates blue diffuse, fuzzy metal and glass spheres on yellow ground
func NewClassicScene() *Scene {
	s := New("classic")
	s.Description = "Blue diffuse, fuzzy metal and glass spheres on a yellow ground"

	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewDielectric(1.5))

	return s
}

// NewGroundScene contains only the gray ground sphere
func NewGroundScene() *Scene {
	s := New("ground")
	s.Description = "A single gray ground sphere under the sky"

	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	return s
}
