package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	SamplingConfig renderer.SamplingConfig
	Background     integrator.GradientBackground
	UseBVH         bool // Intersect through a BVH instead of a linear scan

	// Bounces before Russian roulette may end a path; zero keeps every path to MaxDepth
	RussianRouletteMinBounces int
}

// New creates an empty scene with the default camera, sampling and sky
func New(name string) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   geometry.DefaultCameraConfig(),
		Shapes:         make([]geometry.Shape, 0),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		Background:     integrator.DefaultBackground(),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Shapes = append(s.Shapes, sphere)
	return sphere
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// World returns the aggregate the integrator intersects against
func (s *Scene) World() geometry.Shape {
	if s.UseBVH {
		return geometry.NewBVH(s.Shapes)
	}
	return geometry.NewList(s.Shapes...)
}

// Camera builds the camera; it panics if CameraConfig is degenerate
func (s *Scene) Camera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// Integrator returns a path tracer configured from the scene
func (s *Scene) Integrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:                  s.SamplingConfig.MaxDepth,
		RussianRouletteMinBounces: s.RussianRouletteMinBounces,
	}, s.Background)
}

// SetImageSize resizes the output and keeps the camera aspect ratio in step.
// A zero height is derived from the width and the current aspect ratio.
func (s *Scene) SetImageSize(width, height int) {
	if width <= 0 {
		width = s.SamplingConfig.Width
	}
	if height <= 0 {
		height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	s.CameraConfig.AspectRatio = float64(width) / float64(height)
}

// NewRaytracer validates the scene and wires a raytracer for it
func (s *Scene) NewRaytracer(logger core.Logger) (*renderer.Raytracer, error) {
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World(), s.Camera(), s.Integrator(), s.SamplingConfig, logger)
}
